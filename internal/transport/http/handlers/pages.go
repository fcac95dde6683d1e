package handlers

import (
	"html/template"
	"net/http"
	"time"

	"github.com/pribylovaa/news-search-service/web"
)

var indexTmpl = template.Must(template.ParseFS(web.Templates, "templates/index.html"))

// Index — GET /: HTML-страница поиска.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = indexTmpl.Execute(w, nil)
}

// Health — GET /health: статус сервиса и текущее время в его часовом поясе.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": h.svc.Now().Format(time.RFC3339),
	})
}
