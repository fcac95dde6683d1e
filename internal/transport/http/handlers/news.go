package handlers

import (
	"fmt"
	"net/http"

	"github.com/pribylovaa/news-search-service/internal/models"
	"github.com/pribylovaa/news-search-service/internal/service"
	"github.com/pribylovaa/news-search-service/internal/transport/http/httperr"
)

// SearchNews — POST /news/search: полный новостной пайплайн.
func (h *Handlers) SearchNews(w http.ResponseWriter, r *http.Request) {
	var req models.NewsSearchRequest
	if err := decodeStrict(r, &req); err != nil {
		httperr.WriteError(w, r, errInvalidBody(err))
		return
	}

	resp, err := h.svc.SearchNews(r.Context(), req)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// SampleNews — GET /news?keyword=: статический пример выдачи
// без обращений к внешним API.
func (h *Handlers) SampleNews(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		httperr.WriteError(w, r,
			fmt.Errorf("keyword query parameter required: %w", service.ErrInvalidArgument))
		return
	}

	writeJSON(w, http.StatusOK, h.svc.SampleNews(keyword))
}
