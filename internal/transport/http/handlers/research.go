package handlers

import (
	"net/http"

	"github.com/pribylovaa/news-search-service/internal/models"
	"github.com/pribylovaa/news-search-service/internal/transport/http/httperr"
)

// SearchResearch — POST /research/search: веб-поиск по институциональным
// доменам.
func (h *Handlers) SearchResearch(w http.ResponseWriter, r *http.Request) {
	var req models.ResearchSearchRequest
	if err := decodeStrict(r, &req); err != nil {
		httperr.WriteError(w, r, errInvalidBody(err))
		return
	}

	resp, err := h.svc.SearchResearch(r.Context(), req)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
