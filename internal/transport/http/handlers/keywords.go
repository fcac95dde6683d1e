package handlers

import (
	"net/http"

	"github.com/pribylovaa/news-search-service/internal/models"
	"github.com/pribylovaa/news-search-service/internal/transport/http/httperr"
)

// ExtractKeywords — POST /extract-keywords: топ значимых токенов
// из свободного текста.
func (h *Handlers) ExtractKeywords(w http.ResponseWriter, r *http.Request) {
	var req models.ExtractRequest
	if err := decodeStrict(r, &req); err != nil {
		httperr.WriteError(w, r, errInvalidBody(err))
		return
	}

	writeJSON(w, http.StatusOK, h.svc.ExtractKeywords(r.Context(), req.Text))
}
