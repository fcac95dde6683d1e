// handlers — HTTP-обработчики поверх сервисного слоя.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pribylovaa/news-search-service/internal/service"
)

// Handlers агрегирует зависимости обработчиков.
type Handlers struct {
	svc *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через httperr.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// errInvalidBody — локальная ошибка парсинга тела -> ErrInvalidArgument.
func errInvalidBody(err error) error {
	return fmt.Errorf("invalid request body: %v: %w", err, service.ErrInvalidArgument)
}
