// http собирает HTTP-роутер сервиса: chi, цепочка мидлваров и маршруты.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/news-search-service/internal/config"
	"github.com/pribylovaa/news-search-service/internal/service"
	"github.com/pribylovaa/news-search-service/internal/transport/http/handlers"
	"github.com/pribylovaa/news-search-service/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	Auth    config.AuthConfig
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.AccessGate(opts.Auth),
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc)

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// страницы и пробы
	r.Get("/", h.Index)
	r.Get("/health", h.Health)

	// news
	r.Get("/news", h.SampleNews)
	r.Post("/news/search", h.SearchNews)

	// research
	r.Post("/research/search", h.SearchResearch)

	// keywords
	r.Post("/extract-keywords", h.ExtractKeywords)
}
