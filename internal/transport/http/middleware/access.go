package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/pribylovaa/news-search-service/internal/config"
	"github.com/pribylovaa/news-search-service/internal/transport/http/httperr"
)

// AccessGate — необязательный шлагбаум на транспортной границе.
//
// Правила:
//   - если в конфигурации не задан ни общий секрет, ни basic-пара,
//     мидлвар — no-op;
//   - общий секрет принимается в X-Access-Token либо Authorization: Bearer;
//   - basic-пара принимается стандартным Basic-заголовком;
//   - пробы /health, /livez и /healthz пропускаются всегда;
//   - сравнение секретов — константное по времени.
func AccessGate(cfg config.AuthConfig) Middleware {
	return func(next http.Handler) http.Handler {
		if !cfg.Enabled() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/health", "/livez", "/healthz":
				next.ServeHTTP(w, r)
				return
			}

			if allowed(cfg, r) {
				next.ServeHTTP(w, r)
				return
			}

			httperr.WriteError(w, r, httperr.ErrUnauthorized)
		})
	}
}

func allowed(cfg config.AuthConfig, r *http.Request) bool {
	if cfg.Token != "" {
		if equal(r.Header.Get("X-Access-Token"), cfg.Token) {
			return true
		}

		const prefix = "Bearer "
		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, prefix) {
			if equal(strings.TrimSpace(auth[len(prefix):]), cfg.Token) {
				return true
			}
		}
	}

	if cfg.BasicUser != "" && cfg.BasicPass != "" {
		if user, pass, ok := r.BasicAuth(); ok {
			return equal(user, cfg.BasicUser) && equal(pass, cfg.BasicPass)
		}
	}

	return false
}

func equal(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
