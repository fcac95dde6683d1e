// websearch — адаптер веб-поиска по институциональным доменам поверх
// Google Custom Search JSON API. Реализует service.ResearchSource.
//
// Allow-list доменов настраивается на стороне поискового движка (CX),
// сервис его не знает и не проверяет.
package websearch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/pribylovaa/news-search-service/internal/config"
	"github.com/pribylovaa/news-search-service/internal/models"
	logctx "github.com/pribylovaa/news-search-service/internal/pkg/log"
	"github.com/pribylovaa/news-search-service/internal/service"
)

// pageSize — размер страницы Custom Search (максимум API).
const pageSize = 10

// maxStart — последнее смещение: страницы 1, 11, 21 покрывают потолок
// в 30 результатов.
const maxStart = 21

// sortRangeLayout — формат дат в директиве sort=date:r:start:end.
const sortRangeLayout = "20060102"

// Client — клиент Custom Search.
type Client struct {
	svc *customsearch.Service
	cx  string
}

// New создаёт клиент веб-поиска. Без учётных данных возвращается
// незаведённый клиент: Search ответит ErrNotConfigured без сетевых вызовов.
func New(ctx context.Context, cfg config.GoogleConfig) (*Client, error) {
	if !cfg.Configured() {
		return &Client{}, nil
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("clients/websearch/New: %w", err)
	}

	return &Client{svc: svc, cx: cfg.CX}, nil
}

// Search собирает до q.MaxResults результатов по одному ключевому слову,
// последовательно опрашивая страницы со смещениями 1, 11, 21.
//
// Правила:
//   - явный диапазон дат кодируется директивой sort=date:r:YYYYMMDD:YYYYMMDD
//     и имеет приоритет над DateRestrict;
//   - неполная страница завершает обход (конец выдачи);
//   - 403-класс — service.ErrQuota; текст провайдера наружу не проходит.
func (c *Client) Search(ctx context.Context, keyword string, q service.ResearchQuery) ([]models.ResearchItem, error) {
	const op = "clients/websearch/Search"

	if c.svc == nil {
		return nil, fmt.Errorf("%s: %w", op, service.ErrNotConfigured)
	}

	want := q.MaxResults
	if want <= 0 || want > maxStart+pageSize-1 {
		want = maxStart + pageSize - 1
	}

	out := make([]models.ResearchItem, 0, want)

	for start := int64(1); start <= maxStart && len(out) < want; start += pageSize {
		call := c.svc.Cse.List().
			Context(ctx).
			Q(keyword).
			Cx(c.cx).
			Num(pageSize).
			Start(start)

		switch {
		case !q.From.IsZero() && !q.To.IsZero():
			call = call.Sort(fmt.Sprintf("date:r:%s:%s",
				q.From.Format(sortRangeLayout), q.To.Format(sortRangeLayout)))
		case q.DateRestrict != "":
			call = call.DateRestrict(q.DateRestrict)
		}

		if q.Language != "" {
			call = call.Lr("lang_" + q.Language)
		}

		resp, err := call.Do()
		if err != nil {
			var gerr *googleapi.Error
			if errors.As(err, &gerr) && gerr.Code == http.StatusForbidden {
				// Биллинг/квота: наружу только фиксированный маркер,
				// тело ответа провайдера остаётся в ошибке для логов.
				return nil, fmt.Errorf("%s: status=%d: %w", op, gerr.Code, service.ErrQuota)
			}

			return nil, fmt.Errorf("%s: do: %w", op, err)
		}

		for _, item := range resp.Items {
			if len(out) == want {
				break
			}

			out = append(out, models.ResearchItem{
				Title:   item.Title,
				Link:    item.Link,
				Snippet: item.Snippet,
			})
		}

		// Неполная страница — конец выдачи.
		if len(resp.Items) < pageSize {
			break
		}
	}

	logctx.From(ctx).Info("websearch_done",
		slog.String("op", op),
		slog.String("keyword", keyword),
		slog.Int("items", len(out)),
	)

	return out, nil
}
