package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/news-search-service/internal/keywords"
	"github.com/pribylovaa/news-search-service/internal/models"
	logctx "github.com/pribylovaa/news-search-service/internal/pkg/log"
	"github.com/pribylovaa/news-search-service/internal/pkg/redact"
)

// dateLayout — формат дат внешнего контракта (YYYY-MM-DD).
const dateLayout = "2006-01-02"

// defaultPeriodDays — глубина периода по умолчанию, когда даты не заданы.
const defaultPeriodDays = 7

// newsResult — результат обращения к источнику по одному ключевому слову:
// либо элементы, либо помеченная причина сбоя. Вызывающий обязан явно
// обработать ветку Err.
type newsResult struct {
	keyword string
	items   []models.NewsItem
	err     error
}

// SearchNews выполняет полный новостной пайплайн: разбор ключевых слов,
// обход выбранного источника по каждому слову, опциональное переранжирование
// по релевантности, агрегацию и best-effort уведомление.
//
// Правила:
//   - пустой список ключевых слов — ErrInvalidArgument;
//   - даты по умолчанию — [сегодня-7д, сегодня] в часовом поясе сервиса;
//   - provider по умолчанию primary; primary без учётных данных —
//     ErrNotConfigured до первого сетевого обращения;
//   - сбой по одному ключевому слову даёт ноль элементов и предупреждение;
//     если не выжило ни одно слово — ErrUpstream;
//   - сбой уведомления отражается только флагом SlackSent и сообщением.
func (s *Service) SearchNews(ctx context.Context, req models.NewsSearchRequest) (*models.NewsSearchResponse, error) {
	const op = "service/news/SearchNews"

	lg := logctx.From(ctx).With(slog.String("search_id", uuid.NewString()))
	ctx = logctx.Into(ctx, lg)

	kws := keywords.Parse(req.Keyword)
	if len(kws) == 0 {
		return nil, fmt.Errorf("%s: keyword required: %w", op, ErrInvalidArgument)
	}

	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = models.SortRelevance
	}
	if sortBy != models.SortRelevance && sortBy != models.SortDate {
		return nil, fmt.Errorf("%s: unknown sort_by %q: %w", op, req.SortBy, ErrInvalidArgument)
	}

	provider := req.Provider
	if provider == "" {
		provider = models.ProviderPrimary
	}

	var source NewsSource
	switch provider {
	case models.ProviderPrimary:
		if !s.cfg.Naver.Configured() {
			return nil, fmt.Errorf("%s: %w", op, ErrNotConfigured)
		}
		source = s.primary
	case models.ProviderSecondary:
		source = s.secondary
	default:
		return nil, fmt.Errorf("%s: unknown provider %q: %w", op, req.Provider, ErrInvalidArgument)
	}

	from, to, err := s.resolvePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	useRelevance := true
	if req.UseRelevanceFilter != nil {
		useRelevance = *req.UseRelevanceFilter
	}

	lg.Info("news_search_request",
		slog.String("op", op),
		slog.Int("keywords", len(kws)),
		slog.String("provider", string(provider)),
		slog.String("sort_by", string(sortBy)),
		slog.Bool("relevance_filter", useRelevance),
	)

	results := s.fetchAll(ctx, source, kws, NewsQuery{From: from, To: to, Sort: sortBy})

	news := make([]models.NewsItem, 0, len(kws)*s.cfg.Search.TopN)
	failed := 0

	for _, res := range results {
		if res.err != nil {
			failed++
			lg.Warn("keyword_search_failed",
				slog.String("op", op),
				slog.String("keyword", res.keyword),
				slog.String("err", redact.Mask(res.err.Error())),
			)
			continue
		}

		items := res.items
		if useRelevance {
			items = s.ranker.SelectTop(items, res.keyword, s.cfg.Search.TopN)
		}

		for i := range items {
			items[i].Keyword = res.keyword
		}

		news = append(news, items...)
	}

	if failed == len(kws) {
		return nil, fmt.Errorf("%s: all keywords failed: %w", op, ErrUpstream)
	}

	period := from.Format(dateLayout) + " ~ " + to.Format(dateLayout)

	sent := false
	if s.notifier != nil {
		sent = s.notifier.Notify(ctx, Summary{Keyword: req.Keyword, Period: period, Items: news})
	}

	message := "slack delivery skipped: webhook is not configured or the call failed"
	if sent {
		message = fmt.Sprintf("sent %d news items to slack", len(news))
	}

	lg.Info("news_search_done",
		slog.String("op", op),
		slog.Int("news_count", len(news)),
		slog.Int("keywords_failed", failed),
		slog.Bool("slack_sent", sent),
	)

	return &models.NewsSearchResponse{
		Keyword:   req.Keyword,
		Keywords:  kws,
		Period:    period,
		NewsCount: len(news),
		News:      news,
		SlackSent: sent,
		Message:   message,
	}, nil
}

// resolvePeriod подставляет даты по умолчанию и проверяет формат и порядок.
func (s *Service) resolvePeriod(startRaw, endRaw string) (time.Time, time.Time, error) {
	now := s.Now()

	if endRaw == "" {
		endRaw = now.Format(dateLayout)
	}

	if startRaw == "" {
		startRaw = now.AddDate(0, 0, -defaultPeriodDays).Format(dateLayout)
	}

	from, err := time.ParseInLocation(dateLayout, startRaw, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q: %w", startRaw, ErrInvalidArgument)
	}

	to, err := time.ParseInLocation(dateLayout, endRaw, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q: %w", endRaw, ErrInvalidArgument)
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date after end_date: %w", ErrInvalidArgument)
	}

	return from, to, nil
}

// fetchAll опрашивает источник по каждому ключевому слову. Обращения
// независимы и идут конкурентно под семафором; итог сохраняет порядок
// ввода ключевых слов.
func (s *Service) fetchAll(ctx context.Context, src NewsSource, kws []string, q NewsQuery) []newsResult {
	results := make([]newsResult, len(kws))

	sem := make(chan struct{}, s.cfg.Search.MaxConcurrent)
	var wg sync.WaitGroup

	for i, kw := range kws {
		wg.Add(1)
		sem <- struct{}{}

		go func(i int, kw string) {
			defer wg.Done()
			defer func() { <-sem }()

			items, err := src.Fetch(ctx, kw, q)
			results[i] = newsResult{keyword: kw, items: items, err: err}
		}(i, kw)
	}

	wg.Wait()

	return results
}
