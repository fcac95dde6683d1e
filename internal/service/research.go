package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/news-search-service/internal/keywords"
	"github.com/pribylovaa/news-search-service/internal/models"
	logctx "github.com/pribylovaa/news-search-service/internal/pkg/log"
	"github.com/pribylovaa/news-search-service/internal/pkg/redact"
)

// dateRestricts — допустимые относительные ограничения свежести веб-поиска.
var dateRestricts = map[string]struct{}{
	"d1": {},
	"w1": {},
	"m1": {},
	"y1": {},
}

// SearchResearch выполняет веб-поиск по институциональным доменам для
// каждого ключевого слова и агрегирует результаты.
//
// Правила:
//   - пустой список ключевых слов — ErrInvalidArgument;
//   - max_results: 0 → серверный default, вне [1, research_max] —
//     ErrInvalidArgument;
//   - даты задаются парой; явный диапазон имеет приоритет над date_restrict;
//   - ErrQuota (биллинг/квота) прерывает весь запрос;
//   - прочие сбои источника — ноль элементов по слову; если не выжило
//     ни одно — ErrUpstream.
func (s *Service) SearchResearch(ctx context.Context, req models.ResearchSearchRequest) (*models.ResearchSearchResponse, error) {
	const op = "service/research/SearchResearch"

	lg := logctx.From(ctx).With(slog.String("search_id", uuid.NewString()))
	ctx = logctx.Into(ctx, lg)

	kws := keywords.Parse(req.Keyword)
	if len(kws) == 0 {
		return nil, fmt.Errorf("%s: keyword required: %w", op, ErrInvalidArgument)
	}

	if !s.cfg.Google.Configured() {
		return nil, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = s.cfg.Search.ResearchDefault
	}
	if maxResults < 1 || maxResults > s.cfg.Search.ResearchMax {
		return nil, fmt.Errorf("%s: max_results %d out of range: %w", op, req.MaxResults, ErrInvalidArgument)
	}

	if req.DateRestrict != "" {
		if _, ok := dateRestricts[req.DateRestrict]; !ok {
			return nil, fmt.Errorf("%s: unknown date_restrict %q: %w", op, req.DateRestrict, ErrInvalidArgument)
		}
	}

	var from, to time.Time
	switch {
	case req.StartDate == "" && req.EndDate == "":
		// Относительное ограничение (если задано) проходит как есть.
	case req.StartDate != "" && req.EndDate != "":
		var err error
		from, err = time.ParseInLocation(dateLayout, req.StartDate, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid start_date %q: %w", op, req.StartDate, ErrInvalidArgument)
		}

		to, err = time.ParseInLocation(dateLayout, req.EndDate, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid end_date %q: %w", op, req.EndDate, ErrInvalidArgument)
		}

		if from.After(to) {
			return nil, fmt.Errorf("%s: start_date after end_date: %w", op, ErrInvalidArgument)
		}
	default:
		return nil, fmt.Errorf("%s: start_date and end_date must be set together: %w", op, ErrInvalidArgument)
	}

	q := ResearchQuery{
		MaxResults:   maxResults,
		From:         from,
		To:           to,
		DateRestrict: req.DateRestrict,
		Language:     req.Language,
	}

	lg.Info("research_search_request",
		slog.String("op", op),
		slog.Int("keywords", len(kws)),
		slog.Int("max_results", maxResults),
		slog.Bool("explicit_range", !from.IsZero()),
		slog.String("date_restrict", req.DateRestrict),
	)

	// Веб-поиск квотируется жёстко, обращения идут последовательно.
	items := make([]models.ResearchItem, 0, len(kws)*maxResults)
	failed := 0

	for _, kw := range kws {
		found, err := s.research.Search(ctx, kw, q)
		if err != nil {
			if errors.Is(err, ErrQuota) {
				lg.Error("research_quota_exceeded", slog.String("op", op))
				return nil, fmt.Errorf("%s: %w", op, ErrQuota)
			}

			failed++
			lg.Warn("keyword_search_failed",
				slog.String("op", op),
				slog.String("keyword", kw),
				slog.String("err", redact.Mask(err.Error())),
			)
			continue
		}

		for i := range found {
			found[i].Keyword = kw
		}

		items = append(items, found...)
	}

	if failed == len(kws) {
		return nil, fmt.Errorf("%s: all keywords failed: %w", op, ErrUpstream)
	}

	lg.Info("research_search_done",
		slog.String("op", op),
		slog.Int("total_results", len(items)),
		slog.Int("keywords_failed", failed),
	)

	return &models.ResearchSearchResponse{
		Keyword:      req.Keyword,
		Keywords:     kws,
		TotalResults: len(items),
		Items:        items,
		Message:      "research search completed",
	}, nil
}
