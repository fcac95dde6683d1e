package service

import (
	"context"
	"log/slog"

	"github.com/pribylovaa/news-search-service/internal/keywords"
	"github.com/pribylovaa/news-search-service/internal/models"
	logctx "github.com/pribylovaa/news-search-service/internal/pkg/log"
)

// ExtractKeywords извлекает топ значимых токенов из свободного текста.
// Чистая операция без внешних вызовов; пустой текст даёт пустой список.
func (s *Service) ExtractKeywords(ctx context.Context, text string) *models.ExtractResponse {
	const op = "service/extract/ExtractKeywords"

	kws := keywords.Extract(text, s.cfg.Search.ExtractTopN)
	if kws == nil {
		kws = []string{}
	}

	logctx.From(ctx).Info("keywords_extracted",
		slog.String("op", op),
		slog.Int("count", len(kws)),
	)

	return &models.ExtractResponse{Keywords: kws, Count: len(kws)}
}
