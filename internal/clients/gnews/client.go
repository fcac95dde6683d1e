// gnews — адаптер публичной новостной ленты (Google News RSS).
// Реализует service.NewsSource: один непостраничный запрос на ключевое
// слово, элементы берутся в порядке ленты (обычно по свежести).
package gnews

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/pribylovaa/news-search-service/internal/config"
	"github.com/pribylovaa/news-search-service/internal/models"
	logctx "github.com/pribylovaa/news-search-service/internal/pkg/log"
	"github.com/pribylovaa/news-search-service/internal/service"
)

// Client — клиент ленты.
//
// Особенности:
//   - лента не поддерживает фильтр по диапазону дат, NewsQuery.From/To
//     игнорируются;
//   - мягкий потолок cfg.Limit элементов на ключевое слово.
type Client struct {
	parser *gofeed.Parser
	cfg    config.FeedConfig
	loc    *time.Location
}

// New создаёт клиент вторичного источника.
func New(cfg config.FeedConfig, httpc *http.Client, loc *time.Location) *Client {
	parser := gofeed.NewParser()
	if httpc != nil {
		parser.Client = httpc
	}

	if loc == nil {
		loc = time.UTC
	}

	return &Client{parser: parser, cfg: cfg, loc: loc}
}

// Fetch возвращает не более cfg.Limit новостей по одному ключевому слову
// в порядке ленты.
func (c *Client) Fetch(ctx context.Context, keyword string, _ service.NewsQuery) ([]models.NewsItem, error) {
	const op = "clients/gnews/Fetch"

	feedURL := fmt.Sprintf("%s/rss/search?q=%s&hl=%s&gl=%s&ceid=%s:%s",
		c.cfg.BaseURL,
		url.QueryEscape(keyword),
		c.cfg.Lang, c.cfg.Country,
		c.cfg.Country, c.cfg.Lang,
	)

	feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: parse_feed: %w", op, err)
	}

	limit := c.cfg.Limit
	if limit > c.cfg.MaxLimit {
		limit = c.cfg.MaxLimit
	}

	out := make([]models.NewsItem, 0, limit)
	for _, item := range feed.Items {
		if len(out) == limit {
			break
		}

		if item.Title == "" || item.Link == "" {
			continue
		}

		published := time.Now().In(c.loc)
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.In(c.loc)
		} else if item.UpdatedParsed != nil {
			published = item.UpdatedParsed.In(c.loc)
		}

		out = append(out, models.NewsItem{
			Title:   item.Title,
			Link:    item.Link,
			PubDate: published.Format("2006-01-02"),
			Summary: item.Description,
		})
	}

	logctx.From(ctx).Info("gnews_fetch_done",
		slog.String("op", op),
		slog.String("keyword", keyword),
		slog.Int("items", len(out)),
	)

	return out, nil
}
