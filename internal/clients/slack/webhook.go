// slack — исходящий incoming-webhook Slack для сводок по результатам
// поиска новостей. Реализует service.Notifier: доставка best-effort,
// сбой никогда не превращается в ошибку запроса.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pribylovaa/news-search-service/internal/config"
	logctx "github.com/pribylovaa/news-search-service/internal/pkg/log"
	"github.com/pribylovaa/news-search-service/internal/pkg/redact"
	"github.com/pribylovaa/news-search-service/internal/service"
)

// itemsPerSection — лимит строк в одной section-секции Block Kit
// (ограничение Slack на длину text — 3000 символов).
const itemsPerSection = 10

// Webhook — клиент incoming-webhook.
//
// Правила:
//   - пустой URL выключает отправку: no-op без сетевых обращений;
//   - любой сбой (сеть, не-2xx) логируется с маскированием и
//     возвращается как false, не как ошибка.
type Webhook struct {
	httpc *http.Client
	cfg   config.SlackConfig
}

// New создаёт клиент уведомлений.
func New(cfg config.SlackConfig, httpc *http.Client) *Webhook {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}

	return &Webhook{httpc: httpc, cfg: cfg}
}

type block struct {
	Type string     `json:"type"`
	Text *blockText `json:"text,omitempty"`
}

type blockText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Notify отправляет сводку в webhook. Возвращает признак доставки.
func (w *Webhook) Notify(ctx context.Context, s service.Summary) bool {
	const op = "clients/slack/Notify"

	if w.cfg.WebhookURL == "" {
		return false
	}

	lg := logctx.From(ctx)

	body, err := json.Marshal(map[string]any{"blocks": buildBlocks(s)})
	if err != nil {
		lg.Warn("slack_marshal_failed", slog.String("op", op), slog.String("error", err.Error()))
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		lg.Warn("slack_request_failed", slog.String("op", op), slog.String("error", redact.Mask(err.Error())))
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpc.Do(req)
	if err != nil {
		lg.Warn("slack_delivery_failed", slog.String("op", op), slog.String("error", redact.Mask(err.Error())))
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		lg.Warn("slack_delivery_failed",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
		)
		return false
	}

	lg.Info("slack_delivered",
		slog.String("op", op),
		slog.String("keyword", s.Keyword),
		slog.Int("items", len(s.Items)),
	)

	return true
}

// buildBlocks собирает сообщение Block Kit: заголовок, сводная секция
// с периодом и количеством, затем нумерованный список ссылок частями
// по itemsPerSection элементов.
func buildBlocks(s service.Summary) []block {
	blocks := []block{
		{
			Type: "header",
			Text: &blockText{Type: "plain_text", Text: fmt.Sprintf("📰 '%s' 뉴스 검색 결과", s.Keyword)},
		},
		{
			Type: "section",
			Text: &blockText{
				Type: "mrkdwn",
				Text: fmt.Sprintf("*기간:* %s\n*뉴스 개수:* %d건", s.Period, len(s.Items)),
			},
		},
	}

	var buf bytes.Buffer
	for i, item := range s.Items {
		fmt.Fprintf(&buf, "%d. <%s|%s> (%s)\n", i+1, item.Link, item.Title, item.PubDate)

		if (i+1)%itemsPerSection == 0 || i == len(s.Items)-1 {
			blocks = append(blocks, block{
				Type: "section",
				Text: &blockText{Type: "mrkdwn", Text: buf.String()},
			})
			buf.Reset()
		}
	}

	return blocks
}
