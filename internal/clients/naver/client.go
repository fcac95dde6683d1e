// naver — адаптер коммерческого поискового API новостей (Naver Open API).
// Реализует service.NewsSource: переводит постраничную выдачу
// /v1/search/news.json в нормализованные models.NewsItem.
package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pribylovaa/news-search-service/internal/config"
	"github.com/pribylovaa/news-search-service/internal/models"
	logctx "github.com/pribylovaa/news-search-service/internal/pkg/log"
	"github.com/pribylovaa/news-search-service/internal/service"
)

// pubDateLayout — формат pubDate в ответе API (RFC1123 с числовой зоной).
const pubDateLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

// tagPattern — HTML-разметка в title/description (<b>…</b> и пр.).
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Client — HTTP-клиент Naver Open API.
//
// Особенности:
//   - учётные данные проверяются до первого сетевого обращения;
//   - выдача фильтруется по дате публикации на нашей стороне
//     (сам API диапазон не поддерживает);
//   - жёсткий потолок cfg.PerKeyword элементов на ключевое слово.
type Client struct {
	httpc *http.Client
	cfg   config.NaverConfig
	loc   *time.Location
}

// New создаёт клиент первичного источника.
func New(cfg config.NaverConfig, httpc *http.Client, loc *time.Location) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}

	if loc == nil {
		loc = time.UTC
	}

	return &Client{httpc: httpc, cfg: cfg, loc: loc}
}

// apiResponse — релевантная часть ответа /v1/search/news.json.
type apiResponse struct {
	Total int       `json:"total"`
	Items []apiItem `json:"items"`
}

type apiItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	PubDate     string `json:"pubDate"`
}

// Fetch возвращает не более cfg.PerKeyword новостей по одному ключевому
// слову, опрашивая до cfg.MaxPages страниц по cfg.PageSize элементов.
// Остановка — по заполнению потолка либо по неполной странице.
func (c *Client) Fetch(ctx context.Context, keyword string, q service.NewsQuery) ([]models.NewsItem, error) {
	const op = "clients/naver/Fetch"

	if !c.cfg.Configured() {
		return nil, fmt.Errorf("%s: %w", op, service.ErrNotConfigured)
	}

	lg := logctx.From(ctx)

	sortParam := "sim"
	if q.Sort == models.SortDate {
		sortParam = "date"
	}

	out := make([]models.NewsItem, 0, c.cfg.PerKeyword)

	for page := 0; page < c.cfg.MaxPages && len(out) < c.cfg.PerKeyword; page++ {
		start := page*c.cfg.PageSize + 1

		items, err := c.fetchPage(ctx, keyword, sortParam, start)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		for _, item := range items {
			news, ok := c.normalize(ctx, item, q)
			if !ok {
				continue
			}

			out = append(out, news)
			if len(out) == c.cfg.PerKeyword {
				break
			}
		}

		// Неполная страница — конец выдачи источника.
		if len(items) < c.cfg.PageSize {
			break
		}
	}

	lg.Info("naver_fetch_done",
		slog.String("op", op),
		slog.String("keyword", keyword),
		slog.Int("items", len(out)),
	)

	return out, nil
}

// fetchPage выполняет один постраничный запрос к API.
func (c *Client) fetchPage(ctx context.Context, keyword, sortParam string, start int) ([]apiItem, error) {
	const op = "clients/naver/fetchPage"

	params := url.Values{}
	params.Set("query", keyword)
	params.Set("display", strconv.Itoa(c.cfg.PageSize))
	params.Set("start", strconv.Itoa(start))
	params.Set("sort", sortParam)

	reqURL := c.cfg.BaseURL + "/v1/search/news.json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new_request: %w", op, err)
	}

	req.Header.Set("X-Naver-Client-Id", c.cfg.ClientID)
	req.Header.Set("X-Naver-Client-Secret", c.cfg.ClientSecret)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: status=%d", op, resp.StatusCode)
	}

	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	return decoded.Items, nil
}

// normalize приводит элемент API к доменной модели и применяет фильтр
// по дате публикации. Непарсимая дата заменяется текущей, а не валит элемент.
func (c *Client) normalize(ctx context.Context, item apiItem, q service.NewsQuery) (models.NewsItem, bool) {
	title := cleanMarkup(item.Title)
	link := strings.TrimSpace(item.Link)

	if title == "" || link == "" {
		return models.NewsItem{}, false
	}

	published := time.Now().In(c.loc)
	if raw := strings.TrimSpace(item.PubDate); raw != "" {
		parsed, err := time.Parse(pubDateLayout, raw)
		if err != nil {
			logctx.From(ctx).Warn("naver_pubdate_unparsed",
				slog.String("op", "clients/naver/normalize"),
				slog.String("pub_date", raw),
			)
		} else {
			published = parsed.In(c.loc)
		}
	}

	if !withinRange(published, q.From, q.To, c.loc) {
		return models.NewsItem{}, false
	}

	return models.NewsItem{
		Title:   title,
		Link:    link,
		PubDate: published.Format("2006-01-02"),
		Summary: cleanMarkup(item.Description),
	}, true
}

// withinRange проверяет попадание даты публикации (с точностью до дня)
// в границы периода; нулевые границы отключают фильтр.
func withinRange(published, from, to time.Time, loc *time.Location) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}

	y, m, d := published.In(loc).Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	if !from.IsZero() && day.Before(from) {
		return false
	}

	if !to.IsZero() && day.After(to) {
		return false
	}

	return true
}

// cleanMarkup убирает HTML-разметку и сущности из текстов API.
func cleanMarkup(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(s, "")))
}
