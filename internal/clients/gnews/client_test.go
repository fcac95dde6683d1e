package gnews

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/news-search-service/internal/config"
	"github.com/pribylovaa/news-search-service/internal/service"
)

// Пакет unit-тестов для клиента ленты.
//
// Покрытие:
//   - параметры запроса ленты (q/hl/gl/ceid) и экранирование ключевого слова;
//   - сохранение порядка ленты и потолок элементов;
//   - разбор даты публикации;
//   - элементы без title/link отбрасываются;
//   - сетевые ошибки источника — ошибка поиска.

func feedXML(items string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>test feed</title>` + items + `</channel></rss>`
}

func feedItem(title, link, pubDate string) string {
	return fmt.Sprintf(
		`<item><title>%s</title><link>%s</link><pubDate>%s</pubDate><description>%s summary</description></item>`,
		title, link, pubDate, title,
	)
}

func testClient(t *testing.T, srvURL string, limit int) *Client {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	cfg := config.FeedConfig{
		BaseURL:  srvURL,
		Lang:     "ko",
		Country:  "KR",
		Limit:    limit,
		MaxLimit: 100,
	}

	return New(cfg, &http.Client{Timeout: 5 * time.Second}, loc)
}

// TestFetch_QueryParams — адрес ленты собирается из конфигурации,
// ключевое слово экранируется.
func TestFetch_QueryParams(t *testing.T) {
	t.Parallel()

	var gotPath, gotQ, gotHL, gotGL, gotCEID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQ = r.URL.Query().Get("q")
		gotHL = r.URL.Query().Get("hl")
		gotGL = r.URL.Query().Get("gl")
		gotCEID = r.URL.Query().Get("ceid")

		fmt.Fprint(w, feedXML(feedItem("ai news", "https://news.example/1", "Tue, 10 Jun 2025 01:00:00 GMT")))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, 50)

	items, err := c.Fetch(context.Background(), "일본 경제", service.NewsQuery{})
	require.NoError(t, err)

	require.Equal(t, "/rss/search", gotPath)
	require.Equal(t, "일본 경제", gotQ)
	require.Equal(t, "ko", gotHL)
	require.Equal(t, "KR", gotGL)
	require.Equal(t, "KR:ko", gotCEID)

	require.Len(t, items, 1)
	require.Equal(t, "ai news", items[0].Title)
	require.Equal(t, "2025-06-10", items[0].PubDate)
	require.True(t, strings.HasPrefix(items[0].Summary, "ai news"))
}

// TestFetch_FeedOrderAndCap — порядок ленты сохраняется, потолок соблюдается.
func TestFetch_FeedOrderAndCap(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	for i := 0; i < 10; i++ {
		sb.WriteString(feedItem(
			fmt.Sprintf("item %d", i),
			fmt.Sprintf("https://news.example/%d", i),
			"Tue, 10 Jun 2025 01:00:00 GMT",
		))
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedXML(sb.String()))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, 3)

	items, err := c.Fetch(context.Background(), "ai", service.NewsQuery{})
	require.NoError(t, err)

	require.Len(t, items, 3)
	require.Equal(t, "item 0", items[0].Title)
	require.Equal(t, "item 1", items[1].Title)
	require.Equal(t, "item 2", items[2].Title)
}

// TestFetch_SkipsIncompleteItems — записи без заголовка или ссылки
// не попадают в выдачу.
func TestFetch_SkipsIncompleteItems(t *testing.T) {
	t.Parallel()

	body := feedXML(
		`<item><title>no link</title></item>` +
			feedItem("complete", "https://news.example/ok", "Tue, 10 Jun 2025 01:00:00 GMT"),
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, 50)

	items, err := c.Fetch(context.Background(), "ai", service.NewsQuery{})
	require.NoError(t, err)

	require.Len(t, items, 1)
	require.Equal(t, "complete", items[0].Title)
}

// TestFetch_UpstreamError — не-2xx ответ ленты — ошибка поиска.
func TestFetch_UpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, 50)

	_, err := c.Fetch(context.Background(), "ai", service.NewsQuery{})
	require.Error(t, err)
}
