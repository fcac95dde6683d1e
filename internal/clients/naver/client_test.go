package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/news-search-service/internal/config"
	"github.com/pribylovaa/news-search-service/internal/models"
	"github.com/pribylovaa/news-search-service/internal/service"
)

// Пакет unit-тестов для клиента Naver.
//
// Покрытие:
//   - заголовки аутентификации и параметры запроса;
//   - очистка HTML-разметки в title/description;
//   - фильтр по диапазону дат публикации;
//   - потолок элементов на ключевое слово и пагинация;
//   - отсутствие учётных данных — ErrNotConfigured без сетевого вызова;
//   - не-2xx ответ — ошибка поиска.

func testLocation(t *testing.T) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	return loc
}

func testConfig(baseURL string) config.NaverConfig {
	return config.NaverConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		BaseURL:      baseURL,
		PageSize:     100,
		MaxPages:     5,
		PerKeyword:   30,
	}
}

// apiPayload собирает JSON-ответ API из произвольных элементов.
func apiPayload(items ...apiItem) apiResponse {
	return apiResponse{Total: len(items), Items: items}
}

func pubDate(t *testing.T, day string) string {
	t.Helper()

	parsed, err := time.ParseInLocation("2006-01-02", day, time.UTC)
	require.NoError(t, err)
	return parsed.Format(pubDateLayout)
}

// TestFetch_HeadersAndParams — учётные данные уходят заголовками,
// параметры запроса соответствуют контракту API.
func TestFetch_HeadersAndParams(t *testing.T) {
	t.Parallel()

	var gotHeaderID, gotHeaderSecret, gotQuery, gotSort, gotDisplay string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaderID = r.Header.Get("X-Naver-Client-Id")
		gotHeaderSecret = r.Header.Get("X-Naver-Client-Secret")
		gotQuery = r.URL.Query().Get("query")
		gotSort = r.URL.Query().Get("sort")
		gotDisplay = r.URL.Query().Get("display")

		_ = json.NewEncoder(w).Encode(apiPayload(apiItem{
			Title:   "<b>AI</b> news",
			Link:    "https://news.example/1",
			PubDate: pubDate(t, "2025-06-10"),
		}))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), srv.Client(), testLocation(t))

	items, err := c.Fetch(context.Background(), "AI", service.NewsQuery{Sort: models.SortDate})
	require.NoError(t, err)

	require.Equal(t, "id", gotHeaderID)
	require.Equal(t, "secret", gotHeaderSecret)
	require.Equal(t, "AI", gotQuery)
	require.Equal(t, "date", gotSort)
	require.Equal(t, "100", gotDisplay)

	require.Len(t, items, 1)
	require.Equal(t, "AI news", items[0].Title, "HTML markup must be stripped")
	require.Equal(t, "2025-06-10", items[0].PubDate)
}

// TestFetch_DateRangeFilter — элементы вне диапазона отбрасываются.
func TestFetch_DateRangeFilter(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(apiPayload(
			apiItem{Title: "inside", Link: "https://news.example/in", PubDate: pubDate(t, "2025-06-05")},
			apiItem{Title: "too old", Link: "https://news.example/old", PubDate: pubDate(t, "2025-05-01")},
			apiItem{Title: "too new", Link: "https://news.example/new", PubDate: pubDate(t, "2025-07-01")},
		))
	}))
	defer srv.Close()

	loc := testLocation(t)
	c := New(testConfig(srv.URL), srv.Client(), loc)

	q := service.NewsQuery{
		From: time.Date(2025, 6, 1, 0, 0, 0, 0, loc),
		To:   time.Date(2025, 6, 7, 0, 0, 0, 0, loc),
	}

	items, err := c.Fetch(context.Background(), "ai", q)
	require.NoError(t, err)

	require.Len(t, items, 1)
	require.Equal(t, "inside", items[0].Title)
}

// TestFetch_PerKeywordCap — выдача никогда не превышает потолок
// на ключевое слово, пагинация останавливается после заполнения.
func TestFetch_PerKeywordCap(t *testing.T) {
	t.Parallel()

	var pages int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++

		full := make([]apiItem, 100)
		for i := range full {
			full[i] = apiItem{
				Title:   fmt.Sprintf("item %d", i),
				Link:    fmt.Sprintf("https://news.example/%d", i),
				PubDate: pubDate(t, "2025-06-10"),
			}
		}
		_ = json.NewEncoder(w).Encode(apiPayload(full...))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), srv.Client(), testLocation(t))

	items, err := c.Fetch(context.Background(), "ai", service.NewsQuery{})
	require.NoError(t, err)

	require.Len(t, items, 30)
	require.Equal(t, 1, pages, "cap reached on the first page, no extra requests")
}

// TestFetch_Pagination — неполная страница завершает обход.
func TestFetch_Pagination(t *testing.T) {
	t.Parallel()

	var starts []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		starts = append(starts, r.URL.Query().Get("start"))

		// Две полных страницы отфильтровываются по датам, третья неполная.
		if len(starts) < 3 {
			full := make([]apiItem, 100)
			for i := range full {
				full[i] = apiItem{
					Title:   "old",
					Link:    "https://news.example/old",
					PubDate: pubDate(t, "2020-01-01"),
				}
			}
			_ = json.NewEncoder(w).Encode(apiPayload(full...))
			return
		}

		_ = json.NewEncoder(w).Encode(apiPayload(apiItem{
			Title:   "fresh",
			Link:    "https://news.example/fresh",
			PubDate: pubDate(t, "2025-06-10"),
		}))
	}))
	defer srv.Close()

	loc := testLocation(t)
	c := New(testConfig(srv.URL), srv.Client(), loc)

	q := service.NewsQuery{
		From: time.Date(2025, 6, 1, 0, 0, 0, 0, loc),
		To:   time.Date(2025, 6, 30, 0, 0, 0, 0, loc),
	}

	items, err := c.Fetch(context.Background(), "ai", q)
	require.NoError(t, err)

	require.Equal(t, []string{"1", "101", "201"}, starts)
	require.Len(t, items, 1)
	require.Equal(t, "fresh", items[0].Title)
}

// TestFetch_MissingCredentials — без учётных данных сетевой вызов
// не выполняется.
func TestFetch_MissingCredentials(t *testing.T) {
	t.Parallel()

	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.ClientID = ""

	c := New(cfg, srv.Client(), testLocation(t))

	_, err := c.Fetch(context.Background(), "ai", service.NewsQuery{})
	require.ErrorIs(t, err, service.ErrNotConfigured)
	require.Zero(t, calls)
}

// TestFetch_UpstreamError — не-2xx ответ источника — ошибка поиска.
func TestFetch_UpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), srv.Client(), testLocation(t))

	_, err := c.Fetch(context.Background(), "ai", service.NewsQuery{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=429")
}
