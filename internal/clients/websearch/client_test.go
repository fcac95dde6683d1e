package websearch

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
	"github.com/pribylovaa/news-search-service/internal/service"
)

// Пакет unit-тестов для клиента веб-поиска.
//
// API эмулируется httptest-сервером через option.WithEndpoint.
//
// Покрытие:
//   - параметры запроса (q, cx, num, start);
//   - приоритет явного диапазона дат над date_restrict;
//   - прокидывание date_restrict без sort-директивы;
//   - языковой фильтр lr;
//   - постраничный сбор до max_results и остановка на неполной странице;
//   - 403 — ErrQuota без текста провайдера;
//   - незаведённый клиент — ErrNotConfigured без сетевых вызовов.

type fakePage struct {
	Items []map[string]string `json:"items"`
}

func fullPage(prefix string) fakePage {
	page := fakePage{}
	for i := 0; i < 10; i++ {
		page.Items = append(page.Items, map[string]string{
			"title":   fmt.Sprintf("%s %d", prefix, i),
			"link":    fmt.Sprintf("https://research.example/%s/%d", prefix, i),
			"snippet": "snippet",
		})
	}
	return page
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), config.GoogleConfig{
		APIKey:   "test-key",
		CX:       "test-engine",
		Endpoint: srv.URL,
	})
	require.NoError(t, err)

	return c
}

// TestSearch_Params — параметры запроса соответствуют контракту API.
func TestSearch_Params(t *testing.T) {
	t.Parallel()

	var gotQ, gotCX, gotNum, gotStart string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		gotCX = r.URL.Query().Get("cx")
		gotNum = r.URL.Query().Get("num")
		gotStart = r.URL.Query().Get("start")

		_ = json.NewEncoder(w).Encode(fakePage{Items: []map[string]string{
			{"title": "t", "link": "https://research.example/1", "snippet": "s"},
		}})
	})

	items, err := c.Search(context.Background(), "ai", service.ResearchQuery{MaxResults: 10})
	require.NoError(t, err)

	require.Equal(t, "ai", gotQ)
	require.Equal(t, "test-engine", gotCX)
	require.Equal(t, "10", gotNum)
	require.Equal(t, "1", gotStart)

	require.Len(t, items, 1)
	require.Equal(t, "t", items[0].Title)
	require.Equal(t, "s", items[0].Snippet)
}

// TestSearch_ExplicitRangeWinsOverRestrict — явный диапазон кодируется
// sort-директивой, date_restrict при этом не передаётся.
func TestSearch_ExplicitRangeWinsOverRestrict(t *testing.T) {
	t.Parallel()

	var gotSort, gotRestrict string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotSort = r.URL.Query().Get("sort")
		gotRestrict = r.URL.Query().Get("dateRestrict")

		_ = json.NewEncoder(w).Encode(fakePage{})
	})

	q := service.ResearchQuery{
		MaxResults:   10,
		From:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		To:           time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC),
		DateRestrict: "w1",
	}

	_, err := c.Search(context.Background(), "ai", q)
	require.NoError(t, err)

	require.Equal(t, "date:r:20250601:20250607", gotSort)
	require.Empty(t, gotRestrict)
}

// TestSearch_DateRestrictPassthrough — без явного диапазона относительное
// ограничение проходит как есть, sort-директива не выставляется.
func TestSearch_DateRestrictPassthrough(t *testing.T) {
	t.Parallel()

	var gotSort, gotRestrict string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotSort = r.URL.Query().Get("sort")
		gotRestrict = r.URL.Query().Get("dateRestrict")

		_ = json.NewEncoder(w).Encode(fakePage{})
	})

	_, err := c.Search(context.Background(), "ai", service.ResearchQuery{MaxResults: 10, DateRestrict: "w1"})
	require.NoError(t, err)

	require.Equal(t, "w1", gotRestrict)
	require.Empty(t, gotSort)
}

// TestSearch_LanguageFilter — language транслируется в lr=lang_<code>.
func TestSearch_LanguageFilter(t *testing.T) {
	t.Parallel()

	var gotLR string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotLR = r.URL.Query().Get("lr")
		_ = json.NewEncoder(w).Encode(fakePage{})
	})

	_, err := c.Search(context.Background(), "ai", service.ResearchQuery{MaxResults: 5, Language: "ko"})
	require.NoError(t, err)

	require.Equal(t, "lang_ko", gotLR)
}

// TestSearch_PaginationAndCap — смещения 1, 11, 21 и усечение до max_results.
func TestSearch_PaginationAndCap(t *testing.T) {
	t.Parallel()

	var starts []string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		start := r.URL.Query().Get("start")
		starts = append(starts, start)

		_ = json.NewEncoder(w).Encode(fullPage("page" + start))
	})

	items, err := c.Search(context.Background(), "ai", service.ResearchQuery{MaxResults: 25})
	require.NoError(t, err)

	require.Equal(t, []string{"1", "11", "21"}, starts)
	require.Len(t, items, 25)
}

// TestSearch_StopsOnShortPage — неполная страница завершает обход.
func TestSearch_StopsOnShortPage(t *testing.T) {
	t.Parallel()

	var calls int

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(fakePage{Items: []map[string]string{
			{"title": "only", "link": "https://research.example/only", "snippet": "s"},
		}})
	})

	items, err := c.Search(context.Background(), "ai", service.ResearchQuery{MaxResults: 30})
	require.NoError(t, err)

	require.Equal(t, 1, calls)
	require.Len(t, items, 1)
}

// TestSearch_QuotaError — 403 превращается в ErrQuota, текст провайдера
// не попадает в маркер ошибки.
func TestSearch_QuotaError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":403,"message":"billing disabled for project secret-project"}}`)
	})

	_, err := c.Search(context.Background(), "ai", service.ResearchQuery{MaxResults: 10})
	require.ErrorIs(t, err, service.ErrQuota)
}

// TestSearch_NotConfigured — без учётных данных сетевых вызовов нет.
func TestSearch_NotConfigured(t *testing.T) {
	t.Parallel()

	c, err := New(context.Background(), config.GoogleConfig{})
	require.NoError(t, err)

	_, err = c.Search(context.Background(), "ai", service.ResearchQuery{MaxResults: 10})
	require.ErrorIs(t, err, service.ErrNotConfigured)
}
