// service содержит бизнес-логику сервиса поиска новостей и исследований:
// разбор ключевых слов, обход источников, агрегацию, переранжирование
// и best-effort уведомления.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/pribylovaa/news-search-service/internal/config"
	"github.com/pribylovaa/news-search-service/internal/models"
	"github.com/pribylovaa/news-search-service/internal/relevance"
)

var (
	// ErrInvalidArgument — некорректные входные аргументы (пустые ключевые
	// слова, битый формат даты и т.п.).
	// Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotConfigured — отсутствуют обязательные учётные данные источника.
	// Фиксируется до первого сетевого обращения.
	// Транспорт: 500 с фиксированным сообщением.
	ErrNotConfigured = errors.New("source credentials not configured")
	// ErrUpstream — внешний источник недоступен либо ответил не-2xx;
	// при нескольких ключевых словах возвращается только если не выжило
	// ни одно.
	// Транспорт: 502.
	ErrUpstream = errors.New("upstream search failed")
	// ErrQuota — квота/биллинг веб-поиска (403-класс).
	// Транспорт: 403 с фиксированным сообщением, текст провайдера не
	// проходит наружу.
	ErrQuota = errors.New("search quota exceeded")
)

// NewsQuery — параметры обращения к источнику новостей по одному
// ключевому слову.
//
// Особенности:
//   - From/To — границы периода публикации (включительно); нулевые значения
//     означают отсутствие фильтра (лента диапазон не поддерживает);
//   - Sort учитывается только первичным источником.
type NewsQuery struct {
	From time.Time
	To   time.Time
	Sort models.SortOrder
}

// ResearchQuery — параметры обращения к веб-поиску по одному ключевому слову.
type ResearchQuery struct {
	MaxResults   int
	From         time.Time
	To           time.Time
	DateRestrict string
	Language     string
}

// Summary — материал для уведомления по результатам поиска новостей.
type Summary struct {
	Keyword string
	Period  string
	Items   []models.NewsItem
}

// NewsSource — адаптер одного внешнего API новостей: переводит
// запрос/ответ источника в нормализованные models.NewsItem.
type NewsSource interface {
	Fetch(ctx context.Context, keyword string, q NewsQuery) ([]models.NewsItem, error)
}

// ResearchSource — адаптер веб-поиска по институциональным доменам.
type ResearchSource interface {
	Search(ctx context.Context, keyword string, q ResearchQuery) ([]models.ResearchItem, error)
}

// Notifier — best-effort доставка итоговой сводки во внешний webhook.
// Возвращает признак успеха; сбой доставки никогда не валит запрос.
type Notifier interface {
	Notify(ctx context.Context, s Summary) bool
}

// Service — бизнес-логика сервиса поиска.
type Service struct {
	cfg       config.Config
	loc       *time.Location
	primary   NewsSource
	secondary NewsSource
	research  ResearchSource
	notifier  Notifier
	ranker    relevance.Ranker
}

// New создаёт новый экземпляр Service.
func New(cfg config.Config, loc *time.Location, primary, secondary NewsSource, research ResearchSource, notifier Notifier) *Service {
	if loc == nil {
		loc = time.UTC
	}

	return &Service{
		cfg:       cfg,
		loc:       loc,
		primary:   primary,
		secondary: secondary,
		research:  research,
		notifier:  notifier,
		ranker: relevance.Ranker{
			TitleWeight:   cfg.Search.TitleWeight,
			SummaryWeight: cfg.Search.SummaryWeight,
		},
	}
}

// Now возвращает текущее время в часовом поясе сервиса.
func (s *Service) Now() time.Time {
	return time.Now().In(s.loc)
}
