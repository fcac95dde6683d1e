// models содержит доменные сущности сервиса поиска новостей и исследований.
// Эти типы используются слоями бизнес-логики, адаптеров источников и транспорта.
package models

// Provider — вариант источника новостей.
type Provider string

const (
	// ProviderPrimary — коммерческий поисковый API новостей (Naver).
	ProviderPrimary Provider = "primary"
	// ProviderSecondary — публичная новостная лента (Google News RSS).
	ProviderSecondary Provider = "secondary"
)

// SortOrder — порядок выдачи первичного источника.
type SortOrder string

const (
	// SortRelevance — сортировка по релевантности источника.
	SortRelevance SortOrder = "relevance"
	// SortDate — сортировка по свежести.
	SortDate SortOrder = "date"
)

// NewsItem — нормализованная новость из внешнего источника.
//
// Особенности:
//   - неизменяема после построения адаптером;
//   - Keyword проставляется шагом агрегации (ключевое слово-источник);
//   - Summary участвует только в расчёте релевантности и наружу не отдаётся.
type NewsItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	PubDate string `json:"pubDate"`
	Keyword string `json:"keyword,omitempty"`
	Summary string `json:"-"`
}

// ResearchItem — нормализованный результат веб-поиска по институциональным доменам.
type ResearchItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Keyword string `json:"keyword"`
}
