package models

// NewsSearchRequest — входной запрос POST /news/search.
//
// Особенности:
//   - Keyword — сырая строка, может содержать несколько ключевых слов
//     через запятую или перенос строки;
//   - даты в формате YYYY-MM-DD; при отсутствии применяется период
//     [сегодня-7д, сегодня] в часовом поясе сервиса;
//   - UseRelevanceFilter — указатель, чтобы отличить "не передано"
//     (default true) от явного false.
type NewsSearchRequest struct {
	Keyword            string    `json:"keyword"`
	StartDate          string    `json:"start_date,omitempty"`
	EndDate            string    `json:"end_date,omitempty"`
	SortBy             SortOrder `json:"sort_by,omitempty"`
	UseRelevanceFilter *bool     `json:"use_relevance_filter,omitempty"`
	Provider           Provider  `json:"provider,omitempty"`
}

// NewsSearchResponse — ответ POST /news/search.
type NewsSearchResponse struct {
	Keyword   string     `json:"keyword"`
	Keywords  []string   `json:"keywords"`
	Period    string     `json:"period"`
	NewsCount int        `json:"news_count"`
	News      []NewsItem `json:"news"`
	SlackSent bool       `json:"slack_sent"`
	Message   string     `json:"message"`
}

// ResearchSearchRequest — входной запрос POST /research/search.
//
// Особенности:
//   - MaxResults ∈ [1,30], 0 → серверный default;
//   - явный диапазон дат имеет приоритет над DateRestrict;
//   - DateRestrict — относительное ограничение свежести: d1|w1|m1|y1.
type ResearchSearchRequest struct {
	Keyword      string `json:"keyword"`
	Language     string `json:"language,omitempty"`
	MaxResults   int    `json:"max_results,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	DateRestrict string `json:"date_restrict,omitempty"`
}

// ResearchSearchResponse — ответ POST /research/search.
type ResearchSearchResponse struct {
	Keyword      string         `json:"keyword"`
	Keywords     []string       `json:"keywords"`
	TotalResults int            `json:"total_results"`
	Items        []ResearchItem `json:"items"`
	Message      string         `json:"message"`
}

// ExtractRequest — входной запрос POST /extract-keywords.
type ExtractRequest struct {
	Text string `json:"text"`
}

// ExtractResponse — ответ POST /extract-keywords.
type ExtractResponse struct {
	Keywords []string `json:"keywords"`
	Count    int      `json:"count"`
}

// SampleNewsItem — элемент статического примера GET /news.
type SampleNewsItem struct {
	Title   string `json:"title"`
	Keyword string `json:"keyword"`
}

// SampleNewsResponse — ответ GET /news (без обращения к внешним API).
type SampleNewsResponse struct {
	Keyword string           `json:"keyword"`
	News    []SampleNewsItem `json:"news"`
}
