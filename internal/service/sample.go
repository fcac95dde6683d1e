package service

import (
	"fmt"

	"github.com/pribylovaa/news-search-service/internal/models"
)

// sampleHeadlines — статический пример выдачи для GET /news:
// никаких обращений к внешним API.
var sampleHeadlines = map[string][]string{
	"politics": {
		"Corruption scandal shakes the ruling party",
		"Sweeping reform bill passes after marathon session",
		"Opposition demands inquiry into lobbying ties",
	},
	"economy": {
		"Markets rally as growth beats forecasts",
		"Central bank signals a pause on rate hikes",
		"Exports hit a record high for the quarter",
	},
	"tech": {
		"Chipmakers race to scale next-generation fabs",
		"Regulators open probe into platform dominance",
		"Startups bet big on on-device AI",
	},
	"health": {
		"New screening method doubles early detection",
		"Hospitals report seasonal surge in admissions",
		"Study links sleep patterns to recovery rates",
	},
	"environment": {
		"Coastal cities brace for rising sea levels",
		"Emissions targets tightened under new policy",
		"Wetland restoration shows measurable gains",
	},
}

// SampleNews возвращает пример выдачи по ключевому слову.
// Для неизвестных слов генерируются детерминированные заголовки-заглушки.
func (s *Service) SampleNews(keyword string) *models.SampleNewsResponse {
	titles, ok := sampleHeadlines[keyword]
	if !ok {
		titles = []string{
			fmt.Sprintf("Breaking development reported on %s", keyword),
			fmt.Sprintf("Fallout from %s continues to spread", keyword),
			fmt.Sprintf("New facts emerge about %s", keyword),
		}
	}

	news := make([]models.SampleNewsItem, 0, len(titles))
	for _, title := range titles {
		news = append(news, models.SampleNewsItem{Title: title, Keyword: keyword})
	}

	return &models.SampleNewsResponse{Keyword: keyword, News: news}
}
