// relevance — переранжирование новостей по числу вхождений ключевого слова
// в заголовок и тизер, независимо от ранжирования самого источника.
package relevance

import (
	"sort"
	"strings"

	"github.com/pribylovaa/news-search-service/internal/models"
)

// Ranker считает релевантность и отбирает topN элементов.
//
// Особенности:
//   - подсчёт вхождений — регистронезависимый поиск подстроки
//     (не словесное сопоставление): так же ищет и сам источник;
//   - заголовок весит больше тизера (TitleWeight > SummaryWeight);
//   - точное соотношение весов — настраиваемый параметр, не поведенческая
//     гарантия.
type Ranker struct {
	TitleWeight   int
	SummaryWeight int
}

// Score возвращает релевантность одного элемента относительно ключевого слова.
func (r Ranker) Score(keyword, title, summary string) int {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return 0
	}

	titleHits := strings.Count(strings.ToLower(title), kw)
	summaryHits := strings.Count(strings.ToLower(summary), kw)

	return titleHits*r.TitleWeight + summaryHits*r.SummaryWeight
}

// SelectTop сортирует элементы по убыванию релевантности (стабильно,
// при равных оценках сохраняется исходный порядок) и возвращает первые topN.
// Исходный срез не модифицируется.
func (r Ranker) SelectTop(items []models.NewsItem, keyword string, topN int) []models.NewsItem {
	if len(items) == 0 || topN <= 0 {
		return nil
	}

	ranked := make([]models.NewsItem, len(items))
	copy(ranked, items)

	scores := make([]int, len(ranked))
	for i, item := range ranked {
		scores[i] = r.Score(keyword, item.Title, item.Summary)
	}

	idx := make([]int, len(ranked))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	if topN > len(idx) {
		topN = len(idx)
	}

	out := make([]models.NewsItem, 0, topN)
	for _, i := range idx[:topN] {
		out = append(out, ranked[i])
	}

	return out
}
