// keywords — разбор пользовательской строки ключевых слов и извлечение
// значимых токенов из свободного текста. Чистые функции без I/O.
package keywords

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// minTokenLen — минимальная длина значимого токена (в рунах).
const minTokenLen = 2

// splitPattern — разделители ключевых слов: запятая и перенос строки.
var splitPattern = regexp.MustCompile(`[,\n]`)

// nonWord — границы токенизации: всё, что не буква/цифра/подчёркивание.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// stopWords — служебные слова (корейские частицы, союзы и т.п.),
// не несущие смысловой нагрузки при извлечении ключевых слов.
var stopWords = map[string]struct{}{
	"은": {}, "는": {}, "이": {}, "가": {}, "을": {}, "를": {}, "의": {},
	"에": {}, "와": {}, "과": {}, "도": {}, "로": {}, "으로": {},
	"에서": {}, "에게": {}, "한테": {}, "께": {}, "더": {}, "만": {},
	"까지": {}, "부터": {}, "조차": {}, "마저": {},
	"그": {}, "그것": {}, "이것": {}, "저것": {}, "그런": {}, "이런": {},
	"저런": {}, "그렇게": {}, "이렇게": {}, "저렇게": {},
	"그리고": {}, "또한": {}, "또": {}, "그러나": {}, "하지만": {},
	"그런데": {}, "그래서": {}, "그러므로": {},
	"있다": {}, "없다": {}, "되다": {}, "하다": {}, "이다": {},
	"아니다": {}, "같다": {}, "다르다": {},
}

// Parse разбирает сырую строку в упорядоченный список ключевых слов.
//
// Правила:
//   - разделители — запятая и перенос строки;
//   - каждый фрагмент очищается от краевых пробелов;
//   - пустые фрагменты отбрасываются;
//   - порядок ввода сохраняется, дубликаты не удаляются.
//
// Пустой результат трактуется вызывающим как ошибка валидации.
func Parse(raw string) []string {
	parts := splitPattern.Split(raw, -1)

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

// Extract извлекает topN наиболее частых значимых токенов из текста.
//
// Правила:
//   - токенизация по границам не-словесных символов, приведение к нижнему регистру;
//   - стоп-слова и токены короче minTokenLen отбрасываются;
//   - сортировка по убыванию частоты, при равенстве — порядок первого вхождения.
func Extract(text string, topN int) []string {
	if topN <= 0 {
		return nil
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, token := range nonWord.Split(text, -1) {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" || utf8.RuneCountInString(token) < minTokenLen {
			continue
		}

		if _, skip := stopWords[token]; skip {
			continue
		}

		if _, seen := counts[token]; !seen {
			firstSeen[token] = order
			order++
		}
		counts[token]++
	}

	tokens := make([]string, 0, len(counts))
	for token := range counts {
		tokens = append(tokens, token)
	}

	sort.Slice(tokens, func(i, j int) bool {
		if counts[tokens[i]] != counts[tokens[j]] {
			return counts[tokens[i]] > counts[tokens[j]]
		}

		return firstSeen[tokens[i]] < firstSeen[tokens[j]]
	})

	if len(tokens) > topN {
		tokens = tokens[:topN]
	}

	return tokens
}
