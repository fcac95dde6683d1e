// redact — маскирование чувствительных фрагментов в произвольном тексте
// (тексты ошибок апстримов, строки логов) до того, как текст попадёт
// в лог или в ответ вызывающему.
//
// Маскирование — страховка второго эшелона: пользовательские сообщения
// об известных сбоях формируются из фиксированного набора строк и не
// содержат текста апстрима вовсе.
package redact

import "regexp"

const (
	maskValue   = "[REDACTED]"
	maskWebhook = "[REDACTED_WEBHOOK]"
)

// paramPattern — значения чувствительных параметров вида name=value или
// name: value (query-строки, формы, HTTP-заголовки).
var paramPattern = regexp.MustCompile(`(?i)\b(api_key|client_secret|client_id|access_token|token|key|cx|x-naver-client-id|x-naver-client-secret)\s*[=:]\s*[^&\s"']+`)

// webhookPattern — полные URL входящих webhook Slack: сам URL является credentials.
var webhookPattern = regexp.MustCompile(`https://hooks\.slack\.com/[^\s"']*`)

// Mask заменяет значения известных чувствительных параметров и webhook-URL
// на фиксированные маркеры, не трогая окружающий текст.
func Mask(s string) string {
	out := webhookPattern.ReplaceAllString(s, maskWebhook)
	out = paramPattern.ReplaceAllString(out, "$1="+maskValue)

	return out
}
