// web содержит встраиваемые шаблоны HTML-страницы поиска.
package web

import "embed"

//go:embed templates
var Templates embed.FS
