package slug

import (
	"regexp"
	"strings"

	gosimple "github.com/gosimple/slug"
)

// DefaultLocale используется, когда локаль не задана в конфигурации
const DefaultLocale = "tr"

// gosimple оставляет "_", а у нас разделитель один
var separators = regexp.MustCompile(`[-_]+`)

// Make строит slug категории из отображаемого имени:
// нижний регистр по правилам локали, транслитерация, разделитель "-"
// Функция чистая и идемпотентна: Make(Make(x)) == Make(x)
func Make(name, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}
	out := gosimple.MakeLang(strings.TrimSpace(name), locale)
	return strings.Trim(separators.ReplaceAllString(out, "-"), "-")
}

// Resolver фиксирует локаль из конфигурации сервиса
type Resolver struct {
	locale string
}

func NewResolver(locale string) *Resolver {
	return &Resolver{locale: locale}
}

func (r *Resolver) Make(name string) string {
	return Make(name, r.locale)
}
