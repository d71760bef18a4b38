package utils

import (
	"fmt"
	"time"
)

// Русские названия месяцев в родительном падеже
var ruMonths = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// FormatDate renders a timestamp for display. The locale is an explicit
// argument so concurrent requests with different locales never interfere.
func FormatDate(t time.Time, locale string) string {
	switch locale {
	case "ru":
		return fmt.Sprintf("%d %s %d г.", t.Day(), ruMonths[t.Month()-1], t.Year())
	default:
		return t.Format("2 January 2006")
	}
}
