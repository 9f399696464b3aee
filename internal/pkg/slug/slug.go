package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Make превращает произвольное название в URL-безопасный slug:
// диакритика снимается, всё кроме латиницы, цифр, '_' и '-' выбрасывается,
// пробелы и дефисы схлопываются в один дефис.
func Make(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	pendingDash := false
	for _, r := range norm.NFKD.String(value) {
		switch {
		case r > unicode.MaxASCII:
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r) || r == '-':
			pendingDash = true
		}
	}

	return strings.Trim(b.String(), "-_")
}
