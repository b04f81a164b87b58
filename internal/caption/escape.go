package caption

import (
	"strings"

	"apod_poster/internal/domain"
)

// DefaultReserved is the MarkdownV2 reserved set. Backslash is always escaped on top of it.
const DefaultReserved = "_*[]()~`>#+-=|{}.!"

var (
	htmlText = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	htmlAttr = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	mdURL    = strings.NewReplacer(`\`, `\\`, ")", `\)`)
)

// EscapeMarkdownV2 prefixes every reserved character with a backslash.
// It is meant to be applied exactly once, to text that carries no markup.
func EscapeMarkdownV2(s string) string {
	return escapeReserved(s, DefaultReserved)
}

func EscapeHTML(s string) string {
	return htmlText.Replace(s)
}

func escapeReserved(s, reserved string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r == '\\' || strings.ContainsRune(reserved, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// markup renders builder-owned formatting for one dialect. Only escape is
// ever applied to record text; the other helpers take already-escaped input.
type markup struct {
	escape func(string) string
	bold   func(string) string
	italic func(string) string
	link   func(label, url string) string
	// length of the delimiters bold and italic add around their input
	boldLen, italicLen int
}

func newMarkup(d domain.Dialect, reserved string) markup {
	if d == domain.DialectHTML {
		return markup{
			escape: EscapeHTML,
			bold:   func(s string) string { return "<b>" + s + "</b>" },
			italic: func(s string) string { return "<i>" + s + "</i>" },
			link: func(label, url string) string {
				return `<a href="` + htmlAttr.Replace(url) + `">` + label + "</a>"
			},
			boldLen:   7,
			italicLen: 7,
		}
	}

	if reserved == "" {
		reserved = DefaultReserved
	}
	return markup{
		escape: func(s string) string { return escapeReserved(s, reserved) },
		bold:   func(s string) string { return "*" + s + "*" },
		italic: func(s string) string { return "_" + s + "_" },
		link: func(label, url string) string {
			return "[" + label + "](" + mdURL.Replace(url) + ")"
		},
		boldLen:   2,
		italicLen: 2,
	}
}
