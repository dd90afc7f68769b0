package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Inline escapes text and resolves emphasis: "**text**" becomes strong
// emphasis, then lone "*text*" (star not adjacent to another star) becomes
// emphasis. Converted strong spans are final and never scanned again.
// Result is well formed XML fragment.
func Inline(text string) string {
	var b strings.Builder
	for len(text) > 0 {
		start := strings.Index(text, "**")
		if start < 0 {
			break
		}
		end := strings.Index(text[start+2:], "**")
		if end <= 0 {
			break
		}
		b.WriteString(emphasis(text[:start]))
		b.WriteString("<strong>")
		b.WriteString(html.EscapeString(text[start+2 : start+2+end]))
		b.WriteString("</strong>")
		text = text[start+2+end+2:]
	}
	b.WriteString(emphasis(text))
	return b.String()
}

func emphasis(s string) string {
	var b strings.Builder
	last := 0
	for i := 0; i < len(s); i++ {
		if !loneStar(s, i) {
			continue
		}
		j := strings.IndexByte(s[i+1:], '*')
		if j <= 0 || !loneStar(s, i+1+j) {
			continue
		}
		j += i + 1
		b.WriteString(html.EscapeString(s[last:i]))
		b.WriteString("<em>")
		b.WriteString(html.EscapeString(s[i+1 : j]))
		b.WriteString("</em>")
		last, i = j+1, j
	}
	b.WriteString(html.EscapeString(s[last:]))
	return b.String()
}

func loneStar(s string, i int) bool {
	return s[i] == '*' && (i == 0 || s[i-1] != '*') && (i+1 == len(s) || s[i+1] != '*')
}
