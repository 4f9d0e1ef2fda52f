package jokes

import (
	"strings"

	"golang.org/x/net/html"
)

// ContentKey returns the identity of a joke text. Markup is dropped, entities
// are decoded and runs of whitespace collapse to a single space, so the same
// joke fetched with different escape modes maps to one key. Case is kept.
func ContentKey(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return strings.Join(strings.Fields(text), " ")
	}

	z := html.NewTokenizer(strings.NewReader(text))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "br", "p", "div", "li":
				b.WriteByte(' ')
			}
		}
	}
}

// SameContent reports whether two texts identify the same joke.
func SameContent(a, b string) bool {
	return ContentKey(a) == ContentKey(b)
}
