package news

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// plainText strips markup from an HTML fragment, decodes entities and
// collapses runs of whitespace.
func plainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return strings.Join(strings.Fields(fragment), " ")
			}
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			tt := z.Token()
			switch {
			case isRawText(tt.Data) && tt.Type == html.StartTagToken:
				skip++
			case isRawText(tt.Data) && tt.Type == html.EndTagToken && skip > 0:
				skip--
			}
			if !inline[tt.Data] {
				b.WriteByte(' ')
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// inline tags do not separate words.
var inline = map[string]bool{
	"a": true, "abbr": true, "b": true, "em": true, "font": true,
	"i": true, "small": true, "span": true, "strong": true, "sub": true,
	"sup": true, "u": true,
}

func isRawText(tag string) bool {
	return tag == "script" || tag == "style"
}
