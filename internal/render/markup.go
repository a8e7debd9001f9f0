package render

import (
	"strings"
	"unicode/utf8"
)

const (
	h1Open         = `<h1 class="headline-h1">`
	h2Open         = `<h2 class="headline-h2">`
	h3Open         = `<h3 class="title-t3">`
	paragraphOpen  = `<p class="body-b1">`
	paragraphBreak = `</p><p class="body-b1">`
)

// Markup converts a body text section to HTML. It is deliberately minimal and
// line oriented, applied in this order:
//
//  1. lines starting with "### ", "## " and "# " become h3, h2 and h1;
//  2. every "\n\n" becomes a paragraph break;
//  3. every remaining non-empty line is wrapped in its own paragraph.
//
// Step 3 works per line, so a paragraph spread over several lines yields one
// <p> per line, and a heading followed by a blank line ends up inside the
// first paragraph. Existing content depends on this output byte for byte.
func Markup(text string) string {
	text = mapLines(text, heading("### ", h3Open, "</h3>"))
	text = mapLines(text, heading("## ", h2Open, "</h2>"))
	text = mapLines(text, heading("# ", h1Open, "</h1>"))
	text = strings.ReplaceAll(text, "\n\n", paragraphBreak)
	return mapLines(text, func(line string) string {
		if line == "" {
			return line
		}
		return paragraphOpen + line + "</p>"
	})
}

func heading(prefix, open, close string) func(string) string {
	return func(line string) string {
		rest, ok := strings.CutPrefix(line, prefix)
		if !ok {
			return line
		}
		return open + rest + close
	}
}

// mapLines applies fn to every line of s and keeps the terminators as they
// were. Lines end at \n, \r, U+2028 and U+2029.
func mapLines(s string, fn func(string) string) string {
	var b strings.Builder
	b.Grow(len(s))
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if isLineTerminator(r) {
			b.WriteString(fn(s[start:i]))
			b.WriteString(s[i : i+size])
			start = i + size
		}
		i += size
	}
	b.WriteString(fn(s[start:]))
	return b.String()
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}
