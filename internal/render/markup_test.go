package render

import (
	"strings"
	"testing"
)

func TestMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "heading then blank line then body",
			input: "# Title\n\nBody line",
			want:  `<p class="body-b1"><h1 class="headline-h1">Title</h1></p><p class="body-b1">Body line</p>`,
		},
		{
			name:  "one paragraph per line",
			input: "Line one\nLine two",
			want:  "<p class=\"body-b1\">Line one</p>\n<p class=\"body-b1\">Line two</p>",
		},
		{
			name:  "heading ranks",
			input: "### Three\n## Two\n# One",
			want: `<p class="body-b1"><h3 class="title-t3">Three</h3></p>` + "\n" +
				`<p class="body-b1"><h2 class="headline-h2">Two</h2></p>` + "\n" +
				`<p class="body-b1"><h1 class="headline-h1">One</h1></p>`,
		},
		{
			name:  "longest prefix wins",
			input: "#### Four",
			want:  `<p class="body-b1">#### Four</p>`,
		},
		{
			name:  "hash without space is text",
			input: "#tag",
			want:  `<p class="body-b1">#tag</p>`,
		},
		{
			name:  "empty heading",
			input: "## ",
			want:  `<p class="body-b1"><h2 class="headline-h2"></h2></p>`,
		},
		{
			name:  "triple newline leaves one line break",
			input: "a\n\n\nb",
			want:  "<p class=\"body-b1\">a</p><p class=\"body-b1\"></p>\n<p class=\"body-b1\">b</p>",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "carriage return ends a line",
			input: "a\r\nb",
			want:  "<p class=\"body-b1\">a</p>\r\n<p class=\"body-b1\">b</p>",
		},
		{
			name:  "markup passes through",
			input: "<em>x</em>",
			want:  `<p class="body-b1"><em>x</em></p>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Markup(tt.input); got != tt.want {
				t.Errorf("Markup(%q)\n got: %q\nwant: %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMarkupUnicodeLineSeparators(t *testing.T) {
	got := Markup("# A\u2028b\u2029c")
	want := `<p class="body-b1"><h1 class="headline-h1">A</h1></p>` + "\u2028" +
		`<p class="body-b1">b</p>` + "\u2029" + `<p class="body-b1">c</p>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMarkdown(t *testing.T) {
	got, err := Markdown("Made with **Go**.\n\n```go\nfmt.Println(1)\n```")
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if !strings.Contains(got, "<strong>Go</strong>") {
		t.Errorf("expected strong emphasis, got %q", got)
	}
	if !strings.Contains(got, "<pre") {
		t.Errorf("expected a code block, got %q", got)
	}
}
