package source

import (
	"strings"
	"testing"
)

func TestExtractHTMLText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "br separates lines and doubled br separates stanzas",
			html: `<html><head><title>Song</title><style>.x{}</style></head>
<body><div class="lyrics">First line<br>Second line<br><br>Third line</div></body></html>`,
			want: "First line\nSecond line\n\nThird line",
		},
		{
			name: "paragraphs become stanzas",
			html: "<body><p>Line one<br>\n  Line two</p>\n<p>Line three</p></body>",
			want: "Line one\nLine two\n\nLine three",
		},
		{
			name: "adjacent blocks are separate lines",
			html: "<body><div>a</div>\n  <div>b</div></body>",
			want: "a\nb",
		},
		{
			name: "inline elements keep word spacing",
			html: "<body><div>heart <b>on</b> fire</div></body>",
			want: "heart on fire",
		},
		{
			name: "page chrome is skipped",
			html: "<body><nav>Home</nav><script>var x = 1;</script><div>Only this</div><footer>(c) site</footer></body>",
			want: "Only this",
		},
		{
			name: "comments are skipped",
			html: "<body><div>kept<!-- dropped --></div></body>",
			want: "kept",
		},
		{
			name: "pre keeps line breaks",
			html: "<body><pre>line a\nline b</pre></body>",
			want: "line a\nline b",
		},
		{
			name: "entities are decoded",
			html: "<body><div>rock &amp; roll</div></body>",
			want: "rock & roll",
		},
		{
			name: "empty document",
			html: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractHTMLText(strings.NewReader(tt.html))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractHTMLText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCollapseSpace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", " "},
		{"a  b", "a b"},
		{" a\n\tb ", " a b "},
	}
	for _, tt := range tests {
		if got := collapseSpace(tt.in); got != tt.want {
			t.Errorf("collapseSpace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTidyLines(t *testing.T) {
	t.Parallel()

	got := tidyLines("\n\n  a  \n\n\n b\n\n")
	if got != "a\n\nb" {
		t.Errorf("tidyLines() = %q, want %q", got, "a\n\nb")
	}
}
