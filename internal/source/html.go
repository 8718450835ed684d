package source

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// skippedElements never contribute visible lyric text.
var skippedElements = map[string]bool{
	"head":     true,
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"form":     true,
	"button":   true,
	"iframe":   true,
	"svg":      true,
}

// blockElements end the current line before and after their content.
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"li": true, "ul": true, "ol": true, "blockquote": true, "pre": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "table": true, "dd": true, "dt": true, "dl": true,
}

// ExtractHTMLText returns the visible text of an HTML lyric page.
//
// <br> and block elements become line breaks. Whitespace inside text nodes
// collapses to single spaces, except inside <pre>. A <p> or a doubled <br>
// becomes one blank line, so stanzas stay separated.
// Navigation, scripts and other page chrome are skipped.
func ExtractHTMLText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	var last byte
	write := func(s string) {
		if s == "" {
			return
		}
		b.WriteString(s)
		last = s[len(s)-1]
	}
	// endLine starts a new line unless the output already sits at one.
	endLine := func() {
		if b.Len() > 0 && last != '\n' {
			write("\n")
		}
	}

	var walk func(n *html.Node, pre bool)
	walk = func(n *html.Node, pre bool) {
		switch n.Type {
		case html.ElementNode:
			if skippedElements[n.Data] {
				return
			}
			if n.Data == "br" {
				write("\n")
				return
			}
			if n.Data == "pre" {
				pre = true
			}
			if blockElements[n.Data] {
				endLine()
				if n.Data == "p" {
					write("\n")
				}
			}
		case html.TextNode:
			if pre {
				write(n.Data)
				break
			}
			text := collapseSpace(n.Data)
			if b.Len() == 0 || last == '\n' {
				// Source indentation between blocks is not a line of its own.
				text = strings.TrimLeft(text, " ")
			}
			write(text)
		case html.CommentNode:
			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, pre)
		}

		if n.Type == html.ElementNode && blockElements[n.Data] {
			endLine()
		}
	}
	walk(doc, false)

	return tidyLines(b.String()), nil
}

// collapseSpace replaces each whitespace run with one space, keeping a
// leading or trailing space so words in adjacent inline elements stay apart.
func collapseSpace(s string) string {
	if s == "" {
		return s
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// tidyLines trims every line, keeps at most one blank line in a row and
// drops leading and trailing blank lines.
func tidyLines(s string) string {
	var out []string
	blank := false
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
