package notes

import (
	"strings"

	"golang.org/x/net/html"
)

// blockElements end a line of text when rendered.
var blockElements = map[string]bool{
	"div": true, "p": true, "li": true, "tr": true, "pre": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "table": true,
}

// RenderPlainText converts the HTML body Notes returns into plain text.
// Block elements and <br> become line breaks; runs of blank lines collapse to
// one. Input that does not parse is returned unchanged.
func RenderPlainText(body string) string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return body
	}

	var b strings.Builder
	renderNode(doc, &b)
	return collapseBlankLines(b.String())
}

func renderNode(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.CommentNode:
		return
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if tag == "script" || tag == "style" {
			return
		}
		if tag == "br" {
			b.WriteString("\n")
			return
		}
		if tag == "li" {
			b.WriteString("- ")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderNode(c, b)
	}

	if n.Type == html.ElementNode && blockElements[strings.ToLower(n.Data)] {
		b.WriteString("\n")
	}
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
