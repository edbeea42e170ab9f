package inputprocessor

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Content inside these elements is never shown to a reader.
var ignoredTags = map[string]bool{
	"script": true, "style": true, "head": true, "nav": true,
	"footer": true, "aside": true, "form": true, "noscript": true,
	"template": true, "svg": true,
}

var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "ul": true, "ol": true, "blockquote": true, "pre": true,
	"table": true, "tr": true, "td": true, "th": true, "br": true, "hr": true,
	"header": true, "figure": true, "figcaption": true, "dd": true, "dt": true,
}

// ExtractText returns the visible text of an HTML document, one paragraph per block
// element, paragraphs separated by a blank line. Whitespace inside a block is collapsed.
func ExtractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var (
		blocks []string
		words  []string
	)
	flush := func() {
		if len(words) > 0 {
			blocks = append(blocks, strings.Join(words, " "))
			words = words[:0]
		}
	}

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && ignoredTags[n.Data] {
			return
		}
		block := n.Type == html.ElementNode && blockTags[n.Data]
		if block {
			flush()
		}
		if n.Type == html.TextNode {
			words = append(words, strings.Fields(n.Data)...)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
		if block {
			flush()
		}
	}
	traverse(doc)
	flush()

	return strings.Join(blocks, "\n\n"), nil
}
