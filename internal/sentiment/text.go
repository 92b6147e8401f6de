package sentiment

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
)

const blockElements = "br, p, div, li, h1, h2, h3, h4, h5, h6, tr, td, th, blockquote, pre"

// HTMLToText returns the visible text of an HTML fragment with entities
// decoded and whitespace collapsed. Block elements are separated by a space.
func HTMLToText(input string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return strings.Join(strings.Fields(input), " ")
	}

	doc.Find("script, style").Remove()
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		for _, node := range s.Nodes {
			node.AppendChild(&xhtml.Node{Type: xhtml.TextNode, Data: " "})
		}
	})

	return strings.Join(strings.Fields(doc.Text()), " ")
}
