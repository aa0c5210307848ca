package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// XPathExtractor locates the label via XPath and walks the document in
// order to the next right-aligned span. Behaves exactly like SpanExtractor
// on well-formed pages but survives attribute reordering and whitespace
// changes inside tags.
type XPathExtractor struct{}

// NewXPathExtractor returns the XPath-based extractor.
func NewXPathExtractor() XPathExtractor { return XPathExtractor{} }

// Extract implements Extractor.
func (XPathExtractor) Extract(label string, page []byte) (string, bool) {
	doc, err := htmlquery.Parse(bytes.NewReader(page))
	if err != nil {
		return "", false
	}

	nodes, err := htmlquery.QueryAll(doc, fmt.Sprintf("//*[contains(text(), '%s')]", label))
	if err != nil || len(nodes) == 0 {
		return "", false
	}

	for n := nextInDocument(nodes[0]); n != nil; n = nextInDocument(n) {
		if !isValueSpan(n) {
			continue
		}
		value := strings.TrimSpace(htmlquery.InnerText(n))
		if value == "" {
			return "", false
		}
		return value, true
	}
	return "", false
}

func isValueSpan(n *html.Node) bool {
	if n.Type != html.ElementNode || n.Data != "span" {
		return false
	}
	return htmlquery.SelectAttr(n, "class") == "t-text -right"
}

// nextInDocument advances one step in document order: first child, then
// next sibling, then the nearest ancestor's next sibling.
func nextInDocument(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}
