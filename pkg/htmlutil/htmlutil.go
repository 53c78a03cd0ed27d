package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// ParseDocument decodes `body` from the character set named by `label`
// (ex. "gb2312") into utf-8 and parses it.
func ParseDocument(body []byte, label string) (*goquery.Document, error) {
	reader, err := charset.NewReaderLabel(label, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(reader)
}

// GetText concatenates every text node under `node` in document order.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// TrimmedText is the text content of the whole selection with surrounding
// whitespace (including nbsp) removed.
func TrimmedText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}

type Anchor struct {
	// Name is the raw text content of the anchor.
	Name string
	Href string
	// HasHref is false when the element carries no href attribute at all.
	HasHref bool
}

func GetAnchors(sel *goquery.Selection) []Anchor {
	anchors := make([]Anchor, 0, len(sel.Nodes))
	for _, n := range sel.Nodes {
		a := Anchor{Name: GetText(n)}
		for _, attr := range n.Attr {
			if attr.Key == "href" {
				a.Href = attr.Val
				a.HasHref = true
				break
			}
		}
		anchors = append(anchors, a)
	}
	return anchors
}
