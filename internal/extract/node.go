package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Node is the slice of a DOM element the value and title resolvers need.
// Any tree with parents, element children, attributes, classes and text can implement it.
type Node interface {
	Tag() string
	Attr(name string) (string, bool)
	HasClass(class string) bool
	// Parent returns nil at the top of the element tree.
	Parent() Node
	// Children returns element children only, in document order.
	Children() []Node
	Text() string
	// ContainsInput reports whether the node is, or contains, an <input> element.
	ContainsInput() bool
}

type htmlNode struct {
	n *html.Node
}

// NewNode adapts a parsed x/net/html element. It returns nil for nil or non-element nodes.
func NewNode(n *html.Node) Node {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return htmlNode{n: n}
}

func (h htmlNode) Tag() string {
	return strings.ToLower(h.n.Data)
}

func (h htmlNode) Attr(name string) (string, bool) {
	for _, a := range h.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (h htmlNode) HasClass(class string) bool {
	v, ok := h.Attr("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func (h htmlNode) Parent() Node {
	return NewNode(h.n.Parent)
}

func (h htmlNode) Children() []Node {
	var out []Node
	for c := h.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, htmlNode{n: c})
		}
	}
	return out
}

func (h htmlNode) Text() string {
	return goquery.NewDocumentFromNode(h.n).Text()
}

func (h htmlNode) ContainsInput() bool {
	return containsTag(h.n, "input")
}

func containsTag(n *html.Node, tag string) bool {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if containsTag(c, tag) {
			return true
		}
	}
	return false
}
