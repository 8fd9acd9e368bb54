// Package htmlopt adapts parsed golang.org/x/net/html nodes
// into the option sources and options used by field.NewSelect.
// It does not parse markup itself; callers hand it nodes from html.Parse
// or html.ParseFragment.
package htmlopt

import (
	"github.com/lithictech/go-fieldcheck/field"
	"golang.org/x/net/html"
	"strings"
)

// Select is a field.OptionSource backed by an element,
// usually a <select>, whose descendants include <option> elements.
type Select struct {
	Node *html.Node
}

var _ field.OptionSource = Select{}

// SelectOptions returns the descendant elements with the tag name in selector,
// in document order. Only bare tag names are supported ("option").
func (s Select) SelectOptions(selector string) []field.Option {
	nodes := FindAll(s.Node, selector)
	result := make([]field.Option, 0, len(nodes))
	for _, n := range nodes {
		result = append(result, Option{Node: n})
	}
	return result
}

// Option is a field.Option backed by an <option> element.
type Option struct {
	Node *html.Node
}

var _ field.Option = Option{}

// Selected is true if the element has a selected attribute, whatever its value.
func (o Option) Selected() bool {
	return HasAttribute(o.Node, "selected")
}

func (o Option) Value() (string, bool) {
	return Attribute(o.Node, "value")
}

// Text returns the element's text content with runs of whitespace collapsed,
// the same way a browser computes an option's label.
func (o Option) Text() string {
	sb := strings.Builder{}
	collectText(o.Node, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// NewValidator builds a select field.Validator from a <select> element,
// taking the field name and required flag from its attributes.
func NewValidator(n *html.Node) *field.Validator {
	name, _ := Attribute(n, "name")
	return field.NewSelect(field.SelectConfig{
		Config: field.Config{Name: name, Required: HasAttribute(n, "required")},
		Source: Select{Node: n},
	})
}

// FindSelect returns the first <select> element under root with the given name attribute.
func FindSelect(root *html.Node, name string) (*html.Node, bool) {
	for _, n := range FindAll(root, "select") {
		if v, ok := Attribute(n, "name"); ok && v == name {
			return n, true
		}
	}
	return nil, false
}

// FindAll returns the descendant elements of root with the given tag name, in document order.
// root itself is not included.
func FindAll(root *html.Node, tag string) []*html.Node {
	var result []*html.Node
	if root == nil {
		return result
	}
	tag = strings.ToLower(strings.TrimSpace(tag))
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == tag {
				result = append(result, c)
			}
			walk(c)
		}
	}
	walk(root)
	return result
}

// HasAttribute is true if n has an attribute named key.
func HasAttribute(n *html.Node, key string) bool {
	_, ok := Attribute(n, key)
	return ok
}

// Attribute returns the value of the attribute named key, and false if n does not have it.
func Attribute(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
