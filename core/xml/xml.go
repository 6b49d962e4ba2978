// Package xml provides read-only access to XML corpus documents.
//
// Documents are parsed with xmlquery, which sits on encoding/xml and never
// fetches external entities. Selectors are XPath expressions compiled once
// with antchfx/xpath and evaluated relative to a node.
package xml

import (
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node represents an XML element.
type Node struct {
	node *xmlquery.Node
}

// Expr is a compiled XPath expression.
type Expr = xpath.Expr

// Parse parses XML from r and returns a Document.
func Parse(r io.Reader) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// MustCompile compiles an XPath expression and panics if it is invalid. It is
// meant for package-level selectors.
func MustCompile(expr string) *Expr {
	return xpath.MustCompile(expr)
}

// Root returns the root element of the document, or nil for a document
// without elements.
func (d *Document) Root() *Node {
	if d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// Select evaluates a compiled expression relative to n.
func (n *Node) Select(expr *Expr) []*Node {
	if n == nil || n.node == nil {
		return nil
	}
	return wrap(xmlquery.QuerySelectorAll(n.node, expr))
}

// Name returns the element name.
func (n *Node) Name() string {
	if n.node == nil {
		return ""
	}
	return n.node.Data
}

// Text returns the text content of the node and its descendants with
// surrounding whitespace removed.
func (n *Node) Text() string {
	if n.node == nil {
		return ""
	}
	return strings.TrimSpace(n.node.InnerText())
}

// Attr returns the value of a specific attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	v, _ := n.LookupAttr(name)
	return v
}

// LookupAttr returns the value of a specific attribute and whether it is present.
func (n *Node) LookupAttr(name string) (string, bool) {
	if n.node == nil {
		return "", false
	}
	for _, attr := range n.node.Attr {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

func wrap(nodes []*xmlquery.Node) []*Node {
	result := make([]*Node, len(nodes))
	for i, n := range nodes {
		result[i] = &Node{node: n}
	}
	return result
}
