// ABOUTME: Small DOM traversal helpers over xmlquery nodes
// ABOUTME: Namespace-aware lookups matching attributes and elements the way feed dialects expect

package parser

import (
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// rootElement returns the document's top-level element.
func rootElement(doc *xmlquery.Node) *xmlquery.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}

// childElementsNamed returns the direct child elements with the given
// unprefixed tag name.
func childElementsNamed(parent *xmlquery.Node, name string) []*xmlquery.Node {
	var out []*xmlquery.Node
	for n := parent.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode && n.Data == name && n.Prefix == "" {
			out = append(out, n)
		}
	}
	return out
}

// firstChildNamed returns the first direct child element with the given
// unprefixed tag name, or nil.
func firstChildNamed(parent *xmlquery.Node, name string) *xmlquery.Node {
	for n := parent.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode && n.Data == name && n.Prefix == "" {
			return n
		}
	}
	return nil
}

// childText returns the trimmed text of the first matching direct child, or
// the empty string.
func childText(parent *xmlquery.Node, name string) string {
	if n := firstChildNamed(parent, name); n != nil {
		return strings.TrimSpace(n.InnerText())
	}
	return ""
}

// descendantsNS returns every descendant element in the given namespace with
// the given local name, in document order.
func descendantsNS(parent *xmlquery.Node, ns, local string) []*xmlquery.Node {
	var out []*xmlquery.Node
	var walk func(n *xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xmlquery.ElementNode {
				continue
			}
			if c.Data == local && c.NamespaceURI == ns {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(parent)
	return out
}

// descendantsNamed returns every descendant element with the given
// unprefixed tag name, in document order.
func descendantsNamed(parent *xmlquery.Node, name string) []*xmlquery.Node {
	var out []*xmlquery.Node
	var walk func(n *xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xmlquery.ElementNode {
				continue
			}
			if c.Data == name && c.Prefix == "" {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(parent)
	return out
}

// directChildrenNS returns the direct child elements in the given namespace
// with the given local name.
func directChildrenNS(parent *xmlquery.Node, ns, local string) []*xmlquery.Node {
	var out []*xmlquery.Node
	for n := parent.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode && n.Data == local && n.NamespaceURI == ns {
			out = append(out, n)
		}
	}
	return out
}

// attr returns the value of the named unprefixed attribute.
func attr(n *xmlquery.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local == name && a.Name.Space == "" {
			return a.Value, true
		}
	}
	return "", false
}

// attrOr returns the named attribute's value or a default when absent.
func attrOr(n *xmlquery.Node, name, def string) string {
	if v, ok := attr(n, name); ok {
		return v
	}
	return def
}

// attrNS returns the value of a namespaced attribute. Attributes carry the
// prefix in Name.Space and the resolved URI in NamespaceURI, so space matches
// either one; reserved prefixes like xml may never resolve to a URI.
func attrNS(n *xmlquery.Node, space, local string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local == local && (a.NamespaceURI == space || a.Name.Space == space) {
			return a.Value, true
		}
	}
	return "", false
}

// attrInt parses the named attribute as an int, zero on absence or failure.
func attrInt(n *xmlquery.Node, name string) int {
	v, _ := attr(n, name)
	i, _ := strconv.Atoi(v)
	return i
}

// attrInt64 parses the named attribute as an int64, zero on absence or failure.
func attrInt64(n *xmlquery.Node, name string) int64 {
	v, _ := attr(n, name)
	i, _ := strconv.ParseInt(v, 10, 64)
	return i
}

// attrFloat parses the named attribute as a float64, zero on absence or failure.
func attrFloat(n *xmlquery.Node, name string) float64 {
	v, _ := attr(n, name)
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

// attrIntPtr parses the named attribute as an int, nil on absence or failure.
func attrIntPtr(n *xmlquery.Node, name string) *int {
	v, ok := attr(n, name)
	if !ok {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &i
}
