package template_compiler

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// htmlElement adapts an *html.Node to Element
type htmlElement struct {
	node *html.Node
}

func (e htmlElement) TagName() string {
	return e.node.Data
}

func (e htmlElement) GetAttribute(name string) string {
	value, _ := getAttr(e.node, name)
	return value
}

func (e htmlElement) HasAttribute(name string) bool {
	_, ok := getAttr(e.node, name)
	return ok
}

// attrName returns the qualified attribute name, e.g. `xlink:href`
func attrName(attr html.Attribute) string {
	if attr.Namespace != "" {
		return attr.Namespace + ":" + attr.Key
	}
	return attr.Key
}

func getAttr(n *html.Node, name string) (string, bool) {
	for _, attr := range n.Attr {
		if attrName(attr) == name {
			return attr.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, name, value string) {
	for i, attr := range n.Attr {
		if attrName(attr) == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

// removeAttrs drops the attributes at the given indexes of a snapshot of n.Attr
func removeAttrs(n *html.Node, indexes map[int]bool) {
	if len(indexes) == 0 {
		return
	}
	kept := n.Attr[:0]
	for i, attr := range n.Attr {
		if !indexes[i] {
			kept = append(kept, attr)
		}
	}
	n.Attr = kept
}

// addClass appends class to the class attribute of n
func addClass(n *html.Node, class string) {
	if current, ok := getAttr(n, "class"); ok && current != "" {
		setAttr(n, "class", current+" "+class)
		return
	}
	setAttr(n, "class", class)
}

func newElement(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

// parseTemplate parses markup in a <div> context and returns its first element
func parseTemplate(markup string) (*html.Node, error) {
	context := newElement("div")
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, err
	}
	var first *html.Node
	for _, n := range nodes {
		if first == nil && n.Type == html.ElementNode {
			first = n
		}
	}
	if first == nil {
		return nil, nil
	}
	// detach from the fragment siblings so rendering covers only the root
	first.PrevSibling = nil
	first.NextSibling = nil
	return first, nil
}

func render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// childSnapshot returns the current children of n
func childSnapshot(n *html.Node) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return children
}
