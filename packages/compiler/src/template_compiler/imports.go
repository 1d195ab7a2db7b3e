package template_compiler

import (
	"log/slog"

	"auc-go/packages/compiler/src/util"

	"golang.org/x/net/html"
)

const requireDeprecation = `Use <import from="..." /> instead of <require/>. <require/> was used to support IE11 as IE11 does NOT allow <import />.`

// ExtractDependencies removes every <import from> and <require from> element
// below root and returns their module ids, imports first. Children of a
// removed element take its place, which keeps markup written after a
// self-closing <import/> in the template.
func ExtractDependencies(root *html.Node, logger *slog.Logger) ([]string, error) {
	imports := findElements(root, "import")
	requires := findElements(root, "require")
	dependencies := make([]string, 0, len(imports)+len(requires))

	for _, node := range imports {
		from, ok := getAttr(node, "from")
		if !ok || from == "" {
			return nil, util.NewCompileError(`Invalid <import/> element. No "from" attribute specifier.`)
		}
		dependencies = append(dependencies, from)
		unwrap(node)
	}
	for _, node := range requires {
		from, ok := getAttr(node, "from")
		if !ok || from == "" {
			return nil, util.NewCompileError(`Invalid <require/> element. No "from" attribute specifier.`)
		}
		dependencies = append(dependencies, from)
		unwrap(node)
	}
	if len(requires) > 0 && logger != nil {
		logger.Warn(requireDeprecation)
	}
	return dependencies, nil
}

// findElements collects the elements named tag below root in document order
func findElements(root *html.Node, tag string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == tag {
				found = append(found, c)
			}
			walk(c)
		}
	}
	walk(root)
	return found
}

// unwrap replaces n with its children
func unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
}
