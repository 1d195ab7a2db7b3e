package template_compiler

import (
	"strings"

	"auc-go/packages/compiler/src/util"
)

// AttributeMap maps HTML attribute names to the DOM property they bind to
type AttributeMap struct {
	elements    map[string]map[string]string
	allElements map[string]string
	names       *util.NameCache
}

// NewAttributeMap creates an AttributeMap with the standard HTML mappings.
// names memoizes the camelCase fallback; a nil cache gets a private one.
func NewAttributeMap(names *util.NameCache) *AttributeMap {
	if names == nil {
		names = util.NewNameCache()
	}
	m := &AttributeMap{
		elements:    map[string]map[string]string{},
		allElements: map[string]string{},
		names:       names,
	}
	m.RegisterUniversal("accesskey", "accessKey")
	m.RegisterUniversal("contenteditable", "contentEditable")
	m.RegisterUniversal("tabindex", "tabIndex")
	m.RegisterUniversal("textcontent", "textContent")
	m.RegisterUniversal("innerhtml", "innerHTML")
	m.RegisterUniversal("scrolltop", "scrollTop")
	m.RegisterUniversal("scrollleft", "scrollLeft")
	m.RegisterUniversal("readonly", "readOnly")
	m.Register("label", "for", "htmlFor")
	m.Register("img", "usemap", "useMap")
	m.Register("input", "maxlength", "maxLength")
	m.Register("input", "minlength", "minLength")
	m.Register("input", "formaction", "formAction")
	m.Register("input", "formenctype", "formEncType")
	m.Register("input", "formmethod", "formMethod")
	m.Register("input", "formnovalidate", "formNoValidate")
	m.Register("input", "formtarget", "formTarget")
	m.Register("textarea", "maxlength", "maxLength")
	m.Register("td", "rowspan", "rowSpan")
	m.Register("td", "colspan", "colSpan")
	m.Register("th", "rowspan", "rowSpan")
	m.Register("th", "colspan", "colSpan")
	return m
}

// Register maps attributeName on elementName to propertyName
func (m *AttributeMap) Register(elementName, attributeName, propertyName string) {
	elementName = strings.ToLower(elementName)
	attributeName = strings.ToLower(attributeName)
	element, ok := m.elements[elementName]
	if !ok {
		element = map[string]string{}
		m.elements[elementName] = element
	}
	element[attributeName] = propertyName
}

// RegisterUniversal maps attributeName on every element to propertyName
func (m *AttributeMap) RegisterUniversal(attributeName, propertyName string) {
	m.allElements[strings.ToLower(attributeName)] = propertyName
}

// Map returns the property name for attributeName on elementName. Standard
// SVG attributes, data-*, aria-* and namespaced attributes are returned
// unchanged; anything unknown is camelCased.
func (m *AttributeMap) Map(elementName, attributeName string) string {
	if IsStandardSvgAttribute(elementName, attributeName) {
		return attributeName
	}
	elementName = strings.ToLower(elementName)
	attributeName = strings.ToLower(attributeName)
	if element, ok := m.elements[elementName]; ok {
		if property, ok := element[attributeName]; ok {
			return property
		}
	}
	if property, ok := m.allElements[attributeName]; ok {
		return property
	}
	if strings.HasPrefix(attributeName, "data-") ||
		strings.HasPrefix(attributeName, "aria-") ||
		strings.Contains(attributeName, ":") {
		return attributeName
	}
	return m.names.CamelCase(attributeName)
}
