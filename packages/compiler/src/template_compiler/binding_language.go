package template_compiler

import (
	"errors"
	"strings"

	"auc-go/packages/compiler/src/core"
	ep "auc-go/packages/compiler/src/expression_parser"
)

// ErrCommandWithInterpolation is returned for attributes like `value.bind="${x}"`
var ErrCommandWithInterpolation = errors.New("Invalid attribute expression. Cannot support both binding command and interpolation expression.")

// AttrInfo is the result of inspecting one attribute
type AttrInfo struct {
	// AttrName is the attribute name without the command suffix
	AttrName  string
	AttrValue string
	// Command is the part after the `.`, empty for plain attributes
	Command string
	// DefaultBindingMode is set when the command forces a mode
	DefaultBindingMode *core.BindingMode
	// Expression is the parsed interpolation of AttrValue, if any
	Expression *ep.TemplateLiteral
}

// HasCommand reports whether the attribute carries a binding command
func (i *AttrInfo) HasCommand() bool {
	return i.Command != ""
}

// BindingLanguage splits attribute names into name and command and detects
// interpolations in attribute values
type BindingLanguage struct {
	parser *ep.Parser
}

// NewBindingLanguage creates a new BindingLanguage
func NewBindingLanguage(parser *ep.Parser) *BindingLanguage {
	return &BindingLanguage{parser: parser}
}

// InspectAttribute classifies one attribute. Every call returns a new AttrInfo.
func (b *BindingLanguage) InspectAttribute(elementName, attrName, attrValue string) (*AttrInfo, error) {
	info := &AttrInfo{AttrName: attrName, AttrValue: attrValue}

	parts := strings.Split(attrName, ".")
	if len(parts) == 2 {
		info.AttrName = strings.TrimSpace(parts[0])
		info.Command = strings.TrimSpace(parts[1])
		if mode, ok := core.ParseBindingMode(info.Command); ok {
			info.DefaultBindingMode = &mode
		}
	}

	expression, err := ParseInterpolation(b.parser, attrValue)
	if err != nil {
		return nil, err
	}
	if expression != nil && info.HasCommand() {
		return nil, ErrCommandWithInterpolation
	}
	info.Expression = expression
	return info, nil
}

// InspectTextContent returns the interpolation in a text node, or nil
func (b *BindingLanguage) InspectTextContent(value string) (*ep.TemplateLiteral, error) {
	return ParseInterpolation(b.parser, value)
}
