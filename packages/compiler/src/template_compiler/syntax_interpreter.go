package template_compiler

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"auc-go/packages/compiler/src/core"
	ep "auc-go/packages/compiler/src/expression_parser"
	"auc-go/packages/compiler/src/resources"
)

// Element is the view of a DOM element the interpreter needs
type Element interface {
	// TagName returns the tag name as written for SVG elements, lowercase otherwise
	TagName() string
	// GetAttribute returns the attribute value, or "" when absent
	GetAttribute(name string) string
	// HasAttribute reports whether the attribute is present, even when empty
	HasAttribute(name string) bool
}

type commandHandler func(s *SyntaxInterpreter, el Element, info *AttrInfo, bindable *resources.BindableProperty) (Instruction, error)

// SyntaxInterpreter turns an attribute with a binding command into an instruction
type SyntaxInterpreter struct {
	parser       *ep.Parser
	attributeMap *AttributeMap
	logger       *slog.Logger
	commands     map[string]commandHandler
}

// NewSyntaxInterpreter creates a SyntaxInterpreter with the built-in commands
func NewSyntaxInterpreter(parser *ep.Parser, attributeMap *AttributeMap, logger *slog.Logger) *SyntaxInterpreter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyntaxInterpreter{
		parser:       parser,
		attributeMap: attributeMap,
		logger:       logger,
		commands: map[string]commandHandler{
			"bind":      (*SyntaxInterpreter).bind,
			"trigger":   listener(core.DelegationStrategyNone),
			"capture":   listener(core.DelegationStrategyCapturing),
			"delegate":  listener(core.DelegationStrategyBubbling),
			"two-way":   explicit(core.BindingModeTwoWay),
			"to-view":   explicit(core.BindingModeToView),
			"one-way":   explicit(core.BindingModeOneWay),
			"from-view": explicit(core.BindingModeFromView),
			"one-time":  explicit(core.BindingModeOneTime),
			"ref":       (*SyntaxInterpreter).ref,
		},
	}
}

// Interpret creates the instruction for info. bindable is the matched
// property of a custom element or attribute, or nil. Unknown commands are
// logged and yield no instruction.
func (s *SyntaxInterpreter) Interpret(el Element, info *AttrInfo, bindable *resources.BindableProperty) (Instruction, error) {
	handler, ok := s.commands[info.Command]
	if !ok {
		return s.handleUnknownCommand(el, info)
	}
	if info.AttrName == "" || info.AttrValue == "" {
		s.logger.Warn(fmt.Sprintf("Command [%s] used without attribute name or value.", info.Command),
			"element", el.TagName(), "attr", info.AttrName)
		return nil, nil
	}
	return handler(s, el, info, bindable)
}

// Commands returns the sorted names of the supported binding commands
func (s *SyntaxInterpreter) Commands() []string {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *SyntaxInterpreter) handleUnknownCommand(el Element, info *AttrInfo) (Instruction, error) {
	s.logger.Warn("Unknown binding command.", "element", el.TagName(), "attr", info.AttrName, "command", info.Command)
	return nil, nil
}

// DetermineDefaultBindingMode infers the mode of a `.bind` command. A
// bindable property uses its declared mode; form controls and scrolling
// properties are two-way; everything else is to-view.
func (s *SyntaxInterpreter) DetermineDefaultBindingMode(el Element, attrName string, bindable *resources.BindableProperty) core.BindingMode {
	if bindable != nil {
		return bindable.DefaultBindingMode
	}
	tagName := strings.ToLower(el.TagName())
	inputType := strings.ToLower(el.GetAttribute("type"))
	checkable := inputType == "checkbox" || inputType == "radio"
	switch {
	case tagName == "input" && (attrName == "value" || attrName == "files") && !checkable,
		tagName == "input" && attrName == "checked" && checkable,
		(tagName == "textarea" || tagName == "select") && attrName == "value",
		(attrName == "textcontent" || attrName == "innerhtml") && contentEditable(el),
		attrName == "scrolltop",
		attrName == "scrollleft":
		return core.BindingModeTwoWay
	}
	return core.BindingModeToView
}

// contentEditable mirrors the DOM contentEditable property: a bare
// attribute counts as "true".
func contentEditable(el Element) bool {
	if !el.HasAttribute("contenteditable") {
		return false
	}
	value := strings.ToLower(el.GetAttribute("contenteditable"))
	return value == "" || value == "true"
}

func (s *SyntaxInterpreter) dest(el Element, info *AttrInfo, bindable *resources.BindableProperty) string {
	if bindable != nil {
		return bindable.Name
	}
	return s.attributeMap.Map(el.TagName(), info.AttrName)
}

func (s *SyntaxInterpreter) bind(el Element, info *AttrInfo, bindable *resources.BindableProperty) (Instruction, error) {
	mode := s.DetermineDefaultBindingMode(el, info.AttrName, bindable)
	if info.DefaultBindingMode != nil {
		mode = *info.DefaultBindingMode
	}
	return s.propertyBinding(el, info, bindable, mode)
}

func (s *SyntaxInterpreter) propertyBinding(el Element, info *AttrInfo, bindable *resources.BindableProperty, mode core.BindingMode) (Instruction, error) {
	record, err := s.parser.AddRecord(info.AttrValue)
	if err != nil {
		return nil, err
	}
	return NewPropertyBinding(mode, info.AttrValue, s.dest(el, info, bindable), record.ID), nil
}

func (s *SyntaxInterpreter) ref(el Element, info *AttrInfo, bindable *resources.BindableProperty) (Instruction, error) {
	record, err := s.parser.AddRecord(info.AttrValue)
	if err != nil {
		return nil, err
	}
	return &RefBindingInstruction{Src: info.AttrValue, Dest: info.AttrName, Record: record.ID}, nil
}

func explicit(mode core.BindingMode) commandHandler {
	return func(s *SyntaxInterpreter, el Element, info *AttrInfo, bindable *resources.BindableProperty) (Instruction, error) {
		return s.propertyBinding(el, info, bindable, mode)
	}
}

func listener(strategy core.DelegationStrategy) commandHandler {
	return func(s *SyntaxInterpreter, el Element, info *AttrInfo, bindable *resources.BindableProperty) (Instruction, error) {
		record, err := s.parser.AddRecord(info.AttrValue)
		if err != nil {
			return nil, err
		}
		return &ListenerBindingInstruction{
			Src:            info.AttrValue,
			Dest:           info.AttrName,
			PreventDefault: true,
			Strategy:       strategy,
			Record:         record.ID,
		}, nil
	}
}
