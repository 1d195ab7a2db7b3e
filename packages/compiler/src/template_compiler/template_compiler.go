package template_compiler

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"auc-go/packages/compiler/src/config"
	ep "auc-go/packages/compiler/src/expression_parser"
	"auc-go/packages/compiler/src/resources"
	"auc-go/packages/compiler/src/util"

	"golang.org/x/net/html"
)

// TemplateSource is the input of one compilation
type TemplateSource struct {
	Name     string `json:"name,omitempty"`
	Template string `json:"template"`
}

// ShadowOptions mirrors ShadowRootInit
type ShadowOptions struct {
	Mode string `json:"mode"`
}

// TemplateDefinition is the compiled form of one template. Instructions
// holds one set per marked node, in document order.
type TemplateDefinition struct {
	Name               string             `json:"name"`
	Template           string             `json:"template"`
	Containerless      bool               `json:"containerless"`
	ShadowOptions      ShadowOptions      `json:"shadowOptions"`
	HasSlots           bool               `json:"hasSlots"`
	Bindables          []string           `json:"bindables"`
	Dependencies       []string           `json:"dependencies"`
	Instructions       [][]Instruction    `json:"instructions"`
	Surrogates         []Instruction      `json:"surrogates"`
	ObservedProperties []string           `json:"observedProperties"`
	Diagnostics        []*util.ParseError `json:"diagnostics,omitempty"`
}

// TemplateCompiler compiles template markup into a TemplateDefinition
type TemplateCompiler struct {
	parser          *ep.Parser
	bindingLanguage *BindingLanguage
	interpreter     *SyntaxInterpreter
	config          *config.CompilerConfig
}

// NewTemplateCompiler creates a new TemplateCompiler
func NewTemplateCompiler(parser *ep.Parser, bindingLanguage *BindingLanguage, interpreter *SyntaxInterpreter, cfg *config.CompilerConfig) *TemplateCompiler {
	if cfg == nil {
		cfg = config.NewCompilerConfig()
	}
	return &TemplateCompiler{
		parser:          parser,
		bindingLanguage: bindingLanguage,
		interpreter:     interpreter,
		config:          cfg,
	}
}

// Compile compiles source against res. Expression errors are recorded as
// diagnostics unless strict expressions are enabled; structural errors
// always fail the compilation with a *util.CompileError.
func (c *TemplateCompiler) Compile(source TemplateSource, res *resources.Resources) (*TemplateDefinition, error) {
	if res == nil {
		res = resources.NewResources()
	}
	root, err := parseTemplate(source.Template)
	if err != nil {
		return nil, &util.CompileError{Message: "Invalid template", Err: err}
	}
	if root == nil {
		return nil, util.NewCompileError("Invalid template: [%s]", source.Template)
	}

	name := source.Name
	if name == "" {
		name = c.config.DefaultName
	}
	def := &TemplateDefinition{
		Name:               name,
		ShadowOptions:      ShadowOptions{Mode: "open"},
		Bindables:          []string{},
		Dependencies:       []string{},
		Instructions:       [][]Instruction{},
		Surrogates:         []Instruction{},
		ObservedProperties: []string{},
	}
	comp := &compilation{
		TemplateCompiler: c,
		def:              def,
		resources:        res,
		logger:           c.config.Logger,
		seen:             map[string]bool{},
	}

	dependencies, err := ExtractDependencies(root, comp.logger)
	if err != nil {
		return nil, err
	}
	def.Dependencies = dependencies

	if root.Data == "template" {
		if err := comp.compileSurrogates(root); err != nil {
			return nil, err
		}
		if err := comp.compileChildren(root); err != nil {
			return nil, err
		}
	} else if err := comp.compileElement(root); err != nil {
		return nil, err
	}

	def.Template, err = render(root)
	if err != nil {
		return nil, &util.CompileError{Message: "Cannot render template", Err: err}
	}
	return def, nil
}

// compilation is the state of one Compile call
type compilation struct {
	*TemplateCompiler
	def       *TemplateDefinition
	resources *resources.Resources
	logger    *slog.Logger
	seen      map[string]bool
}

// fail records err as a diagnostic, or returns it in strict mode
func (c *compilation) fail(location string, err error) error {
	if c.config.StrictExpressions {
		return &util.CompileError{Message: location, Err: err}
	}
	diagnostic := util.NewParseError(location, err.Error())
	diagnostic.RelatedError = err
	c.def.Diagnostics = append(c.def.Diagnostics, diagnostic)
	c.logger.Debug("skipped binding", "location", location, "error", err)
	return nil
}

// compileChildren walks a snapshot of the children of parent, so edits made
// while compiling one child never disturb the iteration
func (c *compilation) compileChildren(parent *html.Node) error {
	children := childSnapshot(parent)
	for i := 0; i < len(children); i++ {
		switch children[i].Type {
		case html.ElementNode:
			if err := c.compileElement(children[i]); err != nil {
				return err
			}
		case html.TextNode:
			end := i + 1
			for end < len(children) && children[end].Type == html.TextNode {
				end++
			}
			if err := c.compileText(children[i:end]); err != nil {
				return err
			}
			i = end - 1
		}
	}
	return nil
}

// compileText compiles a run of adjacent text nodes as one text
func (c *compilation) compileText(run []*html.Node) error {
	var whole strings.Builder
	for _, n := range run {
		whole.WriteString(n.Data)
	}
	wholeText := whole.String()

	expression, err := c.bindingLanguage.InspectTextContent(wholeText)
	if err != nil {
		return c.fail("#text", err)
	}
	if expression == nil {
		return nil
	}

	first := run[0]
	marker := newElement(c.config.MarkerTag)
	addClass(marker, c.config.MarkerClass)
	first.Parent.InsertBefore(marker, first)
	first.Data = " "
	for _, n := range run[1:] {
		n.Parent.RemoveChild(n)
	}

	record := c.parser.Registry().Add(wholeText, expression)
	c.addInstructionSet([]Instruction{&TextBindingInstruction{Src: wholeText, Record: record.ID}})
	return nil
}

// compileElement compiles the attributes of n, then its children
func (c *compilation) compileElement(n *html.Node) error {
	tag := n.Data
	if as, ok := getAttr(n, "as-element"); ok && as != "" {
		tag = as
	}
	elementName := strings.ToLower(tag)
	switch elementName {
	case "slot":
		return util.NewCompileError("<slot/> compilation not implemented.")
	case "template":
		return util.NewCompileError("Nested <template/> compilation not implemented.")
	}

	el := htmlElement{node: n}
	elRes, isElement := c.resources.GetElement(elementName)

	var instructions []Instruction
	var hydrate *HydrateElementInstruction
	if isElement {
		hydrate = &HydrateElementInstruction{Res: elementName, Instructions: []Instruction{}}
		instructions = append(instructions, hydrate)
	}

	consumed := map[int]bool{}
	attrs := append([]html.Attribute(nil), n.Attr...)
	for i, attr := range attrs {
		name := attrName(attr)
		if name == "as-element" {
			continue
		}
		instruction, bindable, err := c.compileAttribute(el, elementName, elRes, name, attr.Val)
		if err != nil {
			if err := c.fail(fmt.Sprintf("<%s %s>", elementName, name), err); err != nil {
				return err
			}
			continue
		}
		if instruction == nil {
			continue
		}
		if bindable {
			hydrate.Instructions = append(hydrate.Instructions, instruction)
		} else {
			instructions = append(instructions, instruction)
		}
		consumed[i] = true
	}

	if isElement || len(instructions) > 0 {
		removeAttrs(n, consumed)
		addClass(n, c.config.MarkerClass)
		c.addInstructionSet(instructions)
	}

	return c.compileChildren(n)
}

// compileAttribute returns the instruction for one attribute. bindable
// reports that it targets a bindable of the custom element itself.
func (c *compilation) compileAttribute(el Element, elementName string, elRes *resources.ElementResource, name, value string) (Instruction, bool, error) {
	if name == "ref" {
		record, err := c.parser.AddRecord(value)
		if err != nil {
			return nil, false, err
		}
		return &RefBindingInstruction{Src: value, Dest: ElementRefKey, Record: record.ID}, false, nil
	}

	info, err := c.bindingLanguage.InspectAttribute(elementName, name, value)
	if err != nil {
		return nil, false, err
	}

	if elRes != nil {
		if bindable := elRes.GetBindable(info.AttrName); bindable != nil {
			instruction, err := c.propertyInstruction(el, info, bindable)
			return instruction, true, err
		}
	}
	if attrRes, ok := c.resources.GetAttribute(info.AttrName); ok {
		instruction, err := c.attributeInstruction(el, info, attrRes)
		return instruction, false, err
	}
	if info.HasCommand() {
		instruction, err := c.interpreter.Interpret(el, info, nil)
		return instruction, false, err
	}
	if info.Expression != nil {
		return c.interpolationBinding(el, info, nil), false, nil
	}
	return nil, false, nil
}

// propertyInstruction targets a bindable property: commands go through the
// interpreter, interpolations bind one way and literals are set once
func (c *compilation) propertyInstruction(el Element, info *AttrInfo, bindable *resources.BindableProperty) (Instruction, error) {
	if info.HasCommand() {
		return c.interpreter.Interpret(el, info, bindable)
	}
	if info.Expression != nil {
		return c.interpolationBinding(el, info, bindable), nil
	}
	return &SetPropertyInstruction{Value: info.AttrValue, Dest: c.interpreter.dest(el, info, bindable)}, nil
}

func (c *compilation) interpolationBinding(el Element, info *AttrInfo, bindable *resources.BindableProperty) Instruction {
	record := c.parser.Registry().Add(info.AttrValue, info.Expression)
	return &OneWayBindingInstruction{PropertyBinding{
		Src:    info.AttrValue,
		Dest:   c.interpreter.dest(el, info, bindable),
		Record: record.ID,
	}}
}

// attributeInstruction hydrates a custom attribute. A value without options
// targets the primary property, or `value` when there is none.
func (c *compilation) attributeInstruction(el Element, info *AttrInfo, attrRes *resources.AttributeResource) (Instruction, error) {
	hydrate := &HydrateAttributeInstruction{Res: attrRes.HTMLName, Instructions: []Instruction{}}

	var options []OptionPart
	if !info.HasCommand() && info.Expression == nil {
		options = ParseOptionBag(info.AttrValue)
	}

	if options == nil {
		part := *info
		bindable := attrRes.PrimaryProperty
		part.AttrName = "value"
		if bindable != nil {
			part.AttrName = bindable.Attribute
		}
		instruction, err := c.propertyInstruction(el, &part, bindable)
		if err != nil {
			return nil, err
		}
		if instruction != nil {
			hydrate.Instructions = append(hydrate.Instructions, instruction)
		}
		return hydrate, nil
	}

	assigned := map[string]bool{}
	for _, option := range options {
		name := option.Name
		if name == "" {
			name = "value"
			if attrRes.PrimaryProperty != nil {
				name = attrRes.PrimaryProperty.Attribute
			}
		}
		part, err := c.bindingLanguage.InspectAttribute("?", name, option.Value)
		if err != nil {
			return nil, err
		}
		if assigned[part.AttrName] {
			continue
		}
		assigned[part.AttrName] = true
		instruction, err := c.propertyInstruction(el, part, attrRes.GetBindable(part.AttrName))
		if err != nil {
			return nil, err
		}
		if instruction != nil {
			hydrate.Instructions = append(hydrate.Instructions, instruction)
		}
	}
	return hydrate, nil
}

// compileSurrogates turns the attributes of the root <template> into
// surrogate instructions. containerless and bindable configure the definition.
func (c *compilation) compileSurrogates(root *html.Node) error {
	el := htmlElement{node: root}
	consumed := map[int]bool{}
	attrs := append([]html.Attribute(nil), root.Attr...)
	for i, attr := range attrs {
		name := attrName(attr)
		switch name {
		case "containerless":
			c.def.Containerless = true
			consumed[i] = true
			continue
		case "bindable":
			for _, b := range strings.Split(attr.Val, ",") {
				if b = strings.TrimSpace(b); b != "" {
					c.def.Bindables = append(c.def.Bindables, b)
				}
			}
			consumed[i] = true
			continue
		}

		info, err := c.bindingLanguage.InspectAttribute("template", name, attr.Val)
		if err != nil {
			if err := c.fail(fmt.Sprintf("<template %s>", name), err); err != nil {
				return err
			}
			continue
		}
		var instruction Instruction
		switch {
		case info.HasCommand():
			instruction, err = c.interpreter.Interpret(el, info, nil)
			if err != nil {
				if err := c.fail(fmt.Sprintf("<template %s>", name), err); err != nil {
					return err
				}
				continue
			}
		case info.Expression != nil:
			instruction = c.interpolationBinding(el, info, nil)
		default:
			instruction = &SetAttributeInstruction{Value: attr.Val, Dest: name}
		}
		if instruction == nil {
			continue
		}
		c.def.Surrogates = append(c.def.Surrogates, instruction)
		c.observe(instruction)
		consumed[i] = true
	}
	removeAttrs(root, consumed)
	return nil
}

func (c *compilation) addInstructionSet(instructions []Instruction) {
	if instructions == nil {
		instructions = []Instruction{}
	}
	c.def.Instructions = append(c.def.Instructions, instructions)
	c.observe(instructions...)
}

// observe adds the observed properties of bound expressions in first
// appearance order
func (c *compilation) observe(instructions ...Instruction) {
	for _, instruction := range instructions {
		var record int
		switch i := instruction.(type) {
		case *OneWayBindingInstruction:
			record = i.Record
		case *TwoWayBindingInstruction:
			record = i.Record
		case *OneTimeBindingInstruction:
			record = i.Record
		case *FromViewBindingInstruction:
			record = i.Record
		case *TextBindingInstruction:
			record = i.Record
		case *HydrateElementInstruction:
			c.observe(i.Instructions...)
			continue
		case *HydrateAttributeInstruction:
			c.observe(i.Instructions...)
			continue
		default:
			continue
		}
		r, ok := c.parser.Registry().Get(record)
		if !ok {
			continue
		}
		for _, property := range r.AST.ObservedProperties() {
			if !c.seen[property] {
				c.seen[property] = true
				c.def.ObservedProperties = append(c.def.ObservedProperties, property)
			}
		}
	}
}

// OptionPart is one `name: value` entry of a custom attribute option bag.
// Name is empty for a value without a name.
type OptionPart struct {
	Name  string
	Value string
}

var optionNamePattern = regexp.MustCompile(`^[A-Za-z_$][\w$-]*(\.[\w-]+)?$`)

// ParseOptionBag splits `color.bind: c; size: 100` into its parts. It
// returns nil when value is not an option bag, i.e. when it has no `:`
// outside quotes or the text before the first `:` is not an attribute name.
func ParseOptionBag(value string) []OptionPart {
	var parts []OptionPart
	var target strings.Builder
	var quote rune
	name := ""
	hasName := false
	escaped := false

	flush := func() {
		v := strings.TrimSpace(target.String())
		if hasName || v != "" {
			parts = append(parts, OptionPart{Name: name, Value: v})
		}
		target.Reset()
		name = ""
		hasName = false
	}

	for _, char := range value {
		switch {
		case escaped:
			target.WriteRune(char)
			escaped = false
		case char == '\\':
			target.WriteRune(char)
			escaped = true
		case quote != 0:
			target.WriteRune(char)
			if char == quote {
				quote = 0
			}
		case char == '\'' || char == '"':
			target.WriteRune(char)
			quote = char
		case char == ';':
			flush()
		case char == ':' && !hasName:
			name = strings.TrimSpace(target.String())
			hasName = true
			target.Reset()
		default:
			target.WriteRune(char)
		}
	}
	flush()

	if len(parts) == 0 || parts[0].Name == "" || !optionNamePattern.MatchString(parts[0].Name) {
		return nil
	}
	return parts
}
