package expression_parser

import "fmt"

// AstKind is the numeric tag written as the first element of a dehydrated node
type AstKind int

const (
	AstKindChain AstKind = iota + 2
	AstKindValueConverter
	AstKindBindingBehavior
	AstKindAssign
	AstKindConditional
	AstKindAccessThis
	AstKindAccessScope
	AstKindAccessMember
	AstKindAccessKeyed
	AstKindCallScope
	AstKindCallFunction
	AstKindCallMember
	AstKindPrefixNot
	AstKindBinary
	AstKindLiteralPrimitive
	AstKindLiteralArray
	AstKindLiteralObject
	AstKindLiteralString
	AstKindTemplateLiteral
)

var astKindNames = map[AstKind]string{
	AstKindChain:            "Chain",
	AstKindValueConverter:   "ValueConverter",
	AstKindBindingBehavior:  "BindingBehavior",
	AstKindAssign:           "Assign",
	AstKindConditional:      "Conditional",
	AstKindAccessThis:       "AccessThis",
	AstKindAccessScope:      "AccessScope",
	AstKindAccessMember:     "AccessMember",
	AstKindAccessKeyed:      "AccessKeyed",
	AstKindCallScope:        "CallScope",
	AstKindCallFunction:     "CallFunction",
	AstKindCallMember:       "CallMember",
	AstKindPrefixNot:        "PrefixNot",
	AstKindBinary:           "Binary",
	AstKindLiteralPrimitive: "LiteralPrimitive",
	AstKindLiteralArray:     "LiteralArray",
	AstKindLiteralObject:    "LiteralObject",
	AstKindLiteralString:    "LiteralString",
	AstKindTemplateLiteral:  "TemplateLiteral",
}

// String returns the node type name of the kind
func (k AstKind) String() string {
	if name, ok := astKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("AstKind(%d)", int(k))
}

// AST is the closed set of expression nodes. Nodes are immutable once the
// parser returns them.
type AST interface {
	Kind() AstKind
	// Dehydrate returns the compact positional form: kind tag followed by fields
	Dehydrate() []interface{}
	// ObservedProperties returns the ancestor-0 scope names the expression reads
	ObservedProperties() []string
	Visit(visitor AstVisitor, context interface{}) interface{}
	String() string
	expression()
}

// AstVisitor has one method per node kind
type AstVisitor interface {
	VisitChain(ast *Chain, context interface{}) interface{}
	VisitValueConverter(ast *ValueConverter, context interface{}) interface{}
	VisitBindingBehavior(ast *BindingBehavior, context interface{}) interface{}
	VisitAssign(ast *Assign, context interface{}) interface{}
	VisitConditional(ast *Conditional, context interface{}) interface{}
	VisitAccessThis(ast *AccessThis, context interface{}) interface{}
	VisitAccessScope(ast *AccessScope, context interface{}) interface{}
	VisitAccessMember(ast *AccessMember, context interface{}) interface{}
	VisitAccessKeyed(ast *AccessKeyed, context interface{}) interface{}
	VisitCallScope(ast *CallScope, context interface{}) interface{}
	VisitCallFunction(ast *CallFunction, context interface{}) interface{}
	VisitCallMember(ast *CallMember, context interface{}) interface{}
	VisitPrefixNot(ast *PrefixNot, context interface{}) interface{}
	VisitBinary(ast *Binary, context interface{}) interface{}
	VisitLiteralPrimitive(ast *LiteralPrimitive, context interface{}) interface{}
	VisitLiteralArray(ast *LiteralArray, context interface{}) interface{}
	VisitLiteralObject(ast *LiteralObject, context interface{}) interface{}
	VisitLiteralString(ast *LiteralString, context interface{}) interface{}
	VisitTemplateLiteral(ast *TemplateLiteral, context interface{}) interface{}
}

// UndefinedValue is the value of the `undefined` literal
type UndefinedValue struct{}

// Undefined is the value held by a LiteralPrimitive parsed from `undefined`
var Undefined = UndefinedValue{}

// IsAssignable reports whether ast may appear on the left of `=`
func IsAssignable(ast AST) bool {
	switch ast.(type) {
	case *AccessScope, *AccessMember, *AccessKeyed:
		return true
	}
	return false
}

func dehydrateAll(nodes []AST) []interface{} {
	result := make([]interface{}, len(nodes))
	for i, node := range nodes {
		result[i] = node.Dehydrate()
	}
	return result
}

func observedAll(props []string, nodes ...AST) []string {
	if props == nil {
		props = []string{}
	}
	for _, node := range nodes {
		props = append(props, node.ObservedProperties()...)
	}
	return props
}

// Chain represents expressions separated by a semicolon
type Chain struct {
	Expressions []AST
}

// NewChain creates a new Chain
func NewChain(expressions []AST) *Chain {
	return &Chain{Expressions: expressions}
}

func (c *Chain) expression() {}

// Kind implements the AST interface
func (c *Chain) Kind() AstKind { return AstKindChain }

// Dehydrate implements the AST interface
func (c *Chain) Dehydrate() []interface{} {
	return []interface{}{int(AstKindChain), dehydrateAll(c.Expressions)}
}

// ObservedProperties implements the AST interface
func (c *Chain) ObservedProperties() []string {
	return observedAll(nil, c.Expressions...)
}

// Visit implements the AST interface
func (c *Chain) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitChain(c, context)
}

func (c *Chain) String() string { return Serialize(c) }

// ValueConverter represents `expression | name:arg`
type ValueConverter struct {
	Expression AST
	Name       string
	Args       []AST
}

// NewValueConverter creates a new ValueConverter
func NewValueConverter(expression AST, name string, args []AST) *ValueConverter {
	return &ValueConverter{Expression: expression, Name: name, Args: args}
}

func (v *ValueConverter) expression() {}

// Kind implements the AST interface
func (v *ValueConverter) Kind() AstKind { return AstKindValueConverter }

// Dehydrate implements the AST interface
func (v *ValueConverter) Dehydrate() []interface{} {
	return []interface{}{int(AstKindValueConverter), v.Expression.Dehydrate(), v.Name, dehydrateAll(v.Args)}
}

// ObservedProperties implements the AST interface
func (v *ValueConverter) ObservedProperties() []string {
	return observedAll(v.Expression.ObservedProperties(), v.Args...)
}

// Visit implements the AST interface
func (v *ValueConverter) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitValueConverter(v, context)
}

func (v *ValueConverter) String() string { return Serialize(v) }

// BindingBehavior represents `expression & name:arg`
type BindingBehavior struct {
	Expression AST
	Name       string
	Args       []AST
}

// NewBindingBehavior creates a new BindingBehavior
func NewBindingBehavior(expression AST, name string, args []AST) *BindingBehavior {
	return &BindingBehavior{Expression: expression, Name: name, Args: args}
}

func (b *BindingBehavior) expression() {}

// Kind implements the AST interface
func (b *BindingBehavior) Kind() AstKind { return AstKindBindingBehavior }

// Dehydrate implements the AST interface
func (b *BindingBehavior) Dehydrate() []interface{} {
	return []interface{}{int(AstKindBindingBehavior), b.Expression.Dehydrate(), b.Name, dehydrateAll(b.Args)}
}

// ObservedProperties implements the AST interface
func (b *BindingBehavior) ObservedProperties() []string {
	return observedAll(b.Expression.ObservedProperties(), b.Args...)
}

// Visit implements the AST interface
func (b *BindingBehavior) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitBindingBehavior(b, context)
}

func (b *BindingBehavior) String() string { return Serialize(b) }

// Assign represents `target = value`
type Assign struct {
	Target AST
	Value  AST
}

// NewAssign creates a new Assign
func NewAssign(target, value AST) *Assign {
	return &Assign{Target: target, Value: value}
}

func (a *Assign) expression() {}

// Kind implements the AST interface
func (a *Assign) Kind() AstKind { return AstKindAssign }

// Dehydrate implements the AST interface
func (a *Assign) Dehydrate() []interface{} {
	return []interface{}{int(AstKindAssign), a.Target.Dehydrate(), a.Value.Dehydrate()}
}

// ObservedProperties implements the AST interface. Only the assigned value is read.
func (a *Assign) ObservedProperties() []string {
	return observedAll(nil, a.Value)
}

// Visit implements the AST interface
func (a *Assign) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitAssign(a, context)
}

func (a *Assign) String() string { return Serialize(a) }

// Conditional represents `condition ? yes : no`
type Conditional struct {
	Condition AST
	Yes       AST
	No        AST
}

// NewConditional creates a new Conditional
func NewConditional(condition, yes, no AST) *Conditional {
	return &Conditional{Condition: condition, Yes: yes, No: no}
}

func (c *Conditional) expression() {}

// Kind implements the AST interface
func (c *Conditional) Kind() AstKind { return AstKindConditional }

// Dehydrate implements the AST interface
func (c *Conditional) Dehydrate() []interface{} {
	return []interface{}{int(AstKindConditional), c.Condition.Dehydrate(), c.Yes.Dehydrate(), c.No.Dehydrate()}
}

// ObservedProperties implements the AST interface
func (c *Conditional) ObservedProperties() []string {
	return observedAll(nil, c.Condition, c.Yes, c.No)
}

// Visit implements the AST interface
func (c *Conditional) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitConditional(c, context)
}

func (c *Conditional) String() string { return Serialize(c) }

// AccessThis represents `$this` or a bare `$parent` chain
type AccessThis struct {
	Ancestor int
}

// NewAccessThis creates a new AccessThis
func NewAccessThis(ancestor int) *AccessThis {
	return &AccessThis{Ancestor: ancestor}
}

func (a *AccessThis) expression() {}

// Kind implements the AST interface
func (a *AccessThis) Kind() AstKind { return AstKindAccessThis }

// Dehydrate implements the AST interface
func (a *AccessThis) Dehydrate() []interface{} {
	return []interface{}{int(AstKindAccessThis), a.Ancestor}
}

// ObservedProperties implements the AST interface
func (a *AccessThis) ObservedProperties() []string {
	return []string{}
}

// Visit implements the AST interface
func (a *AccessThis) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitAccessThis(a, context)
}

func (a *AccessThis) String() string { return Serialize(a) }

// AccessScope represents a name resolved against the scope Ancestor levels up
type AccessScope struct {
	Name     string
	Ancestor int
}

// NewAccessScope creates a new AccessScope
func NewAccessScope(name string, ancestor int) *AccessScope {
	return &AccessScope{Name: name, Ancestor: ancestor}
}

func (a *AccessScope) expression() {}

// Kind implements the AST interface
func (a *AccessScope) Kind() AstKind { return AstKindAccessScope }

// Dehydrate implements the AST interface
func (a *AccessScope) Dehydrate() []interface{} {
	return []interface{}{int(AstKindAccessScope), a.Name, a.Ancestor}
}

// ObservedProperties implements the AST interface
func (a *AccessScope) ObservedProperties() []string {
	if a.Ancestor == 0 {
		return []string{a.Name}
	}
	return []string{}
}

// Visit implements the AST interface
func (a *AccessScope) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitAccessScope(a, context)
}

func (a *AccessScope) String() string { return Serialize(a) }

// AccessMember represents `object.name`
type AccessMember struct {
	Object AST
	Name   string
}

// NewAccessMember creates a new AccessMember
func NewAccessMember(object AST, name string) *AccessMember {
	return &AccessMember{Object: object, Name: name}
}

func (a *AccessMember) expression() {}

// Kind implements the AST interface
func (a *AccessMember) Kind() AstKind { return AstKindAccessMember }

// Dehydrate implements the AST interface
func (a *AccessMember) Dehydrate() []interface{} {
	return []interface{}{int(AstKindAccessMember), a.Object.Dehydrate(), a.Name}
}

// ObservedProperties implements the AST interface. Only the root of a
// member read on an ancestor-0 scope access is observed.
func (a *AccessMember) ObservedProperties() []string {
	if object, ok := a.Object.(*AccessScope); ok && object.Ancestor == 0 {
		return object.ObservedProperties()
	}
	return []string{}
}

// Visit implements the AST interface
func (a *AccessMember) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitAccessMember(a, context)
}

func (a *AccessMember) String() string { return Serialize(a) }

// AccessKeyed represents `object[key]`
type AccessKeyed struct {
	Object AST
	Key    AST
}

// NewAccessKeyed creates a new AccessKeyed
func NewAccessKeyed(object, key AST) *AccessKeyed {
	return &AccessKeyed{Object: object, Key: key}
}

func (a *AccessKeyed) expression() {}

// Kind implements the AST interface
func (a *AccessKeyed) Kind() AstKind { return AstKindAccessKeyed }

// Dehydrate implements the AST interface
func (a *AccessKeyed) Dehydrate() []interface{} {
	return []interface{}{int(AstKindAccessKeyed), a.Object.Dehydrate(), a.Key.Dehydrate()}
}

// ObservedProperties implements the AST interface. Only indexing applied
// directly to a scope name is observed; the key counts when it is itself an
// ancestor-0 scope name.
func (a *AccessKeyed) ObservedProperties() []string {
	object, ok := a.Object.(*AccessScope)
	if !ok || object.Ancestor != 0 {
		return []string{}
	}
	props := object.ObservedProperties()
	if key, ok := a.Key.(*AccessScope); ok {
		props = append(props, key.ObservedProperties()...)
	}
	return props
}

// Visit implements the AST interface
func (a *AccessKeyed) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitAccessKeyed(a, context)
}

func (a *AccessKeyed) String() string { return Serialize(a) }

// CallScope represents `name(args)` resolved against a scope
type CallScope struct {
	Name     string
	Args     []AST
	Ancestor int
}

// NewCallScope creates a new CallScope
func NewCallScope(name string, args []AST, ancestor int) *CallScope {
	return &CallScope{Name: name, Args: args, Ancestor: ancestor}
}

func (c *CallScope) expression() {}

// Kind implements the AST interface
func (c *CallScope) Kind() AstKind { return AstKindCallScope }

// Dehydrate implements the AST interface
func (c *CallScope) Dehydrate() []interface{} {
	return []interface{}{int(AstKindCallScope), c.Name, dehydrateAll(c.Args), c.Ancestor}
}

// ObservedProperties implements the AST interface
func (c *CallScope) ObservedProperties() []string {
	return observedAll(nil, c.Args...)
}

// Visit implements the AST interface
func (c *CallScope) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitCallScope(c, context)
}

func (c *CallScope) String() string { return Serialize(c) }

// CallFunction represents `func(args)` for an arbitrary callee expression
type CallFunction struct {
	Func AST
	Args []AST
}

// NewCallFunction creates a new CallFunction
func NewCallFunction(fn AST, args []AST) *CallFunction {
	return &CallFunction{Func: fn, Args: args}
}

func (c *CallFunction) expression() {}

// Kind implements the AST interface
func (c *CallFunction) Kind() AstKind { return AstKindCallFunction }

// Dehydrate implements the AST interface
func (c *CallFunction) Dehydrate() []interface{} {
	return []interface{}{int(AstKindCallFunction), c.Func.Dehydrate(), dehydrateAll(c.Args)}
}

// ObservedProperties implements the AST interface
func (c *CallFunction) ObservedProperties() []string {
	return observedAll(nil, c.Args...)
}

// Visit implements the AST interface
func (c *CallFunction) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitCallFunction(c, context)
}

func (c *CallFunction) String() string { return Serialize(c) }

// CallMember represents `object.name(args)`
type CallMember struct {
	Object AST
	Name   string
	Args   []AST
}

// NewCallMember creates a new CallMember
func NewCallMember(object AST, name string, args []AST) *CallMember {
	return &CallMember{Object: object, Name: name, Args: args}
}

func (c *CallMember) expression() {}

// Kind implements the AST interface
func (c *CallMember) Kind() AstKind { return AstKindCallMember }

// Dehydrate implements the AST interface
func (c *CallMember) Dehydrate() []interface{} {
	return []interface{}{int(AstKindCallMember), c.Object.Dehydrate(), c.Name, dehydrateAll(c.Args)}
}

// ObservedProperties implements the AST interface
func (c *CallMember) ObservedProperties() []string {
	return []string{}
}

// Visit implements the AST interface
func (c *CallMember) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitCallMember(c, context)
}

func (c *CallMember) String() string { return Serialize(c) }

// PrefixNot represents the unary `!expression`
type PrefixNot struct {
	Expression AST
}

// NewPrefixNot creates a new PrefixNot
func NewPrefixNot(expression AST) *PrefixNot {
	return &PrefixNot{Expression: expression}
}

func (p *PrefixNot) expression() {}

// Kind implements the AST interface
func (p *PrefixNot) Kind() AstKind { return AstKindPrefixNot }

// Dehydrate implements the AST interface
func (p *PrefixNot) Dehydrate() []interface{} {
	return []interface{}{int(AstKindPrefixNot), p.Expression.Dehydrate()}
}

// ObservedProperties implements the AST interface
func (p *PrefixNot) ObservedProperties() []string {
	return observedAll(nil, p.Expression)
}

// Visit implements the AST interface
func (p *PrefixNot) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitPrefixNot(p, context)
}

func (p *PrefixNot) String() string { return Serialize(p) }

// Binary represents a binary operation
type Binary struct {
	Operation string
	Left      AST
	Right     AST
}

// NewBinary creates a new Binary
func NewBinary(operation string, left, right AST) *Binary {
	return &Binary{Operation: operation, Left: left, Right: right}
}

func (b *Binary) expression() {}

// Kind implements the AST interface
func (b *Binary) Kind() AstKind { return AstKindBinary }

// Dehydrate implements the AST interface
func (b *Binary) Dehydrate() []interface{} {
	return []interface{}{int(AstKindBinary), b.Operation, b.Left.Dehydrate(), b.Right.Dehydrate()}
}

// ObservedProperties implements the AST interface
func (b *Binary) ObservedProperties() []string {
	return observedAll(nil, b.Left, b.Right)
}

// Visit implements the AST interface
func (b *Binary) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitBinary(b, context)
}

func (b *Binary) String() string { return Serialize(b) }

// LiteralPrimitive holds nil (null), Undefined, a bool or a float64
type LiteralPrimitive struct {
	Value interface{}
}

// NewLiteralPrimitive creates a new LiteralPrimitive
func NewLiteralPrimitive(value interface{}) *LiteralPrimitive {
	return &LiteralPrimitive{Value: value}
}

func (l *LiteralPrimitive) expression() {}

// Kind implements the AST interface
func (l *LiteralPrimitive) Kind() AstKind { return AstKindLiteralPrimitive }

// Dehydrate implements the AST interface. undefined dehydrates like null.
func (l *LiteralPrimitive) Dehydrate() []interface{} {
	if _, ok := l.Value.(UndefinedValue); ok {
		return []interface{}{int(AstKindLiteralPrimitive), nil}
	}
	return []interface{}{int(AstKindLiteralPrimitive), l.Value}
}

// ObservedProperties implements the AST interface
func (l *LiteralPrimitive) ObservedProperties() []string {
	return []string{}
}

// Visit implements the AST interface
func (l *LiteralPrimitive) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralPrimitive(l, context)
}

func (l *LiteralPrimitive) String() string { return Serialize(l) }

// LiteralArray represents `[a, b]`
type LiteralArray struct {
	Elements []AST
}

// NewLiteralArray creates a new LiteralArray
func NewLiteralArray(elements []AST) *LiteralArray {
	return &LiteralArray{Elements: elements}
}

func (l *LiteralArray) expression() {}

// Kind implements the AST interface
func (l *LiteralArray) Kind() AstKind { return AstKindLiteralArray }

// Dehydrate implements the AST interface
func (l *LiteralArray) Dehydrate() []interface{} {
	return []interface{}{int(AstKindLiteralArray), dehydrateAll(l.Elements)}
}

// ObservedProperties implements the AST interface
func (l *LiteralArray) ObservedProperties() []string {
	return observedAll(nil, l.Elements...)
}

// Visit implements the AST interface
func (l *LiteralArray) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralArray(l, context)
}

func (l *LiteralArray) String() string { return Serialize(l) }

// LiteralObject represents `{ k: v }`. Keys and Values are parallel.
type LiteralObject struct {
	Keys   []string
	Values []AST
}

// NewLiteralObject creates a new LiteralObject
func NewLiteralObject(keys []string, values []AST) *LiteralObject {
	return &LiteralObject{Keys: keys, Values: values}
}

func (l *LiteralObject) expression() {}

// Kind implements the AST interface
func (l *LiteralObject) Kind() AstKind { return AstKindLiteralObject }

// Dehydrate implements the AST interface
func (l *LiteralObject) Dehydrate() []interface{} {
	keys := make([]interface{}, len(l.Keys))
	for i, key := range l.Keys {
		keys[i] = key
	}
	return []interface{}{int(AstKindLiteralObject), keys, dehydrateAll(l.Values)}
}

// ObservedProperties implements the AST interface
func (l *LiteralObject) ObservedProperties() []string {
	return observedAll(nil, l.Values...)
}

// Visit implements the AST interface
func (l *LiteralObject) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralObject(l, context)
}

func (l *LiteralObject) String() string { return Serialize(l) }

// LiteralString represents a quoted string or a literal text segment
type LiteralString struct {
	Value string
}

// NewLiteralString creates a new LiteralString
func NewLiteralString(value string) *LiteralString {
	return &LiteralString{Value: value}
}

func (l *LiteralString) expression() {}

// Kind implements the AST interface
func (l *LiteralString) Kind() AstKind { return AstKindLiteralString }

// Dehydrate implements the AST interface
func (l *LiteralString) Dehydrate() []interface{} {
	return []interface{}{int(AstKindLiteralString), l.Value}
}

// ObservedProperties implements the AST interface
func (l *LiteralString) ObservedProperties() []string {
	return []string{}
}

// Visit implements the AST interface
func (l *LiteralString) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralString(l, context)
}

func (l *LiteralString) String() string { return Serialize(l) }

// TemplateLiteral alternates literal text segments and interpolated
// expressions, always ending with a literal segment
type TemplateLiteral struct {
	Parts []AST
}

// NewTemplateLiteral creates a new TemplateLiteral
func NewTemplateLiteral(parts []AST) *TemplateLiteral {
	return &TemplateLiteral{Parts: parts}
}

func (t *TemplateLiteral) expression() {}

// Kind implements the AST interface
func (t *TemplateLiteral) Kind() AstKind { return AstKindTemplateLiteral }

// Dehydrate implements the AST interface
func (t *TemplateLiteral) Dehydrate() []interface{} {
	return []interface{}{int(AstKindTemplateLiteral), dehydrateAll(t.Parts)}
}

// ObservedProperties implements the AST interface
func (t *TemplateLiteral) ObservedProperties() []string {
	return observedAll(nil, t.Parts...)
}

// Visit implements the AST interface
func (t *TemplateLiteral) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitTemplateLiteral(t, context)
}

func (t *TemplateLiteral) String() string { return Serialize(t) }
