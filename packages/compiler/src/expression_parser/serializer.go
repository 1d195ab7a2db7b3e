package expression_parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Serialize serializes the given AST into a normalized expression string
func Serialize(expression AST) string {
	visitor := NewSerializeExpressionVisitor()
	return expression.Visit(visitor, nil).(string)
}

// SerializeExpressionVisitor is a visitor that serializes AST to string
type SerializeExpressionVisitor struct{}

// NewSerializeExpressionVisitor creates a new SerializeExpressionVisitor
func NewSerializeExpressionVisitor() *SerializeExpressionVisitor {
	return &SerializeExpressionVisitor{}
}

func (s *SerializeExpressionVisitor) visitAll(nodes []AST, context interface{}) []string {
	parts := make([]string, len(nodes))
	for i, node := range nodes {
		parts[i] = node.Visit(s, context).(string)
	}
	return parts
}

// operand serializes a Binary operand, parenthesizing anything that binds looser
func (s *SerializeExpressionVisitor) operand(ast AST, context interface{}) string {
	text := ast.Visit(s, context).(string)
	switch ast.(type) {
	case *Binary, *Conditional, *Assign:
		return "(" + text + ")"
	}
	return text
}

func (s *SerializeExpressionVisitor) args(name string, args []AST, context interface{}) string {
	var sb strings.Builder
	sb.WriteString(name)
	for _, arg := range args {
		sb.WriteString(":")
		sb.WriteString(arg.Visit(s, context).(string))
	}
	return sb.String()
}

func parentPrefix(ancestor int) string {
	return strings.Repeat("$parent.", ancestor)
}

// VisitChain visits a chain expression
func (s *SerializeExpressionVisitor) VisitChain(ast *Chain, context interface{}) interface{} {
	return strings.Join(s.visitAll(ast.Expressions, context), "; ")
}

// VisitValueConverter visits a value converter
func (s *SerializeExpressionVisitor) VisitValueConverter(ast *ValueConverter, context interface{}) interface{} {
	return fmt.Sprintf("%s | %s", ast.Expression.Visit(s, context).(string), s.args(ast.Name, ast.Args, context))
}

// VisitBindingBehavior visits a binding behavior
func (s *SerializeExpressionVisitor) VisitBindingBehavior(ast *BindingBehavior, context interface{}) interface{} {
	return fmt.Sprintf("%s & %s", ast.Expression.Visit(s, context).(string), s.args(ast.Name, ast.Args, context))
}

// VisitAssign visits an assignment
func (s *SerializeExpressionVisitor) VisitAssign(ast *Assign, context interface{}) interface{} {
	return fmt.Sprintf("%s = %s",
		ast.Target.Visit(s, context).(string),
		ast.Value.Visit(s, context).(string))
}

// VisitConditional visits a conditional expression
func (s *SerializeExpressionVisitor) VisitConditional(ast *Conditional, context interface{}) interface{} {
	return fmt.Sprintf("%s ? %s : %s",
		s.operand(ast.Condition, context),
		ast.Yes.Visit(s, context).(string),
		ast.No.Visit(s, context).(string))
}

// VisitAccessThis visits $this or a $parent chain
func (s *SerializeExpressionVisitor) VisitAccessThis(ast *AccessThis, context interface{}) interface{} {
	if ast.Ancestor == 0 {
		return "$this"
	}
	return strings.TrimSuffix(parentPrefix(ast.Ancestor), ".")
}

// VisitAccessScope visits a scope read
func (s *SerializeExpressionVisitor) VisitAccessScope(ast *AccessScope, context interface{}) interface{} {
	return parentPrefix(ast.Ancestor) + ast.Name
}

// VisitAccessMember visits a member read
func (s *SerializeExpressionVisitor) VisitAccessMember(ast *AccessMember, context interface{}) interface{} {
	return fmt.Sprintf("%s.%s", s.operand(ast.Object, context), ast.Name)
}

// VisitAccessKeyed visits a keyed read
func (s *SerializeExpressionVisitor) VisitAccessKeyed(ast *AccessKeyed, context interface{}) interface{} {
	return fmt.Sprintf("%s[%s]",
		s.operand(ast.Object, context),
		ast.Key.Visit(s, context).(string))
}

// VisitCallScope visits a scope call
func (s *SerializeExpressionVisitor) VisitCallScope(ast *CallScope, context interface{}) interface{} {
	return fmt.Sprintf("%s%s(%s)",
		parentPrefix(ast.Ancestor),
		ast.Name,
		strings.Join(s.visitAll(ast.Args, context), ", "))
}

// VisitCallFunction visits a call of an arbitrary callee
func (s *SerializeExpressionVisitor) VisitCallFunction(ast *CallFunction, context interface{}) interface{} {
	return fmt.Sprintf("%s(%s)",
		s.operand(ast.Func, context),
		strings.Join(s.visitAll(ast.Args, context), ", "))
}

// VisitCallMember visits a member call
func (s *SerializeExpressionVisitor) VisitCallMember(ast *CallMember, context interface{}) interface{} {
	return fmt.Sprintf("%s.%s(%s)",
		s.operand(ast.Object, context),
		ast.Name,
		strings.Join(s.visitAll(ast.Args, context), ", "))
}

// VisitPrefixNot visits a prefix not
func (s *SerializeExpressionVisitor) VisitPrefixNot(ast *PrefixNot, context interface{}) interface{} {
	return "!" + s.operand(ast.Expression, context)
}

// VisitBinary visits a binary expression
func (s *SerializeExpressionVisitor) VisitBinary(ast *Binary, context interface{}) interface{} {
	return fmt.Sprintf("%s %s %s",
		s.operand(ast.Left, context),
		ast.Operation,
		s.operand(ast.Right, context))
}

// VisitLiteralPrimitive visits a literal primitive
func (s *SerializeExpressionVisitor) VisitLiteralPrimitive(ast *LiteralPrimitive, context interface{}) interface{} {
	if ast.Value == nil {
		return "null"
	}

	switch v := ast.Value.(type) {
	case UndefinedValue:
		return "undefined"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		panic(fmt.Sprintf("Unsupported primitive type: %T", ast.Value))
	}
}

// VisitLiteralArray visits a literal array
func (s *SerializeExpressionVisitor) VisitLiteralArray(ast *LiteralArray, context interface{}) interface{} {
	return fmt.Sprintf("[%s]", strings.Join(s.visitAll(ast.Elements, context), ", "))
}

// VisitLiteralObject visits a literal object
func (s *SerializeExpressionVisitor) VisitLiteralObject(ast *LiteralObject, context interface{}) interface{} {
	pairs := make([]string, len(ast.Keys))
	for i, key := range ast.Keys {
		pairs[i] = fmt.Sprintf("%s: %s", quote(key), ast.Values[i].Visit(s, context).(string))
	}
	return fmt.Sprintf("{%s}", strings.Join(pairs, ", "))
}

// VisitLiteralString visits a literal string
func (s *SerializeExpressionVisitor) VisitLiteralString(ast *LiteralString, context interface{}) interface{} {
	return quote(ast.Value)
}

// VisitTemplateLiteral visits a template literal. Literal segments are
// written raw, expressions inside ${}.
func (s *SerializeExpressionVisitor) VisitTemplateLiteral(ast *TemplateLiteral, context interface{}) interface{} {
	var sb strings.Builder
	sb.WriteString("`")
	for _, part := range ast.Parts {
		if literal, ok := part.(*LiteralString); ok {
			sb.WriteString(literal.Value)
			continue
		}
		sb.WriteString("${")
		sb.WriteString(part.Visit(s, context).(string))
		sb.WriteString("}")
	}
	sb.WriteString("`")
	return sb.String()
}

func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "'", `\'`)
	return "'" + escaped + "'"
}
