package expression_parser

import (
	"fmt"
	"go/format"
	"math"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"
)

const importPath = "auc-go/packages/compiler/src/expression_parser"

// CodeGenerator emits a Go source file that rebuilds registered expression
// trees through the exported constructors, keyed by record id
type CodeGenerator struct {
	indentLevel int
	builder     strings.Builder
	needsMath   bool

	// SkipImports uses format.Source instead of imports.Process
	SkipImports bool
}

// NewCodeGenerator creates a new code generator
func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{}
}

// Generate renders records into a Go file of package pkg. filename is only
// used by goimports to resolve the surrounding module.
func (cg *CodeGenerator) Generate(records []*BindingRecord, pkg, filename string) ([]byte, error) {
	cg.builder.Reset()
	cg.indentLevel = 0
	cg.needsMath = false

	body := cg.generateBody(records)

	cg.write("// Code generated by auc-go. DO NOT EDIT.\n\n")
	cg.write("package %s\n\n", pkg)
	cg.write("import (\n")
	cg.indentLevel++
	if cg.needsMath {
		cg.write("\"math\"\n\n")
	}
	cg.write("ep %q\n", importPath)
	cg.indentLevel--
	cg.write(")\n\n")
	cg.builder.WriteString(body)

	source := []byte(cg.builder.String())
	if cg.SkipImports {
		return format.Source(source)
	}
	return imports.Process(filename, source, nil)
}

func (cg *CodeGenerator) generateBody(records []*BindingRecord) string {
	var body strings.Builder
	visitor := &goSourceVisitor{generator: cg}

	body.WriteString("// Expressions maps binding record ids to their trees\n")
	body.WriteString("var Expressions = map[int]ep.AST{\n")
	for _, record := range records {
		fmt.Fprintf(&body, "\t// %s\n", strconv.Quote(record.Expression))
		fmt.Fprintf(&body, "\t%d: %s,\n", record.ID, record.AST.Visit(visitor, nil).(string))
	}
	body.WriteString("}\n\n")

	body.WriteString("// GetAst returns the tree registered under id, or nil\n")
	body.WriteString("func GetAst(id int) ep.AST {\n")
	body.WriteString("\treturn Expressions[id]\n")
	body.WriteString("}\n")
	return body.String()
}

// write writes a formatted string to the builder
func (cg *CodeGenerator) write(format string, args ...interface{}) {
	indent := strings.Repeat("\t", cg.indentLevel)
	cg.builder.WriteString(indent)
	cg.builder.WriteString(fmt.Sprintf(format, args...))
}

// GenerateGoSource renders records with goimports formatting
func GenerateGoSource(records []*BindingRecord, pkg, filename string) ([]byte, error) {
	return NewCodeGenerator().Generate(records, pkg, filename)
}

// goSourceVisitor renders a tree as a Go constructor expression
type goSourceVisitor struct {
	generator *CodeGenerator
}

func (v *goSourceVisitor) list(nodes []AST) string {
	parts := make([]string, len(nodes))
	for i, node := range nodes {
		parts[i] = node.Visit(v, nil).(string)
	}
	return "[]ep.AST{" + strings.Join(parts, ", ") + "}"
}

func (v *goSourceVisitor) node(ast AST) string {
	return ast.Visit(v, nil).(string)
}

func (v *goSourceVisitor) VisitChain(ast *Chain, context interface{}) interface{} {
	return fmt.Sprintf("ep.NewChain(%s)", v.list(ast.Expressions))
}

func (v *goSourceVisitor) VisitValueConverter(ast *ValueConverter, context interface{}) interface{} {
	return fmt.Sprintf("ep.NewValueConverter(%s, %q, %s)", v.node(ast.Expression), ast.Name, v.list(ast.Args))
}

func (v *goSourceVisitor) VisitBindingBehavior(ast *BindingBehavior, context interface{}) interface{} {
	return fmt.Sprintf("ep.NewBindingBehavior(%s, %q, %s)", v.node(ast.Expression), ast.Name, v.list(ast.Args))
}

func (v *goSourceVisitor) VisitAssign(ast *Assign, context interface{}) interface{} {
	return fmt.Sprintf("ep.NewAssign(%s, %s)", v.node(ast.Target), v.node(ast.Value))
}

func (v *goSourceVisitor) VisitConditional(ast *Conditional, context interface{}) interface{} {
	return fmt.Sprintf("ep.NewConditional(%s, %s, %s)", v.node(ast.Condition), v.node(ast.Yes), v.node(ast.No))
}

func (v *goSourceVisitor) VisitAccessThis(ast *AccessThis, context interface{}) interface{} {
	return fmt.Sprintf("ep.NewAccessThis(%d)", ast.Ancestor)
}

func (v *goSourceVisitor) VisitAccessScope(ast *AccessScope, context interface{}) interface{} {
	return fmt.Sprintf("ep.NewAccessScope(%q, %d)", ast.Name, ast.Ancestor)
}

func (v *goSourceVisitor) VisitAccessMember(ast *AccessMember, context interface{}) interface{} {
	return fmt.Sprintf("ep.NewAccessMember(%s, %q)", v.node(ast.Object), ast.Name)
}

func (v *goSourceVisitor) VisitAccessKeyed(ast *AccessKeyed, context interface{}) interface{} {
	return fmt.Sprintf("ep.NewAccessKeyed(%s, %s)", v.node(ast.Object), v.node(ast.Key))
}

func (v *goSourceVisitor) VisitCallScope(ast *CallScope, context interface{}) interface{} {
	return fmt.Sprintf("ep.NewCallScope(%q, %s, %d)", ast.Name, v.list(ast.Args), ast.Ancestor)
}

func (v *goSourceVisitor) VisitCallFunction(ast *CallFunction, context interface{}) interface{} {
	return fmt.Sprintf("ep.NewCallFunction(%s, %s)", v.node(ast.Func), v.list(ast.Args))
}

func (v *goSourceVisitor) VisitCallMember(ast *CallMember, context interface{}) interface{} {
	return fmt.Sprintf("ep.NewCallMember(%s, %q, %s)", v.node(ast.Object), ast.Name, v.list(ast.Args))
}

func (v *goSourceVisitor) VisitPrefixNot(ast *PrefixNot, context interface{}) interface{} {
	return fmt.Sprintf("ep.NewPrefixNot(%s)", v.node(ast.Expression))
}

func (v *goSourceVisitor) VisitBinary(ast *Binary, context interface{}) interface{} {
	return fmt.Sprintf("ep.NewBinary(%q, %s, %s)", ast.Operation, v.node(ast.Left), v.node(ast.Right))
}

func (v *goSourceVisitor) VisitLiteralPrimitive(ast *LiteralPrimitive, context interface{}) interface{} {
	var value string
	switch val := ast.Value.(type) {
	case nil:
		value = "nil"
	case UndefinedValue:
		value = "ep.Undefined"
	case bool:
		value = strconv.FormatBool(val)
	case float64:
		if math.IsInf(val, 0) {
			v.generator.needsMath = true
			value = fmt.Sprintf("math.Inf(%d)", int(math.Copysign(1, val)))
		} else {
			value = "float64(" + strconv.FormatFloat(val, 'g', -1, 64) + ")"
		}
	case int:
		value = "float64(" + strconv.Itoa(val) + ")"
	default:
		panic(fmt.Sprintf("Unsupported primitive type: %T", ast.Value))
	}
	return fmt.Sprintf("ep.NewLiteralPrimitive(%s)", value)
}

func (v *goSourceVisitor) VisitLiteralArray(ast *LiteralArray, context interface{}) interface{} {
	return fmt.Sprintf("ep.NewLiteralArray(%s)", v.list(ast.Elements))
}

func (v *goSourceVisitor) VisitLiteralObject(ast *LiteralObject, context interface{}) interface{} {
	keys := make([]string, len(ast.Keys))
	for i, key := range ast.Keys {
		keys[i] = strconv.Quote(key)
	}
	return fmt.Sprintf("ep.NewLiteralObject([]string{%s}, %s)", strings.Join(keys, ", "), v.list(ast.Values))
}

func (v *goSourceVisitor) VisitLiteralString(ast *LiteralString, context interface{}) interface{} {
	return fmt.Sprintf("ep.NewLiteralString(%q)", ast.Value)
}

func (v *goSourceVisitor) VisitTemplateLiteral(ast *TemplateLiteral, context interface{}) interface{} {
	return fmt.Sprintf("ep.NewTemplateLiteral(%s)", v.list(ast.Parts))
}
