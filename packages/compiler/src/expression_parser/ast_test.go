package expression_parser_test

import (
	"strings"
	"testing"

	"auc-go/packages/compiler/src/expression_parser"

	"github.com/google/go-cmp/cmp"
)

func TestAST_ObservedProperties(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"a + b", []string{"a", "b"}},
		{"1", []string{}},
		{"a.b", []string{"a"}},
		{"a.b.c", []string{}},
		{"a.b + c[d]", []string{"a", "c", "d"}},
		{"a.b + c[d.e]", []string{"a", "c"}},
		{"a.b(c)", []string{}},
		{"a[b]", []string{"a", "b"}},
		{"a[b.c]", []string{"a"}},
		{"a.b[c]", []string{}},
		{"$parent.a", []string{}},
		{"$parent.a[b]", []string{}},
		{"fn(a, $parent.b)", []string{"a"}},
		{"a | conv:b", []string{"a", "b"}},
		{"a & behavior:c", []string{"a", "c"}},
		{"a = b", []string{"b"}},
		{"x ? y : z", []string{"x", "y", "z"}},
		{"!a", []string{"a"}},
		{"[a, {k: b}]", []string{"a", "b"}},
		{"{a}", []string{"a"}},
	}

	for _, tc := range cases {
		t.Run("should observe "+tc.input, func(t *testing.T) {
			got := parse(t, tc.input).ObservedProperties()
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ObservedProperties() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("should observe template literal parts", func(t *testing.T) {
		ast := expression_parser.NewTemplateLiteral([]expression_parser.AST{
			expression_parser.NewLiteralString("Hello "),
			expression_parser.NewAccessScope("first", 0),
			expression_parser.NewLiteralString(" "),
			expression_parser.NewAccessMember(expression_parser.NewAccessScope("user", 0), "last"),
			expression_parser.NewLiteralString(""),
		})
		if diff := cmp.Diff([]string{"first", "user"}, ast.ObservedProperties()); diff != "" {
			t.Errorf("ObservedProperties() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestAST_IsAssignable(t *testing.T) {
	cases := map[string]bool{
		"a":    true,
		"a.b":  true,
		"a[0]": true,
		"a()":  false,
		"1":    false,
		"!a":   false,
	}
	for input, want := range cases {
		if got := expression_parser.IsAssignable(parse(t, input)); got != want {
			t.Errorf("IsAssignable(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestAST_Kind(t *testing.T) {
	t.Run("should name kinds", func(t *testing.T) {
		if got := parse(t, "a | b").Kind().String(); got != "ValueConverter" {
			t.Errorf("Expected ValueConverter, got %s", got)
		}
		if got := expression_parser.AstKindTemplateLiteral; int(got) != 20 {
			t.Errorf("Expected TemplateLiteral tag 20, got %d", int(got))
		}
	})
}

func TestSerialize(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"a+b*c", "a + (b * c)"},
		{"$parent.$parent", "$parent.$parent"},
		{"$parent.a", "$parent.a"},
		{"$this", "$this"},
		{"a | upper:1 & debounce:500", "a | upper:1 & debounce:500"},
		{"!(a && b)", "!(a && b)"},
		{"{a, 'b c': 1}", "{'a': a, 'b c': 1}"},
		{`'it\'s'`, `'it\'s'`},
		{"a ? b : c", "a ? b : c"},
		{"a[0].b(1, 2)", "a[0].b(1, 2)"},
		{"-1", "0 - 1"},
		{"x = y", "x = y"},
		{"null", "null"},
		{"undefined", "undefined"},
		{"1.5", "1.5"},
		{"[true, false]", "[true, false]"},
	}

	for _, tc := range cases {
		t.Run("should serialize "+tc.input, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, expression_parser.Serialize(parse(t, tc.input))); diff != "" {
				t.Errorf("Serialize() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("should reparse serialized output to the same tree", func(t *testing.T) {
		for _, input := range []string{"(a + b) * c", "a.b(c)[d] | x:1 & y", "$parent.a ? !b : [1, {c}]", "a - (b - c)"} {
			ast := parse(t, input)
			reparsed := parse(t, expression_parser.Serialize(ast))
			if diff := cmp.Diff(ast.Dehydrate(), reparsed.Dehydrate()); diff != "" {
				t.Errorf("round trip of %q mismatch (-want +got):\n%s", input, diff)
			}
		}
	})

	t.Run("should serialize template literals", func(t *testing.T) {
		ast := expression_parser.NewTemplateLiteral([]expression_parser.AST{
			expression_parser.NewLiteralString("Hello "),
			expression_parser.NewAccessScope("name", 0),
			expression_parser.NewLiteralString("!"),
		})
		if got := ast.String(); got != "`Hello ${name}!`" {
			t.Errorf("Expected `Hello ${name}!`, got %s", got)
		}
	})
}

func TestCodeGenerator(t *testing.T) {
	t.Run("should emit constructors keyed by record id", func(t *testing.T) {
		p := newParser()
		p.AddRecord("a.b")
		p.AddRecord("x ? 1 : 'y'")

		generator := expression_parser.NewCodeGenerator()
		generator.SkipImports = true
		source, err := generator.Generate(p.Registry().Records(), "asts", "asts.go")
		if err != nil {
			t.Fatalf("Generate() returned error: %v", err)
		}
		out := string(source)
		for _, want := range []string{
			"// Code generated by auc-go. DO NOT EDIT.",
			"package asts",
			`ep "auc-go/packages/compiler/src/expression_parser"`,
			`1: ep.NewAccessMember(ep.NewAccessScope("a", 0), "b"),`,
			`2: ep.NewConditional(ep.NewAccessScope("x", 0), ep.NewLiteralPrimitive(float64(1)), ep.NewLiteralString("y")),`,
			"func GetAst(id int) ep.AST {",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("Expected generated source to contain %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("should import math for infinite numbers", func(t *testing.T) {
		p := newParser()
		p.AddRecord("1e999")

		generator := expression_parser.NewCodeGenerator()
		generator.SkipImports = true
		source, err := generator.Generate(p.Registry().Records(), "asts", "asts.go")
		if err != nil {
			t.Fatalf("Generate() returned error: %v", err)
		}
		if !strings.Contains(string(source), `"math"`) || !strings.Contains(string(source), "math.Inf(1)") {
			t.Errorf("Expected math.Inf in generated source, got:\n%s", source)
		}
	})
}
