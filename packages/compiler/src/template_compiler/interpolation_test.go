package template_compiler_test

import (
	"errors"
	"testing"

	"auc-go/packages/compiler/src/core"
	ep "auc-go/packages/compiler/src/expression_parser"
	tc "auc-go/packages/compiler/src/template_compiler"

	"github.com/google/go-cmp/cmp"
)

func newParser() *ep.Parser {
	return ep.NewParser(ep.NewLexer())
}

func TestParseInterpolation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *ep.TemplateLiteral
	}{
		{
			name:  "should split literal text and expressions",
			input: "Hello ${name}!",
			want: ep.NewTemplateLiteral([]ep.AST{
				ep.NewLiteralString("Hello "),
				ep.NewAccessScope("name", 0),
				ep.NewLiteralString("!"),
			}),
		},
		{
			name:  "should keep an escaped interpolation as text",
			input: "Hello \\${name}!",
			want: ep.NewTemplateLiteral([]ep.AST{
				ep.NewLiteralString("Hello ${name}"),
				ep.NewLiteralString(""),
				ep.NewLiteralString("!"),
			}),
		},
		{
			name:  "should not escape after two backslashes",
			input: "a\\\\${b}",
			want: ep.NewTemplateLiteral([]ep.AST{
				ep.NewLiteralString("a\\\\"),
				ep.NewAccessScope("b", 0),
				ep.NewLiteralString(""),
			}),
		},
		{
			name:  "should ignore braces inside quotes",
			input: "${'}'}",
			want: ep.NewTemplateLiteral([]ep.AST{
				ep.NewLiteralString(""),
				ep.NewLiteralString("}"),
				ep.NewLiteralString(""),
			}),
		},
		{
			name:  "should parse several interpolations",
			input: "${a}-${b}",
			want: ep.NewTemplateLiteral([]ep.AST{
				ep.NewLiteralString(""),
				ep.NewAccessScope("a", 0),
				ep.NewLiteralString("-"),
				ep.NewAccessScope("b", 0),
				ep.NewLiteralString(""),
			}),
		},
		{
			name:  "should return nil for plain text",
			input: "plain text",
			want:  nil,
		},
		{
			name:  "should return nil for an unterminated interpolation",
			input: "${name",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tc.ParseInterpolation(newParser(), tt.input)
			if err != nil {
				t.Fatalf("ParseInterpolation(%q) returned error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseInterpolation(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}

	t.Run("should report expression errors", func(t *testing.T) {
		if _, err := tc.ParseInterpolation(newParser(), "${a b}"); err == nil {
			t.Errorf("Expected a parse error")
		}
	})
}

func TestBindingLanguage_InspectAttribute(t *testing.T) {
	language := tc.NewBindingLanguage(newParser())

	t.Run("should split the binding command", func(t *testing.T) {
		got, err := language.InspectAttribute("input", "value.bind", "msg")
		if err != nil {
			t.Fatalf("InspectAttribute() returned error: %v", err)
		}
		want := &tc.AttrInfo{AttrName: "value", AttrValue: "msg", Command: "bind"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("InspectAttribute() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should record the mode forced by the command", func(t *testing.T) {
		got, _ := language.InspectAttribute("input", "value.two-way", "msg")
		if got.DefaultBindingMode == nil || *got.DefaultBindingMode != core.BindingModeTwoWay {
			t.Errorf("Expected twoWay, got %v", got.DefaultBindingMode)
		}
	})

	t.Run("should detect interpolations", func(t *testing.T) {
		got, _ := language.InspectAttribute("div", "title", "${title}")
		if got.HasCommand() || got.Expression == nil {
			t.Errorf("Expected an interpolation without command, got %+v", got)
		}
	})

	t.Run("should leave literal attributes alone", func(t *testing.T) {
		got, _ := language.InspectAttribute("div", "id", "main")
		want := &tc.AttrInfo{AttrName: "id", AttrValue: "main"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("InspectAttribute() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should reject a command with an interpolation", func(t *testing.T) {
		_, err := language.InspectAttribute("input", "value.bind", "${x}")
		if !errors.Is(err, tc.ErrCommandWithInterpolation) {
			t.Fatalf("Expected ErrCommandWithInterpolation, got %v", err)
		}
		if err.Error() != "Invalid attribute expression. Cannot support both binding command and interpolation expression." {
			t.Errorf("Unexpected message %q", err.Error())
		}
	})

	t.Run("should return a fresh info per call", func(t *testing.T) {
		first, _ := language.InspectAttribute("a", "href.bind", "url")
		second, _ := language.InspectAttribute("a", "click.trigger", "go()")
		if first == second {
			t.Fatalf("Expected distinct values")
		}
		if first.AttrName != "href" || first.Command != "bind" {
			t.Errorf("Expected the first result to be unchanged, got %+v", first)
		}
	})
}

func TestAttributeMap(t *testing.T) {
	m := tc.NewAttributeMap(nil)
	tests := []struct {
		element   string
		attribute string
		want      string
	}{
		{"label", "for", "htmlFor"},
		{"div", "for", "for"},
		{"td", "colspan", "colSpan"},
		{"input", "maxlength", "maxLength"},
		{"div", "tabindex", "tabIndex"},
		{"div", "TEXTCONTENT", "textContent"},
		{"div", "data-id", "data-id"},
		{"div", "aria-label", "aria-label"},
		{"use", "xlink:href", "xlink:href"},
		{"circle", "stroke-width", "stroke-width"},
		{"svg", "viewBox", "viewBox"},
		{"div", "my-prop", "myProp"},
		{"input", "value", "value"},
	}
	for _, tt := range tests {
		t.Run("should map "+tt.element+" "+tt.attribute, func(t *testing.T) {
			if got := m.Map(tt.element, tt.attribute); got != tt.want {
				t.Errorf("Map(%q, %q) = %q, want %q", tt.element, tt.attribute, got, tt.want)
			}
		})
	}

	t.Run("should accept custom registrations", func(t *testing.T) {
		custom := tc.NewAttributeMap(nil)
		custom.Register("x-chart", "data-src", "source")
		if got := custom.Map("x-chart", "data-src"); got != "source" {
			t.Errorf("Expected source, got %q", got)
		}
	})
}

func TestParseOptionBag(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tc.OptionPart
	}{
		{
			name:  "should split named options",
			input: "color.bind: c; size: 100",
			want:  []tc.OptionPart{{Name: "color.bind", Value: "c"}, {Name: "size", Value: "100"}},
		},
		{
			name:  "should keep separators inside quotes",
			input: "text: 'a;b'; x: 1;",
			want:  []tc.OptionPart{{Name: "text", Value: "'a;b'"}, {Name: "x", Value: "1"}},
		},
		{
			name:  "should treat conditionals as a single value",
			input: "a ? b : c",
			want:  nil,
		},
		{
			name:  "should ignore colons inside quotes",
			input: "'x:y'",
			want:  nil,
		},
		{
			name:  "should treat plain values as a single value",
			input: "100",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tc.ParseOptionBag(tt.input)); diff != "" {
				t.Errorf("ParseOptionBag(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}
