package expression_parser_test

import (
	"errors"
	"testing"

	"auc-go/packages/compiler/src/expression_parser"
	"auc-go/packages/compiler/src/util"

	"github.com/google/go-cmp/cmp"
)

func lex(t *testing.T, text string) []*expression_parser.Token {
	t.Helper()
	tokens, err := expression_parser.NewLexer().Tokenize(text)
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", text, err)
	}
	return tokens
}

func humanizeTokens(tokens []*expression_parser.Token) []interface{} {
	result := []interface{}{}
	for _, token := range tokens {
		result = append(result, []interface{}{token.Index, token.Text})
	}
	return result
}

func TestLexer_Tokenize(t *testing.T) {
	t.Run("should tokenize a simple identifier", func(t *testing.T) {
		tokens := lex(t, "j")
		if len(tokens) != 1 {
			t.Fatalf("Expected 1 token, got %d", len(tokens))
		}
		if !tokens[0].IsIdentifier() || tokens[0].Key != "j" {
			t.Errorf("Expected identifier token j, got %+v", tokens[0])
		}
	})

	t.Run("should tokenize a dotted identifier", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{0, "j"},
			[]interface{}{1, "."},
			[]interface{}{2, "k"},
		}
		if diff := cmp.Diff(expected, humanizeTokens(lex(t, "j.k"))); diff != "" {
			t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should skip whitespace and keep rune offsets", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{2, "a"},
			[]interface{}{5, "+"},
			[]interface{}{7, "b"},
		}
		if diff := cmp.Diff(expected, humanizeTokens(lex(t, " \ta   + b"))); diff != "" {
			t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should flag keywords as operators", func(t *testing.T) {
		for _, keyword := range []string{"null", "undefined", "true", "false"} {
			tokens := lex(t, keyword)
			if !tokens[0].IsOperator(keyword) || tokens[0].IsIdentifier() {
				t.Errorf("Expected %s to be an operator token, got %+v", keyword, tokens[0])
			}
		}
	})

	t.Run("should treat $ and _ as identifier characters", func(t *testing.T) {
		tokens := lex(t, "$parent._x1")
		if tokens[0].Key != "$parent" || tokens[2].Key != "_x1" {
			t.Errorf("Unexpected tokens %v", tokens)
		}
	})

	t.Run("should tokenize complex operators", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{0, "a"},
			[]interface{}{2, "!=="},
			[]interface{}{6, "b"},
			[]interface{}{8, "&&"},
			[]interface{}{11, "c"},
			[]interface{}{13, "<="},
			[]interface{}{16, "d"},
		}
		tokens := lex(t, "a !== b && c <= d")
		if diff := cmp.Diff(expected, humanizeTokens(tokens)); diff != "" {
			t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
		}
		for _, i := range []int{1, 3, 5} {
			if tokens[i].OpKey != tokens[i].Text {
				t.Errorf("Expected %q to be an operator", tokens[i].Text)
			}
		}
	})

	t.Run("should not flag a lone & or | as an operator", func(t *testing.T) {
		tokens := lex(t, "a & b | c")
		if tokens[1].Text != "&" || tokens[1].OpKey != "" {
			t.Errorf("Expected plain & token, got %+v", tokens[1])
		}
		if tokens[3].Text != "|" || tokens[3].OpKey != "" {
			t.Errorf("Expected plain | token, got %+v", tokens[3])
		}
	})

	t.Run("should tokenize numbers", func(t *testing.T) {
		cases := map[string]float64{
			"88":     88,
			"0.5":    0.5,
			".5":     0.5,
			"1e3":    1000,
			"1.5E-2": 0.015,
			"2e+2":   200,
		}
		for text, want := range cases {
			tokens := lex(t, text)
			if len(tokens) != 1 {
				t.Fatalf("Tokenize(%q): expected 1 token, got %d", text, len(tokens))
			}
			if got := tokens[0].Value; got != want {
				t.Errorf("Tokenize(%q) = %v, want %v", text, got, want)
			}
		}
	})

	t.Run("should tokenize quoted strings", func(t *testing.T) {
		tokens := lex(t, `'a' "b"`)
		if tokens[0].Value != "a" || tokens[0].Text != "'a'" {
			t.Errorf("Unexpected token %+v", tokens[0])
		}
		if tokens[1].Value != "b" || tokens[1].Index != 4 {
			t.Errorf("Unexpected token %+v", tokens[1])
		}
	})

	t.Run("should unescape strings", func(t *testing.T) {
		tokens := lex(t, `'a\'b\n\t\\cA'`)
		if want := "a'b\n\t\\cA"; tokens[0].Value != want {
			t.Errorf("Expected %q, got %q", want, tokens[0].Value)
		}
	})

	t.Run("should keep empty strings as values", func(t *testing.T) {
		tokens := lex(t, "''")
		if !tokens[0].HasValue() || tokens[0].Value != "" {
			t.Errorf("Expected empty string value, got %+v", tokens[0])
		}
	})
}

func TestLexer_Errors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "should report unexpected characters",
			input: "a # b",
			want:  "Lexer Error: Unexpected character [#] at column 2 in expression [a # b]",
		},
		{
			name:  "should report unterminated quotes",
			input: "'abc",
			want:  "Lexer Error: Unterminated quote at column 4 in expression ['abc]",
		},
		{
			name:  "should report invalid exponents",
			input: "1e",
			want:  "Lexer Error: Invalid exponent at column 1 in expression [1e]",
		},
		{
			name:  "should report invalid unicode escapes",
			input: `'\u12'`,
			want:  `Lexer Error: Invalid unicode escape [\u12'] at column 2 in expression ['\u12']`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := expression_parser.NewLexer().Tokenize(tc.input)
			if err == nil {
				t.Fatalf("Expected an error for %q", tc.input)
			}
			var lexErr *util.LexerError
			if !errors.As(err, &lexErr) {
				t.Fatalf("Expected *util.LexerError, got %T", err)
			}
			if diff := cmp.Diff(tc.want, err.Error()); diff != "" {
				t.Errorf("Error() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
