package template_compiler

import (
	"strings"

	ep "auc-go/packages/compiler/src/expression_parser"
)

// ParseInterpolation splits value into literal text and `${...}` expressions.
// It returns nil when value holds no complete interpolation. A `${` preceded
// by a single backslash is kept as literal text.
func ParseInterpolation(parser *ep.Parser, value string) (*ep.TemplateLiteral, error) {
	var parts []ep.AST
	n := len(value)
	pos := 0
	i := strings.Index(value, "${")

	for i >= 0 && i < n-2 {
		open := 1
		start := i
		var quote byte
		i += 2

		for {
			char := value[i]
			i++
			switch {
			case char == '\'' || char == '"':
				if quote == 0 {
					quote = char
				} else if quote == char {
					quote = 0
				}
			case char == '\\':
				i++
			case quote != 0:
			case char == '{':
				open++
			case char == '}':
				open--
			}
			if open == 0 || i >= n {
				break
			}
		}

		if open != 0 {
			break
		}

		if start > 0 && value[start-1] == '\\' && (start < 2 || value[start-2] != '\\') {
			parts = append(parts,
				ep.NewLiteralString(value[pos:start-1]+value[start:i]),
				ep.NewLiteralString(""),
			)
		} else {
			expression, err := parser.Parse(value[start+2 : i-1])
			if err != nil {
				return nil, err
			}
			parts = append(parts, ep.NewLiteralString(value[pos:start]), expression)
		}

		pos = i
		next := strings.Index(value[i:], "${")
		if next < 0 {
			break
		}
		i += next
	}

	if len(parts) == 0 {
		return nil, nil
	}
	parts = append(parts, ep.NewLiteralString(value[pos:]))
	return ep.NewTemplateLiteral(parts), nil
}
