package expression_parser

import (
	"strings"
	"sync"

	"auc-go/packages/compiler/src/util"
)

// Parser parses binding expressions. Parsed trees are cached per input and
// every expression registered for code generation gets a stable record id.
// The cache and registry belong to the parser instance; Reset clears both.
type Parser struct {
	lexer    *Lexer
	mu       sync.Mutex
	cache    map[string]AST
	registry *Registry
}

// NewParser creates a new Parser
func NewParser(lexer *Lexer) *Parser {
	return &Parser{
		lexer:    lexer,
		cache:    map[string]AST{},
		registry: NewRegistry(),
	}
}

// Parse parses input into an AST. An empty input yields an empty Chain.
// Failures are *util.LexerError or *util.ParserError.
func (p *Parser) Parse(input string) (AST, error) {
	p.mu.Lock()
	if ast, ok := p.cache[input]; ok {
		p.mu.Unlock()
		return ast, nil
	}
	p.mu.Unlock()

	tokens, err := p.lexer.Tokenize(input)
	if err != nil {
		return nil, err
	}
	ast, err := newParseAST(input, tokens).parse()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if cached, ok := p.cache[input]; ok {
		return cached, nil
	}
	p.cache[input] = ast
	return ast, nil
}

// AddRecord parses input and registers it for code generation
func (p *Parser) AddRecord(input string) (*BindingRecord, error) {
	if record, ok := p.registry.Lookup(input); ok {
		return record, nil
	}
	ast, err := p.Parse(input)
	if err != nil {
		return nil, err
	}
	return p.registry.Add(input, ast), nil
}

// Registry returns the binding record registry
func (p *Parser) Registry() *Registry {
	return p.registry
}

// CacheSize returns the number of cached parse results
func (p *Parser) CacheSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cache)
}

// Reset drops the parse cache and every registered record
func (p *Parser) Reset() {
	p.mu.Lock()
	p.cache = map[string]AST{}
	p.mu.Unlock()
	p.registry.Reset()
}

// parseAST is a single-use recursive descent parser over one token stream
type parseAST struct {
	input  string
	runes  []rune
	tokens []*Token
	index  int
}

func newParseAST(input string, tokens []*Token) *parseAST {
	return &parseAST{
		input:  input,
		runes:  []rune(input),
		tokens: tokens,
	}
}

func (p *parseAST) parse() (result AST, err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*util.ParserError)
			if !ok {
				panic(r)
			}
			result = nil
			err = perr
		}
	}()
	return p.parseChain(), nil
}

// peek returns the current token, or EOF past the end
func (p *parseAST) peek() *Token {
	if p.index < len(p.tokens) {
		return p.tokens[p.index]
	}
	return EOF
}

func (p *parseAST) atEOF() bool {
	return p.index >= len(p.tokens)
}

func (p *parseAST) advance() {
	p.index++
}

func (p *parseAST) optional(text string) bool {
	if !p.atEOF() && p.peek().Text == text {
		p.advance()
		return true
	}
	return false
}

func (p *parseAST) expect(text string) {
	if !p.optional(text) {
		p.error("Missing expected " + text)
	}
}

// error aborts the parse. It is recovered in parse.
func (p *parseAST) error(message string) {
	column := -1
	if !p.atEOF() {
		column = p.peek().Index + 1
	}
	panic(util.NewParserError(message, p.input, column))
}

func (p *parseAST) unexpected() {
	if p.atEOF() {
		panic(&util.ParserError{Message: "Unexpected end of expression: " + p.input, Input: p.input, Column: -1, Bare: true})
	}
	p.error("Unexpected token " + p.peek().Text)
}

// sourceFrom returns the input from rune offset start up to the current token
func (p *parseAST) sourceFrom(start int) string {
	end := len(p.runes)
	if !p.atEOF() {
		end = p.peek().Index
	}
	if start < 0 || start > end {
		return ""
	}
	return strings.TrimSpace(string(p.runes[start:end]))
}

// name consumes a member, converter or behavior name. Keywords are valid names.
func (p *parseAST) name() string {
	token := p.peek()
	if p.atEOF() || (!token.IsIdentifier() && !isKeyword(token)) {
		p.unexpected()
	}
	p.advance()
	return token.Text
}

func isKeyword(token *Token) bool {
	switch token.OpKey {
	case "null", "undefined", "true", "false":
		return true
	}
	return false
}

func (p *parseAST) parseChain() AST {
	isChain := false
	expressions := []AST{}

	for !p.atEOF() {
		text := p.peek().Text
		if text == ")" || text == "}" || text == "]" || len(expressions) > 0 {
			p.error("Unconsumed token " + text)
		}
		expressions = append(expressions, p.parseBindingBehavior())
		for p.optional(";") {
			isChain = true
		}
		if isChain {
			p.error("Multiple expressions are not allowed.")
		}
	}

	if len(expressions) == 1 {
		return expressions[0]
	}
	return NewChain(expressions)
}

func (p *parseAST) parseBindingBehavior() AST {
	result := p.parseValueConverter()
	for p.optional("&") {
		name := p.name()
		args := []AST{}
		for p.optional(":") {
			args = append(args, p.parseExpression())
		}
		result = NewBindingBehavior(result, name, args)
	}
	return result
}

func (p *parseAST) parseValueConverter() AST {
	result := p.parseExpression()
	for p.optional("|") {
		name := p.name()
		args := []AST{}
		for p.optional(":") {
			args = append(args, p.parseExpression())
		}
		result = NewValueConverter(result, name, args)
	}
	return result
}

func (p *parseAST) parseExpression() AST {
	start := p.peek().Index
	result := p.parseConditional()

	for !p.atEOF() && p.peek().Text == "=" {
		if !IsAssignable(result) {
			p.error("Expression " + p.sourceFrom(start) + " is not assignable")
		}
		p.expect("=")
		result = NewAssign(result, p.parseConditional())
	}
	return result
}

func (p *parseAST) parseConditional() AST {
	start := p.peek().Index
	result := p.parseLogicalOr()

	if p.optional("?") {
		yes := p.parseExpression()
		if !p.optional(":") {
			p.error("Conditional expression " + p.sourceFrom(start) + " requires all 3 expressions")
		}
		no := p.parseExpression()
		result = NewConditional(result, yes, no)
	}
	return result
}

func (p *parseAST) parseLogicalOr() AST {
	result := p.parseLogicalAnd()
	for p.optional("||") {
		result = NewBinary("||", result, p.parseLogicalAnd())
	}
	return result
}

func (p *parseAST) parseLogicalAnd() AST {
	result := p.parseEquality()
	for p.optional("&&") {
		result = NewBinary("&&", result, p.parseEquality())
	}
	return result
}

// parseBinaryLevel folds left-associative operators of one precedence level
func (p *parseAST) parseBinaryLevel(ops []string, next func() AST) AST {
	result := next()
	for {
		matched := false
		for _, op := range ops {
			if p.optional(op) {
				result = NewBinary(op, result, next())
				matched = true
				break
			}
		}
		if !matched {
			return result
		}
	}
}

func (p *parseAST) parseEquality() AST {
	return p.parseBinaryLevel([]string{"==", "!=", "===", "!=="}, p.parseRelational)
}

func (p *parseAST) parseRelational() AST {
	return p.parseBinaryLevel([]string{"<", ">", "<=", ">="}, p.parseAdditive)
}

func (p *parseAST) parseAdditive() AST {
	return p.parseBinaryLevel([]string{"+", "-"}, p.parseMultiplicative)
}

func (p *parseAST) parseMultiplicative() AST {
	return p.parseBinaryLevel([]string{"*", "%", "/"}, p.parsePrefix)
}

func (p *parseAST) parsePrefix() AST {
	if p.optional("+") {
		return p.parsePrefix()
	} else if p.optional("-") {
		return NewBinary("-", NewLiteralPrimitive(float64(0)), p.parsePrefix())
	} else if p.optional("!") {
		return NewPrefixNot(p.parsePrefix())
	}
	return p.parseAccessOrCallMember()
}

func (p *parseAST) parseAccessOrCallMember() AST {
	result := p.parsePrimary()

	for {
		if p.optional(".") {
			name := p.name()
			if p.optional("(") {
				args := p.parseExpressionList(")")
				p.expect(")")
				if this, ok := result.(*AccessThis); ok {
					result = NewCallScope(name, args, this.Ancestor)
				} else {
					result = NewCallMember(result, name, args)
				}
			} else {
				if this, ok := result.(*AccessThis); ok {
					result = NewAccessScope(name, this.Ancestor)
				} else {
					result = NewAccessMember(result, name)
				}
			}
		} else if p.optional("[") {
			key := p.parseExpression()
			p.expect("]")
			result = NewAccessKeyed(result, key)
		} else if p.optional("(") {
			args := p.parseExpressionList(")")
			p.expect(")")
			result = NewCallFunction(result, args)
		} else {
			return result
		}
	}
}

func (p *parseAST) parsePrimary() AST {
	if p.optional("(") {
		result := p.parseExpression()
		p.expect(")")
		return result
	}

	token := p.peek()
	switch {
	case token.IsOperator("null"):
		p.advance()
		return NewLiteralPrimitive(nil)
	case token.IsOperator("undefined"):
		p.advance()
		return NewLiteralPrimitive(Undefined)
	case token.IsOperator("true"):
		p.advance()
		return NewLiteralPrimitive(true)
	case token.IsOperator("false"):
		p.advance()
		return NewLiteralPrimitive(false)
	}

	if p.optional("[") {
		elements := p.parseExpressionList("]")
		p.expect("]")
		return NewLiteralArray(elements)
	}
	if !p.atEOF() && token.Text == "{" {
		return p.parseObject()
	}
	if token.IsIdentifier() {
		return p.parseAccessOrCallScope()
	}
	if token.HasValue() {
		p.advance()
		if value, ok := token.Value.(string); ok {
			return NewLiteralString(value)
		}
		return NewLiteralPrimitive(token.Value)
	}

	p.unexpected()
	return nil
}

// isScopeTerminator reports whether a bare $parent chain may end before token
func isScopeTerminator(token *Token) bool {
	if token == EOF || token.OpKey != "" {
		return true
	}
	switch token.Text {
	case "(", ")", "[", "]", "}", ",", "|", "&", ";", ":":
		return true
	}
	return false
}

func (p *parseAST) parseAccessOrCallScope() AST {
	name := p.peek().Key
	p.advance()

	if name == "$this" {
		return NewAccessThis(0)
	}

	ancestor := 0
	for name == "$parent" {
		ancestor++
		if p.optional(".") {
			if !p.peek().IsIdentifier() {
				p.unexpected()
			}
			name = p.peek().Key
			p.advance()
		} else if isScopeTerminator(p.peek()) {
			return NewAccessThis(ancestor)
		} else {
			p.error("Unexpected token " + p.peek().Text)
		}
	}

	if p.optional("(") {
		args := p.parseExpressionList(")")
		p.expect(")")
		return NewCallScope(name, args, ancestor)
	}
	return NewAccessScope(name, ancestor)
}

func (p *parseAST) parseObject() AST {
	keys := []string{}
	values := []AST{}

	p.expect("{")
	if p.peek().Text != "}" {
		for {
			token := p.peek()
			if p.atEOF() {
				p.unexpected()
			}
			if value, ok := token.Value.(string); ok {
				keys = append(keys, value)
			} else {
				keys = append(keys, token.Text)
			}
			p.advance()

			next := p.peek().Text
			if token.IsIdentifier() && !p.atEOF() && (next == "," || next == "}") {
				p.index--
				values = append(values, p.parseAccessOrCallScope())
			} else {
				p.expect(":")
				values = append(values, p.parseExpression())
			}

			if !p.optional(",") {
				break
			}
		}
	}
	p.expect("}")

	return NewLiteralObject(keys, values)
}

func (p *parseAST) parseExpressionList(terminator string) []AST {
	result := []AST{}
	if p.atEOF() || p.peek().Text != terminator {
		for {
			result = append(result, p.parseExpression())
			if !p.optional(",") {
				break
			}
		}
	}
	return result
}
