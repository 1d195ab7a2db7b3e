package expression_parser

import (
	"errors"
	"strconv"

	"auc-go/packages/compiler/src/core"
	"auc-go/packages/compiler/src/util"
)

// operators lists the texts that are flagged as recognized operators or
// operator keywords. A lone `&` or `|` is deliberately absent: those are the
// binding behavior and value converter separators.
var operators = map[string]bool{
	"undefined": true,
	"null":      true,
	"true":      true,
	"false":     true,
	"+":         true,
	"-":         true,
	"*":         true,
	"/":         true,
	"%":         true,
	"^":         true,
	"=":         true,
	"==":        true,
	"===":       true,
	"!=":        true,
	"!==":       true,
	"<":         true,
	">":         true,
	"<=":        true,
	">=":        true,
	"&&":        true,
	"||":        true,
	"!":         true,
	"?":         true,
}

// Token represents a token in the expression.
// At most one of OpKey, Key and Value is set.
type Token struct {
	// Index is the rune offset of the first character of the token
	Index int
	Text  string
	// OpKey is set when the token is a recognized operator or keyword
	OpKey string
	// Key is set when the token is an identifier usable as a scope name
	Key string
	// Value is a float64 for numbers and a string for string literals
	Value interface{}
}

// NewToken creates a new Token
func NewToken(index int, text string) *Token {
	return &Token{Index: index, Text: text}
}

func (t *Token) withOp(op string) *Token {
	t.OpKey = op
	return t
}

func (t *Token) withKey(key string) *Token {
	t.Key = key
	return t
}

func (t *Token) withValue(value interface{}) *Token {
	t.Value = value
	return t
}

// IsOperator checks if the token is the recognized operator op
func (t *Token) IsOperator(op string) bool {
	return t.OpKey != "" && t.OpKey == op
}

// IsIdentifier checks if the token references a scope name
func (t *Token) IsIdentifier() bool {
	return t.Key != ""
}

// HasValue checks if the token carries a literal value
func (t *Token) HasValue() bool {
	return t.Value != nil
}

// String returns the string representation of the token
func (t *Token) String() string {
	return "Token(" + t.Text + ")"
}

// EOF represents the end of the token stream
var EOF = NewToken(-1, "")

// Lexer tokenizes expressions
type Lexer struct{}

// NewLexer creates a new Lexer
func NewLexer() *Lexer {
	return &Lexer{}
}

// Tokenize tokenizes the given text. The first unscannable input aborts the
// whole scan with a *util.LexerError.
func (l *Lexer) Tokenize(text string) ([]*Token, error) {
	s := newScanner(text)
	tokens := []*Token{}
	for {
		token, err := s.scanToken()
		if err != nil {
			return nil, err
		}
		if token == nil {
			return tokens, nil
		}
		tokens = append(tokens, token)
	}
}

type scanner struct {
	source string
	input  []rune
	length int
	peek   rune
	index  int
}

func newScanner(input string) *scanner {
	runes := []rune(input)
	s := &scanner{
		source: input,
		input:  runes,
		length: len(runes),
		index:  -1,
	}
	s.advance()
	return s
}

func (s *scanner) advance() {
	s.index++
	if s.index >= s.length {
		s.peek = core.CharEOF
	} else {
		s.peek = s.input[s.index]
	}
}

func (s *scanner) text(start, end int) string {
	if end > s.length {
		end = s.length
	}
	return string(s.input[start:end])
}

func (s *scanner) scanToken() (*Token, error) {
	for s.peek <= core.CharSPACE {
		s.index++
		if s.index >= s.length {
			s.peek = core.CharEOF
			return nil, nil
		}
		s.peek = s.input[s.index]
	}

	if core.IsIdentifierStart(s.peek) {
		return s.scanIdentifier(), nil
	}
	if core.IsDigit(s.peek) {
		return s.scanNumber(s.index)
	}

	start := s.index
	switch s.peek {
	case core.CharPERIOD:
		s.advance()
		if core.IsDigit(s.peek) {
			return s.scanNumber(start)
		}
		return NewToken(start, "."), nil
	case core.CharLPAREN, core.CharRPAREN, core.CharLBRACE, core.CharRBRACE,
		core.CharLBRACKET, core.CharRBRACKET, core.CharCOMMA, core.CharCOLON, core.CharSEMICOLON:
		return s.scanCharacter(start), nil
	case core.CharSQ, core.CharDQ:
		return s.scanString()
	case core.CharPLUS, core.CharMINUS, core.CharSTAR, core.CharSLASH,
		core.CharPERCENT, core.CharCARET, core.CharQUESTION:
		return s.scanOperator(start), nil
	case core.CharLT, core.CharGT:
		return s.scanComplexOperator(start, core.CharEQ, 1), nil
	case core.CharBANG, core.CharEQ:
		return s.scanComplexOperator(start, core.CharEQ, 2), nil
	case core.CharAMPERSAND:
		return s.scanComplexOperator(start, core.CharAMPERSAND, 1), nil
	case core.CharBAR:
		return s.scanComplexOperator(start, core.CharBAR, 1), nil
	case core.CharNBSP:
		for core.IsWhitespace(s.peek) {
			s.advance()
		}
		return s.scanToken()
	}

	return nil, s.error("Unexpected character ["+string(s.peek)+"]", 0)
}

func (s *scanner) scanCharacter(start int) *Token {
	text := string(s.peek)
	s.advance()
	return NewToken(start, text)
}

func (s *scanner) scanOperator(start int) *Token {
	text := string(s.peek)
	s.advance()
	return NewToken(start, text).withOp(text)
}

// scanComplexOperator takes the current character plus up to extra
// repetitions of code, e.g. `!==` or `&&`.
func (s *scanner) scanComplexOperator(start int, code rune, extra int) *Token {
	text := string(s.peek)
	s.advance()
	for i := 0; i < extra && s.peek == code; i++ {
		text += string(code)
		s.advance()
	}
	token := NewToken(start, text)
	if operators[text] {
		token.withOp(text)
	}
	return token
}

func (s *scanner) scanIdentifier() *Token {
	start := s.index
	s.advance()
	for core.IsIdentifierPart(s.peek) {
		s.advance()
	}
	text := s.text(start, s.index)
	token := NewToken(start, text)
	if operators[text] {
		return token.withOp(text)
	}
	return token.withKey(text)
}

func (s *scanner) scanNumber(start int) (*Token, error) {
	simple := s.index == start
	s.advance() // Skip initial digit
	for {
		if !core.IsDigit(s.peek) {
			if s.peek == core.CharPERIOD {
				simple = false
			} else if core.IsExponentStart(s.peek) {
				s.advance()
				if core.IsExponentSign(s.peek) {
					s.advance()
				}
				if !core.IsDigit(s.peek) {
					return nil, s.error("Invalid exponent", -1)
				}
				simple = false
			} else {
				break
			}
		}
		s.advance()
	}

	text := s.text(start, s.index)
	var value float64
	if simple {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			value = parseFloatPrefix(text)
		} else {
			value = float64(n)
		}
	} else {
		value = parseFloatPrefix(text)
	}
	return NewToken(start, text).withValue(value), nil
}

// parseFloatPrefix parses the longest valid numeric prefix of text, the way
// `1.2.3` still reads as 1.2.
func parseFloatPrefix(text string) float64 {
	for end := len(text); end > 0; end-- {
		if value, err := strconv.ParseFloat(text[:end], 64); err == nil || errors.Is(err, strconv.ErrRange) {
			return value
		}
	}
	return 0
}

func (s *scanner) scanString() (*Token, error) {
	start := s.index
	quote := s.peek
	s.advance() // Skip initial quote

	var buffer []rune
	escaped := false
	marker := s.index

	for s.peek != quote {
		if s.peek == core.CharBACKSLASH {
			if !escaped {
				buffer = []rune{}
				escaped = true
			}
			buffer = append(buffer, s.input[marker:s.index]...)
			s.advance()
			var unescaped rune
			if s.peek == core.CharLowerU {
				hex := s.text(s.index+1, s.index+5)
				if !isUnicodeEscape(hex) {
					return nil, s.error(`Invalid unicode escape [\u`+hex+`]`, 0)
				}
				code, _ := strconv.ParseInt(hex, 16, 32)
				unescaped = rune(code)
				for i := 0; i < 5; i++ {
					s.advance()
				}
			} else {
				unescaped = unescape(s.peek)
				s.advance()
			}
			buffer = append(buffer, unescaped)
			marker = s.index
		} else if s.peek == core.CharEOF {
			return nil, s.error("Unterminated quote", 0)
		} else {
			s.advance()
		}
	}

	last := s.text(marker, s.index)
	s.advance() // Skip terminating quote
	text := s.text(start, s.index)

	value := last
	if escaped {
		value = string(buffer) + last
	}
	return NewToken(start, text).withValue(value), nil
}

func (s *scanner) error(message string, offset int) error {
	return util.NewLexerError(message, s.source, s.index+offset)
}

func isUnicodeEscape(hex string) bool {
	if len(hex) != 4 {
		return false
	}
	for _, c := range hex {
		if !core.IsAsciiHexDigit(c) {
			return false
		}
	}
	return true
}

func unescape(code rune) rune {
	switch code {
	case core.CharLowerN:
		return core.CharLF
	case core.CharLowerF:
		return core.CharFF
	case core.CharLowerR:
		return core.CharCR
	case core.CharLowerT:
		return core.CharTAB
	case core.CharLowerV:
		return core.CharVTAB
	default:
		return code
	}
}
