package util

import (
	"encoding/json"
	"fmt"
	"strings"
)

// LexerError is raised when an expression cannot be scanned
type LexerError struct {
	Message string
	Input   string
	Column  int
}

// NewLexerError creates a LexerError for the given column of input
func NewLexerError(message, input string, column int) *LexerError {
	return &LexerError{Message: message, Input: input, Column: column}
}

// Error implements the error interface
func (e *LexerError) Error() string {
	return fmt.Sprintf("Lexer Error: %s at column %d in expression [%s]", e.Message, e.Column, e.Input)
}

// ParserError is raised on a grammar violation. Column is -1 when the error
// was found at the end of the expression.
type ParserError struct {
	Message string
	Input   string
	Column  int
	// Bare errors are reported without location decoration
	Bare bool
}

// NewParserError creates a ParserError located at column
func NewParserError(message, input string, column int) *ParserError {
	return &ParserError{Message: message, Input: input, Column: column}
}

// Error implements the error interface
func (e *ParserError) Error() string {
	if e.Bare {
		return e.Message
	}
	if e.Column < 0 {
		return fmt.Sprintf("Parser Error: %s at the end of the expression [%s]", e.Message, e.Input)
	}
	return fmt.Sprintf("Parser Error: %s at column %d in [%s]", e.Message, e.Column, e.Input)
}

// CompileError is a structural template failure. It aborts the whole compilation.
type CompileError struct {
	Message string
	Err     error
}

// NewCompileError creates a CompileError
func NewCompileError(format string, args ...interface{}) *CompileError {
	return &CompileError{Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *CompileError) Unwrap() error {
	return e.Err
}

// ParseErrorLevel represents the level of a parse error
type ParseErrorLevel int

const (
	ParseErrorLevelWarning ParseErrorLevel = iota
	ParseErrorLevelError
)

// String returns the level name
func (l ParseErrorLevel) String() string {
	if l == ParseErrorLevelWarning {
		return "WARNING"
	}
	return "ERROR"
}

// ParseError is a node-local diagnostic collected while compiling a template.
// Location names the node, e.g. `<input value.bind>` or `#text`.
type ParseError struct {
	Location     string
	Msg          string
	Level        ParseErrorLevel
	RelatedError error
}

// NewParseError creates a ParseError
func NewParseError(location, msg string) *ParseError {
	return &ParseError{
		Location: location,
		Msg:      msg,
		Level:    ParseErrorLevelError,
	}
}

// NewParseWarning creates a ParseWarning
func NewParseWarning(location, msg string) *ParseError {
	return &ParseError{
		Location: location,
		Msg:      msg,
		Level:    ParseErrorLevelWarning,
	}
}

// Error implements the error interface
func (p *ParseError) Error() string {
	return p.String()
}

// Unwrap returns the related error, if any
func (p *ParseError) Unwrap() error {
	return p.RelatedError
}

// MarshalJSON writes the diagnostic as {level, location, message}
func (p *ParseError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Level    string `json:"level"`
		Location string `json:"location,omitempty"`
		Message  string `json:"message"`
	}{p.Level.String(), p.Location, p.Msg})
}

// String returns a string representation of the error
func (p *ParseError) String() string {
	if p.Location == "" {
		return fmt.Sprintf("%s: %s", p.Level, p.Msg)
	}
	return fmt.Sprintf("%s: %s (%s)", p.Level, p.Msg, p.Location)
}

// JoinParseErrors renders a list of diagnostics one per line
func JoinParseErrors(errs []*ParseError) string {
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = err.String()
	}
	return strings.Join(lines, "\n")
}
