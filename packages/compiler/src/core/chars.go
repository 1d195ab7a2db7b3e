package core

// Character codes of the expression lexer
const (
	CharEOF       = 0
	CharTAB       = 9
	CharLF        = 10
	CharVTAB      = 11
	CharFF        = 12
	CharCR        = 13
	CharSPACE     = 32
	CharBANG      = 33
	CharDQ        = 34
	CharDollar    = 36
	CharPERCENT   = 37
	CharAMPERSAND = 38
	CharSQ        = 39
	CharLPAREN    = 40
	CharRPAREN    = 41
	CharSTAR      = 42
	CharPLUS      = 43
	CharCOMMA     = 44
	CharMINUS     = 45
	CharPERIOD    = 46
	CharSLASH     = 47
	CharCOLON     = 58
	CharSEMICOLON = 59
	CharLT        = 60
	CharEQ        = 61
	CharGT        = 62
	CharQUESTION  = 63

	Char0 = 48
	Char9 = 57

	CharA = 65
	CharE = 69
	CharF = 70
	CharZ = 90

	CharLBRACKET   = 91
	CharBACKSLASH  = 92
	CharRBRACKET   = 93
	CharCARET      = 94
	CharUnderscore = 95

	CharLowerA = 97
	CharLowerE = 101
	CharLowerF = 102
	CharLowerN = 110
	CharLowerR = 114
	CharLowerT = 116
	CharLowerU = 117
	CharLowerV = 118
	CharLowerZ = 122

	CharLBRACE = 123
	CharBAR    = 124
	CharRBRACE = 125
	CharNBSP   = 160
)

// IsWhitespace reports the characters skipped between tokens, NBSP included
func IsWhitespace(code rune) bool {
	return (code >= CharTAB && code <= CharSPACE) || code == CharNBSP
}

func IsDigit(code rune) bool {
	return Char0 <= code && code <= Char9
}

func IsAsciiLetter(code rune) bool {
	return (code >= CharLowerA && code <= CharLowerZ) || (code >= CharA && code <= CharZ)
}

func IsAsciiHexDigit(code rune) bool {
	return (code >= CharLowerA && code <= CharLowerF) || (code >= CharA && code <= CharF) || IsDigit(code)
}

// IsIdentifierStart reports whether code can open an identifier: an ASCII
// letter, `_` or `$`
func IsIdentifierStart(code rune) bool {
	return IsAsciiLetter(code) || code == CharUnderscore || code == CharDollar
}

// IsIdentifierPart reports whether code can continue an identifier
func IsIdentifierPart(code rune) bool {
	return IsIdentifierStart(code) || IsDigit(code)
}

// IsExponentStart matches `e` and `E`
func IsExponentStart(code rune) bool {
	return code == CharE || code == CharLowerE
}

func IsExponentSign(code rune) bool {
	return code == CharMINUS || code == CharPLUS
}
