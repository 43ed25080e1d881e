package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	IDENTIFIER // variable name
	NUMBER     // 42 or 3.14
	STRING_LIT // "..."
	CHAR_LIT   // 'c'
	TRUE       // "true"
	FALSE      // "false"

	// Primitive type keywords
	INT    // "int"
	FLOAT  // "float"
	DOUBLE // "double"
	STRING // "string"
	BOOL   // "bool"
	CHAR   // "char"

	// Control keywords
	IF     // "if" / "agar"
	ELSE   // "else" / "warna"
	WHILE  // "while"
	FOR    // "for"
	RETURN // "return"

	// Paired delimiters
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }

	// Punctuation
	SEMICOLON // ;

	// Arithmetic operators
	PLUS  // +
	MINUS // -
	STAR  // *
	SLASH // /

	// Assignment / comparison  (order matters: ASSIGN before EQUALS)
	ASSIGN  // =
	EQUALS  // ==
	NOT_EQ  // !=
	LESS    // <
	GREATER // >

	// Logical operators
	AND_LOGICAL // &&
	OR_LOGICAL  // ||
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:         "EOF",
	IDENTIFIER:  "IDENTIFIER",
	NUMBER:      "NUMBER",
	STRING_LIT:  "STRING_LIT",
	CHAR_LIT:    "CHAR_LIT",
	TRUE:        "TRUE",
	FALSE:       "FALSE",
	INT:         "INT",
	FLOAT:       "FLOAT",
	DOUBLE:      "DOUBLE",
	STRING:      "STRING",
	BOOL:        "BOOL",
	CHAR:        "CHAR",
	IF:          "IF",
	ELSE:        "ELSE",
	WHILE:       "WHILE",
	FOR:         "FOR",
	RETURN:      "RETURN",
	LPAREN:      "LPAREN",
	RPAREN:      "RPAREN",
	LBRACE:      "LBRACE",
	RBRACE:      "RBRACE",
	SEMICOLON:   "SEMICOLON",
	PLUS:        "PLUS",
	MINUS:       "MINUS",
	STAR:        "STAR",
	SLASH:       "SLASH",
	ASSIGN:      "ASSIGN",
	EQUALS:      "EQUALS",
	NOT_EQ:      "NOT_EQ",
	LESS:        "LESS",
	GREATER:     "GREATER",
	AND_LOGICAL: "AND_LOGICAL",
	OR_LOGICAL:  "OR_LOGICAL",
}

// tokenDescriptions are the user-facing spellings used in syntax errors.
var tokenDescriptions = [...]string{
	EOF:         "end of file",
	IDENTIFIER:  "identifier",
	NUMBER:      "number",
	STRING_LIT:  "string literal",
	CHAR_LIT:    "char literal",
	TRUE:        "true",
	FALSE:       "false",
	INT:         "int",
	FLOAT:       "float",
	DOUBLE:      "double",
	STRING:      "string",
	BOOL:        "bool",
	CHAR:        "char",
	IF:          "if",
	ELSE:        "else",
	WHILE:       "while",
	FOR:         "for",
	RETURN:      "return",
	LPAREN:      "(",
	RPAREN:      ")",
	LBRACE:      "{",
	RBRACE:      "}",
	SEMICOLON:   ";",
	PLUS:        "+",
	MINUS:       "-",
	STAR:        "*",
	SLASH:       "/",
	ASSIGN:      "=",
	EQUALS:      "==",
	NOT_EQ:      "!=",
	LESS:        "<",
	GREATER:     ">",
	AND_LOGICAL: "&&",
	OR_LOGICAL:  "||",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Describe returns the spelling of tt as a user would write it ("int", ";",
// "end of file").
func (tt TokenType) Describe() string {
	if int(tt) >= 0 && int(tt) < len(tokenDescriptions) {
		return tokenDescriptions[tt]
	}
	return tt.String()
}

// IsTypeKeyword reports whether tt names one of the primitive types.
func (tt TokenType) IsTypeKeyword() bool {
	switch tt {
	case INT, FLOAT, DOUBLE, STRING, BOOL, CHAR:
		return true
	}
	return false
}

// isExprOperator reports whether tt binds at the expression tier.
func (tt TokenType) isExprOperator() bool {
	switch tt {
	case PLUS, MINUS, GREATER, LESS, EQUALS, NOT_EQ, AND_LOGICAL, OR_LOGICAL:
		return true
	}
	return false
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Line   int    // 1-based source line
}

func (t Token) String() string {
	return fmt.Sprintf("%-11s %-14q  line %d", t.Type, t.Lexeme, t.Line)
}
