package compiler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Keywords maps source text to its keyword TokenType. Several spellings may map
// to the same type; "agar" and "warna" are the built-in aliases of "if" and "else".
type Keywords map[string]TokenType

var builtinKeywords = Keywords{
	"int":    INT,
	"float":  FLOAT,
	"double": DOUBLE,
	"string": STRING,
	"bool":   BOOL,
	"char":   CHAR,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"for":    FOR,
	"return": RETURN,
	"true":   TRUE,
	"false":  FALSE,
	"agar":   IF,
	"warna":  ELSE,
}

// DefaultKeywords returns a fresh copy of the built-in keyword set.
func DefaultKeywords() Keywords {
	kw := make(Keywords, len(builtinKeywords))
	for word, tt := range builtinKeywords {
		kw[word] = tt
	}
	return kw
}

// AddAlias registers alias as another spelling of the keyword canonical.
func (k Keywords) AddAlias(alias string, canonical TokenType) error {
	if !isIdentifier(alias) {
		return fmt.Errorf("alias %q is not a valid identifier", alias)
	}
	if tt, ok := k[alias]; ok {
		if tt == canonical {
			return nil
		}
		return fmt.Errorf("alias %q already names keyword %s", alias, tt.Describe())
	}
	found := false
	for _, tt := range k {
		if tt == canonical {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("cannot alias %s: not a keyword", canonical.Describe())
	}
	k[alias] = canonical
	return nil
}

func isLetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !isLetter(r) && (i == 0 || !isDigit(r)) {
			return false
		}
	}
	return true
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src      []rune
	pos      int // index of the next rune to consume
	line     int // current 1-based source line
	keywords Keywords
}

func newLexer(src string, kw Keywords) *Lexer {
	if kw == nil {
		kw = builtinKeywords
	}
	return &Lexer{src: []rune(src), pos: 0, line: 1, keywords: kw}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the rune one position ahead of the current position.
func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
	}
	return r
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

// skipLineComment discards everything from the current position to end-of-line.
// The opening "//" must already have been consumed.
func (l *Lexer) skipLineComment() {
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// skipBlockComment discards everything up to and including the closing "*/".
// The opening "/*" must already have been consumed.
func (l *Lexer) skipBlockComment(startLine int) error {
	for !l.atEnd() {
		if l.peek() == '*' && l.peek2() == '/' {
			l.advance() // *
			l.advance() // /
			return nil
		}
		l.advance()
	}
	return newError(LexicalError, startLine, "unterminated block comment")
}

// scanWord collects a full identifier or keyword token.
// The first letter must still be at l.peek().
func (l *Lexer) scanWord() Token {
	line := l.line
	start := l.pos
	for !l.atEnd() && (isLetter(l.peek()) || isDigit(l.peek())) {
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	tt := IDENTIFIER
	if kw, ok := l.keywords[lexeme]; ok {
		tt = kw
	}
	return Token{Type: tt, Lexeme: lexeme, Line: line}
}

// scanNumber collects a digit run with at most one decimal point. A second
// point ends the literal; a literal ending in a point is malformed.
func (l *Lexer) scanNumber() (Token, error) {
	line := l.line
	start := l.pos
	seenDot := false
	for !l.atEnd() {
		r := l.peek()
		if r == '.' {
			if seenDot {
				break
			}
			seenDot = true
		} else if !isDigit(r) {
			break
		}
		l.advance()
	}

	lexeme := string(l.src[start:l.pos])
	if strings.HasSuffix(lexeme, ".") {
		return Token{}, newError(LexicalError, line, "invalid number format %q", lexeme)
	}
	if !seenDot {
		if _, err := strconv.ParseInt(lexeme, 10, 64); err != nil {
			return Token{}, newError(LexicalError, line, "integer literal %s out of range", lexeme)
		}
	}
	return Token{Type: NUMBER, Lexeme: lexeme, Line: line}, nil
}

// scanString collects a string literal "..." including both quotes. Newlines
// may appear inside; the token keeps the line of its opening quote.
func (l *Lexer) scanString() (Token, error) {
	line := l.line
	start := l.pos
	l.advance() // consume opening "

	for !l.atEnd() {
		r := l.advance()
		if r == '"' {
			return Token{Type: STRING_LIT, Lexeme: string(l.src[start:l.pos]), Line: line}, nil
		}
		if r == '\\' {
			if l.atEnd() {
				break
			}
			next := l.advance()
			if _, ok := escapes[next]; !ok {
				return Token{}, newError(LexicalError, line, "unknown escape sequence \\%c", next)
			}
		}
	}
	return Token{}, newError(LexicalError, line, "unterminated string literal")
}

// scanChar collects a character literal 'c': exactly one character between quotes.
func (l *Lexer) scanChar() (Token, error) {
	line := l.line
	start := l.pos
	l.advance() // consume opening '

	r := l.peek()
	if l.atEnd() || r == '\'' || r == '\n' {
		return Token{}, newError(LexicalError, line, "invalid char literal")
	}
	l.advance()

	if l.peek() != '\'' {
		return Token{}, newError(LexicalError, line, "invalid char literal")
	}
	l.advance() // consume closing '

	return Token{Type: CHAR_LIT, Lexeme: string(l.src[start:l.pos]), Line: line}, nil
}

var escapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'"':  '"',
	'\\': '\\',
}

// literalText returns the text a string or char literal token denotes:
// quotes removed and escape sequences decoded. The lexer has already
// validated the escapes.
func literalText(tok Token) string {
	body := []rune(tok.Lexeme)
	if len(body) < 2 {
		return tok.Lexeme
	}
	body = body[1 : len(body)-1]
	if tok.Type == CHAR_LIT {
		return string(body)
	}

	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++
			sb.WriteRune(escapes[body[i]])
			continue
		}
		sb.WriteRune(body[i])
	}
	return sb.String()
}

// nextToken skips whitespace/comments and returns the next Token.
func (l *Lexer) nextToken() (Token, error) {
	for {
		l.skipWhitespace()
		if l.atEnd() {
			return Token{Type: EOF, Lexeme: "", Line: l.line}, nil
		}
		if l.peek() == '/' && l.peek2() == '/' {
			l.advance()
			l.advance()
			l.skipLineComment()
			continue
		}
		if l.peek() == '/' && l.peek2() == '*' {
			line := l.line
			l.advance()
			l.advance()
			if err := l.skipBlockComment(line); err != nil {
				return Token{}, err
			}
			continue
		}
		break
	}

	ch := l.peek()
	line := l.line

	switch {
	case isLetter(ch):
		return l.scanWord(), nil
	case isDigit(ch):
		return l.scanNumber()
	case ch == '"':
		return l.scanString()
	case ch == '\'':
		return l.scanChar()
	}

	l.advance() // consume the character before the switch
	switch ch {
	case '{':
		return Token{LBRACE, "{", line}, nil
	case '}':
		return Token{RBRACE, "}", line}, nil
	case '(':
		return Token{LPAREN, "(", line}, nil
	case ')':
		return Token{RPAREN, ")", line}, nil
	case ';':
		return Token{SEMICOLON, ";", line}, nil
	case '+':
		return Token{PLUS, "+", line}, nil
	case '-':
		return Token{MINUS, "-", line}, nil
	case '*':
		return Token{STAR, "*", line}, nil
	case '/':
		return Token{SLASH, "/", line}, nil
	case '<':
		return Token{LESS, "<", line}, nil
	case '>':
		return Token{GREATER, ">", line}, nil
	case '=':
		if l.peek() == '=' { // lookahead: distinguish = vs ==
			l.advance()
			return Token{EQUALS, "==", line}, nil
		}
		return Token{ASSIGN, "=", line}, nil
	case '!':
		if l.peek() == '=' {
			l.advance()
			return Token{NOT_EQ, "!=", line}, nil
		}
	case '&':
		if l.peek() == '&' {
			l.advance()
			return Token{AND_LOGICAL, "&&", line}, nil
		}
	case '|':
		if l.peek() == '|' {
			l.advance()
			return Token{OR_LOGICAL, "||", line}, nil
		}
	}
	return Token{}, newError(LexicalError, line, "unexpected character %q", ch)
}

// Lex tokenises src with the built-in keyword set and returns all tokens
// including the final EOF token.
func Lex(src string) ([]Token, error) {
	return LexWithKeywords(src, nil)
}

// LexWithKeywords is Lex with a caller-supplied keyword set; nil selects the
// built-in one. It stops at the first lexical error.
func LexWithKeywords(src string, kw Keywords) ([]Token, error) {
	l := newLexer(src, kw)
	var tokens []Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}
