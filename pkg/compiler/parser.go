package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser consumes the flat token slice produced by the Lexer and evaluates it
// in the same pass. No tree is built: every expression is folded to a Value as
// soon as its operands are known, declarations and assignments go straight into
// the symbol table, and the call stack is the only structural memory.
//
// Grammar:
//
//	program     = statement* EOF
//	statement   = declaration | assignment | if | while | for | return | block
//	declaration = type IDENTIFIER ("=" expression)? ";"
//	assignment  = IDENTIFIER "=" expression ";"
//	if          = "if" "(" expression ")" statement ("else" statement)?
//	while       = "while" "(" expression ")" statement
//	for         = "for" "(" (declaration | assignment) expression ";" (increment)? ")" statement
//	increment   = IDENTIFIER "=" expression | expression
//	return      = "return" expression ";"
//	block       = "{" statement* "}"
//	expression  = term (("+" | "-" | "<" | ">" | "==" | "!=" | "&&" | "||") term)*
//	term        = factor (("*" | "/") factor)*
//	factor      = NUMBER | IDENTIFIER | STRING_LIT | CHAR_LIT | "true" | "false" | "(" expression ")"
//
// Conditions never gate anything: both branches of an if and every loop body
// are parsed and folded exactly once.
type Parser struct {
	tokens  []Token
	pos     int
	syms    *SymbolTable
	returns []Value
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens, syms: NewSymbolTable()}
}

// Result is what a successful parse leaves behind.
type Result struct {
	Symbols *SymbolTable
	Returns []Value // value of every return statement, in source order
	Tokens  int
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	return p.peekAt(0)
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches tt, otherwise returns an error.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, syntaxError(tok, "expected %s, got %s", tt.Describe(), describe(tok))
	}
	return p.advance(), nil
}

func syntaxError(tok Token, format string, args ...any) error {
	return newError(SyntaxError, tok.Line, format, args...)
}

func describe(tok Token) string {
	if tok.Type == EOF {
		return EOF.Describe()
	}
	return fmt.Sprintf("%q", tok.Lexeme)
}

// ParseProgram recognises statements until EOF.
func (p *Parser) ParseProgram() error {
	for p.peek().Type != EOF {
		if err := p.parseStatement(); err != nil {
			return err
		}
	}
	_, err := p.expect(EOF)
	return err
}

// Symbols returns the table populated so far.
func (p *Parser) Symbols() *SymbolTable { return p.syms }

func (p *Parser) parseStatement() error {
	tok := p.peek()
	switch tok.Type {
	case INT, FLOAT, DOUBLE, STRING, BOOL, CHAR:
		return p.parseDeclaration()
	case IDENTIFIER:
		return p.parseAssignment(true)
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case FOR:
		return p.parseFor()
	case RETURN:
		return p.parseReturn()
	case LBRACE:
		return p.parseBlock()
	default:
		return syntaxError(tok, "unexpected token %s", describe(tok))
	}
}

func (p *Parser) parseDeclaration() error {
	typeTok := p.advance()
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return err
	}
	if prev, ok := p.syms.Lookup(nameTok.Lexeme); ok {
		return redeclared(nameTok.Lexeme, prev.Line, nameTok.Line)
	}

	value := Int(0)
	if p.peek().Type == ASSIGN {
		p.advance()
		if value, err = p.parseExpression(); err != nil {
			return err
		}
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return err
	}
	return p.syms.Insert(nameTok.Lexeme, typeTok.Type, value, nameTok.Line)
}

// parseAssignment handles `name = expression`, followed by ";" unless it is
// the increment clause of a for loop.
func (p *Parser) parseAssignment(terminated bool) error {
	nameTok := p.advance()
	if !p.syms.Exists(nameTok.Lexeme) {
		return atLine(undeclared(nameTok.Lexeme), nameTok.Line)
	}
	if _, err := p.expect(ASSIGN); err != nil {
		return err
	}
	value, err := p.parseExpression()
	if err != nil {
		return err
	}
	if terminated {
		if _, err := p.expect(SEMICOLON); err != nil {
			return err
		}
	}
	return atLine(p.syms.Update(nameTok.Lexeme, value), nameTok.Line)
}

// parseCondition handles the parenthesised condition of if and while. The
// value is computed and dropped.
func (p *Parser) parseCondition() error {
	if _, err := p.expect(LPAREN); err != nil {
		return err
	}
	if _, err := p.parseExpression(); err != nil {
		return err
	}
	_, err := p.expect(RPAREN)
	return err
}

func (p *Parser) parseIf() error {
	p.advance() // if
	if err := p.parseCondition(); err != nil {
		return err
	}
	if err := p.parseStatement(); err != nil {
		return err
	}
	if p.peek().Type == ELSE {
		p.advance()
		return p.parseStatement()
	}
	return nil
}

func (p *Parser) parseWhile() error {
	p.advance() // while
	if err := p.parseCondition(); err != nil {
		return err
	}
	return p.parseStatement()
}

func (p *Parser) parseFor() error {
	p.advance() // for
	if _, err := p.expect(LPAREN); err != nil {
		return err
	}

	init := p.peek()
	switch {
	case init.Type.IsTypeKeyword():
		if err := p.parseDeclaration(); err != nil {
			return err
		}
	case init.Type == IDENTIFIER:
		if err := p.parseAssignment(true); err != nil {
			return err
		}
	default:
		return syntaxError(init, "expected declaration or assignment in for initializer, got %s", describe(init))
	}

	if _, err := p.parseExpression(); err != nil {
		return err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return err
	}

	if p.peek().Type != RPAREN {
		var err error
		if p.peek().Type == IDENTIFIER && p.peekAt(1).Type == ASSIGN {
			err = p.parseAssignment(false)
		} else {
			_, err = p.parseExpression()
		}
		if err != nil {
			return err
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return err
	}
	return p.parseStatement()
}

// peekAt returns the token at the given offset from the current position.
func (p *Parser) peekAt(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		return p.pastEnd()
	}
	return p.tokens[p.pos+offset]
}

// pastEnd stands in for a missing EOF token, on the last line seen.
func (p *Parser) pastEnd() Token {
	line := 1
	if n := len(p.tokens); n > 0 {
		line = p.tokens[n-1].Line
	}
	return Token{Type: EOF, Line: line}
}

func (p *Parser) parseReturn() error {
	p.advance() // return
	value, err := p.parseExpression()
	if err != nil {
		return err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return err
	}
	p.returns = append(p.returns, value)
	return nil
}

func (p *Parser) parseBlock() error {
	p.advance() // {
	for p.peek().Type != RBRACE && p.peek().Type != EOF {
		if err := p.parseStatement(); err != nil {
			return err
		}
	}
	_, err := p.expect(RBRACE)
	return err
}

// parseExpression folds a left-associative chain of terms. Every operator other
// than * and / lives on this single tier.
func (p *Parser) parseExpression() (Value, error) {
	left, err := p.parseTerm()
	if err != nil {
		return Value{}, err
	}
	for p.peek().Type.isExprOperator() {
		op := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return Value{}, err
		}
		if left, err = FoldValues(left, right, op.Type); err != nil {
			return Value{}, atLine(err, op.Line)
		}
	}
	return left, nil
}

func (p *Parser) parseTerm() (Value, error) {
	left, err := p.parseFactor()
	if err != nil {
		return Value{}, err
	}
	for p.peek().Type == STAR || p.peek().Type == SLASH {
		op := p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return Value{}, err
		}
		if left, err = FoldValues(left, right, op.Type); err != nil {
			return Value{}, atLine(err, op.Line)
		}
	}
	return left, nil
}

func (p *Parser) parseFactor() (Value, error) {
	tok := p.peek()
	switch tok.Type {
	case NUMBER:
		p.advance()
		if strings.Contains(tok.Lexeme, ".") {
			return Text(tok.Lexeme), nil
		}
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return Value{}, newError(LexicalError, tok.Line, "integer literal %s out of range", tok.Lexeme)
		}
		return spelledInt(n, tok.Lexeme), nil

	case IDENTIFIER:
		p.advance()
		v, err := p.syms.LookupValue(tok.Lexeme)
		if err != nil {
			return Value{}, atLine(err, tok.Line)
		}
		return v, nil

	case STRING_LIT, CHAR_LIT:
		p.advance()
		return Text(literalText(tok)), nil

	case TRUE:
		p.advance()
		return Int(1), nil

	case FALSE:
		p.advance()
		return Int(0), nil

	case LPAREN:
		p.advance()
		v, err := p.parseExpression()
		if err != nil {
			return Value{}, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return Value{}, err
		}
		return v, nil

	default:
		return Value{}, syntaxError(tok, "unexpected token %s in expression", describe(tok))
	}
}

// Parse evaluates a complete token stream and returns the resulting symbols.
func Parse(tokens []Token) (*Result, error) {
	p := NewParser(tokens)
	if err := p.ParseProgram(); err != nil {
		return nil, err
	}
	return &Result{Symbols: p.syms, Returns: p.returns, Tokens: len(tokens)}, nil
}
