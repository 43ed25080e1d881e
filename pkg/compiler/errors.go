package compiler

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a front-end failure.
type ErrorKind int

const (
	LexicalError ErrorKind = iota
	SyntaxError
	RedeclarationError
	UndeclaredSymbolError
	TypeMismatchError
	DivisionByZeroError
)

var errorKindNames = [...]string{
	LexicalError:          "LexicalError",
	SyntaxError:           "SyntaxError",
	RedeclarationError:    "RedeclarationError",
	UndeclaredSymbolError: "UndeclaredSymbolError",
	TypeMismatchError:     "TypeMismatchError",
	DivisionByZeroError:   "DivisionByZeroError",
}

func (k ErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the single error type returned by Lex, Fold and Parse.
// Line is 0 when the failure was detected outside any source position
// (a direct Fold call or a symbol-table query); the parser fills it in.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s on line %d", e.Kind, e.Message, e.Line)
}

func newError(kind ErrorKind, line int, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Line: line}
}

// atLine stamps line onto err when err is a position-less *Error.
func atLine(err error, line int) error {
	var e *Error
	if errors.As(err, &e) && e.Line == 0 {
		e.Line = line
	}
	return err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
