package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// Symbol is one declared name: its primitive type, its current value and the
// line of its declaration.
type Symbol struct {
	Type  TokenType
	Value Value
	Line  int
}

// SymbolTable maps identifier names to symbols.
// There is a single flat namespace: blocks do not open scopes and nothing is
// ever removed, so a name declared anywhere is visible for the rest of the parse.
type SymbolTable struct {
	symbols map[string]Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]Symbol)}
}

// Insert declares name. A second declaration of the same name fails.
func (s *SymbolTable) Insert(name string, typ TokenType, value Value, line int) error {
	if prev, ok := s.symbols[name]; ok {
		return redeclared(name, prev.Line, line)
	}
	s.symbols[name] = Symbol{Type: typ, Value: value, Line: line}
	return nil
}

// Lookup returns the symbol and whether it was found.
func (s *SymbolTable) Lookup(name string) (Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// LookupType returns the declared type of name.
func (s *SymbolTable) LookupType(name string) (TokenType, error) {
	sym, ok := s.symbols[name]
	if !ok {
		return EOF, undeclared(name)
	}
	return sym.Type, nil
}

// LookupValue returns the current value of name.
func (s *SymbolTable) LookupValue(name string) (Value, error) {
	sym, ok := s.symbols[name]
	if !ok {
		return Value{}, undeclared(name)
	}
	return sym.Value, nil
}

// Update overwrites the current value of an already declared name.
func (s *SymbolTable) Update(name string, value Value) error {
	sym, ok := s.symbols[name]
	if !ok {
		return undeclared(name)
	}
	sym.Value = value
	s.symbols[name] = sym
	return nil
}

// Exists reports whether name has been declared.
func (s *SymbolTable) Exists(name string) bool {
	_, ok := s.symbols[name]
	return ok
}

func (s *SymbolTable) Len() int { return len(s.symbols) }

// Names returns every declared name in sorted order.
func (s *SymbolTable) Names() []string {
	names := make([]string, 0, len(s.symbols))
	for name := range s.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func redeclared(name string, prevLine, line int) *Error {
	return newError(RedeclarationError, line, "variable %q already declared on line %d", name, prevLine)
}

func undeclared(name string) *Error {
	return newError(UndeclaredSymbolError, 0, "variable %q used before declaration", name)
}

// String returns a deterministically ordered dump of the table.
func (s *SymbolTable) String() string {
	if len(s.symbols) == 0 {
		return "Symbols: (empty)\n"
	}
	var sb strings.Builder
	sb.WriteString("Symbols:\n")
	for _, name := range s.Names() {
		sym := s.symbols[name]
		fmt.Fprintf(&sb, "  %-20s  Type: %-6s  Value: %-12s  Line: %d\n", name, sym.Type.Describe(), sym.Value, sym.Line)
	}
	return sb.String()
}
