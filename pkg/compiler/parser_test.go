package compiler

import (
	"reflect"
	"testing"
)

// parseSource lexes and parses src, failing the test on a lexical error.
func parseSource(t *testing.T, src string) (*Result, error) {
	t.Helper()
	tokens, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	return Parse(tokens)
}

func mustParse(t *testing.T, src string) *Result {
	t.Helper()
	res, err := parseSource(t, src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return res
}

func valueOf(t *testing.T, res *Result, name string) string {
	t.Helper()
	v, err := res.Symbols.LookupValue(name)
	if err != nil {
		t.Fatalf("LookupValue(%s) error = %v", name, err)
	}
	return v.String()
}

func TestParse_Values(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{
			name:     "Declaration Defaults To Zero",
			input:    "int x;",
			expected: map[string]string{"x": "0"},
		},
		{
			name:     "Declaration With Initializer",
			input:    "int x = 5;",
			expected: map[string]string{"x": "5"},
		},
		{
			name:     "Self Referencing Assignment",
			input:    "int x = 5;\nx = x + 10;",
			expected: map[string]string{"x": "15"},
		},
		{
			name:     "Declare Assign And Branch",
			input:    "int a; a = 5; int b; b = a + 10; if (b > 10) { return b; } else { return 0; }",
			expected: map[string]string{"a": "5", "b": "15"},
		},
		{
			name:     "Term Binds Tighter Than Expression",
			input:    "int x = 2 + 3 * 4;",
			expected: map[string]string{"x": "14"},
		},
		{
			name:     "Single Tier Folds Left To Right",
			input:    "int x = 1 + 2 > 2 + 10;",
			expected: map[string]string{"x": "11"}, // ((1+2) > 2) + 10
		},
		{
			name:     "Parentheses",
			input:    "int x = (1 + 2) * (10 - 4) / 4;",
			expected: map[string]string{"x": "4"},
		},
		{
			name:     "Subtraction Is Left Associative",
			input:    "int x = 10 - 3 - 2;",
			expected: map[string]string{"x": "5"},
		},
		{
			name:     "Logical And Equality",
			input:    "int a = 3; bool t = a == 3 && 1; bool f = a != 3 || false;",
			expected: map[string]string{"a": "3", "t": "1", "f": "0"},
		},
		{
			name:     "Equality Sees Literal Spelling",
			input:    "int a = 007 == 7; int b = 007; int c = b + 1; int d = b == 007;",
			expected: map[string]string{"a": "0", "b": "007", "c": "8", "d": "1"},
		},
		{
			name:     "Boolean Literals",
			input:    "bool yes = true; bool no = false;",
			expected: map[string]string{"yes": "1", "no": "0"},
		},
		{
			name:     "String And Char Literals",
			input:    "string s = \"hi\\tthere\"; char c = 'q'; int same = s == \"hi\\tthere\";",
			expected: map[string]string{"s": "hi\tthere", "c": "q", "same": "1"},
		},
		{
			name:     "Decimal Literal Kept As Text",
			input:    "double d = 2.50;",
			expected: map[string]string{"d": "2.50"},
		},
		{
			name:     "Both If Branches Are Evaluated",
			input:    "int a = 0; int b = 0; if (0) { a = 1; } else { b = 2; }",
			expected: map[string]string{"a": "1", "b": "2"},
		},
		{
			name:     "Localized If Else",
			input:    "int a = 0; agar (a > 1) a = 7; warna a = a + 1;",
			expected: map[string]string{"a": "8"},
		},
		{
			name:     "While Body Runs Once",
			input:    "int i = 0; while (i < 10) { i = i + 1; }",
			expected: map[string]string{"i": "1"},
		},
		{
			name:     "For Sections Run Once",
			input:    "int total = 0; for (int i = 0; i < 5; i = i + 1) { total = total + 10; }",
			expected: map[string]string{"total": "10", "i": "1"},
		},
		{
			name:     "For With Assignment Init And Expression Increment",
			input:    "int i; for (i = 3; i < 5; i + 1) i = i * 2;",
			expected: map[string]string{"i": "6"},
		},
		{
			name:     "Blocks Do Not Scope",
			input:    "{ int inner = 4; } inner = inner + 1;",
			expected: map[string]string{"inner": "5"},
		},
		{
			name:     "Comments Are Ignored",
			input:    "int x = 1; // x = 100;\n/* x = 200; */ x = x + 1;",
			expected: map[string]string{"x": "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustParse(t, tt.input)
			got := make(map[string]string, res.Symbols.Len())
			for _, name := range res.Symbols.Names() {
				got[name] = valueOf(t, res, name)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("symbols = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParse_SymbolMetadata(t *testing.T) {
	res := mustParse(t, "int a;\n\nstring name = \"x\";\nfloat f;")
	tests := []struct {
		name string
		typ  TokenType
		line int
	}{
		{"a", INT, 1},
		{"name", STRING, 3},
		{"f", FLOAT, 4},
	}
	for _, tt := range tests {
		sym, ok := res.Symbols.Lookup(tt.name)
		if !ok {
			t.Fatalf("Lookup(%s) not found", tt.name)
		}
		if sym.Type != tt.typ || sym.Line != tt.line {
			t.Errorf("Lookup(%s) = {%s, line %d}, want {%s, line %d}", tt.name, sym.Type, sym.Line, tt.typ, tt.line)
		}
	}
}

func TestParse_Returns(t *testing.T) {
	res := mustParse(t, "int b = 15; if (b > 10) { return b; } else { return 0; } return b * 2;")
	want := []Value{Int(15), Int(0), Int(30)}
	if !reflect.DeepEqual(res.Returns, want) {
		t.Errorf("Returns = %v, want %v", res.Returns, want)
	}
	if res.Tokens == 0 {
		t.Error("Tokens = 0")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
		line  int
		msg   string
	}{
		{
			name:  "Undeclared Assignment",
			input: "int x;\ny = 1;",
			kind:  UndeclaredSymbolError,
			line:  2,
			msg:   `variable "y" used before declaration`,
		},
		{
			name:  "Undeclared In Expression",
			input: "int x;\n\nx = z + 1;",
			kind:  UndeclaredSymbolError,
			line:  3,
			msg:   `variable "z" used before declaration`,
		},
		{
			name:  "Initializer Cannot See Its Own Name",
			input: "int x = x;",
			kind:  UndeclaredSymbolError,
			line:  1,
		},
		{
			name:  "Redeclaration",
			input: "int x;\nfloat x;",
			kind:  RedeclarationError,
			line:  2,
			msg:   `variable "x" already declared on line 1`,
		},
		{
			name:  "Redeclaration Inside Block",
			input: "int x; { int x = 1; }",
			kind:  RedeclarationError,
			line:  1,
		},
		{
			name:  "Redeclaration Wins Over Bad Initializer",
			input: "int x; int x = 1 / 0;",
			kind:  RedeclarationError,
			line:  1,
		},
		{
			name:  "Missing Semicolon",
			input: "int x = 1\nint y;",
			kind:  SyntaxError,
			line:  2,
			msg:   `expected ;, got "int"`,
		},
		{
			name:  "Missing Closing Brace",
			input: "{ int x;",
			kind:  SyntaxError,
			line:  1,
			msg:   "expected }, got end of file",
		},
		{
			name:  "Unexpected Token",
			input: "int x;\n) x = 1;",
			kind:  SyntaxError,
			line:  2,
			msg:   `unexpected token ")"`,
		},
		{
			name:  "Bad Factor",
			input: "int x = ;",
			kind:  SyntaxError,
			line:  1,
			msg:   `unexpected token ";" in expression`,
		},
		{
			name:  "Missing Declaration Name",
			input: "int = 4;",
			kind:  SyntaxError,
			line:  1,
		},
		{
			name:  "Dangling Else",
			input: "else { }",
			kind:  SyntaxError,
			line:  1,
		},
		{
			name:  "Bare Expression Statement",
			input: "int x; x + 1;",
			kind:  SyntaxError,
			line:  1,
		},
		{
			name:  "For Without Initializer",
			input: "for (; 1; ) { }",
			kind:  SyntaxError,
			line:  1,
		},
		{
			name:  "Division By Zero",
			input: "int z = 0;\nint x = 10 / z;",
			kind:  DivisionByZeroError,
			line:  2,
		},
		{
			name:  "Division By Zero In Untaken Branch",
			input: "if (0) { return 1 / 0; }",
			kind:  DivisionByZeroError,
			line:  1,
		},
		{
			name:  "String Arithmetic",
			input: "string s = \"a\";\nint n = s + 1;",
			kind:  TypeMismatchError,
			line:  2,
		},
		{
			name:  "Char Relational",
			input: "int n = 'a' > 1;",
			kind:  TypeMismatchError,
			line:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := parseSource(t, tt.input)
			if err == nil {
				t.Fatalf("Parse() = %+v, want error", res)
			}
			e, ok := err.(*Error)
			if !ok {
				t.Fatalf("Parse() error = %v (%T), want *Error", err, err)
			}
			if e.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s (%v)", e.Kind, tt.kind, e)
			}
			if e.Line != tt.line {
				t.Errorf("Line = %d, want %d (%v)", e.Line, tt.line, e)
			}
			if tt.msg != "" && e.Message != tt.msg {
				t.Errorf("Message = %q, want %q", e.Message, tt.msg)
			}
		})
	}
}

func TestParser_CursorStopsAtFirstError(t *testing.T) {
	tokens, err := Lex("int a = 1; b = 2; int c = 3;")
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	p := NewParser(tokens)
	if err := p.ParseProgram(); !IsKind(err, UndeclaredSymbolError) {
		t.Fatalf("ParseProgram() error = %v, want UndeclaredSymbolError", err)
	}
	if p.Symbols().Exists("c") {
		t.Error("statements after the first error must not be evaluated")
	}
	if !p.Symbols().Exists("a") {
		t.Error("statements before the first error should have been evaluated")
	}
}

func TestParse_MissingEOF(t *testing.T) {
	// A stream without its EOF sentinel still terminates.
	res, err := Parse([]Token{
		{Type: INT, Lexeme: "int", Line: 1},
		{Type: IDENTIFIER, Lexeme: "x", Line: 1},
		{Type: SEMICOLON, Lexeme: ";", Line: 1},
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !res.Symbols.Exists("x") {
		t.Error("x not declared")
	}
}

func TestParser_PastEndKeepsLastLine(t *testing.T) {
	p := NewParser([]Token{
		{Type: INT, Lexeme: "int", Line: 4},
		{Type: IDENTIFIER, Lexeme: "x", Line: 5},
	})
	if tok := p.peekAt(7); tok.Type != EOF || tok.Line != 5 {
		t.Errorf("peekAt(7) = %+v, want EOF on line 5", tok)
	}

	_, err := Parse([]Token{
		{Type: INT, Lexeme: "int", Line: 4},
		{Type: IDENTIFIER, Lexeme: "x", Line: 5},
	})
	if !IsKind(err, SyntaxError) {
		t.Fatalf("Parse() error = %v, want SyntaxError", err)
	}
	if e := err.(*Error); e.Line != 5 {
		t.Errorf("Line = %d, want 5", e.Line)
	}
}
