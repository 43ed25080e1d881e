package compiler

import "strconv"

// ValueKind tags a Value.
type ValueKind int

const (
	IntValue  ValueKind = iota // signed 64-bit integer
	TextValue                  // string, char and decimal literals
)

// Value is what a folded expression or a symbol holds. The text encoding
// produced by String is what == and != compare.
type Value struct {
	Kind ValueKind
	Int  int64
	Text string

	raw string // source spelling of an integer written non-canonically ("007", "+5")
}

// Int returns an integer Value.
func Int(n int64) Value { return Value{Kind: IntValue, Int: n} }

// Text returns a text Value.
func Text(s string) Value { return Value{Kind: TextValue, Text: s} }

// Bool encodes b as the integer 1 or 0.
func Bool(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}

// ParseValue classifies s: text that parses as a signed integer becomes an
// IntValue, anything else stays text. String returns s unchanged either way.
func ParseValue(s string) Value {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return spelledInt(n, s)
	}
	return Text(s)
}

// spelledInt is Int(n) remembering how n was written in the source.
func spelledInt(n int64, spelling string) Value {
	v := Int(n)
	if spelling != strconv.FormatInt(n, 10) {
		v.raw = spelling
	}
	return v
}

func (v Value) String() string {
	if v.Kind == IntValue {
		if v.raw != "" {
			return v.raw
		}
		return strconv.FormatInt(v.Int, 10)
	}
	return v.Text
}

// IsInt reports whether v holds an integer.
func (v Value) IsInt() bool { return v.Kind == IntValue }
