package compiler

// Fold combines two already-evaluated operand texts with op and returns the
// result text. Operands that parse as signed integers are treated as integers;
// everything else is text and only == and != accept it.
func Fold(left, right string, op TokenType) (string, error) {
	v, err := FoldValues(ParseValue(left), ParseValue(right), op)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// FoldValues is Fold over tagged values. Returned errors carry no line; the
// parser stamps the operator's line on them.
func FoldValues(left, right Value, op TokenType) (Value, error) {
	switch op {
	case EQUALS:
		return Bool(left.String() == right.String()), nil
	case NOT_EQ:
		return Bool(left.String() != right.String()), nil
	case PLUS, MINUS, STAR, SLASH, GREATER, LESS, AND_LOGICAL, OR_LOGICAL:
	default:
		return Value{}, newError(SyntaxError, 0, "operator %s cannot be folded", op.Describe())
	}

	if !left.IsInt() {
		return Value{}, mismatch(op, left)
	}
	if !right.IsInt() {
		return Value{}, mismatch(op, right)
	}
	a, b := left.Int, right.Int

	switch op {
	case PLUS:
		return Int(a + b), nil
	case MINUS:
		return Int(a - b), nil
	case STAR:
		return Int(a * b), nil
	case SLASH:
		if b == 0 {
			return Value{}, newError(DivisionByZeroError, 0, "division by zero in %d / 0", a)
		}
		return Int(a / b), nil
	case GREATER:
		return Bool(a > b), nil
	case LESS:
		return Bool(a < b), nil
	case AND_LOGICAL:
		return Bool(a != 0 && b != 0), nil
	default: // OR_LOGICAL
		return Bool(a != 0 || b != 0), nil
	}
}

func mismatch(op TokenType, operand Value) *Error {
	return newError(TypeMismatchError, 0, "operator %s requires integer operands, got %q", op.Describe(), operand.String())
}
