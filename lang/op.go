package lang

import (
	"cmp"
	"log/slog"
	"math"
	"strings"
)

// mismatch reports operands an operator cannot be applied to.
func mismatch(op Kind, operands ...Value) *Error {
	types := make([]string, len(operands))
	for i, v := range operands {
		types[i] = v.Type()
	}

	return ErrTypeMismatch.
		Wrapf("unsupported operand type(s) for %s: %s", op, strings.Join(types, " and ")).
		With(
			slog.String("operator", op.String()),
			slog.Any("operands", types),
		)
}

// binary applies an arithmetic or comparison operator.
func binary(op Kind, l, r Value) (Value, error) {
	switch op {
	case KindPlus:
		if ls, ok := l.(String); ok {
			if rs, ok := r.(String); ok {
				return ls + rs, nil
			}
		}

		return arith(op, l, r)

	case KindMinus, KindStar, KindSlash, KindPercent, KindCaret:
		return arith(op, l, r)

	case KindEq, KindNe:
		eq, err := equal(op, l, r)
		if err != nil {
			return nil, err
		}

		return Boolean(eq == (op == KindEq)), nil

	case KindLt, KindLe, KindGt, KindGe:
		c, err := compare(op, l, r)
		if err != nil {
			return nil, err
		}

		switch op {
		case KindLt:
			return Boolean(c < 0), nil
		case KindLe:
			return Boolean(c <= 0), nil
		case KindGt:
			return Boolean(c > 0), nil
		default:
			return Boolean(c >= 0), nil
		}
	}

	return nil, mismatch(op, l, r)
}

// unary applies a prefix operator.
func unary(op Kind, v Value) (Value, error) {
	switch op {
	case KindNot:
		return Boolean(!Truthy(v)), nil

	case KindMinus:
		switch v := v.(type) {
		case Integer:
			return -v, nil
		case Float:
			return -v, nil
		}
	}

	return nil, mismatch(op, v)
}

// arith promotes mixed Integer/Float operands to Float.
func arith(op Kind, l, r Value) (Value, error) {
	switch l := l.(type) {
	case Integer:
		switch r := r.(type) {
		case Integer:
			return intArith(op, l, r)
		case Float:
			return floatArith(op, Float(l), r)
		}

	case Float:
		switch r := r.(type) {
		case Integer:
			return floatArith(op, l, Float(r))
		case Float:
			return floatArith(op, l, r)
		}
	}

	return nil, mismatch(op, l, r)
}

func intArith(op Kind, l, r Integer) (Value, error) {
	switch op {
	case KindPlus:
		return l + r, nil
	case KindMinus:
		return l - r, nil
	case KindStar:
		return l * r, nil
	case KindSlash:
		if r == 0 {
			return nil, ErrDivisionByZero
		}

		return l / r, nil
	case KindPercent:
		if r == 0 {
			return nil, ErrDivisionByZero
		}

		return l % r, nil
	case KindCaret:
		if r < 0 {
			return floatArith(op, Float(l), Float(r))
		}

		return ipow(l, r), nil
	}

	return nil, mismatch(op, l, r)
}

func floatArith(op Kind, l, r Float) (Value, error) {
	switch op {
	case KindPlus:
		return l + r, nil
	case KindMinus:
		return l - r, nil
	case KindStar:
		return l * r, nil
	case KindSlash:
		if r == 0 {
			return nil, ErrDivisionByZero
		}

		return l / r, nil
	case KindPercent:
		if r == 0 {
			return nil, ErrDivisionByZero
		}

		return Float(math.Mod(float64(l), float64(r))), nil
	case KindCaret:
		// Zero to a negative power is a division by zero in disguise.
		if l == 0 && r < 0 {
			return nil, ErrDivisionByZero
		}

		return Float(math.Pow(float64(l), float64(r))), nil
	}

	return nil, mismatch(op, l, r)
}

// ipow computes b^e for e >= 0 by repeated squaring, wrapping on overflow.
func ipow(b, e Integer) Integer {
	result := Integer(1)

	for e > 0 {
		if e&1 == 1 {
			result *= b
		}

		b *= b
		e >>= 1
	}

	return result
}

// equal reports whether two values of compatible types are equal.
func equal(op Kind, l, r Value) (bool, error) {
	switch l := l.(type) {
	case Integer:
		switch r := r.(type) {
		case Integer:
			return l == r, nil
		case Float:
			return Float(l) == r, nil
		}

	case Float:
		switch r := r.(type) {
		case Integer:
			return l == Float(r), nil
		case Float:
			return l == r, nil
		}

	case String:
		if r, ok := r.(String); ok {
			return l == r, nil
		}

	case Boolean:
		if r, ok := r.(Boolean); ok {
			return l == r, nil
		}

	case Nil:
		if _, ok := r.(Nil); ok {
			return true, nil
		}

	case *Function:
		if r, ok := r.(*Function); ok {
			return l == r, nil
		}
	}

	return false, mismatch(op, l, r)
}

// compare orders two values of compatible types.
func compare(op Kind, l, r Value) (int, error) {
	switch l := l.(type) {
	case Integer:
		switch r := r.(type) {
		case Integer:
			return cmp.Compare(l, r), nil
		case Float:
			return cmp.Compare(Float(l), r), nil
		}

	case Float:
		switch r := r.(type) {
		case Integer:
			return cmp.Compare(l, Float(r)), nil
		case Float:
			return cmp.Compare(l, r), nil
		}

	case String:
		if r, ok := r.(String); ok {
			return strings.Compare(string(l), string(r)), nil
		}

	case Boolean:
		if r, ok := r.(Boolean); ok {
			return cmp.Compare(boolRank(l), boolRank(r)), nil
		}
	}

	return 0, mismatch(op, l, r)
}

func boolRank(b Boolean) int {
	if b {
		return 1
	}

	return 0
}
