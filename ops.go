package petri

import (
	"fmt"
	"math"
	"strings"
)

func typeErr(op string, vv ...Value) error {
	kinds := make([]string, len(vv))
	for i, v := range vv {
		kinds[i] = v.kind.String()
	}
	return fmt.Errorf("%w: %s on (%s)", ErrType, op, strings.Join(kinds, ", "))
}

func arithmetic(op string, a, b Value) (Value, error) {
	if a.kind != b.kind || (a.kind != IntKind && a.kind != RealKind) {
		return Value{}, typeErr(op, a, b)
	}
	if a.kind == IntKind {
		switch op {
		case "+":
			return Int(a.i + b.i), nil
		case "-":
			return Int(a.i - b.i), nil
		case "*":
			return Int(a.i * b.i), nil
		case "/", "%":
			if b.i == 0 {
				return Value{}, ErrDivision
			}
			if op == "/" {
				return Int(a.i / b.i), nil
			}
			return Int(a.i % b.i), nil
		}
	}
	var r float64
	switch op {
	case "+":
		r = a.r + b.r
	case "-":
		r = a.r - b.r
	case "*":
		r = a.r * b.r
	case "/", "%":
		if b.r == 0 {
			return Value{}, ErrDivision
		}
		if op == "/" {
			r = a.r / b.r
		} else {
			r = math.Mod(a.r, b.r)
		}
	default:
		return Value{}, ErrUnknownOperator
	}
	// Inf and NaN have no literal form.
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return Value{}, fmt.Errorf("%w: %s gives %v", ErrRange, op, r)
	}
	return Real(r), nil
}

func logical(op string, a, b Value) (Value, error) {
	if a.kind != BoolKind || b.kind != BoolKind {
		return Value{}, typeErr(op, a, b)
	}
	switch op {
	case "&&":
		return Bool(a.b && b.b), nil
	case "||":
		return Bool(a.b || b.b), nil
	case "^":
		return Bool(a.b != b.b), nil
	}
	return Value{}, ErrUnknownOperator
}

func unaryLogical(op string, a Value) (Value, error) {
	if a.kind != BoolKind {
		return Value{}, typeErr(op, a)
	}
	if op == "isTrue" {
		return a, nil
	}
	return Bool(!a.b), nil
}

// compare implements == != > >= < <=. Ordering between strings, and between
// booleans, is always false; only equality is meaningful for those kinds.
func compare(op string, a, b Value) (Value, error) {
	if a.kind != b.kind {
		return Value{}, typeErr(op, a, b)
	}
	switch op {
	case "==":
		return Bool(a.Equal(b)), nil
	case "!=":
		return Bool(!a.Equal(b)), nil
	}
	if a.kind == StringKind || a.kind == BoolKind {
		return Bool(false), nil
	}
	if a.kind == RealKind && (math.IsNaN(a.r) || math.IsNaN(b.r)) {
		return Bool(false), nil
	}
	c := a.Compare(b)
	switch op {
	case ">":
		return Bool(c > 0), nil
	case ">=":
		return Bool(c >= 0), nil
	case "<":
		return Bool(c < 0), nil
	case "<=":
		return Bool(c <= 0), nil
	}
	return Value{}, ErrUnknownOperator
}

func unaryString(op string, a Value) (Value, error) {
	if a.kind != StringKind {
		return Value{}, typeErr(op, a)
	}
	if op == "isEmpty" {
		return Bool(a.s == ""), nil
	}
	return String(strings.TrimSpace(a.s)), nil
}

func appendString(a, b Value) (Value, error) {
	if a.kind != StringKind || b.kind != StringKind {
		return Value{}, typeErr("append", a, b)
	}
	return String(a.s + b.s), nil
}

// substr takes runes [start, end).
func substr(s, start, end Value) (Value, error) {
	if s.kind != StringKind || start.kind != IntKind || end.kind != IntKind {
		return Value{}, typeErr("substr", s, start, end)
	}
	rr := []rune(s.s)
	if start.i < 0 || end.i < start.i || end.i > int64(len(rr)) {
		return Value{}, fmt.Errorf("%w: substr [%d, %d) of %d runes", ErrRange, start.i, end.i, len(rr))
	}
	return String(string(rr[start.i:end.i])), nil
}

func ifThenElse(cond, then, els Value) (Value, error) {
	if cond.kind != BoolKind {
		return Value{}, typeErr("if", cond, then, els)
	}
	if cond.b {
		return then, nil
	}
	return els, nil
}
