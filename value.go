package petri

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the variant held by a Value.
type Kind int

const (
	IntKind Kind = iota
	RealKind
	BoolKind
	StringKind
)

func (k Kind) String() string {
	switch k {
	case IntKind:
		return "int"
	case RealKind:
		return "real"
	case BoolKind:
		return "bool"
	case StringKind:
		return "string"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a tagged union over the four primitive colors. The zero Value is
// Integer 0.
type Value struct {
	kind Kind
	i    int64
	r    float64
	b    bool
	s    string
}

func Int(v int64) Value     { return Value{kind: IntKind, i: v} }
func Bool(v bool) Value     { return Value{kind: BoolKind, b: v} }
func String(v string) Value { return Value{kind: StringKind, s: v} }

// Real folds negative zero into zero so that equal reals share one literal.
func Real(v float64) Value {
	if v == 0 {
		v = 0
	}
	return Value{kind: RealKind, r: v}
}

func (v Value) Kind() Kind { return v.kind }

// Int coerces the value to an integer. Strings that do not parse yield 0.
func (v Value) Int() int64 {
	switch v.kind {
	case RealKind:
		return int64(v.r)
	case BoolKind:
		if v.b {
			return 1
		}
		return 0
	case StringKind:
		n, _ := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)
		return n
	}
	return v.i
}

func (v Value) Real() float64 {
	switch v.kind {
	case IntKind:
		return float64(v.i)
	case BoolKind:
		if v.b {
			return 1
		}
		return 0
	case StringKind:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		return f
	}
	return v.r
}

func (v Value) Bool() bool {
	switch v.kind {
	case IntKind:
		return v.i != 0
	case RealKind:
		return v.r != 0
	case StringKind:
		return v.s == "True" || v.s == "true"
	}
	return v.b
}

// Text is the bare textual form: strings without quotes, booleans as
// True/False.
func (v Value) Text() string {
	switch v.kind {
	case IntKind:
		return strconv.FormatInt(v.i, 10)
	case RealKind:
		return formatReal(v.r)
	case BoolKind:
		if v.b {
			return "True"
		}
		return "False"
	}
	return v.s
}

// Literal renders the value so that Classify gives back the same kind.
func (v Value) Literal() string {
	if v.kind == StringKind {
		return "'" + v.s + "'"
	}
	return v.Text()
}

func (v Value) String() string { return v.Literal() }

func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// Equal is structural: kinds must agree.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case IntKind:
		return v.i == o.i
	case RealKind:
		return v.r == o.r
	case BoolKind:
		return v.b == o.b
	}
	return v.s == o.s
}

// Compare is a total order used for canonical serialization: by kind first,
// then by value.
func (v Value) Compare(o Value) int {
	if v.kind != o.kind {
		return cmpInt(int64(v.kind), int64(o.kind))
	}
	switch v.kind {
	case IntKind:
		return cmpInt(v.i, o.i)
	case RealKind:
		switch {
		case v.r < o.r:
			return -1
		case v.r > o.r:
			return 1
		}
		return 0
	case BoolKind:
		return cmpInt(v.Int(), o.Int())
	}
	return strings.Compare(v.s, o.s)
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
