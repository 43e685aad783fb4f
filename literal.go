package petri

import (
	"fmt"
	"regexp"
	"strconv"
)

// Class is the result of classifying raw token text.
type Class int

const (
	IntLiteral Class = iota
	RealLiteral
	BoolLiteral
	StringLiteral
	Variable
)

var (
	intPattern      = regexp.MustCompile(`^([+-]?[1-9][0-9]*|0)$`)
	realPattern     = regexp.MustCompile(`^[+-]?([0-9]+\.[0-9]*|\.[0-9]+)$`)
	variablePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

// Classify checks, in order, for an integer, real, boolean, quoted string or
// variable name.
func Classify(text string) (Class, error) {
	switch {
	case intPattern.MatchString(text):
		return IntLiteral, nil
	case realPattern.MatchString(text):
		return RealLiteral, nil
	case text == "True" || text == "False":
		return BoolLiteral, nil
	case len(text) >= 2 && text[0] == '\'' && text[len(text)-1] == '\'':
		return StringLiteral, nil
	case variablePattern.MatchString(text):
		return Variable, nil
	}
	return 0, fmt.Errorf("%w: cannot classify %q", ErrSyntax, text)
}

// ParseLiteral converts literal text to a Value. Variable names are rejected.
func ParseLiteral(text string) (Value, error) {
	c, err := Classify(text)
	if err != nil {
		return Value{}, err
	}
	return literalValue(c, text)
}

func literalValue(c Class, text string) (Value, error) {
	switch c {
	case IntLiteral:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		return Int(n), nil
	case RealLiteral:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		return Real(f), nil
	case BoolLiteral:
		return Bool(text == "True"), nil
	case StringLiteral:
		return String(text[1 : len(text)-1]), nil
	}
	return Value{}, fmt.Errorf("%w: %q is a variable, not a literal", ErrSyntax, text)
}
