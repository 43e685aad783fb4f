package petri

import (
	"fmt"
	"strings"
)

// Token is an ordered tuple of typed field values. Tokens are treated as
// immutable once created.
type Token []Value

// NewToken builds a token from its fields.
func NewToken(fields ...Value) Token {
	return Token(fields)
}

// ParseToken parses a literal such as (1,'abc',True). The unit token is ().
func ParseToken(s string) (Token, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return nil, fmt.Errorf("%w: token %q is not parenthesized", ErrSyntax, s)
	}
	body := s[1 : len(s)-1]
	if strings.TrimSpace(body) == "" {
		return Token{}, nil
	}
	fields, err := splitFields(body)
	if err != nil {
		return nil, err
	}
	tok := make(Token, len(fields))
	for i, f := range fields {
		c, err := Classify(f)
		if err != nil {
			return nil, err
		}
		if c == Variable {
			return nil, fmt.Errorf("%w: token field %q is not a literal", ErrSyntax, f)
		}
		if tok[i], err = literalValue(c, f); err != nil {
			return nil, err
		}
	}
	return tok, nil
}

// splitFields splits on commas outside single quotes and trims each field.
func splitFields(body string) ([]string, error) {
	var (
		fields []string
		quoted bool
		start  int
	)
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\'':
			quoted = !quoted
		case ',':
			if !quoted {
				fields = append(fields, strings.TrimSpace(body[start:i]))
				start = i + 1
			}
		}
	}
	if quoted {
		return nil, fmt.Errorf("%w: unterminated string in %q", ErrSyntax, body)
	}
	return append(fields, strings.TrimSpace(body[start:])), nil
}

// String is the token literal, which is also its canonical key.
func (t Token) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, v := range t {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.Literal())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (t Token) Equal(o Token) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if !t[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Compare orders tokens field by field; a shorter prefix sorts first.
func (t Token) Compare(o Token) int {
	for i := 0; i < len(t) && i < len(o); i++ {
		if c := t[i].Compare(o[i]); c != 0 {
			return c
		}
	}
	return cmpInt(int64(len(t)), int64(len(o)))
}

// Bind zips variable names with the token's field literals into vars. It
// fails when the arity differs or a name is already bound to another value.
func (t Token) Bind(names []string, vars map[string]string) bool {
	if len(names) != len(t) {
		return false
	}
	for i, name := range names {
		lit := t[i].Literal()
		if prev, ok := vars[name]; ok && prev != lit {
			return false
		}
		vars[name] = lit
	}
	return true
}
