package petri

import (
	"fmt"
	"strings"
)

// Signature is the color of a place: the kinds of its token fields, in order.
// An empty signature is the unit color.
type Signature []Kind

var colorNames = map[string]Kind{
	"int":     IntKind,
	"integer": IntKind,
	"real":    RealKind,
	"double":  RealKind,
	"float":   RealKind,
	"bool":    BoolKind,
	"boolean": BoolKind,
	"string":  StringKind,
	"str":     StringKind,
}

// ParseSignature reads color names joined by '*'. A suffix after '_' is
// ignored, so int_0 is an int. "unit" and "" are the unit color.
func ParseSignature(s string) (Signature, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "unit" {
		return Signature{}, nil
	}
	parts := strings.Split(s, "*")
	sig := make(Signature, len(parts))
	for i, part := range parts {
		name, _, _ := strings.Cut(strings.TrimSpace(part), "_")
		k, ok := colorNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown color %q", ErrSyntax, part)
		}
		sig[i] = k
	}
	return sig, nil
}

func (s Signature) String() string {
	if len(s) == 0 {
		return "unit"
	}
	names := make([]string, len(s))
	for i, k := range s {
		names[i] = k.String()
	}
	return strings.Join(names, "*")
}

// Accepts reports whether t has exactly the fields the signature asks for.
func (s Signature) Accepts(t Token) bool {
	if len(s) != len(t) {
		return false
	}
	for i, k := range s {
		if t[i].Kind() != k {
			return false
		}
	}
	return true
}

// Place is a typed token container.
type Place struct {
	ID     int
	Name   string
	Colors Signature
}

// NewPlace creates a place with the given color names, e.g. "int*string".
func NewPlace(id int, colors string) (*Place, error) {
	sig, err := ParseSignature(colors)
	if err != nil {
		return nil, err
	}
	return &Place{
		ID:     id,
		Name:   fmt.Sprintf("P%d", id),
		Colors: sig,
	}, nil
}

func (p *Place) String() string {
	return p.Name
}

// Check verifies every token in ms against the place's color.
func (p *Place) Check(ms Multiset) error {
	for _, e := range ms {
		if !p.Colors.Accepts(e.Token) {
			return &SignatureError{Place: p.ID, Token: e.Token, Want: p.Colors}
		}
	}
	return nil
}
