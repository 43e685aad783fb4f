package petri

import "fmt"

// Arc connects a transition to one of its places. On an input arc Variables
// names the fields of the consumed token; on an output arc Expressions holds
// one postfix expression per field of the produced token.
type Arc struct {
	Place       int
	Variables   []string
	Expressions []Expression
}

func InputArc(place int, variables ...string) *Arc {
	return &Arc{
		Place:     place,
		Variables: variables,
	}
}

// OutputArc parses each field expression.
func OutputArc(place int, expressions ...string) *Arc {
	ee := make([]Expression, len(expressions))
	for i, e := range expressions {
		ee[i] = ParseExpression(e)
	}
	return &Arc{
		Place:       place,
		Expressions: ee,
	}
}

// TakeToken removes one t from the arc's place.
func (a *Arc) TakeToken(m Marking, t Token) error {
	return m.RemoveToken(a.Place, t, 1)
}

// Produce evaluates the output expressions into a new token.
func (a *Arc) Produce(in *Interpreter, vars map[string]string) (Token, error) {
	tok := make(Token, len(a.Expressions))
	for i, e := range a.Expressions {
		v, err := in.Eval(e, vars)
		if err != nil {
			return nil, fmt.Errorf("output to place %d field %d: %w", a.Place, i, err)
		}
		tok[i] = v
	}
	return tok, nil
}

// PlaceToken adds one t to the arc's place.
func (a *Arc) PlaceToken(m Marking, t Token) {
	m.AddToken(a.Place, t, 1)
}

func (a *Arc) String() string {
	return fmt.Sprintf("P%d", a.Place)
}
