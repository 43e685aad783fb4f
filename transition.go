package petri

import "fmt"

// Transition consumes one token per input arc and produces one token per
// output arc when its guard holds.
type Transition struct {
	ID      int
	Name    string
	Guard   Expression
	Inputs  []*Arc
	Outputs []*Arc
}

// NewTransition creates a transition. An empty guard always holds.
func NewTransition(id int, guard ...string) *Transition {
	t := &Transition{
		ID:   id,
		Name: fmt.Sprintf("T%d", id),
	}
	if len(guard) > 0 {
		t.Guard = ParseExpression(guard[0])
	}
	return t
}

func (t *Transition) WithInputs(arcs ...*Arc) *Transition {
	t.Inputs = append(t.Inputs, arcs...)
	return t
}

func (t *Transition) WithOutputs(arcs ...*Arc) *Transition {
	t.Outputs = append(t.Outputs, arcs...)
	return t
}

func (t *Transition) InPlaces() []int {
	ids := make([]int, len(t.Inputs))
	for i, a := range t.Inputs {
		ids[i] = a.Place
	}
	return ids
}

func (t *Transition) OutPlaces() []int {
	ids := make([]int, len(t.Outputs))
	for i, a := range t.Outputs {
		ids[i] = a.Place
	}
	return ids
}

// CanFire evaluates the guard under vars.
func (t *Transition) CanFire(in *Interpreter, vars map[string]string) (bool, error) {
	return in.EvalBool(t.Guard, vars)
}

func (t *Transition) String() string {
	return t.Name
}

// Binding is one way to enable a transition: the token chosen from each input
// arc, in arc order, and the variables they bind.
type Binding struct {
	Tokens []Token
	Vars   map[string]string
}

func (b Binding) String() string {
	return fmt.Sprintf("%v", b.Vars)
}
