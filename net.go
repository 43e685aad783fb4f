package petri

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var ErrNotEnabled = errors.New("transition not enabled")

// Net is a colored Petri net with its initial marking.
type Net struct {
	Name        string
	Places      []*Place
	Transitions []*Transition
	Initial     Marking
	places      map[int]*Place
	interp      *Interpreter
	logger      *zap.Logger
}

type Option func(*Net)

func WithLogger(logger *zap.Logger) Option {
	return func(n *Net) {
		n.logger = logger
	}
}

func WithName(name string) Option {
	return func(n *Net) {
		n.Name = name
	}
}

// New checks the net's structure and initial marking. Any problem is an
// ErrInvalidNet.
func New(places []*Place, transitions []*Transition, initial Marking, opts ...Option) (*Net, error) {
	if initial == nil {
		initial = NewMarking()
	}
	n := &Net{
		Name:        "net",
		Places:      places,
		Transitions: transitions,
		Initial:     initial.Clone(),
		places:      make(map[int]*Place, len(places)),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.interp = NewInterpreter(n.logger)
	if err := n.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNet, err)
	}
	return n, nil
}

func (n *Net) validate() error {
	for _, p := range n.Places {
		if _, seen := n.places[p.ID]; seen {
			return fmt.Errorf("duplicate place %d", p.ID)
		}
		n.places[p.ID] = p
	}
	seen := make(map[int]bool, len(n.Transitions))
	for _, t := range n.Transitions {
		if seen[t.ID] {
			return fmt.Errorf("duplicate transition %d", t.ID)
		}
		seen[t.ID] = true
		for _, a := range t.Inputs {
			p, ok := n.places[a.Place]
			if !ok {
				return fmt.Errorf("transition %d reads unknown place %d", t.ID, a.Place)
			}
			if len(a.Variables) != len(p.Colors) {
				n.logger.Warn("input arc arity differs from place color",
					zap.Int("transition", t.ID),
					zap.Int("place", p.ID),
					zap.Int("variables", len(a.Variables)),
					zap.Int("fields", len(p.Colors)),
				)
			}
		}
		for _, a := range t.Outputs {
			p, ok := n.places[a.Place]
			if !ok {
				return fmt.Errorf("transition %d writes unknown place %d", t.ID, a.Place)
			}
			if len(a.Expressions) != len(p.Colors) {
				return fmt.Errorf("transition %d produces %d fields for place %d of color %s", t.ID, len(a.Expressions), p.ID, p.Colors)
			}
		}
	}
	for id, ms := range n.Initial {
		p, ok := n.places[id]
		if !ok {
			return fmt.Errorf("marking of unknown place %d", id)
		}
		if err := p.Check(ms); err != nil {
			return err
		}
	}
	return nil
}

func (n *Net) Place(id int) *Place {
	return n.places[id]
}

func (n *Net) Transition(id int) *Transition {
	for _, t := range n.Transitions {
		if t.ID == id {
			return t
		}
	}
	return nil
}

type usage struct {
	place int
	key   string
}

// Bindings enumerates every satisfying binding of t in m: one token per
// input arc, drawn from the distinct tokens of its place in canonical order.
// Candidates whose guard fails or cannot be evaluated are dropped.
func (n *Net) Bindings(m Marking, t *Transition) []Binding {
	var (
		out    []Binding
		chosen = make([]Token, len(t.Inputs))
		used   = make(map[usage]int)
	)
	var walk func(i int, vars map[string]string)
	walk = func(i int, vars map[string]string) {
		if i == len(t.Inputs) {
			ok, err := t.CanFire(n.interp, vars)
			if err != nil {
				n.logger.Debug("guard rejected binding",
					zap.Int("transition", t.ID),
					zap.Any("binding", vars),
					zap.Error(err),
				)
				return
			}
			if ok {
				out = append(out, Binding{
					Tokens: append([]Token(nil), chosen...),
					Vars:   vars,
				})
			}
			return
		}
		arc := t.Inputs[i]
		for _, e := range m[arc.Place].Entries() {
			u := usage{place: arc.Place, key: e.Token.String()}
			if used[u] >= e.Count {
				continue
			}
			next := make(map[string]string, len(vars)+len(arc.Variables))
			for k, v := range vars {
				next[k] = v
			}
			if !e.Token.Bind(arc.Variables, next) {
				continue
			}
			chosen[i] = e.Token
			used[u]++
			walk(i+1, next)
			used[u]--
		}
	}
	walk(0, map[string]string{})
	return out
}

func (n *Net) Enabled(m Marking, t *Transition) bool {
	return len(n.Bindings(m, t)) > 0
}

// Fire applies b to a copy of m and returns the successor marking; m is never
// modified. Output expressions are evaluated before anything is consumed, so
// an evaluation error leaves nothing half done. Running out of a bound token
// is an ErrInconsistent.
func (n *Net) Fire(m Marking, t *Transition, b Binding) (Marking, error) {
	if len(b.Tokens) != len(t.Inputs) {
		return nil, fmt.Errorf("%w: binding has %d tokens for %d inputs of %s", ErrInconsistent, len(b.Tokens), len(t.Inputs), t)
	}
	ok, err := t.CanFire(n.interp, b.Vars)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s under %s", ErrNotEnabled, t, b)
	}
	produced := make([]Token, len(t.Outputs))
	for i, a := range t.Outputs {
		tok, err := a.Produce(n.interp, b.Vars)
		if err != nil {
			return nil, err
		}
		if p := n.places[a.Place]; p != nil && !p.Colors.Accepts(tok) {
			return nil, &SignatureError{Place: p.ID, Token: tok, Want: p.Colors}
		}
		produced[i] = tok
	}
	next := m.Clone()
	for i, a := range t.Inputs {
		if err := a.TakeToken(next, b.Tokens[i]); err != nil {
			return nil, fmt.Errorf("%w: firing %s: %w", ErrInconsistent, t, err)
		}
	}
	for i, a := range t.Outputs {
		a.PlaceToken(next, produced[i])
	}
	return next, nil
}

// Successor is the result of firing one transition under one binding.
type Successor struct {
	Transition *Transition
	Binding    Binding
	Marking    Marking
}

// Successors fires every enabled transition once for each of its bindings.
// Bindings whose outputs fail to evaluate are skipped; an inconsistency is
// returned.
func (n *Net) Successors(m Marking) ([]Successor, error) {
	var out []Successor
	for _, t := range n.Transitions {
		for _, b := range n.Bindings(m, t) {
			next, err := n.Fire(m, t, b)
			if err != nil {
				if errors.Is(err, ErrInconsistent) {
					return nil, err
				}
				n.logger.Debug("output rejected binding",
					zap.Int("transition", t.ID),
					zap.Stringer("binding", b),
					zap.Error(err),
				)
				continue
			}
			out = append(out, Successor{
				Transition: t,
				Binding:    b,
				Marking:    next,
			})
		}
	}
	return out, nil
}
