package query

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/jt05610/statespace/statespace"
)

// Env is what a filter sees of one state.
//
//	Dead && Count[1] == 3
//	"(2,'b')" in Tokens[0]
type Env struct {
	ID      int
	Key     string
	Initial bool
	Dead    bool
	Out     int
	Size    int
	Count   map[int]int
	Tokens  map[int][]string
}

// EnvFor describes state id of g.
func EnvFor(g *statespace.Graph, id int) (Env, error) {
	st, ok := g.State(id)
	if !ok {
		return Env{}, fmt.Errorf("%w: %d", statespace.ErrUnknownState, id)
	}
	env := Env{
		ID:      id,
		Key:     st.Key,
		Initial: id == 1,
		Out:     len(g.Out(id)),
		Count:   make(map[int]int, len(st.Marking)),
		Tokens:  make(map[int][]string, len(st.Marking)),
	}
	env.Dead = env.Out == 0
	for p, ms := range st.Marking {
		n := ms.Size()
		env.Count[p] = n
		env.Size += n
		env.Tokens[p] = []string{}
		for _, e := range ms.Entries() {
			env.Tokens[p] = append(env.Tokens[p], e.Token.String())
		}
	}
	return env, nil
}

// Filter is a compiled boolean expression over Env.
type Filter struct {
	src     string
	program *vm.Program
}

func Compile(src string) (*Filter, error) {
	program, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, err
	}
	return &Filter{src: src, program: program}, nil
}

func (f *Filter) String() string {
	return f.src
}

func (f *Filter) Match(env Env) (bool, error) {
	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, err
	}
	return out.(bool), nil
}

// places lists every place that holds tokens in some state of g.
func places(g *statespace.Graph) map[int]bool {
	pp := make(map[int]bool)
	for _, id := range g.Nodes() {
		st, _ := g.State(id)
		for p := range st.Marking {
			pp[p] = true
		}
	}
	return pp
}

// Select returns the ids of the states of g the filter matches. Places empty
// in a state still appear in its Env with no tokens.
func (f *Filter) Select(g *statespace.Graph) ([]int, error) {
	var ids []int
	pp := places(g)
	for _, id := range g.Nodes() {
		env, err := EnvFor(g, id)
		if err != nil {
			return nil, err
		}
		for p := range pp {
			if _, ok := env.Tokens[p]; !ok {
				env.Count[p] = 0
				env.Tokens[p] = []string{}
			}
		}
		ok, err := f.Match(env)
		if err != nil {
			return nil, fmt.Errorf("state %d: %w", id, err)
		}
		if ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
