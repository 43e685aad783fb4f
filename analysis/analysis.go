package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/mat"

	"github.com/jt05610/statespace"
	"github.com/jt05610/statespace/statespace"
)

// Incidence returns the transition by place matrix of token flow: each output
// arc adds one and each input arc takes one. Rows follow n.Transitions and
// columns follow n.Places.
func Incidence(n *petri.Net) *mat.Dense {
	if len(n.Places) == 0 || len(n.Transitions) == 0 {
		return &mat.Dense{}
	}
	col := make(map[int]int, len(n.Places))
	for j, p := range n.Places {
		col[p.ID] = j
	}
	inc := mat.NewDense(len(n.Transitions), len(n.Places), nil)
	for i, t := range n.Transitions {
		for _, a := range t.Inputs {
			j := col[a.Place]
			inc.Set(i, j, inc.At(i, j)-1)
		}
		for _, a := range t.Outputs {
			j := col[a.Place]
			inc.Set(i, j, inc.At(i, j)+1)
		}
	}
	return inc
}

// FiringVector is the one-hot row vector selecting transition index t.
func FiringVector(n *petri.Net, t int) *mat.Dense {
	v := make([]float64, len(n.Transitions))
	v[t] = 1
	return mat.NewDense(1, len(n.Transitions), v)
}

// TokenCounts is the number of tokens in each place of m, ordered like
// n.Places.
func TokenCounts(n *petri.Net, m petri.Marking) *mat.Dense {
	v := make([]float64, len(n.Places))
	for j, p := range n.Places {
		v[j] = float64(m[p.ID].Size())
	}
	return mat.NewDense(1, len(v), v)
}

// Directed converts g to a gonum graph with one node per state. Self loops
// are left out since they never matter for reachability.
func Directed(g *statespace.Graph) *simple.DirectedGraph {
	dg := simple.NewDirectedGraph()
	for _, id := range g.Nodes() {
		dg.AddNode(simple.Node(id))
	}
	for _, e := range g.Edges() {
		if e.Src == e.Dst {
			continue
		}
		dg.SetEdge(dg.NewEdge(simple.Node(e.Src), simple.Node(e.Dst)))
	}
	return dg
}

func ids(nodes []graph.Node) []int {
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = int(n.ID())
	}
	return out
}

// Deadlocks returns the states in which no transition is enabled.
func Deadlocks(g *statespace.Graph) []int {
	return g.Dead()
}

// TerminalComponents returns the strongly connected components that no edge
// leaves. Every run of the net ends up in one of them. Components and their
// members are sorted.
func TerminalComponents(g *statespace.Graph) [][]int {
	dg := Directed(g)
	var out [][]int
	for _, scc := range topo.TarjanSCC(dg) {
		members := make(map[int64]bool, len(scc))
		for _, n := range scc {
			members[n.ID()] = true
		}
		closed := true
		for _, n := range scc {
			to := dg.From(n.ID())
			for to.Next() {
				if !members[to.Node().ID()] {
					closed = false
					break
				}
			}
			if !closed {
				break
			}
		}
		if closed {
			c := ids(scc)
			sort.Ints(c)
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i][0] < out[j][0]
	})
	return out
}

// ShortestPath returns a path with the fewest firings from one state to
// another, or false when to cannot be reached.
func ShortestPath(g *statespace.Graph, from, to int) ([]int, bool) {
	if _, ok := g.State(from); !ok {
		return nil, false
	}
	if _, ok := g.State(to); !ok {
		return nil, false
	}
	if from == to {
		return []int{from}, true
	}
	dg := Directed(g)
	pt := path.DijkstraFrom(dg.Node(int64(from)), dg)
	nodes, w := pt.To(int64(to))
	if math.IsInf(w, 1) || len(nodes) == 0 {
		return nil, false
	}
	return ids(nodes), true
}

// Bounds returns, per place id, the largest number of tokens the place holds
// in any state of g.
func Bounds(n *petri.Net, g *statespace.Graph) map[int]int {
	b := make(map[int]int, len(n.Places))
	for _, p := range n.Places {
		b[p.ID] = 0
	}
	for _, id := range g.Nodes() {
		st, _ := g.State(id)
		for p, ms := range st.Marking {
			if s := ms.Size(); s > b[p] {
				b[p] = s
			}
		}
	}
	return b
}

// Report summarizes a reachability graph.
type Report struct {
	States    int
	Edges     int
	Saturated bool
	Deadlocks []int
	Terminal  [][]int
	Bounds    map[int]int
	// Unfired lists transitions that never fire.
	Unfired []int
}

func Analyze(n *petri.Net, res *statespace.Result) *Report {
	g := res.Graph
	fired := make(map[int]bool)
	edges := g.Edges()
	for _, e := range edges {
		fired[e.Transition] = true
	}
	var unfired []int
	for _, t := range n.Transitions {
		if !fired[t.ID] {
			unfired = append(unfired, t.ID)
		}
	}
	return &Report{
		States:    g.Len(),
		Edges:     len(edges),
		Saturated: res.Saturated,
		Deadlocks: Deadlocks(g),
		Terminal:  TerminalComponents(g),
		Bounds:    Bounds(n, g),
		Unfired:   unfired,
	}
}
