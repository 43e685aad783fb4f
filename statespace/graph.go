package statespace

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sort"

	"github.com/zeebo/blake3"

	"github.com/jt05610/statespace"
)

var ErrUnknownState = errors.New("unknown state")

// State is a registered marking. Its id and marking never change.
type State struct {
	ID          int
	Key         string
	Fingerprint string
	Marking     petri.Marking
}

// Edge is one firing: transition Transition took Src to Dst.
type Edge struct {
	Src        int
	Dst        int
	Transition int
}

func (e Edge) String() string {
	return fmt.Sprintf("%d -T%d-> %d", e.Src, e.Transition, e.Dst)
}

// Graph is a reachability graph. State ids are assigned from 1 in discovery
// order.
type Graph struct {
	states []*State
	byKey  map[string]int
	out    map[int][]Edge
	edges  []Edge
	seen   map[Edge]bool
}

func NewGraph() *Graph {
	return &Graph{
		byKey: make(map[string]int),
		out:   make(map[int][]Edge),
		seen:  make(map[Edge]bool),
	}
}

func fingerprint(key string) string {
	h := blake3.New()
	_, _ = h.Write([]byte(key))
	return hex.EncodeToString(h.Sum(nil))
}

// AddState registers m and returns its id. fresh is false when a structurally
// equal marking was already registered. The graph keeps its own copy of m.
func (g *Graph) AddState(m petri.Marking) (id int, fresh bool) {
	key := m.Key()
	if id, ok := g.byKey[key]; ok {
		return id, false
	}
	id = len(g.states) + 1
	g.states = append(g.states, &State{
		ID:          id,
		Key:         key,
		Fingerprint: fingerprint(key),
		Marking:     m.Clone(),
	})
	g.byKey[key] = id
	return id, true
}

// GetState looks m up without registering it.
func (g *Graph) GetState(m petri.Marking) (int, bool) {
	id, ok := g.byKey[m.Key()]
	return id, ok
}

func (g *Graph) State(id int) (*State, bool) {
	if id < 1 || id > len(g.states) {
		return nil, false
	}
	return g.states[id-1], true
}

// AddEdge records that transition t leads from src to dst. Parallel edges
// with different transitions are all kept; repeating an edge is a no-op.
func (g *Graph) AddEdge(src, dst, t int) error {
	if _, ok := g.State(src); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownState, src)
	}
	if _, ok := g.State(dst); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownState, dst)
	}
	e := Edge{Src: src, Dst: dst, Transition: t}
	if g.seen[e] {
		return nil
	}
	g.seen[e] = true
	g.edges = append(g.edges, e)
	g.out[src] = append(g.out[src], e)
	return nil
}

// Nodes returns every state id in ascending order.
func (g *Graph) Nodes() []int {
	ids := make([]int, len(g.states))
	for i := range g.states {
		ids[i] = i + 1
	}
	return ids
}

func (g *Graph) Len() int {
	return len(g.states)
}

// Edges returns every edge in the order it was added.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// Out returns the edges leaving id.
func (g *Graph) Out(id int) []Edge {
	return append([]Edge(nil), g.out[id]...)
}

// Transitions returns the ids of every transition leading from src to dst.
func (g *Graph) Transitions(src, dst int) []int {
	var tt []int
	for _, e := range g.out[src] {
		if e.Dst == dst {
			tt = append(tt, e.Transition)
		}
	}
	sort.Ints(tt)
	return tt
}

// Dead returns the states with no outgoing edges.
func (g *Graph) Dead() []int {
	var ids []int
	for _, id := range g.Nodes() {
		if len(g.out[id]) == 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
