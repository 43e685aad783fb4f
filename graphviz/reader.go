package graphviz

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz/cgraph"

	"github.com/jt05610/statespace"
	"github.com/jt05610/statespace/statespace"
)

// Reader rebuilds a reachability graph from DOT written by Writer. States are
// numbered in node order, which is the order Writer created them in.
type Reader struct {
	ids map[string]int
}

func Loader() *Reader {
	return &Reader{}
}

func parseLabel(label string) (petri.Marking, error) {
	name, key, ok := strings.Cut(label, " ")
	if !ok || !strings.HasPrefix(name, "s") {
		return nil, fmt.Errorf("%w: state label %q", petri.ErrSyntax, label)
	}
	return petri.ParseMarking(strings.TrimSpace(key))
}

func (r *Reader) Load(reader io.Reader) (*statespace.Graph, error) {
	b, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	g, err := cgraph.ParseBytes(b)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = g.Close()
	}()
	sg := statespace.NewGraph()
	r.ids = make(map[string]int)
	for node := g.FirstNode(); node != nil; node = g.NextNode(node) {
		m, err := parseLabel(node.Get("label"))
		if err != nil {
			return nil, err
		}
		id, _ := sg.AddState(m)
		r.ids[node.Name()] = id
	}
	for node := g.FirstNode(); node != nil; node = g.NextNode(node) {
		for edge := g.FirstOut(node); edge != nil; edge = g.NextOut(edge) {
			label := edge.Get("label")
			t, err := strconv.Atoi(strings.TrimPrefix(label, "T"))
			if err != nil {
				return nil, fmt.Errorf("%w: edge label %q", petri.ErrSyntax, label)
			}
			if err := sg.AddEdge(r.ids[node.Name()], r.ids[edge.Node().Name()], t); err != nil {
				return nil, err
			}
		}
	}
	return sg, nil
}
