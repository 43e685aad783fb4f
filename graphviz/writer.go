package graphviz

import (
	"fmt"
	"io"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/jt05610/statespace/statespace"
)

// Writer renders a reachability graph. Each state is a node named s<id>
// labelled with its id and marking key; each edge is labelled with the
// transition that fired.
type Writer struct {
	*Config
	g       *cgraph.Graph
	mapping map[int]*cgraph.Node
}

func (w *Writer) writeState(st *statespace.State, dead bool) error {
	node, err := w.g.CreateNode(fmt.Sprintf("s%d", st.ID))
	if err != nil {
		return err
	}
	node.SetShape(cgraph.EllipseShape)
	if st.ID == 1 {
		node.SetShape(cgraph.DoubleCircleShape)
	}
	node.SetLabel(fmt.Sprintf("s%d %s", st.ID, st.Key))
	node.Set("fontname", string(w.Font))
	if dead {
		node.Set("color", "red")
	}
	w.mapping[st.ID] = node
	return nil
}

func (w *Writer) writeEdge(i int, e statespace.Edge) error {
	src := w.mapping[e.Src]
	dst := w.mapping[e.Dst]
	edge, err := w.g.CreateEdge(fmt.Sprintf("e%d", i), src, dst)
	if err != nil {
		return err
	}
	edge.SetLabel(fmt.Sprintf("T%d", e.Transition))
	edge.Set("fontname", string(w.Font))
	return nil
}

func (w *Writer) Flush(out io.Writer, sg *statespace.Graph) error {
	gv := graphviz.New()
	defer func() {
		_ = gv.Close()
	}()
	g, err := gv.Graph(graphviz.Name(w.Name))
	if err != nil {
		return err
	}
	defer func() {
		_ = g.Close()
	}()
	g.SetRankDir(cgraph.RankDir(w.RankDir))
	w.g = g
	w.mapping = make(map[int]*cgraph.Node, sg.Len())
	dead := make(map[int]bool)
	for _, id := range sg.Dead() {
		dead[id] = true
	}
	for _, id := range sg.Nodes() {
		st, _ := sg.State(id)
		if err := w.writeState(st, dead[id]); err != nil {
			return err
		}
	}
	for i, e := range sg.Edges() {
		if err := w.writeEdge(i, e); err != nil {
			return err
		}
	}
	return gv.Render(w.g, w.Format, out)
}

type Font string

// Or appends a fallback font.
func (f Font) Or(other Font) Font {
	return f + "," + other
}

const (
	Helvetica Font = "Helvetica"
	SansSerif Font = "sans-serif"
	Times     Font = "Times"
)

type RankDir string

const (
	LeftToRight RankDir = "LR"
	RightToLeft RankDir = "RL"
	TopToBottom RankDir = "TB"
	BottomToTop RankDir = "BT"
)

type Config struct {
	Name string
	Font
	RankDir
	Format graphviz.Format
}

func New(config *Config) *Writer {
	if config.Name == "" {
		config.Name = "statespace"
	}
	if config.Font == "" {
		config.Font = Helvetica
	}
	if config.RankDir == "" {
		config.RankDir = TopToBottom
	}
	if config.Format == "" {
		config.Format = graphviz.XDOT
	}
	return &Writer{
		Config: config,
	}
}
