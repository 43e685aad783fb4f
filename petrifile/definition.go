package petrifile

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jt05610/statespace"
)

// Definition is the document form of a net. Transitions are numbered from 0
// and index InPlaces, OutPlaces and Guards. Variables and Expressions are
// keyed by transition id, then place id.
type Definition struct {
	Petri       Version                `yaml:"petri,omitempty" json:"petri,omitempty"`
	Name        string                 `yaml:"name,omitempty" json:"name,omitempty"`
	Transitions int                    `yaml:"transitions,omitempty" json:"transitions,omitempty"`
	Places      map[int]string         `yaml:"places" json:"places"`
	InPlaces    [][]int                `yaml:"inPlaces" json:"inPlaces"`
	OutPlaces   [][]int                `yaml:"outPlaces" json:"outPlaces"`
	Markings    map[int]string         `yaml:"markings,omitempty" json:"markings,omitempty"`
	Guards      []string               `yaml:"guards,omitempty" json:"guards,omitempty"`
	Variables   map[int]map[int]Fields `yaml:"variables,omitempty" json:"variables,omitempty"`
	Expressions map[int]map[int]Fields `yaml:"expressions,omitempty" json:"expressions,omitempty"`
}

// Fields is a list of variable names or output expressions. It may be written
// as a list or as one comma separated string.
type Fields []string

func splitFields(s string) Fields {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	ff := make(Fields, len(parts))
	for i, p := range parts {
		ff[i] = strings.TrimSpace(p)
	}
	return ff
}

func (f *Fields) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*f = splitFields(value.Value)
		return nil
	}
	var list []string
	if err := value.Decode(&list); err != nil {
		return err
	}
	*f = list
	return nil
}

func (f *Fields) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = splitFields(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*f = list
	return nil
}

func (d *Definition) transitionCount() (int, error) {
	n := len(d.InPlaces)
	for _, l := range []int{len(d.OutPlaces), len(d.Guards)} {
		if l > n {
			n = l
		}
	}
	if d.Transitions == 0 {
		return n, nil
	}
	if n > d.Transitions {
		return 0, fmt.Errorf("%w: %d transitions declared but %d described", petri.ErrInvalidNet, d.Transitions, n)
	}
	return d.Transitions, nil
}

// Net builds and validates the net the definition describes.
func (d *Definition) Net(opts ...petri.Option) (*petri.Net, error) {
	ids := make([]int, 0, len(d.Places))
	for id := range d.Places {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	places := make([]*petri.Place, len(ids))
	for i, id := range ids {
		p, err := petri.NewPlace(id, d.Places[id])
		if err != nil {
			return nil, fmt.Errorf("%w: place %d: %w", petri.ErrInvalidNet, id, err)
		}
		places[i] = p
	}
	count, err := d.transitionCount()
	if err != nil {
		return nil, err
	}
	tt := make([]*petri.Transition, count)
	for id := range tt {
		t := petri.NewTransition(id)
		if id < len(d.Guards) {
			t.Guard = petri.ParseExpression(d.Guards[id])
		}
		if id < len(d.InPlaces) {
			for _, p := range d.InPlaces[id] {
				t.WithInputs(petri.InputArc(p, d.Variables[id][p]...))
			}
		}
		if id < len(d.OutPlaces) {
			for _, p := range d.OutPlaces[id] {
				t.WithOutputs(petri.OutputArc(p, d.Expressions[id][p]...))
			}
		}
		tt[id] = t
	}
	initial := petri.NewMarking()
	for id, lit := range d.Markings {
		ms, err := petri.ParseMultiset(lit)
		if err != nil {
			return nil, fmt.Errorf("%w: marking of place %d: %w", petri.ErrInvalidNet, id, err)
		}
		if len(ms) > 0 {
			initial[id] = ms
		}
	}
	if d.Name != "" {
		opts = append([]petri.Option{petri.WithName(d.Name)}, opts...)
	}
	return petri.New(places, tt, initial, opts...)
}

// FromNet is the inverse of Net.
func FromNet(n *petri.Net) *Definition {
	d := &Definition{
		Petri:       V1,
		Name:        n.Name,
		Transitions: len(n.Transitions),
		Places:      make(map[int]string, len(n.Places)),
		InPlaces:    make([][]int, len(n.Transitions)),
		OutPlaces:   make([][]int, len(n.Transitions)),
		Markings:    make(map[int]string),
		Guards:      make([]string, len(n.Transitions)),
		Variables:   make(map[int]map[int]Fields),
		Expressions: make(map[int]map[int]Fields),
	}
	for _, p := range n.Places {
		d.Places[p.ID] = p.Colors.String()
	}
	for id, ms := range n.Initial {
		if len(ms) > 0 {
			d.Markings[id] = ms.String()
		}
	}
	for i, t := range n.Transitions {
		d.Guards[i] = t.Guard.String()
		d.InPlaces[i] = t.InPlaces()
		d.OutPlaces[i] = t.OutPlaces()
		for _, a := range t.Inputs {
			if len(a.Variables) == 0 {
				continue
			}
			if d.Variables[i] == nil {
				d.Variables[i] = make(map[int]Fields)
			}
			d.Variables[i][a.Place] = a.Variables
		}
		for _, a := range t.Outputs {
			if len(a.Expressions) == 0 {
				continue
			}
			if d.Expressions[i] == nil {
				d.Expressions[i] = make(map[int]Fields)
			}
			ff := make(Fields, len(a.Expressions))
			for j, e := range a.Expressions {
				ff[j] = e.String()
			}
			d.Expressions[i][a.Place] = ff
		}
	}
	return d
}
