package yaml_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jt05610/statespace"
	"github.com/jt05610/statespace/petrifile"
	"github.com/jt05610/statespace/petrifile/json"
	"github.com/jt05610/statespace/petrifile/yaml"
	"github.com/jt05610/statespace/statespace"
)

func load(t *testing.T) *petri.Net {
	t.Helper()
	in, err := os.Open(filepath.Join("testdata", "laps.yaml"))
	require.NoError(t, err)
	defer func() {
		_ = in.Close()
	}()
	n, err := (&yaml.Service{}).Load(context.Background(), in)
	require.NoError(t, err)
	return n
}

func TestService_Load(t *testing.T) {
	n := load(t)
	assert.Equal(t, "laps", n.Name)
	assert.Len(t, n.Places, 3)
	assert.Len(t, n.Transitions, 2)
	assert.Equal(t, "0:[2x(1),1x(5)]", n.Initial.Key())
	assert.Equal(t, "int*string", n.Place(1).Colors.String())
	assert.Empty(t, n.Place(2).Colors)

	t0, t1 := n.Transition(0), n.Transition(1)
	assert.Equal(t, "a 3 <", t0.Guard.String())
	assert.True(t, t1.Guard.Empty())
	assert.Equal(t, []string{"n", "s"}, t1.Inputs[0].Variables)
	require.Len(t, t0.Outputs[0].Expressions, 2)
	assert.Equal(t, "'lap'", t0.Outputs[0].Expressions[1].String())
	assert.Equal(t, []int{0, 2}, t1.OutPlaces())
	assert.Empty(t, t1.Outputs[1].Expressions)
}

func TestService_SaveRoundTrip(t *testing.T) {
	n := load(t)
	var buf bytes.Buffer
	srv := &yaml.Service{}
	require.NoError(t, srv.Save(context.Background(), &buf, n))
	back, err := srv.Load(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, petrifile.FromNet(n), petrifile.FromNet(back))
}

func TestService_LoadRejectsInvalidNets(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown place":   "places: {0: int}\ninPlaces: [[3]]\n",
		"bad color":       "places: {0: colour}\n",
		"bad marking":     "places: {0: int}\nmarkings: {0: \"(1\"}\n",
		"wrong color":     "places: {0: int}\nmarkings: {0: \"('a')\"}\n",
		"too many fields": "places: {0: int}\noutPlaces: [[0]]\nexpressions: {0: {0: \"1, 2\"}}\n",
		"count":           "transitions: 1\nplaces: {0: int}\ninPlaces: [[0], [0]]\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := (&yaml.Service{}).Load(context.Background(), strings.NewReader(doc))
			assert.ErrorIs(t, err, petri.ErrInvalidNet)
		})
	}
}

func TestRegistry(t *testing.T) {
	reg := petrifile.NewRegistry("testdata").
		WithService(&yaml.Service{}, "yaml", ".yml").
		WithService(&json.Service{}, ".json")
	n, err := reg.Build(context.Background(), "laps.yaml")
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "laps.json")
	require.NoError(t, reg.Write(context.Background(), out, n))
	back, err := reg.Build(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, petrifile.FromNet(n), petrifile.FromNet(back))

	_, err = reg.Service("net.toml")
	assert.ErrorIs(t, err, petrifile.ErrUnsupported)
	_, err = reg.Build(context.Background(), "missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExamples(t *testing.T) {
	for name, want := range map[string]struct{ states, edges int }{
		"mutex.yaml":     {3, 4},
		"countdown.yaml": {4, 3},
	} {
		t.Run(name, func(t *testing.T) {
			n, err := petrifile.NewRegistry(filepath.Join("..", "..", "examples")).
				WithService(&yaml.Service{}, "yaml").
				Build(context.Background(), name)
			require.NoError(t, err)
			res, err := statespace.NewExplorer(n).Explore(context.Background())
			require.NoError(t, err)
			assert.Equal(t, want.states, res.Graph.Len())
			assert.Len(t, res.Graph.Edges(), want.edges)
		})
	}
}
