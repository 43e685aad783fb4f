package petrifile_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jt05610/statespace/petrifile"
)

func TestFields_Unmarshal(t *testing.T) {
	var doc struct {
		A petrifile.Fields `yaml:"a" json:"a"`
		B petrifile.Fields `yaml:"b" json:"b"`
		C petrifile.Fields `yaml:"c" json:"c"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: x, y\nb: [\"p 1 +\", q]\nc: \"\"\n"), &doc))
	assert.Equal(t, petrifile.Fields{"x", "y"}, doc.A)
	assert.Equal(t, petrifile.Fields{"p 1 +", "q"}, doc.B)
	assert.Empty(t, doc.C)

	require.NoError(t, json.Unmarshal([]byte(`{"a":"u,v","b":["w"],"c":""}`), &doc))
	assert.Equal(t, petrifile.Fields{"u", "v"}, doc.A)
	assert.Equal(t, petrifile.Fields{"w"}, doc.B)
	assert.Empty(t, doc.C)
}

func TestDefinition_Net(t *testing.T) {
	def := &petrifile.Definition{
		Name:      "sink",
		Places:    map[int]string{0: "int"},
		InPlaces:  [][]int{{0}},
		OutPlaces: [][]int{{}},
		Markings:  map[int]string{0: "1x(1)"},
		Variables: map[int]map[int]petrifile.Fields{0: {0: {"a"}}},
	}
	n, err := def.Net()
	require.NoError(t, err)
	assert.Equal(t, "sink", n.Name)
	require.Len(t, n.Transitions, 1)
	assert.Equal(t, 1, len(n.Bindings(n.Initial, n.Transitions[0])))

	back := petrifile.FromNet(n)
	assert.Equal(t, def.Places, back.Places)
	assert.Equal(t, def.Markings, back.Markings)
	assert.Equal(t, 1, back.Transitions)
}
