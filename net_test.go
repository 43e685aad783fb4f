package petri_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jt05610/statespace"
)

func mustPlace(t testing.TB, id int, colors string) *petri.Place {
	p, err := petri.NewPlace(id, colors)
	require.NoError(t, err)
	return p
}

func mustMultiset(t testing.TB, s string) petri.Multiset {
	ms, err := petri.ParseMultiset(s)
	require.NoError(t, err)
	return ms
}

// counterNet moves an integer from place 0 to place 1, adding one, while the
// integer is positive.
func counterNet(t testing.TB, initial string) *petri.Net {
	places := []*petri.Place{mustPlace(t, 0, "int"), mustPlace(t, 1, "int")}
	inc := petri.NewTransition(0, "a 0 >").
		WithInputs(petri.InputArc(0, "a")).
		WithOutputs(petri.OutputArc(1, "a 1 +"))
	net, err := petri.New(places, []*petri.Transition{inc}, petri.Marking{0: mustMultiset(t, initial)})
	require.NoError(t, err)
	return net
}

func TestNet_BindingsAndFire(t *testing.T) {
	net := counterNet(t, "2x(1), 1x(-1), 1x(5)")
	tr := net.Transition(0)
	bb := net.Bindings(net.Initial, tr)
	require.Len(t, bb, 2)
	assert.Equal(t, "1", bb[0].Vars["a"])
	assert.Equal(t, "5", bb[1].Vars["a"])

	next, err := net.Fire(net.Initial, tr, bb[1])
	require.NoError(t, err)
	assert.Equal(t, "0:[1x(-1),2x(1)];1:[1x(6)]", next.Key())
	assert.Equal(t, "0:[1x(-1),2x(1),1x(5)]", net.Initial.Key())
}

func TestNet_GuardRejectsNegative(t *testing.T) {
	net := counterNet(t, "1x(-1)")
	tr := net.Transition(0)
	assert.False(t, net.Enabled(net.Initial, tr))

	before := net.Initial.Key()
	_, err := net.Fire(net.Initial, tr, petri.Binding{
		Tokens: []petri.Token{petri.NewToken(petri.Int(-1))},
		Vars:   map[string]string{"a": "-1"},
	})
	assert.ErrorIs(t, err, petri.ErrNotEnabled)
	assert.Equal(t, before, net.Initial.Key())

	succ, err := net.Successors(net.Initial)
	require.NoError(t, err)
	assert.Empty(t, succ)
}

func TestNet_FireUnverifiedBindingIsInconsistent(t *testing.T) {
	net := counterNet(t, "1x(1)")
	_, err := net.Fire(net.Initial, net.Transition(0), petri.Binding{
		Tokens: []petri.Token{petri.NewToken(petri.Int(9))},
		Vars:   map[string]string{"a": "9"},
	})
	assert.ErrorIs(t, err, petri.ErrInconsistent)
	assert.ErrorIs(t, err, petri.ErrTokenUnderflow)
}

func TestNet_CartesianBindings(t *testing.T) {
	places := []*petri.Place{
		mustPlace(t, 0, "int"),
		mustPlace(t, 1, "string"),
		mustPlace(t, 2, "int*string"),
	}
	pair := petri.NewTransition(0, "n 1 !=").
		WithInputs(petri.InputArc(0, "n"), petri.InputArc(1, "s")).
		WithOutputs(petri.OutputArc(2, "n", "s"))
	net, err := petri.New(places, []*petri.Transition{pair}, petri.Marking{
		0: mustMultiset(t, "(1) (2) (3)"),
		1: mustMultiset(t, "('x') 2x('y')"),
	})
	require.NoError(t, err)
	bb := net.Bindings(net.Initial, pair)
	assert.Len(t, bb, 4)

	succ, err := net.Successors(net.Initial)
	require.NoError(t, err)
	require.Len(t, succ, 4)
	assert.Equal(t, "0:[1x(1),1x(3)];1:[2x('y')];2:[1x(2,'x')]", succ[0].Marking.Key())
}

func TestNet_SamePlaceTwiceNeedsMultiplicity(t *testing.T) {
	places := []*petri.Place{mustPlace(t, 0, "int"), mustPlace(t, 1, "int")}
	join := petri.NewTransition(0).
		WithInputs(petri.InputArc(0, "a"), petri.InputArc(0, "b")).
		WithOutputs(petri.OutputArc(1, "a b +"))
	single, err := petri.New(places, []*petri.Transition{join}, petri.Marking{0: mustMultiset(t, "(4)")})
	require.NoError(t, err)
	assert.False(t, single.Enabled(single.Initial, join))

	double, err := petri.New(places, []*petri.Transition{join}, petri.Marking{0: mustMultiset(t, "2x(4)")})
	require.NoError(t, err)
	succ, err := double.Successors(double.Initial)
	require.NoError(t, err)
	require.Len(t, succ, 1)
	assert.Equal(t, "1:[1x(8)]", succ[0].Marking.Key())
}

func TestNet_SharedVariableMustAgree(t *testing.T) {
	places := []*petri.Place{mustPlace(t, 0, "int"), mustPlace(t, 1, "int"), mustPlace(t, 2, "unit")}
	match := petri.NewTransition(0).
		WithInputs(petri.InputArc(0, "k"), petri.InputArc(1, "k")).
		WithOutputs(petri.OutputArc(2))
	net, err := petri.New(places, []*petri.Transition{match}, petri.Marking{
		0: mustMultiset(t, "(1) (2)"),
		1: mustMultiset(t, "(2) (3)"),
	})
	require.NoError(t, err)
	bb := net.Bindings(net.Initial, match)
	require.Len(t, bb, 1)
	assert.Equal(t, "2", bb[0].Vars["k"])
}

func TestNet_OutputErrorRejectsBinding(t *testing.T) {
	places := []*petri.Place{mustPlace(t, 0, "int"), mustPlace(t, 1, "int")}
	div := petri.NewTransition(0).
		WithInputs(petri.InputArc(0, "a")).
		WithOutputs(petri.OutputArc(1, "10 a /"))
	net, err := petri.New(places, []*petri.Transition{div}, petri.Marking{0: mustMultiset(t, "(0) (5)")})
	require.NoError(t, err)
	succ, err := net.Successors(net.Initial)
	require.NoError(t, err)
	require.Len(t, succ, 1)
	assert.Equal(t, "0:[1x(0)];1:[1x(2)]", succ[0].Marking.Key())
}

func TestNet_OutputMustMatchColor(t *testing.T) {
	places := []*petri.Place{mustPlace(t, 0, "int"), mustPlace(t, 1, "string")}
	bad := petri.NewTransition(0).
		WithInputs(petri.InputArc(0, "a")).
		WithOutputs(petri.OutputArc(1, "a"))
	net, err := petri.New(places, []*petri.Transition{bad}, petri.Marking{0: mustMultiset(t, "(1)")})
	require.NoError(t, err)
	bb := net.Bindings(net.Initial, bad)
	require.Len(t, bb, 1)
	_, err = net.Fire(net.Initial, bad, bb[0])
	var se *petri.SignatureError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, petri.ErrType)
}

func TestNew_Invalid(t *testing.T) {
	p0 := mustPlace(t, 0, "int")
	for name, tc := range map[string]struct {
		places  []*petri.Place
		tt      []*petri.Transition
		initial petri.Marking
	}{
		"duplicate place": {places: []*petri.Place{p0, p0}},
		"unknown input": {
			places: []*petri.Place{p0},
			tt:     []*petri.Transition{petri.NewTransition(0).WithInputs(petri.InputArc(3, "a"))},
		},
		"output arity": {
			places: []*petri.Place{p0},
			tt:     []*petri.Transition{petri.NewTransition(0).WithOutputs(petri.OutputArc(0, "1", "2"))},
		},
		"marking color": {
			places:  []*petri.Place{p0},
			initial: petri.Marking{0: mustMultiset(t, "('a')")},
		},
		"marking place": {
			places:  []*petri.Place{p0},
			initial: petri.Marking{4: mustMultiset(t, "(1)")},
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := petri.New(tc.places, tc.tt, tc.initial)
			assert.ErrorIs(t, err, petri.ErrInvalidNet)
		})
	}
}

func TestParseSignature(t *testing.T) {
	sig, err := petri.ParseSignature("int_0*string*REAL*bool")
	require.NoError(t, err)
	assert.Equal(t, petri.Signature{petri.IntKind, petri.StringKind, petri.RealKind, petri.BoolKind}, sig)
	assert.Equal(t, "int*string*real*bool", sig.String())

	unit, err := petri.ParseSignature("unit")
	require.NoError(t, err)
	assert.Empty(t, unit)

	_, err = petri.ParseSignature("int*colour")
	assert.ErrorIs(t, err, petri.ErrSyntax)
}

// ExampleNet fires the only enabled transition of a small net.
func ExampleNet() {
	src, _ := petri.NewPlace(0, "int")
	dst, _ := petri.NewPlace(1, "int")
	double := petri.NewTransition(0, "x 10 <").
		WithInputs(petri.InputArc(0, "x")).
		WithOutputs(petri.OutputArc(1, "x 2 *"))
	initial, _ := petri.ParseMultiset("(3) (12)")
	net, err := petri.New([]*petri.Place{src, dst}, []*petri.Transition{double}, petri.Marking{0: initial})
	if err != nil {
		panic(err)
	}
	succ, err := net.Successors(net.Initial)
	if err != nil {
		panic(err)
	}
	for _, s := range succ {
		fmt.Println(s.Transition, s.Marking)
	}
	// Output:
	// T0 0:[1x(12)];1:[1x(6)]
}
