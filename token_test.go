package petri_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jt05610/statespace"
)

func TestParseToken(t *testing.T) {
	tok, err := petri.ParseToken("(1, 'a,b', True, 2.5)")
	require.NoError(t, err)
	require.Len(t, tok, 4)
	assert.Equal(t, petri.IntKind, tok[0].Kind())
	assert.Equal(t, "a,b", tok[1].Text())
	assert.True(t, tok[2].Bool())
	assert.Equal(t, 2.5, tok[3].Real())
	assert.Equal(t, "(1,'a,b',True,2.5)", tok.String())

	unit, err := petri.ParseToken("()")
	require.NoError(t, err)
	assert.Empty(t, unit)
}

func TestParseToken_Errors(t *testing.T) {
	for _, s := range []string{"1", "(1", "(x)", "('a)", "(1,,2)"} {
		t.Run(s, func(t *testing.T) {
			_, err := petri.ParseToken(s)
			assert.ErrorIs(t, err, petri.ErrSyntax)
		})
	}
}

func TestToken_Bind(t *testing.T) {
	tok := petri.NewToken(petri.Int(1), petri.String("x"))
	vars := map[string]string{}
	require.True(t, tok.Bind([]string{"a", "b"}, vars))
	assert.Equal(t, map[string]string{"a": "1", "b": "'x'"}, vars)

	assert.False(t, tok.Bind([]string{"a"}, map[string]string{}))
	assert.False(t, tok.Bind([]string{"a", "b"}, map[string]string{"a": "2"}))
	assert.True(t, tok.Bind([]string{"a", "b"}, map[string]string{"a": "1"}))
}

func TestParseMultiset(t *testing.T) {
	ms, err := petri.ParseMultiset("2x(1,'a'), (2,'b'):3 x (1,'a')")
	require.NoError(t, err)
	a, _ := petri.ParseToken("(1,'a')")
	b, _ := petri.ParseToken("(2,'b')")
	assert.Equal(t, 5, ms.Count(a))
	assert.Equal(t, 1, ms.Count(b))
	assert.Equal(t, 6, ms.Size())

	empty, err := petri.ParseMultiset("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = petri.ParseMultiset("2y(1)")
	assert.ErrorIs(t, err, petri.ErrSyntax)
}

func TestMultiset_CanonicalRoundTrip(t *testing.T) {
	one, err := petri.ParseMultiset("1x(3), 2x(1), 1x(2)")
	require.NoError(t, err)
	two, err := petri.ParseMultiset("(2) 2x(1) (3)")
	require.NoError(t, err)
	assert.Equal(t, one.String(), two.String())
	assert.Equal(t, "2x(1),1x(2),1x(3)", one.String())

	back, err := petri.ParseMultiset(one.String())
	require.NoError(t, err)
	assert.True(t, back.Equal(one))
	assert.True(t, back.Equal(two))
}

func TestMarking_RemoveTokenUnderflow(t *testing.T) {
	m := petri.NewMarking()
	tok := petri.NewToken(petri.Int(1))
	m.AddToken(0, tok, 1)
	err := m.RemoveToken(0, tok, 2)
	assert.ErrorIs(t, err, petri.ErrTokenUnderflow)
	assert.Equal(t, 1, m[0].Count(tok))

	require.NoError(t, m.RemoveToken(0, tok, 1))
	assert.Empty(t, m[0])
	assert.ErrorIs(t, m.RemoveToken(7, tok, 1), petri.ErrTokenUnderflow)
}

func TestMarking_KeyIgnoresOrder(t *testing.T) {
	a := petri.NewMarking()
	b := petri.NewMarking()
	x := petri.NewToken(petri.Int(1))
	y := petri.NewToken(petri.Int(2))
	a.AddToken(0, x, 1)
	a.AddToken(0, y, 2)
	a.AddToken(1, x, 1)
	b.AddToken(1, x, 1)
	b.AddToken(0, y, 1)
	b.AddToken(0, x, 1)
	b.AddToken(0, y, 1)
	b.AddToken(2, y, 1)
	require.NoError(t, b.RemoveToken(2, y, 1))
	assert.Equal(t, a.Key(), b.Key())
	assert.True(t, a.Equal(b))
}

func TestMarking_CloneIsIndependent(t *testing.T) {
	m := petri.NewMarking()
	tok := petri.NewToken(petri.Int(1))
	m.AddToken(0, tok, 1)
	c := m.Clone()
	c.AddToken(0, tok, 1)
	assert.Equal(t, 1, m[0].Count(tok))
	assert.Equal(t, 2, c[0].Count(tok))
}

func ExampleMultiset_String() {
	ms, err := petri.ParseMultiset("1x('b'), 2x('a')")
	if err != nil {
		panic(err)
	}
	fmt.Println(ms)
	// Output:
	// 2x('a'),1x('b')
}

func TestParseMarking(t *testing.T) {
	m := petri.NewMarking()
	m.AddToken(0, petri.NewToken(petri.String("a;b]")), 2)
	m.AddToken(3, petri.NewToken(petri.Int(1), petri.Bool(true)), 1)
	m.AddToken(4, petri.NewToken(), 1)
	back, err := petri.ParseMarking(m.Key())
	require.NoError(t, err)
	assert.True(t, m.Equal(back))

	empty, err := petri.ParseMarking("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, bad := range []string{"0", "x:[(1)]", "0:(1)", "0:[(1)", "0:[(1)]1:[(2)]"} {
		_, err := petri.ParseMarking(bad)
		assert.ErrorIs(t, err, petri.ErrSyntax, bad)
	}
}

func TestMarking_NegativeZeroHasOneKey(t *testing.T) {
	first, err := petri.ParseMultiset("(0.0) (-0.0) (1.5)")
	require.NoError(t, err)
	assert.Equal(t, "2x(0.0),1x(1.5)", first.String())

	g := petri.Marking{0: first}
	for i := 0; i < 50; i++ {
		ms, err := petri.ParseMultiset("(-0.0) (1.5) (0.0)")
		require.NoError(t, err)
		m := petri.Marking{0: ms}
		require.Equal(t, g.Key(), m.Key())
		back, err := petri.ParseMarking(m.Key())
		require.NoError(t, err)
		assert.True(t, m.Equal(back))
	}
}

func TestMultiset_EntriesOrderIsStable(t *testing.T) {
	ms, err := petri.ParseMultiset("(1.5,'b') (1.5,'a') (-2.0,'c') (0.0,'d')")
	require.NoError(t, err)
	want := ms.String()
	for i := 0; i < 50; i++ {
		assert.Equal(t, want, ms.Clone().String())
	}
	assert.Equal(t, "1x(-2.0,'c'),1x(0.0,'d'),1x(1.5,'a'),1x(1.5,'b')", want)
}
