package petri

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Multiset holds tokens with their multiplicities, keyed by token literal.
// Entries never have a count below one.
type Multiset map[string]Entry

type Entry struct {
	Token Token
	Count int
}

// ParseMultiset parses segments like "2x(1,'a'), (3,'b')". The count and its
// x are optional; segments may be separated by commas, colons or spaces.
func ParseMultiset(s string) (Multiset, error) {
	ms := make(Multiset)
	i := 0
	for {
		for i < len(s) && (s[i] == ',' || s[i] == ':' || unicode.IsSpace(rune(s[i]))) {
			i++
		}
		if i >= len(s) {
			return ms, nil
		}
		n := 1
		if s[i] != '(' {
			x := strings.IndexByte(s[i:], 'x')
			if x < 0 {
				return nil, fmt.Errorf("%w: expected count or token at %q", ErrSyntax, s[i:])
			}
			count, err := strconv.Atoi(strings.TrimSpace(s[i : i+x]))
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: bad count %q", ErrSyntax, s[i:i+x])
			}
			n = count
			i += x + 1
			for i < len(s) && unicode.IsSpace(rune(s[i])) {
				i++
			}
		}
		end, err := tokenEnd(s, i)
		if err != nil {
			return nil, err
		}
		tok, err := ParseToken(s[i:end])
		if err != nil {
			return nil, err
		}
		ms.Add(tok, n)
		i = end
	}
}

// tokenEnd returns the index just past the ')' closing the token at s[i].
func tokenEnd(s string, i int) (int, error) {
	if i >= len(s) || s[i] != '(' {
		return 0, fmt.Errorf("%w: expected '(' at %q", ErrSyntax, s[i:])
	}
	quoted := false
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\'':
			quoted = !quoted
		case ')':
			if !quoted {
				return j + 1, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unterminated token %q", ErrSyntax, s[i:])
}

func (ms Multiset) Add(t Token, n int) {
	if n <= 0 {
		return
	}
	k := t.String()
	e := ms[k]
	if e.Token == nil {
		e.Token = t
	}
	e.Count += n
	ms[k] = e
}

func (ms Multiset) Remove(t Token, n int) error {
	k := t.String()
	e := ms[k]
	if e.Count < n {
		return fmt.Errorf("%w: want %d of %s, have %d", ErrTokenUnderflow, n, k, e.Count)
	}
	e.Count -= n
	if e.Count == 0 {
		delete(ms, k)
		return nil
	}
	ms[k] = e
	return nil
}

func (ms Multiset) Count(t Token) int {
	return ms[t.String()].Count
}

// Size is the total number of tokens, counting multiplicity.
func (ms Multiset) Size() int {
	n := 0
	for _, e := range ms {
		n += e.Count
	}
	return n
}

// Entries returns the distinct tokens in canonical order.
func (ms Multiset) Entries() []Entry {
	ee := make([]Entry, 0, len(ms))
	for _, e := range ms {
		ee = append(ee, e)
	}
	sort.Slice(ee, func(i, j int) bool {
		if c := ee[i].Token.Compare(ee[j].Token); c != 0 {
			return c < 0
		}
		return ee[i].Token.String() < ee[j].Token.String()
	})
	return ee
}

func (ms Multiset) Clone() Multiset {
	c := make(Multiset, len(ms))
	for k, e := range ms {
		c[k] = e
	}
	return c
}

func (ms Multiset) Equal(o Multiset) bool {
	if len(ms) != len(o) {
		return false
	}
	for k, e := range ms {
		if o[k].Count != e.Count {
			return false
		}
	}
	return true
}

// String is the canonical multiset literal; ParseMultiset reads it back.
func (ms Multiset) String() string {
	ee := ms.Entries()
	parts := make([]string, len(ee))
	for i, e := range ee {
		parts[i] = strconv.Itoa(e.Count) + "x" + e.Token.String()
	}
	return strings.Join(parts, ",")
}

// Marking maps place ids to their tokens.
type Marking map[int]Multiset

func NewMarking() Marking {
	return make(Marking)
}

func (m Marking) AddToken(place int, t Token, n int) {
	ms, ok := m[place]
	if !ok {
		ms = make(Multiset)
		m[place] = ms
	}
	ms.Add(t, n)
}

func (m Marking) RemoveToken(place int, t Token, n int) error {
	ms, ok := m[place]
	if !ok {
		return fmt.Errorf("%w: place %d is empty", ErrTokenUnderflow, place)
	}
	return ms.Remove(t, n)
}

// Clone copies every multiset so the result can be changed freely.
func (m Marking) Clone() Marking {
	c := make(Marking, len(m))
	for p, ms := range m {
		c[p] = ms.Clone()
	}
	return c
}

func (m Marking) places() []int {
	ids := make([]int, 0, len(m))
	for p, ms := range m {
		if len(ms) > 0 {
			ids = append(ids, p)
		}
	}
	sort.Ints(ids)
	return ids
}

// Key is the canonical, iteration-order independent serialization of the
// marking. Empty places are left out.
func (m Marking) Key() string {
	var sb strings.Builder
	for i, p := range m.places() {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.Itoa(p))
		sb.WriteString(":[")
		sb.WriteString(m[p].String())
		sb.WriteByte(']')
	}
	return sb.String()
}

func (m Marking) String() string { return m.Key() }

func (m Marking) Equal(o Marking) bool {
	return m.Key() == o.Key()
}

// ParseMarking reads a marking back from its Key.
func ParseMarking(key string) (Marking, error) {
	m := NewMarking()
	i := 0
	for i < len(key) {
		colon := strings.IndexByte(key[i:], ':')
		if colon < 0 {
			return nil, fmt.Errorf("%w: expected place id at %q", ErrSyntax, key[i:])
		}
		p, err := strconv.Atoi(key[i : i+colon])
		if err != nil {
			return nil, fmt.Errorf("%w: bad place id %q", ErrSyntax, key[i:i+colon])
		}
		i += colon + 1
		if i >= len(key) || key[i] != '[' {
			return nil, fmt.Errorf("%w: expected '[' after place %d", ErrSyntax, p)
		}
		end := -1
		quoted := false
		for j := i + 1; j < len(key) && end < 0; j++ {
			switch key[j] {
			case '\'':
				quoted = !quoted
			case ']':
				if !quoted {
					end = j
				}
			}
		}
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated place %d", ErrSyntax, p)
		}
		ms, err := ParseMultiset(key[i+1 : end])
		if err != nil {
			return nil, err
		}
		if len(ms) > 0 {
			m[p] = ms
		}
		i = end + 1
		if i < len(key) {
			if key[i] != ';' {
				return nil, fmt.Errorf("%w: expected ';' at %q", ErrSyntax, key[i:])
			}
			i++
		}
	}
	return m, nil
}
