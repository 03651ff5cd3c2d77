package rank

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewListPlaceholders(t *testing.T) {
	l := NewList()
	for _, e := range l {
		assert.Equal(t, Placeholder, e.Term)
		assert.Equal(t, -1, e.Frequency)
		assert.False(t, e.Filled())
	}
	assert.Empty(t, l.Entries())
}

func TestRecordEvictsLowest(t *testing.T) {
	l := NewList()
	for f := 1; f <= 6; f++ {
		l.Record(strconv.Itoa(f), "fix", f)
	}

	assert.Equal(t, [Size]int{6, 5, 4, 3, 2}, l.Frequencies())
	for _, e := range l {
		assert.NotEqual(t, "1", e.Term, "lowest entry should have been evicted")
	}
}

func TestRecordDropsWhenNotInTop(t *testing.T) {
	l := NewList()
	for i, f := range []int{9, 8, 7, 6, 5} {
		l.Record(strconv.Itoa(i), "fix", f)
	}
	assert.False(t, l.Record("late", "fix", 5), "ties with the last rank are not kept")
	assert.False(t, l.Record("later", "fix", 1))
	assert.Equal(t, [Size]int{9, 8, 7, 6, 5}, l.Frequencies())
}

func TestRecordUpdatesInPlace(t *testing.T) {
	l := NewList()
	l.Record("teh", "the", 4)
	l.Record("adn", "and", 3)
	l.Record("recieve", "receive", 2)

	l.Record("recieve", "receive", 3)

	entries := l.Entries()
	assert.Len(t, entries, 3, "no duplicate entry")
	assert.Equal(t, []string{"teh", "adn", "recieve"}, terms(entries))
	assert.Equal(t, 3, entries[2].Frequency)
}

func TestRecordUpdateMovesUp(t *testing.T) {
	l := NewList()
	l.Record("a", "x", 5)
	l.Record("b", "x", 4)
	l.Record("c", "x", 3)
	l.Record("d", "x", 2)

	l.Record("c", "x", 6)

	assert.Equal(t, []string{"c", "a", "b", "d"}, terms(l.Entries()))
	assert.Equal(t, [Size]int{6, 5, 4, 2, -1}, l.Frequencies())
}

func TestRecordKeepsDescendingOrder(t *testing.T) {
	l := NewList()
	feed := []struct {
		term string
		freq int
	}{
		{"a", 1}, {"b", 1}, {"a", 2}, {"c", 1}, {"b", 2}, {"d", 3},
		{"e", 1}, {"f", 4}, {"c", 2}, {"g", 5}, {"a", 3}, {"h", 1},
	}
	for _, in := range feed {
		l.Record(in.term, "x", in.freq)
		freqs := l.Frequencies()
		for i := 1; i < Size; i++ {
			assert.GreaterOrEqual(t, freqs[i-1], freqs[i], "after recording %s=%d", in.term, in.freq)
		}
	}
}

// a token that happens to spell the placeholder is still a real entry
func TestRecordPlaceholderTerm(t *testing.T) {
	l := NewList()
	l.Record(Placeholder, "NA", 1)
	assert.Len(t, l.Entries(), 1)
}

func terms(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Term
	}
	return out
}
