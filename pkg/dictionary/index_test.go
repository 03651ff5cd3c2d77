package dictionary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContains(t *testing.T) {
	ix := New([]string{"apple", "banana", "cherry"})
	require.True(t, ix.Sorted())

	testCases := []struct {
		term     string
		expected bool
		desc     string
	}{
		{"banana", true, "Present in the middle"},
		{"apple", true, "First term"},
		{"cherry", true, "Last term"},
		{"Banana", false, "Case sensitive"},
		{"durian", false, "Absent after last"},
		{"aardvark", false, "Absent before first"},
		{"", false, "Empty token"},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, ix.Contains(tc.term))
		})
	}
}

func TestContainsEmptyIndex(t *testing.T) {
	assert.False(t, New(nil).Contains("anything"))
}

func TestNearestFirstOccurrenceWins(t *testing.T) {
	ix := New([]string{"cat", "bat"})
	require.False(t, ix.Sorted())

	idx, dist, err := ix.Nearest("cot")
	require.NoError(t, err)
	assert.Equal(t, 1, dist)
	assert.Equal(t, "cat", ix.Entry(idx).Term)
}

func TestNearest(t *testing.T) {
	ix := New([]string{"apple", "banana", "the", "their", "there"})

	testCases := []struct {
		term     string
		expected string
		dist     int
	}{
		{"teh", "the", 2},
		{"appel", "apple", 2},
		{"bananna", "banana", 1},
		{"ther", "the", 1},
		{"there", "there", 0},
	}
	for _, tc := range testCases {
		t.Run(tc.term, func(t *testing.T) {
			idx, dist, err := ix.Nearest(tc.term)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ix.Entry(idx).Term)
			assert.Equal(t, tc.dist, dist)
		})
	}
}

// index 0 is a valid answer, not a failure
func TestNearestMatchesFirstEntry(t *testing.T) {
	ix := New([]string{"alpha", "omega"})
	idx, _, err := ix.Nearest("alpa")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestNearestEmptyIndex(t *testing.T) {
	_, _, err := New(nil).Nearest("word")
	assert.ErrorIs(t, err, ErrEmptyIndex)
}

func TestUnsortedSourceStillSearchable(t *testing.T) {
	ix := New([]string{"pear", "apple", "mango", "kiwi"})
	assert.False(t, ix.Sorted())
	for _, w := range []string{"pear", "apple", "mango", "kiwi"} {
		assert.True(t, ix.Contains(w), w)
	}
	assert.False(t, ix.Contains("banana"))
	// source order is kept for nearest
	assert.Equal(t, "pear", ix.Entry(0).Term)
}

func TestDuplicatesDropped(t *testing.T) {
	ix := New([]string{"a", "b", "b", "c", "a"})
	assert.Equal(t, 3, ix.Len())
	assert.Equal(t, 2, ix.Duplicates())
}

func TestIncrement(t *testing.T) {
	ix := New([]string{"one", "two"})
	assert.Equal(t, 1, ix.Increment(1))
	assert.Equal(t, 2, ix.Increment(1))
	assert.Equal(t, 0, ix.Entry(0).Mismatches)
	assert.Equal(t, 2, ix.Entry(1).Mismatches)
}

func TestRead(t *testing.T) {
	ix, err := Read(strings.NewReader("apple\r\nbanana\n\n  cherry  \n"), LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, ix.Len())
	assert.True(t, ix.Contains("cherry"))
	assert.Zero(t, ix.Entry(2).Mismatches)
}

func TestReadStrict(t *testing.T) {
	_, err := Read(strings.NewReader("b\na\n"), LoadOptions{Strict: true})
	assert.ErrorIs(t, err, ErrUnsorted)

	_, err = Read(strings.NewReader("a\nb\n"), LoadOptions{Strict: true})
	assert.NoError(t, err)
}

func TestReadInterrupted(t *testing.T) {
	calls := 0
	_, err := Read(strings.NewReader("a\nb\nc\n"), LoadOptions{Interrupt: func() bool {
		calls++
		return calls > 1
	}})
	assert.ErrorIs(t, err, ErrCanceled)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("apple\nbanana\ncherry\n"), 0o644))

	ix, err := Load(path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, ix.Len())
}

func TestLoadFailures(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "words.bin")
	require.NoError(t, os.WriteFile(binary, []byte{'a', 0, 'b'}, 0o644))

	testCases := []struct {
		path string
		desc string
	}{
		{filepath.Join(dir, "missing.txt"), "Missing file"},
		{dir, "Directory"},
		{binary, "Binary content"},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := Load(tc.path, LoadOptions{})
			assert.ErrorIs(t, err, ErrSourceUnavailable)
		})
	}
}

func TestValidateTextFormatBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob")
	require.NoError(t, os.WriteFile(path, []byte{0, 1, 2}, 0o644))
	assert.ErrorIs(t, ValidateTextFormat(path), ErrNotText)
}

func BenchmarkNearest(b *testing.B) {
	terms := make([]string, 0, 1000)
	for i := 0; i < 1000; i++ {
		terms = append(terms, "word"+strings.Repeat("x", i%7)+string(rune('a'+i%26)))
	}
	ix := New(terms)
	inputs := []string{"wrd123", "word1", "wordd2", "woord3", "wird4"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = ix.Nearest(inputs[i%len(inputs)])
	}
}
