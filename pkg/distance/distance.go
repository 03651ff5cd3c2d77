// Package distance computes the edit distance used to pick corrections for unknown tokens.
package distance

// Levenshtein returns the minimum number of single-character insertions,
// deletions or substitutions that turn a into b.
//
// It fills the full (len(a)+1) x (len(b)+1) table row by row. Characters are
// compared as runes so multi-byte UTF-8 tokens count one edit per character.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	rows, cols := len(ra)+1, len(rb)+1

	table := make([][]int, rows)
	for i := range table {
		table[i] = make([]int, cols)
		table[i][0] = i
	}
	for j := 0; j < cols; j++ {
		table[0][j] = j
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			table[i][j] = min3(
				table[i-1][j]+1,
				table[i][j-1]+1,
				table[i-1][j-1]+cost,
			)
		}
	}
	return table[rows-1][cols-1]
}

func min3(a, b, c int) int {
	if a <= b && a <= c {
		return a
	}
	if b <= c {
		return b
	}
	return c
}
