// Package dictionary loads reference word lists and answers membership and
// nearest-term queries against them.
package dictionary

import (
	"errors"
	"sort"

	"github.com/bastiangx/wordcheck/pkg/distance"
)

var (
	// ErrSourceUnavailable is returned when a reference list cannot be opened or read.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrEmptyIndex is returned by Nearest when there is no term to compare against.
	ErrEmptyIndex = errors.New("reference index is empty")
	// ErrUnsorted is returned in strict mode for lists that are not in lexicographic order.
	ErrUnsorted = errors.New("reference list is not sorted")
	// ErrCanceled is returned when loading stops early on request.
	ErrCanceled = errors.New("loading canceled")
)

// Entry is one reference term and the number of mismatches resolved to it.
type Entry struct {
	Term       string
	Mismatches int
}

// Index holds the terms of one reference list.
//
// Entries keep the order they had in the source, which decides ties in
// Nearest. Membership uses a sorted view over the same entries; when the
// source is already sorted the view is the identity and order stays nil.
// An Index belongs to a single task and is not safe for concurrent use.
type Index struct {
	entries    []Entry
	order      []int
	duplicates int
}

// New builds an index from terms in source order.
// Repeated terms keep their first occurrence only.
func New(terms []string) *Index {
	ix := &Index{entries: make([]Entry, 0, len(terms))}
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		if _, dup := seen[term]; dup {
			ix.duplicates++
			continue
		}
		seen[term] = struct{}{}
		ix.entries = append(ix.entries, Entry{Term: term})
	}

	if !ix.inOrder() {
		ix.order = make([]int, len(ix.entries))
		for i := range ix.order {
			ix.order[i] = i
		}
		sort.Slice(ix.order, func(a, b int) bool {
			return ix.entries[ix.order[a]].Term < ix.entries[ix.order[b]].Term
		})
	}
	return ix
}

func (ix *Index) inOrder() bool {
	for i := 1; i < len(ix.entries); i++ {
		if ix.entries[i-1].Term >= ix.entries[i].Term {
			return false
		}
	}
	return true
}

// Len returns the number of unique terms.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Sorted reports whether the source list was already in lexicographic order.
func (ix *Index) Sorted() bool {
	return ix.order == nil
}

// Duplicates returns how many repeated terms were dropped while building.
func (ix *Index) Duplicates() int {
	return ix.duplicates
}

// Entry returns the entry at position i in source order.
func (ix *Index) Entry(i int) Entry {
	return ix.entries[i]
}

// Increment bumps the mismatch counter of entry i and returns the new value.
func (ix *Index) Increment(i int) int {
	ix.entries[i].Mismatches++
	return ix.entries[i].Mismatches
}

func (ix *Index) termAt(pos int) string {
	if ix.order == nil {
		return ix.entries[pos].Term
	}
	return ix.entries[ix.order[pos]].Term
}

// Contains reports whether term is in the index, using binary search over
// the sorted view. Comparison is byte-wise and case-sensitive.
func (ix *Index) Contains(term string) bool {
	lo, hi := 0, len(ix.entries)-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		switch cur := ix.termAt(mid); {
		case cur == term:
			return true
		case cur > term:
			hi = mid - 1
		default:
			lo = mid + 1
		}
	}
	return false
}

// Nearest scans every entry and returns the position of the one with the
// smallest edit distance to term, along with that distance.
// Ties go to the entry that appears first in the source.
func (ix *Index) Nearest(term string) (int, int, error) {
	if len(ix.entries) == 0 {
		return -1, 0, ErrEmptyIndex
	}
	best := 0
	bestDist := distance.Levenshtein(ix.entries[0].Term, term)
	for i := 1; i < len(ix.entries) && bestDist > 0; i++ {
		if d := distance.Levenshtein(ix.entries[i].Term, term); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist, nil
}
