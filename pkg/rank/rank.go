// Package rank keeps the most frequent mismatches of a task in a fixed-size ranked list.
package rank

// Size is how many mismatches a List keeps.
const Size = 5

// Placeholder fills term and correction of unused ranks.
const Placeholder = "N/A"

// Entry is one ranked mismatch. Unused ranks have Frequency -1.
type Entry struct {
	Term       string
	Correction string
	Frequency  int
}

// Filled reports whether the rank holds a recorded mismatch.
func (e Entry) Filled() bool {
	return e.Frequency >= 0
}

// List is ordered by descending frequency at all times.
type List [Size]Entry

// NewList returns a list made only of placeholders.
func NewList() List {
	var l List
	for i := range l {
		l[i] = Entry{Term: Placeholder, Correction: Placeholder, Frequency: -1}
	}
	return l
}

// Record inserts or updates term and reports whether the list changed.
//
// A term already in the list has its frequency updated in place and only
// moves as far as needed to keep the order; nothing else is shuffled.
// A new term goes to the first rank with a lower frequency, pushing the
// ranks below it down by one and dropping the last. If every rank is at
// least as frequent, the term is not kept.
func (l *List) Record(term, correction string, frequency int) bool {
	for i := range l {
		if l[i].Filled() && l[i].Term == term {
			l[i].Frequency = frequency
			l[i].Correction = correction
			l.reposition(i)
			return true
		}
	}

	for i := range l {
		if l[i].Frequency < frequency {
			copy(l[i+1:], l[i:Size-1])
			l[i] = Entry{Term: term, Correction: correction, Frequency: frequency}
			return true
		}
	}
	return false
}

// reposition restores descending order after rank i changed frequency.
// Equal frequencies never swap, so earlier entries stay ahead.
func (l *List) reposition(i int) {
	for i > 0 && l[i-1].Frequency < l[i].Frequency {
		l[i-1], l[i] = l[i], l[i-1]
		i--
	}
	for i < Size-1 && l[i+1].Frequency > l[i].Frequency {
		l[i+1], l[i] = l[i], l[i+1]
		i++
	}
}

// Entries returns the filled ranks in order.
func (l *List) Entries() []Entry {
	out := make([]Entry, 0, Size)
	for _, e := range l {
		if e.Filled() {
			out = append(out, e)
		}
	}
	return out
}

// Frequencies returns the frequency of every rank, placeholders included.
func (l *List) Frequencies() [Size]int {
	var out [Size]int
	for i, e := range l {
		out[i] = e.Frequency
	}
	return out
}
