package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// maxLineLength bounds a single reference term line.
const maxLineLength = 1 << 20

// LoadOptions controls how a reference list is read.
type LoadOptions struct {
	// Strict rejects lists that are not already sorted instead of sorting a view.
	Strict bool
	// Interrupt is polled once per line; returning true stops loading with ErrCanceled.
	Interrupt func() bool
}

// Load reads the reference list at path, one term per line.
func Load(path string, opts LoadOptions) (*Index, error) {
	if err := ValidateTextFormat(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSourceUnavailable, path, err)
	}
	defer file.Close()

	ix, err := Read(file, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	if !ix.Sorted() {
		log.Warnf("Reference list %s is not sorted, using a sorted view", path)
	}
	if ix.Duplicates() > 0 {
		log.Debugf("Reference list %s: dropped %d duplicate terms", path, ix.Duplicates())
	}
	log.Debugf("Loaded reference list %s: %d terms", path, ix.Len())
	return ix, nil
}

// Read builds an index from r. Blank lines are skipped and surrounding
// whitespace, including a trailing carriage return, is trimmed.
func Read(r io.Reader, opts LoadOptions) (*Index, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	var terms []string
	for scanner.Scan() {
		if opts.Interrupt != nil && opts.Interrupt() {
			return nil, ErrCanceled
		}
		term := strings.TrimSpace(scanner.Text())
		if term == "" {
			continue
		}
		terms = append(terms, term)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	ix := New(terms)
	if opts.Strict && !ix.Sorted() {
		return nil, ErrUnsorted
	}
	return ix, nil
}
