package dictionary

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// sniffSize is how much of a file is inspected to decide whether it is text.
const sniffSize = 1024

// ErrNotText is returned for reference lists that look like binary data.
var ErrNotText = errors.New("not a text file")

// ValidateTextFormat checks that path names a readable regular file that
// looks like plain text. Failures wrap ErrSourceUnavailable.
func ValidateTextFormat(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: stat %s: %v", ErrSourceUnavailable, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrSourceUnavailable, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrSourceUnavailable, path, err)
	}
	defer file.Close()

	buffer := make([]byte, sniffSize)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: read %s: %v", ErrSourceUnavailable, path, err)
	}
	// NUL never shows up in UTF-8 or ASCII word lists
	if bytes.IndexByte(buffer[:n], 0) >= 0 {
		return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, ErrNotText)
	}

	log.Debugf("Text file %s validated (%d bytes)", path, info.Size())
	return nil
}
