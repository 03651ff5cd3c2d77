package cli

import (
	"bufio"
	"io"

	"github.com/charmbracelet/log"
)

// maxInputLine bounds one line of operator input.
const maxInputLine = 64 * 1024

// readLines feeds lines from in to the returned channel until EOF or until
// done is closed. The channel is closed when reading stops.
func readLines(in io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 1024), maxInputLine)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Debugf("Input closed: %v", err)
		}
	}()
	return lines
}
