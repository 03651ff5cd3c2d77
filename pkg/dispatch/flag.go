package dispatch

import "sync/atomic"

// Flag is a cancellation flag. Once raised it stays raised.
type Flag struct {
	raised atomic.Bool
}

// Cancel raises the flag.
func (f *Flag) Cancel() {
	f.raised.Store(true)
}

// Canceled reports whether the flag was raised.
func (f *Flag) Canceled() bool {
	return f.raised.Load()
}
