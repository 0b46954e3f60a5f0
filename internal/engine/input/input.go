package input

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/wirehouse/internal/logger"
)

// signalBuffer is how many one-shot requests may wait between frames.
const signalBuffer = 16

// Signal is a one-shot request delivered alongside the held-key set.
type Signal int

const (
	SignalReset Signal = iota
	SignalExit
	SignalScreenshot
	SignalWindowClosed
)

func (s Signal) String() string {
	switch s {
	case SignalReset:
		return "reset"
	case SignalExit:
		return "exit"
	case SignalScreenshot:
		return "screenshot"
	case SignalWindowClosed:
		return "window-closed"
	}
	return "unknown"
}

// Terminal reports whether s ends the session.
func (s Signal) Terminal() bool {
	return s == SignalExit || s == SignalWindowClosed
}

// SignalFor returns the signal a discrete key sends.
func SignalFor(k Key) (Signal, bool) {
	switch k {
	case KeyReset:
		return SignalReset, true
	case KeyExit:
		return SignalExit, true
	case KeyScreenshot:
		return SignalScreenshot, true
	}
	return 0, false
}

// Source is the keyboard state the frame loop reads: the held-key set and
// a queue of one-shot signals. Window backends feed it; it has no
// dependency on any of them.
type Source struct {
	keys    *KeySet
	signals chan Signal
	// pending holds a terminal signal (plus one) that arrived while the
	// queue was full. Zero means none.
	pending atomic.Int32
	log     *zap.Logger
}

// NewSource creates a source writing into keys.
func NewSource(keys *KeySet) *Source {
	return &Source{
		keys:    keys,
		signals: make(chan Signal, signalBuffer),
		log:     logger.Named("input"),
	}
}

// Keys returns the held-key set.
func (s *Source) Keys() *KeySet { return s.keys }

// Inject queues a signal. It never blocks. When the queue is full, exit
// and window-closed are still kept and delivered by Next; other signals
// are dropped with a warning.
func (s *Source) Inject(sig Signal) {
	select {
	case s.signals <- sig:
		return
	default:
	}
	if sig.Terminal() {
		s.pending.CompareAndSwap(0, int32(sig)+1)
		return
	}
	s.log.Warn("signal queue full, dropping signal", zap.Stringer("signal", sig))
}

// Next returns the next queued signal, or false when there is none.
func (s *Source) Next() (Signal, bool) {
	select {
	case sig := <-s.signals:
		return sig, true
	default:
	}
	if v := s.pending.Swap(0); v != 0 {
		return Signal(v - 1), true
	}
	return 0, false
}
