package gesture

import "go.uber.org/atomic"

// Slot hands the newest Signal from a producer goroutine to the frame loop. Publishing replaces
// the previous value; intermediate signals the consumer never saw are dropped.
type Slot struct {
	latest atomic.Pointer[Signal]
	seq    atomic.Uint64
}

// Publish stores sig as the latest signal. Safe to call from any goroutine.
func (s *Slot) Publish(sig Signal) {
	s.latest.Store(&sig)
	s.seq.Inc()
}

// Latest returns the most recent signal, or Idle and false if nothing was published yet.
func (s *Slot) Latest() (Signal, bool) {
	p := s.latest.Load()
	if p == nil {
		return Idle(), false
	}
	return *p, true
}

// Seq returns how many signals have been published. Consumers can compare it between ticks to
// tell whether the producer is alive.
func (s *Slot) Seq() uint64 {
	return s.seq.Load()
}
