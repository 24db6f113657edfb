package sensor

import "math/rand"

// Synth fabricates sensor traffic for running without the board attached.
// One frame of random motion on a random zone is released every Every drains.
type Synth struct {
	Zones    int
	Every    int
	Selector byte

	rng     *rand.Rand
	polls   int
	pending []byte
	flushed bool
}

func NewSynth(zones, every int, rng *rand.Rand) *Synth {
	if every <= 0 {
		every = 1
	}
	return &Synth{Zones: zones, Every: every, rng: rng}
}

// TryRead implements Source. A frame's bytes are followed by one empty read
// so a Drain never sees more than a single frame.
func (s *Synth) TryRead() (byte, bool) {
	if len(s.pending) > 0 {
		b := s.pending[0]
		s.pending = s.pending[1:]
		s.flushed = len(s.pending) == 0
		return b, true
	}
	if s.flushed || s.Zones <= 0 {
		s.flushed = false
		return 0, false
	}
	s.polls++
	if s.polls < s.Every {
		return 0, false
	}
	s.polls = 0
	zones := make([]byte, s.Zones)
	zones[s.rng.Intn(len(zones))] = byte(1 + s.rng.Intn(200))
	s.pending = Encode(s.Selector, zones)
	return s.TryRead()
}

func (s *Synth) Close() error { return nil }
