// Package lightning strobes whole zones white at random, more often where
// motion was seen.
package lightning

import (
	"github.com/coreman2200/funtimes-boxhub/internal/input"
	"github.com/coreman2200/funtimes-boxhub/internal/layout"
	"github.com/coreman2200/funtimes-boxhub/internal/render"
	"github.com/coreman2200/funtimes-boxhub/internal/zone"
)

const (
	ProbMin  = 6
	ProbMax  = 250
	ProbStep = 2
	ProbGain = 2
)

type Lightning struct {
	probs  []zone.Filter
	active []bool
}

func New(zones int) *Lightning {
	l := &Lightning{probs: make([]zone.Filter, zones), active: make([]bool, zones)}
	for i := range l.probs {
		l.probs[i].Setpoint = ProbMin
	}
	return l
}

func (s *Lightning) ID() render.ID { return render.Lightning }
func (s *Lightning) Name() string  { return render.Lightning.String() }

func (s *Lightning) HandleKey(input.Command, input.Event, *render.Context) {}

// Prob returns zone i's strike probability out of 256.
func (s *Lightning) Prob(i int) int { return s.probs[i].Setpoint }

// Active reports whether zone i is lit this tick.
func (s *Lightning) Active(i int) bool { return s.active[i] }

func (s *Lightning) Step(dst []render.Color, c *render.Context) {
	for i := range s.probs {
		next := ProbMin + int(c.Frame.Zone(i))*ProbGain
		if next > ProbMax {
			next = ProbMax
		}
		s.probs[i].Rise(next)
	}
	for i := range s.probs {
		s.probs[i].Decay(ProbStep, ProbMin)
	}
	// a strike lasts exactly one tick
	for i := range s.active {
		if s.active[i] {
			s.active[i] = false
		} else if c.Rand.Intn(256) < s.probs[i].Setpoint {
			s.active[i] = true
		}
	}

	c.Topo.Walk(func(p layout.Position) bool {
		if p.Index >= len(dst) {
			return false
		}
		if p.Strip < len(s.active) && s.active[p.Strip] {
			dst[p.Index] = render.White
		} else {
			dst[p.Index] = render.Black
		}
		return true
	})
}
