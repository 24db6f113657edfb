package flash

import (
	"github.com/coreman2200/funtimes-boxhub/internal/input"
	"github.com/coreman2200/funtimes-boxhub/internal/layout"
	"github.com/coreman2200/funtimes-boxhub/internal/render"
)

const (
	StaticsStart = 0x1fff
	staticsCeil  = 0x7fff
	staticsFloor = 0x00ff
	staticsRise  = 200
	staticsFall  = 40
)

// Statics sparkles random LEDs white with a density out of 65536 that rises
// with motion and sinks while idle.
type Statics struct {
	prob int
}

func NewStatics() *Statics { return &Statics{prob: StaticsStart} }

func (s *Statics) ID() render.ID { return render.Statics }
func (s *Statics) Name() string  { return render.Statics.String() }

func (s *Statics) HandleKey(input.Command, input.Event, *render.Context) {}

// Prob returns the current sparkle density.
func (s *Statics) Prob() int { return s.prob }

func (s *Statics) Step(dst []render.Color, c *render.Context) {
	if c.Selected != render.Statics {
		s.prob = StaticsStart
	}
	for i := 0; i < c.Topo.Zones(); i++ {
		if c.Frame.Zone(i) != 0 && s.prob < staticsCeil {
			s.prob += staticsRise
		}
	}
	if s.prob > staticsFloor {
		s.prob -= staticsFall
	}

	c.Topo.Walk(func(p layout.Position) bool {
		if p.Index >= len(dst) {
			return false
		}
		if c.Rand.Intn(1<<16) < s.prob {
			dst[p.Index] = render.White
		} else {
			dst[p.Index] = render.Black
		}
		return true
	})
}
