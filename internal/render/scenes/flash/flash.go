// Package flash holds the full-installation strobe scenes.
package flash

import (
	"github.com/coreman2200/funtimes-boxhub/internal/input"
	"github.com/coreman2200/funtimes-boxhub/internal/layout"
	"github.com/coreman2200/funtimes-boxhub/internal/render"
)

const (
	PeriodMax  = 10000
	PeriodMin  = 100
	periodCut  = 100
	periodHeal = 3
)

var channels = [3]render.Color{render.Red, render.Green, render.Blue}

// RGB flashes red, green and blue in turn. Motion shortens the gap between
// flashes; it relaxes back while idle.
type RGB struct {
	t      int
	period int
	col    int
}

// NewRGB starts on the last colour so the first flash is red.
func NewRGB() *RGB { return &RGB{period: PeriodMax, col: len(channels) - 1} }

func (s *RGB) ID() render.ID { return render.RGBFlash }
func (s *RGB) Name() string  { return render.RGBFlash.String() }

func (s *RGB) HandleKey(input.Command, input.Event, *render.Context) {}

// Period returns the current flash period in hundredths of a tick.
func (s *RGB) Period() int { return s.period }

func (s *RGB) Step(dst []render.Color, c *render.Context) {
	for i := 0; i < c.Topo.Zones(); i++ {
		if c.Frame.Zone(i) != 0 && s.period > PeriodMin {
			s.period -= periodCut
		}
	}
	if s.period < PeriodMax {
		s.period += periodHeal
	}
	s.t = int(uint16(s.t + 1))
	if s.t+4 >= s.period/100 {
		s.t = 0
		s.col = (s.col + 1) % len(channels)
	}

	fill := render.Black
	if s.t == 0 {
		fill = channels[s.col]
	}
	c.Topo.Walk(func(p layout.Position) bool {
		if p.Index >= len(dst) {
			return false
		}
		dst[p.Index] = fill
		return true
	})
}
