// Package fire renders a flame field that brightens toward the strip start
// and shifts from red to yellow where motion is seen.
package fire

import (
	"github.com/coreman2200/funtimes-boxhub/internal/input"
	"github.com/coreman2200/funtimes-boxhub/internal/layout"
	"github.com/coreman2200/funtimes-boxhub/internal/render"
	"github.com/coreman2200/funtimes-boxhub/internal/wave"
	"github.com/coreman2200/funtimes-boxhub/internal/zone"
)

// Brightness slope bounds. A lower slope keeps the strip bright further
// along and shifts the colour.
const (
	SlopeBase  = 1024
	SlopeMax   = 2000
	SlopeMin   = 300
	SlopeGain  = 14
	SlopeStep  = 5
	slopeRange = SlopeMax - SlopeMin
)

type Fire struct {
	t      render.Tunables
	slopes []zone.Filter
}

func New(zones int) *Fire {
	f := &Fire{
		t: render.Tunables{
			Time:       120,
			Space:      300,
			Osc:        wave.NewOscillators(57, 101, 61),
			TimeRange:  render.Range{Min: 1, Max: 500, Step: 1},
			SpaceRange: render.Range{Min: 20, Max: 5000, Step: 20},
			SpeedRange: render.Range{Min: -500, Max: 500, Step: 1},
		},
		slopes: make([]zone.Filter, zones),
	}
	for i := range f.slopes {
		f.slopes[i] = zone.Filter{Setpoint: SlopeMax, Level: SlopeMax}
	}
	return f
}

func (s *Fire) ID() render.ID { return render.Fire }
func (s *Fire) Name() string  { return render.Fire.String() }

func (s *Fire) Tunables() *render.Tunables { return &s.t }

// Slope returns the smoothed brightness slope of zone i.
func (s *Fire) Slope(i int) int { return s.slopes[i].Level }

func (s *Fire) HandleKey(cmd input.Command, _ input.Event, c *render.Context) {
	if cmd == input.Print {
		s.t.Log(c.Log, s.Name())
		return
	}
	s.t.Apply(cmd)
}

func (s *Fire) updateSlopes(c *render.Context) {
	for i := range s.slopes {
		f := &s.slopes[i]
		next := SlopeMax - int(c.Frame.Zone(i))*SlopeGain
		if next < SlopeMin {
			next = SlopeMin
		}
		f.Fall(next)
		f.Recover(SlopeStep, SlopeMax)
		f.Smooth()
	}
}

func (s *Fire) Step(dst []render.Color, c *render.Context) {
	s.t.Advance()
	// the phases rise without wrapping through the cosine table
	tp1 := int(uint16(s.t.Osc[0].Coarse()))
	tp2 := int(uint16(s.t.Osc[1].Coarse()))
	tp3 := int(uint16(s.t.Osc[2].Coarse()))
	s.updateSlopes(c)

	space := s.t.Space
	c.Topo.Walk(func(p layout.Position) bool {
		if p.Index >= len(dst) {
			return false
		}
		x, y, z := p.X, p.Y, p.Depth
		pos1 := ((-x + y + z) * 10 * space) >> 6
		pos2 := ((x - y + z) * 6 * space) >> 6
		pos3 := ((-x - y + z) * 8 * space) >> 6

		r := wave.Cos(pos1 + (tp3 >> 1) + wave.Cos(tp2+pos2))
		g := wave.Cos(tp1 + pos2 + wave.Cos((tp3>>2)+pos3))
		b := wave.Cos(tp2 + pos3 + wave.Cos(tp1+pos1))

		slope := SlopeMax
		if p.Strip < len(s.slopes) {
			slope = s.slopes[p.Strip].Level
		}
		length := c.Topo.Strips[p.Strip].Length
		full := SlopeBase * length
		bright := full - slope*p.Offset
		if bright < 0 {
			bright = 0
		}
		shift := 256 * (SlopeMax - slope) / slopeRange
		base := 256 * (slope - SlopeMin) / slopeRange

		g = ((((g * r * base) >> 23) + ((g * shift) >> 12)) * bright) / full
		b = (((shift * b * r) >> 25) * bright) / full
		r = ((r/10 + 50) * bright) / full
		dst[p.Index] = render.RGB(r, g, b)
		return true
	})
}
