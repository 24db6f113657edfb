// Package plasma renders the interfering cosine fields: the heat-tinted
// plasma and the free-running rainbow.
package plasma

import (
	"github.com/coreman2200/funtimes-boxhub/internal/input"
	"github.com/coreman2200/funtimes-boxhub/internal/layout"
	"github.com/coreman2200/funtimes-boxhub/internal/render"
	"github.com/coreman2200/funtimes-boxhub/internal/wave"
)

const (
	plasmaTime   = 50
	plasmaSpace  = 50
	rainbowTime  = 12
	rainbowSpace = 22
)

func tunables(time, space int) render.Tunables {
	return render.Tunables{
		Time:       time,
		Space:      space,
		Osc:        wave.NewOscillators(57, -91, 61),
		TimeRange:  render.Range{Min: 1, Max: 500, Step: 1},
		SpaceRange: render.Range{Min: 1, Max: 500, Step: 1},
		SpeedRange: render.Range{Min: -500, Max: 500, Step: 1},
	}
}

// field is one tick's worth of oscillator phase.
type field struct {
	tp1, tp2, tp3 int
	space         int
}

func newField(t *render.Tunables) field {
	return field{
		tp1:   wave.Cos(t.Osc[0].Coarse()),
		tp2:   wave.Cos(t.Osc[1].Coarse()),
		tp3:   wave.Cos(t.Osc[2].Coarse()),
		space: t.Space,
	}
}

// at returns the raw 0..2047 channel waves for one LED.
func (f field) at(p layout.Position) (r, g, b int) {
	x, y, z := p.X, p.Y, p.Depth
	pos1 := ((-x + y + z) * 10 * f.space) >> 6
	pos2 := ((x - y + z) * 6 * f.space) >> 6
	pos3 := ((x + y - z) * 8 * f.space) >> 6

	r = wave.Cos(pos1 + (f.tp3 >> 1) + wave.Cos(f.tp2+pos2))
	g = wave.Cos(f.tp1 + pos2 + wave.Cos(-(f.tp3>>2)+pos3))
	b = wave.Cos(f.tp2 + pos3 + wave.Cos(f.tp1+pos1))
	return r, g, b
}

// Plasma is a blue-green field whose red channel follows zone heat.
type Plasma struct {
	t render.Tunables
}

func NewPlasma() *Plasma { return &Plasma{t: tunables(plasmaTime, plasmaSpace)} }

func (s *Plasma) ID() render.ID              { return render.Plasma }
func (s *Plasma) Name() string               { return render.Plasma.String() }
func (s *Plasma) Tunables() *render.Tunables { return &s.t }

func (s *Plasma) HandleKey(cmd input.Command, _ input.Event, c *render.Context) {
	if cmd == input.Print {
		s.t.Log(c.Log, s.Name())
		return
	}
	s.t.Apply(cmd)
}

func (s *Plasma) Step(dst []render.Color, c *render.Context) {
	s.t.Advance()
	f := newField(&s.t)
	c.Topo.Walk(func(p layout.Position) bool {
		if p.Index >= len(dst) {
			return false
		}
		r, g, b := f.at(p)
		heat := c.Zones.Level(p.Strip)
		dst[p.Index] = render.RGB((r*heat)>>13, g>>3, b>>3)
		return true
	})
}

// Rainbow is the same field at a slower default pace with squared channels.
// Its pace and scale return to defaults whenever it is switched away from.
type Rainbow struct {
	t render.Tunables
}

func NewRainbow() *Rainbow { return &Rainbow{t: tunables(rainbowTime, rainbowSpace)} }

func (s *Rainbow) ID() render.ID              { return render.Rainbow }
func (s *Rainbow) Name() string               { return render.Rainbow.String() }
func (s *Rainbow) Tunables() *render.Tunables { return &s.t }

func (s *Rainbow) HandleKey(cmd input.Command, _ input.Event, c *render.Context) {
	if cmd == input.Print {
		s.t.Log(c.Log, s.Name())
		return
	}
	s.t.Apply(cmd)
}

func (s *Rainbow) Step(dst []render.Color, c *render.Context) {
	if c.Selected != render.Rainbow {
		s.t.Time = rainbowTime
		s.t.Space = rainbowSpace
	}
	s.t.Advance()
	f := newField(&s.t)
	c.Topo.Walk(func(p layout.Position) bool {
		if p.Index >= len(dst) {
			return false
		}
		r, g, b := f.at(p)
		dst[p.Index] = render.RGB((r*r)>>14, (g*g)>>14, (b*b)>>14)
		return true
	})
}
