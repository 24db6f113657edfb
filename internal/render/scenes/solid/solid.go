// Package solid holds the flat-colour scenes: per-zone colours redrawn on
// motion, and a single colour for the whole installation.
package solid

import (
	"math/rand"

	"github.com/coreman2200/funtimes-boxhub/internal/input"
	"github.com/coreman2200/funtimes-boxhub/internal/layout"
	"github.com/coreman2200/funtimes-boxhub/internal/render"
)

// Curve shapes a random byte into a channel value.
type Curve func(v int) int

// Square favours mid tones.
func Square(v int) int { return (v * v) >> 8 }

// Fourth pushes most draws toward black.
func Fourth(v int) int { return (v * v * v * v) >> 24 }

// Draw returns a random colour shaped by curve.
func Draw(rng *rand.Rand, curve Curve) render.Color {
	r := curve(rng.Intn(256))
	g := curve(rng.Intn(256))
	b := curve(rng.Intn(256))
	return render.RGB(r, g, b)
}

// Zones keeps one colour per zone and redraws a zone's colour whenever it
// reports motion.
type Zones struct {
	id     render.ID
	curve  Curve
	colors []render.Color
}

func newZones(id render.ID, curve Curve, zones int, rng *rand.Rand) *Zones {
	s := &Zones{id: id, curve: curve, colors: make([]render.Color, zones)}
	for i := range s.colors {
		s.colors[i] = Draw(rng, curve)
	}
	return s
}

// NewColors is the bright per-zone variant.
func NewColors(zones int, rng *rand.Rand) *Zones { return newZones(render.SolidColors, Square, zones, rng) }

// NewDarks is the dim per-zone variant.
func NewDarks(zones int, rng *rand.Rand) *Zones { return newZones(render.SolidDarks, Fourth, zones, rng) }

func (s *Zones) ID() render.ID { return s.id }
func (s *Zones) Name() string  { return s.id.String() }

func (s *Zones) HandleKey(input.Command, input.Event, *render.Context) {}

// Color returns zone i's current colour.
func (s *Zones) Color(i int) render.Color { return s.colors[i] }

func (s *Zones) Step(dst []render.Color, c *render.Context) {
	for i := range s.colors {
		if c.Frame.Zone(i) != 0 {
			s.colors[i] = Draw(c.Rand, s.curve)
		}
	}
	c.Topo.Walk(func(p layout.Position) bool {
		if p.Index >= len(dst) {
			return false
		}
		if p.Strip < len(s.colors) {
			dst[p.Index] = s.colors[p.Strip]
		}
		return true
	})
}

// All lights every LED with one colour, redrawn when any zone moves.
type All struct {
	color render.Color
}

func NewAll() *All { return &All{color: render.RGB(25, 0, 5)} }

func (s *All) ID() render.ID { return render.SolidAll }
func (s *All) Name() string  { return render.SolidAll.String() }

func (s *All) HandleKey(input.Command, input.Event, *render.Context) {}

func (s *All) Color() render.Color { return s.color }

func (s *All) Step(dst []render.Color, c *render.Context) {
	for i := 0; i < c.Topo.Zones(); i++ {
		if c.Frame.Zone(i) != 0 {
			s.color = Draw(c.Rand, Fourth)
		}
	}
	c.Topo.Walk(func(p layout.Position) bool {
		if p.Index >= len(dst) {
			return false
		}
		dst[p.Index] = s.color
		return true
	})
}
