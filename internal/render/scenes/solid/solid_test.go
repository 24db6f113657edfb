package solid

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/funtimes-boxhub/internal/layout"
	"github.com/coreman2200/funtimes-boxhub/internal/render"
	"github.com/coreman2200/funtimes-boxhub/internal/sensor"
	"github.com/coreman2200/funtimes-boxhub/internal/zone"
)

func newContext(seed int64) *render.Context {
	topo := layout.Topology{Capacity: 6, Strips: []layout.Strip{{Length: 2}, {Length: 3}}}
	return &render.Context{
		Topo:  topo,
		Frame: &sensor.Frame{},
		Zones: zone.NewTracker(topo.Zones()),
		Rand:  rand.New(rand.NewSource(seed)),
		Log:   zerolog.Nop(),
	}
}

func TestCurves(t *testing.T) {
	assert.Equal(t, 0, Square(0))
	assert.Equal(t, 254, Square(255))
	assert.Equal(t, 64, Square(128))
	assert.Equal(t, 16, Fourth(128))
	assert.Equal(t, 252, Fourth(255))
}

func TestZonesRedrawOnMotion(t *testing.T) {
	c := newContext(7)
	s := NewColors(c.Topo.Zones(), rand.New(rand.NewSource(1)))
	before := []render.Color{s.Color(0), s.Color(1)}
	dst := make([]render.Color, c.Topo.Capacity)

	s.Step(dst, c)
	assert.Equal(t, before, []render.Color{s.Color(0), s.Color(1)}, "no motion, no change")

	c.Frame[1] = 9
	s.Step(dst, c)
	want := Draw(rand.New(rand.NewSource(7)), Square)
	assert.Equal(t, want, s.Color(0))
	assert.Equal(t, before[1], s.Color(1))

	assert.Equal(t, []render.Color{want, want, before[1], before[1], before[1], render.Black}, dst)
}

func TestDarksAreDim(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := NewDarks(20, rng)
	assert.Equal(t, render.SolidDarks, s.ID())
	for i := 0; i < 20; i++ {
		c := s.Color(i)
		for ch := 0; ch < 3; ch++ {
			assert.LessOrEqual(t, int(c.Channel(ch)), Fourth(255))
		}
	}
}

func TestAll(t *testing.T) {
	c := newContext(11)
	s := NewAll()
	dst := make([]render.Color, c.Topo.Capacity)

	s.Step(dst, c)
	assert.Equal(t, render.RGB(25, 0, 5), s.Color())
	for i := 0; i < c.Topo.Count(); i++ {
		assert.Equal(t, s.Color(), dst[i])
	}

	// each moving zone redraws; the last draw wins
	c.Frame[1], c.Frame[2] = 1, 1
	s.Step(dst, c)
	rng := rand.New(rand.NewSource(11))
	Draw(rng, Fourth)
	assert.Equal(t, Draw(rng, Fourth), s.Color())
	assert.Equal(t, s.Color(), dst[4])
}
