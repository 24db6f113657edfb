package fire

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/funtimes-boxhub/internal/input"
	"github.com/coreman2200/funtimes-boxhub/internal/layout"
	"github.com/coreman2200/funtimes-boxhub/internal/render"
	"github.com/coreman2200/funtimes-boxhub/internal/sensor"
	"github.com/coreman2200/funtimes-boxhub/internal/zone"
)

func newContext() *render.Context {
	topo := layout.Topology{
		Capacity: 10,
		Strips:   []layout.Strip{{Length: 4, X: 10, Y: 20}, {Length: 4, X: 30, Y: 5}},
	}
	return &render.Context{
		Topo:     topo,
		Frame:    &sensor.Frame{},
		Zones:    zone.NewTracker(topo.Zones()),
		Selected: render.Fire,
		Log:      zerolog.Nop(),
	}
}

func TestFireSlopeFollowsMotion(t *testing.T) {
	c := newContext()
	s := New(c.Topo.Zones())
	dst := make([]render.Color, c.Topo.Capacity)

	c.Frame[1] = 100
	s.Step(dst, c)
	// setpoint 2000-1400 then recovers by one step before smoothing
	assert.Equal(t, (SlopeMax*15+605)>>4, s.Slope(0))
	assert.Equal(t, SlopeMax, s.Slope(1))

	c.Frame[1] = 0
	for i := 0; i < 2000; i++ {
		s.Step(dst, c)
	}
	// the 1/16 filter settles within one step of its floor rounding
	assert.GreaterOrEqual(t, s.Slope(0), SlopeMax-15, "idle zones relax back")
}

func TestFireSlopeClamped(t *testing.T) {
	c := newContext()
	s := New(c.Topo.Zones())
	dst := make([]render.Color, c.Topo.Capacity)

	c.Frame[2] = 253
	s.Step(dst, c)
	assert.Equal(t, (SlopeMax*15+SlopeMin+SlopeStep)>>4, s.Slope(1))
}

func TestFireBrightAtStripStart(t *testing.T) {
	c := newContext()
	s := New(c.Topo.Zones())
	dst := make([]render.Color, c.Topo.Capacity)
	for i := 0; i < 10; i++ {
		s.Step(dst, c)
	}

	for _, si := range []int{0, 1} {
		start := c.Topo.Start(si)
		assert.GreaterOrEqual(t, int(dst[start].R()), 50)
		assert.Equal(t, render.Black, dst[start+3], "slope max darkens the strip end")
	}
	assert.Equal(t, render.Black, dst[8])
}

func TestFireKeys(t *testing.T) {
	c := newContext()
	s := New(c.Topo.Zones())
	s.HandleKey(input.SpaceUp, input.Event{}, c)
	assert.Equal(t, 320, s.Tunables().Space)

	s.Tunables().Space = 20
	s.HandleKey(input.SpaceDown, input.Event{}, c)
	assert.Equal(t, 20, s.Tunables().Space)
}
