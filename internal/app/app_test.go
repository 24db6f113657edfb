package app

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/coreman2200/funtimes-boxhub/internal/config"
	"github.com/coreman2200/funtimes-boxhub/internal/input"
	"github.com/coreman2200/funtimes-boxhub/internal/layout"
	"github.com/coreman2200/funtimes-boxhub/internal/led"
	"github.com/coreman2200/funtimes-boxhub/internal/render"
	"github.com/coreman2200/funtimes-boxhub/internal/render/scenes"
	"github.com/coreman2200/funtimes-boxhub/internal/sensor"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// byteSource hands out a fixed byte slice.
type byteSource struct {
	b      []byte
	closed int
}

func (s *byteSource) TryRead() (byte, bool) {
	if len(s.b) == 0 {
		return 0, false
	}
	c := s.b[0]
	s.b = s.b[1:]
	return c, true
}

func (s *byteSource) Close() error {
	s.closed++
	return nil
}

func (s *byteSource) send(sel byte, zones ...byte) { s.b = append(s.b, sensor.Encode(sel, zones)...) }

var testTopo = layout.Topology{Capacity: 6, Strips: []layout.Strip{{Length: 2}, {Length: 3}}}

func newTestLoop(t *testing.T, src *byteSource, keys input.Source, drv led.Driver) *Loop {
	t.Helper()
	eng, err := render.NewEngine(scenes.Registry(testTopo, rand.New(rand.NewSource(1))), keys, input.DefaultKeymap(), zerolog.Nop())
	require.NoError(t, err)
	p := Parts{
		Topo:   testTopo,
		Keys:   keys,
		Engine: eng,
		Driver: drv,
		Rand:   rand.New(rand.NewSource(2)),
		Log:    zerolog.Nop(),
	}
	if src != nil {
		p.Bytes = src
	}
	l, err := NewLoop(p)
	require.NoError(t, err)
	return l
}

func TestTickSolidColors(t *testing.T) {
	src := &byteSource{}
	drv := &led.Record{Log: zerolog.Nop()}
	l := newTestLoop(t, src, nil, drv)

	src.send(byte(render.SolidColors), 5, 0)
	require.NoError(t, l.Tick())
	assert.Equal(t, render.SolidColors, l.Engine().Selector().Current)
	assert.Equal(t, 1, drv.Frames())

	require.NoError(t, l.Tick())
	out := drv.Last()
	require.Len(t, out, testTopo.Capacity)
	assert.Equal(t, out[0], out[1])
	assert.Equal(t, out[2], out[3])
	assert.Equal(t, out[3], out[4])
	assert.Equal(t, render.Black, out[5])
	assert.Positive(t, l.Zones().Level(0))
	assert.Zero(t, l.Zones().Level(1))
}

func TestTickSolidColorsHoldsWithoutMotion(t *testing.T) {
	src := &byteSource{}
	drv := &led.Record{Log: zerolog.Nop()}
	l := newTestLoop(t, src, nil, drv)

	src.send(byte(render.SolidColors), 0, 0)
	require.NoError(t, l.Tick())
	require.Equal(t, render.SolidColors, l.Engine().Selector().Current)
	first := drv.Last()

	require.NoError(t, l.Tick())
	assert.Equal(t, first, drv.Last(), "still zones keep their colours")
	assert.Equal(t, first[0], first[1])
	assert.Equal(t, first[2], first[4])
}

func TestLimiterSkipsRetainedTail(t *testing.T) {
	keys := input.NewChan()
	defer keys.Close()
	drv := &led.Record{Log: zerolog.Nop()}
	l := newTestLoop(t, nil, keys, drv)
	l.p.Limiter = render.Limiter{ChanMA: 20, BudgetMA: 120}
	require.NoError(t, l.Engine().Pin(render.StripLength))

	// strip 1 lit: three white LEDs draw 180mA and get scaled
	keys.Press(input.KeyRight)
	require.NoError(t, l.Tick())
	dimmed := drv.Last()[4]
	assert.Less(t, dimmed.R(), uint8(255))

	// shortening strip 1 leaves index 4 past the composed run
	keys.Press(input.KeyDown)
	require.NoError(t, l.Tick())
	out := drv.Last()
	assert.Equal(t, render.White, out[2], "two white LEDs fit the budget")
	assert.Equal(t, render.White, out[3])
	assert.Equal(t, dimmed, out[4], "tail is neither counted nor rescaled")
}

func TestTickIgnoresSelectorUnderOverride(t *testing.T) {
	src := &byteSource{}
	keys := input.NewChan()
	drv := &led.Record{Log: zerolog.Nop()}
	l := newTestLoop(t, src, keys, drv)

	keys.Press(input.Key0)
	require.NoError(t, l.Tick())
	assert.True(t, l.Engine().Selector().Override)

	src.send(byte(render.Rainbow))
	keys.Press(input.KeyEqual)
	require.NoError(t, l.Tick())
	assert.Equal(t, render.Fire, l.Engine().Selector().Current, "keys still step the selection")

	src.send(byte(render.Statics))
	require.NoError(t, l.Tick())
	assert.Equal(t, render.Fire, l.Engine().Selector().Current)

	require.NoError(t, l.Close())
}

func TestSetKeymapAppliesNextTick(t *testing.T) {
	drv := &led.Record{Log: zerolog.Nop()}
	l := newTestLoop(t, nil, nil, drv)

	first := input.Keymap{Global: input.Bindings{input.KeyP: input.NextScene}}
	second := input.Keymap{Global: input.Bindings{input.KeyQ: input.NextScene}}
	l.SetKeymap(first)
	l.SetKeymap(second)
	require.NoError(t, l.Tick())
	assert.Equal(t, second, l.Engine().Keymap())
}

func TestSinkFailureStopsAndClosesOnce(t *testing.T) {
	src := &byteSource{}
	boom := errors.New("dma underrun")
	drv := &led.Record{Log: zerolog.Nop(), Fail: boom}
	l := newTestLoop(t, src, nil, drv)

	err := l.Run(context.Background())
	assert.ErrorIs(t, err, ErrSinkFailed)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, drv.Closes())
	assert.Equal(t, 1, src.closed)

	require.NoError(t, l.Close())
	assert.Equal(t, 1, drv.Closes())
}

func TestRunStopsOnCancel(t *testing.T) {
	drv := &led.Record{Log: zerolog.Nop()}
	l := newTestLoop(t, nil, nil, drv)
	l.p.Period = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	require.NoError(t, l.Run(ctx))
	assert.Positive(t, drv.Frames())
	assert.Equal(t, 1, drv.Closes())
}

func TestOpenHeadless(t *testing.T) {
	cfg := config.Default()
	cfg.Serial.Dev = ""
	cfg.Serial.SynthEvery = 1
	cfg.Keyboard.Source = config.KeyboardNone
	cfg.Driver.Name = led.KindNull
	cfg.Loop.Seed = 5
	cfg.Diagnostic = "strip-length"

	l, err := Open(cfg, zerolog.Nop(), nil)
	require.NoError(t, err)
	assert.Equal(t, render.StripLength, l.Engine().Active().ID())
	for i := 0; i < 5; i++ {
		require.NoError(t, l.Tick())
	}
	require.NoError(t, l.Close())
}

func TestOpenFailures(t *testing.T) {
	cfg := config.Default()
	cfg.Serial.Dev = "/nonexistent/tty"
	cfg.Keyboard.Source = config.KeyboardNone
	cfg.Driver.Name = led.KindNull
	_, err := Open(cfg, zerolog.Nop(), nil)
	var se *StartupError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "serial", se.Resource)

	cfg.Serial.Dev = ""
	cfg.Driver.Name = "laser"
	_, err = Open(cfg, zerolog.Nop(), nil)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "config", se.Resource)
}

func TestDefaultDriverFallsBackToConsole(t *testing.T) {
	if _, err := led.NewPWM(led.PWMConfig{}, 0); !errors.Is(err, led.ErrUnsupported) {
		t.Skip("built with ws2811 support")
	}
	d, err := openDriverWithFallback(config.Default().Driver, 4, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &led.Console{}, d)
	require.NoError(t, d.Close())
}

func TestDriverFallback(t *testing.T) {
	c := config.Default().Driver
	c.Name = led.KindPWM
	c.Fallback = led.KindNull
	d, err := openDriverWithFallback(c, 0, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &led.Record{}, d)
}
