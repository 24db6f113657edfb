// Package app wires the sensor, keyboard, scene engine and LED sink into the
// installation's control loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-boxhub/internal/diagnostics"
	"github.com/coreman2200/funtimes-boxhub/internal/input"
	"github.com/coreman2200/funtimes-boxhub/internal/layout"
	"github.com/coreman2200/funtimes-boxhub/internal/led"
	"github.com/coreman2200/funtimes-boxhub/internal/render"
	"github.com/coreman2200/funtimes-boxhub/internal/sensor"
	"github.com/coreman2200/funtimes-boxhub/internal/zone"
)

// ErrSinkFailed wraps a driver write error; it ends the loop.
var ErrSinkFailed = errors.New("app: output sink failed")

// Parts are the already opened pieces a Loop runs. Bytes and Keys may be nil.
type Parts struct {
	Topo    layout.Topology
	Bytes   sensor.Source
	Keys    input.Source
	Engine  *render.Engine
	Driver  led.Driver
	Limiter render.Limiter
	Rand    *rand.Rand
	// Period is the fixed sleep after every tick.
	Period time.Duration
	Report *diagnostics.Reporter
	Log    zerolog.Logger
}

// Loop owns the per-tick state. Everything but SetKeymap must be called
// from the goroutine running the loop.
type Loop struct {
	p Parts

	dec   sensor.Decoder
	zones *zone.Tracker
	scene []render.Color
	out   []render.Color
	ctx   render.Context

	keymaps   chan input.Keymap
	closeOnce sync.Once
	closeErr  error
}

func NewLoop(p Parts) (*Loop, error) {
	if err := p.Topo.Validate(); err != nil {
		return nil, err
	}
	if p.Engine == nil || p.Driver == nil {
		return nil, errors.New("app: loop needs an engine and a driver")
	}
	if p.Rand == nil {
		p.Rand = rand.New(rand.NewSource(1))
	}
	l := &Loop{
		p:       p,
		zones:   zone.NewTracker(p.Topo.Zones()),
		scene:   make([]render.Color, p.Topo.Capacity),
		out:     make([]render.Color, p.Topo.Capacity),
		keymaps: make(chan input.Keymap, 1),
	}
	l.ctx = render.Context{
		Topo:  p.Topo,
		Frame: l.dec.Frame(),
		Zones: l.zones,
		Rand:  p.Rand,
		Log:   p.Log,
	}
	return l, nil
}

// SetKeymap queues a keymap for the next tick. Safe from any goroutine; a
// newer keymap replaces one still queued.
func (l *Loop) SetKeymap(k input.Keymap) {
	for {
		select {
		case l.keymaps <- k:
			return
		default:
		}
		select {
		case <-l.keymaps:
		default:
		}
	}
}

func (l *Loop) Engine() *render.Engine { return l.p.Engine }
func (l *Loop) Zones() *zone.Tracker   { return l.zones }
func (l *Loop) Frame() *sensor.Frame   { return l.dec.Frame() }

// Tick runs one pass: drain the sensor, follow its scene request, step the
// engine, fold motion into the zone heat, compose and push the frame.
func (l *Loop) Tick() error {
	select {
	case k := <-l.keymaps:
		l.p.Engine.SetKeymap(k)
	default:
	}

	l.dec.Drain(l.p.Bytes)
	frame := l.dec.Frame()
	l.p.Engine.Request(frame.Selector())

	l.p.Engine.Step(l.scene, &l.ctx)
	l.zones.Update(frame.Zone)

	n := render.Compose(l.out, l.scene, l.p.Engine.Layout(l.p.Topo))
	l.p.Limiter.Apply(l.out[:n])
	if err := l.p.Driver.Write(l.out); err != nil {
		return fmt.Errorf("%w: %w", ErrSinkFailed, err)
	}

	if l.p.Report != nil {
		l.p.Report.Tick()
	}
	return nil
}

// Run ticks until ctx is done or the sink fails, then closes every part.
func (l *Loop) Run(ctx context.Context) error {
	defer l.Close()

	l.p.Log.Info().
		Int("leds", l.p.Topo.Count()).
		Int("strips", len(l.p.Topo.Strips)).
		Dur("period", l.p.Period).
		Msg("loop start")

	pause := time.NewTimer(l.p.Period)
	pause.Stop()
	defer pause.Stop()
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if err := l.Tick(); err != nil {
			l.p.Log.Error().Err(err).Msg("loop stopped")
			return err
		}
		if l.p.Period <= 0 {
			continue
		}
		pause.Reset(l.p.Period)
		select {
		case <-ctx.Done():
			return nil
		case <-pause.C:
		}
	}
}

// Close blanks and releases the sink, then the input sources. Only the
// first call does anything.
func (l *Loop) Close() error {
	l.closeOnce.Do(func() {
		l.closeErr = l.p.Driver.Close()
		if l.p.Bytes != nil {
			if err := l.p.Bytes.Close(); err != nil && l.closeErr == nil {
				l.closeErr = err
			}
		}
		if l.p.Keys != nil {
			if err := l.p.Keys.Close(); err != nil && l.closeErr == nil {
				l.closeErr = err
			}
		}
		l.p.Log.Info().Msg("loop closed")
	})
	return l.closeErr
}
