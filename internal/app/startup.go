package app

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-boxhub/internal/config"
	"github.com/coreman2200/funtimes-boxhub/internal/diagnostics"
	"github.com/coreman2200/funtimes-boxhub/internal/input"
	"github.com/coreman2200/funtimes-boxhub/internal/led"
	"github.com/coreman2200/funtimes-boxhub/internal/render"
	"github.com/coreman2200/funtimes-boxhub/internal/render/scenes"
	"github.com/coreman2200/funtimes-boxhub/internal/sensor"
)

// StartupError names the resource that could not be acquired.
type StartupError struct {
	Resource string
	Err      error
}

func (e *StartupError) Error() string { return fmt.Sprintf("%s: %v", e.Resource, e.Err) }
func (e *StartupError) Unwrap() error { return e.Err }

// Open acquires every resource cfg names and returns a ready Loop. On error
// whatever was already opened is released. onQuit is called when the
// terminal keyboard sees Esc or Ctrl-C.
func Open(cfg *config.Config, log zerolog.Logger, onQuit func()) (l *Loop, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, &StartupError{Resource: "config", Err: err}
	}
	topo := cfg.Topology
	clock := diagnostics.NewClock()
	seed := cfg.Loop.Seed
	if seed == 0 {
		seed = clock.Seed()
	}
	log.Info().Int64("seed", seed).Msg("random seed")

	var closers []func() error
	defer func() {
		if err == nil {
			return
		}
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}()

	var bytes sensor.Source
	switch {
	case cfg.Serial.Dev != "":
		s, err := sensor.OpenSerial(cfg.Serial.SerialConfig, log)
		if err != nil {
			return nil, &StartupError{Resource: "serial", Err: err}
		}
		bytes = s
		closers = append(closers, s.Close)
	case cfg.Serial.SynthEvery > 0:
		bytes = sensor.NewSynth(topo.Zones(), cfg.Serial.SynthEvery, rand.New(rand.NewSource(seed+1)))
		log.Warn().Int("every", cfg.Serial.SynthEvery).Msg("no sensor port, synthesizing motion")
	default:
		log.Warn().Msg("no sensor port")
	}

	var keys input.Source
	switch cfg.Keyboard.Source {
	case config.KeyboardEvdev:
		k, err := input.OpenEvdev(cfg.Keyboard.Dev, log)
		if err != nil {
			return nil, &StartupError{Resource: "keyboard", Err: err}
		}
		keys = k
		closers = append(closers, k.Close)
	case config.KeyboardTerminal:
		k, err := input.OpenTerminal(log, onQuit)
		if err != nil {
			return nil, &StartupError{Resource: "keyboard", Err: err}
		}
		keys = k
		closers = append(closers, k.Close)
	}

	drv, err := openDriverWithFallback(cfg.Driver, topo.Capacity, log)
	if err != nil {
		return nil, &StartupError{Resource: "driver", Err: err}
	}
	closers = append(closers, drv.Close)

	rng := rand.New(rand.NewSource(seed))
	eng, err := render.NewEngine(scenes.Registry(topo, rng), keys, cfg.Keymap(), log)
	if err != nil {
		return nil, &StartupError{Resource: "scenes", Err: err}
	}
	if cfg.Diagnostic != "" {
		id, err := render.ParseID(cfg.Diagnostic)
		if err == nil {
			err = eng.Pin(id)
		}
		if err != nil {
			return nil, &StartupError{Resource: "diagnostic", Err: err}
		}
		log.Info().Str("scene", cfg.Diagnostic).Msg("diagnostic pinned")
	}

	return NewLoop(Parts{
		Topo:    topo,
		Bytes:   bytes,
		Keys:    keys,
		Engine:  eng,
		Driver:  drv,
		Limiter: cfg.Limiter(),
		Rand:    rng,
		Period:  cfg.Loop.Period,
		Report:  diagnostics.NewReporter(clock, cfg.Loop.ReportEvery, log),
		Log:     log,
	})
}

func openDriverWithFallback(c config.Driver, count int, log zerolog.Logger) (led.Driver, error) {
	d, err := OpenDriver(c.Name, c, count, log)
	if err == nil || c.Fallback == "" {
		return d, err
	}
	log.Warn().Err(err).
		Str("driver", string(c.Name)).
		Str("fallback", string(c.Fallback)).
		Msg("driver init failed; falling back")
	return OpenDriver(c.Fallback, c, count, log)
}

// OpenDriver opens the named sink for count pixels.
func OpenDriver(kind led.Kind, c config.Driver, count int, log zerolog.Logger) (led.Driver, error) {
	var (
		d   led.Driver
		err error
	)
	switch kind {
	case led.KindSPI:
		var n *led.NRZ
		if n, err = led.OpenNRZ(c.SPI, count); err == nil {
			d = n
		}
	case led.KindPWM:
		var p *led.PWM
		if p, err = led.NewPWM(c.PWM, count); err == nil {
			d = p
		}
	case led.KindConsole:
		d = led.NewConsole(count, c.ConsoleEvery)
	case led.KindNull:
		d = &led.Record{Log: log}
	default:
		err = fmt.Errorf("unknown driver %q", kind)
	}
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", string(kind)).Int("pixels", count).Msg("driver open")
	return d, nil
}
