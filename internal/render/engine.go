package render

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-boxhub/internal/input"
	"github.com/coreman2200/funtimes-boxhub/internal/layout"
)

var ErrSceneMissing = errors.New("render: scene not registered")

// Engine owns the selector and dispatches keys and ticks to the active scene.
type Engine struct {
	reg    *Registry
	sel    Selector
	keys   input.Source
	keymap input.Keymap
	log    zerolog.Logger

	// pinned replaces selection entirely; used for diagnostic scenes.
	pinned Scene

	// last active id, for change logging
	last ID
}

// NewEngine returns an engine on scene 0. keys may be nil.
func NewEngine(reg *Registry, keys input.Source, keymap input.Keymap, log zerolog.Logger) (*Engine, error) {
	if reg == nil {
		return nil, errors.New("render: registry is nil")
	}
	for id := ID(0); id < SceneCount; id++ {
		if _, ok := reg.Get(id); !ok {
			return nil, fmt.Errorf("%s: %w", id, ErrSceneMissing)
		}
	}
	return &Engine{reg: reg, keys: keys, keymap: keymap, log: log, last: -1}, nil
}

// Pin locks the engine onto a registered scene, bypassing selection.
func (e *Engine) Pin(id ID) error {
	s, ok := e.reg.Get(id)
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrSceneMissing)
	}
	e.pinned = s
	return nil
}

// SetKeymap swaps the key tables; takes effect on the next Step.
func (e *Engine) SetKeymap(k input.Keymap) { e.keymap = k }

func (e *Engine) Keymap() input.Keymap { return e.keymap }

// Request forwards the sensor board's scene byte to the selector.
func (e *Engine) Request(b byte) { e.sel.Request(b) }

func (e *Engine) Selector() Selector { return e.sel }

// Active returns the scene the next Step renders.
func (e *Engine) Active() Scene {
	if e.pinned != nil {
		return e.pinned
	}
	s, _ := e.reg.Get(e.sel.Current)
	return s
}

// Layout returns the strip table the active scene draws against.
func (e *Engine) Layout(def layout.Topology) layout.Topology {
	if lo, ok := e.Active().(LayoutOverride); ok {
		return lo.Layout()
	}
	return def
}

// Step polls at most one key event, applies it, then advances the scene
// that was active when the tick began.
func (e *Engine) Step(dst []Color, c *Context) {
	active := e.Active()
	if active.ID() != e.last {
		e.log.Info().Str("scene", active.Name()).Bool("override", e.sel.Override).Msg("scene")
		e.last = active.ID()
	}

	if e.keys != nil {
		if ev, ok := e.keys.Poll(); ok && ev.Active() {
			e.dispatch(active, ev, c)
		}
	}

	c.Selected = e.sel.Current
	if e.pinned != nil {
		c.Selected = e.pinned.ID()
	}
	active.Step(dst, c)
}

func (e *Engine) dispatch(active Scene, ev input.Event, c *Context) {
	global, local := e.keymap.Lookup(active.Name(), ev.Code)
	if e.pinned == nil {
		switch global {
		case input.NextScene:
			e.sel.Next()
		case input.PrevScene:
			e.sel.Prev()
		case input.ToggleOverride:
			e.sel.ToggleOverride()
			e.log.Info().Bool("override", e.sel.Override).Msg("override")
		}
	}
	if local != input.None {
		active.HandleKey(local, ev, c)
	}
}
