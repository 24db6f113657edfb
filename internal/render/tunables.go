package render

import (
	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-boxhub/internal/input"
	"github.com/coreman2200/funtimes-boxhub/internal/wave"
)

// Range bounds a tunable. Dec steps down while the value is above Min and
// Inc steps up while it is below Max.
type Range struct{ Min, Max, Step int }

func (r Range) Dec(v int) int {
	if v > r.Min {
		return v - r.Step
	}
	return v
}

func (r Range) Inc(v int) int {
	if v < r.Max {
		return v + r.Step
	}
	return v
}

// Tunables are the live-adjustable parameters of a wave scene.
type Tunables struct {
	Time  int
	Space int
	Osc   wave.Oscillators

	TimeRange  Range
	SpaceRange Range
	SpeedRange Range
}

// Apply handles the tunable commands; Print is left to the caller.
func (t *Tunables) Apply(cmd input.Command) bool {
	switch cmd {
	case input.TimeDown:
		t.Time = t.TimeRange.Dec(t.Time)
	case input.TimeUp:
		t.Time = t.TimeRange.Inc(t.Time)
	case input.SpaceDown:
		t.Space = t.SpaceRange.Dec(t.Space)
	case input.SpaceUp:
		t.Space = t.SpaceRange.Inc(t.Space)
	case input.Speed1Up:
		t.Osc[0].Speed = t.SpeedRange.Inc(t.Osc[0].Speed)
	case input.Speed1Down:
		t.Osc[0].Speed = t.SpeedRange.Dec(t.Osc[0].Speed)
	case input.Speed2Up:
		t.Osc[1].Speed = t.SpeedRange.Inc(t.Osc[1].Speed)
	case input.Speed2Down:
		t.Osc[1].Speed = t.SpeedRange.Dec(t.Osc[1].Speed)
	case input.Speed3Up:
		t.Osc[2].Speed = t.SpeedRange.Inc(t.Osc[2].Speed)
	case input.Speed3Down:
		t.Osc[2].Speed = t.SpeedRange.Dec(t.Osc[2].Speed)
	default:
		return false
	}
	return true
}

// Advance steps the oscillators by one tick.
func (t *Tunables) Advance() { t.Osc.Advance(t.Time) }

// Log dumps the current values.
func (t *Tunables) Log(l zerolog.Logger, scene string) {
	l.Info().
		Str("scene", scene).
		Int("time", t.Time).
		Int("space", t.Space).
		Int("t1", t.Osc[0].Speed).
		Int("t2", t.Osc[1].Speed).
		Int("t3", t.Osc[2].Speed).
		Msg("tunables")
}
