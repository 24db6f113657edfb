// Package calib is the strip-length calibration display. One strip is lit
// at a time; its length can be nudged until the lit run ends exactly at the
// physical strip end, then the table is printed for the config file.
package calib

import (
	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-boxhub/internal/input"
	"github.com/coreman2200/funtimes-boxhub/internal/layout"
	"github.com/coreman2200/funtimes-boxhub/internal/render"
)

type StripLength struct {
	topo   layout.Topology
	active int
}

// New starts from a copy of topo's strip table.
func New(topo layout.Topology) *StripLength {
	strips := make([]layout.Strip, len(topo.Strips))
	copy(strips, topo.Strips)
	return &StripLength{topo: layout.Topology{Strips: strips, Capacity: topo.Capacity}}
}

func (s *StripLength) ID() render.ID { return render.StripLength }
func (s *StripLength) Name() string  { return render.StripLength.String() }

// Layout is the strip table being calibrated.
func (s *StripLength) Layout() layout.Topology { return s.topo }

// ActiveStrip is the strip currently lit.
func (s *StripLength) ActiveStrip() int { return s.active }

// HandleKey acts on presses only; auto-repeat would overshoot.
func (s *StripLength) HandleKey(cmd input.Command, ev input.Event, c *render.Context) {
	if ev.Value != input.Press {
		return
	}
	n := len(s.topo.Strips)
	switch cmd {
	case input.StripNext:
		s.active = (s.active + 1) % n
	case input.StripPrev:
		s.active = (s.active + n - 1) % n
	case input.LengthUp:
		if s.topo.Count() < s.topo.Capacity {
			s.topo.Strips[s.active].Length++
		}
	case input.LengthDown:
		if s.topo.Strips[s.active].Length > 1 {
			s.topo.Strips[s.active].Length--
		}
	case input.Print:
		out, err := yaml.Marshal(struct {
			Strips []layout.Strip `yaml:"strips"`
		}{s.topo.Strips})
		if err != nil {
			c.Log.Error().Err(err).Msg("strip table")
			return
		}
		c.Log.Info().Msgf("strip table:\n%s", out)
		return
	default:
		return
	}
	c.Log.Info().
		Int("strip", s.active).
		Int("length", s.topo.Strips[s.active].Length).
		Msg("calibrate")
}

func (s *StripLength) Step(dst []render.Color, _ *render.Context) {
	s.topo.Walk(func(p layout.Position) bool {
		if p.Index >= len(dst) {
			return false
		}
		if p.Strip == s.active {
			dst[p.Index] = render.White
		} else {
			dst[p.Index] = render.Black
		}
		return true
	})
}
