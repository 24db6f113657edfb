// Package sweep moves a white band across the installation along one axis,
// for checking the strip coordinate table by eye.
package sweep

import (
	"github.com/coreman2200/funtimes-boxhub/internal/input"
	"github.com/coreman2200/funtimes-boxhub/internal/layout"
	"github.com/coreman2200/funtimes-boxhub/internal/render"
)

type Axis int

const (
	X Axis = iota
	Y
	Z
)

// plan is the band geometry for one axis.
type plan struct {
	id      render.ID
	limit   int // t wraps when it reaches limit
	restart int
	width   int
}

var plans = map[Axis]plan{
	X: {id: render.XSweep, limit: 500, restart: -100, width: 100},
	Y: {id: render.YSweep, limit: 500, restart: -100, width: 100},
	Z: {id: render.ZSweep, limit: 200, restart: -20, width: 20},
}

// Sweep is the band runner for one axis.
type Sweep struct {
	axis Axis
	plan plan
	t    int
}

func New(axis Axis) *Sweep { return &Sweep{axis: axis, plan: plans[axis]} }

func (s *Sweep) ID() render.ID { return s.plan.id }
func (s *Sweep) Name() string  { return s.plan.id.String() }

func (s *Sweep) HandleKey(input.Command, input.Event, *render.Context) {}

// T is the band's leading position.
func (s *Sweep) T() int { return s.t }

func (s *Sweep) lit(p layout.Position) bool {
	switch s.axis {
	case X:
		v := p.X * 5
		return v > s.t && v < s.t+s.plan.width
	case Y:
		v := p.Y * 5
		return v > s.t && v < s.t+s.plan.width
	default:
		v := p.Depth * 5
		return v >= s.t && v < s.t+s.plan.width
	}
}

func (s *Sweep) Step(dst []render.Color, c *render.Context) {
	s.t++
	if s.t == s.plan.limit {
		s.t = s.plan.restart
	}
	c.Topo.Walk(func(p layout.Position) bool {
		if p.Index >= len(dst) {
			return false
		}
		if s.lit(p) {
			dst[p.Index] = render.White
		} else {
			dst[p.Index] = render.Black
		}
		return true
	})
}
