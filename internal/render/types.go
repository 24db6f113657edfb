package render

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-boxhub/internal/input"
	"github.com/coreman2200/funtimes-boxhub/internal/layout"
	"github.com/coreman2200/funtimes-boxhub/internal/sensor"
	"github.com/coreman2200/funtimes-boxhub/internal/zone"
)

// ID names a scene. The first SceneCount ids are reachable from the sensor
// board and the scene keys; the rest are diagnostics that must be pinned.
type ID int

const (
	Plasma ID = iota
	Fire
	SolidColors
	Lightning
	SolidDarks
	RGBFlash
	SolidAll
	Statics
	Rainbow

	XSweep
	YSweep
	ZSweep
	StripLength
)

// SceneCount is the number of selectable scenes.
const SceneCount = 9

var idNames = [...]string{
	Plasma:      "plasma",
	Fire:        "fire",
	SolidColors: "solid-colors",
	Lightning:   "lightning",
	SolidDarks:  "solid-darks",
	RGBFlash:    "rgb-flash",
	SolidAll:    "solid-all",
	Statics:     "statics",
	Rainbow:     "rainbow",
	XSweep:      "x-sweep",
	YSweep:      "y-sweep",
	ZSweep:      "z-sweep",
	StripLength: "strip-length",
}

func (id ID) String() string {
	if id >= 0 && int(id) < len(idNames) {
		return idNames[id]
	}
	return fmt.Sprintf("scene(%d)", int(id))
}

// Diagnostic reports whether id is outside the selectable cycle.
func (id ID) Diagnostic() bool { return id >= SceneCount && int(id) < len(idNames) }

// ParseID resolves a scene name.
func ParseID(s string) (ID, error) {
	for i, n := range idNames {
		if n == s {
			return ID(i), nil
		}
	}
	return 0, fmt.Errorf("unknown scene %q", s)
}

// Context is what a scene sees during one tick.
type Context struct {
	Topo  layout.Topology
	Frame *sensor.Frame
	Zones *zone.Tracker
	Rand  *rand.Rand
	// Selected is the selector state after this tick's key handling.
	Selected ID
	Log      zerolog.Logger
}

// Scene renders one pattern. Implementations keep their own state between
// ticks; it survives switching away and back.
type Scene interface {
	ID() ID
	Name() string
	// HandleKey applies a command from the scene's key table.
	HandleKey(cmd input.Command, ev input.Event, c *Context)
	// Step advances one tick and fills dst for every LED of c.Topo.
	Step(dst []Color, c *Context)
}

// LayoutOverride is implemented by scenes that draw against their own strip
// table, which the compositor then follows.
type LayoutOverride interface {
	Layout() layout.Topology
}

type Registry struct{ m map[ID]Scene }

func NewRegistry() *Registry { return &Registry{m: map[ID]Scene{}} }

func (r *Registry) Register(s Scene) {
	if s == nil {
		return
	}
	r.m[s.ID()] = s
}

func (r *Registry) Get(id ID) (Scene, bool) {
	s, ok := r.m[id]
	return s, ok
}

// List returns the registered ids in order.
func (r *Registry) List() []ID {
	out := make([]ID, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
