// Package scenes assembles the stock scene set.
package scenes

import (
	"math/rand"

	"github.com/coreman2200/funtimes-boxhub/internal/layout"
	"github.com/coreman2200/funtimes-boxhub/internal/render"
	"github.com/coreman2200/funtimes-boxhub/internal/render/scenes/calib"
	"github.com/coreman2200/funtimes-boxhub/internal/render/scenes/fire"
	"github.com/coreman2200/funtimes-boxhub/internal/render/scenes/flash"
	"github.com/coreman2200/funtimes-boxhub/internal/render/scenes/lightning"
	"github.com/coreman2200/funtimes-boxhub/internal/render/scenes/plasma"
	"github.com/coreman2200/funtimes-boxhub/internal/render/scenes/solid"
	"github.com/coreman2200/funtimes-boxhub/internal/render/scenes/sweep"
)

// Registry returns every scene, selectable and diagnostic, sized for topo.
// rng seeds the initial solid colours.
func Registry(topo layout.Topology, rng *rand.Rand) *render.Registry {
	zones := topo.Zones()
	reg := render.NewRegistry()
	reg.Register(plasma.NewPlasma())
	reg.Register(fire.New(zones))
	reg.Register(solid.NewColors(zones, rng))
	reg.Register(lightning.New(zones))
	reg.Register(solid.NewDarks(zones, rng))
	reg.Register(flash.NewRGB())
	reg.Register(solid.NewAll())
	reg.Register(flash.NewStatics())
	reg.Register(plasma.NewRainbow())

	reg.Register(sweep.New(sweep.X))
	reg.Register(sweep.New(sweep.Y))
	reg.Register(sweep.New(sweep.Z))
	reg.Register(calib.New(topo))
	return reg
}
