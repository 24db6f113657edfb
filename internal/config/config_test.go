package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-boxhub/internal/input"
	"github.com/coreman2200/funtimes-boxhub/internal/layout"
	"github.com/coreman2200/funtimes-boxhub/internal/led"
)

func write(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 689, c.Topology.Count())
	assert.Equal(t, led.KindPWM, c.Driver.Name)
	assert.Equal(t, led.KindConsole, c.Driver.Fallback, "builds without ws2811 still run")
	assert.Equal(t, time.Millisecond, c.Loop.Period)
	assert.Equal(t, input.DefaultKeymap(), c.Keymap())
	assert.Zero(t, c.Limiter().BudgetMA)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	write(t, path, `
driver:
  name: console
  console_every: 10
loop:
  period: 2ms
  seed: 99
keyboard:
  source: terminal
serial:
  dev: ""
  synth_every: 40
keys:
  scenes:
    plasma:
      30: speed1-down
      16: speed1-up
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, led.KindConsole, c.Driver.Name)
	assert.Equal(t, 10, c.Driver.ConsoleEvery)
	assert.Equal(t, 2*time.Millisecond, c.Loop.Period)
	assert.Equal(t, int64(99), c.Loop.Seed)
	assert.Equal(t, 40, c.Serial.SynthEvery)
	assert.Empty(t, c.Serial.Dev)
	assert.Equal(t, layout.Installation(), c.Topology, "strips default when absent")
	assert.Equal(t, led.DefaultDMA, c.Driver.PWM.DMA)

	km := c.Keymap()
	g, l := km.Lookup("plasma", input.KeyA)
	assert.Equal(t, input.None, g)
	assert.Equal(t, input.Speed1Down, l)
	_, l = km.Lookup("plasma", input.KeyLeft)
	assert.Equal(t, input.None, l, "a listed table replaces the stock one")
	_, l = km.Lookup("fire", input.KeyLeft)
	assert.Equal(t, input.TimeDown, l)
}

func TestLoadTopology(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	write(t, path, `
topology:
  capacity: 10
  strips:
    - {length: 4, x: 1, y: 2}
    - {length: 5, x: 3, y: 4}
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, c.Topology.Count())
	assert.Equal(t, layout.Strip{Length: 5, X: 3, Y: 4}, c.Topology.Strips[1])
}

func TestLoadRejects(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"capacity":   "topology: {capacity: 3, strips: [{length: 4}]}",
		"driver":     "driver: {name: laser}",
		"fallback":   "driver: {name: spi, fallback: laser}",
		"keyboard":   "keyboard: {source: mouse}",
		"diagnostic": "diagnostic: plasma",
		"command":    "keys: {global: {13: dance}}",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			write(t, path, body)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := Default()
	c.Diagnostic = "strip-length"
	c.Keys = input.Keymap{
		Global: input.Bindings{input.KeyP: input.NextScene},
		Scenes: map[string]input.Bindings{},
	}
	require.NoError(t, Save(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	write(t, path, "driver: {name: \"null\"}\n")

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, zerolog.Nop(), func(c *Config) { got <- c })
	}()

	// give the watcher time to register before the write
	time.Sleep(100 * time.Millisecond)
	write(t, path, "driver: {name: \"null\"}\nkeys: {global: {25: next-scene}}\n")

	select {
	case c := <-got:
		g, _ := c.Keymap().Lookup("plasma", input.KeyP)
		assert.Equal(t, input.NextScene, g)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload")
	}

	cancel()
	require.NoError(t, <-done)
}
