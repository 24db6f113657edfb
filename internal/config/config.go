// Package config loads the installation's YAML settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-boxhub/internal/diagnostics"
	"github.com/coreman2200/funtimes-boxhub/internal/input"
	"github.com/coreman2200/funtimes-boxhub/internal/layout"
	"github.com/coreman2200/funtimes-boxhub/internal/led"
	"github.com/coreman2200/funtimes-boxhub/internal/render"
	"github.com/coreman2200/funtimes-boxhub/internal/sensor"
)

// Keyboard sources.
const (
	KeyboardEvdev    = "evdev"
	KeyboardTerminal = "terminal"
	KeyboardNone     = "none"
)

type Serial struct {
	sensor.SerialConfig `yaml:",inline"`
	// SynthEvery, when Dev is empty, feeds a synthetic frame every N ticks.
	SynthEvery int `yaml:"synth_every,omitempty"`
}

type Keyboard struct {
	Source string `yaml:"source"`
	Dev    string `yaml:"dev,omitempty"`
}

type Driver struct {
	Name led.Kind `yaml:"name"`
	// Fallback is used when Name fails to open; empty makes that fatal.
	Fallback     led.Kind      `yaml:"fallback,omitempty"`
	SPI          led.SPIConfig `yaml:"spi"`
	PWM          led.PWMConfig `yaml:"pwm"`
	ConsoleEvery int           `yaml:"console_every"`
}

type Loop struct {
	Period      time.Duration `yaml:"period"`
	ReportEvery int           `yaml:"report_every"`
	// Seed fixes the random source; zero seeds from the clock.
	Seed int64 `yaml:"seed,omitempty"`
}

type Power struct {
	ChanMA   int `yaml:"chan_ma"`
	BudgetMA int `yaml:"budget_ma"`
}

type Config struct {
	LogLevel   string          `yaml:"log_level"`
	Topology   layout.Topology `yaml:"topology"`
	Serial     Serial          `yaml:"serial"`
	Keyboard   Keyboard        `yaml:"keyboard"`
	Driver     Driver          `yaml:"driver"`
	Loop       Loop            `yaml:"loop"`
	Power      Power           `yaml:"power"`
	Diagnostic string          `yaml:"diagnostic,omitempty"`
	// Keys overlays the stock keymap; a table listed here replaces the
	// stock table of the same name.
	Keys input.Keymap `yaml:"keys,omitempty"`
}

var ErrInvalid = errors.New("config: invalid")

// Default is the stock installation: the 23-strip box on a ws2811 PWM
// output with the sensor board on its USB serial bridge. PWM needs a build
// with the ws2811 tag; other builds fall back to the console preview.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Topology: layout.Installation(),
		Serial: Serial{SerialConfig: sensor.SerialConfig{
			Dev:  "/dev/serial/by-id/usb-Silicon_Labs_CP2102_USB_to_UART_Bridge_Controller_0001-if00-port0",
			Baud: sensor.DefaultBaud,
		}},
		Keyboard: Keyboard{Source: KeyboardEvdev, Dev: "/dev/input/event0"},
		Driver: Driver{
			Name:     led.KindPWM,
			Fallback: led.KindConsole,
			SPI:      led.SPIConfig{SpeedHz: led.DefaultSpeedHz},
			PWM: led.PWMConfig{
				GPIO:       led.DefaultGPIO,
				DMA:        led.DefaultDMA,
				Brightness: led.DefaultBrightness,
				Order:      led.DefaultOrder,
			},
			ConsoleEvery: 50,
		},
		Loop: Loop{
			Period:      time.Millisecond,
			ReportEvery: diagnostics.DefaultReportEvery,
		},
		Power: Power{ChanMA: 20},
	}
}

// Load reads path over the defaults. Sections missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	c.Topology.Strips = nil
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(c.Topology.Strips) == 0 {
		c.Topology.Strips = layout.Installation().Strips
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate checks the settings that would otherwise fail deep in startup.
func (c *Config) Validate() error {
	if err := c.Topology.Validate(); err != nil {
		return err
	}
	if c.Topology.Zones() > sensor.MaxZones {
		return fmt.Errorf("%d strips, frame carries %d zones: %w", c.Topology.Zones(), sensor.MaxZones, ErrInvalid)
	}
	switch c.Keyboard.Source {
	case KeyboardEvdev, KeyboardTerminal, KeyboardNone:
	default:
		return fmt.Errorf("keyboard source %q: %w", c.Keyboard.Source, ErrInvalid)
	}
	if !validDriver(c.Driver.Name) {
		return fmt.Errorf("driver %q: %w", c.Driver.Name, ErrInvalid)
	}
	if c.Driver.Fallback != "" && !validDriver(c.Driver.Fallback) {
		return fmt.Errorf("fallback driver %q: %w", c.Driver.Fallback, ErrInvalid)
	}
	if c.Loop.Period < 0 {
		return fmt.Errorf("loop period %s: %w", c.Loop.Period, ErrInvalid)
	}
	if c.Diagnostic != "" {
		id, err := render.ParseID(c.Diagnostic)
		if err != nil || !id.Diagnostic() {
			return fmt.Errorf("diagnostic scene %q: %w", c.Diagnostic, ErrInvalid)
		}
	}
	return nil
}

func validDriver(k led.Kind) bool {
	switch k {
	case led.KindSPI, led.KindPWM, led.KindConsole, led.KindNull:
		return true
	}
	return false
}

// Keymap is the stock keymap with the file's tables laid over it.
func (c *Config) Keymap() input.Keymap {
	return input.DefaultKeymap().Merge(c.Keys)
}

// Limiter is the power limiter the loop applies; a zero budget disables it.
func (c *Config) Limiter() render.Limiter {
	return render.Limiter{ChanMA: c.Power.ChanMA, BudgetMA: c.Power.BudgetMA}
}
