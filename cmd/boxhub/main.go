package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-boxhub/internal/app"
	"github.com/coreman2200/funtimes-boxhub/internal/config"
	"github.com/coreman2200/funtimes-boxhub/internal/input"
	"github.com/coreman2200/funtimes-boxhub/internal/led"
)

type flags struct {
	config     string
	driver     string
	serial     string
	keyboard   string
	period     time.Duration
	logLevel   string
	diagnostic string
	seed       int64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:          "boxhub",
		Short:        "Drive the motion-reactive LED box",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &f)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&f.config, "config", "c", "config.yaml", "path to config.yaml")
	pf.StringVar(&f.logLevel, "log-level", "", "log level (trace|debug|info|warn|error)")

	fl := root.Flags()
	fl.StringVar(&f.driver, "driver", "", "driver: spi | pwm (needs the ws2811 build tag) | console | null")
	fl.StringVar(&f.serial, "serial", "", "sensor board serial device")
	fl.StringVar(&f.keyboard, "keyboard", "", "keyboard source: evdev | terminal | none")
	fl.DurationVar(&f.period, "period", 0, "sleep between ticks")
	fl.StringVar(&f.diagnostic, "diagnostic", "", "pin a diagnostic scene (x-sweep|y-sweep|z-sweep|strip-length)")
	fl.Int64Var(&f.seed, "seed", 0, "random seed (0 seeds from the clock)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the animation loop (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &f)
		},
	}
	runCmd.Flags().AddFlagSet(fl)

	root.AddCommand(runCmd, newKeysCmd(&f), newTopologyCmd(&f))
	return root
}

func setupLogging(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if level == "" {
		level = "info"
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level; using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// loadConfig reads the config file; a missing file falls back to the
// defaults so flags alone can drive a bench setup. Any other load error is
// returned.
func loadConfig(path string) (*config.Config, bool, error) {
	c, err := config.Load(path)
	if err == nil {
		return c, true, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, err
	}
	log.Warn().Str("path", path).Msg("no config file; using defaults")
	return config.Default(), false, nil
}

// applyFlags lets explicitly set flags override the config file.
func applyFlags(cmd *cobra.Command, f *flags, c *config.Config) {
	set := cmd.Flags().Changed
	if set("driver") {
		c.Driver.Name = led.Kind(f.driver)
	}
	if set("serial") {
		c.Serial.Dev = f.serial
	}
	if set("keyboard") {
		c.Keyboard.Source = f.keyboard
	}
	if set("period") {
		c.Loop.Period = f.period
	}
	if set("diagnostic") {
		c.Diagnostic = f.diagnostic
	}
	if set("seed") {
		c.Loop.Seed = f.seed
	}
	if set("log-level") {
		c.LogLevel = f.logLevel
	}
}

func run(cmd *cobra.Command, f *flags) error {
	setupLogging(f.logLevel)
	cfg, fromFile, err := loadConfig(f.config)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return err
	}
	applyFlags(cmd, f, cfg)
	setupLogging(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	loop, err := app.Open(cfg, log.Logger, cancel)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return err
	}

	watch := ""
	if fromFile {
		watch = f.config
	}
	if err := serve(ctx, loop, watch); err != nil {
		return err
	}
	log.Info().Msg("shut down")
	return nil
}

// serve runs the loop and, when watch names a config file, reloads its
// keymap on change. A broken watcher is logged and the loop keeps going.
func serve(ctx context.Context, loop *app.Loop, watch string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loop.Run(gctx) })
	if watch != "" {
		g.Go(func() error {
			err := config.Watch(gctx, watch, log.Logger, func(c *config.Config) {
				loop.SetKeymap(c.Keymap())
			})
			if err != nil {
				log.Warn().Err(err).Str("path", watch).Msg("config watch unavailable; keymap reload off")
			}
			return nil
		})
	}
	return g.Wait()
}

func newKeysCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Print the effective keymap and the unbound tunables per scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(f.logLevel)
			cfg, _, err := loadConfig(f.config)
			if err != nil {
				return err
			}
			return printKeys(cmd.OutOrStdout(), cfg.Keymap())
		},
	}
}

func printKeys(w io.Writer, km input.Keymap) error {
	b, err := yaml.Marshal(km)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	names := make([]string, 0, len(km.Scenes))
	for name := range km.Scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b := km.Scenes[name]
		if len(b) == 0 {
			continue
		}
		if missing := b.Unbound(input.TunableCommands); len(missing) > 0 && name != "strip-length" {
			fmt.Fprintf(w, "# %s: unbound %v\n", name, missing)
		}
	}
	return nil
}

func newTopologyCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "topology",
		Short: "Validate and print the strip table",
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(f.logLevel)
			cfg, _, err := loadConfig(f.config)
			if err != nil {
				return err
			}
			t := cfg.Topology
			if err := t.Validate(); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, s := range t.Strips {
				fmt.Fprintf(w, "%2d  start %4d  length %3d  x %3d  y %3d\n", i, t.Start(i), s.Length, s.X, s.Y)
			}
			fmt.Fprintf(w, "%d strips, %d leds, capacity %d\n", t.Zones(), t.Count(), t.Capacity)
			return nil
		},
	}
}
