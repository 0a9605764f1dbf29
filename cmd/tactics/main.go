package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tactics/internal/catalog"
	"tactics/internal/config"
)

type options struct {
	configPath   string
	scripts      []string
	out          string
	randomDeploy bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "tactics:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var opts options
	flags := pflag.NewFlagSet("tactics", pflag.ExitOnError)
	flags.StringVar(&opts.configPath, "config", "", "settings file (yaml, json or toml)")
	flags.StringSliceVar(&opts.scripts, "script", nil, "replay YAML script(s) instead of playing interactively")
	flags.StringVar(&opts.out, "out", "", "write replay JSON to this file instead of stdout")
	flags.BoolVar(&opts.randomDeploy, "random-deploy", false, "place units at random positions")
	flags.String("units", "", "unit catalog YAML (built-in roster when empty)")
	flags.Int("board-size", 8, "board side length")
	flags.Int("attacking-units", 3, "soldiers the attacking side places besides its leader")
	flags.Int("defending-units", 3, "soldiers the defending side places besides its leader")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.Int64("seed", 0, "seed for --random-deploy")
	if err := flags.Parse(args); err != nil {
		return err
	}

	settings, err := config.LoadSettings(opts.configPath, flags)
	if err != nil {
		return err
	}
	logger, err := NewLogger(settings.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	units, err := config.LoadUnits(settings.UnitsFile)
	if err != nil {
		return err
	}
	cat, err := catalog.New(units, logger)
	if err != nil {
		return err
	}

	if len(opts.scripts) > 0 {
		return runScripts(settings, cat, logger, opts)
	}
	return runInteractive(os.Stdin, os.Stdout, settings, cat, logger, opts.randomDeploy)
}

// NewLogger builds a production logger writing to stderr at the given level.
func NewLogger(level string) (*zap.SugaredLogger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
