package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cpcf/metergen/config"
	"github.com/cpcf/metergen/generator"
	"github.com/cpcf/metergen/watch"
)

type GenerateCmd struct {
	Config        string `help:"Path to the generator configuration" short:"c" default:"${config_file}" type:"path" env:"METERGEN_CONFIG"`
	AllowBreaking bool   `help:"Write outputs even when identifiers were removed, renamed or renumbered"`
	DryRun        bool   `help:"Report what would be written without touching any file" short:"n"`
}

// Run is called by Kong when the generate command is executed.
func (c *GenerateCmd) Run(logger *slog.Logger) error {
	cfg, err := config.LoadGenerator(c.Config)
	if err != nil {
		return err
	}
	logger.Debug("loaded configuration", "path", c.Config, "dir", cfg.Dir())

	res, err := generator.New(cfg, logger).Generate(generator.Options{
		AllowBreaking: c.AllowBreaking,
		DryRun:        c.DryRun,
	})
	if err != nil {
		return err
	}
	for _, path := range res.Report.Stale {
		logger.Info("consider deleting", "path", path)
	}
	return nil
}

type CheckCmd struct {
	Config string `help:"Path to the generator configuration" short:"c" default:"${config_file}" type:"path" env:"METERGEN_CONFIG"`
}

func (c *CheckCmd) Run(logger *slog.Logger) error {
	cfg, err := config.LoadGenerator(c.Config)
	if err != nil {
		return err
	}
	if err := generator.New(cfg, logger).Check(); err != nil {
		return err
	}
	logger.Info("generated files are up to date")
	return nil
}

type WatchCmd struct {
	Config        string        `help:"Path to the generator configuration" short:"c" default:"${config_file}" type:"path" env:"METERGEN_CONFIG"`
	AllowBreaking bool          `help:"Write outputs even when identifiers were removed, renamed or renumbered"`
	Debounce      time.Duration `help:"How long to wait for more changes before regenerating" default:"300ms"`
}

// Run regenerates on every change to the tables, the translation templates
// or the configuration until interrupted.
func (c *WatchCmd) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generate := func() error {
		cfg, err := config.LoadGenerator(c.Config)
		if err != nil {
			return err
		}
		_, err = generator.New(cfg, logger).Generate(generator.Options{AllowBreaking: c.AllowBreaking})
		return err
	}

	cfg, err := config.LoadGenerator(c.Config)
	if err != nil {
		return err
	}
	if err := generate(); err != nil {
		logger.Error("generation failed", "error", err)
	}

	files := append(generator.New(cfg, logger).Inputs(), c.Config)
	w, err := watch.New(files, c.Debounce, logger)
	if err != nil {
		return err
	}
	logger.Info("watching for changes", "files", len(files))
	return w.Run(ctx, generate)
}
