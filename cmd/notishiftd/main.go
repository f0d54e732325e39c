// Package main is the entry point for the notishiftd repositioning daemon.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/notishift/notishift/internal/atspi"
	"github.com/notishift/notishift/internal/config"
	"github.com/notishift/notishift/internal/control"
	"github.com/notishift/notishift/internal/daemon"
	"github.com/notishift/notishift/internal/element"
	"github.com/notishift/notishift/internal/engine"
	"github.com/notishift/notishift/internal/geometry"
	"github.com/notishift/notishift/internal/screens"
	"github.com/notishift/notishift/internal/store"
)

var (
	// Build-time variables (set via ldflags)
	version = "dev"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: ~/.config/notishift/config.toml)")
	dryRun := flag.Bool("dry-run", false, "Log moves instead of applying them")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		println("notishiftd version", version)
		os.Exit(0)
	}

	logLevel := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := run(*configPath, *dryRun, *debug, logLevel, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, dryRun, debug bool, logLevel *slog.LevelVar, logger *slog.Logger) error {
	if configPath == "" {
		configPath = config.ConfigPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if debug || cfg.Log.Debug {
		logLevel.Set(slog.LevelDebug)
	}
	if dryRun {
		cfg.Engine.DryRun = true
	}

	// The persisted anchor wins over the config default.
	statePath, err := store.StatePath()
	if err != nil {
		return err
	}
	state, err := store.LoadState(statePath)
	if err != nil {
		return err
	}
	anchorValue := state.Anchor
	if state.UpdatedAt == 0 {
		anchorValue = cfg.Engine.Anchor
	}
	anchor, err := geometry.ParseAnchor(anchorValue)
	if err != nil {
		return err
	}

	adapter, err := atspi.Connect(logger)
	if err != nil {
		return err
	}
	defer adapter.Close()

	// Introspection must never run untrusted. Ask once, then give up.
	trusted, err := adapter.Trusted()
	if err != nil {
		return err
	}
	if !trusted {
		logger.Warn("accessibility support disabled, requesting it")
		if err := adapter.RequestTrust(); err != nil {
			return err
		}
		if trusted, err = adapter.Trusted(); err != nil {
			return err
		}
		if !trusted {
			return errors.New("accessibility support declined, cannot continue")
		}
	}

	screenSource, err := screens.NewX11Source(logger)
	if err != nil {
		return err
	}
	defer screenSource.Close()

	var acc element.Accessor = adapter
	if cfg.Engine.DryRun {
		logger.Info("dry-run mode: moves are logged, not applied")
		acc = element.NewDryRun(adapter, logger)
	}

	eng := engine.New(acc, adapter, screenSource, engine.Options{
		Process:     cfg.Engine.Process,
		Anchor:      anchor,
		ReassertFor: cfg.Engine.ReassertFor.Duration(),
	}, logger)

	d := daemon.New(cfg, eng, statePath, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := adapter.Subscribe(ctx, cfg.Engine.Process, d.Events()); err != nil {
		return err
	}

	ctrl := control.NewServer(d.ControlHandlers(), logger)
	if err := ctrl.Start(); err != nil {
		return err
	}
	defer ctrl.Stop()

	watcher, err := daemon.NewConfigWatcher(d, configPath, logLevel, logger)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		logger.Warn("config hot-reload unavailable", "error", err)
	} else {
		defer watcher.Stop()
	}

	logger.Info("notishiftd started", "version", version, "anchor", string(anchor))
	return d.Run(ctx)
}
