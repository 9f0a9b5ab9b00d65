// forgebridge hosts the editor automation bridge: an HTTP + WebSocket
// endpoint an LLM controller drives with named commands against the
// project's asset root and scene graph.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/forgebridge/forgebridge/pkg/asset"
	"github.com/forgebridge/forgebridge/pkg/command"
	"github.com/forgebridge/forgebridge/pkg/config"
	"github.com/forgebridge/forgebridge/pkg/handlers"
	"github.com/forgebridge/forgebridge/pkg/material"
	"github.com/forgebridge/forgebridge/pkg/scene"
	"github.com/forgebridge/forgebridge/pkg/server"
)

// Version information - set via ldflags during build
var (
	version   = "1.0.0-dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "forgebridge.yaml", "path to the configuration file")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("forgebridge %s (%s, built %s)\n", version, commit, buildDate)
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "forgebridge: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadFromPath(configPath)
	if err != nil {
		return err
	}

	log := newLogger(cfg.Logging.Level)

	rootDir, err := filepath.Abs(cfg.Assets.RootDir)
	if err != nil {
		return fmt.Errorf("resolving asset root: %w", err)
	}
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return fmt.Errorf("creating asset root: %w", err)
	}
	assets := asset.NewFSStore(cfg.Assets.RootName, rootDir)

	backend, err := material.ParseBackend(cfg.Rendering.Pipeline)
	if err != nil {
		return err
	}

	registry := command.NewRegistry(command.WithLogger(log))
	registry.Use(server.MetricsMiddleware())
	handlers.Register(registry, handlers.Deps{
		Assets:    assets,
		Graph:     scene.NewMemoryGraph(),
		Behaviors: scene.DefaultBehaviors(),
		Materials: material.NewStore(assets),
		Backend:   backend,
	})

	srv := server.New(cfg.Server, registry, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Start(ctx) })

	if cfg.Assets.Watch {
		watcher := asset.NewWatcher(assets.PathRules(), log)
		g.Go(func() error {
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("asset watcher: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			srv.ForwardAssetEvents(ctx, watcher.Events())
			return nil
		})
	}

	log.Info("forgebridge started",
		slog.String("version", version),
		slog.String("bind", cfg.Server.Bind),
		slog.String("assetRoot", rootDir),
		slog.String("pipeline", backend.String()),
	)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("forgebridge stopped")
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
