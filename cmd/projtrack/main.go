package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/projtrack/internal/buildinfo"
	"github.com/dmitrijs2005/projtrack/internal/cli"
	"github.com/dmitrijs2005/projtrack/internal/config"
	"github.com/dmitrijs2005/projtrack/internal/identity"
	"github.com/dmitrijs2005/projtrack/internal/logging"
	"github.com/dmitrijs2005/projtrack/internal/projects"
	"github.com/dmitrijs2005/projtrack/internal/storage"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}
	if z, ok := logger.(*logging.ZapLogger); ok {
		defer func() { _ = z.Sync() }()
	}

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Error(ctx, "close storage", "error", err)
		}
	}()
	logger.Info(ctx, "storage ready", "driver", cfg.StorageDriver)

	ids, err := identity.NewStore(ctx, backend.Store, logger)
	if err != nil {
		return err
	}
	ps, err := projects.NewStore(ctx, backend.Store, logger)
	if err != nil {
		return err
	}

	app := cli.NewApp(ids, ps, logger, cli.WithDownloadDir(cfg.DownloadDir))
	app.Run(ctx)
	return nil
}
