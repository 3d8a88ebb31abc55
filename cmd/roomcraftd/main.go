// roomcraftd serves RoomCraft designer sessions over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/piwi3910/RoomCraft/internal/config"
	"github.com/piwi3910/RoomCraft/internal/logger"
	"github.com/piwi3910/RoomCraft/internal/server"
	"github.com/piwi3910/RoomCraft/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	flags, err := config.ParseFlags("roomcraftd", os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "roomcraftd: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := store.Open(ctx, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer kv.Close()

	srv := server.New(server.Options{
		Server:      cfg.Server,
		Auth:        cfg.Auth,
		ScaleFactor: cfg.Designer.ScaleFactor,
		Store:       kv,
		Logger:      log,
		AccessLog:   cfg.Logging.Level == "debug",
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
