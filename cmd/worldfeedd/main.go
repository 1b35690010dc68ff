// Command worldfeedd runs the worldfeed daemon: it serves the approved
// worlds feed over HTTP, reloads the feed when the export file changes, and
// periodically refreshes world metrics from the VRChat API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"worldfeed/internal/config"
	"worldfeed/internal/daemon"
	"worldfeed/internal/export"
	"worldfeed/internal/logging"
	"worldfeed/internal/server"
	"worldfeed/internal/store"
	"worldfeed/internal/vrchat"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "worldfeedd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to the configuration file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, _, _, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}

	client := vrchat.NewClient(cfg)
	exporter := export.New(cfg, logger)

	d, err := daemon.New(cfg, st, client, exporter, srv, logger)
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		return err
	}
	logger.Info("daemon started", logging.String("bind", srv.Addr()))

	<-ctx.Done()
	logger.Info("shutting down")
	d.Stop()
	return nil
}
