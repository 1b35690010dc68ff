// Package daemon coordinates the worldfeedd background services: the HTTP
// feed server and the periodic metric snapshot loop. A lock file enforces a
// single running instance.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"worldfeed/internal/config"
	"worldfeed/internal/export"
	"worldfeed/internal/logging"
	"worldfeed/internal/server"
	"worldfeed/internal/store"
	"worldfeed/internal/vrchat"
	"worldfeed/internal/world"
)

// Daemon owns the background services and the single-instance lock.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *store.Store
	client   *vrchat.Client
	exporter *export.Exporter
	server   *server.Server

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, st *store.Store, client *vrchat.Client, exporter *export.Exporter, srv *server.Server, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || st == nil || client == nil || exporter == nil || srv == nil {
		return nil, errors.New("daemon requires config, store, client, exporter, and server")
	}
	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "daemon"),
		store:    st,
		client:   client,
		exporter: exporter,
		server:   srv,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and launches the services.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another worldfeedd instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.server.Start(runCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return err
	}
	d.cancel = cancel

	if d.cfg.Snapshots.Enabled {
		d.wg.Add(1)
		go d.snapshotLoop(runCtx)
	}

	d.running.Store(true)
	d.logger.Info("worldfeedd started", logging.String("lock", d.lockPath))
	return nil
}

// Stop stops the services and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.wg.Wait()
	_ = d.server.Close()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("worldfeedd stopped")
}

// Close stops the daemon and releases held resources.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

func (d *Daemon) snapshotLoop(ctx context.Context) {
	defer d.wg.Done()

	interval := time.Duration(d.cfg.Snapshots.IntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.logger.Info("snapshot loop started", logging.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.runSnapshotRound(ctx)
		}
	}
}

// runSnapshotRound refreshes every tracked world, appends a history point
// per success, and regenerates the export when configured. Per-world
// failures are logged and skipped so one dead world cannot stall the round.
func (d *Daemon) runSnapshotRound(ctx context.Context) {
	items, err := d.store.List(ctx, store.StatusPending, store.StatusApproved)
	if err != nil {
		d.logger.Error("list worlds for snapshot", logging.Error(err))
		return
	}

	captured := 0
	for _, item := range items {
		if ctx.Err() != nil {
			return
		}
		rec, err := d.client.FetchWorld(ctx, item.ID)
		if err != nil {
			d.logger.Warn("refresh world",
				logging.String("world", item.ID),
				logging.Error(err))
			continue
		}
		if _, _, err := d.store.Upsert(ctx, rec); err != nil {
			d.logger.Warn("store refreshed world",
				logging.String("world", item.ID),
				logging.Error(err))
			continue
		}
		snap := world.Snapshot{
			WorldID:    rec.ID,
			CapturedAt: time.Now().UTC(),
			Visits:     rec.Visits,
			Favorites:  rec.Favorites,
			Heat:       rec.Heat,
			Popularity: rec.Popularity,
			UpdatedAt:  rec.UpdatedAt,
		}
		if err := d.store.AddSnapshot(ctx, snap); err != nil {
			d.logger.Warn("append snapshot",
				logging.String("world", rec.ID),
				logging.Error(err))
			continue
		}
		captured++
	}

	d.logger.Info("snapshot round complete",
		logging.Int("worlds", len(items)),
		logging.Int("captured", captured))

	if d.cfg.Snapshots.AutoExport && captured > 0 {
		if _, err := d.exporter.Run(ctx, d.store); err != nil {
			d.logger.Error("auto export", logging.Error(err))
		}
	}
}
