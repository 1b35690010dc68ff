// Package server exposes the approved-worlds feed over HTTP: the raw export
// resource, a server-rendered list view with the same sort/filter contract
// as the export viewer, and a small status endpoint.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"worldfeed/internal/config"
	"worldfeed/internal/feed"
	"worldfeed/internal/logging"
	"worldfeed/internal/viewer"
)

// Server serves the export feed and its rendered view.
type Server struct {
	bind       string
	exportPath string
	logger     *slog.Logger

	mu      sync.RWMutex
	raw     []byte
	view    *viewer.View
	loadErr error

	listener net.Listener
	server   *http.Server
	watcher  *exportWatcher
}

// New builds a server bound to the configured API address.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	bind := cfg.Paths.APIBind
	if bind == "" {
		return nil, errors.New("server: paths.api_bind is not configured")
	}

	srv := &Server{
		bind:       bind,
		exportPath: cfg.Paths.ExportPath,
		logger:     logging.WithComponent(logger, "server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleIndex)
	mux.HandleFunc("/"+feed.ExportFileName, srv.handleExport)
	mux.HandleFunc("/api/status", srv.handleStatus)

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// Start loads the export once, begins watching it for regeneration, and
// starts serving until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	s.reload()

	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("server listen: %w", err)
	}
	s.listener = listener

	watcher, err := watchExport(s.exportPath, s.reload, s.logger)
	if err != nil {
		s.logger.Warn("export watch unavailable", logging.Error(err))
	} else {
		s.watcher = watcher
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("server listening",
		logging.String("address", listener.Addr().String()),
		logging.String("export", s.exportPath))
	return nil
}

// Close shuts the server down immediately.
func (s *Server) Close() error {
	if s.watcher != nil {
		s.watcher.close()
		s.watcher = nil
	}
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}

// Addr returns the bound listen address, or the configured bind before
// Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.bind
}

// reload starts a fresh load cycle: the export file is read and decoded
// once, and every later render works from this in-memory copy. A failed
// load is terminal for the cycle and renders as viewer.FailedToLoad.
func (s *Server) reload() {
	raw, err := os.ReadFile(s.exportPath)
	var view *viewer.View
	if err == nil {
		var worlds []feed.World
		if worlds, err = feed.Decode(bytes.NewReader(raw)); err == nil {
			view = viewer.New(worlds)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.raw = nil
		s.view = nil
		s.loadErr = err
		s.logger.Warn("export load failed", logging.Error(err))
		return
	}
	s.raw = raw
	s.view = view
	s.loadErr = nil
	s.logger.Info("export loaded", logging.Int("worlds", len(view.Worlds())))
}

func (s *Server) snapshot() ([]byte, *viewer.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw, s.view, s.loadErr
}
