package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// ServerOptions configure optional server behavior.
type ServerOptions struct {
	// Targets enables file watching and live reload when ColorsPath is set.
	Targets WatchTargets
	// Regenerate, when set together with Targets.InputPath, runs on each input
	// change. Failures are logged and the server keeps running.
	Regenerate func() error
}

// Server wraps the HTTP server for the preview page and lookup API.
type Server struct {
	httpServer *http.Server
	watcher    *FileWatcher
	reloadHub  *ReloadHub
	log        logrus.FieldLogger
}

// NewServer creates a new server with the given handler and port.
func NewServer(handler *Handler, port int, opts ServerOptions, log logrus.FieldLogger) *Server {
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	var watcher *FileWatcher
	var reloadHub *ReloadHub

	if opts.Targets.ColorsPath != "" {
		reloadHub = NewReloadHub(log)
		mux.HandleFunc("GET /api/v1/ws", reloadHub.ServeWS)

		targets := opts.Targets
		if opts.Regenerate == nil {
			targets.InputPath = ""
		}

		var err error
		watcher, err = NewFileWatcher(targets, log)
		if err != nil {
			log.WithError(err).Warn("failed to create file watcher")
		} else {
			watcher.Subscribe(handler)
			watcher.Subscribe(reloadHub)
			if opts.Regenerate != nil {
				watcher.Subscribe(&regenerator{run: opts.Regenerate, log: log})
			}
			handler.SetLiveReload(true)
		}
	}

	wrapped := Logging(log, Cors(mux))

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      wrapped,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		watcher:   watcher,
		reloadHub: reloadHub,
		log:       log,
	}
}

// Start begins listening for HTTP requests. Blocks until shutdown.
func (s *Server) Start() error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			s.log.WithError(err).Warn("failed to start file watcher")
		}
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Stop()
	}

	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// regenerator re-runs generation when the input file changes.
type regenerator struct {
	run func() error
	log logrus.FieldLogger
}

// OnFileChange implements FileWatcherSubscriber.
func (r *regenerator) OnFileChange(change FileChange) {
	if change.Kind != FileChangeKindInput || change.Type == FileChangeDeleted {
		return
	}
	if err := r.run(); err != nil {
		r.log.WithError(err).Error("regenerate failed")
		return
	}
	r.log.Info("regenerated from changed input")
}
