// Package api exposes the grid compositor over HTTP.
//
// The server accepts multipart compose requests, runs the shared pipeline,
// and holds the encoded artifacts in memory for a short time so clients can
// download each format separately.
//
// # Endpoints
//
//	GET  /                          minimal upload form
//	GET  /healthz                   liveness probe
//	GET  /presets                   built-in preset listing
//	POST /compose                   multipart images + options -> artifact manifest
//	GET  /artifacts/{id}/{filename} download one encoded artifact
//
// Artifacts expire after DefaultTTL; nothing is persisted.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP surface over the compose pipeline.
type Server struct {
	logger *log.Logger
	store  *Store

	// maxUploadBytes bounds the multipart request body.
	maxUploadBytes int64
}

// NewServer creates a Server with an empty artifact store.
func NewServer(logger *log.Logger) *Server {
	return &Server{
		logger:         logger,
		store:          NewStore(DefaultTTL),
		maxUploadBytes: 64 << 20,
	}
}

// Routes returns the chi router for the server.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/presets", s.handlePresets)
	r.Post("/compose", s.handleCompose)
	r.Get("/artifacts/{id}/{filename}", s.handleArtifact)
	return r
}

// Run serves HTTP on addr until ctx is canceled, then shuts down
// gracefully. Expired artifacts are swept in the background.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweep(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("server listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) sweep(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := s.store.Cleanup(); dropped > 0 {
				s.logger.Debug("swept expired jobs", "count", dropped)
			}
		}
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
