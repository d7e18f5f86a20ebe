// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server serves the strategy dashboard: the cached scan as JSON at
// /api/data, Prometheus metrics at /metrics, and the embedded front end.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/strategy-dashboard/internal/cache"
	"github.com/pdiddy/strategy-dashboard/pkg/types"
)

//go:embed static/*
var staticFiles embed.FS

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	shutdownTimeout     = 5 * time.Second
)

// Server is the dashboard HTTP server.
type Server struct {
	cfg      types.ServerConfig
	cache    *cache.Cache
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	static   fs.FS
}

// New creates a Server that serves snapshots from c and metrics gathered
// from gatherer. A nil gatherer serves the default Prometheus registry.
func New(cfg types.ServerConfig, c *cache.Cache, gatherer prometheus.Gatherer, logger *slog.Logger) (*Server, error) {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("static files: %w", err)
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:      cfg,
		cache:    c,
		gatherer: gatherer,
		logger:   logger,
		static:   static,
	}, nil
}

// Handler returns the routed handler wrapped in request-ID and logging
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/data", s.handleData)
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	mux.Handle("GET /", http.FileServerFS(s.static))

	return withRequestID(s.withLogging(mux))
}

// Run listens on the configured port until ctx is cancelled, then shuts the
// server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	readTimeout := s.cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}
	writeTimeout := s.cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Dashboard listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving dashboard: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down dashboard: %w", err)
	}
	return nil
}

// handleIndex serves the embedded index.html.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	content, err := fs.ReadFile(s.static, "index.html")
	if err != nil {
		http.Error(w, "index.html not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// handleData serves the cached scan snapshot. Last-Modified carries the
// time of the scan that produced it.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	content, err := json.MarshalIndent(s.cache.Get(), "", "  ")
	if err != nil {
		s.logger.Error("Failed to encode snapshot", "error", err)
		http.Error(w, "encoding snapshot", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.Header().Set("Cache-Control", "no-cache")
	if at, ok := s.cache.FetchedAt(); ok {
		w.Header().Set("Last-Modified", at.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}
