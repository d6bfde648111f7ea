package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/roach88/recipebox/internal/flash"
	"github.com/roach88/recipebox/internal/recipe"
)

// DefaultAddr matches the port the catalog has always listened on.
const DefaultAddr = "127.0.0.1:5006"

// DefaultShutdownTimeout bounds graceful shutdown.
const DefaultShutdownTimeout = 5 * time.Second

// RecipeStore is the subset of store.Store the handlers need.
type RecipeStore interface {
	List(ctx context.Context) ([]recipe.Recipe, error)
	ListByCategory(ctx context.Context, category string) ([]recipe.Recipe, error)
	Get(ctx context.Context, id int64) (recipe.Recipe, error)
	Create(ctx context.Context, r recipe.Recipe) (recipe.Recipe, error)
	Categories(ctx context.Context) ([]string, error)
}

// Config holds listener settings.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Server routes catalog requests. It implements http.Handler.
type Server struct {
	recipes RecipeStore
	flashes *flash.Store
	views   *Renderer
	clock   recipe.Clock
	log     *slog.Logger
	router  chi.Router
}

// New wires the handlers around an already-seeded store.
func New(recipes RecipeStore, flashes *flash.Store, clock recipe.Clock, log *slog.Logger) (*Server, error) {
	views, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	s := &Server{
		recipes: recipes,
		flashes: flashes,
		views:   views,
		clock:   clock,
		log:     log,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/recipes", s.handleList)
	r.Get("/recipe/{id:[0-9]+}", s.handleDetail)
	r.Get("/add_recipe", s.handleAddForm)
	r.Post("/add_recipe", s.handleAddSubmit)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(staticFS())))

	return r
}

// ServeHTTP dispatches to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts down
// gracefully. If onReady is non-nil it is called with the bound address once
// the listener is open.
func (s *Server) ListenAndServe(ctx context.Context, cfg Config, onReady func(addr string)) error {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	addr := ln.Addr().String()
	s.log.Info("server listening", "addr", addr)
	if onReady != nil {
		onReady(addr)
	}

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
