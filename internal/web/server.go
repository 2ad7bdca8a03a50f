package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	spotifyauth "github.com/zmb3/spotify/v2/auth"

	"github.com/YixiongHao/spotify-wrapper/internal/db"
	"github.com/YixiongHao/spotify-wrapper/internal/refresh"
	"github.com/YixiongHao/spotify-wrapper/internal/snapshot"
)

const (
	// DefaultAddr is the default server address.
	DefaultAddr = "127.0.0.1:8080"

	// DefaultRedirectURL must match the Spotify app configuration.
	DefaultRedirectURL = "http://127.0.0.1:8080/callback"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr         string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Database     *db.DB
	Generator    snapshot.Describer // nil disables text generation
	Logger       *log.Logger
}

// sessionCleanupInterval is how often expired session rows are purged.
const sessionCleanupInterval = time.Hour

// Server is the HTTP server for the wrapped API.
type Server struct {
	router   chi.Router
	server   *http.Server
	sessions SessionManager
	handlers *Handlers
	database *db.DB
	logger   *log.Logger
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Database == nil {
		return nil, fmt.Errorf("database is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.RedirectURL == "" {
		cfg.RedirectURL = DefaultRedirectURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	auth := spotifyauth.New(
		spotifyauth.WithClientID(cfg.ClientID),
		spotifyauth.WithClientSecret(cfg.ClientSecret),
		spotifyauth.WithRedirectURL(cfg.RedirectURL),
		spotifyauth.WithScopes(
			spotifyauth.ScopeUserReadEmail,
			spotifyauth.ScopeUserReadPrivate,
			spotifyauth.ScopeUserTopRead,
		),
	)

	sessions := NewDBSessionStore(cfg.Database)
	refresher := refresh.New(cfg.Database.Profiles(), logger)
	snapshots := snapshot.New(cfg.Database.Profiles(), cfg.Database.Snapshots(), cfg.Generator, logger)
	handlers := NewHandlers(auth, sessions, refresher, snapshots, logger)

	router := chi.NewRouter()

	s := &Server{
		router:   router,
		sessions: sessions,
		handlers: handlers,
		database: cfg.Database,
		logger:   logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures routes for the API.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handlers.Health)

	// Auth routes
	s.router.Get("/auth/login", s.handlers.Login)
	s.router.Get("/callback", s.handlers.Callback)
	s.router.Post("/auth/logout", s.handlers.Logout)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/refresh", s.handlers.RefreshProfile)
		r.Post("/wrapped/{window}", s.handlers.BuildWrapped)
		r.Post("/duo/{partner}/{window}", s.handlers.BuildDuo)
		r.Get("/history", s.handlers.History)
		r.Get("/snapshots/{id}", s.handlers.GetSnapshot)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// expiredSessionDeleter is the slice of SessionRepository the cleanup
// loop needs.
type expiredSessionDeleter interface {
	DeleteExpired(ctx context.Context) error
}

// cleanExpiredSessions purges expired session rows on a fixed interval
// until the context is canceled.
func cleanExpiredSessions(ctx context.Context, store expiredSessionDeleter, interval time.Duration, logger *log.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.DeleteExpired(ctx); err != nil {
				logger.Warn("purging expired sessions", "err", err)
			}
		}
	}
}

// Run starts the server and handles graceful shutdown on interrupt signals.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	go cleanExpiredSessions(cleanupCtx, s.database.Sessions(), sessionCleanupInterval, s.logger)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		s.logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
