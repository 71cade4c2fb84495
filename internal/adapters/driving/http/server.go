package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven"
	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	handler    http.Handler
	version    string
	logger     *slog.Logger

	// Services
	authService       driving.AuthService
	employeeService   driving.EmployeeService
	departmentService driving.DepartmentService

	// Infrastructure
	limiter        driven.AttemptLimiter
	authRateLimit  int
	authRateWindow time.Duration
	trustedProxies []netip.Prefix
	db             Pinger // PostgreSQL health check
	redisClient    Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string

	// AuthRateLimit attempts per AuthRateWindow per client on the
	// credential and token endpoints. Zero disables limiting.
	AuthRateLimit  int
	AuthRateWindow time.Duration

	// TrustedProxies are the peers allowed to set X-Forwarded-For.
	// Empty means the remote address is always the client.
	TrustedProxies []netip.Prefix

	Logger *slog.Logger
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		Version:        "dev",
		AuthRateLimit:  10,
		AuthRateWindow: time.Minute,
	}
}

// Dependencies are the services and health targets the server routes to
type Dependencies struct {
	Auth        driving.AuthService
	Employees   driving.EmployeeService
	Departments driving.DepartmentService

	Limiter driven.AttemptLimiter // can be nil
	DB      Pinger
	Redis   Pinger // can be nil
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:            http.NewServeMux(),
		version:           cfg.Version,
		logger:            logger,
		authService:       deps.Auth,
		employeeService:   deps.Employees,
		departmentService: deps.Departments,
		limiter:           deps.Limiter,
		authRateLimit:     cfg.AuthRateLimit,
		authRateWindow:    cfg.AuthRateWindow,
		trustedProxies:    cfg.TrustedProxies,
		db:                deps.DB,
		redisClient:       deps.Redis,
	}

	s.setupRoutes()

	// Outermost first: recover panics, then log with a request id
	s.handler = NewLoggingMiddleware(logger).Handler(
		NewRecoveryMiddleware(logger).Handler(s.router))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped request handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)
	rateLimit := NewRateLimitMiddleware(s.limiter, s.authRateLimit, s.authRateWindow, s.logger).
		TrustProxies(s.trustedProxies)

	hrWriters := authMiddleware.RequireRole(domain.RolePowerUser, domain.RoleHRManager)
	authed := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.Authenticate(h)
	}
	writer := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.Authenticate(hrWriters(h))
	}

	// Health endpoints (no auth), at the root and under the API base path
	for _, prefix := range []string{"", "/api/v1"} {
		s.router.HandleFunc("GET "+prefix+"/health", s.handleHealth)
		s.router.HandleFunc("GET "+prefix+"/ready", s.handleReady)
		s.router.HandleFunc("GET "+prefix+"/version", s.handleVersion)
	}
	s.router.HandleFunc("GET /swagger/doc.json", s.handleSwaggerDoc)

	// Auth endpoints (public, rate limited)
	s.router.Handle("POST /api/v1/auth/login", rateLimit.Handler("login", http.HandlerFunc(s.handleLogin)))
	s.router.Handle("POST /api/v1/auth/register", rateLimit.Handler("register", http.HandlerFunc(s.handleRegister)))
	s.router.Handle("POST /api/v1/auth/refresh", rateLimit.Handler("refresh", http.HandlerFunc(s.handleRefresh)))

	// Auth endpoints (authenticated)
	s.router.Handle("POST /api/v1/auth/logout", authed(s.handleLogout))
	s.router.Handle("GET /api/v1/me", authed(s.handleGetMe))
	s.router.Handle("GET /api/v1/protected/endpoint",
		authMiddleware.Authenticate(
			authMiddleware.RequireRole(domain.RolePowerUser)(http.HandlerFunc(s.handleProtected))))

	// Departments
	s.router.Handle("GET /api/v1/departments", authed(s.handleListDepartments))
	s.router.Handle("POST /api/v1/departments", writer(s.handleCreateDepartment))
	s.router.Handle("GET /api/v1/departments/{id}", authed(s.handleGetDepartment))
	s.router.Handle("PUT /api/v1/departments/{id}", writer(s.handleUpdateDepartment))
	s.router.Handle("DELETE /api/v1/departments/{id}", writer(s.handleDeleteDepartment))

	// Employees
	s.router.Handle("GET /api/v1/employees", authed(s.handleListEmployees))
	s.router.Handle("POST /api/v1/employees", writer(s.handleCreateEmployee))
	s.router.Handle("GET /api/v1/employees/{id}", authed(s.handleGetEmployee))
	s.router.Handle("PUT /api/v1/employees/{id}", writer(s.handleUpdateEmployee))
	s.router.Handle("DELETE /api/v1/employees/{id}", writer(s.handleDeleteEmployee))
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
