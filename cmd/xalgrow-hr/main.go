package main

// @title           Xalgrow HR API
// @version         1.0
// @description     Authentication and HR records API. Access tokens are short lived JWTs; refresh tokens rotate on every use.

// @contact.name   Xalgrow HR

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "github.com/xalgrow/xalgrow-hr/docs"
	"github.com/xalgrow/xalgrow-hr/internal/adapters/driven/auth"
	"github.com/xalgrow/xalgrow-hr/internal/adapters/driven/memory"
	"github.com/xalgrow/xalgrow-hr/internal/adapters/driven/postgres"
	redisadapter "github.com/xalgrow/xalgrow-hr/internal/adapters/driven/redis"
	"github.com/xalgrow/xalgrow-hr/internal/adapters/driving/http"
	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven"
	"github.com/xalgrow/xalgrow-hr/internal/core/services"
)

var version = "dev"

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	logger.Info("xalgrow-hr starting", "version", version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	// ===== PostgreSQL =====
	db, err := postgres.Connect(ctx, postgres.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.InitSchema(ctx); err != nil {
		return err
	}
	logger.Info("postgres connected and schema initialized")

	// ===== Redis (optional) =====
	var (
		limiter     driven.AttemptLimiter
		lock        driven.DistributedLock
		redisPinger http.Pinger
	)
	if cfg.RedisURL != "" {
		client, err := redisadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()

		redisLock := redisadapter.NewLock(client)
		limiter = redisadapter.NewAttemptLimiter(client)
		lock = redisLock
		redisPinger = redisLock
		logger.Info("using redis for rate limiting and locks")
	} else {
		limiter = memory.NewAttemptLimiter()
		lock = postgres.NewAdvisoryLock(db)
		logger.Info("using in-process rate limiting and postgres advisory locks")
	}

	// ===== Stores =====
	accountStore := postgres.NewAccountStore(db)
	departmentStore := postgres.NewDepartmentStore(db)
	employeeStore := postgres.NewEmployeeStore(db)

	// ===== Services =====
	hasher := auth.NewPasswordHasher()
	if cfg.BcryptCost > 0 {
		hasher = auth.NewPasswordHasherWithCost(cfg.BcryptCost)
	}

	authService := services.NewAuthService(services.AuthServiceConfig{
		Accounts:      accountStore,
		Hasher:        hasher,
		Tokens:        auth.NewTokenSigner(cfg.Tokens),
		RefreshTokens: auth.NewRefreshTokenGenerator(),
		Logger:        logger,
		AccessTTL:     cfg.Tokens.AccessTTL,
		RefreshTTL:    cfg.Tokens.RefreshTTL,
	})
	departmentService := services.NewDepartmentService(departmentStore, logger)
	employeeService := services.NewEmployeeService(employeeStore, departmentStore, logger)

	if cfg.SweeperEnabled {
		sweeper := services.NewTokenSweeper(services.TokenSweeperConfig{
			Accounts: accountStore,
			Lock:     lock,
			Logger:   logger,
			Interval: cfg.SweepInterval,
		})
		sweeper.Start(ctx)
		defer sweeper.Stop()
	} else {
		logger.Info("refresh token sweeper disabled via SWEEPER_ENABLED=false")
	}

	// ===== HTTP =====
	serverCfg := http.DefaultConfig()
	serverCfg.Port = cfg.Port
	serverCfg.Version = version
	serverCfg.AuthRateLimit = cfg.AuthRateLimit
	serverCfg.AuthRateWindow = cfg.AuthRateWindow
	serverCfg.TrustedProxies = cfg.TrustedProxies
	serverCfg.Logger = logger

	server := http.NewServer(serverCfg, http.Dependencies{
		Auth:        authService,
		Employees:   employeeService,
		Departments: departmentService,
		Limiter:     limiter,
		DB:          db,
		Redis:       redisPinger,
	})

	return server.Start(ctx)
}

// newLogger builds the process logger. format is "json" or "text".
func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
