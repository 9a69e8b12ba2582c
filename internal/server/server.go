package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bbqmenu/bbq-menu-ai/backend/config"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/api"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/credits"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/database"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/images"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/middleware"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/router"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	raw    *database.DB
	redis  *redis.Client
	logger *zap.Logger
}

// New opens the database and Redis, runs migrations and wires every
// service behind the router.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := types.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	db, raw, err := database.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	s := &Server{db: db, raw: raw, logger: logger}

	if err := database.RunMigrations(db, logger); err != nil {
		s.close()
		return nil, err
	}

	if cfg.RedisURL != "" || cfg.RedisHost != "" {
		client, err := database.NewRedisClient(cfg, logger)
		switch {
		case err == nil:
			s.redis = client
		case cfg.LedgerLock == "redis":
			s.close()
			return nil, fmt.Errorf("redis is required for the ledger lock: %w", err)
		default:
			logger.Warn("redis unavailable, generation rate limiting disabled", zap.Error(err))
		}
	}

	var locker credits.Locker = credits.NewMemoryLocker()
	if cfg.LedgerLock == "redis" {
		if s.redis == nil {
			s.close()
			return nil, errors.New("redis is required for the ledger lock but is not configured")
		}
		locker = credits.NewRedisLocker(s.redis, credits.RedisLockConfig{Logger: logger})
	}
	opts := []credits.Option{credits.WithLocker(locker), credits.WithLogger(logger)}
	if cfg.WelcomeCredits > 0 {
		opts = append(opts, credits.WithWelcomeCredits(cfg.WelcomeCredits))
	}
	ledger := credits.NewService(credits.NewGormStore(db), opts...)

	catalog := loadCatalog(ctx, cfg, logger)

	llm := service.NewLLMService(service.LLMConfig{
		BaseURL: cfg.AIBaseURL,
		APIKey:  cfg.AIAPIKey,
		Model:   cfg.AIModel,
		Timeout: cfg.AITimeout,
	}, logger)
	email := service.NewEmailService(service.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		AppURL:   cfg.AppURL,
	}, logger)

	deps := api.Dependencies{
		Config: cfg,
		Logger: logger,
		Auth:   service.NewAuthService(db, cfg.JWTSecret, cfg.JWTExpiry, ledger, logger),
		Ledger: ledger,
		Menu: service.NewMenuService(db, ledger, llm, catalog, service.MenuConfig{
			GenerationCost: cfg.GenerationCost,
			DevMode:        cfg.Environment == config.Development,
		}, logger),
		Recipes:       service.NewRecipeService(db, logger),
		Shopping:      service.NewShoppingService(db, logger),
		Feedback:      service.NewFeedbackService(db, logger),
		Subscriptions: service.NewSubscriptionService(db, email, logger),
		Images:        catalog,
	}
	if s.redis != nil {
		deps.GenerateLimiter = middleware.NewGenerationRateLimiter(s.redis, cfg.GenerateRateLimit, cfg.GenerateRateWindow, logger)
	}

	s.router = router.SetupRouter(cfg.CORSOrigins, deps)
	s.router.GET("/health/ready", s.ready)
	s.http = &http.Server{
		Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// loadCatalog prefers the S3 override and falls back to the embedded
// catalog when it is not configured or cannot be read.
func loadCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) *images.Catalog {
	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		logger.Warn("failed to configure S3, using embedded image catalog", zap.Error(err))
		return images.Default()
	}
	if s3cfg == nil {
		return images.Default()
	}
	catalog, err := images.LoadFromS3(ctx, s3cfg.Client, s3cfg.BucketName, s3cfg.Key)
	if err != nil {
		logger.Warn("failed to load image catalog from S3, using embedded catalog", zap.Error(err))
		return images.Default()
	}
	logger.Info("loaded image catalog from S3",
		zap.String("bucket", s3cfg.BucketName),
		zap.Int("images", catalog.ImageCount()))
	return catalog
}

func (s *Server) ready(c *gin.Context) {
	if err := s.raw.HealthCheck(c.Request.Context()); err != nil {
		s.logger.Warn("readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and releases connections.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.close()
	return err
}

func (s *Server) close() {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if s.raw != nil {
		if err := s.raw.Close(); err != nil {
			s.logger.Warn("failed to close database", zap.Error(err))
		}
	}
}
