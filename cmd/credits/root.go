package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bbqmenu/bbq-menu-ai/backend/config"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/credits"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/database"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/logger"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
)

// app holds what the database-backed commands need.
type app struct {
	cfg    *config.Config
	db     *gorm.DB
	ledger *credits.Service
	auth   *service.AuthService
	logger *zap.Logger
	close  func()
}

type opener func(ctx context.Context) (*app, error)

// openApp connects to the configured database. The ledger uses the
// in-process lock; the CLI never runs beside itself.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	logr, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})
	if err != nil {
		return nil, err
	}
	db, raw, err := database.Open(cfg, logr)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db, logr); err != nil {
		raw.Close()
		return nil, err
	}
	a := newApp(cfg, db, logr)
	a.close = func() {
		raw.Close()
		_ = logr.Sync()
	}
	return a, nil
}

func newApp(cfg *config.Config, db *gorm.DB, logr *zap.Logger) *app {
	opts := []credits.Option{credits.WithLogger(logr)}
	if cfg.WelcomeCredits > 0 {
		opts = append(opts, credits.WithWelcomeCredits(cfg.WelcomeCredits))
	}
	ledger := credits.NewService(credits.NewGormStore(db), opts...)
	return &app{
		cfg:    cfg,
		db:     db,
		ledger: ledger,
		auth:   service.NewAuthService(db, cfg.JWTSecret, cfg.JWTExpiry, ledger, logr),
		logger: logr,
		close:  func() {},
	}
}

// withApp opens the application for the duration of one command.
func withApp(open opener, run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := open(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}
		defer a.close()
		return run(cmd, args, a)
	}
}

// lookupUser resolves an email address to a user.
func (a *app) lookupUser(ctx context.Context, email string) (*models.User, error) {
	user, err := a.auth.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", email, err)
	}
	return user, nil
}

func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:          "credits",
		Short:        "Manage BBQ Menu AI credits and the image catalog",
		SilenceUsage: true,
	}
	root.AddCommand(
		newBalanceCmd(open),
		newGrantCmd(open),
		newHistoryCmd(open),
		newSeedUsersCmd(open),
		newCatalogCmd(),
	)
	return root
}
