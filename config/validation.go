package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	Required         []string
	RequiredPostgres []string
}

var (
	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {
			Required:         []string{"JWT_SECRET"},
			RequiredPostgres: []string{"DB_HOST", "DB_NAME"},
		},
		Test: {},
		CI: {
			Required:         []string{"JWT_SECRET"},
			RequiredPostgres: []string{"DB_HOST", "DB_PASSWORD"},
		},
		Production: {
			Required:         []string{"JWT_SECRET", "AI_API_KEY"},
			RequiredPostgres: []string{"DB_HOST", "DB_NAME", "DB_USER", "DB_PASSWORD"},
		},
	}
)

func fieldValue(cfg *Config, field string) string {
	switch field {
	case "JWT_SECRET":
		return cfg.JWTSecret
	case "AI_API_KEY":
		return cfg.AIAPIKey
	case "DB_HOST":
		return cfg.DBHost
	case "DB_NAME":
		return cfg.DBName
	case "DB_USER":
		return cfg.DBUser
	case "DB_PASSWORD":
		return cfg.DBPassword
	}
	return ""
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	reqs := requirements[cfg.Environment]

	var errs []ValidationError
	for _, field := range reqs.Required {
		if fieldValue(cfg, field) == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	switch cfg.DBDriver {
	case "postgres":
		for _, field := range reqs.RequiredPostgres {
			if fieldValue(cfg, field) == "" {
				errs = append(errs, ValidationError{Field: field, Message: "is required for postgres"})
			}
		}
	case "sqlite":
		if cfg.Environment == Production {
			errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not supported in production"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	switch cfg.LedgerLock {
	case "memory", "redis":
	default:
		errs = append(errs, ValidationError{Field: "LEDGER_LOCK", Message: "must be memory or redis"})
	}
	if cfg.WelcomeCredits < 0 {
		errs = append(errs, ValidationError{Field: "WELCOME_CREDITS", Message: "must not be negative"})
	}
	if cfg.GenerationCost < 1 {
		errs = append(errs, ValidationError{Field: "GENERATION_COST", Message: "must be at least 1"})
	}
	if cfg.MaxAdminGrant < 1 {
		errs = append(errs, ValidationError{Field: "MAX_ADMIN_GRANT", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return errors.New(strings.Join(msgs, "\n"))
	}
	return nil
}
