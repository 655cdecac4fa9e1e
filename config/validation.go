package config

import (
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

// Validate checks that the loaded configuration is internally consistent
// and that production deployments carry the settings they cannot run
// without.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"PORT", "must not be empty"}.Error())
	}
	if cfg.MongoURI == "" {
		errs = append(errs, ValidationError{"MONGO_URI", "must not be empty"}.Error())
	}
	if cfg.MongoDB == "" {
		errs = append(errs, ValidationError{"MONGO_DB", "must not be empty"}.Error())
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"JWT_SECRET", "must not be empty"}.Error())
	}

	if cfg.IsProduction() {
		if len(cfg.JWTSecret) < 32 {
			errs = append(errs, ValidationError{"JWT_SECRET", "must be at least 32 characters in production"}.Error())
		}
		for _, origin := range cfg.AllowedOrigins {
			if origin == "*" {
				errs = append(errs, ValidationError{"ALLOWED_ORIGINS", "wildcard origin not allowed in production"}.Error())
			}
		}
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{"LOG_LEVEL", "must be one of debug, info, warn, error"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
