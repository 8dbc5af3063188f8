package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ellipszist/texport/internal/codec"
)

// ValidationError represents a config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	b.WriteString("config validation failed:\n")
	for _, err := range e {
		b.WriteString("  - ")
		b.WriteString(err.Error())
		b.WriteString("\n")
	}
	return b.String()
}

// validLogLevels lists recognized log levels.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration for errors.
// Returns ValidationErrors if validation fails.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("must be one of: debug, info, warn, error; got %q", cfg.LogLevel),
		})
	}

	if _, err := codec.ParseContainer(cfg.Export.DefaultContainer); err != nil {
		errs = append(errs, ValidationError{
			Field:   "export.default_container",
			Message: err.Error(),
		})
	}

	if cfg.Export.OutputDir == "" {
		errs = append(errs, ValidationError{
			Field:   "export.output_dir",
			Message: "must not be empty",
		})
	}

	if cfg.Export.MaxErrorLines < 1 {
		errs = append(errs, ValidationError{
			Field:   "export.max_error_lines",
			Message: fmt.Sprintf("must be at least 1, got %d", cfg.Export.MaxErrorLines),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var ve ValidationError
	var ves ValidationErrors
	return errors.As(err, &ve) || errors.As(err, &ves)
}
