package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		fields []string
	}{
		{
			name:   "defaults are valid",
			modify: func(c *Config) {},
		},
		{
			name:   "log level case-insensitive",
			modify: func(c *Config) { c.LogLevel = "DEBUG" },
		},
		{
			name:   "bad log level",
			modify: func(c *Config) { c.LogLevel = "verbose" },
			fields: []string{"log_level"},
		},
		{
			name:   "tif alias accepted",
			modify: func(c *Config) { c.Export.DefaultContainer = "tif" },
		},
		{
			name:   "bad container",
			modify: func(c *Config) { c.Export.DefaultContainer = "jpeg" },
			fields: []string{"export.default_container"},
		},
		{
			name:   "empty output dir",
			modify: func(c *Config) { c.Export.OutputDir = "" },
			fields: []string{"export.output_dir"},
		},
		{
			name: "multiple errors",
			modify: func(c *Config) {
				c.Export.MaxErrorLines = 0
				c.Export.DefaultContainer = ""
			},
			fields: []string{"export.default_container", "export.max_error_lines"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.modify(&cfg)

			err := Validate(&cfg)
			if len(tt.fields) == 0 {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}

			var errs ValidationErrors
			if !errors.As(err, &errs) {
				t.Fatalf("Validate() = %v, want ValidationErrors", err)
			}
			if len(errs) != len(tt.fields) {
				t.Fatalf("got %d errors, want %d: %v", len(errs), len(tt.fields), errs)
			}
			for i, field := range tt.fields {
				if errs[i].Field != field {
					t.Errorf("errs[%d].Field = %q, want %q", i, errs[i].Field, field)
				}
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	single := ValidationErrors{{Field: "a", Message: "bad"}}
	if single.Error() != "a: bad" {
		t.Errorf("single error = %q", single.Error())
	}

	multi := ValidationErrors{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}
	msg := multi.Error()
	if !strings.HasPrefix(msg, "config validation failed:") {
		t.Errorf("multi error should have header, got %q", msg)
	}
	if !strings.Contains(msg, "  - b: worse") {
		t.Errorf("multi error should list each field, got %q", msg)
	}

	if (ValidationErrors{}).Error() != "" {
		t.Error("empty errors should render empty")
	}
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(ValidationError{Field: "x"}) {
		t.Error("ValidationError should be detected")
	}
	if IsValidationError(errors.New("other")) {
		t.Error("plain error should not be a validation error")
	}
}
