package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/orgoj/recordlog/internal/logger"
)

// reservedContextKeys are always overwritten while rendering a record.
var reservedContextKeys = map[string]bool{"level": true, "message": true}

// Keys usable as {{key}} placeholders: alphanumeric, underscore, hyphen, dot
var templateKeyRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

func validateTemplateKey(fl validator.FieldLevel) bool {
	return templateKeyRegex.MatchString(fl.Field().String())
}

// Config represents a logger configuration file. Empty fields fall back to
// the logger defaults.
type Config struct {
	Date       string `yaml:"date" validate:"omitempty,max=128,excludesall=/\\"`
	DestFolder string `yaml:"dest_folder" validate:"omitempty,max=4096"`
	LogFile    string `yaml:"log_file" validate:"omitempty,max=4096"`
	Name       string `yaml:"name" validate:"omitempty,max=256,excludesall=\n\r"`
	Template   string `yaml:"template" validate:"omitempty,max=4096"`
	Console    bool   `yaml:"console"`
	Stack      bool   `yaml:"stack"`

	// Context is merged under the caller context of every record.
	Context map[string]string `yaml:"context,omitempty" validate:"omitempty,dive,keys,templatekey,endkeys,max=4096"`
}

// Default returns a configuration that uses every logger default.
func Default() *Config {
	return &Config{}
}

// LoadConfig loads and validates the configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file '%s': %w", path, err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfig performs semantic validation of the configuration
func validateConfig(cfg *Config) error {
	if cfg.Template != "" && strings.TrimSpace(cfg.Template) == "" {
		return errors.New("template cannot be blank")
	}

	if cfg.LogFile != "" {
		if strings.HasSuffix(cfg.LogFile, "/") || strings.HasSuffix(cfg.LogFile, string(filepath.Separator)) {
			return fmt.Errorf("log_file '%s' must name a file, not a directory", cfg.LogFile)
		}
	}

	if cfg.DestFolder != "" && strings.TrimSpace(cfg.DestFolder) == "" {
		return errors.New("dest_folder cannot be blank")
	}

	for key := range cfg.Context {
		if strings.TrimSpace(key) == "" {
			return errors.New("context: keys cannot be empty")
		}
		if reservedContextKeys[key] {
			return fmt.Errorf("context: key '%s' is reserved and always overwritten", key)
		}
	}

	return nil
}

// ValidateConfig uses go-playground/validator for struct-level validation.
// It complements the semantic validation in validateConfig.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("configuration is nil")
	}

	validate := validator.New()
	if err := validate.RegisterValidation("templatekey", validateTemplateKey); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(cfg)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		// Translate validation errors into a more readable format
		messages := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fe.Field(), fe.Tag()))
		}
		return errors.New(strings.Join(messages, "; "))
	}

	return validateConfig(cfg)
}

// Options converts the configuration into logger options.
func (c *Config) Options() logger.Options {
	return logger.Options{
		Date:       c.Date,
		DestFolder: c.DestFolder,
		LogFile:    c.LogFile,
		Name:       c.Name,
		Template:   c.Template,
		Console:    c.Console,
		Stack:      c.Stack,
	}
}

// DefaultContext returns the configured context as a logger.Context, or nil
// when none is configured.
func (c *Config) DefaultContext() logger.Context {
	if len(c.Context) == 0 {
		return nil
	}
	ctx := make(logger.Context, len(c.Context))
	for k, v := range c.Context {
		ctx[k] = v
	}
	return ctx
}
