package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/orgoj/recordlog/internal/logger"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, content string) string {
	tempDir := t.TempDir()
	tempFile := filepath.Join(tempDir, "config.yaml")
	err := os.WriteFile(tempFile, []byte(content), 0644)
	require.NoError(t, err, "Failed to create temporary config file")
	return tempFile
}

func TestLoadConfig_Valid(t *testing.T) {
	cfg, err := LoadConfig("../../config/test.yaml")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "2024-05-01", cfg.Date)
	assert.Equal(t, "/tmp/recordlog-test", cfg.DestFolder)
	assert.Equal(t, "/tmp/recordlog-test/test.log", cfg.LogFile)
	assert.Equal(t, "test-logger", cfg.Name)
	assert.Equal(t, "{{date}} {{name}} {{env}} [{{level}}] {{message}}", cfg.Template)
	assert.True(t, cfg.Console)
	assert.True(t, cfg.Stack)
	assert.Equal(t, map[string]string{"env": "test", "region": "eu"}, cfg.Context)

	require.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfig_Example(t *testing.T) {
	cfg, err := LoadConfig("../../config/example.yaml")
	require.NoError(t, err)
	require.NoError(t, ValidateConfig(cfg))

	assert.Equal(t, "my-service", cfg.Name)
	assert.Equal(t, logger.DefaultTemplate, cfg.Template)
	assert.False(t, cfg.Stack)
}

func TestLoadConfig_Empty(t *testing.T) {
	path := createTempConfigFile(t, "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		errorContains string
	}{
		{
			name:          "Invalid YAML",
			content:       "name: [unclosed",
			errorContains: "error parsing config file",
		},
		{
			name:          "Wrong type",
			content:       "console: maybe",
			errorContains: "error parsing config file",
		},
		{
			name:          "Blank template",
			content:       "template: \"   \"",
			errorContains: "template cannot be blank",
		},
		{
			name:          "Log file is a directory",
			content:       "log_file: /var/log/",
			errorContains: "must name a file",
		},
		{
			name:          "Reserved context key",
			content:       "context:\n  level: x",
			errorContains: "key 'level' is reserved",
		},
		{
			name:          "Empty context key",
			content:       "context:\n  \"\": x",
			errorContains: "keys cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createTempConfigFile(t, tt.content)
			cfg, err := LoadConfig(path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name          string
		cfg           *Config
		expectError   bool
		errorContains string
	}{
		{
			name: "Defaults",
			cfg:  Default(),
		},
		{
			name: "Full config",
			cfg: &Config{
				Date:       "run-1",
				DestFolder: "/tmp/logs",
				LogFile:    "/tmp/logs/run.log",
				Name:       "svc",
				Template:   "{{level}} {{message}}",
				Console:    true,
				Stack:      true,
				Context:    map[string]string{"env": "prod"},
			},
		},
		{
			name:          "Date with path separator",
			cfg:           &Config{Date: "2024/05/01"},
			expectError:   true,
			errorContains: "'Date' failed on the 'excludesall' tag",
		},
		{
			name:          "Name with newline",
			cfg:           &Config{Name: "two\nlines"},
			expectError:   true,
			errorContains: "'Name' failed on the 'excludesall' tag",
		},
		{
			name:          "Name too long",
			cfg:           &Config{Name: strings.Repeat("n", 257)},
			expectError:   true,
			errorContains: "'Name' failed on the 'max' tag",
		},
		{
			name:          "Blank dest folder",
			cfg:           &Config{DestFolder: "  "},
			expectError:   true,
			errorContains: "dest_folder cannot be blank",
		},
		{
			name:          "Reserved message key",
			cfg:           &Config{Context: map[string]string{"message": "x"}},
			expectError:   true,
			errorContains: "key 'message' is reserved",
		},
		{
			name:          "Context key with spaces",
			cfg:           &Config{Context: map[string]string{"bad key": "x"}},
			expectError:   true,
			errorContains: "failed on the 'templatekey' tag",
		},
		{
			name: "Dotted context key",
			cfg:  &Config{Context: map[string]string{"svc.region": "eu"}},
		},
		{
			name:          "Nil config",
			cfg:           nil,
			expectError:   true,
			errorContains: "configuration is nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.cfg)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_Options(t *testing.T) {
	cfg := &Config{
		Date:       "d",
		DestFolder: "/tmp/x",
		LogFile:    "/tmp/x/y.log",
		Name:       "n",
		Template:   "{{message}}",
		Console:    true,
		Stack:      true,
	}

	opts := cfg.Options()
	assert.Equal(t, "d", opts.Date)
	assert.Equal(t, "/tmp/x", opts.DestFolder)
	assert.Equal(t, "/tmp/x/y.log", opts.LogFile)
	assert.Equal(t, "n", opts.Name)
	assert.Equal(t, "{{message}}", opts.Template)
	assert.True(t, opts.Console)
	assert.True(t, opts.Stack)
	assert.Nil(t, opts.Output)
	assert.Nil(t, opts.Clock)
}

func TestConfig_OpenLogger(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		DestFolder: filepath.Join(dir, "logs"),
		Name:       "from-config",
		Template:   "{{name}} {{env}} [{{level}}] {{message}}",
		Context:    map[string]string{"env": "prod"},
	}
	require.NoError(t, ValidateConfig(cfg))

	l, err := logger.Open(cfg.Options())
	require.NoError(t, err)
	require.NoError(t, l.Info("started", cfg.DefaultContext()))

	data, err := os.ReadFile(l.LogFile())
	require.NoError(t, err)
	assert.Equal(t, "\nfrom-config prod [INFO] started", string(data))
}

func TestConfig_DefaultContext(t *testing.T) {
	assert.Nil(t, Default().DefaultContext())

	cfg := &Config{Context: map[string]string{"a": "1"}}
	ctx := cfg.DefaultContext()
	assert.Equal(t, logger.Context{"a": "1"}, ctx)

	ctx["a"] = "changed"
	assert.Equal(t, "1", cfg.Context["a"], "DefaultContext returns a copy")
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	cfg := &Config{Name: "svc", Console: true, Context: map[string]string{"k": "v"}}
	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	path := createTempConfigFile(t, string(data))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
