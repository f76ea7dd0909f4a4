package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEnvVars = []string{
	"CREDIT_REPORT_LOG_LEVEL",
	"CREDIT_REPORT_LOG_FORMAT",
	"CREDIT_REPORT_SERVER_PORT",
	"CREDIT_REPORT_SERVER_ALLOWED_ORIGINS",
	"CREDIT_REPORT_STORE_DRIVER",
	"CREDIT_REPORT_STORE_SQLITE_PATH",
	"CREDIT_REPORT_RATE_LIMIT_WINDOW",
	"CREDIT_REPORT_IMPORT_WORKERS",
	"PORT",
	"FRONTEND_URL",
}

// clearTestEnvVars unsets the variables for the duration of the test.
func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range testEnvVars {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// chdir switches to dir and restores the working directory after the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 8000, config.Server.Port)
	assert.Equal(t, 10*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, config.Server.WriteTimeout)
	assert.Equal(t, 60*time.Second, config.Server.IdleTimeout)
	assert.Equal(t, 10*time.Second, config.Server.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, config.Server.AllowedOrigins)
	assert.Equal(t, int64(10485760), config.Upload.MaxBytes)
	assert.Equal(t, "xmlFile", config.Upload.Field)
	assert.True(t, config.RateLimit.Enabled)
	assert.Equal(t, 100, config.RateLimit.RequestsPerWindow)
	assert.Equal(t, 15*time.Minute, config.RateLimit.Window)
	assert.Equal(t, 10, config.RateLimit.UploadsPerWindow)
	assert.Equal(t, time.Hour, config.RateLimit.UploadWindow)
	assert.Equal(t, DriverMemory, config.Store.Driver)
	assert.Equal(t, "credit-reports.db", config.Store.SQLitePath)
	assert.Equal(t, runtime.NumCPU(), config.Import.Workers)
	assert.Equal(t, "0.0.0.0:8000", config.ListenAddress())
}

func TestDefaultMatchesInitializeConfig(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	loaded, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, loaded, Default())
	assert.NoError(t, validateConfig(Default()))
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	t.Setenv("CREDIT_REPORT_LOG_LEVEL", "debug")
	t.Setenv("CREDIT_REPORT_LOG_FORMAT", "json")
	t.Setenv("CREDIT_REPORT_STORE_DRIVER", "sqlite")
	t.Setenv("CREDIT_REPORT_STORE_SQLITE_PATH", "/tmp/reports.db")
	t.Setenv("CREDIT_REPORT_RATE_LIMIT_WINDOW", "5m")
	t.Setenv("CREDIT_REPORT_IMPORT_WORKERS", "3")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, DriverSQLite, config.Store.Driver)
	assert.Equal(t, "/tmp/reports.db", config.Store.SQLitePath)
	assert.Equal(t, 5*time.Minute, config.RateLimit.Window)
	assert.Equal(t, 3, config.Import.Workers)
}

func TestInitializeConfig_ConventionalVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	t.Setenv("PORT", "5000")
	t.Setenv("FRONTEND_URL", "https://reports.example.com")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, 5000, config.Server.Port)
	assert.Equal(t, []string{"https://reports.example.com"}, config.Server.AllowedOrigins)

	t.Setenv("CREDIT_REPORT_SERVER_PORT", "6000")
	config, err = InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, 6000, config.Server.Port, "prefixed variable wins")
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()

	configContent := `
log:
  level: "warn"
  format: "json"
server:
  port: 9090
  allowed_origins:
    - "https://a.example.com"
    - "https://b.example.com"
upload:
  max_bytes: 2048
rate_limit:
  enabled: false
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))
	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, config.Server.AllowedOrigins)
	assert.Equal(t, int64(2048), config.Upload.MaxBytes)
	assert.False(t, config.RateLimit.Enabled)
	assert.Equal(t, "xmlFile", config.Upload.Field, "unset keys keep their default")
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()

	configContent := `
log:
  level: "warn"
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))
	t.Setenv("CREDIT_REPORT_LOG_LEVEL", "error")
	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, 9090, config.Server.Port)
}

func TestLoad_ExplicitFile(t *testing.T) {
	clearTestEnvVars(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  driver: sqlite\n  sqlite_path: data.db\n"), 0644))

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, config.Store.Driver)
	assert.Equal(t, "data.db", config.Store.SQLitePath)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit file must exist")
}

func TestInitializeConfig_InvalidFromEnvironment(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())
	t.Setenv("CREDIT_REPORT_STORE_DRIVER", "mongodb")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid store driver")
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "xml" },
			expectError:  "invalid log format",
		},
		{
			name:         "port out of range",
			modifyConfig: func(c *Config) { c.Server.Port = 70000 },
			expectError:  "server.port must be between 1 and 65535",
		},
		{
			name:         "zero upload size",
			modifyConfig: func(c *Config) { c.Upload.MaxBytes = 0 },
			expectError:  "upload.max_bytes must be positive",
		},
		{
			name:         "empty upload field",
			modifyConfig: func(c *Config) { c.Upload.Field = "" },
			expectError:  "upload.field must not be empty",
		},
		{
			name:         "zero request budget",
			modifyConfig: func(c *Config) { c.RateLimit.RequestsPerWindow = 0 },
			expectError:  "rate_limit request budgets must be at least 1",
		},
		{
			name:         "zero window",
			modifyConfig: func(c *Config) { c.RateLimit.UploadWindow = 0 },
			expectError:  "rate_limit windows must be positive",
		},
		{
			name:         "unknown driver",
			modifyConfig: func(c *Config) { c.Store.Driver = "postgres" },
			expectError:  "invalid store driver",
		},
		{
			name: "sqlite without path",
			modifyConfig: func(c *Config) {
				c.Store.Driver = DriverSQLite
				c.Store.SQLitePath = ""
			},
			expectError: "store.sqlite_path required",
		},
		{
			name:         "no workers",
			modifyConfig: func(c *Config) { c.Import.Workers = 0 },
			expectError:  "import.workers must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestValidateConfig_DisabledRateLimitSkipsBudgets(t *testing.T) {
	config := Default()
	config.RateLimit.Enabled = false
	config.RateLimit.RequestsPerWindow = 0
	assert.NoError(t, validateConfig(config))
}
