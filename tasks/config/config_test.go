package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log_level: INFO
log_format: console
http:
  address: ":8081"
  timeout: 3s
grpc:
  address: ":9091"
db:
  driver: sqlite3
  address: file:tasks.db
auth:
  jwt_secret: s3cret
  issuer: tasks
tasks:
  enforce_ownership: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, ":8081", cfg.HTTP.Address)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, ":9091", cfg.GRPC.Address)
	assert.Equal(t, "sqlite3", cfg.DB.Driver)
	assert.Equal(t, "file:tasks.db", cfg.DB.Address)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, "tasks", cfg.Auth.Issuer)
	assert.True(t, cfg.Tasks.EnforceOwnership)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
db:
  driver: sqlite3
  address: file:tasks.db
auth:
  jwt_secret: from-file
`)
	t.Setenv("AUTH_JWT_SECRET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
}

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_ADDRESS", ":memory:")
	t.Setenv("AUTH_JWT_SECRET", "env-secret")
	t.Setenv("TASKS_ENFORCE_OWNERSHIP", "false")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.DB.Address)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.False(t, cfg.Tasks.EnforceOwnership)

	// defaults
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, ":9090", cfg.GRPC.Address)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestLoad_EmptyPathReadsEnv(t *testing.T) {
	t.Setenv("DB_ADDRESS", "postgres://localhost/tasks")
	t.Setenv("AUTH_JWT_SECRET", "env-secret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "pgx", cfg.DB.Driver)
	assert.Equal(t, "postgres://localhost/tasks", cfg.DB.Address)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing_secret",
			env:  map[string]string{"DB_ADDRESS": "x", "AUTH_JWT_SECRET": ""},
		},
		{
			name: "unknown_driver",
			env:  map[string]string{"DB_ADDRESS": "x", "AUTH_JWT_SECRET": "s", "DB_DRIVER": "mysql"},
		},
		{
			name: "non_positive_timeout",
			env:  map[string]string{"DB_ADDRESS": "x", "AUTH_JWT_SECRET": "s", "HTTP_TIMEOUT": "0s"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "http: [unclosed")

	_, err := Load(path)
	assert.Error(t, err)
}
