package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GITHUB_WEBHOOK_SECRET", "s3cret")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 4, cfg.Server.MaxWorkers)
	assert.True(t, cfg.Whitelist.Enabled)
	assert.Equal(t, "userlist.txt", cfg.Whitelist.UserListFileName)
	assert.Equal(t, "adminlist.txt", cfg.Whitelist.AdminListFileName)
	assert.Equal(t, StorageDriverFile, cfg.Storage.Driver)
	assert.Equal(t, 10*time.Second, cfg.CI.Webhook.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GITHUB_WEBHOOK_SECRET", "s3cret")
	t.Setenv("WHITELIST_ENABLED", "false")
	t.Setenv("CONFIG_DIRECTORY", "/var/lib/gatekeeper")
	t.Setenv("STORAGE_DRIVER", "POSTGRES")
	t.Setenv("CI_WEBHOOK_URL", "https://ci.example.com/hook")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.False(t, cfg.Whitelist.Enabled)
	assert.Equal(t, "/var/lib/gatekeeper", cfg.Whitelist.Directory)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "https://ci.example.com/hook", cfg.CI.Webhook.URL)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GITHUB_WEBHOOK_SECRET=from-file\nSERVER_PORT=9090\n"), 0o600))

	cfg, err := Load(viper.New(), envFile)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.GitHub.WebhookSecret)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing webhook secret",
			env:  map[string]string{},
		},
		{
			name: "unknown storage driver",
			env: map[string]string{
				"GITHUB_WEBHOOK_SECRET": "s3cret",
				"STORAGE_DRIVER":        "redis",
			},
		},
		{
			name: "same file for both lists",
			env: map[string]string{
				"GITHUB_WEBHOOK_SECRET": "s3cret",
				"USERLIST_FILE_NAME":    "list.txt",
				"ADMINLIST_FILE_NAME":   "list.txt",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITHUB_WEBHOOK_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadServer(viper.New(), "")
			assert.Error(t, err)
		})
	}
}

func TestLoad_WebhookSecretOnlyRequiredByServer(t *testing.T) {
	t.Setenv("GITHUB_WEBHOOK_SECRET", "")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Empty(t, cfg.GitHub.WebhookSecret)

	_, err = LoadServer(viper.New(), "")
	assert.ErrorIs(t, err, ErrMissingWebhookSecret)
}
