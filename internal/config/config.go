package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/pr-gatekeeper/internal/logger"
)

// Storage drivers for the authorization lists.
const (
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"
)

// Config holds the application's configuration values.
type Config struct {
	Server    ServerConfig
	Logging   logger.Config
	GitHub    GitHubConfig
	Whitelist WhitelistConfig
	Storage   StorageConfig
	Database  DBConfig
	CI        CIConfig

	// FormatFile points to the YAML file with the command patterns and the
	// list of CI backends.
	FormatFile string
}

// ServerConfig configures the webhook listener and the build job pool.
type ServerConfig struct {
	Port       string
	MaxWorkers int
	QueueSize  int
}

// GitHubConfig holds webhook and API credentials.
type GitHubConfig struct {
	WebhookSecret  string
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
	Token          string
}

// WhitelistConfig locates the authorization lists and carries the feature gate.
type WhitelistConfig struct {
	Enabled           bool
	Directory         string
	UserListFileName  string
	AdminListFileName string
}

// StorageConfig selects the authorization list backend.
type StorageConfig struct {
	Driver string
}

// DBConfig holds the Postgres connection settings used by the postgres driver.
type DBConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// CIConfig holds per-backend settings. A backend validates its own section
// when it is initialized, so unused backends need no configuration.
type CIConfig struct {
	Webhook       WebhookCIConfig
	CDEvents      CDEventsCIConfig
	GitHubActions GitHubActionsCIConfig
	GitHubStatus  GitHubStatusCIConfig
}

// WebhookCIConfig configures the generic webhook backend.
type WebhookCIConfig struct {
	URL     string
	Secret  string
	Timeout time.Duration
}

// CDEventsCIConfig configures the CDEvents backend.
type CDEventsCIConfig struct {
	SinkURL string
	Source  string
}

// GitHubActionsCIConfig configures the repository_dispatch backend.
type GitHubActionsCIConfig struct {
	EventType       string
	FailedEventType string
}

// GitHubStatusCIConfig configures the commit status backend.
type GitHubStatusCIConfig struct {
	TargetURL string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("MAX_WORKERS", 4)
	v.SetDefault("JOB_QUEUE_SIZE", 100)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("GITHUB_PRIVATE_KEY_PATH", "keys/pr-gatekeeper.private-key.pem")
	v.SetDefault("WHITELIST_ENABLED", true)
	v.SetDefault("CONFIG_DIRECTORY", ".")
	v.SetDefault("USERLIST_FILE_NAME", "userlist.txt")
	v.SetDefault("ADMINLIST_FILE_NAME", "adminlist.txt")
	v.SetDefault("FORMAT_CONFIG_FILE", "format.yml")
	v.SetDefault("STORAGE_DRIVER", StorageDriverFile)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USERNAME", "gatekeeper")
	v.SetDefault("DB_NAME", "gatekeeper")
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", "5m")
	v.SetDefault("CI_WEBHOOK_TIMEOUT", "10s")
	v.SetDefault("CI_CDEVENTS_SOURCE", "pr-gatekeeper")
	v.SetDefault("CI_GITHUB_EVENT_TYPE", "gatekeeper-build")
	v.SetDefault("CI_GITHUB_FAILED_EVENT_TYPE", "gatekeeper-build-failed")
}

// ErrMissingWebhookSecret is returned when the server is started without a
// webhook secret.
var ErrMissingWebhookSecret = errors.New("GITHUB_WEBHOOK_SECRET must be set")

// LoadConfig reads the server configuration from environment variables and a
// .env file, sets sensible defaults, and validates required fields.
func LoadConfig() (*Config, error) {
	return LoadServer(viper.GetViper(), ".env")
}

// LoadCLIConfig is LoadConfig without the server-only requirements. It uses
// the global Viper instance so flags bound with viper.BindPFlag take
// precedence.
func LoadCLIConfig() (*Config, error) {
	return Load(viper.GetViper(), ".env")
}

// LoadServer is Load plus the checks only the webhook server needs.
func LoadServer(v *viper.Viper, envFile string) (*Config, error) {
	cfg, err := Load(v, envFile)
	if err != nil {
		return nil, err
	}
	if cfg.GitHub.WebhookSecret == "" {
		return nil, ErrMissingWebhookSecret
	}
	return cfg, nil
}

// Load reads configuration through v. envFile may be empty to skip the file.
func Load(v *viper.Viper, envFile string) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !isNotExist(err) {
				slog.Error("failed to read config file", "file", envFile, "error", err)
			}
		}
	}

	driver := strings.ToLower(v.GetString("STORAGE_DRIVER"))
	if driver != StorageDriverFile && driver != StorageDriverPostgres {
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", driver)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:       v.GetString("SERVER_PORT"),
			MaxWorkers: v.GetInt("MAX_WORKERS"),
			QueueSize:  v.GetInt("JOB_QUEUE_SIZE"),
		},
		Logging: logger.Config{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
		},
		GitHub: GitHubConfig{
			WebhookSecret:  v.GetString("GITHUB_WEBHOOK_SECRET"),
			AppID:          v.GetInt64("GITHUB_APP_ID"),
			InstallationID: v.GetInt64("GITHUB_INSTALLATION_ID"),
			PrivateKeyPath: v.GetString("GITHUB_PRIVATE_KEY_PATH"),
			Token:          v.GetString("GITHUB_TOKEN"),
		},
		Whitelist: WhitelistConfig{
			Enabled:           v.GetBool("WHITELIST_ENABLED"),
			Directory:         v.GetString("CONFIG_DIRECTORY"),
			UserListFileName:  v.GetString("USERLIST_FILE_NAME"),
			AdminListFileName: v.GetString("ADMINLIST_FILE_NAME"),
		},
		Storage: StorageConfig{Driver: driver},
		Database: DBConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			Username:        v.GetString("DB_USERNAME"),
			Password:        v.GetString("DB_PASSWORD"),
			Database:        v.GetString("DB_NAME"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
		CI: CIConfig{
			Webhook: WebhookCIConfig{
				URL:     v.GetString("CI_WEBHOOK_URL"),
				Secret:  v.GetString("CI_WEBHOOK_SECRET"),
				Timeout: v.GetDuration("CI_WEBHOOK_TIMEOUT"),
			},
			CDEvents: CDEventsCIConfig{
				SinkURL: v.GetString("CI_CDEVENTS_SINK"),
				Source:  v.GetString("CI_CDEVENTS_SOURCE"),
			},
			GitHubActions: GitHubActionsCIConfig{
				EventType:       v.GetString("CI_GITHUB_EVENT_TYPE"),
				FailedEventType: v.GetString("CI_GITHUB_FAILED_EVENT_TYPE"),
			},
			GitHubStatus: GitHubStatusCIConfig{
				TargetURL: v.GetString("CI_GITHUB_STATUS_TARGET_URL"),
			},
		},
		FormatFile: v.GetString("FORMAT_CONFIG_FILE"),
	}

	if cfg.Whitelist.UserListFileName == cfg.Whitelist.AdminListFileName {
		return nil, fmt.Errorf("USERLIST_FILE_NAME and ADMINLIST_FILE_NAME must differ")
	}

	return cfg, nil
}
