package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/sevigo/pr-gatekeeper/internal/config"
)

// ErrNoCredentials is returned when neither a GitHub App installation nor a
// token is configured.
var ErrNoCredentials = errors.New("no GitHub credentials configured")

// NewClient creates a GitHub client from configuration. A GitHub App
// installation is preferred; a personal access token is the fallback.
func NewClient(ctx context.Context, cfg *config.GitHubConfig, logger *slog.Logger) (Client, error) {
	switch {
	case cfg.AppID != 0 && cfg.InstallationID != 0 && cfg.PrivateKeyPath != "":
		return CreateInstallationClient(cfg, logger)
	case cfg.Token != "":
		logger.Info("using GitHub token authentication")
		return NewPATClient(ctx, cfg.Token, logger), nil
	default:
		return nil, ErrNoCredentials
	}
}

// CreateInstallationClient creates a GitHub client that is authenticated as a
// specific application installation. The transport refreshes the installation
// token on its own.
func CreateInstallationClient(cfg *config.GitHubConfig, logger *slog.Logger) (Client, error) {
	logger.Info("creating GitHub installation client", "app_id", cfg.AppID, "installation_id", cfg.InstallationID)

	itr, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, cfg.AppID, cfg.InstallationID, cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub installation transport from %s: %w", cfg.PrivateKeyPath, err)
	}
	return NewGitHubClient(github.NewClient(&http.Client{Transport: itr}), logger), nil
}

// NewPATClient creates a new GitHub client authenticated with a Personal Access Token (PAT).
// This is useful for CLI tools or local development where an App installation is not available.
func NewPATClient(ctx context.Context, token string, logger *slog.Logger) Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	return NewGitHubClient(github.NewClient(tc), logger)
}
