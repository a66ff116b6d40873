// Package ci holds the catalog of CI backends and resolves the configured
// ones into the active, initialized backend set.
package ci

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hashicorp/go-multierror"

	"github.com/sevigo/pr-gatekeeper/internal/config"
	"github.com/sevigo/pr-gatekeeper/internal/core"
	"github.com/sevigo/pr-gatekeeper/internal/github"
)

// Catalog keys.
const (
	KeyLog           = "log"
	KeyWebhook       = "webhook"
	KeyGitHubActions = "github-actions"
	KeyGitHubStatus  = "github-status"
	KeyCDEvents      = "cdevents"
)

// Deps carries what backends may need. Backends pick their own settings out
// of Config and validate them in Init.
type Deps struct {
	Config     *config.Config
	Logger     *slog.Logger
	HTTPClient *http.Client

	// NewGitHubClient is called by GitHub-based backends during Init.
	NewGitHubClient func(ctx context.Context) (github.Client, error)
}

// Factory builds a fresh, uninitialized backend.
type Factory func(deps Deps) core.ContinuousIntegration

// Catalog binds CI backends to their identifying key.
type Catalog map[string]Factory

// DefaultCatalog enumerates all CI backends known to the system.
func DefaultCatalog() Catalog {
	return Catalog{
		KeyLog:           newLogCI,
		KeyWebhook:       newWebhookCI,
		KeyGitHubActions: newGitHubActionsCI,
		KeyGitHubStatus:  newGitHubStatusCI,
		KeyCDEvents:      newCDEventsCI,
	}
}

// Registry resolves configuration keys against a catalog.
type Registry struct {
	catalog Catalog
	deps    Deps
}

// NewRegistry creates a registry over catalog. deps is handed to every
// factory.
func NewRegistry(catalog Catalog, deps Deps) *Registry {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Registry{catalog: catalog, deps: deps}
}

// Resolve returns a new, uninitialized instance of the backend registered
// under key.
func (r *Registry) Resolve(key string) (core.ContinuousIntegration, bool) {
	factory, ok := r.catalog[key]
	if !ok {
		return nil, false
	}
	deps := r.deps
	deps.Logger = r.deps.Logger.With("ci", key)
	return factory(deps), true
}

// Load resolves and initializes the backends in configuration order. Unknown
// keys are skipped with a warning. A backend whose Init fails is left out and
// its error is collected; the initialized backends are returned together with
// the aggregated error.
func (r *Registry) Load(ctx context.Context, keys []string) ([]core.ContinuousIntegration, error) {
	backends := make([]core.ContinuousIntegration, 0, len(keys))
	var errs *multierror.Error

	for _, key := range keys {
		backend, ok := r.Resolve(key)
		if !ok {
			r.deps.Logger.Warn("CI backend does not exist, skipping", "key", key)
			continue
		}
		if err := backend.Init(ctx); err != nil {
			r.deps.Logger.Error("failed to initialize CI backend", "key", key, "error", err)
			errs = multierror.Append(errs, fmt.Errorf("CI backend %q: %w", key, err))
			continue
		}
		backends = append(backends, backend)
		r.deps.Logger.Info("CI backend registered", "key", key)
	}

	return backends, errs.ErrorOrNil()
}
