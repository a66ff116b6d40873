// Package command holds the catalog of comment commands and resolves the
// configured ones into the active command set.
package command

import (
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"github.com/sevigo/pr-gatekeeper/internal/config"
	"github.com/sevigo/pr-gatekeeper/internal/core"
)

// Catalog keys.
const (
	KeyWhitelistAdd = "whitelist-add"
	KeyAddUser      = "add-user"
	KeyOkToTest     = "ok-to-test"
	KeyRetest       = "retest"
	KeyRetestFailed = "retest-failed"
)

// Factory builds a fresh, pattern-less command.
type Factory func(logger *slog.Logger) core.Command

// Catalog binds commands to their identifying key.
type Catalog map[string]Factory

// DefaultCatalog enumerates all commands known to the system.
func DefaultCatalog() Catalog {
	return Catalog{
		KeyWhitelistAdd: newWhitelistAdd,
		KeyAddUser:      newAddUser,
		KeyOkToTest:     newOkToTest,
		KeyRetest:       newRetest,
		KeyRetestFailed: newRetestFailed,
	}
}

// Registry resolves configuration keys against a catalog.
type Registry struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewRegistry creates a registry over catalog.
func NewRegistry(catalog Catalog, logger *slog.Logger) *Registry {
	return &Registry{catalog: catalog, logger: logger}
}

// Resolve returns a new instance of the command registered under key.
func (r *Registry) Resolve(key string) (core.Command, bool) {
	factory, ok := r.catalog[key]
	if !ok {
		return nil, false
	}
	return factory(r.logger.With("command", key)), true
}

// Load resolves every binding in order and assigns its pattern. Unknown keys
// are skipped with a warning. A pattern that does not compile fails the load.
func (r *Registry) Load(bindings config.CommandBindings) ([]core.Command, error) {
	commands := make([]core.Command, 0, len(bindings))
	var errs *multierror.Error

	for _, b := range bindings {
		cmd, ok := r.Resolve(b.Key)
		if !ok {
			r.logger.Warn("command does not exist, skipping", "key", b.Key)
			continue
		}
		if err := cmd.SetCommandRegex(b.Pattern); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("command %q: %w", b.Key, err))
			continue
		}
		commands = append(commands, cmd)
		r.logger.Info("command registered", "key", b.Key, "pattern", b.Pattern)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return commands, nil
}
