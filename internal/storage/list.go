// Package storage implements the durable authorization lists.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/sevigo/pr-gatekeeper/internal/config"
	"github.com/sevigo/pr-gatekeeper/internal/db"
)

// Names of the two authorization tiers.
const (
	UserListName  = "user"
	AdminListName = "admin"
)

var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrUnknownList     = errors.New("unknown list")
)

// List is a durable, duplicate-free set of usernames.
type List interface {
	// Contains reports whether username is a member.
	Contains(ctx context.Context, username string) (bool, error)

	// Add inserts username and persists it before returning true. It returns
	// false without writing anything when username is already a member.
	Add(ctx context.Context, username string) (bool, error)

	// Entries returns the members in insertion order.
	Entries(ctx context.Context) ([]string, error)
}

// Lists holds the user and admin tiers.
type Lists struct {
	User  List
	Admin List
}

// ByName returns the list for a tier name ("user" or "admin").
func (l *Lists) ByName(name string) (List, error) {
	switch name {
	case UserListName:
		return l.User, nil
	case AdminListName:
		return l.Admin, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownList, name)
	}
}

// ValidateUsername rejects names that cannot round-trip through a
// line-oriented store.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: empty", ErrInvalidUsername)
	}
	if strings.ContainsAny(username, "\r\n") {
		return fmt.Errorf("%w: %q contains a line break", ErrInvalidUsername, username)
	}
	return nil
}

// Open builds both lists for the configured driver. The returned cleanup
// releases whatever the driver holds open.
func Open(cfg *config.Config, logger *slog.Logger) (*Lists, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		conn, cleanup, err := db.NewDatabase(&cfg.Database)
		if err != nil {
			return nil, func() {}, err
		}
		logger.Info("using postgres authorization lists", "host", cfg.Database.Host, "database", cfg.Database.Database)
		return NewPostgresLists(conn.DB), cleanup, nil

	case config.StorageDriverFile, "":
		dir := cfg.Whitelist.Directory
		user, err := NewFileList(UserListName, filepath.Join(dir, cfg.Whitelist.UserListFileName), logger)
		if err != nil {
			return nil, func() {}, err
		}
		admin, err := NewFileList(AdminListName, filepath.Join(dir, cfg.Whitelist.AdminListFileName), logger)
		if err != nil {
			return nil, func() {}, err
		}
		return &Lists{User: user, Admin: admin}, func() {}, nil

	default:
		return nil, func() {}, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
