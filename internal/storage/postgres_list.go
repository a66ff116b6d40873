package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresList is a List stored in the whitelist_entries table. The unique
// constraint on (list_name, username) makes Add atomic without application locks.
type PostgresList struct {
	db   *sqlx.DB
	name string
}

var _ List = (*PostgresList)(nil)

// NewPostgresList returns the list called name.
func NewPostgresList(db *sqlx.DB, name string) *PostgresList {
	return &PostgresList{db: db, name: name}
}

// NewPostgresLists returns the user and admin lists sharing one connection pool.
func NewPostgresLists(db *sqlx.DB) *Lists {
	return &Lists{
		User:  NewPostgresList(db, UserListName),
		Admin: NewPostgresList(db, AdminListName),
	}
}

// Contains reports whether username is on the list.
func (l *PostgresList) Contains(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM whitelist_entries WHERE list_name = $1 AND username = $2)`
	if err := l.db.GetContext(ctx, &exists, query, l.name, username); err != nil {
		return false, fmt.Errorf("querying %s list: %w", l.name, err)
	}
	return exists, nil
}

// Add inserts username; a conflicting row means it was already present.
func (l *PostgresList) Add(ctx context.Context, username string) (bool, error) {
	if err := ValidateUsername(username); err != nil {
		return false, err
	}

	query := `
		INSERT INTO whitelist_entries (list_name, username)
		VALUES ($1, $2)
		ON CONFLICT (list_name, username) DO NOTHING`
	res, err := l.db.ExecContext(ctx, query, l.name, username)
	if err != nil {
		return false, fmt.Errorf("inserting into %s list: %w", l.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("inserting into %s list: %w", l.name, err)
	}
	return n == 1, nil
}

// Entries returns the members in insertion order.
func (l *PostgresList) Entries(ctx context.Context) ([]string, error) {
	var names []string
	query := `SELECT username FROM whitelist_entries WHERE list_name = $1 ORDER BY id`
	if err := l.db.SelectContext(ctx, &names, query, l.name); err != nil {
		return nil, fmt.Errorf("listing %s list: %w", l.name, err)
	}
	return names, nil
}
