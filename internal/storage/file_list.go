package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// FileList is a List persisted as one username per line. Writes are appends
// followed by fsync. The file may also be edited by hand, so a last line
// without a newline is a complete entry; the next append terminates it first.
//
// A mutex serializes access inside the process; an advisory lock on
// "<path>.lock" serializes the server and the CLI sharing a directory.
type FileList struct {
	name   string
	path   string
	lock   *flock.Flock
	logger *slog.Logger

	mu      sync.Mutex
	entries []string
	index   map[string]struct{}
	// unterminated is set when the file does not end in a newline.
	unterminated bool
	size         int64
	modTime      time.Time
}

var _ List = (*FileList)(nil)

// NewFileList opens (or prepares) the list stored at path and loads it.
func NewFileList(name, path string, logger *slog.Logger) (*FileList, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating directory for %s list: %w", name, err)
	}

	l := &FileList{
		name:   name,
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logger.With("list", name),
		index:  make(map[string]struct{}),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.withSharedLock(l.loadLocked); err != nil {
		return nil, fmt.Errorf("loading %s list from %s: %w", name, path, err)
	}

	l.logger.Info("authorization list loaded", "path", path, "entries", len(l.entries))
	return l, nil
}

// Contains reports whether username is on the list.
func (l *FileList) Contains(_ context.Context, username string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.refreshLocked(); err != nil {
		return false, err
	}
	_, ok := l.index[username]
	return ok, nil
}

// Add appends username unless it is already present.
func (l *FileList) Add(_ context.Context, username string) (bool, error) {
	if err := ValidateUsername(username); err != nil {
		return false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.lock.Lock(); err != nil {
		return false, fmt.Errorf("locking %s list: %w", l.name, err)
	}
	defer func() {
		if err := l.lock.Unlock(); err != nil {
			l.logger.Error("failed to release list lock", "error", err)
		}
	}()

	// Another process may have appended since the last read.
	if err := l.loadLocked(); err != nil {
		return false, fmt.Errorf("reloading %s list: %w", l.name, err)
	}
	if _, ok := l.index[username]; ok {
		return false, nil
	}

	if err := l.appendLocked(username); err != nil {
		return false, fmt.Errorf("persisting %q to %s list: %w", username, l.name, err)
	}

	l.entries = append(l.entries, username)
	l.index[username] = struct{}{}
	l.logger.Info("user added to authorization list", "username", username)
	return true, nil
}

// Entries returns a copy of the members in insertion order.
func (l *FileList) Entries(_ context.Context) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.refreshLocked(); err != nil {
		return nil, err
	}
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out, nil
}

func (l *FileList) withSharedLock(fn func() error) error {
	if err := l.lock.RLock(); err != nil {
		return fmt.Errorf("locking %s list: %w", l.name, err)
	}
	defer func() {
		if err := l.lock.Unlock(); err != nil {
			l.logger.Error("failed to release list lock", "error", err)
		}
	}()
	return fn()
}

// refreshLocked reloads the file if it changed since it was last read.
func (l *FileList) refreshLocked() error {
	info, err := os.Stat(l.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if l.size == 0 && len(l.entries) == 0 {
			return nil
		}
	case err != nil:
		return fmt.Errorf("checking %s list: %w", l.name, err)
	case info.Size() == l.size && info.ModTime().Equal(l.modTime):
		return nil
	}
	return l.withSharedLock(l.loadLocked)
}

// loadLocked replaces the in-memory state with the file contents.
func (l *FileList) loadLocked() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.entries, l.index = nil, make(map[string]struct{})
			l.unterminated, l.size, l.modTime = false, 0, time.Time{}
			return nil
		}
		return err
	}
	info, err := os.Stat(l.path)
	if err != nil {
		return err
	}

	entries := parseEntries(data)

	index := make(map[string]struct{}, len(entries))
	deduped := entries[:0]
	for _, e := range entries {
		if _, dup := index[e]; dup {
			continue
		}
		index[e] = struct{}{}
		deduped = append(deduped, e)
	}

	l.entries, l.index = deduped, index
	l.unterminated = len(data) > 0 && data[len(data)-1] != '\n'
	l.size, l.modTime = info.Size(), info.ModTime()
	return nil
}

func (l *FileList) appendLocked(username string) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	created := info.Size() == 0 && l.size == 0

	record := []byte(username + "\n")
	if info.Size() > 0 && l.unterminated {
		record = append([]byte{'\n'}, record...)
	}
	if _, err := f.Write(record); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if created {
		syncDir(filepath.Dir(l.path))
	}

	l.unterminated = false
	if info, err := os.Stat(l.path); err == nil {
		l.size, l.modTime = info.Size(), info.ModTime()
	}
	return nil
}

// parseEntries splits data into records, skipping blank lines. A final line
// without a newline is a record like any other.
func parseEntries(data []byte) []string {
	var entries []string
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSuffix(line, []byte{'\r'})
		if len(line) == 0 {
			continue
		}
		entries = append(entries, string(line))
	}
	return entries
}

func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
