// Package store persists named Rant values in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/tliron/commonlog"
	_ "modernc.org/sqlite"

	"github.com/chazu/rant/vm"
	"github.com/chazu/rant/vm/dist"
)

// ErrVariableNotFound indicates the requested variable doesn't exist
var ErrVariableNotFound = errors.New("variable not found")

var log = commonlog.GetLogger("rant.store")

// Store holds variable bindings in a SQLite database. Values are stored in
// their CBOR wire encoding together with their content hash.
type Store struct {
	db      *sql.DB
	path    string
	resolve dist.TemplateResolver
	mu      sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithResolver sets the resolver used to rebuild templates on Get.
func WithResolver(r dist.TemplateResolver) Option {
	return func(s *Store) {
		s.resolve = r
	}
}

// Open opens (creating if needed) the store database at path.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	s := &Store{path: path, resolve: dist.SourceResolver}
	for _, opt := range opts {
		opt(s)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	s.db = db

	// Set busy timeout for concurrent access
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Create table if needed
	_, err = db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS vars (
		name TEXT PRIMARY KEY,
		kind INTEGER NOT NULL,
		hash BLOB NOT NULL,
		data BLOB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	log.Debugf("opened variable store %s", path)
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Set binds name to v, replacing any previous binding.
func (s *Store) Set(ctx context.Context, name string, v vm.Value) error {
	data, err := dist.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	hash, err := dist.Hash(v)
	if err != nil {
		return fmt.Errorf("hashing %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO vars (name, kind, hash, data) VALUES (?, ?, ?, ?)",
		name, int(v.Kind()), hash[:], data,
	)
	if err != nil {
		return fmt.Errorf("saving variable %s: %w", name, err)
	}

	log.Debugf("set %s = %s (%s)", name, v, v.Kind())
	return nil
}

// Get returns the value bound to name. A missing binding returns vm.No
// together with ErrVariableNotFound.
func (s *Store) Get(ctx context.Context, name string) (vm.Value, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM vars WHERE name = ?", name).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vm.No, ErrVariableNotFound
		}
		return vm.No, fmt.Errorf("querying variable %s: %w", name, err)
	}

	v, err := dist.Unmarshal(data, s.resolve)
	if err != nil {
		return vm.No, fmt.Errorf("decoding variable %s: %w", name, err)
	}
	return v, nil
}

// Hash returns the content hash recorded for name.
func (s *Store) Hash(ctx context.Context, name string) ([32]byte, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, "SELECT hash FROM vars WHERE name = ?", name).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return [32]byte{}, ErrVariableNotFound
		}
		return [32]byte{}, fmt.Errorf("querying hash of %s: %w", name, err)
	}
	var h [32]byte
	if len(raw) != len(h) {
		return h, fmt.Errorf("variable %s has a %d-byte hash", name, len(raw))
	}
	copy(h[:], raw)
	return h, nil
}

// Delete removes the binding for name. Deleting a missing name returns
// ErrVariableNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM vars WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting variable %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting variable %s: %w", name, err)
	}
	if n == 0 {
		return ErrVariableNotFound
	}
	log.Debugf("deleted %s", name)
	return nil
}

// Names lists the bound variable names in sorted order.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM vars ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing variables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("listing variables: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing variables: %w", err)
	}
	return names, nil
}

// Seed binds every name in vars that is not already bound. It returns the
// names that were added, sorted. Each binding is inserted with INSERT OR
// IGNORE, so concurrent seeders never both report the same name.
func (s *Store) Seed(ctx context.Context, vars map[string]vm.Value) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var added []string
	for name, v := range vars {
		data, err := dist.Marshal(v)
		if err != nil {
			return added, fmt.Errorf("encoding %s: %w", name, err)
		}
		hash, err := dist.Hash(v)
		if err != nil {
			return added, fmt.Errorf("hashing %s: %w", name, err)
		}

		res, err := s.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO vars (name, kind, hash, data) VALUES (?, ?, ?, ?)",
			name, int(v.Kind()), hash[:], data,
		)
		if err != nil {
			return added, fmt.Errorf("seeding variable %s: %w", name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return added, fmt.Errorf("seeding variable %s: %w", name, err)
		}
		if n > 0 {
			log.Debugf("seeded %s = %s (%s)", name, v, v.Kind())
			added = append(added, name)
		}
	}
	sort.Strings(added)
	return added, nil
}
