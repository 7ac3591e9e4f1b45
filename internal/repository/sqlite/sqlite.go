// Package sqlite implements repository.Repository on SQLite.
//
// Shells and submodels live in separate tables. A submodel row is either
// nested (shell_pk set, standalone = 0) or standalone (shell_pk NULL,
// standalone = 1); the same business id may appear in both forms. Rows are
// addressed by id_key, the identifier normalised by the configured
// domain.IDMatch, and updated by their storage-assigned pk.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"aasregistry/internal/domain"
	"aasregistry/internal/repository"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

const settingIDMatch = "id_match"

// Repository implements repository.Repository using SQLite
type Repository struct {
	db    *sql.DB
	match domain.IDMatch
}

var _ repository.Repository = (*Repository)(nil)

// Option configures a Repository
type Option func(*Repository)

// WithIDMatch sets the identifier match policy. A database keeps the policy
// it was created with; opening it with another one fails.
func WithIDMatch(m domain.IDMatch) Option {
	return func(r *Repository) {
		if m != "" {
			r.match = m
		}
	}
}

// New opens (creating if needed) the database at dbPath and applies pending
// migrations.
func New(dbPath string, opts ...Option) (*Repository, error) {
	repo := &Repository{match: domain.IDMatchExact}
	for _, opt := range opts {
		opt(repo)
	}

	if dbPath != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: keeps a :memory: database alive and serialises writers.
	db.SetMaxOpenConns(1)
	repo.db = db

	if err := repo.configure(dbPath); err != nil {
		db.Close()
		return nil, err
	}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := repo.checkIDMatch(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *Repository) configure(dbPath string) error {
	pragmas := []string{"PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000"}
	if dbPath != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := r.db.Exec(p); err != nil {
			return fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}
	return nil
}

func (r *Repository) migrator() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	driver, err := sqlitemigrate.WithInstance(r.db, &sqlitemigrate.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}

// migrate applies pending migrations. The migrator is not closed because
// closing it would close r.db.
func (r *Repository) migrate() error {
	m, err := r.migrator()
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// SchemaVersion reports the applied migration version and whether the last
// migration failed half way.
func (r *Repository) SchemaVersion() (uint, bool, error) {
	m, err := r.migrator()
	if err != nil {
		return 0, false, err
	}
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// checkIDMatch records the match policy on first use and rejects a policy
// change afterwards, since stored id_key values depend on it.
func (r *Repository) checkIDMatch(ctx context.Context) error {
	var stored string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, settingIDMatch).Scan(&stored)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO settings (key, value) VALUES (?, ?)`, settingIDMatch, string(r.match)); err != nil {
			return fmt.Errorf("failed to store id match policy: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to read id match policy: %w", err)
	case stored != string(r.match):
		return repository.NewInvalidArgumentError("database uses id match %q, configured %q", stored, r.match)
	}
	return nil
}

func (r *Repository) Name() string {
	return "sqlite"
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// inTx runs fn in one transaction, committing only when fn succeeds
func (r *Repository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func now() time.Time {
	return time.Now().UTC()
}
