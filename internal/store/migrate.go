package store

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pboehm/wakeep/internal/store/migrations"
)

// LatestVersion is the number of defined migration steps. A store's schema
// version is its position in the embedded step list; it only ever increases.
const LatestVersion uint = 2

var (
	// ErrAlreadyInitialized is returned when init is attempted on a store
	// that already has a schema.
	ErrAlreadyInitialized = errors.New("database already initialized")

	// ErrAlreadyLatest is returned when migration is attempted on a store
	// that is already at the latest schema version.
	ErrAlreadyLatest = errors.New("database schema already at latest version")

	// ErrVersionTooNew is returned when a store was written by a newer build
	// with migration steps this one does not know about.
	ErrVersionTooNew = errors.New("database schema is newer than this version understands")
)

// MigrateResult describes what happened during migration.
type MigrateResult struct {
	Version uint
	Dirty   bool
	Changed bool
}

func (db *DB) migrator() (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}

	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("migration instance: %w", err)
	}
	return m, nil
}

// CurrentVersion reads the schema version recorded in the store. A store
// whose version bookkeeping is missing or empty reports 0: that is the
// uninitialized signal, not an error.
func (db *DB) CurrentVersion() (uint, error) {
	m, err := db.migrator()
	if err != nil {
		return 0, err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty, restore from a backup", version)
	}
	return version, nil
}

// CheckInit verifies the store can be initialized: only a store with no
// schema yet qualifies.
func (db *DB) CheckInit() error {
	version, err := db.CurrentVersion()
	if err != nil {
		return err
	}
	if version > 0 {
		return fmt.Errorf("schema version %d: %w", version, ErrAlreadyInitialized)
	}
	return nil
}

// CheckMigrate verifies the store can be migrated and returns its current
// version. An already-latest store and a store from a newer build are both
// refused.
func (db *DB) CheckMigrate() (uint, error) {
	version, err := db.CurrentVersion()
	if err != nil {
		return 0, err
	}
	switch {
	case version == LatestVersion:
		return version, fmt.Errorf("schema version %d: %w", version, ErrAlreadyLatest)
	case version > LatestVersion:
		return version, fmt.Errorf("schema version %d: %w", version, ErrVersionTooNew)
	}
	return version, nil
}

// Migrate runs all pending migrations on the database. A store already past
// LatestVersion is refused before anything is touched.
func (db *DB) Migrate() (*MigrateResult, error) {
	current, err := db.CurrentVersion()
	if err != nil {
		return nil, err
	}
	if current > LatestVersion {
		return nil, fmt.Errorf("schema version %d: %w", current, ErrVersionTooNew)
	}

	m, err := db.migrator()
	if err != nil {
		return nil, err
	}

	err = m.Up()
	changed := true
	if errors.Is(err, migrate.ErrNoChange) {
		changed = false
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("migration up: %w", err)
	}

	version, dirty, _ := m.Version()
	return &MigrateResult{
		Version: version,
		Dirty:   dirty,
		Changed: changed,
	}, nil
}
