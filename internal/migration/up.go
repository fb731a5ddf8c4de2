package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/mysql/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// MigrateUp applies the embedded migrations matching the given driver.
// A dirty version is forced back to the previous one and retried once.
func MigrateUp(db *sql.DB, driver string) error {
	dir := path.Join("migrations", driver)

	src, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("could not create source driver: %v", err)
	}

	dbDriver, err := newDatabaseDriver(db, driver)
	if err != nil {
		return fmt.Errorf("could not create migration driver: %v", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, dbDriver)
	if err != nil {
		return fmt.Errorf("failed to initialize migration: %v", err)
	}

	err = m.Up()
	if err == nil || errors.Is(err, migrate.ErrNoChange) {
		return nil
	}

	var dirtyErr migrate.ErrDirty
	if !errors.As(err, &dirtyErr) {
		return fmt.Errorf("migration up failed: %w", err)
	}

	prev, err := previousVersion(dir, dirtyErr.Version)
	if err != nil {
		return err
	}
	log.Printf("database dirty at version %d, forcing back to %d", dirtyErr.Version, prev)
	if ferr := m.Force(prev); ferr != nil {
		return fmt.Errorf("failed to force to version %d: %w", prev, ferr)
	}
	if err2 := m.Up(); err2 != nil && !errors.Is(err2, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed after force: %w", err2)
	}
	return nil
}

func newDatabaseDriver(db *sql.DB, driver string) (database.Driver, error) {
	switch driver {
	case "mysql":
		return mysql.WithInstance(db, &mysql.Config{})
	case "sqlite":
		return sqlite.WithInstance(db, &sqlite.Config{})
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

// previousVersion finds the migration preceding dirtyVersion in dir.
// Version 1 being dirty yields -1 so the schema is treated as empty.
func previousVersion(dir string, dirtyVersion int) (int, error) {
	entries, readErr := migrationsFS.ReadDir(dir)
	if readErr != nil {
		return 0, fmt.Errorf("dirty at %d but failed to read migrations directory: %w", dirtyVersion, readErr)
	}

	var versions []int
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		// <version>_<description>.up.sql
		v, parseErr := strconv.Atoi(strings.SplitN(name, "_", 2)[0])
		if parseErr != nil {
			continue
		}
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })

	for i, v := range versions {
		if v != dirtyVersion {
			continue
		}
		if i == 0 {
			return database.NilVersion, nil
		}
		return versions[i-1], nil
	}
	return 0, fmt.Errorf("could not determine previous version before %d", dirtyVersion)
}
