package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate применяет миграции для task-сервиса
func (db *DB) Migrate(ctx context.Context) error {
	dir := "migrations/postgres"
	if db.driver == DriverSQLite {
		dir = "migrations/sqlite"
	}

	db.log.Debug("running tasksDB migrations", "dir", dir)

	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".sql" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		stmt, err := migrationsFS.ReadFile(path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.conn.ExecContext(ctx, string(stmt)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		db.log.Debug("migration applied", "name", name)
	}

	db.log.Debug("tasksDB migrations finished", "count", len(names))
	return nil
}
