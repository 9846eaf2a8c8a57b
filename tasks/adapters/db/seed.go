package db

import (
	"context"
	"fmt"
	"strings"
)

// SeedCategories inserts categories by name, skipping names that already exist.
// It returns how many rows were inserted.
func (db *DB) SeedCategories(ctx context.Context, names []string) (int, error) {
	return db.seed(ctx, "categories", names)
}

// SeedTags inserts tags by name, skipping names that already exist.
func (db *DB) SeedTags(ctx context.Context, names []string) (int, error) {
	return db.seed(ctx, "tags", names)
}

func (db *DB) seed(ctx context.Context, table string, names []string) (int, error) {
	q := db.q(fmt.Sprintf(`INSERT INTO %s(name, created_at) VALUES (?, ?)`, table))

	inserted := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if _, err := db.conn.ExecContext(ctx, q, name, db.now()); err != nil {
			if isUniqueViolation(err) {
				db.log.Debug("seed row exists", "table", table, "name", name)
				continue
			}
			return inserted, fmt.Errorf("seed %s %q: %w", table, name, err)
		}
		inserted++
	}
	return inserted, nil
}
