package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/WarenOdhiambo1/lead-magnet/internal/config"
)

// RequiredTables are the tables the engine reads and writes
var RequiredTables = []string{"teams", "matches", "predictions", "market_odds", "bookmakers", "opportunities", "players"}

// Initialize creates a database connection pool and verifies the schema is present
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	missing, err := db.MissingTables(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	if len(missing) > 0 {
		db.Close()
		return nil, fmt.Errorf("database schema incomplete, missing tables: %s", strings.Join(missing, ", "))
	}

	return db, nil
}

// MissingTables returns the required tables absent from the public schema
func (db *DB) MissingTables(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' AND table_name = ANY($1)`,
		RequiredTables,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect schema: %w", err)
	}
	defer rows.Close()

	present := make(map[string]bool, len(RequiredTables))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return missingFrom(present), nil
}

func missingFrom(present map[string]bool) []string {
	var missing []string
	for _, t := range RequiredTables {
		if !present[t] {
			missing = append(missing, t)
		}
	}
	return missing
}
