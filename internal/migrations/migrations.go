// Package migrations bootstraps the database schema from the bun models.
package migrations

import (
	"context"
	"fmt"

	"github.com/goliatone/go-places/internal/places"
	"github.com/uptrace/bun"
)

// Run creates the places table and its indexes when missing. It is safe to
// call on every startup.
func Run(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return fmt.Errorf("migrations: db is required")
	}

	if _, err := db.NewCreateTable().
		Model((*places.Place)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("migrations: create places table: %w", err)
	}

	indexes := []struct {
		name    string
		columns []string
	}{
		{name: "idx_places_status", columns: []string{"status"}},
		{name: "idx_places_updated_at", columns: []string{"updated_at"}},
		{name: "idx_places_created_at", columns: []string{"created_at"}},
	}
	for _, index := range indexes {
		query := db.NewCreateIndex().
			Model((*places.Place)(nil)).
			Index(index.name).
			IfNotExists()
		for _, column := range index.columns {
			query = query.Column(column)
		}
		if _, err := query.Exec(ctx); err != nil {
			return fmt.Errorf("migrations: create index %s: %w", index.name, err)
		}
	}
	return nil
}
