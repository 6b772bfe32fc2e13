package database

import (
	"context"
	"database/sql"

	"github.com/jask/yamatools/internal/database/repository"
)

// SeedDefaults records setting definitions and their defaults.
// It is idempotent and safe to run on every startup; a changed default
// replaces the previous one without touching stored values.
func SeedDefaults(ctx context.Context, db *sql.DB, defs ...repository.SettingDefinition) error {
	repo := repository.NewSettingsRepo(db)
	for _, d := range defs {
		if d.Scope == "" {
			d.Scope = repository.ScopeUser
		}
		if d.UpdatedAt.IsZero() {
			d.UpdatedAt = Now()
		}
		if err := repo.UpsertDefinition(ctx, d); err != nil {
			return err
		}
	}
	return nil
}
