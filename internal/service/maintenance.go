package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/yamatools/internal/database"
	"github.com/jask/yamatools/internal/settings"
)

// MaintenanceService houses destructive/ops actions surfaced through the TUI.
type MaintenanceService struct {
	DB    *sql.DB
	Files *settings.FileStore
}

// Reset wipes every stored value in namespace for all users. Definitions and
// their defaults stay, so the next load falls back to them.
func (s *MaintenanceService) Reset(ctx context.Context, namespace string) error {
	switch {
	case s.DB != nil:
		return database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "DELETE FROM setting_values WHERE namespace = ?", namespace); err != nil {
				return fmt.Errorf("reset %s: %w", namespace, err)
			}
			return nil
		})
	case s.Files != nil:
		return s.Files.Reset(ctx, namespace)
	}
	return fmt.Errorf("maintenance: no store configured")
}
