package repository

import (
	"context"
	"database/sql"
	"errors"
)

// SettingsRepo handles setting definitions and per-owner values.
type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) UpsertDefinition(ctx context.Context, d SettingDefinition) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO setting_definitions(namespace, key, scope, default_json, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(namespace, key) DO UPDATE SET
	 scope=excluded.scope,
	 default_json=excluded.default_json,
	 updated_at=excluded.updated_at;
	`, d.Namespace, d.Key, d.Scope, d.DefaultJSON, d.UpdatedAt)
	return err
}

func (r *SettingsRepo) GetDefinition(ctx context.Context, namespace, key string) (SettingDefinition, bool, error) {
	var d SettingDefinition
	err := r.db.QueryRowContext(ctx, `
	SELECT namespace, key, scope, default_json, updated_at
	FROM setting_definitions WHERE namespace = ? AND key = ?`, namespace, key).
		Scan(&d.Namespace, &d.Key, &d.Scope, &d.DefaultJSON, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SettingDefinition{}, false, nil
	}
	if err != nil {
		return SettingDefinition{}, false, err
	}
	return d, true, nil
}

func (r *SettingsRepo) GetValue(ctx context.Context, namespace, key, ownerID string) (SettingValue, bool, error) {
	var v SettingValue
	err := r.db.QueryRowContext(ctx, `
	SELECT namespace, key, owner_id, value_json, updated_at
	FROM setting_values WHERE namespace = ? AND key = ? AND owner_id = ?`, namespace, key, ownerID).
		Scan(&v.Namespace, &v.Key, &v.OwnerID, &v.ValueJSON, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SettingValue{}, false, nil
	}
	if err != nil {
		return SettingValue{}, false, err
	}
	return v, true, nil
}

func (r *SettingsRepo) SetValue(ctx context.Context, v SettingValue) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO setting_values(namespace, key, owner_id, value_json, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(namespace, key, owner_id) DO UPDATE SET
	 value_json=excluded.value_json,
	 updated_at=excluded.updated_at;
	`, v.Namespace, v.Key, v.OwnerID, v.ValueJSON, v.UpdatedAt)
	return err
}

// ListValues returns every stored value in a namespace, for all owners.
func (r *SettingsRepo) ListValues(ctx context.Context, namespace string) ([]SettingValue, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT namespace, key, owner_id, value_json, updated_at
	FROM setting_values WHERE namespace = ? ORDER BY key, owner_id`, namespace)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SettingValue
	for rows.Next() {
		var v SettingValue
		if err := rows.Scan(&v.Namespace, &v.Key, &v.OwnerID, &v.ValueJSON, &v.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
