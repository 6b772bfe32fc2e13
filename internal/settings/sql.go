package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/yamatools/internal/database"
	"github.com/jask/yamatools/internal/database/repository"
)

// SQLStore keeps settings in sqlite, one row per namespace, key and owner.
type SQLStore struct {
	db   *sql.DB
	repo *repository.SettingsRepo
	user string
}

// NewSQLStore returns a store whose user-scoped values belong to userName.
func NewSQLStore(db *sql.DB, userName string) *SQLStore {
	return &SQLStore{db: db, repo: repository.NewSettingsRepo(db), user: UserID(userName)}
}

func (s *SQLStore) Register(ctx context.Context, def Definition) error {
	raw, err := encode(def.Default)
	if err != nil {
		return err
	}
	return database.SeedDefaults(ctx, s.db, repository.SettingDefinition{
		Namespace:   def.Namespace,
		Key:         def.Key,
		Scope:       string(def.Scope),
		DefaultJSON: raw,
	})
}

func (s *SQLStore) Get(ctx context.Context, namespace, key string) (any, bool, error) {
	def, registered, err := s.repo.GetDefinition(ctx, namespace, key)
	if err != nil {
		return nil, false, fmt.Errorf("get %s.%s definition: %w", namespace, key, err)
	}
	owner := ownerFor(Scope(def.Scope), s.user)
	row, found, err := s.repo.GetValue(ctx, namespace, key, owner)
	if err != nil {
		return nil, false, fmt.Errorf("get %s.%s: %w", namespace, key, err)
	}
	raw := ""
	switch {
	case found:
		raw = row.ValueJSON
	case registered:
		raw = def.DefaultJSON
	default:
		return nil, false, nil
	}
	v, err := decode(raw)
	if err != nil {
		return nil, false, fmt.Errorf("get %s.%s: %w", namespace, key, err)
	}
	return v, true, nil
}

func (s *SQLStore) Set(ctx context.Context, namespace, key string, value any) error {
	raw, err := encode(value)
	if err != nil {
		return err
	}
	def, _, err := s.repo.GetDefinition(ctx, namespace, key)
	if err != nil {
		return fmt.Errorf("set %s.%s definition: %w", namespace, key, err)
	}
	if err := s.repo.SetValue(ctx, repository.SettingValue{
		Namespace: namespace,
		Key:       key,
		OwnerID:   ownerFor(Scope(def.Scope), s.user),
		ValueJSON: raw,
		UpdatedAt: database.Now(),
	}); err != nil {
		return fmt.Errorf("set %s.%s: %w", namespace, key, err)
	}
	return nil
}
