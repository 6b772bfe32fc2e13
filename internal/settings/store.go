// Package settings is the per-user key-value store the widget persists its
// position and lock flag in.
package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/yamatools/internal/database/repository"
)

// Scope decides who a stored value belongs to.
type Scope string

const (
	ScopeUser  Scope = repository.ScopeUser
	ScopeWorld Scope = repository.ScopeWorld
)

// Definition registers a setting and the value Get falls back to.
type Definition struct {
	Namespace string
	Key       string
	Scope     Scope
	Default   any
}

// Store persists opaque values. Get reports ok=false when neither a value
// nor a registered default exists; callers validate the shape themselves.
type Store interface {
	Register(ctx context.Context, def Definition) error
	Get(ctx context.Context, namespace, key string) (value any, ok bool, err error)
	Set(ctx context.Context, namespace, key string, value any) error
}

// UserID derives a stable owner id from a user name.
func UserID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("user:"+name)).String()
}

func ownerFor(scope Scope, user string) string {
	if scope == ScopeWorld {
		return uuid.Nil.String()
	}
	return user
}

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode setting: %w", err)
	}
	return string(b), nil
}

func decode(s string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("decode setting: %w", err)
	}
	return v, nil
}
