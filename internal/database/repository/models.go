package repository

import "time"

// Setting scopes.
const (
	ScopeUser  = "user"
	ScopeWorld = "world"
)

// SettingDefinition represents a registered setting and its default.
type SettingDefinition struct {
	Namespace   string
	Key         string
	Scope       string
	DefaultJSON string
	UpdatedAt   time.Time
}

// SettingValue represents one stored value for an owner.
type SettingValue struct {
	Namespace string
	Key       string
	OwnerID   string
	ValueJSON string
	UpdatedAt time.Time
}
