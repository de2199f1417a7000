package domain

import "context"

// RoutineStore supplies routine definitions
type RoutineStore interface {
	// FindEnabledOrderedByPriorityDesc returns enabled routines, highest priority first
	FindEnabledOrderedByPriorityDesc(ctx context.Context) ([]Routine, error)
}

// PreferenceStore supplies the single user's preferences
type PreferenceStore interface {
	GetPreference(ctx context.Context) (Preference, error)
}

// SettingsStore supplies per-domain configuration; it is re-read on every call
type SettingsStore interface {
	GetDomainConfig(ctx context.Context, d DataDomain) (DomainSettings, error)
}

// Repository is everything the server needs from persistence
type Repository interface {
	RoutineStore
	PreferenceStore
	SettingsStore

	// Health checks storage connectivity
	Health(ctx context.Context) error
}
