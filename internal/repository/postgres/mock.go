package postgres

import (
	"context"
	"sort"
	"sync"

	"github.com/smartscreen/backend/internal/domain"
	"github.com/smartscreen/backend/internal/repository"
)

// MockRepository implements domain.Repository in memory for testing/demo mode.
// It starts with the same defaults Seed writes to PostgreSQL.
type MockRepository struct {
	mu         sync.RWMutex
	routines   []domain.Routine
	preference domain.Preference
	values     map[string]string
	nextID     int64
	settings   *repository.KeyValueSettings
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	r := &MockRepository{
		preference: repository.DefaultPreference(),
		values:     make(map[string]string),
	}
	for _, s := range repository.DefaultSettings() {
		r.values[s.Key] = s.Value
	}
	for _, rt := range repository.DefaultRoutines() {
		r.addLocked(rt)
	}
	r.settings = repository.NewKeyValueSettings(r)
	return r
}

func (r *MockRepository) addLocked(rt domain.Routine) {
	r.nextID++
	rt.ID = r.nextID
	r.routines = append(r.routines, rt)
}

// SaveRoutine appends a routine
func (r *MockRepository) SaveRoutine(ctx context.Context, rt domain.Routine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addLocked(rt)
	return nil
}

// ReplaceRoutines swaps the whole routine set
func (r *MockRepository) ReplaceRoutines(routines []domain.Routine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routines = nil
	for _, rt := range routines {
		r.addLocked(rt)
	}
}

// FindEnabledOrderedByPriorityDesc returns enabled routines, highest priority first
func (r *MockRepository) FindEnabledOrderedByPriorityDesc(ctx context.Context) ([]domain.Routine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Routine, 0, len(r.routines))
	for _, rt := range r.routines {
		if rt.Enabled {
			out = append(out, rt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out, nil
}

// GetPreference returns the stored preference
func (r *MockRepository) GetPreference(ctx context.Context) (domain.Preference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.preference, nil
}

// SetPreference replaces the stored preference
func (r *MockRepository) SetPreference(p domain.Preference) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preference = p
}

// SettingValue looks up a raw setting
func (r *MockRepository) SettingValue(ctx context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok, nil
}

// SetSetting stores a raw setting
func (r *MockRepository) SetSetting(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

// GetDomainConfig builds per-domain settings from the in-memory values
func (r *MockRepository) GetDomainConfig(ctx context.Context, d domain.DataDomain) (domain.DomainSettings, error) {
	return r.settings.GetDomainConfig(ctx, d)
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
