package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartscreen/backend/internal/config"
	"github.com/smartscreen/backend/internal/repository/postgres"
	"github.com/smartscreen/backend/internal/repository/routinefile"
)

func baseConfig() *config.Config {
	return &config.Config{MergePolicy: "last-wins", GeocodeRatePerSec: 1}
}

func TestNew_InMemory(t *testing.T) {
	a, err := New(context.Background(), baseConfig())
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &postgres.MockRepository{}, a.Repo)
	assert.NotNil(t, a.Composer)
	assert.NotNil(t, a.Gateway)
	assert.True(t, a.Locations.Current().IsEmpty())
}

func TestNew_RoutinesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routines.yaml")
	require.NoError(t, os.WriteFile(path, []byte("routines:\n  - name: Always\n    actions: [SHOW_GREETING]\n"), 0o600))

	cfg := baseConfig()
	cfg.RoutinesFile = path
	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &routinefile.Store{}, a.Routines)
}

func TestNew_InvalidSettings(t *testing.T) {
	cfg := baseConfig()
	cfg.MergePolicy = "loudest-wins"
	_, err := New(context.Background(), cfg)
	assert.Error(t, err)

	cfg = baseConfig()
	cfg.Timezone = "Nowhere/Special"
	_, err = New(context.Background(), cfg)
	assert.Error(t, err)

	cfg = baseConfig()
	cfg.RoutinesFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = New(context.Background(), cfg)
	assert.Error(t, err)
}
