package routinefile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartscreen/backend/internal/domain"
)

const sample = `
routines:
  - name: Morning
    startTime: "06:00"
    endTime: "09:00"
    activeDays: [MONDAY, tuesday]
    dayCategory: WORKDAY
    actions: [SHOW_GREETING, SHOW_TIME]
    priority: 1
  - name: Banner
    dayCategory: any
    actions: [SHOW_CUSTOM_MESSAGE]
    customMessage: Stand-up at 10
    priority: 5
  - name: Disabled
    enabled: false
    priority: 9
`

func TestDecode(t *testing.T) {
	routines, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, routines, 3)

	morning := routines[0]
	assert.Equal(t, int64(1), morning.ID)
	require.True(t, morning.HasWindow())
	assert.Equal(t, domain.TimeOfDay{Hour: 6}, *morning.StartTime)
	assert.Equal(t, domain.TimeOfDay{Hour: 9}, *morning.EndTime)
	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday}, morning.ActiveDays)
	assert.Equal(t, domain.DayCategoryWorkday, morning.DayCategory)
	assert.True(t, morning.Enabled)

	banner := routines[1]
	assert.False(t, banner.HasWindow())
	assert.Equal(t, domain.DayCategoryAny, banner.DayCategory)
	assert.Equal(t, "Stand-up at 10", banner.CustomMessage)

	assert.False(t, routines[2].Enabled)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad action", "routines:\n  - name: x\n    actions: [SHOW_STOCKS]\n"},
		{"bad time", "routines:\n  - name: x\n    startTime: \"25:00\"\n"},
		{"bad category", "routines:\n  - name: x\n    dayCategory: SOMEDAY\n"},
		{"unknown field", "routines:\n  - name: x\n    colour: blue\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestStore_FindEnabledOrderedByPriorityDesc(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routines.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	store, err := Open(path)
	require.NoError(t, err)

	routines, err := store.FindEnabledOrderedByPriorityDesc(context.Background())
	require.NoError(t, err)
	require.Len(t, routines, 2)
	assert.Equal(t, "Banner", routines[0].Name)
	assert.Equal(t, "Morning", routines[1].Name)
}

func TestStore_ReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routines.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	store, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("routines: ["), 0o600))
	assert.Error(t, store.Reload())

	routines, err := store.FindEnabledOrderedByPriorityDesc(context.Background())
	require.NoError(t, err)
	assert.Len(t, routines, 2)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
