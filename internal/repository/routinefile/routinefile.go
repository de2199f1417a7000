// Package routinefile loads routine definitions from a YAML document.
package routinefile

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/smartscreen/backend/internal/domain"
)

type document struct {
	Routines []entry `yaml:"routines"`
}

type entry struct {
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	StartTime     string   `yaml:"startTime"`
	EndTime       string   `yaml:"endTime"`
	ActiveDays    []string `yaml:"activeDays"`
	DayCategory   string   `yaml:"dayCategory"`
	Actions       []string `yaml:"actions"`
	CustomMessage string   `yaml:"customMessage"`
	ShowWeather   bool     `yaml:"showWeather"`
	ShowTraffic   bool     `yaml:"showTraffic"`
	ShowLocation  bool     `yaml:"showLocation"`
	ShowTime      bool     `yaml:"showTime"`
	ShowDate      bool     `yaml:"showDate"`
	Enabled       *bool    `yaml:"enabled"`
	Priority      int      `yaml:"priority"`
}

// Store serves routines parsed from a YAML file
type Store struct {
	path string

	mu       sync.RWMutex
	routines []domain.Routine
}

// Open parses the file at path
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the file; the previous routines stay in place on error
func (s *Store) Reload() error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("routinefile: failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	routines, err := Decode(f)
	if err != nil {
		return fmt.Errorf("routinefile: %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.routines = routines
	s.mu.Unlock()
	return nil
}

// Decode parses a YAML routine document
func Decode(r io.Reader) ([]domain.Routine, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode routines: %w", err)
	}

	routines := make([]domain.Routine, 0, len(doc.Routines))
	for i, e := range doc.Routines {
		rt, err := e.toRoutine()
		if err != nil {
			return nil, fmt.Errorf("routine %d (%s): %w", i, e.Name, err)
		}
		rt.ID = int64(i + 1)
		routines = append(routines, rt)
	}
	return routines, nil
}

func (e entry) toRoutine() (domain.Routine, error) {
	rt := domain.Routine{
		Name:          e.Name,
		Description:   e.Description,
		CustomMessage: e.CustomMessage,
		ShowWeather:   e.ShowWeather,
		ShowTraffic:   e.ShowTraffic,
		ShowLocation:  e.ShowLocation,
		ShowTime:      e.ShowTime,
		ShowDate:      e.ShowDate,
		Enabled:       e.Enabled == nil || *e.Enabled,
		Priority:      e.Priority,
	}

	if e.StartTime != "" {
		t, err := domain.ParseTimeOfDay(e.StartTime)
		if err != nil {
			return rt, err
		}
		rt.StartTime = &t
	}
	if e.EndTime != "" {
		t, err := domain.ParseTimeOfDay(e.EndTime)
		if err != nil {
			return rt, err
		}
		rt.EndTime = &t
	}

	c, err := domain.ParseDayCategory(e.DayCategory)
	if err != nil {
		return rt, err
	}
	rt.DayCategory = c

	for _, d := range e.ActiveDays {
		wd, err := domain.ParseWeekday(d)
		if err != nil {
			return rt, err
		}
		rt.ActiveDays = append(rt.ActiveDays, wd)
	}
	for _, a := range e.Actions {
		at, err := domain.ParseActionType(a)
		if err != nil {
			return rt, err
		}
		rt.Actions = append(rt.Actions, at)
	}
	return rt, nil
}

// FindEnabledOrderedByPriorityDesc returns enabled routines, highest priority first
func (s *Store) FindEnabledOrderedByPriorityDesc(ctx context.Context) ([]domain.Routine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Routine, 0, len(s.routines))
	for _, rt := range s.routines {
		if rt.Enabled {
			out = append(out, rt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out, nil
}
