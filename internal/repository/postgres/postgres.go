package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartscreen/backend/internal/domain"
	"github.com/smartscreen/backend/internal/repository"
)

// PostgresRepository implements domain.Repository
type PostgresRepository struct {
	pool     *pgxpool.Pool
	settings *repository.KeyValueSettings
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	r := &PostgresRepository{pool: pool}
	r.settings = repository.NewKeyValueSettings(r)
	return r
}

const schema = `
CREATE TABLE IF NOT EXISTS routines (
	id             BIGSERIAL PRIMARY KEY,
	name           TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	start_time     TIME,
	end_time       TIME,
	active_days    TEXT[] NOT NULL DEFAULT '{}',
	day_category   TEXT NOT NULL DEFAULT 'ANY',
	actions        TEXT[] NOT NULL DEFAULT '{}',
	custom_message TEXT NOT NULL DEFAULT '',
	show_weather   BOOLEAN NOT NULL DEFAULT FALSE,
	show_traffic   BOOLEAN NOT NULL DEFAULT FALSE,
	show_location  BOOLEAN NOT NULL DEFAULT FALSE,
	show_time      BOOLEAN NOT NULL DEFAULT TRUE,
	show_date      BOOLEAN NOT NULL DEFAULT TRUE,
	enabled        BOOLEAN NOT NULL DEFAULT TRUE,
	priority       INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS user_preferences (
	user_id          TEXT PRIMARY KEY,
	display_name     TEXT NOT NULL DEFAULT 'User',
	timezone         TEXT NOT NULL DEFAULT 'UTC',
	refresh_interval INTEGER NOT NULL DEFAULT 30
);

CREATE TABLE IF NOT EXISTS system_settings (
	setting_key   TEXT PRIMARY KEY,
	setting_value TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	category      TEXT NOT NULL DEFAULT 'system',
	enabled       BOOLEAN NOT NULL DEFAULT TRUE
);
`

const defaultUserID = "default_user"

// EnsureSchema creates missing tables
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to create schema: %w", err)
	}
	return nil
}

// Seed inserts default settings, preference and sample routines where absent
func (r *PostgresRepository) Seed(ctx context.Context) error {
	for _, s := range repository.DefaultSettings() {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO system_settings (setting_key, setting_value, description, category)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (setting_key) DO NOTHING
		`, s.Key, s.Value, s.Description, s.Category)
		if err != nil {
			return fmt.Errorf("postgres: failed to seed setting %s: %w", s.Key, err)
		}
	}

	p := repository.DefaultPreference()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_preferences (user_id, display_name, timezone, refresh_interval)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING
	`, defaultUserID, p.DisplayName, p.Timezone, p.RefreshInterval)
	if err != nil {
		return fmt.Errorf("postgres: failed to seed preference: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM routines`).Scan(&count); err != nil {
		return fmt.Errorf("postgres: failed to count routines: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, rt := range repository.DefaultRoutines() {
		if err := r.SaveRoutine(ctx, rt); err != nil {
			return err
		}
	}
	return nil
}

// SaveRoutine inserts a routine
func (r *PostgresRepository) SaveRoutine(ctx context.Context, rt domain.Routine) error {
	query := `
		INSERT INTO routines (
			name, description, start_time, end_time, active_days, day_category, actions,
			custom_message, show_weather, show_traffic, show_location, show_time, show_date,
			enabled, priority
		) VALUES ($1, $2, $3::time, $4::time, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.pool.Exec(ctx, query,
		rt.Name, rt.Description, timeParam(rt.StartTime), timeParam(rt.EndTime),
		weekdayNames(rt.ActiveDays), string(rt.DayCategory), actionNames(rt.Actions),
		rt.CustomMessage, rt.ShowWeather, rt.ShowTraffic, rt.ShowLocation, rt.ShowTime, rt.ShowDate,
		rt.Enabled, rt.Priority,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save routine %q: %w", rt.Name, err)
	}
	return nil
}

// FindEnabledOrderedByPriorityDesc loads enabled routines, highest priority first
func (r *PostgresRepository) FindEnabledOrderedByPriorityDesc(ctx context.Context) ([]domain.Routine, error) {
	query := `
		SELECT id, name, description,
			   to_char(start_time, 'HH24:MI:SS'), to_char(end_time, 'HH24:MI:SS'),
			   active_days, day_category, actions, custom_message,
			   show_weather, show_traffic, show_location, show_time, show_date,
			   enabled, priority
		FROM routines
		WHERE enabled
		ORDER BY priority DESC, id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query routines: %w", err)
	}
	defer rows.Close()

	var results []domain.Routine
	for rows.Next() {
		var (
			rt            domain.Routine
			start, end    *string
			days, actions []string
			category      string
		)
		err := rows.Scan(
			&rt.ID, &rt.Name, &rt.Description,
			&start, &end,
			&days, &category, &actions, &rt.CustomMessage,
			&rt.ShowWeather, &rt.ShowTraffic, &rt.ShowLocation, &rt.ShowTime, &rt.ShowDate,
			&rt.Enabled, &rt.Priority,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan routine row: %w", err)
		}
		if err := decodeRoutine(&rt, start, end, days, category, actions); err != nil {
			return nil, fmt.Errorf("postgres: routine %d: %w", rt.ID, err)
		}
		results = append(results, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read routines: %w", err)
	}

	return results, nil
}

// GetPreference returns the default user's preference, or defaults when none is stored
func (r *PostgresRepository) GetPreference(ctx context.Context) (domain.Preference, error) {
	var p domain.Preference
	err := r.pool.QueryRow(ctx, `
		SELECT display_name, timezone, refresh_interval
		FROM user_preferences
		WHERE user_id = $1
	`, defaultUserID).Scan(&p.DisplayName, &p.Timezone, &p.RefreshInterval)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.DefaultPreference(), nil
	}
	if err != nil {
		return domain.Preference{}, fmt.Errorf("postgres: failed to load preference: %w", err)
	}
	return p, nil
}

// SettingValue looks up a single system setting
func (r *PostgresRepository) SettingValue(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := r.pool.QueryRow(ctx, `
		SELECT setting_value FROM system_settings WHERE setting_key = $1 AND enabled
	`, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("postgres: failed to load setting %s: %w", key, err)
	}
	return v, true, nil
}

// SetSetting upserts a system setting
func (r *PostgresRepository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO system_settings (setting_key, setting_value)
		VALUES ($1, $2)
		ON CONFLICT (setting_key) DO UPDATE SET setting_value = EXCLUDED.setting_value
	`, key, value)
	if err != nil {
		return fmt.Errorf("postgres: failed to save setting %s: %w", key, err)
	}
	return nil
}

// GetDomainConfig builds per-domain settings from system_settings
func (r *PostgresRepository) GetDomainConfig(ctx context.Context, d domain.DataDomain) (domain.DomainSettings, error) {
	return r.settings.GetDomainConfig(ctx, d)
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

func timeParam(t *domain.TimeOfDay) interface{} {
	if t == nil {
		return nil
	}
	return t.String()
}

func weekdayNames(days []time.Weekday) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.String())
	}
	return out
}

func actionNames(actions []domain.ActionType) []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, string(a))
	}
	return out
}

func decodeRoutine(rt *domain.Routine, start, end *string, days []string, category string, actions []string) error {
	if start != nil {
		t, err := domain.ParseTimeOfDay(*start)
		if err != nil {
			return err
		}
		rt.StartTime = &t
	}
	if end != nil {
		t, err := domain.ParseTimeOfDay(*end)
		if err != nil {
			return err
		}
		rt.EndTime = &t
	}

	c, err := domain.ParseDayCategory(category)
	if err != nil {
		return err
	}
	rt.DayCategory = c

	for _, d := range days {
		wd, err := domain.ParseWeekday(d)
		if err != nil {
			return err
		}
		rt.ActiveDays = append(rt.ActiveDays, wd)
	}
	for _, a := range actions {
		at, err := domain.ParseActionType(a)
		if err != nil {
			return err
		}
		rt.Actions = append(rt.Actions, at)
	}
	return nil
}
