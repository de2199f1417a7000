// Package repository holds storage-agnostic pieces shared by the concrete stores.
package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/smartscreen/backend/internal/domain"
)

// ValueSource looks up raw setting values by key
type ValueSource interface {
	SettingValue(ctx context.Context, key string) (value string, ok bool, err error)
}

// KeyValueSettings turns "<domain>.api.*" style key/value rows into DomainSettings.
// Missing or malformed values fall back to defaults.
type KeyValueSettings struct {
	src    ValueSource
	logger *logrus.Entry
}

// NewKeyValueSettings creates a settings adapter
func NewKeyValueSettings(src ValueSource) *KeyValueSettings {
	return &KeyValueSettings{src: src, logger: logrus.WithField("component", "settings")}
}

// GetDomainConfig reads the per-domain and global keys on every call
func (s *KeyValueSettings) GetDomainConfig(ctx context.Context, d domain.DataDomain) (domain.DomainSettings, error) {
	cfg := domain.DefaultDomainSettings(d)
	r := reader{ctx: ctx, src: s.src, logger: s.logger}

	cfg.URL = r.str(d.URLKey(), cfg.URL)
	cfg.Enabled = r.boolean(d.EnabledKey(), cfg.Enabled)
	cfg.FallbackModeEnabled = r.boolean(domain.SettingFallbackMode, cfg.FallbackModeEnabled)
	cfg.APITimeoutSeconds = r.integer(domain.SettingAPITimeout, cfg.APITimeoutSeconds)
	cfg.MaxRetries = r.integer(domain.SettingMaxRetries, cfg.MaxRetries)

	if r.err != nil {
		return domain.DomainSettings{}, r.err
	}
	return cfg, nil
}

type reader struct {
	ctx    context.Context
	src    ValueSource
	logger *logrus.Entry
	err    error
}

func (r *reader) str(key, def string) string {
	if r.err != nil {
		return def
	}
	v, ok, err := r.src.SettingValue(r.ctx, key)
	if err != nil {
		r.err = err
		return def
	}
	if !ok {
		return def
	}
	return strings.TrimSpace(v)
}

func (r *reader) boolean(key string, def bool) bool {
	raw := r.str(key, strconv.FormatBool(def))
	b, err := strconv.ParseBool(raw)
	if err != nil {
		r.logger.WithFields(logrus.Fields{"key": key, "value": raw}).Warn("Invalid boolean setting")
		return def
	}
	return b
}

func (r *reader) integer(key string, def int) int {
	raw := r.str(key, strconv.Itoa(def))
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.logger.WithFields(logrus.Fields{"key": key, "value": raw}).Warn("Invalid integer setting")
		return def
	}
	return n
}
