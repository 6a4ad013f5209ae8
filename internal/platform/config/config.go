// Package config reads settings from the environment, optionally layered over
// a config file named by CONFIG_FILE; env always wins
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"ticketdesk/internal/platform/logger"
)

// FileEnv names the env var pointing at an optional config file (yaml, toml, json, env)
const FileEnv = "CONFIG_FILE"

// Conf is a prefixed view over configuration, e.g. Prefix("SERVICE_PGSQL_")
// the zero Conf reads the process env directly
type Conf struct {
	prefix string
	v      *viper.Viper
}

// New returns the root Conf; an unreadable CONFIG_FILE is logged and skipped
func New() Conf {
	path := strings.TrimSpace(os.Getenv(FileEnv))
	if path == "" {
		return Conf{v: envOnly()}
	}
	c, err := Load(path)
	if err != nil {
		logger.Get().Warn().Err(err).Str("path", path).Msg("config file unreadable; using env only")
		return Conf{v: envOnly()}
	}
	return c
}

// Load layers env over the file at path; file keys use the env names, any case
func Load(path string) (Conf, error) {
	v := envOnly()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Conf{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Conf{v: v}, nil
}

func envOnly() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

// Prefix returns a child view; prefixes nest
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p, v: c.v} }

func (c Conf) key(k string) string { return c.prefix + k }

// lookup is the trimmed value, "" when unset; yaml lists come back as CSV
func (c Conf) lookup(key string) string {
	k := c.key(key)
	if c.v == nil {
		return strings.TrimSpace(os.Getenv(k))
	}
	switch val := c.v.Get(k).(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, 0, len(val))
		for _, p := range val {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, ",")
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// may parses key or falls back to def; a bad value is logged, never fatal
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).Msg("invalid value; using default")
		return def
	}
	return v
}

// MustString panics when key is unset, e.g. SERVICE_PGSQL_DBURL
func (c Conf) MustString(key string) string {
	v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return v
}

func (c Conf) MayString(key, def string) string {
	return may(c, key, def, func(s string) (string, error) { return s, nil })
}

func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration takes Go durations: 250ms, 2s, 1m
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayCSV splits on commas and drops blanks; def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayPort returns a listen addr like ":4000" from "4000" or ":4000"
// a port outside 1..65535 panics since the server could never bind it
func (c Conf) MayPort(key, def string) string {
	s := strings.TrimPrefix(c.MayString(key, def), ":")
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid TCP port; expected 1..65535")
	}
	return ":" + s
}
