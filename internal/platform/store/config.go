package store

import (
	"time"

	"ticketdesk/internal/platform/config"
)

// Config describes the postgres connection
type Config struct {
	// AppName is reported to postgres as application_name
	AppName string

	URL      string
	MaxConns int32

	// LogSQL logs every statement; those taking SlowQuery or longer log as warnings
	LogSQL    bool
	SlowQuery time.Duration

	// ConnectRetries and PingTimeout bound the wait for postgres at boot
	ConnectRetries int
	PingTimeout    time.Duration
}

func (c Config) attempts() int {
	if c.ConnectRetries > 0 {
		return c.ConnectRetries
	}
	return 20
}

func (c Config) pingTimeout() time.Duration {
	if c.PingTimeout > 0 {
		return c.PingTimeout
	}
	return 3 * time.Second
}

// ConfigFrom reads a SERVICE_PGSQL_ scoped config; DBURL is required
func ConfigFrom(pgCfg config.Conf, appName string) Config {
	return Config{
		AppName:        appName,
		URL:            pgCfg.MustString("DBURL"),
		MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 4)),
		LogSQL:         pgCfg.MayBool("LOG_SQL", false),
		SlowQuery:      time.Duration(pgCfg.MayInt("SLOW_MS", 500)) * time.Millisecond,
		ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 0),
		PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 0),
	}
}
