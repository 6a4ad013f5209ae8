package store

import (
	"strings"
	"time"

	"ticketdesk/internal/platform/logger"

	"github.com/rs/zerolog"
)

// queryLog writes one line per statement; a nil queryLog writes nothing
type queryLog struct {
	log  logger.Logger
	slow time.Duration
}

// newQueryLog logs whatever the process level is, LOG_SQL asked for it
func newQueryLog(root logger.Logger, slow time.Duration) *queryLog {
	return &queryLog{
		log:  root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger(),
		slow: slow,
	}
}

// record logs sql with its timing; argument values stay out of the log
func (q *queryLog) record(sql string, nargs int, start time.Time, err error) {
	if q == nil {
		return
	}
	took := time.Since(start)
	slow := q.slow > 0 && took >= q.slow
	evt := q.log.Info()
	if slow || err != nil {
		evt = q.log.Warn()
	}
	evt.Dur("took", took).
		Bool("slow", slow).
		Str("sql", strings.Join(strings.Fields(sql), " ")).
		Int("args", nargs).
		Err(err).
		Msg("pg query")
}
