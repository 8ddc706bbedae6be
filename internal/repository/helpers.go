package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/ayase-dev/otodoke/internal/domain"
)

// scheduleFromNull converts a nullable schedule_numeric column into the
// explicit override sum. NULL means "no override".
func scheduleFromNull(n sql.NullInt64) domain.ScheduleOverride {
	if !n.Valid {
		return domain.NoOverride()
	}
	return domain.ExplicitNumeric(n.Int64)
}

// scheduleToValue converts an override back to a nullable column value.
func scheduleToValue(o domain.ScheduleOverride) interface{} {
	if !o.Explicit {
		return nil
	}
	return o.Schedule.Numeric
}

// nullableStr converts an empty string to SQL NULL.
func nullableStr(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// placeholders returns n comma-joined "?" marks for SQLite IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
