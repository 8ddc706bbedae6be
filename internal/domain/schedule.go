package domain

import "time"

// Schedule is a resolved delivery estimate. Numeric is a YYYYMMDD date code
// and is the only field that may be compared; larger means later. Text is the
// locale-rendered label derived from Numeric and carries no information of
// its own.
type Schedule struct {
	Numeric int64  `json:"numeric"`
	Text    string `json:"text"`
}

// After reports whether s is strictly later than other.
func (s Schedule) After(other Schedule) bool {
	return s.Numeric > other.Numeric
}

// ScheduleOverride is an optional explicit schedule. The zero value means
// "no override": the item ships on the baseline schedule. Explicit
// distinguishes a real override from absence so that call sites never have
// to guess what a nil means.
type ScheduleOverride struct {
	Schedule Schedule
	Explicit bool
}

// Explicit wraps a schedule as an explicit override.
func Explicit(s Schedule) ScheduleOverride {
	return ScheduleOverride{Schedule: s, Explicit: true}
}

// NoOverride returns the absent override.
func NoOverride() ScheduleOverride {
	return ScheduleOverride{}
}

// ExplicitNumeric builds an override from a bare date code. The label is
// rendered later, once a locale is known.
func ExplicitNumeric(numeric int64) ScheduleOverride {
	return ScheduleOverride{Schedule: Schedule{Numeric: numeric}, Explicit: true}
}

// EarliestSchedule returns the override with the minimum Numeric among the
// explicit entries, or the absent override if none are explicit. The first
// minimal entry wins under duplicates.
func EarliestSchedule(overrides ...ScheduleOverride) ScheduleOverride {
	best := NoOverride()
	for _, o := range overrides {
		if !o.Explicit {
			continue
		}
		if !best.Explicit || o.Schedule.Numeric < best.Schedule.Numeric {
			best = o
		}
	}
	return best
}

// LatestSchedule returns the override with the maximum Numeric among the
// explicit entries, or the absent override if none are explicit. The first
// maximal entry wins under duplicates.
func LatestSchedule(overrides ...ScheduleOverride) ScheduleOverride {
	best := NoOverride()
	for _, o := range overrides {
		if !o.Explicit {
			continue
		}
		if !best.Explicit || o.Schedule.Numeric > best.Schedule.Numeric {
			best = o
		}
	}
	return best
}

// NumericDate converts a calendar day to its YYYYMMDD date code.
func NumericDate(t time.Time) int64 {
	return int64(t.Year())*10000 + int64(t.Month())*100 + int64(t.Day())
}

// DateOf converts a YYYYMMDD date code back to a calendar day in loc.
func DateOf(numeric int64, loc *time.Location) time.Time {
	y := int(numeric / 10000)
	m := time.Month(numeric / 100 % 100)
	d := int(numeric % 100)
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
