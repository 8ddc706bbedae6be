package domain

import "time"

// Calendar owns the baseline delivery policy: the earliest date an order
// placed right now can arrive, with no per-SKU delay. All schedule
// resolution goes through a Calendar so tests can pin the clock.
type Calendar struct {
	// Now supplies the current wall time. Swapped out in tests.
	Now func() time.Time

	loc      *time.Location
	leadDays int
}

// NewCalendar creates a Calendar that offers delivery leadDays after the
// order date, evaluated in loc.
func NewCalendar(leadDays int, loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{
		Now:      time.Now,
		loc:      loc,
		leadDays: leadDays,
	}
}

// Current returns the baseline schedule: today's next available delivery
// slot, rendered for tag. Every SKU without an explicit override ships on
// this schedule.
func (c *Calendar) Current(tag Locale) Schedule {
	slot := c.Now().In(c.loc).AddDate(0, 0, c.leadDays)
	numeric := NumericDate(slot)
	return Schedule{Numeric: numeric, Text: RenderScheduleText(numeric, tag, c.loc)}
}

// Materialize resolves an override into a concrete schedule for tag. An
// explicit override keeps its Numeric and only has its label re-rendered;
// an absent override resolves to the current baseline.
func (c *Calendar) Materialize(o ScheduleOverride, tag Locale) Schedule {
	if !o.Explicit {
		return c.Current(tag)
	}
	return Schedule{
		Numeric: o.Schedule.Numeric,
		Text:    RenderScheduleText(o.Schedule.Numeric, tag, c.loc),
	}
}

// Location returns the calendar's time zone.
func (c *Calendar) Location() *time.Location {
	return c.loc
}
