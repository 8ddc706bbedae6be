package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func jst() *time.Location {
	return time.FixedZone("JST", 9*60*60)
}

func fixedCalendar(t *testing.T) *Calendar {
	t.Helper()
	cal := NewCalendar(3, jst())
	cal.Now = func() time.Time {
		return time.Date(2026, 6, 1, 10, 0, 0, 0, jst())
	}
	return cal
}

func TestNumericDateRoundTrip(t *testing.T) {
	day := time.Date(2026, 12, 31, 15, 4, 5, 0, jst())
	numeric := NumericDate(day)
	assert.Equal(t, int64(20261231), numeric)

	back := DateOf(numeric, jst())
	assert.Equal(t, 2026, back.Year())
	assert.Equal(t, time.December, back.Month())
	assert.Equal(t, 31, back.Day())
}

func TestScheduleAfter(t *testing.T) {
	a := Schedule{Numeric: 20260604}
	b := Schedule{Numeric: 20260611}
	assert.True(t, b.After(a))
	assert.False(t, a.After(b))
	assert.False(t, a.After(a))
}

func TestLatestSchedule(t *testing.T) {
	tests := []struct {
		name string
		in   []ScheduleOverride
		want ScheduleOverride
	}{
		{
			name: "all absent yields absent",
			in:   []ScheduleOverride{NoOverride(), NoOverride()},
			want: NoOverride(),
		},
		{
			name: "absent entries are skipped",
			in:   []ScheduleOverride{NoOverride(), ExplicitNumeric(20260611), NoOverride()},
			want: ExplicitNumeric(20260611),
		},
		{
			name: "maximum wins",
			in:   []ScheduleOverride{ExplicitNumeric(20260604), ExplicitNumeric(20260622), ExplicitNumeric(20260611)},
			want: ExplicitNumeric(20260622),
		},
		{
			name: "empty input",
			in:   nil,
			want: NoOverride(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LatestSchedule(tt.in...))
		})
	}
}

func TestLatestScheduleFirstMaximalWins(t *testing.T) {
	first := Explicit(Schedule{Numeric: 20260611, Text: "first"})
	second := Explicit(Schedule{Numeric: 20260611, Text: "second"})
	got := LatestSchedule(first, second)
	assert.Equal(t, "first", got.Schedule.Text)
}

func TestEarliestSchedule(t *testing.T) {
	got := EarliestSchedule(ExplicitNumeric(20260622), NoOverride(), ExplicitNumeric(20260604))
	assert.Equal(t, ExplicitNumeric(20260604), got)

	assert.Equal(t, NoOverride(), EarliestSchedule(NoOverride()))
}

func TestCalendarCurrent(t *testing.T) {
	cal := fixedCalendar(t)

	got := cal.Current(language.Japanese)
	assert.Equal(t, int64(20260604), got.Numeric)
	assert.Equal(t, "2026年6月4日ごろお届け予定", got.Text)

	en := cal.Current(language.English)
	assert.Equal(t, int64(20260604), en.Numeric)
	assert.Equal(t, "Estimated delivery around Jun 4, 2026", en.Text)
}

func TestCalendarCurrentCrossesMonthBoundary(t *testing.T) {
	cal := NewCalendar(3, jst())
	cal.Now = func() time.Time {
		return time.Date(2026, 6, 29, 23, 0, 0, 0, jst())
	}
	got := cal.Current(language.Japanese)
	assert.Equal(t, int64(20260702), got.Numeric)
}

func TestMaterializeKeepsExplicitNumeric(t *testing.T) {
	cal := fixedCalendar(t)

	got := cal.Materialize(ExplicitNumeric(20260611), language.Japanese)
	require.Equal(t, int64(20260611), got.Numeric)
	assert.Equal(t, "2026年6月11日ごろお届け予定", got.Text)

	// Re-rendering in another locale must not move the date.
	en := cal.Materialize(ExplicitNumeric(20260611), language.English)
	assert.Equal(t, got.Numeric, en.Numeric)
	assert.NotEqual(t, got.Text, en.Text)
}

func TestMaterializeAbsentFallsBackToBaseline(t *testing.T) {
	cal := fixedCalendar(t)
	got := cal.Materialize(NoOverride(), language.Japanese)
	assert.Equal(t, cal.Current(language.Japanese), got)
}
