package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmptyInput(t *testing.T) {
	spec := Normalize(map[string]interface{}{})

	assert.Equal(t, DefaultVersion, spec.Version)
	assert.Equal(t, PatternWeekly, spec.Pattern)
	assert.Empty(t, spec.StartDate)
	assert.Empty(t, spec.EndDate)
	assert.Empty(t, spec.SelectedDays)
	assert.Nil(t, spec.DayOfMonth)
	assert.Equal(t, TimeModeSingle, spec.TimeMode)
	assert.Empty(t, spec.Exceptions)
	assert.Empty(t, spec.HolidayOverrides)
}

func TestNormalizeNilInput(t *testing.T) {
	spec := Normalize(nil)
	assert.Equal(t, PatternWeekly, spec.Pattern)
}

func TestNormalizeAcceptsBothKeyConventions(t *testing.T) {
	snake := Normalize(map[string]interface{}{
		"pattern":       "biweekly",
		"start_date":    "2024-01-01",
		"end_date":      "2024-03-01",
		"selected_days": []interface{}{"Wednesday", "Monday"},
	})
	camel := Normalize(map[string]interface{}{
		"pattern":      "biweekly",
		"startDate":    "2024-01-01",
		"endDate":      "2024-03-01",
		"selectedDays": []interface{}{"Wednesday", "Monday"},
	})

	assert.Equal(t, snake, camel)
	assert.Equal(t, []string{"Monday", "Wednesday"}, snake.SelectedDays, "canonical weekday order")
}

func TestNormalizeFieldDefaults(t *testing.T) {
	spec := Normalize(map[string]interface{}{
		"pattern":      "quarterly",
		"start_date":   "01/02/2024",
		"end_date":     "2024-02-30",
		"day_of_month": float64(42),
	})

	assert.Equal(t, DefaultPattern, spec.Pattern, "unknown pattern falls back")
	assert.Empty(t, spec.StartDate, "invalid date left empty")
	assert.Empty(t, spec.EndDate, "impossible date left empty")
	assert.Nil(t, spec.DayOfMonth, "out-of-range day dropped")
}

func TestNormalizeDayOfMonthCoercion(t *testing.T) {
	fromFloat := Normalize(map[string]interface{}{"day_of_month": float64(15)})
	require.NotNil(t, fromFloat.DayOfMonth)
	assert.Equal(t, 15, *fromFloat.DayOfMonth)

	fromString := Normalize(map[string]interface{}{"dayOfMonth": "31"})
	require.NotNil(t, fromString.DayOfMonth)
	assert.Equal(t, 31, *fromString.DayOfMonth)

	assert.Nil(t, Normalize(map[string]interface{}{"day_of_month": "abc"}).DayOfMonth)
	assert.Nil(t, Normalize(map[string]interface{}{"day_of_month": 15.5}).DayOfMonth)
}

func TestNormalizeDropsUnknownWeekdays(t *testing.T) {
	spec := Normalize(map[string]interface{}{
		"selected_days": []interface{}{"Monday", "Funday", "friday", "Sunday", 7},
	})
	assert.Equal(t, []string{"Monday", "Sunday"}, spec.SelectedDays)
}

func TestNormalizePerDayTimesForceMode(t *testing.T) {
	spec := Normalize(map[string]interface{}{
		"time_mode":  "single",
		"start_time": "09:00",
		"end_time":   "10:00",
		"per_day_times": map[string]interface{}{
			"Monday":    map[string]interface{}{"start_time": "08:00", "end_time": "09:30"},
			"Wednesday": map[string]interface{}{"startTime": "13:00", "endTime": "15:00"},
			"Smonday":   map[string]interface{}{"start_time": "08:00", "end_time": "09:00"},
			"Friday":    map[string]interface{}{"start_time": "25:00", "end_time": "26:00"},
		},
	})

	assert.Equal(t, TimeModePerDay, spec.TimeMode, "per-day data beats a stale mode flag")
	require.Len(t, spec.PerDayTimes, 2)
	assert.Equal(t, DayTime{Start: "08:00", End: "09:30"}, spec.PerDayTimes["Monday"])
	assert.Equal(t, DayTime{Start: "13:00", End: "15:00"}, spec.PerDayTimes["Wednesday"])
	assert.Equal(t, "09:00", spec.StartTime, "single times kept for monthly fallback")
}

func TestNormalizeExceptionDates(t *testing.T) {
	spec := Normalize(map[string]interface{}{
		"exception_dates": []interface{}{
			map[string]interface{}{"date": "2024-03-10", "reason": "Ujian sekolah"},
			map[string]interface{}{"date": "2024-02-01"},
			map[string]interface{}{"date": "not-a-date", "reason": "dropped"},
			"scalar entry",
		},
	})

	require.Len(t, spec.Exceptions, 2)
	assert.Equal(t, "2024-02-01", spec.Exceptions[0].Date, "sorted by date")
	assert.Equal(t, DefaultExceptionReason, spec.Exceptions[0].Reason)
	assert.Equal(t, "Ujian sekolah", spec.Exceptions[1].Reason)
}

func TestNormalizeHolidayOverrides(t *testing.T) {
	spec := Normalize(map[string]interface{}{
		"holiday_overrides": map[string]interface{}{
			"2024-01-01": "1",
			"2024-05-01": "true",
			"2024-06-01": true,
			"2024-08-17": "0",
			"2024-12-25": "yes",
			"garbage":    true,
		},
	})

	assert.Equal(t, map[string]bool{
		"2024-01-01": true,
		"2024-05-01": true,
		"2024-06-01": true,
		"2024-08-17": false,
		"2024-12-25": false,
	}, spec.HolidayOverrides)
}

func TestNormalizeStopRestartsDropHalfSpecified(t *testing.T) {
	spec := Normalize(map[string]interface{}{
		"stop_restart": []interface{}{
			map[string]interface{}{"stop_date": "2024-01-10", "restart_date": "2024-01-15"},
			map[string]interface{}{"stop_date": "2024-02-10"},
			map[string]interface{}{"restartDate": "2024-03-15"},
			map[string]interface{}{"stopDate": "2024-04-01", "restartDate": "2024-04-05"},
		},
	})

	require.Len(t, spec.StopRestarts, 2)
	assert.Equal(t, StopRestartInterval{StopDate: "2024-01-10", RestartDate: "2024-01-15"}, spec.StopRestarts[0])
	assert.Equal(t, StopRestartInterval{StopDate: "2024-04-01", RestartDate: "2024-04-05"}, spec.StopRestarts[1])
}

func TestNormalizeGeneratedSchedulePassthrough(t *testing.T) {
	gen := []interface{}{map[string]interface{}{"date": "2024-01-01"}}
	spec := Normalize(map[string]interface{}{
		"generatedSchedule": gen,
		"unrecognized":      "dropped silently",
	})
	assert.Equal(t, gen, spec.GeneratedSchedule)

	notArray := Normalize(map[string]interface{}{"generatedSchedule": "oops"})
	assert.Nil(t, notArray.GeneratedSchedule)
}

func TestNormalizeIdempotence(t *testing.T) {
	day := 15
	spec := RecurrenceSpec{
		Version:      "2.0",
		Pattern:      PatternMonthly,
		StartDate:    "2024-01-01",
		EndDate:      "2024-06-30",
		SelectedDays: []string{},
		DayOfMonth:   &day,
		TimeMode:     TimeModeSingle,
		StartTime:    "09:00",
		EndTime:      "11:00",
		Exceptions: []ExceptionDate{
			{Date: "2024-02-15", Reason: "Libur nasional"},
		},
		HolidayOverrides: map[string]bool{"2024-03-15": false},
		StopRestarts:     []StopRestartInterval{{StopDate: "2024-04-01", RestartDate: "2024-04-10"}},
		Metadata:         Metadata{LastUpdated: "2024-01-01T10:00:00Z"},
	}

	again := Normalize(spec.ToRaw())
	assert.Equal(t, spec, again)
}

func TestNormalizeIdempotencePerDay(t *testing.T) {
	spec := RecurrenceSpec{
		Version:      "2.0",
		Pattern:      PatternWeekly,
		StartDate:    "2024-01-01",
		EndDate:      "2024-03-31",
		SelectedDays: []string{"Monday", "Thursday"},
		TimeMode:     TimeModePerDay,
		PerDayTimes: map[string]DayTime{
			"Monday":   {Start: "08:00", End: "09:30"},
			"Thursday": {Start: "14:00", End: "16:00"},
		},
		Exceptions:       []ExceptionDate{},
		HolidayOverrides: map[string]bool{},
		StopRestarts:     []StopRestartInterval{},
	}

	assert.Equal(t, spec, Normalize(spec.ToRaw()))
}

func TestZipStopRestarts(t *testing.T) {
	intervals := ZipStopRestarts(
		[]string{"2024-01-10", "2024-02-10", "", "2024-04-01"},
		[]string{"2024-01-15", "", "2024-03-15"},
	)

	require.Len(t, intervals, 1, "half-specified indices dropped whole")
	assert.Equal(t, StopRestartInterval{StopDate: "2024-01-10", RestartDate: "2024-01-15"}, intervals[0])
}

func TestZipSpecialEvents(t *testing.T) {
	events := ZipSpecialEvents(
		[]string{"holiday", "", "exam"},
		[]string{"Libur semester", "desc", ""},
		[]string{"2024-06-20", "2024-06-21", "2024-06-22"},
		[]string{"active", "active"},
		[]string{"catatan"},
	)

	require.Len(t, events, 2)
	assert.Equal(t, SpecialEvent{Type: "holiday", Description: "Libur semester", Date: "2024-06-20", Status: "active", Notes: "catatan"}, events[0])
	assert.Equal(t, SpecialEvent{Type: "exam", Date: "2024-06-22"}, events[1])
}

func TestExceptionsFromSpecialEvents(t *testing.T) {
	exceptions := ExceptionsFromSpecialEvents([]SpecialEvent{
		{Type: "holiday", Description: "Libur", Date: "2024-06-20", Notes: "n"},
		{Type: "exam", Date: "2024-06-22"},
		{Type: "bad", Date: "junk"},
	})

	require.Len(t, exceptions, 2)
	assert.Equal(t, "Libur", exceptions[0].Reason)
	assert.Equal(t, "exam", exceptions[1].Reason, "type backfills a missing description")
}
