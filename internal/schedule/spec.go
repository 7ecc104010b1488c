package schedule

// Pattern selects the recurrence expansion algorithm.
type Pattern string

// Supported recurrence patterns.
const (
	PatternWeekly   Pattern = "weekly"
	PatternBiweekly Pattern = "biweekly"
	PatternMonthly  Pattern = "monthly"
	PatternCustom   Pattern = "custom"
)

// Time-of-day modes for a recurrence spec.
const (
	TimeModeSingle = "single"
	TimeModePerDay = "per-day"
)

// Centralised defaults applied by the normalizer. Tests assert against these
// rather than literals scattered through validation branches.
const (
	DefaultVersion         = "2.0"
	DefaultPattern         = PatternWeekly
	DefaultExceptionReason = "Jadwal diliburkan"

	FallbackStartTime = "08:00"
	FallbackEndTime   = "09:00"
	FallbackMaxEvents = 50
)

// weekdayNames is the Monday-first weekday ordering used for canonical
// selected-day sorting and biweekly week-boundary detection.
var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var weekdayIndex = func() map[string]int {
	m := make(map[string]int, len(weekdayNames))
	for i, name := range weekdayNames {
		m[name] = i
	}
	return m
}()

// DayTime is a start/end time-of-day pair in 24-hour HH:MM form.
type DayTime struct {
	Start string `json:"start_time"`
	End   string `json:"end_time"`
}

// ExceptionDate marks a date on which no session occurs even when the
// pattern would produce one. Status and Notes survive from special-event
// form records and are informational.
type ExceptionDate struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
	Status string `json:"status,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// StopRestartInterval is a pause in the class bounded by a stop date and a
// restart date. Both sides are required; half-specified entries are dropped
// during intake.
type StopRestartInterval struct {
	StopDate    string `json:"stop_date"`
	RestartDate string `json:"restart_date"`
}

// Metadata carries informational timestamps. No invariants.
type Metadata struct {
	LastUpdated string `json:"last_updated,omitempty"`
	ValidatedAt string `json:"validated_at,omitempty"`
}

// RecurrenceSpec is the canonical, fully normalized recurrence document.
// Dates are canonical YYYY-MM-DD strings; times are 24-hour HH:MM. The time
// specification is a tagged union: TimeMode selects between the single
// StartTime/EndTime pair and the PerDayTimes mapping.
//
// Values are never mutated after construction; every normalization pass
// builds a fresh spec.
type RecurrenceSpec struct {
	Version      string   `json:"version"`
	Pattern      Pattern  `json:"pattern"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	SelectedDays []string `json:"selected_days"`
	DayOfMonth   *int     `json:"day_of_month"`

	TimeMode    string             `json:"time_mode"`
	StartTime   string             `json:"start_time,omitempty"`
	EndTime     string             `json:"end_time,omitempty"`
	PerDayTimes map[string]DayTime `json:"per_day_times,omitempty"`

	Exceptions       []ExceptionDate       `json:"exception_dates"`
	HolidayOverrides map[string]bool       `json:"holiday_overrides"`
	StopRestarts     []StopRestartInterval `json:"stop_restart"`

	Metadata Metadata `json:"metadata"`

	// GeneratedSchedule is an opaque passthrough kept for consumers that
	// still read the previously materialised occurrence list.
	GeneratedSchedule []interface{} `json:"generatedSchedule,omitempty"`
}

// ResolveTime returns the session time for the given weekday name, honouring
// the spec's time mode. The boolean reports whether a usable time exists.
func (s RecurrenceSpec) ResolveTime(weekday string) (DayTime, bool) {
	if s.TimeMode == TimeModePerDay {
		dt, ok := s.PerDayTimes[weekday]
		if !ok || !IsValidTime(dt.Start) || !IsValidTime(dt.End) {
			return DayTime{}, false
		}
		return dt, true
	}
	return s.SingleTime()
}

// SingleTime returns the single-mode time pair when both sides are valid.
// Monthly and custom expansion use this regardless of mode.
func (s RecurrenceSpec) SingleTime() (DayTime, bool) {
	if !IsValidTime(s.StartTime) || !IsValidTime(s.EndTime) {
		return DayTime{}, false
	}
	return DayTime{Start: s.StartTime, End: s.EndTime}, true
}

// excluded reports whether a date must produce no session: either an
// exception entry names it or a holiday override force-excludes it.
// A true override is a force-include and never suppresses.
func (s RecurrenceSpec) excluded(date string) bool {
	if include, ok := s.HolidayOverrides[date]; ok && !include {
		return true
	}
	for _, ex := range s.Exceptions {
		if ex.Date == date {
			return true
		}
	}
	return false
}

func sortedWeekdays(days []string) []string {
	out := make([]string, 0, len(days))
	seen := make(map[string]struct{}, len(days))
	for _, name := range weekdayNames {
		for _, d := range days {
			if d != name {
				continue
			}
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}
