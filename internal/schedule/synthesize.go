package schedule

import (
	"fmt"
	"time"
)

// EventCategory classifies synthesized calendar events.
type EventCategory string

// Calendar event categories.
const (
	CategoryClassSession     EventCategory = "class_session"
	CategoryException        EventCategory = "exception"
	CategoryStopMarker       EventCategory = "stop_marker"
	CategoryRestartMarker    EventCategory = "restart_marker"
	CategoryStopPeriodMarker EventCategory = "stop_period_marker"
)

// Display modes understood by the rendering collaborator.
const (
	DisplayAuto       = "auto"
	DisplayBackground = "background"
)

// CalendarEvent is the synthesized, display-ready calendar unit. IDs are
// deterministic composites of the owning class identity, category and date,
// so repeated synthesis is idempotent and diffable.
type CalendarEvent struct {
	ID       string        `json:"id"`
	Category EventCategory `json:"category"`
	Title    string        `json:"title"`
	Start    string        `json:"start"`
	End      string        `json:"end,omitempty"`
	AllDay   bool          `json:"all_day"`
	Display  string        `json:"display_mode"`
	Labels   []string      `json:"labels,omitempty"`
	Notes    string        `json:"notes,omitempty"`
}

// SynthesisInput bundles everything the synthesizer consumes. PerDayTimes
// switches session titles to the weekday-prefixed form with duration, so
// mixed per-day session lengths stay visually distinguishable.
type SynthesisInput struct {
	ClassID      string
	Occurrences  []Occurrence
	Exceptions   []ExceptionDate
	StopRestarts []StopRestartInterval
	PerDayTimes  bool
}

// Synthesize converts occurrences plus auxiliary data into the unified event
// sequence. Events are never deduplicated across categories: an exception
// date inside a stop interval yields both events, and the renderer decides
// how to stack them.
func Synthesize(in SynthesisInput) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(in.Occurrences)+len(in.Exceptions))

	for _, occ := range in.Occurrences {
		events = append(events, sessionEvent(in.ClassID, occ, in.PerDayTimes))
	}

	for _, ex := range in.Exceptions {
		events = append(events, CalendarEvent{
			ID:       fmt.Sprintf("%s-exception-%s", in.ClassID, ex.Date),
			Category: CategoryException,
			Title:    ex.Reason,
			Start:    ex.Date,
			AllDay:   true,
			Display:  DisplayBackground,
			Labels:   []string{ex.Reason},
			Notes:    ex.Notes,
		})
	}

	for _, interval := range in.StopRestarts {
		events = append(events, intervalEvents(in.ClassID, interval)...)
	}

	return events
}

func sessionEvent(classID string, occ Occurrence, perDay bool) CalendarEvent {
	timeRange := fmt.Sprintf("%s-%s", occ.StartTime, occ.EndTime)
	title := timeRange
	labels := []string{timeRange}
	if perDay {
		weekday := weekdayOf(occ.Date)
		duration := formatDuration(DurationHours(occ.StartTime, occ.EndTime))
		title = fmt.Sprintf("%s %s (%s)", weekday, timeRange, duration)
		labels = []string{weekday, timeRange, duration}
	}
	return CalendarEvent{
		ID:       fmt.Sprintf("%s-session-%s", classID, occ.Date),
		Category: CategoryClassSession,
		Title:    title,
		Start:    fmt.Sprintf("%sT%s", occ.Date, occ.StartTime),
		End:      fmt.Sprintf("%sT%s", occ.Date, occ.EndTime),
		AllDay:   false,
		Display:  DisplayAuto,
		Labels:   labels,
	}
}

// intervalEvents emits a stop marker, a restart marker, and one blank-titled
// background marker for every day strictly between them. When the restart is
// the day after the stop the interior is empty, which is fine.
func intervalEvents(classID string, interval StopRestartInterval) []CalendarEvent {
	stop, ok := parseDate(interval.StopDate)
	if !ok {
		return nil
	}
	restart, ok := parseDate(interval.RestartDate)
	if !ok {
		return nil
	}

	events := []CalendarEvent{
		{
			ID:       fmt.Sprintf("%s-stop-%s", classID, interval.StopDate),
			Category: CategoryStopMarker,
			Title:    "Kelas berhenti",
			Start:    interval.StopDate,
			AllDay:   true,
			Display:  DisplayAuto,
		},
		{
			ID:       fmt.Sprintf("%s-restart-%s", classID, interval.RestartDate),
			Category: CategoryRestartMarker,
			Title:    "Kelas dimulai kembali",
			Start:    interval.RestartDate,
			AllDay:   true,
			Display:  DisplayAuto,
		},
	}

	for d := stop.AddDate(0, 0, 1); d.Before(restart); d = d.AddDate(0, 0, 1) {
		date := formatDate(d)
		events = append(events, CalendarEvent{
			ID:       fmt.Sprintf("%s-stopped-%s", classID, date),
			Category: CategoryStopPeriodMarker,
			Title:    "",
			Start:    date,
			AllDay:   true,
			Display:  DisplayBackground,
		})
	}
	return events
}

// FallbackEvents produces a bounded Mon-Fri sample sequence for degraded
// inputs that carry only a coarse date range and no recurrence document.
// Purely presentational continuity; never the primary algorithm.
func FallbackEvents(classID, startDate, endDate string, maxEvents int) []CalendarEvent {
	start, ok := parseDate(startDate)
	if !ok {
		return nil
	}
	end, ok := parseDate(endDate)
	if !ok || end.Before(start) {
		return nil
	}
	if maxEvents <= 0 {
		maxEvents = FallbackMaxEvents
	}

	var events []CalendarEvent
	for d := start; !d.After(end) && len(events) < maxEvents; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		date := formatDate(d)
		events = append(events, CalendarEvent{
			ID:       fmt.Sprintf("%s-sample-%s", classID, date),
			Category: CategoryClassSession,
			Title:    fmt.Sprintf("%s-%s", FallbackStartTime, FallbackEndTime),
			Start:    fmt.Sprintf("%sT%s", date, FallbackStartTime),
			End:      fmt.Sprintf("%sT%s", date, FallbackEndTime),
			AllDay:   false,
			Display:  DisplayAuto,
		})
	}
	return events
}

func weekdayOf(date string) string {
	t, ok := parseDate(date)
	if !ok {
		return ""
	}
	return t.Weekday().String()
}
