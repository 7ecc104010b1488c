package schedule

import "time"

// Occurrence is one concrete session produced by expansion: a date plus a
// resolved start and end time. Immutable once created.
type Occurrence struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Expand deterministically produces the ordered occurrence sequence for a
// canonical spec. It is a pure function: same spec, same sequence. A spec
// whose range is inverted, whose day selection is empty, or whose times
// cannot be resolved yields an empty sequence, never an error.
func Expand(spec RecurrenceSpec) []Occurrence {
	start, ok := parseDate(spec.StartDate)
	if !ok {
		return nil
	}
	end, ok := parseDate(spec.EndDate)
	if !ok || end.Before(start) {
		return nil
	}

	switch spec.Pattern {
	case PatternWeekly:
		return expandWeekly(spec, start, end, false)
	case PatternBiweekly:
		return expandWeekly(spec, start, end, true)
	case PatternMonthly:
		return expandMonthly(spec, start, end)
	case PatternCustom:
		return expandCustom(spec)
	default:
		return nil
	}
}

// expandWeekly walks every day of the inclusive range and emits an occurrence
// for each selected weekday whose time resolves. In biweekly mode a week
// counter starts at 0 and increments after each Sunday (Monday-first weeks),
// and only even weeks emit: parity is anchored to the start date, not to
// calendar-absolute week numbers.
func expandWeekly(spec RecurrenceSpec, start, end time.Time, biweekly bool) []Occurrence {
	if len(spec.SelectedDays) == 0 {
		return nil
	}
	selected := make(map[string]struct{}, len(spec.SelectedDays))
	for _, day := range spec.SelectedDays {
		selected[day] = struct{}{}
	}

	var out []Occurrence
	week := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		weekday := d.Weekday().String()
		if _, ok := selected[weekday]; ok && (!biweekly || week%2 == 0) {
			date := formatDate(d)
			if !spec.excluded(date) {
				if dt, ok := spec.ResolveTime(weekday); ok {
					out = append(out, Occurrence{Date: date, StartTime: dt.Start, EndTime: dt.End})
				}
			}
		}
		if d.Weekday() == time.Sunday {
			week++
		}
	}
	return out
}

// expandMonthly emits one occurrence per month on the target day, starting
// from the first on-or-after start date. The target day is clamped to each
// month's length, and the clamp persists: a day-of-month of 31 snaps to 28
// in February and stays 28 for every later month.
func expandMonthly(spec RecurrenceSpec, start, end time.Time) []Occurrence {
	if spec.DayOfMonth == nil {
		return nil
	}
	dt, ok := spec.SingleTime()
	if !ok {
		return nil
	}

	day := *spec.DayOfMonth
	year, month := start.Year(), start.Month()
	day = clampDay(day, year, month)
	current := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if current.Before(start) {
		year, month = nextMonth(year, month)
		day = clampDay(day, year, month)
		current = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}

	var out []Occurrence
	for !current.After(end) {
		date := formatDate(current)
		if !spec.excluded(date) {
			out = append(out, Occurrence{Date: date, StartTime: dt.Start, EndTime: dt.End})
		}
		year, month = nextMonth(year, month)
		day = clampDay(day, year, month)
		current = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}
	return out
}

// expandCustom emits a single occurrence on the start date when a single
// time is available, otherwise nothing.
func expandCustom(spec RecurrenceSpec) []Occurrence {
	dt, ok := spec.SingleTime()
	if !ok {
		return nil
	}
	if spec.excluded(spec.StartDate) {
		return nil
	}
	return []Occurrence{{Date: spec.StartDate, StartTime: dt.Start, EndTime: dt.End}}
}

func clampDay(day, year int, month time.Month) int {
	if max := daysInMonth(year, month); day > max {
		return max
	}
	return day
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
