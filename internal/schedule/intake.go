package schedule

import "strings"

// SpecialEvent is one record zipped out of the fragmented special-event form
// arrays (type/description/date/status/notes at matching indices).
type SpecialEvent struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

// ZipStopRestarts pairs the parallel stop-date and restart-date form arrays
// positionally. An index is retained only when both sides are non-empty;
// a half-specified pair is dropped whole, not partially kept.
func ZipStopRestarts(stopDates, restartDates []string) []StopRestartInterval {
	n := len(stopDates)
	if len(restartDates) > n {
		n = len(restartDates)
	}
	out := make([]StopRestartInterval, 0, n)
	for i := 0; i < n; i++ {
		stop := strings.TrimSpace(at(stopDates, i))
		restart := strings.TrimSpace(at(restartDates, i))
		if stop == "" || restart == "" {
			continue
		}
		out = append(out, StopRestartInterval{StopDate: stop, RestartDate: restart})
	}
	return out
}

// ZipSpecialEvents reassembles the parallel special-event arrays into
// records. Type and date are required at each index; description, status
// and notes tag along when present.
func ZipSpecialEvents(types, descriptions, dates, statuses, notes []string) []SpecialEvent {
	n := len(types)
	for _, arr := range [][]string{descriptions, dates, statuses, notes} {
		if len(arr) > n {
			n = len(arr)
		}
	}
	out := make([]SpecialEvent, 0, n)
	for i := 0; i < n; i++ {
		eventType := strings.TrimSpace(at(types, i))
		date := strings.TrimSpace(at(dates, i))
		if eventType == "" || date == "" {
			continue
		}
		out = append(out, SpecialEvent{
			Type:        eventType,
			Description: strings.TrimSpace(at(descriptions, i)),
			Date:        date,
			Status:      strings.TrimSpace(at(statuses, i)),
			Notes:       strings.TrimSpace(at(notes, i)),
		})
	}
	return out
}

// ExceptionsFromSpecialEvents lowers zipped special-event records into
// exception entries for the document. Records without a valid date are
// skipped; the description, falling back to the type, becomes the reason.
func ExceptionsFromSpecialEvents(events []SpecialEvent) []ExceptionDate {
	out := make([]ExceptionDate, 0, len(events))
	for _, ev := range events {
		if !IsValidDate(ev.Date) {
			continue
		}
		reason := ev.Description
		if reason == "" {
			reason = ev.Type
		}
		out = append(out, ExceptionDate{
			Date:   ev.Date,
			Reason: reason,
			Status: ev.Status,
			Notes:  ev.Notes,
		})
	}
	return out
}

func at(arr []string, i int) string {
	if i < len(arr) {
		return arr[i]
	}
	return ""
}
