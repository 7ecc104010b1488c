package schedule

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// fieldSynonyms enumerates the two historical key spellings for every logical
// field the normalizer reads. The snake_case spelling wins when both appear.
var fieldSynonyms = map[string]string{
	"version":           "version",
	"pattern":           "pattern",
	"start_date":        "startDate",
	"end_date":          "endDate",
	"selected_days":     "selectedDays",
	"day_of_month":      "dayOfMonth",
	"time_mode":         "timeMode",
	"start_time":        "startTime",
	"end_time":          "endTime",
	"per_day_times":     "perDayTimes",
	"exception_dates":   "exceptionDates",
	"holiday_overrides": "holidayOverrides",
	"stop_restart":      "stopRestart",
	"metadata":          "metadata",
}

// Normalize canonicalises an arbitrary, possibly partially-shaped schedule
// document into a RecurrenceSpec. It never fails: malformed fields degrade
// to the defaults declared in spec.go, entry by entry. Extra fields are
// dropped, except the verbatim generatedSchedule passthrough.
func Normalize(raw map[string]interface{}) RecurrenceSpec {
	spec := RecurrenceSpec{
		Version:          DefaultVersion,
		Pattern:          DefaultPattern,
		TimeMode:         TimeModeSingle,
		SelectedDays:     []string{},
		Exceptions:       []ExceptionDate{},
		HolidayOverrides: map[string]bool{},
		StopRestarts:     []StopRestartInterval{},
	}
	if raw == nil {
		return spec
	}

	if v, ok := asString(pick(raw, "version")); ok && v != "" {
		spec.Version = v
	}
	if p, ok := asString(pick(raw, "pattern")); ok {
		switch Pattern(p) {
		case PatternWeekly, PatternBiweekly, PatternMonthly, PatternCustom:
			spec.Pattern = Pattern(p)
		}
	}
	if d, ok := asString(pick(raw, "start_date")); ok && IsValidDate(d) {
		spec.StartDate = d
	}
	if d, ok := asString(pick(raw, "end_date")); ok && IsValidDate(d) {
		spec.EndDate = d
	}
	if n, ok := asInt(pick(raw, "day_of_month")); ok && n >= 1 && n <= 31 {
		day := n
		spec.DayOfMonth = &day
	}

	spec.SelectedDays = normalizeSelectedDays(pick(raw, "selected_days"))

	perDay := normalizePerDayTimes(pick(raw, "per_day_times"))
	if len(perDay) > 0 {
		// Per-day data wins over a stale mode flag elsewhere in the input.
		spec.TimeMode = TimeModePerDay
		spec.PerDayTimes = perDay
	} else if mode, ok := asString(pick(raw, "time_mode")); ok && mode == TimeModePerDay {
		spec.TimeMode = TimeModePerDay
	}
	// Single times are kept in either mode: monthly expansion falls back to
	// them even when a per-day mapping is present.
	if t, ok := asString(pick(raw, "start_time")); ok && IsValidTime(t) {
		spec.StartTime = t
	}
	if t, ok := asString(pick(raw, "end_time")); ok && IsValidTime(t) {
		spec.EndTime = t
	}

	spec.Exceptions = normalizeExceptions(pick(raw, "exception_dates"))
	spec.HolidayOverrides = normalizeHolidayOverrides(pick(raw, "holiday_overrides"))
	spec.StopRestarts = normalizeStopRestarts(pick(raw, "stop_restart"))
	spec.Metadata = normalizeMetadata(pick(raw, "metadata"))

	if gen, ok := raw["generatedSchedule"].([]interface{}); ok {
		spec.GeneratedSchedule = gen
	}

	return spec
}

// ToRaw re-serialises the spec into the loosely-typed document shape the
// normalizer accepts. Normalize(spec.ToRaw()) reproduces spec exactly.
func (s RecurrenceSpec) ToRaw() map[string]interface{} {
	data, err := json.Marshal(s)
	if err != nil {
		return map[string]interface{}{}
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return map[string]interface{}{}
	}
	return raw
}

func pick(raw map[string]interface{}, field string) interface{} {
	if v, ok := raw[field]; ok && v != nil {
		return v
	}
	if alias, ok := fieldSynonyms[field]; ok && alias != field {
		if v, ok := raw[alias]; ok && v != nil {
			return v
		}
	}
	return nil
}

func normalizeSelectedDays(value interface{}) []string {
	items, ok := value.([]interface{})
	if !ok {
		return []string{}
	}
	days := make([]string, 0, len(items))
	for _, item := range items {
		if name, ok := asString(item); ok {
			if _, valid := weekdayIndex[name]; valid {
				days = append(days, name)
			}
		}
	}
	return sortedWeekdays(days)
}

func normalizePerDayTimes(value interface{}) map[string]DayTime {
	mapping, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[string]DayTime)
	for day, entry := range mapping {
		if _, valid := weekdayIndex[day]; !valid {
			continue
		}
		times, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		start, _ := asString(pickTime(times, "start_time", "startTime"))
		end, _ := asString(pickTime(times, "end_time", "endTime"))
		if IsValidTime(start) && IsValidTime(end) {
			out[day] = DayTime{Start: start, End: end}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func pickTime(m map[string]interface{}, key, alias string) interface{} {
	if v, ok := m[key]; ok && v != nil {
		return v
	}
	return m[alias]
}

func normalizeExceptions(value interface{}) []ExceptionDate {
	items, ok := value.([]interface{})
	if !ok {
		return []ExceptionDate{}
	}
	out := make([]ExceptionDate, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		date, _ := asString(entry["date"])
		if !IsValidDate(date) {
			continue
		}
		ex := ExceptionDate{Date: date, Reason: DefaultExceptionReason}
		if reason, ok := asString(entry["reason"]); ok && reason != "" {
			ex.Reason = reason
		}
		if status, ok := asString(entry["status"]); ok {
			ex.Status = status
		}
		if notes, ok := asString(entry["notes"]); ok {
			ex.Notes = notes
		}
		out = append(out, ex)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func normalizeHolidayOverrides(value interface{}) map[string]bool {
	mapping, ok := value.(map[string]interface{})
	if !ok {
		return map[string]bool{}
	}
	out := make(map[string]bool, len(mapping))
	for date, v := range mapping {
		if IsValidDate(date) {
			out[date] = truthy(v)
		}
	}
	return out
}

func normalizeStopRestarts(value interface{}) []StopRestartInterval {
	items, ok := value.([]interface{})
	if !ok {
		return []StopRestartInterval{}
	}
	out := make([]StopRestartInterval, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		stop, _ := asString(pickTime(entry, "stop_date", "stopDate"))
		restart, _ := asString(pickTime(entry, "restart_date", "restartDate"))
		// Both sides are required; half-specified entries are dropped whole.
		if !IsValidDate(stop) || !IsValidDate(restart) {
			continue
		}
		out = append(out, StopRestartInterval{StopDate: stop, RestartDate: restart})
	}
	return out
}

func normalizeMetadata(value interface{}) Metadata {
	mapping, ok := value.(map[string]interface{})
	if !ok {
		return Metadata{}
	}
	meta := Metadata{}
	if v, ok := asString(pickTime(mapping, "last_updated", "lastUpdated")); ok {
		meta.LastUpdated = v
	}
	if v, ok := asString(pickTime(mapping, "validated_at", "validatedAt")); ok {
		meta.ValidatedAt = v
	}
	return meta
}

func asString(value interface{}) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

func asInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
		return 0, false
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// truthy coerces loosely-typed boolean markers. Only native true and the
// string markers "1" and "true" count; everything else is false.
func truthy(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "1" || v == "true"
	default:
		return false
	}
}
