package schedule

// LegacyVersion marks documents written before the v2 canonical shape.
const LegacyVersion = "1.0"

// ToLegacy flattens a canonical spec into the old camelCase document shape.
// The conversion is best-effort and lossy: status/notes on exceptions and
// the stop/restart list have no legacy home and are dropped.
func ToLegacy(spec RecurrenceSpec) map[string]interface{} {
	out := map[string]interface{}{
		"version":   LegacyVersion,
		"pattern":   string(spec.Pattern),
		"startDate": spec.StartDate,
		"endDate":   spec.EndDate,
	}

	if len(spec.SelectedDays) > 0 {
		days := make([]interface{}, len(spec.SelectedDays))
		for i, d := range spec.SelectedDays {
			days[i] = d
		}
		out["selectedDays"] = days
	}
	if spec.DayOfMonth != nil {
		out["dayOfMonth"] = *spec.DayOfMonth
	}

	if spec.TimeMode == TimeModePerDay && len(spec.PerDayTimes) > 0 {
		perDay := make(map[string]interface{}, len(spec.PerDayTimes))
		for day, dt := range spec.PerDayTimes {
			perDay[day] = map[string]interface{}{
				"startTime": dt.Start,
				"endTime":   dt.End,
			}
		}
		out["perDayTimes"] = perDay
	} else {
		out["startTime"] = spec.StartTime
		out["endTime"] = spec.EndTime
	}

	if len(spec.Exceptions) > 0 {
		exceptions := make([]interface{}, 0, len(spec.Exceptions))
		for _, ex := range spec.Exceptions {
			exceptions = append(exceptions, map[string]interface{}{
				"date":   ex.Date,
				"reason": ex.Reason,
			})
		}
		out["exceptionDates"] = exceptions
	}

	return out
}

// FromLegacy lifts an old flat document into the canonical representation.
// The normalizer already tolerates the legacy camelCase keys, so this is a
// normalization pass that pins the version; absent fields take the v2
// defaults (a missing dayOfMonth becomes nil, and so on).
func FromLegacy(flat map[string]interface{}) RecurrenceSpec {
	spec := Normalize(flat)
	spec.Version = DefaultVersion
	return spec
}
