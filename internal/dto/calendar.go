package dto

// CalendarRangeRequest narrows the expansion window for a calendar read.
// Both bounds are optional canonical YYYY-MM-DD dates; when present they
// override the stored document's own range.
type CalendarRangeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// SaveScheduleRequest carries a raw schedule document plus the fragmented
// parallel form arrays the legacy intake still submits. ScheduleData is
// deliberately untyped: the normalizer owns its interpretation.
type SaveScheduleRequest struct {
	Name         string                 `json:"name"`
	ScheduleData map[string]interface{} `json:"schedule_data" validate:"required"`

	StopDates    []string `json:"stop_dates"`
	RestartDates []string `json:"restart_dates"`

	EventTypes        []string `json:"event_types"`
	EventDescriptions []string `json:"event_descriptions"`
	EventDates        []string `json:"event_dates"`
	EventStatuses     []string `json:"event_statuses"`
	EventNotes        []string `json:"event_notes"`
}

// PreviewRequest expands and synthesizes a raw document without persisting.
type PreviewRequest struct {
	ClassID      string                 `json:"class_id"`
	ScheduleData map[string]interface{} `json:"schedule_data" validate:"required"`
}
