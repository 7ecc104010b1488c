package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// ClassSchedule is the stored schedule document for one class. The
// recurrence specification lives in ScheduleData as a JSON document; the
// coarse start/end columns are denormalised for listing and for the
// degraded fallback rendering when the document is absent.
type ClassSchedule struct {
	ID           string         `db:"id" json:"id"`
	ClassID      string         `db:"class_id" json:"class_id"`
	Name         string         `db:"name" json:"name"`
	StartDate    *time.Time     `db:"start_date" json:"start_date,omitempty"`
	EndDate      *time.Time     `db:"end_date" json:"end_date,omitempty"`
	ScheduleData types.JSONText `db:"schedule_data" json:"schedule_data,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// ClassScheduleFilter describes query params for listing stored schedules.
type ClassScheduleFilter struct {
	Search   string
	Page     int
	PageSize int
}
