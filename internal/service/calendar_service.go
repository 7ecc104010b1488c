package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/amanah-edu/kelaskal-api/internal/dto"
	"github.com/amanah-edu/kelaskal-api/internal/models"
	"github.com/amanah-edu/kelaskal-api/internal/schedule"
	appErrors "github.com/amanah-edu/kelaskal-api/pkg/errors"
)

type classScheduleRepository interface {
	List(ctx context.Context, filter models.ClassScheduleFilter) ([]models.ClassSchedule, int, error)
	FindByClassID(ctx context.Context, classID string) (*models.ClassSchedule, error)
	Upsert(ctx context.Context, schedule *models.ClassSchedule) error
	Delete(ctx context.Context, classID string) error
}

// CalendarConfig tunes the service-level guards around the expansion engine.
type CalendarConfig struct {
	MaxRangeYears     int
	FallbackMaxEvents int
}

// CalendarService runs the normalize, expand, synthesize pipeline over
// stored class schedule documents.
type CalendarService struct {
	repo      classScheduleRepository
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	cfg       CalendarConfig
}

// NewCalendarService constructs the service. The metrics service is
// optional; without it expansions are simply not observed.
func NewCalendarService(repo classScheduleRepository, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, cfg CalendarConfig) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRangeYears <= 0 {
		cfg.MaxRangeYears = 10
	}
	if cfg.FallbackMaxEvents <= 0 {
		cfg.FallbackMaxEvents = schedule.FallbackMaxEvents
	}
	return &CalendarService{repo: repo, validator: validate, logger: logger, metrics: metrics, cfg: cfg}
}

// Events loads the stored document for a class and returns the synthesized
// calendar. An optional request range narrows the returned window: the
// document always expands over its own stored range, so biweekly parity and
// the monthly clamp stay anchored to the stored start date, and the result
// is clipped afterwards. A record without a usable recurrence document
// degrades to the bounded Mon-Fri sample sequence.
func (s *CalendarService) Events(ctx context.Context, classID string, req dto.CalendarRangeRequest) ([]schedule.CalendarEvent, error) {
	record, err := s.repo.FindByClassID(ctx, classID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class schedule")
	}

	raw := decodeDocument(record.ScheduleData)
	if raw == nil {
		return s.fallbackEvents(record, req)
	}

	spec := liftDocument(raw)
	if err := s.ensureRange(spec.StartDate, spec.EndDate); err != nil {
		return nil, err
	}

	occurrences := schedule.Expand(spec)
	if s.metrics != nil {
		s.metrics.ObserveExpansion(string(spec.Pattern), len(occurrences))
	}
	events := schedule.Synthesize(schedule.SynthesisInput{
		ClassID:      classID,
		Occurrences:  occurrences,
		Exceptions:   spec.Exceptions,
		StopRestarts: spec.StopRestarts,
		PerDayTimes:  spec.TimeMode == schedule.TimeModePerDay,
	})
	events = clipEvents(events, req.StartDate, req.EndDate)
	s.logger.Debug("calendar synthesized",
		zap.String("class_id", classID),
		zap.String("pattern", string(spec.Pattern)),
		zap.Int("occurrences", len(occurrences)),
		zap.Int("events", len(events)))
	return events, nil
}

// SaveSchedule normalizes a raw schedule submission, folds in the zipped
// parallel form arrays, and persists the canonical document.
func (s *CalendarService) SaveSchedule(ctx context.Context, classID string, req dto.SaveScheduleRequest) (*schedule.RecurrenceSpec, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	if classID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class id is required")
	}

	spec := liftDocument(req.ScheduleData)

	if intervals := schedule.ZipStopRestarts(req.StopDates, req.RestartDates); len(intervals) > 0 {
		spec.StopRestarts = mergeStopRestarts(spec.StopRestarts, intervals)
	}
	specials := schedule.ZipSpecialEvents(req.EventTypes, req.EventDescriptions, req.EventDates, req.EventStatuses, req.EventNotes)
	if extra := schedule.ExceptionsFromSpecialEvents(specials); len(extra) > 0 {
		spec.Exceptions = append(spec.Exceptions, extra...)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	spec.Metadata.LastUpdated = now
	spec.Metadata.ValidatedAt = now

	data, err := json.Marshal(spec)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode schedule document")
	}

	record := &models.ClassSchedule{
		ClassID:      classID,
		Name:         req.Name,
		StartDate:    dateOrNil(spec.StartDate),
		EndDate:      dateOrNil(spec.EndDate),
		ScheduleData: data,
	}
	if existing, err := s.repo.FindByClassID(ctx, classID); err == nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		if record.Name == "" {
			record.Name = existing.Name
		}
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store class schedule")
	}
	return &spec, nil
}

// Preview runs the pipeline on a raw document without touching storage.
func (s *CalendarService) Preview(ctx context.Context, req dto.PreviewRequest) ([]schedule.CalendarEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preview payload")
	}

	spec := liftDocument(req.ScheduleData)
	if err := s.ensureRange(spec.StartDate, spec.EndDate); err != nil {
		return nil, err
	}

	classID := req.ClassID
	if classID == "" {
		classID = "preview"
	}
	occurrences := schedule.Expand(spec)
	if s.metrics != nil {
		s.metrics.ObserveExpansion(string(spec.Pattern), len(occurrences))
	}
	return schedule.Synthesize(schedule.SynthesisInput{
		ClassID:      classID,
		Occurrences:  occurrences,
		Exceptions:   spec.Exceptions,
		StopRestarts: spec.StopRestarts,
		PerDayTimes:  spec.TimeMode == schedule.TimeModePerDay,
	}), nil
}

// ListSchedules returns stored schedule records with pagination metadata.
func (s *CalendarService) ListSchedules(ctx context.Context, filter models.ClassScheduleFilter) ([]models.ClassSchedule, *models.Pagination, error) {
	schedules, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class schedules")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return schedules, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// DeleteSchedule removes the stored document for a class.
func (s *CalendarService) DeleteSchedule(ctx context.Context, classID string) error {
	if _, err := s.repo.FindByClassID(ctx, classID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "class schedule not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class schedule")
	}
	if err := s.repo.Delete(ctx, classID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class schedule")
	}
	return nil
}

// ensureRange rejects expansion windows wider than the configured cap before
// the engine iterates them. An empty bound is fine: expansion of an empty
// range is itself empty.
func (s *CalendarService) ensureRange(startDate, endDate string) error {
	if startDate == "" || endDate == "" {
		return nil
	}
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil
	}
	if end.After(start.AddDate(s.cfg.MaxRangeYears, 0, 0)) {
		return appErrors.Clone(appErrors.ErrRangeTooWide,
			fmt.Sprintf("date range exceeds %d years", s.cfg.MaxRangeYears))
	}
	return nil
}

func (s *CalendarService) fallbackEvents(record *models.ClassSchedule, req dto.CalendarRangeRequest) ([]schedule.CalendarEvent, error) {
	startDate := req.StartDate
	if startDate == "" && record.StartDate != nil {
		startDate = record.StartDate.Format("2006-01-02")
	}
	endDate := req.EndDate
	if endDate == "" && record.EndDate != nil {
		endDate = record.EndDate.Format("2006-01-02")
	}
	s.logger.Warn("schedule document missing, serving fallback calendar",
		zap.String("class_id", record.ClassID))
	return schedule.FallbackEvents(record.ClassID, startDate, endDate, s.cfg.FallbackMaxEvents), nil
}

// liftDocument normalizes a raw document, routing pre-v2 shapes through the
// legacy bridge first.
func liftDocument(raw map[string]interface{}) schedule.RecurrenceSpec {
	if version, ok := raw["version"].(string); ok && version != "" && version != schedule.DefaultVersion {
		return schedule.FromLegacy(raw)
	}
	return schedule.Normalize(raw)
}

func decodeDocument(data []byte) map[string]interface{} {
	if len(data) == 0 {
		return nil
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	return raw
}

// clipEvents keeps only events dated inside the requested window. The spec's
// own anchor dates are never touched: clipping after synthesis is what keeps
// a window read identical to the matching slice of a full read. Invalid or
// absent bounds leave that side open.
func clipEvents(events []schedule.CalendarEvent, startDate, endDate string) []schedule.CalendarEvent {
	clipStart := schedule.IsValidDate(startDate)
	clipEnd := schedule.IsValidDate(endDate)
	if !clipStart && !clipEnd {
		return events
	}
	out := make([]schedule.CalendarEvent, 0, len(events))
	for _, ev := range events {
		date := ev.Start
		if len(date) > 10 {
			date = date[:10]
		}
		if clipStart && date < startDate {
			continue
		}
		if clipEnd && date > endDate {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func mergeStopRestarts(existing, extra []schedule.StopRestartInterval) []schedule.StopRestartInterval {
	seen := make(map[string]struct{}, len(existing))
	for _, interval := range existing {
		seen[interval.StopDate+"/"+interval.RestartDate] = struct{}{}
	}
	out := append([]schedule.StopRestartInterval{}, existing...)
	for _, interval := range extra {
		if !schedule.IsValidDate(interval.StopDate) || !schedule.IsValidDate(interval.RestartDate) {
			continue
		}
		key := interval.StopDate + "/" + interval.RestartDate
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, interval)
	}
	return out
}

func dateOrNil(date string) *time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil
	}
	return &t
}
