package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amanah-edu/kelaskal-api/internal/dto"
	"github.com/amanah-edu/kelaskal-api/internal/models"
	"github.com/amanah-edu/kelaskal-api/internal/schedule"
	appErrors "github.com/amanah-edu/kelaskal-api/pkg/errors"
	"github.com/amanah-edu/kelaskal-api/pkg/response"
)

type calendarService interface {
	Events(ctx context.Context, classID string, req dto.CalendarRangeRequest) ([]schedule.CalendarEvent, error)
	SaveSchedule(ctx context.Context, classID string, req dto.SaveScheduleRequest) (*schedule.RecurrenceSpec, error)
	Preview(ctx context.Context, req dto.PreviewRequest) ([]schedule.CalendarEvent, error)
	ListSchedules(ctx context.Context, filter models.ClassScheduleFilter) ([]models.ClassSchedule, *models.Pagination, error)
	DeleteSchedule(ctx context.Context, classID string) error
}

type exportService interface {
	Render(format, classID string, events []schedule.CalendarEvent) ([]byte, string, error)
}

// CalendarHandler exposes class calendar endpoints.
type CalendarHandler struct {
	calendar      calendarService
	exporter      exportService
	exportEnabled bool
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(calendar calendarService, exporter exportService, exportEnabled bool) *CalendarHandler {
	return &CalendarHandler{calendar: calendar, exporter: exporter, exportEnabled: exportEnabled}
}

// Events godoc
// @Summary Synthesized calendar for a class
// @Tags Calendar
// @Produce json
// @Param id path string true "Class ID"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/calendar [get]
func (h *CalendarHandler) Events(c *gin.Context) {
	req := dto.CalendarRangeRequest{
		StartDate: pickQuery(c, "start_date", "startDate"),
		EndDate:   pickQuery(c, "end_date", "endDate"),
	}
	events, err := h.calendar.Events(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// SaveSchedule godoc
// @Summary Store a recurrence document for a class
// @Tags Calendar
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body dto.SaveScheduleRequest true "Schedule payload"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/schedule [post]
func (h *CalendarHandler) SaveSchedule(c *gin.Context) {
	var req dto.SaveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	spec, err := h.calendar.SaveSchedule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, spec, nil)
}

// Preview godoc
// @Summary Expand a recurrence document without storing it
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body dto.PreviewRequest true "Preview payload"
// @Success 200 {object} response.Envelope
// @Router /calendar/preview [post]
func (h *CalendarHandler) Preview(c *gin.Context) {
	var req dto.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	events, err := h.calendar.Preview(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// Export godoc
// @Summary Export a class calendar
// @Tags Calendar
// @Produce json
// @Param id path string true "Class ID"
// @Param format query string false "ics, csv or pdf" default(ics)
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {file} file
// @Router /classes/{id}/calendar/export [get]
func (h *CalendarHandler) Export(c *gin.Context) {
	if !h.exportEnabled {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "calendar export is disabled"))
		return
	}
	format := c.DefaultQuery("format", "ics")
	classID := c.Param("id")
	req := dto.CalendarRangeRequest{
		StartDate: pickQuery(c, "start_date", "startDate"),
		EndDate:   pickQuery(c, "end_date", "endDate"),
	}
	events, err := h.calendar.Events(c.Request.Context(), classID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, contentType, err := h.exporter.Render(format, classID, events)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"kalender-%s.%s\"", classID, format))
	c.Data(http.StatusOK, contentType, payload)
}

// ListSchedules godoc
// @Summary List stored class schedules
// @Tags Calendar
// @Produce json
// @Param search query string false "Filter by class name"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *CalendarHandler) ListSchedules(c *gin.Context) {
	filter := models.ClassScheduleFilter{
		Search:   c.Query("search"),
		Page:     queryInt(c, "page", "page", 1),
		PageSize: queryInt(c, "page_size", "pageSize", 20),
	}
	schedules, pagination, err := h.calendar.ListSchedules(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules, pagination)
}

// DeleteSchedule godoc
// @Summary Delete the stored schedule for a class
// @Tags Calendar
// @Produce json
// @Param id path string true "Class ID"
// @Success 204
// @Router /classes/{id}/schedule [delete]
func (h *CalendarHandler) DeleteSchedule(c *gin.Context) {
	if err := h.calendar.DeleteSchedule(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func pickQuery(c *gin.Context, preferred string, fallback string) string {
	if value := c.Query(preferred); value != "" {
		return value
	}
	return c.Query(fallback)
}

func queryInt(c *gin.Context, preferred, alt string, fallback int) int {
	value := pickQuery(c, preferred, alt)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
