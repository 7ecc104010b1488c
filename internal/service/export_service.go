package service

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/amanah-edu/kelaskal-api/internal/schedule"
	appErrors "github.com/amanah-edu/kelaskal-api/pkg/errors"
	"github.com/amanah-edu/kelaskal-api/pkg/export"
)

// Export formats supported by the calendar export endpoint.
const (
	FormatICS = "ics"
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

const eventTimeLayout = "2006-01-02T15:04"

// ExportService renders synthesized calendars into interchange formats for
// the rendering collaborator.
type ExportService struct {
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs the exporter.
func NewExportService(logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// Render produces the requested format. The content type for the format is
// returned alongside the payload.
func (s *ExportService) Render(format, classID string, events []schedule.CalendarEvent) ([]byte, string, error) {
	switch format {
	case FormatICS:
		payload, err := s.renderICS(classID, events)
		return payload, "text/calendar", err
	case FormatCSV:
		payload, err := s.csv.Render(eventDataset(events))
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	case FormatPDF:
		payload, err := s.pdf.Render(eventDataset(events), fmt.Sprintf("Kalender %s", classID))
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func (s *ExportService) renderICS(classID string, events []schedule.CalendarEvent) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//kelaskal//calendar//ID")

	for _, ev := range events {
		entry := cal.AddEvent(ev.ID)
		entry.SetSummary(ev.Title)
		if ev.Notes != "" {
			entry.SetDescription(ev.Notes)
		}
		if ev.AllDay {
			day, err := time.Parse("2006-01-02", ev.Start)
			if err != nil {
				s.logger.Warn("skipping event with unparseable date", zap.String("event_id", ev.ID))
				continue
			}
			entry.SetAllDayStartAt(day)
			entry.SetAllDayEndAt(day.AddDate(0, 0, 1))
			continue
		}
		start, err := time.Parse(eventTimeLayout, ev.Start)
		if err != nil {
			s.logger.Warn("skipping event with unparseable start", zap.String("event_id", ev.ID))
			continue
		}
		entry.SetStartAt(start)
		if end, err := time.Parse(eventTimeLayout, ev.End); err == nil {
			entry.SetEndAt(end)
		}
	}

	return []byte(cal.Serialize()), nil
}

func eventDataset(events []schedule.CalendarEvent) export.Dataset {
	rows := make([]map[string]string, 0, len(events))
	for _, ev := range events {
		allDay := "no"
		if ev.AllDay {
			allDay = "yes"
		}
		rows = append(rows, map[string]string{
			"id":       ev.ID,
			"category": string(ev.Category),
			"title":    ev.Title,
			"start":    ev.Start,
			"end":      ev.End,
			"all_day":  allDay,
			"notes":    ev.Notes,
		})
	}
	return export.Dataset{
		Headers: []string{"id", "category", "title", "start", "end", "all_day", "notes"},
		Rows:    rows,
	}
}
