package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/amanah-edu/kelaskal-api/internal/models"
)

// ClassScheduleRepository persists class schedule documents.
type ClassScheduleRepository struct {
	db *sqlx.DB
}

// NewClassScheduleRepository constructs a class schedule repository.
func NewClassScheduleRepository(db *sqlx.DB) *ClassScheduleRepository {
	return &ClassScheduleRepository{db: db}
}

const classScheduleColumns = "id, class_id, name, start_date, end_date, schedule_data, created_at, updated_at"

// List returns stored schedules matching the filter.
func (r *ClassScheduleRepository) List(ctx context.Context, filter models.ClassScheduleFilter) ([]models.ClassSchedule, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM class_schedules WHERE %s ORDER BY name ASC LIMIT %d OFFSET %d",
		classScheduleColumns, whereClause, size, offset)
	var schedules []models.ClassSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list class schedules: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM class_schedules WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count class schedules: %w", err)
	}
	return schedules, total, nil
}

// FindByClassID fetches the schedule document for a class.
func (r *ClassScheduleRepository) FindByClassID(ctx context.Context, classID string) (*models.ClassSchedule, error) {
	query := fmt.Sprintf("SELECT %s FROM class_schedules WHERE class_id = $1", classScheduleColumns)
	var schedule models.ClassSchedule
	if err := r.db.GetContext(ctx, &schedule, query, classID); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Upsert writes the document for a class, replacing any previous one.
func (r *ClassScheduleRepository) Upsert(ctx context.Context, schedule *models.ClassSchedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = now
	}
	schedule.UpdatedAt = now
	query := `INSERT INTO class_schedules (id, class_id, name, start_date, end_date, schedule_data, created_at, updated_at)
VALUES (:id, :class_id, :name, :start_date, :end_date, :schedule_data, :created_at, :updated_at)
ON CONFLICT (class_id) DO UPDATE SET name = EXCLUDED.name, start_date = EXCLUDED.start_date,
end_date = EXCLUDED.end_date, schedule_data = EXCLUDED.schedule_data, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, schedule); err != nil {
		return fmt.Errorf("upsert class schedule: %w", err)
	}
	return nil
}

// Delete removes the schedule document for a class.
func (r *ClassScheduleRepository) Delete(ctx context.Context, classID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM class_schedules WHERE class_id = $1", classID); err != nil {
		return fmt.Errorf("delete class schedule: %w", err)
	}
	return nil
}
