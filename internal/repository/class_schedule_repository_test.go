package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amanah-edu/kelaskal-api/internal/models"
)

func newClassScheduleRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestClassScheduleRepositoryFindByClassID(t *testing.T) {
	db, mock, cleanup := newClassScheduleRepoMock(t)
	defer cleanup()

	repo := NewClassScheduleRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "class_id", "name", "start_date", "end_date", "schedule_data", "created_at", "updated_at"}).
		AddRow("sched-1", "class-7a", "Matematika 7A", nil, nil, []byte(`{"pattern":"weekly"}`), now, now)
	mock.ExpectQuery("SELECT id, class_id").
		WithArgs("class-7a").
		WillReturnRows(rows)

	schedule, err := repo.FindByClassID(context.Background(), "class-7a")
	require.NoError(t, err)
	assert.Equal(t, "sched-1", schedule.ID)
	assert.JSONEq(t, `{"pattern":"weekly"}`, string(schedule.ScheduleData))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassScheduleRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newClassScheduleRepoMock(t)
	defer cleanup()

	repo := NewClassScheduleRepository(db)
	mock.ExpectExec("INSERT INTO class_schedules").
		WillReturnResult(sqlmock.NewResult(1, 1))

	schedule := &models.ClassSchedule{
		ClassID:      "class-7a",
		Name:         "Matematika 7A",
		ScheduleData: []byte(`{"pattern":"weekly"}`),
	}
	require.NoError(t, repo.Upsert(context.Background(), schedule))
	assert.NotEmpty(t, schedule.ID, "generated id assigned")
	assert.False(t, schedule.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassScheduleRepositoryList(t *testing.T) {
	db, mock, cleanup := newClassScheduleRepoMock(t)
	defer cleanup()

	repo := NewClassScheduleRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "class_id", "name", "start_date", "end_date", "schedule_data", "created_at", "updated_at"}).
		AddRow("sched-1", "class-7a", "Matematika 7A", nil, nil, []byte(`{}`), now, now)
	mock.ExpectQuery("SELECT id, class_id").
		WithArgs("%mate%").
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("%mate%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	schedules, total, err := repo.List(context.Background(), models.ClassScheduleFilter{Search: "mate"})
	require.NoError(t, err)
	assert.Len(t, schedules, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassScheduleRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newClassScheduleRepoMock(t)
	defer cleanup()

	repo := NewClassScheduleRepository(db)
	mock.ExpectExec("DELETE FROM class_schedules").
		WithArgs("class-7a").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "class-7a"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
