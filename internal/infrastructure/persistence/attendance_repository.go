package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/attendance"
	"github.com/retail/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAttendanceRepository implements attendance.AttendanceRepository using GORM
type GormAttendanceRepository struct {
	db *gorm.DB
}

// NewGormAttendanceRepository creates a new GormAttendanceRepository
func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

func (r *GormAttendanceRepository) FindAll(ctx context.Context) ([]attendance.Attendance, error) {
	return r.find(conn(ctx, r.db))
}

func (r *GormAttendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*attendance.Attendance, error) {
	var m models.AttendanceModel
	if err := conn(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Attendance record")
	}
	return m.ToDomain(), nil
}

func (r *GormAttendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*attendance.Attendance, error) {
	var m models.AttendanceModel
	if err := conn(ctx, r.db).
		Where("employee_id = ? AND date = ?", employeeID, attendance.Day(date)).
		First(&m).Error; err != nil {
		return nil, translateError(err, "Attendance record")
	}
	return m.ToDomain(), nil
}

func (r *GormAttendanceRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]attendance.Attendance, error) {
	return r.find(conn(ctx, r.db).Where("date BETWEEN ? AND ?", start, end))
}

func (r *GormAttendanceRepository) Save(ctx context.Context, a *attendance.Attendance) error {
	var m models.AttendanceModel
	m.FromDomain(a)
	return translateError(conn(ctx, r.db).Save(&m).Error, "Attendance record")
}

func (r *GormAttendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.AttendanceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "Attendance record")
	}
	return nil
}

func (r *GormAttendanceRepository) find(q *gorm.DB) ([]attendance.Attendance, error) {
	var rows []models.AttendanceModel
	if err := q.Order("date ASC, check_in_time ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]attendance.Attendance, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}
