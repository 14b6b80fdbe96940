package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AttendanceRepository defines the interface for attendance persistence
type AttendanceRepository interface {
	FindAll(ctx context.Context) ([]Attendance, error)

	// FindByID returns shared.ErrNotFound when the record does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Attendance, error)

	// FindByEmployeeAndDate returns shared.ErrNotFound when there is no record for that day
	FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*Attendance, error)

	// FindByDateRange returns records with start <= date <= end
	FindByDateRange(ctx context.Context, start, end time.Time) ([]Attendance, error)

	Save(ctx context.Context, a *Attendance) error
	Delete(ctx context.Context, id uuid.UUID) error
}
