package attendance

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
)

// Attendance is one employee's working day. An employee has at most one
// record per Date.
type Attendance struct {
	shared.BaseEntity
	EmployeeID   uuid.UUID
	CheckInTime  time.Time
	CheckOutTime *time.Time
	Date         time.Time
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CheckIn opens an attendance record for the day of at.
func CheckIn(employeeID uuid.UUID, at time.Time) (*Attendance, error) {
	if employeeID == uuid.Nil {
		return nil, shared.ErrInvalidInput.WithMessage("Employee ID is required")
	}
	return &Attendance{
		BaseEntity:  shared.NewBaseEntity(at),
		EmployeeID:  employeeID,
		CheckInTime: at,
		Date:        Day(at),
	}, nil
}

// IsCheckedOut reports whether the day has been closed.
func (a *Attendance) IsCheckedOut() bool {
	return a.CheckOutTime != nil
}

// CheckOut closes the record. at must not precede the check-in time.
func (a *Attendance) CheckOut(at time.Time) error {
	if a.IsCheckedOut() {
		return shared.ErrInvalidState.WithMessage("Employee has already checked out")
	}
	if at.Before(a.CheckInTime) {
		return shared.ErrInvalidInput.WithMessage("Check-out time cannot be before check-in time")
	}
	a.CheckOutTime = &at
	a.Touch(at)
	return nil
}

// HoursWorked returns the checked-in duration in hours rounded to two
// decimals, or nil while the employee is still checked in.
func (a *Attendance) HoursWorked() *float64 {
	if a.CheckOutTime == nil {
		return nil
	}
	h := math.Round(a.CheckOutTime.Sub(a.CheckInTime).Hours()*100) / 100
	return &h
}
