package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/attendance"
)

// CheckInRequest opens today's attendance for an employee. CheckInTime
// defaults to the current time.
type CheckInRequest struct {
	EmployeeID  uuid.UUID  `json:"employeeId" binding:"required"`
	CheckInTime *time.Time `json:"checkInTime"`
}

// CheckOutRequest closes an attendance record. CheckOutTime defaults to the current time.
type CheckOutRequest struct {
	CheckOutTime *time.Time `json:"checkOutTime"`
}

// AttendanceResponse represents an attendance record in API responses
type AttendanceResponse struct {
	ID           uuid.UUID  `json:"id"`
	EmployeeID   uuid.UUID  `json:"employeeId"`
	CheckInTime  time.Time  `json:"checkInTime"`
	CheckOutTime *time.Time `json:"checkOutTime"`
	Date         string     `json:"date"`
	HoursWorked  *float64   `json:"hoursWorked"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ToAttendanceResponse converts a domain Attendance to AttendanceResponse
func ToAttendanceResponse(a *attendance.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		CheckInTime:  a.CheckInTime,
		CheckOutTime: a.CheckOutTime,
		Date:         a.Date.Format(time.DateOnly),
		HoursWorked:  a.HoursWorked(),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// ToAttendanceResponses converts a slice of domain records
func ToAttendanceResponses(records []attendance.Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, len(records))
	for i := range records {
		out[i] = ToAttendanceResponse(&records[i])
	}
	return out
}
