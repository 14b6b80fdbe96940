package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/attendance"
)

// AttendanceModel is the persistence model for attendance.Attendance
type AttendanceModel struct {
	BaseModel
	EmployeeID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_employee_date,priority:1"`
	CheckInTime  time.Time  `gorm:"not null"`
	CheckOutTime *time.Time
	Date         time.Time `gorm:"type:date;not null;uniqueIndex:idx_attendance_employee_date,priority:2"`
}

func (AttendanceModel) TableName() string {
	return "attendance"
}

func (m *AttendanceModel) ToDomain() *attendance.Attendance {
	return &attendance.Attendance{
		BaseEntity:   m.BaseModel.toDomain(),
		EmployeeID:   m.EmployeeID,
		CheckInTime:  m.CheckInTime,
		CheckOutTime: m.CheckOutTime,
		Date:         attendance.Day(m.Date),
	}
}

func (m *AttendanceModel) FromDomain(a *attendance.Attendance) {
	m.BaseModel.fromDomain(a.BaseEntity)
	m.EmployeeID = a.EmployeeID
	m.CheckInTime = a.CheckInTime
	m.CheckOutTime = a.CheckOutTime
	m.Date = a.Date
}
