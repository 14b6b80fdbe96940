package report

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceReport summarizes hours worked per employee within a period
type AttendanceReport struct {
	TotalEmployees          int                  `json:"totalEmployees"`
	AverageHoursPerEmployee float64              `json:"averageHoursPerEmployee"`
	TotalHoursAllEmployees  float64              `json:"totalHoursAllEmployees"`
	EmployeeReports         []EmployeeAttendance `json:"employeeReports"`
	ReportPeriod            ReportPeriod         `json:"reportPeriod"`
}

// EmployeeAttendance is one employee's section of an attendance report
type EmployeeAttendance struct {
	EmployeeID         uuid.UUID          `json:"employeeId"`
	TotalDaysWorked    int                `json:"totalDaysWorked"`
	TotalHoursWorked   float64            `json:"totalHoursWorked"`
	AverageHoursPerDay float64            `json:"averageHoursPerDay"`
	AttendanceRecords  []AttendanceRecord `json:"attendanceRecords"`
}

// AttendanceRecord is a single day. HoursWorked is nil until check-out.
type AttendanceRecord struct {
	Date         time.Time  `json:"date"`
	CheckInTime  time.Time  `json:"checkInTime"`
	CheckOutTime *time.Time `json:"checkOutTime"`
	HoursWorked  *float64   `json:"hoursWorked"`
}
