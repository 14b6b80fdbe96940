package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/attendance"
	"github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AttendanceService records employee check-ins and check-outs
type AttendanceService struct {
	repo     attendance.AttendanceRepository
	userRepo identity.UserRepository
	clock    shared.Clock
	logger   *zap.Logger
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	repo attendance.AttendanceRepository,
	userRepo identity.UserRepository,
	clock shared.Clock,
	logger *zap.Logger,
) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		repo:     repo,
		userRepo: userRepo,
		clock:    clock,
		logger:   logger.Named("attendance"),
	}
}

// List returns every attendance record
func (s *AttendanceService) List(ctx context.Context) ([]AttendanceResponse, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToAttendanceResponses(records), nil
}

// GetByID returns a single record
func (s *AttendanceService) GetByID(ctx context.Context, id uuid.UUID) (*AttendanceResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAttendanceResponse(a)
	return &resp, nil
}

// CheckIn opens the record for the employee's day. A second check-in on the
// same day fails with ErrAlreadyExists.
func (s *AttendanceService) CheckIn(ctx context.Context, req CheckInRequest) (*AttendanceResponse, error) {
	at := s.timeOrNow(req.CheckInTime)

	employee, err := s.userRepo.FindByID(ctx, req.EmployeeID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrInvalidInput.WithMessage("Employee does not exist")
	}
	if err != nil {
		return nil, err
	}
	if !employee.IsActive {
		return nil, shared.ErrInvalidState.WithMessage("Employee account is inactive")
	}

	_, err = s.repo.FindByEmployeeAndDate(ctx, req.EmployeeID, attendance.Day(at))
	if err == nil {
		return nil, shared.ErrAlreadyExists.WithMessage("Employee has already checked in today")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	a, err := attendance.CheckIn(req.EmployeeID, at)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("Employee checked in",
		zap.String("employee_id", req.EmployeeID.String()),
		zap.Time("at", at),
	)
	resp := ToAttendanceResponse(a)
	return &resp, nil
}

// CheckOut closes an open record
func (s *AttendanceService) CheckOut(ctx context.Context, id uuid.UUID, req CheckOutRequest) (*AttendanceResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.CheckOut(s.timeOrNow(req.CheckOutTime)); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("Employee checked out",
		zap.String("employee_id", a.EmployeeID.String()),
		zap.Float64("hours", *a.HoursWorked()),
	)
	resp := ToAttendanceResponse(a)
	return &resp, nil
}

// Today returns the employee's record for the current day
func (s *AttendanceService) Today(ctx context.Context, employeeID uuid.UUID) (*AttendanceResponse, error) {
	a, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, attendance.Day(s.clock.Now()))
	if err != nil {
		return nil, err
	}
	resp := ToAttendanceResponse(a)
	return &resp, nil
}

// Delete removes a record
func (s *AttendanceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *AttendanceService) timeOrNow(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return s.clock.Now()
	}
	return t.UTC()
}
