package leave

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/core/events"
)

// Repository defines the data access methods for leave requests. All
// mutation goes through these named operations, never arbitrary field writes.
type Repository interface {
	Create(req *LeaveRequest) error
	GetByID(id int64) (*LeaveRequest, error)
	GetByManagerID(managerID int64) ([]*LeaveRequest, error)
	GetAll() ([]*LeaveRequest, error)
	Patch(id int64, dto PatchLeaveDTO) (*LeaveRequest, error)
	Count() (int, error)
}

// RosterChecker answers whether an employee belongs to a manager's roster.
// Satisfied by the manager service.
type RosterChecker interface {
	OwnsEmployee(managerID, employeeID int64) bool
}

type EventPublisher interface {
	PublishSync(ctx context.Context, event events.Event) error
}

// Service handles leave request business logic.
type Service struct {
	repo   Repository
	roster RosterChecker
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo Repository, roster RosterChecker, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		roster: roster,
		bus:    bus,
		logger: logger,
	}
}

// Create appends a new leave request for the given manager. The repository
// assigns the ID. Requests naming an employee outside the manager's roster
// are rejected at write time, which keeps the name lookup on the calendar
// side from ever missing for data created through this path.
func (s *Service) Create(ctx context.Context, managerID int64, dto CreateLeaveDTO) (*LeaveRequest, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("leave request validation failed", "error", err, "manager_id", managerID)
		return nil, err
	}

	if !s.roster.OwnsEmployee(managerID, dto.EmployeeID) {
		s.logger.Warn("leave request rejected: employee not in roster",
			"manager_id", managerID,
			"employee_id", dto.EmployeeID)
		return nil, ErrEmployeeNotInRoster
	}

	req := &LeaveRequest{
		EmployeeID: dto.EmployeeID,
		ManagerID:  managerID,
		Start:      dto.Start,
		End:        dto.End,
		Status:     dto.Status,
	}

	if err := s.repo.Create(req); err != nil {
		s.logger.Error("failed to create leave request", "error", err, "manager_id", managerID)
		return nil, err
	}

	s.logger.Info("leave request created",
		"leave_id", req.ID,
		"manager_id", managerID,
		"employee_id", req.EmployeeID,
		"status", req.Status)

	if s.bus != nil {
		event := events.NewLeaveCreatedEvent(req.ID, managerID, req.EmployeeID, string(req.Status))
		if err := s.bus.PublishSync(ctx, event); err != nil {
			s.logger.Error("failed to publish leave created event", "error", err, "leave_id", req.ID)
		}
	}

	return req, nil
}

// GetByID retrieves a leave request with ownership control.
func (s *Service) GetByID(ctx context.Context, id, managerID int64) (*LeaveRequest, error) {
	req, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.ManagerID != managerID {
		s.logger.Warn("access to foreign leave request denied",
			"leave_id", id,
			"manager_id", managerID,
			"owner_id", req.ManagerID)
		return nil, internal.ErrUnauthorizedAccess
	}

	return req, nil
}

// ListForManager returns the manager's requests in insertion order.
func (s *Service) ListForManager(ctx context.Context, managerID int64) ([]*LeaveRequest, error) {
	requests, err := s.repo.GetByManagerID(managerID)
	if err != nil {
		s.logger.Error("failed to list leave requests", "error", err, "manager_id", managerID)
		return nil, err
	}
	return requests, nil
}

// Patch applies a shallow-merge edit to an existing request. Unknown IDs are
// an explicit not-found error. Calling Patch twice with the same payload
// yields the same final state as once.
func (s *Service) Patch(ctx context.Context, id, managerID int64, dto PatchLeaveDTO) (*LeaveRequest, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("leave patch validation failed", "error", err, "leave_id", id)
		return nil, err
	}

	existing, err := s.GetByID(ctx, id, managerID)
	if err != nil {
		return nil, err
	}

	if dto.EmployeeID != nil && !s.roster.OwnsEmployee(managerID, *dto.EmployeeID) {
		s.logger.Warn("leave patch rejected: employee not in roster",
			"leave_id", id,
			"manager_id", managerID,
			"employee_id", *dto.EmployeeID)
		return nil, ErrEmployeeNotInRoster
	}

	oldStatus := existing.Status

	updated, err := s.repo.Patch(id, dto)
	if err != nil {
		s.logger.Error("failed to patch leave request", "error", err, "leave_id", id)
		return nil, err
	}

	s.logger.Info("leave request updated", "leave_id", id, "manager_id", managerID)

	if s.bus != nil && dto.Status != nil && *dto.Status != oldStatus {
		event := events.NewLeaveStatusChangedEvent(id, managerID, string(oldStatus), string(*dto.Status))
		if err := s.bus.PublishSync(ctx, event); err != nil {
			s.logger.Error("failed to publish status change event", "error", err, "leave_id", id)
		}
	}

	return updated, nil
}

// Approve sets the request status to approved.
func (s *Service) Approve(ctx context.Context, id, managerID int64) (*LeaveRequest, error) {
	return s.setStatus(ctx, id, managerID, StatusApproved)
}

// Reject sets the request status to rejected.
func (s *Service) Reject(ctx context.Context, id, managerID int64) (*LeaveRequest, error) {
	return s.setStatus(ctx, id, managerID, StatusRejected)
}

// Postpone sets the request status to postponed.
func (s *Service) Postpone(ctx context.Context, id, managerID int64) (*LeaveRequest, error) {
	return s.setStatus(ctx, id, managerID, StatusPostponed)
}

func (s *Service) setStatus(ctx context.Context, id, managerID int64, status Status) (*LeaveRequest, error) {
	return s.Patch(ctx, id, managerID, PatchLeaveDTO{Status: &status})
}
