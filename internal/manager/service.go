package manager

import (
	"log/slog"
)

// Service handles manager lookups and roster queries.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetByID resolves a manager account. Unknown IDs are an explicit error, not
// a silent no-op, so callers must handle the miss.
func (s *Service) GetByID(id int64) (*Manager, error) {
	m, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Warn("manager lookup failed", "manager_id", id)
		return nil, err
	}
	return m, nil
}

func (s *Service) GetByUsername(username string) (*Manager, error) {
	return s.repo.GetByUsername(username)
}

// OwnsEmployee reports whether the given employee belongs to the given
// manager's roster. Used to enforce the ownership invariant at write time.
func (s *Service) OwnsEmployee(managerID, employeeID int64) bool {
	m, err := s.repo.GetByID(managerID)
	if err != nil {
		return false
	}
	return m.OwnsEmployee(employeeID)
}
