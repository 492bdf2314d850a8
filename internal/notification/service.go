package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/leave-management/internal/core/events"
)

// Service keeps per-manager notifications in memory, same lifetime as the
// rest of the state.
type Service struct {
	mu        sync.RWMutex
	nextID    int64
	byManager map[int64][]Notification
	logger    *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	return &Service{
		nextID:    1,
		byManager: make(map[int64][]Notification),
		logger:    logger,
	}
}

func (s *Service) Record(managerID int64, message string) Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := Notification{
		ID:        s.nextID,
		ManagerID: managerID,
		Message:   message,
		CreatedAt: time.Now(),
	}
	s.nextID++
	s.byManager[managerID] = append(s.byManager[managerID], n)

	s.logger.Info("notification recorded", "manager_id", managerID, "notification_id", n.ID)
	return n
}

// ForManager returns the manager's notifications, oldest first.
func (s *Service) ForManager(managerID int64) []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.byManager[managerID]
	out := make([]Notification, len(stored))
	copy(out, stored)
	return out
}

// HandleLeaveStatusChanged subscribes to leave.status_changed events.
func (s *Service) HandleLeaveStatusChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.LeaveStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	message := fmt.Sprintf("leave request %d moved from %s to %s", e.LeaveID, e.OldStatus, e.NewStatus)
	s.Record(e.ManagerID, message)
	return nil
}

// HandleLeaveCreated subscribes to leave.created events.
func (s *Service) HandleLeaveCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.LeaveCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	message := fmt.Sprintf("leave request %d created for employee %d", e.LeaveID, e.EmployeeID)
	s.Record(e.ManagerID, message)
	return nil
}
