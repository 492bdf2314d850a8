package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeLeaveCreated       = "leave.created"
	EventTypeLeaveStatusChanged = "leave.status_changed"
)

type LeaveCreatedEvent struct {
	BaseEvent
	LeaveID    int64  `json:"leave_id"`
	ManagerID  int64  `json:"manager_id"`
	EmployeeID int64  `json:"employee_id"`
	Status     string `json:"status"`
}

func NewLeaveCreatedEvent(leaveID, managerID, employeeID int64, status string) *LeaveCreatedEvent {
	return &LeaveCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"leave_id":    leaveID,
				"manager_id":  managerID,
				"employee_id": employeeID,
				"status":      status,
			},
		},
		LeaveID:    leaveID,
		ManagerID:  managerID,
		EmployeeID: employeeID,
		Status:     status,
	}
}

type LeaveStatusChangedEvent struct {
	BaseEvent
	LeaveID   int64  `json:"leave_id"`
	ManagerID int64  `json:"manager_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

func NewLeaveStatusChangedEvent(leaveID, managerID int64, oldStatus, newStatus string) *LeaveStatusChangedEvent {
	return &LeaveStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"leave_id":   leaveID,
				"manager_id": managerID,
				"old_status": oldStatus,
				"new_status": newStatus,
			},
		},
		LeaveID:   leaveID,
		ManagerID: managerID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
}
