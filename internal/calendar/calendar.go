// Package calendar turns stored leave requests into calendar-ready display
// events and drives the create/edit flow behind the calendar UI.
package calendar

import (
	"github.com/frahmantamala/leave-management/internal/leave"
	"github.com/frahmantamala/leave-management/internal/manager"
)

// UnknownEmployeeName is rendered when a request references an employee
// outside the manager's roster. The event is kept rather than dropped so
// every owned request stays visible.
const UnknownEmployeeName = "Unknown"

// DisplayEvent is one calendar entry: a leave request joined with the
// employee's display name plus the presentation attributes the client shows.
type DisplayEvent struct {
	ID         int64        `json:"id"`
	EmployeeID int64        `json:"employee_id"`
	Name       string       `json:"name"`
	Start      leave.Date   `json:"start"`
	End        leave.Date   `json:"end"`
	Status     leave.Status `json:"status"`
	Label      string       `json:"label"`
	Color      string       `json:"color"`
}

// French UI labels, display-only.
var statusLabels = map[leave.Status]string{
	leave.StatusPending:   "En attente",
	leave.StatusApproved:  "Approuvé",
	leave.StatusRejected:  "Refusé",
	leave.StatusPostponed: "Reporté",
}

var statusColors = map[leave.Status]string{
	leave.StatusPending:   "#ffc107",
	leave.StatusApproved:  "#28a745",
	leave.StatusRejected:  "#dc3545",
	leave.StatusPostponed: "#b04c33",
}

func StatusLabel(s leave.Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

func StatusColor(s leave.Status) string {
	if color, ok := statusColors[s]; ok {
		return color
	}
	return statusColors[leave.StatusPending]
}

// VisibleEvents derives the calendar entries for one manager: requests owned
// by the manager, each joined with the employee's name. Pure function, output
// order follows the input (insertion) order. Roster misses resolve to
// UnknownEmployeeName instead of failing the whole render.
func VisibleEvents(m *manager.Manager, requests []*leave.LeaveRequest) []DisplayEvent {
	events := make([]DisplayEvent, 0, len(requests))
	for _, req := range requests {
		if req.ManagerID != m.ID {
			continue
		}

		name := UnknownEmployeeName
		if emp, ok := m.FindEmployee(req.EmployeeID); ok {
			name = emp.Name
		}

		events = append(events, DisplayEvent{
			ID:         req.ID,
			EmployeeID: req.EmployeeID,
			Name:       name,
			Start:      req.Start,
			End:        req.End,
			Status:     req.Status,
			Label:      StatusLabel(req.Status),
			Color:      StatusColor(req.Status),
		})
	}
	return events
}
