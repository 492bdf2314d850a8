package manager

import (
	"github.com/frahmantamala/leave-management/internal"
)

// Employee is a roster entry. IDs are globally unique even though every
// employee is owned by exactly one manager.
type Employee struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Manager is a login account that owns a roster of employees and approves
// their leave. Managers are seeded at startup and immutable during a run.
type Manager struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Employees    []Employee `json:"employees"`
}

var ErrNotFound = internal.ErrManagerNotFound

// FindEmployee scans the roster for the given employee ID.
func (m *Manager) FindEmployee(employeeID int64) (Employee, bool) {
	for _, emp := range m.Employees {
		if emp.ID == employeeID {
			return emp, true
		}
	}
	return Employee{}, false
}

// OwnsEmployee reports whether the employee belongs to this manager's roster.
func (m *Manager) OwnsEmployee(employeeID int64) bool {
	_, ok := m.FindEmployee(employeeID)
	return ok
}

// DefaultEmployee returns the first roster entry, the default assignee for a
// fresh leave request.
func (m *Manager) DefaultEmployee() (Employee, bool) {
	if len(m.Employees) == 0 {
		return Employee{}, false
	}
	return m.Employees[0], true
}
