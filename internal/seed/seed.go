// Package seed provides the startup dataset. The service has no durable
// storage, so every run begins from either the built-in demo roster or a
// YAML file named in the config.
package seed

import (
	"fmt"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/leave-management/internal/leave"
	"github.com/frahmantamala/leave-management/internal/manager"
)

type EmployeeSpec struct {
	ID   int64  `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

// ManagerSpec carries a plaintext demo password that is bcrypt-hashed while
// building the domain objects; only the hash is kept in memory afterwards.
type ManagerSpec struct {
	ID        int64          `mapstructure:"id"`
	Username  string         `mapstructure:"username"`
	Password  string         `mapstructure:"password"`
	Employees []EmployeeSpec `mapstructure:"employees"`
}

type LeaveSpec struct {
	ID         int64  `mapstructure:"id"`
	EmployeeID int64  `mapstructure:"employee_id"`
	ManagerID  int64  `mapstructure:"manager_id"`
	Start      string `mapstructure:"start"`
	End        string `mapstructure:"end"`
	Status     string `mapstructure:"status"`
}

type Data struct {
	Managers []ManagerSpec `mapstructure:"managers"`
	Leaves   []LeaveSpec   `mapstructure:"leaves"`
}

// Default returns the demo dataset: two managers, five employees, five leave
// requests.
func Default() Data {
	return Data{
		Managers: []ManagerSpec{
			{
				ID:       1,
				Username: "Aya",
				Password: "123456",
				Employees: []EmployeeSpec{
					{ID: 1, Name: "Omar Kamali"},
					{ID: 2, Name: "Youssef Ennaciri"},
					{ID: 4, Name: "Ziyad Gout"},
				},
			},
			{
				ID:       2,
				Username: "Fatima Zahra",
				Password: "123456",
				Employees: []EmployeeSpec{
					{ID: 3, Name: "Fatima Alaoui"},
					{ID: 5, Name: "Farah BABA"},
				},
			},
		},
		Leaves: []LeaveSpec{
			{ID: 1, EmployeeID: 1, ManagerID: 1, Start: "2025-02-25", End: "2025-02-28", Status: "pending"},
			{ID: 2, EmployeeID: 2, ManagerID: 1, Start: "2025-03-02", End: "2025-03-10", Status: "approved"},
			{ID: 3, EmployeeID: 3, ManagerID: 2, Start: "2025-03-12", End: "2025-03-20", Status: "rejected"},
			{ID: 4, EmployeeID: 4, ManagerID: 1, Start: "2025-04-05", End: "2025-04-20", Status: "pending"},
			{ID: 5, EmployeeID: 5, ManagerID: 2, Start: "2025-04-10", End: "2025-04-25", Status: "pending"},
		},
	}
}

// Load reads a seed dataset from a YAML file.
func Load(path string) (Data, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return Data{}, fmt.Errorf("error reading seed file: %w", err)
	}

	var data Data
	if err := v.Unmarshal(&data); err != nil {
		return Data{}, fmt.Errorf("error unmarshaling seed file: %w", err)
	}

	return data, nil
}

// BuildManagers hashes every password and returns the domain accounts.
func (d Data) BuildManagers(bcryptCost int) ([]*manager.Manager, error) {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	managers := make([]*manager.Manager, 0, len(d.Managers))
	for _, spec := range d.Managers {
		hash, err := bcrypt.GenerateFromPassword([]byte(spec.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for manager %q: %w", spec.Username, err)
		}

		employees := make([]manager.Employee, 0, len(spec.Employees))
		for _, emp := range spec.Employees {
			employees = append(employees, manager.Employee{ID: emp.ID, Name: emp.Name})
		}

		managers = append(managers, &manager.Manager{
			ID:           spec.ID,
			Username:     spec.Username,
			PasswordHash: string(hash),
			Employees:    employees,
		})
	}
	return managers, nil
}

// BuildLeaves parses dates and statuses into domain leave requests, keeping
// the declared order.
func (d Data) BuildLeaves() ([]*leave.LeaveRequest, error) {
	requests := make([]*leave.LeaveRequest, 0, len(d.Leaves))
	for _, spec := range d.Leaves {
		start, err := leave.ParseDate(spec.Start)
		if err != nil {
			return nil, fmt.Errorf("leave %d: %w", spec.ID, err)
		}
		end, err := leave.ParseDate(spec.End)
		if err != nil {
			return nil, fmt.Errorf("leave %d: %w", spec.ID, err)
		}
		status, err := leave.ParseStatus(spec.Status)
		if err != nil {
			return nil, fmt.Errorf("leave %d: %w", spec.ID, err)
		}

		requests = append(requests, &leave.LeaveRequest{
			ID:         spec.ID,
			EmployeeID: spec.EmployeeID,
			ManagerID:  spec.ManagerID,
			Start:      start,
			End:        end,
			Status:     status,
		})
	}
	return requests, nil
}
