// Package sqlite implements the leave repository over gorm with an in-memory
// SQLite database. State still lives only for the life of the process; this
// backend exists for deployments that want SQL querying over the same data.
package sqlite

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/leave-management/internal/leave"
)

type Repository struct {
	db *gorm.DB
}

// NewRepository opens the database, migrates the schema and loads the seed
// rows. Use a DSN like "file::memory:?cache=shared" to stay in memory.
func NewRepository(dsn string, seed []*leave.LeaveRequest) (*Repository, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.AutoMigrate(&leave.LeaveRequest{}); err != nil {
		return nil, fmt.Errorf("failed to migrate leave schema: %w", err)
	}

	for _, req := range seed {
		if err := db.Create(req.Clone()).Error; err != nil {
			return nil, fmt.Errorf("failed to seed leave request %d: %w", req.ID, err)
		}
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Create(req *leave.LeaveRequest) error {
	return r.db.Create(req).Error
}

func (r *Repository) GetByID(id int64) (*leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	if err := r.db.First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leave.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// GetByManagerID orders by primary key, which matches insertion order for
// this append-only table.
func (r *Repository) GetByManagerID(managerID int64) ([]*leave.LeaveRequest, error) {
	var requests []*leave.LeaveRequest
	if err := r.db.Where("manager_id = ?", managerID).Order("id").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *Repository) GetAll() ([]*leave.LeaveRequest, error) {
	var requests []*leave.LeaveRequest
	if err := r.db.Order("id").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Patch updates only the columns present in the payload.
func (r *Repository) Patch(id int64, dto leave.PatchLeaveDTO) (*leave.LeaveRequest, error) {
	cols := map[string]interface{}{}
	if dto.EmployeeID != nil {
		cols["employee_id"] = *dto.EmployeeID
	}
	if dto.Start != nil {
		cols["start_date"] = *dto.Start
	}
	if dto.End != nil {
		cols["end_date"] = *dto.End
	}
	if dto.Status != nil {
		cols["status"] = *dto.Status
	}

	res := r.db.Model(&leave.LeaveRequest{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, leave.ErrNotFound
	}

	return r.GetByID(id)
}

func (r *Repository) Count() (int, error) {
	var count int64
	if err := r.db.Model(&leave.LeaveRequest{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}
