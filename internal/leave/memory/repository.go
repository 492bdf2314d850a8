// Package memory holds the slice-backed leave request store. It is the
// default backend: insertion-ordered, process-local, gone when the process
// exits.
package memory

import (
	"sync"

	"github.com/frahmantamala/leave-management/internal/leave"
)

type Repository struct {
	mu       sync.RWMutex
	requests []*leave.LeaveRequest
	nextID   int64
}

// NewRepository seeds the store. Seed entries keep their own IDs; the counter
// continues past the highest one so fresh requests never collide.
func NewRepository(seed []*leave.LeaveRequest) *Repository {
	r := &Repository{nextID: 1}
	for _, req := range seed {
		clone := req.Clone()
		r.requests = append(r.requests, clone)
		if clone.ID >= r.nextID {
			r.nextID = clone.ID + 1
		}
	}
	return r
}

// Create appends the request and assigns the next monotonic ID when the
// caller supplied none. No duplicate check: every call grows the store by one.
func (r *Repository) Create(req *leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.ID == 0 {
		req.ID = r.nextID
	}
	if req.ID >= r.nextID {
		r.nextID = req.ID + 1
	}

	r.requests = append(r.requests, req.Clone())
	return nil
}

func (r *Repository) GetByID(id int64) (*leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.requests {
		if req.ID == id {
			return req.Clone(), nil
		}
	}
	return nil, leave.ErrNotFound
}

// GetByManagerID filters in insertion order, not date order.
func (r *Repository) GetByManagerID(managerID int64) ([]*leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*leave.LeaveRequest
	for _, req := range r.requests {
		if req.ManagerID == managerID {
			out = append(out, req.Clone())
		}
	}
	return out, nil
}

func (r *Repository) GetAll() ([]*leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*leave.LeaveRequest, 0, len(r.requests))
	for _, req := range r.requests {
		out = append(out, req.Clone())
	}
	return out, nil
}

// Patch merges the present fields into the stored entry. Unknown IDs return
// leave.ErrNotFound; nothing is created on a miss.
func (r *Repository) Patch(id int64, dto leave.PatchLeaveDTO) (*leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, req := range r.requests {
		if req.ID == id {
			dto.ApplyTo(req)
			return req.Clone(), nil
		}
	}
	return nil, leave.ErrNotFound
}

func (r *Repository) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.requests), nil
}
