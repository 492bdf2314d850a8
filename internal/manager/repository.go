package manager

import "sync"

// Repository defines the data access methods for managers.
type Repository interface {
	GetByID(id int64) (*Manager, error)
	GetByUsername(username string) (*Manager, error)
	All() ([]*Manager, error)
}

// memoryRepository holds the seeded manager accounts. The set never changes
// after construction, so reads need no locking beyond the map copy guard.
type memoryRepository struct {
	mu       sync.RWMutex
	managers []*Manager
	byID     map[int64]*Manager
}

func NewMemoryRepository(managers []*Manager) Repository {
	byID := make(map[int64]*Manager, len(managers))
	for _, m := range managers {
		byID[m.ID] = m
	}
	return &memoryRepository{
		managers: managers,
		byID:     byID,
	}
}

func (r *memoryRepository) GetByID(id int64) (*Manager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m, nil
}

func (r *memoryRepository) GetByUsername(username string) (*Manager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Case-sensitive match, same as the login form contract.
	for _, m := range r.managers {
		if m.Username == username {
			return m, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepository) All() ([]*Manager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Manager, len(r.managers))
	copy(out, r.managers)
	return out, nil
}
