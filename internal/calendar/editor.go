package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/leave"
	"github.com/frahmantamala/leave-management/internal/manager"
)

// LeaveService is the slice of the leave service the editor dispatches to.
type LeaveService interface {
	Create(ctx context.Context, managerID int64, dto leave.CreateLeaveDTO) (*leave.LeaveRequest, error)
	Patch(ctx context.Context, id, managerID int64, dto leave.PatchLeaveDTO) (*leave.LeaveRequest, error)
	GetByID(ctx context.Context, id, managerID int64) (*leave.LeaveRequest, error)
	ListForManager(ctx context.Context, managerID int64) ([]*leave.LeaveRequest, error)
}

type State string

const (
	StateIdle    State = "idle"
	StateEditing State = "editing"
)

// PendingEvent is the not-yet-saved edit buffer backing the create/edit
// modal. A nil ID means saving will create; a set ID means saving will patch.
type PendingEvent struct {
	ID         *int64       `json:"id"`
	EmployeeID int64        `json:"employee_id"`
	Start      leave.Date   `json:"start"`
	End        leave.Date   `json:"end"`
	Status     leave.Status `json:"status"`
}

// PendingChangeDTO carries field edits while the modal is open. Present
// fields replace the pending value immediately; there is no validation that
// end >= start or that the range avoids other requests, matching the form.
type PendingChangeDTO struct {
	EmployeeID *int64        `json:"employee_id,omitempty"`
	Start      *leave.Date   `json:"start,omitempty"`
	End        *leave.Date   `json:"end,omitempty"`
	Status     *leave.Status `json:"status,omitempty"`
}

var ErrNoPendingEdit = internal.NewValidationError("no edit in progress", internal.ErrCodeNoPendingEdit)

// Editor is the per-manager interaction controller: Idle until a slot or
// event click opens an edit, back to Idle on save or cancel. The pending
// buffer is reset on every transition into Editing, so no stale form state
// survives a cancelled edit.
type Editor struct {
	mu      sync.Mutex
	manager *manager.Manager
	leaves  LeaveService
	state   State
	pending PendingEvent
}

func NewEditor(m *manager.Manager, leaves LeaveService) *Editor {
	e := &Editor{
		manager: m,
		leaves:  leaves,
	}
	e.resetLocked()
	return e
}

func (e *Editor) resetLocked() {
	today := leave.Date{Time: time.Now().UTC().Truncate(24 * time.Hour)}
	e.state = StateIdle
	e.pending = PendingEvent{
		ID:     nil,
		Start:  today,
		End:    today,
		Status: leave.StatusPending,
	}
	if emp, ok := e.manager.DefaultEmployee(); ok {
		e.pending.EmployeeID = emp.ID
	}
}

// State returns the editor state and a copy of the pending buffer.
func (e *Editor) State() (State, PendingEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, e.pending
}

// OpenSlot handles a click on an empty calendar range. If one of the
// manager's requests for the currently selected employee starts exactly at
// the clicked start, that request is loaded for editing; otherwise the buffer
// becomes a fresh pending request over the clicked range.
func (e *Editor) OpenSlot(ctx context.Context, start, end leave.Date) (PendingEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	selectedEmployee := e.pending.EmployeeID
	e.resetLocked()

	requests, err := e.leaves.ListForManager(ctx, e.manager.ID)
	if err != nil {
		return PendingEvent{}, err
	}

	for _, req := range requests {
		if req.Start.Equal(start) && req.EmployeeID == selectedEmployee {
			e.loadLocked(req)
			return e.pending, nil
		}
	}

	e.state = StateEditing
	e.pending.Start = start
	e.pending.End = end
	return e.pending, nil
}

// OpenEvent handles a click on an existing calendar entry and always enters
// edit-existing mode.
func (e *Editor) OpenEvent(ctx context.Context, id int64) (PendingEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	req, err := e.leaves.GetByID(ctx, id, e.manager.ID)
	if err != nil {
		return PendingEvent{}, err
	}

	e.resetLocked()
	e.loadLocked(req)
	return e.pending, nil
}

func (e *Editor) loadLocked(req *leave.LeaveRequest) {
	id := req.ID
	e.state = StateEditing
	e.pending = PendingEvent{
		ID:         &id,
		EmployeeID: req.EmployeeID,
		Start:      req.Start,
		End:        req.End,
		Status:     req.Status,
	}
}

// Apply replaces pending fields while the modal is open.
func (e *Editor) Apply(changes PendingChangeDTO) (PendingEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateEditing {
		return PendingEvent{}, ErrNoPendingEdit
	}

	if changes.EmployeeID != nil {
		e.pending.EmployeeID = *changes.EmployeeID
	}
	if changes.Start != nil {
		e.pending.Start = *changes.Start
	}
	if changes.End != nil {
		e.pending.End = *changes.End
	}
	if changes.Status != nil {
		if !changes.Status.Valid() {
			return PendingEvent{}, internal.NewValidationError("invalid status", internal.ErrCodeInvalidStatus)
		}
		e.pending.Status = *changes.Status
	}

	return e.pending, nil
}

// Save dispatches the pending buffer: patch when it carries an ID, create
// otherwise, then returns to Idle with a fresh buffer.
func (e *Editor) Save(ctx context.Context) (*leave.LeaveRequest, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateEditing {
		return nil, ErrNoPendingEdit
	}

	var (
		saved *leave.LeaveRequest
		err   error
	)

	if e.pending.ID != nil {
		patch := leave.PatchLeaveDTO{
			EmployeeID: &e.pending.EmployeeID,
			Start:      &e.pending.Start,
			End:        &e.pending.End,
			Status:     &e.pending.Status,
		}
		saved, err = e.leaves.Patch(ctx, *e.pending.ID, e.manager.ID, patch)
	} else {
		dto := leave.CreateLeaveDTO{
			EmployeeID: e.pending.EmployeeID,
			Start:      e.pending.Start,
			End:        e.pending.End,
			Status:     e.pending.Status,
		}
		saved, err = e.leaves.Create(ctx, e.manager.ID, dto)
	}

	if err != nil {
		// Keep the buffer so the user can correct and retry.
		return nil, err
	}

	e.resetLocked()
	return saved, nil
}

// Cancel closes the modal and resets the buffer.
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

// Registry hands out one editor per manager so concurrent sessions never
// share a pending buffer.
type Registry struct {
	mu      sync.Mutex
	editors map[int64]*Editor
	leaves  LeaveService
}

func NewRegistry(leaves LeaveService) *Registry {
	return &Registry{
		editors: make(map[int64]*Editor),
		leaves:  leaves,
	}
}

func (r *Registry) ForManager(m *manager.Manager) *Editor {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.editors[m.ID]; ok {
		return e
	}
	e := NewEditor(m, r.leaves)
	r.editors[m.ID] = e
	return e
}
