package leave

import (
	"github.com/frahmantamala/leave-management/internal"
)

// CreateLeaveDTO is the request payload for creating a leave request. The
// manager is taken from the session, never from the payload. End before start
// and overlapping ranges are deliberately accepted; approval is the manager's
// call, not the form's.
type CreateLeaveDTO struct {
	EmployeeID int64  `json:"employee_id"`
	Start      Date   `json:"start"`
	End        Date   `json:"end"`
	Status     Status `json:"status,omitempty"`
}

func (dto *CreateLeaveDTO) Validate() error {
	if dto.EmployeeID == 0 {
		return internal.NewValidationError("employee_id is required", internal.ErrCodeValidationFailed)
	}
	if dto.Start.IsZero() {
		return internal.NewValidationError("start date is required", internal.ErrCodeInvalidDate)
	}
	if dto.End.IsZero() {
		return internal.NewValidationError("end date is required", internal.ErrCodeInvalidDate)
	}
	if dto.Status == "" {
		dto.Status = StatusPending
	}
	if !dto.Status.Valid() {
		return internal.NewValidationError("invalid status", internal.ErrCodeInvalidStatus)
	}
	return nil
}

// PatchLeaveDTO is a shallow-merge edit: only fields present in the payload
// overwrite the stored request, absent fields are retained.
type PatchLeaveDTO struct {
	EmployeeID *int64  `json:"employee_id,omitempty"`
	Start      *Date   `json:"start,omitempty"`
	End        *Date   `json:"end,omitempty"`
	Status     *Status `json:"status,omitempty"`
}

func (dto PatchLeaveDTO) Validate() error {
	if dto.EmployeeID == nil && dto.Start == nil && dto.End == nil && dto.Status == nil {
		return internal.NewValidationError("patch payload is empty", internal.ErrCodeValidationFailed)
	}
	if dto.EmployeeID != nil && *dto.EmployeeID == 0 {
		return internal.NewValidationError("employee_id cannot be zero", internal.ErrCodeValidationFailed)
	}
	if dto.Status != nil && !dto.Status.Valid() {
		return internal.NewValidationError("invalid status", internal.ErrCodeInvalidStatus)
	}
	return nil
}

// ApplyTo writes the present fields onto the request, newest value wins.
func (dto PatchLeaveDTO) ApplyTo(req *LeaveRequest) {
	if dto.EmployeeID != nil {
		req.EmployeeID = *dto.EmployeeID
	}
	if dto.Start != nil {
		req.Start = *dto.Start
	}
	if dto.End != nil {
		req.End = *dto.End
	}
	if dto.Status != nil {
		req.Status = *dto.Status
	}
}
