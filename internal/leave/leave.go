package leave

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/frahmantamala/leave-management/internal"
)

// Status is the approval state of a leave request. The four values are the
// only ones the edit form offers; ParseStatus rejects anything else so no
// out-of-band value can enter the store.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusPostponed Status = "postponed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusPostponed:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", internal.NewValidationError(fmt.Sprintf("unknown status %q", s), internal.ErrCodeInvalidStatus)
	}
	return status, nil
}

// Date is a day-granular value serialized as YYYY-MM-DD, matching the wire
// format the calendar client uses for slot selections.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, internal.NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s), internal.ErrCodeInvalidDate).WithCause(err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = parsed.Time
	return nil
}

func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// Value implements driver.Valuer so the gorm repository can persist dates as
// plain YYYY-MM-DD strings.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(time.DateOnly), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		d.Time = v
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		d.Time = parsed.Time
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		d.Time = parsed.Time
		return nil
	default:
		return fmt.Errorf("cannot scan %T into leave.Date", value)
	}
}

// GormDataType tells gorm which column type to migrate for Date fields.
func (Date) GormDataType() string {
	return "date"
}

// LeaveRequest is a date-ranged record of an employee's requested absence.
// Requests are created and edited but never deleted.
type LeaveRequest struct {
	ID         int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID int64  `json:"employee_id" gorm:"column:employee_id;not null"`
	ManagerID  int64  `json:"manager_id" gorm:"column:manager_id;not null"`
	Start      Date   `json:"start" gorm:"column:start_date"`
	End        Date   `json:"end" gorm:"column:end_date"`
	Status     Status `json:"status" gorm:"column:status;default:pending"`
}

// TableName returns the table name for GORM
func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func (r *LeaveRequest) CanBeApproved() bool {
	return r.Status == StatusPending || r.Status == StatusPostponed
}

func (r *LeaveRequest) Approve() {
	r.Status = StatusApproved
}

func (r *LeaveRequest) Reject() {
	r.Status = StatusRejected
}

func (r *LeaveRequest) Postpone() {
	r.Status = StatusPostponed
}

// Clone returns a copy so repository internals never leak shared pointers.
func (r *LeaveRequest) Clone() *LeaveRequest {
	c := *r
	return &c
}

var (
	ErrNotFound            = internal.ErrLeaveNotFound
	ErrEmployeeNotInRoster = internal.NewValidationError(
		"employee does not belong to the manager's roster", internal.ErrCodeRosterMismatch)
)
