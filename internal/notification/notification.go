package notification

import "time"

// Notification is an in-process message for a manager, produced when one of
// their leave requests changes status.
type Notification struct {
	ID        int64     `json:"id"`
	ManagerID int64     `json:"manager_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
