package models

import "time"

// Contact submission statuses.
const (
	ContactUnread   = "unread"
	ContactRead     = "read"
	ContactReplied  = "replied"
	ContactArchived = "archived"
)

// Contact is a submission of the public contact form.
type Contact struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Service     string    `json:"service"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
	Status      string    `json:"status"`
}
