package domain

import "time"

type NotificationType string

const (
	NotificationTypeDueToday NotificationType = "rental_due_today"
	NotificationTypeOverdue  NotificationType = "rental_overdue"
)

// Notification is a due/overdue alert raised by the scheduler for an open
// rental and cleared when the rental completes.
type Notification struct {
	ID        int32            `json:"id"`
	RentalID  int32            `json:"rental_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read"`
	CreatedOn time.Time        `json:"created_on"`
}
