package domain

import "time"

// Registration links one student to one event. At most one exists per pair.
type Registration struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	EventID   string    `json:"eventId"`
	CreatedAt time.Time `json:"createdAt"`
}
