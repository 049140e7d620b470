package domain

import "time"

// Event is a scheduled happening students can register for.
type Event struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Date            time.Time `json:"date"`
	Venue           string    `json:"venue"`
	Capacity        int       `json:"capacity"`
	RegisteredCount int       `json:"registeredCount"`
	OrganizerID     string    `json:"organizerId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// IsFull reports whether no seat is left.
func (e *Event) IsFull() bool {
	return e.RegisteredCount >= e.Capacity
}

// Organizer is the public view of an event owner.
type Organizer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EventWithOrganizer is an event whose owner reference has been expanded.
// Organizer is nil when the owning user no longer resolves.
type EventWithOrganizer struct {
	Event
	Organizer *Organizer `json:"organizer"`
}
