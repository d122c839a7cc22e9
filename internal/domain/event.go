package domain

import (
	"context"
	"time"
)

// Event represents a hack night occurrence.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	StartAt     time.Time `json:"start_at"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(name string, startAt time.Time, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:      name,
		StartAt:   startAt,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListUpcoming(ctx context.Context, from time.Time) ([]*Event, error)
}

// EventService defines event operations. Creating events is an organizer action.
type EventService interface {
	CreateEvent(ctx context.Context, name string, startAt time.Time, location, description string) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	ListUpcoming(ctx context.Context) ([]*Event, error)
}
