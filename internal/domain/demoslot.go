package domain

import (
	"context"
	"time"
)

// SlotStatus is the lifecycle status of a demo slot.
type SlotStatus string

const (
	SlotStatusPending   SlotStatus = "pending"
	SlotStatusConfirmed SlotStatus = "confirmed"
	SlotStatusCanceled  SlotStatus = "canceled"
)

// Valid reports whether s is one of the known slot statuses.
func (s SlotStatus) Valid() bool {
	switch s {
	case SlotStatusPending, SlotStatusConfirmed, SlotStatusCanceled:
		return true
	}
	return false
}

// DefaultSlotDuration is the slot length used when the request omits one.
const DefaultSlotDuration = 5

// DemoSlot represents a demo presentation booking request for a hack night.
// MemberID and EventID are immutable after creation.
// swagger:model DemoSlot
type DemoSlot struct {
	ID                   string     `json:"id"`
	MemberID             string     `json:"member_id"`
	EventID              string     `json:"event_id"`
	Title                string     `json:"title"`
	Description          string     `json:"description,omitempty"`
	RequestedTime        string     `json:"requested_time,omitempty"`
	DurationMinutes      int        `json:"duration_minutes"`
	Status               SlotStatus `json:"status"`
	ConfirmedByOrganizer bool       `json:"confirmed_by_organizer"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// NewDemoSlot returns a pending DemoSlot for the given member and event.
// ID is typically set by the repository on create.
func NewDemoSlot(memberID, eventID, title string, createdAt, updatedAt time.Time) *DemoSlot {
	return &DemoSlot{
		MemberID:        memberID,
		EventID:         eventID,
		Title:           title,
		DurationMinutes: DefaultSlotDuration,
		Status:          SlotStatusPending,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}

// DemoSlotUpdate holds the mutable slot fields. Nil pointers are left
// unchanged; updated_at is stamped on every update regardless.
type DemoSlotUpdate struct {
	Title                *string
	Description          *string
	RequestedTime        *string
	DurationMinutes      *int
	Status               *SlotStatus
	ConfirmedByOrganizer *bool
}

// DemoSlotWithMember bundles a slot with its presenting member, for the
// organizer dashboard listing.
type DemoSlotWithMember struct {
	Slot   *DemoSlot `json:"slot"`
	Member *Member   `json:"member"`
}

// DemoSlotRepository defines the interface for demo slot storage.
// List results are ordered by creation.
type DemoSlotRepository interface {
	Create(ctx context.Context, slot *DemoSlot) error
	GetByID(ctx context.Context, id string) (*DemoSlot, error)
	ListByEvent(ctx context.Context, eventID string, status *SlotStatus) ([]*DemoSlot, error)
	ListByMember(ctx context.Context, memberID string, status *SlotStatus) ([]*DemoSlot, error)
	Update(ctx context.Context, id string, upd DemoSlotUpdate) (*DemoSlot, error)
	// Delete is a legacy path kept for data cleanup; the organizer flow
	// cancels slots instead of removing them.
	Delete(ctx context.Context, id string) error
}

// DemoSlotService orchestrates slot booking and status transitions.
type DemoSlotService interface {
	// RequestSlot validates the request, resolves the acting member, persists
	// a pending slot, and triggers booking notifications without waiting for
	// them. durationMinutes <= 0 falls back to DefaultSlotDuration.
	RequestSlot(ctx context.Context, actingMemberID, eventID, title, description, requestedTime string, durationMinutes int) (*DemoSlot, error)
	// Transition applies newStatus to the slot. The caller must be the slot
	// owner or an admin; confirming requires admin. Re-applying the current
	// status is a no-op that still stamps updated_at.
	Transition(ctx context.Context, slotID, actingMemberID string, newStatus SlotStatus) (*DemoSlot, error)
	GetByID(ctx context.Context, id string) (*DemoSlot, error)
	ListByEvent(ctx context.Context, eventID string, status *SlotStatus) ([]*DemoSlotWithMember, error)
	ListByMember(ctx context.Context, memberID string, status *SlotStatus) ([]*DemoSlot, error)
}
