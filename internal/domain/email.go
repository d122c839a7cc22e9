package domain

import (
	"context"
	"errors"
)

// ErrRecipientNotFound is returned by the notification service when the
// slot's member or event cannot be resolved. It is distinct from transport
// failures, which carry the underlying mailer error.
var ErrRecipientNotFound = errors.New("member or event not found")

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// SlotEmailData holds data for demo slot emails.
type SlotEmailData struct {
	Email           string
	DisplayName     string
	SlotTitle       string
	SlotDescription string
	RequestedTime   string
	DurationMinutes int
	EventName       string
	EventDate       string // human readable, pre-formatted
	StatusLabel     string // "Confirmed" or "Canceled", status update only
}

// LoginCodeEmailData holds data for the passwordless login code email.
type LoginCodeEmailData struct {
	Email            string
	Code             string
	ExpiresInMinutes int
}

// NotificationService sends domain-level emails. Booking and status-change
// notifications resolve the slot's member and event themselves; lookups that
// fail yield ErrRecipientNotFound instead of a transport error. All sends are
// single-attempt, no retry.
type NotificationService interface {
	// SendBookingConfirmation emails the presenting member that their slot
	// request was received.
	SendBookingConfirmation(ctx context.Context, slot *DemoSlot) error
	// SendStatusUpdate emails the presenting member about a confirmed or
	// canceled slot.
	SendStatusUpdate(ctx context.Context, slot *DemoSlot, status SlotStatus) error
	// NotifyOrganizers emails every configured organizer about a new booking.
	// All sends are attempted; partial failures are aggregated into a single
	// error and do not stop remaining recipients.
	NotifyOrganizers(ctx context.Context, slot *DemoSlot) error
	// SendLoginCode sends the passwordless login code email.
	SendLoginCode(ctx context.Context, data *LoginCodeEmailData) error
}
