package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"hellomiami/internal/domain"
)

// eventDateLayout is the human-readable format used in notification emails.
const eventDateLayout = "Monday, Jan 2 2006 at 3:04 PM"

type notificationService struct {
	memberRepo domain.MemberRepository
	eventRepo  domain.EventRepository
	mailer     domain.Mailer
	renderer   domain.EmailTemplateRenderer
	organizers []string
	logger     *slog.Logger
}

// NewNotificationService creates a NotificationService. organizerEmails is
// the list of addresses alerted about new bookings; an empty list disables
// organizer alerts.
func NewNotificationService(
	memberRepo domain.MemberRepository,
	eventRepo domain.EventRepository,
	mailer domain.Mailer,
	renderer domain.EmailTemplateRenderer,
	organizerEmails []string,
	logger *slog.Logger,
) domain.NotificationService {
	return &notificationService{
		memberRepo: memberRepo,
		eventRepo:  eventRepo,
		mailer:     mailer,
		renderer:   renderer,
		organizers: organizerEmails,
		logger:     logger,
	}
}

// resolveSlotEmailData loads the slot's member and event and builds template data.
func (s *notificationService) resolveSlotEmailData(ctx context.Context, slot *domain.DemoSlot) (*domain.SlotEmailData, error) {
	member, err := s.memberRepo.GetByID(ctx, slot.MemberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrRecipientNotFound
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, slot.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrRecipientNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	displayName := member.DisplayName
	if displayName == "" {
		displayName = member.Email
	}
	return &domain.SlotEmailData{
		Email:           member.Email,
		DisplayName:     displayName,
		SlotTitle:       slot.Title,
		SlotDescription: slot.Description,
		RequestedTime:   slot.RequestedTime,
		DurationMinutes: slot.DurationMinutes,
		EventName:       event.Name,
		EventDate:       event.StartAt.Format(eventDateLayout),
	}, nil
}

func (s *notificationService) SendBookingConfirmation(ctx context.Context, slot *domain.DemoSlot) error {
	data, err := s.resolveSlotEmailData(ctx, slot)
	if err != nil {
		return err
	}
	subject, htmlBody, textBody, err := s.renderer.Render("booking_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render booking_confirmation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send booking confirmation: %w", err)
	}
	s.logger.Info("booking confirmation sent", "to", data.Email, "slot_id", slot.ID)
	return nil
}

func (s *notificationService) SendStatusUpdate(ctx context.Context, slot *domain.DemoSlot, status domain.SlotStatus) error {
	data, err := s.resolveSlotEmailData(ctx, slot)
	if err != nil {
		return err
	}
	switch status {
	case domain.SlotStatusConfirmed:
		data.StatusLabel = "Confirmed"
	case domain.SlotStatusCanceled:
		data.StatusLabel = "Canceled"
	default:
		return fmt.Errorf("no status update email for status %q", status)
	}
	subject, htmlBody, textBody, err := s.renderer.Render("status_update", data)
	if err != nil {
		return fmt.Errorf("failed to render status_update template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send status update: %w", err)
	}
	s.logger.Info("status update sent", "to", data.Email, "slot_id", slot.ID, "status", status)
	return nil
}

func (s *notificationService) NotifyOrganizers(ctx context.Context, slot *domain.DemoSlot) error {
	if len(s.organizers) == 0 {
		return nil
	}
	data, err := s.resolveSlotEmailData(ctx, slot)
	if err != nil {
		return err
	}
	subject, htmlBody, textBody, err := s.renderer.Render("organizer_alert", data)
	if err != nil {
		return fmt.Errorf("failed to render organizer_alert template: %w", err)
	}

	// All sends are attempted concurrently; one failure does not stop the rest.
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0
	for _, to := range s.organizers {
		wg.Add(1)
		go func(to string) {
			defer wg.Done()
			if err := s.mailer.Send(to, subject, htmlBody, textBody); err != nil {
				s.logger.Error("organizer notification failed", "to", to, "slot_id", slot.ID, "err", err)
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(to)
	}
	wg.Wait()

	if failed > 0 {
		return fmt.Errorf("failed to send %d of %d organizer notifications", failed, len(s.organizers))
	}
	return nil
}

func (s *notificationService) SendLoginCode(ctx context.Context, data *domain.LoginCodeEmailData) error {
	if data == nil {
		return fmt.Errorf("login code email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("login_code", data)
	if err != nil {
		return fmt.Errorf("failed to render login_code template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send login code email: %w", err)
	}
	s.logger.Info("login code sent", "to", data.Email)
	return nil
}
