package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hellomiami/internal/domain"
)

type demoSlotService struct {
	slotRepo   domain.DemoSlotRepository
	memberRepo domain.MemberRepository
	eventRepo  domain.EventRepository
	roleRepo   domain.RoleRepository
	notifier   domain.NotificationService
	logger     *slog.Logger
	// dispatch runs notification sends decoupled from the request path.
	// Tests replace it with a synchronous runner.
	dispatch func(fn func())
}

// NewDemoSlotService creates a DemoSlotService. Notifications triggered by
// bookings and status changes run on their own goroutines; their failures are
// logged and never surfaced to the caller.
func NewDemoSlotService(
	slotRepo domain.DemoSlotRepository,
	memberRepo domain.MemberRepository,
	eventRepo domain.EventRepository,
	roleRepo domain.RoleRepository,
	notifier domain.NotificationService,
	logger *slog.Logger,
) domain.DemoSlotService {
	return &demoSlotService{
		slotRepo:   slotRepo,
		memberRepo: memberRepo,
		eventRepo:  eventRepo,
		roleRepo:   roleRepo,
		notifier:   notifier,
		logger:     logger,
		dispatch:   func(fn func()) { go fn() },
	}
}

func (s *demoSlotService) RequestSlot(ctx context.Context, actingMemberID, eventID, title, description, requestedTime string, durationMinutes int) (*domain.DemoSlot, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrInvalidInput)
	}
	if actingMemberID == "" {
		return nil, fmt.Errorf("%w: member id is required", domain.ErrInvalidInput)
	}
	if durationMinutes <= 0 {
		durationMinutes = domain.DefaultSlotDuration
	}

	if _, err := s.memberRepo.GetByID(ctx, actingMemberID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	now := time.Now()
	slot := domain.NewDemoSlot(actingMemberID, eventID, title, now, now)
	slot.Description = strings.TrimSpace(description)
	slot.RequestedTime = strings.TrimSpace(requestedTime)
	slot.DurationMinutes = durationMinutes
	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create demo slot: %w", err)
	}

	// The booking is committed; notification delivery is best effort and must
	// not delay or fail the response.
	booked := *slot
	s.dispatch(func() {
		if err := s.notifier.SendBookingConfirmation(context.Background(), &booked); err != nil {
			s.logger.Error("booking confirmation failed", "slot_id", booked.ID, "err", err)
		}
	})
	s.dispatch(func() {
		if err := s.notifier.NotifyOrganizers(context.Background(), &booked); err != nil {
			s.logger.Error("organizer alert failed", "slot_id", booked.ID, "err", err)
		}
	})

	return slot, nil
}

func (s *demoSlotService) Transition(ctx context.Context, slotID, actingMemberID string, newStatus domain.SlotStatus) (*domain.DemoSlot, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, newStatus)
	}

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get demo slot: %w", err)
	}

	admin, err := s.isAdmin(ctx, actingMemberID)
	if err != nil {
		return nil, fmt.Errorf("check admin role: %w", err)
	}
	isOwner := slot.MemberID == actingMemberID
	// Confirming is an organizer action; owners may cancel or re-open their
	// own slots.
	if newStatus == domain.SlotStatusConfirmed {
		if !admin {
			return nil, domain.ErrForbidden
		}
	} else if !isOwner && !admin {
		return nil, domain.ErrForbidden
	}

	prior := slot.Status
	upd := domain.DemoSlotUpdate{Status: &newStatus}
	var confirmedByOrganizer bool
	switch newStatus {
	case domain.SlotStatusConfirmed:
		confirmedByOrganizer = true
	case domain.SlotStatusPending, domain.SlotStatusCanceled:
		confirmedByOrganizer = false
	}
	upd.ConfirmedByOrganizer = &confirmedByOrganizer

	updated, err := s.slotRepo.Update(ctx, slotID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update demo slot: %w", err)
	}

	if prior != newStatus && (newStatus == domain.SlotStatusConfirmed || newStatus == domain.SlotStatusCanceled) {
		changed := *updated
		s.dispatch(func() {
			if err := s.notifier.SendStatusUpdate(context.Background(), &changed, newStatus); err != nil {
				s.logger.Error("status update notification failed", "slot_id", changed.ID, "status", newStatus, "err", err)
			}
		})
	}

	return updated, nil
}

func (s *demoSlotService) GetByID(ctx context.Context, id string) (*domain.DemoSlot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get demo slot: %w", err)
	}
	return slot, nil
}

func (s *demoSlotService) ListByEvent(ctx context.Context, eventID string, status *domain.SlotStatus) ([]*domain.DemoSlotWithMember, error) {
	slots, err := s.slotRepo.ListByEvent(ctx, eventID, status)
	if err != nil {
		return nil, fmt.Errorf("list demo slots: %w", err)
	}

	// Fetch presenters one by one; the dashboard lists are small.
	membersByID := make(map[string]*domain.Member)
	result := make([]*domain.DemoSlotWithMember, 0, len(slots))
	for _, slot := range slots {
		member, ok := membersByID[slot.MemberID]
		if !ok {
			member, err = s.memberRepo.GetByID(ctx, slot.MemberID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Member deleted but slot remains; skip the entry.
					continue
				}
				return nil, fmt.Errorf("get member for slot: %w", err)
			}
			membersByID[slot.MemberID] = member
		}
		result = append(result, &domain.DemoSlotWithMember{Slot: slot, Member: member})
	}
	return result, nil
}

func (s *demoSlotService) ListByMember(ctx context.Context, memberID string, status *domain.SlotStatus) ([]*domain.DemoSlot, error) {
	slots, err := s.slotRepo.ListByMember(ctx, memberID, status)
	if err != nil {
		return nil, fmt.Errorf("list demo slots: %w", err)
	}
	return slots, nil
}

func (s *demoSlotService) isAdmin(ctx context.Context, memberID string) (bool, error) {
	roles, err := s.roleRepo.ListByMemberID(ctx, memberID)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if r.Code == domain.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}
