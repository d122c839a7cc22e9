package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"hellomiami/internal/domain"
)

type fakeMailer struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]bool
}

func newFakeMailer(failFor ...string) *fakeMailer {
	m := &fakeMailer{failFor: make(map[string]bool)}
	for _, addr := range failFor {
		m.failFor[addr] = true
	}
	return m
}

func (m *fakeMailer) Send(to, subject, html, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[to] {
		return errors.New("bounce")
	}
	m.sent = append(m.sent, to)
	return nil
}

type fakeRenderer struct {
	err error
}

func (r *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	if r.err != nil {
		return "", "", "", r.err
	}
	return "subject: " + templateName, "<p>body</p>", "body", nil
}

func newTestNotificationService(memberRepo *fakeMemberRepo, eventRepo *fakeEventRepo, mailer *fakeMailer, organizers []string) *notificationService {
	return &notificationService{
		memberRepo: memberRepo,
		eventRepo:  eventRepo,
		mailer:     mailer,
		renderer:   &fakeRenderer{},
		organizers: organizers,
		logger:     testLogger(),
	}
}

func pendingSlot() *domain.DemoSlot {
	return &domain.DemoSlot{
		ID:              "s1",
		MemberID:        "m1",
		EventID:         "e1",
		Title:           "Demo",
		DurationMinutes: 5,
		Status:          domain.SlotStatusPending,
	}
}

func TestNotificationService_SendBookingConfirmation(t *testing.T) {
	ctx := context.Background()
	mailer := newFakeMailer()
	svc := newTestNotificationService(newFakeMemberRepo(testMember("m1")), newFakeEventRepo(testEvent("e1")), mailer, nil)

	if err := svc.SendBookingConfirmation(ctx, pendingSlot()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "m1@example.com" {
		t.Fatalf("expected one email to the member, got %v", mailer.sent)
	}
}

func TestNotificationService_SendBookingConfirmation_RecipientNotFound(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name       string
		memberRepo *fakeMemberRepo
		eventRepo  *fakeEventRepo
	}{
		{"member missing", newFakeMemberRepo(), newFakeEventRepo(testEvent("e1"))},
		{"event missing", newFakeMemberRepo(testMember("m1")), newFakeEventRepo()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := newFakeMailer()
			svc := newTestNotificationService(tt.memberRepo, tt.eventRepo, mailer, nil)
			err := svc.SendBookingConfirmation(ctx, pendingSlot())
			if !errors.Is(err, domain.ErrRecipientNotFound) {
				t.Fatalf("expected ErrRecipientNotFound, got %v", err)
			}
			if len(mailer.sent) != 0 {
				t.Fatalf("no email should be sent, got %v", mailer.sent)
			}
		})
	}
}

func TestNotificationService_SendStatusUpdate(t *testing.T) {
	ctx := context.Background()
	mailer := newFakeMailer()
	svc := newTestNotificationService(newFakeMemberRepo(testMember("m1")), newFakeEventRepo(testEvent("e1")), mailer, nil)

	if err := svc.SendStatusUpdate(ctx, pendingSlot(), domain.SlotStatusConfirmed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.SendStatusUpdate(ctx, pendingSlot(), domain.SlotStatusCanceled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(mailer.sent))
	}
	// Pending is not a status members get emailed about.
	if err := svc.SendStatusUpdate(ctx, pendingSlot(), domain.SlotStatusPending); err == nil {
		t.Fatal("expected error for pending status update")
	}
}

func TestNotificationService_NotifyOrganizers(t *testing.T) {
	ctx := context.Background()
	organizers := []string{"a@hellomiami.org", "b@hellomiami.org", "c@hellomiami.org"}
	mailer := newFakeMailer()
	svc := newTestNotificationService(newFakeMemberRepo(testMember("m1")), newFakeEventRepo(testEvent("e1")), mailer, organizers)

	if err := svc.NotifyOrganizers(ctx, pendingSlot()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 3 {
		t.Fatalf("expected 3 organizer emails, got %d", len(mailer.sent))
	}
}

func TestNotificationService_NotifyOrganizers_PartialFailure(t *testing.T) {
	ctx := context.Background()
	organizers := []string{"a@hellomiami.org", "b@hellomiami.org", "c@hellomiami.org"}
	mailer := newFakeMailer("b@hellomiami.org")
	svc := newTestNotificationService(newFakeMemberRepo(testMember("m1")), newFakeEventRepo(testEvent("e1")), mailer, organizers)

	err := svc.NotifyOrganizers(ctx, pendingSlot())
	if err == nil {
		t.Fatal("expected aggregate error")
	}
	if got, want := err.Error(), "failed to send 1 of 3 organizer notifications"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	// The failing recipient must not stop the other two.
	if len(mailer.sent) != 2 {
		t.Fatalf("expected 2 delivered emails, got %d", len(mailer.sent))
	}
}

func TestNotificationService_NotifyOrganizers_NoOrganizersConfigured(t *testing.T) {
	ctx := context.Background()
	mailer := newFakeMailer()
	svc := newTestNotificationService(newFakeMemberRepo(), newFakeEventRepo(), mailer, nil)

	if err := svc.NotifyOrganizers(ctx, pendingSlot()); err != nil {
		t.Fatalf("expected nil error with no organizers, got %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("no email should be sent, got %v", mailer.sent)
	}
}
