package email

import (
	"strings"
	"testing"

	"hellomiami/internal/domain"
)

func slotData() *domain.SlotEmailData {
	return &domain.SlotEmailData{
		Email:           "dev@example.com",
		DisplayName:     "Dev",
		SlotTitle:       "Tiny compiler",
		SlotDescription: "a 5 minute walkthrough",
		RequestedTime:   "early",
		DurationMinutes: 5,
		EventName:       "Hack Night",
		EventDate:       "Thursday, Mar 5 2026 at 7:00 PM",
	}
}

func TestTemplateRenderer_BookingConfirmation(t *testing.T) {
	r := NewTemplateRenderer()
	subject, htmlBody, textBody, err := r.Render("booking_confirmation", slotData())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(subject, "Tiny compiler") {
		t.Fatalf("expected slot title in subject, got %q", subject)
	}
	if !strings.Contains(htmlBody, "Hack Night") || !strings.Contains(textBody, "Hack Night") {
		t.Fatal("expected event name in both bodies")
	}
}

func TestTemplateRenderer_StatusUpdate(t *testing.T) {
	r := NewTemplateRenderer()
	data := slotData()
	data.StatusLabel = "Confirmed"
	subject, htmlBody, _, err := r.Render("status_update", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(subject, "Confirmed") {
		t.Fatalf("expected status label in subject, got %q", subject)
	}
	if !strings.Contains(htmlBody, "Confirmed") {
		t.Fatal("expected status label in HTML body")
	}
}

func TestTemplateRenderer_LoginCode(t *testing.T) {
	r := NewTemplateRenderer()
	_, htmlBody, textBody, err := r.Render("login_code", &domain.LoginCodeEmailData{
		Email:            "dev@example.com",
		Code:             "123456",
		ExpiresInMinutes: 15,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(htmlBody, "123456") || !strings.Contains(textBody, "123456") {
		t.Fatal("expected code in both bodies")
	}
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r := NewTemplateRenderer()
	if _, _, _, err := r.Render("does_not_exist", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestTemplateRenderer_EscapesHTML(t *testing.T) {
	r := NewTemplateRenderer()
	data := slotData()
	data.SlotTitle = `<script>alert("x")</script>`
	_, htmlBody, _, err := r.Render("booking_confirmation", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(htmlBody, "<script>") {
		t.Fatal("expected HTML body to escape markup in user input")
	}
}
