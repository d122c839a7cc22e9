package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hellomiami/internal/delivery/http/helpers"
	"hellomiami/internal/delivery/http/middleware"
	"hellomiami/internal/domain"
)

const (
	testSlotID   = "11111111-2222-3333-4444-555555555555"
	testEventID  = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
	testMemberID = "99999999-8888-7777-6666-555555555555"
)

type mockDemoSlotService struct {
	slot *domain.DemoSlot
	err  error

	gotActingMemberID string
	gotStatus         domain.SlotStatus
}

func (m *mockDemoSlotService) RequestSlot(ctx context.Context, actingMemberID, eventID, title, description, requestedTime string, durationMinutes int) (*domain.DemoSlot, error) {
	m.gotActingMemberID = actingMemberID
	if m.err != nil {
		return nil, m.err
	}
	return m.slot, nil
}

func (m *mockDemoSlotService) Transition(ctx context.Context, slotID, actingMemberID string, newStatus domain.SlotStatus) (*domain.DemoSlot, error) {
	m.gotActingMemberID = actingMemberID
	m.gotStatus = newStatus
	if m.err != nil {
		return nil, m.err
	}
	return m.slot, nil
}

func (m *mockDemoSlotService) GetByID(ctx context.Context, id string) (*domain.DemoSlot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.slot, nil
}

func (m *mockDemoSlotService) ListByEvent(ctx context.Context, eventID string, status *domain.SlotStatus) ([]*domain.DemoSlotWithMember, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []*domain.DemoSlotWithMember{{Slot: m.slot, Member: &domain.Member{ID: m.slot.MemberID}}}, nil
}

func (m *mockDemoSlotService) ListByMember(ctx context.Context, memberID string, status *domain.SlotStatus) ([]*domain.DemoSlot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []*domain.DemoSlot{m.slot}, nil
}

func testControllerLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func pendingTestSlot() *domain.DemoSlot {
	return &domain.DemoSlot{
		ID:              testSlotID,
		MemberID:        testMemberID,
		EventID:         testEventID,
		Title:           "Demo",
		DurationMinutes: 5,
		Status:          domain.SlotStatusPending,
	}
}

func authedRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := middleware.SetMemberID(req.Context(), testMemberID)
	return req.WithContext(ctx)
}

func TestDemoSlotController_RequestSlot_Success(t *testing.T) {
	svc := &mockDemoSlotService{slot: pendingTestSlot()}
	ctrl := NewDemoSlotController(testControllerLogger(), svc)

	req := authedRequest(http.MethodPost, "/events/"+testEventID+"/demo-slots", `{"title":"Demo"}`)
	req.SetPathValue("eventID", testEventID)
	w := httptest.NewRecorder()

	ctrl.RequestSlot(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	if svc.gotActingMemberID != testMemberID {
		t.Fatalf("expected acting member %s, got %s", testMemberID, svc.gotActingMemberID)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
}

func TestDemoSlotController_RequestSlot_Unauthorized(t *testing.T) {
	ctrl := NewDemoSlotController(testControllerLogger(), &mockDemoSlotService{slot: pendingTestSlot()})

	req := httptest.NewRequest(http.MethodPost, "/events/"+testEventID+"/demo-slots", strings.NewReader(`{"title":"Demo"}`))
	req.SetPathValue("eventID", testEventID)
	w := httptest.NewRecorder()

	ctrl.RequestSlot(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestDemoSlotController_RequestSlot_MissingTitle(t *testing.T) {
	ctrl := NewDemoSlotController(testControllerLogger(), &mockDemoSlotService{})

	req := authedRequest(http.MethodPost, "/events/"+testEventID+"/demo-slots", `{"title":"  "}`)
	req.SetPathValue("eventID", testEventID)
	w := httptest.NewRecorder()

	ctrl.RequestSlot(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestDemoSlotController_RequestSlot_EventNotFound(t *testing.T) {
	ctrl := NewDemoSlotController(testControllerLogger(), &mockDemoSlotService{err: domain.ErrNotFound})

	req := authedRequest(http.MethodPost, "/events/"+testEventID+"/demo-slots", `{"title":"Demo"}`)
	req.SetPathValue("eventID", testEventID)
	w := httptest.NewRecorder()

	ctrl.RequestSlot(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error == nil || resp.Error.Message != "member or event not found" {
		t.Fatalf("unexpected error payload: %+v", resp.Error)
	}
}

func TestDemoSlotController_TransitionSlot_Success(t *testing.T) {
	confirmed := pendingTestSlot()
	confirmed.Status = domain.SlotStatusConfirmed
	confirmed.ConfirmedByOrganizer = true
	svc := &mockDemoSlotService{slot: confirmed}
	ctrl := NewDemoSlotController(testControllerLogger(), svc)

	req := authedRequest(http.MethodPatch, "/demo-slots/"+testSlotID+"/status", `{"status":"confirmed"}`)
	req.SetPathValue("slotID", testSlotID)
	w := httptest.NewRecorder()

	ctrl.TransitionSlot(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if svc.gotStatus != domain.SlotStatusConfirmed {
		t.Fatalf("expected service to receive confirmed, got %q", svc.gotStatus)
	}
}

func TestDemoSlotController_TransitionSlot_UnknownStatus(t *testing.T) {
	ctrl := NewDemoSlotController(testControllerLogger(), &mockDemoSlotService{})

	req := authedRequest(http.MethodPatch, "/demo-slots/"+testSlotID+"/status", `{"status":"archived"}`)
	req.SetPathValue("slotID", testSlotID)
	w := httptest.NewRecorder()

	ctrl.TransitionSlot(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestDemoSlotController_TransitionSlot_Forbidden(t *testing.T) {
	ctrl := NewDemoSlotController(testControllerLogger(), &mockDemoSlotService{err: domain.ErrForbidden})

	req := authedRequest(http.MethodPatch, "/demo-slots/"+testSlotID+"/status", `{"status":"confirmed"}`)
	req.SetPathValue("slotID", testSlotID)
	w := httptest.NewRecorder()

	ctrl.TransitionSlot(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestDemoSlotController_GetSlot_InvalidID(t *testing.T) {
	ctrl := NewDemoSlotController(testControllerLogger(), &mockDemoSlotService{})

	req := authedRequest(http.MethodGet, "/demo-slots/not-a-uuid", "")
	req.SetPathValue("slotID", "not-a-uuid")
	w := httptest.NewRecorder()

	ctrl.GetSlot(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestDemoSlotController_ListMySlots_InvalidStatusFilter(t *testing.T) {
	ctrl := NewDemoSlotController(testControllerLogger(), &mockDemoSlotService{slot: pendingTestSlot()})

	req := authedRequest(http.MethodGet, "/members/me/demo-slots?status=archived", "")
	w := httptest.NewRecorder()

	ctrl.ListMySlots(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestDemoSlotController_ListMySlots_Success(t *testing.T) {
	ctrl := NewDemoSlotController(testControllerLogger(), &mockDemoSlotService{slot: pendingTestSlot()})

	req := authedRequest(http.MethodGet, "/members/me/demo-slots?status=pending", "")
	w := httptest.NewRecorder()

	ctrl.ListMySlots(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
}
