package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"hellomiami/internal/delivery/http/helpers"
	"hellomiami/internal/delivery/http/middleware"
	"hellomiami/internal/domain"
)

type DemoSlotController struct {
	Logger  *slog.Logger
	Service domain.DemoSlotService
}

func NewDemoSlotController(logger *slog.Logger, svc domain.DemoSlotService) *DemoSlotController {
	return &DemoSlotController{
		Logger:  logger,
		Service: svc,
	}
}

// RequestSlotRequest is the request body for POST /events/{eventID}/demo-slots.
type RequestSlotRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	RequestedTime   string `json:"requested_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

// Validate implements helpers.Validator.
func (s RequestSlotRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Title) == "" {
		errs = append(errs, "title is required")
	}
	if s.DurationMinutes < 0 {
		errs = append(errs, "duration_minutes cannot be negative")
	}
	return errs
}

// RequestSlot godoc
// @Summary Request a demo slot
// @Description Books a pending demo slot for the authenticated member at the given event. A booking confirmation is emailed to the member and the organizers are alerted; email delivery does not block the response.
// @Tags demo-slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body RequestSlotRequest true "Slot details"
// @Success 201 {object} helpers.APIResponse "data contains the created slot (status pending)"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/demo-slots [post]
func (c *DemoSlotController) RequestSlot(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	var req RequestSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	slot, err := c.Service.RequestSlot(r.Context(), memberID, eventID, req.Title, req.Description, req.RequestedTime, req.DurationMinutes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "member or event not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, slot)
}

// TransitionSlotRequest is the request body for PATCH /demo-slots/{slotID}/status.
type TransitionSlotRequest struct {
	Status string `json:"status"`
}

// Validate implements helpers.Validator.
func (t TransitionSlotRequest) Validate() []string {
	if strings.TrimSpace(t.Status) == "" {
		return []string{"status is required"}
	}
	if !domain.SlotStatus(t.Status).Valid() {
		return []string{"status must be one of: pending, confirmed, canceled"}
	}
	return nil
}

// TransitionSlot godoc
// @Summary Change a demo slot's status
// @Description Moves the slot to pending, confirmed, or canceled. Confirming requires admin; the slot owner may cancel or reset to pending. Confirmation and cancellation email the presenting member without blocking the response.
// @Tags demo-slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slotID path string true "Slot ID (UUID)"
// @Param body body TransitionSlotRequest true "Target status"
// @Success 200 {object} helpers.APIResponse "data contains the updated slot"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /demo-slots/{slotID}/status [patch]
func (c *DemoSlotController) TransitionSlot(w http.ResponseWriter, r *http.Request) {
	slotID := r.PathValue("slotID")
	if !uuidRegex.MatchString(slotID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid slotID")
		return
	}
	var req TransitionSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	slot, err := c.Service.Transition(r.Context(), slotID, memberID, domain.SlotStatus(req.Status))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "slot not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "not allowed to change this slot")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slot)
}

// GetSlot godoc
// @Summary Get a demo slot by ID
// @Tags demo-slots
// @Produce json
// @Security BearerAuth
// @Param slotID path string true "Slot ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the slot"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /demo-slots/{slotID} [get]
func (c *DemoSlotController) GetSlot(w http.ResponseWriter, r *http.Request) {
	slotID := r.PathValue("slotID")
	if !uuidRegex.MatchString(slotID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid slotID")
		return
	}
	slot, err := c.Service.GetByID(r.Context(), slotID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "slot not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slot)
}

// parseStatusFilter reads the optional status query parameter. A missing or
// empty value means no filter; an unknown value is an error.
func parseStatusFilter(r *http.Request) (*domain.SlotStatus, bool) {
	s := strings.TrimSpace(r.URL.Query().Get("status"))
	if s == "" {
		return nil, true
	}
	status := domain.SlotStatus(s)
	if !status.Valid() {
		return nil, false
	}
	return &status, true
}

// ListEventSlots godoc
// @Summary List demo slots for an event
// @Description Returns the event's demo slots with their presenting members, ordered by creation. Admin role required. Optional status filter.
// @Tags demo-slots
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param status query string false "Filter by status (pending, confirmed, canceled)"
// @Success 200 {object} helpers.APIResponse "data is an array of slot + member objects"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/demo-slots [get]
func (c *DemoSlotController) ListEventSlots(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	status, ok := parseStatusFilter(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid status filter")
		return
	}
	slots, err := c.Service.ListByEvent(r.Context(), eventID, status)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if slots == nil {
		slots = []*domain.DemoSlotWithMember{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slots)
}

// ListMySlots godoc
// @Summary List the current member's demo slots
// @Description Returns the authenticated member's demo slots, ordered by creation. Optional status filter.
// @Tags demo-slots
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending, confirmed, canceled)"
// @Success 200 {object} helpers.APIResponse "data is an array of slots"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /members/me/demo-slots [get]
func (c *DemoSlotController) ListMySlots(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	status, ok := parseStatusFilter(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid status filter")
		return
	}
	slots, err := c.Service.ListByMember(r.Context(), memberID, status)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if slots == nil {
		slots = []*domain.DemoSlot{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slots)
}
