package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"hellomiami/internal/delivery/http/helpers"
	"hellomiami/internal/delivery/http/middleware"
	"hellomiami/internal/domain"
)

type SurveyController struct {
	Logger  *slog.Logger
	Service domain.SurveyService
}

func NewSurveyController(logger *slog.Logger, svc domain.SurveyService) *SurveyController {
	return &SurveyController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSurveyRequest is the request body for POST /surveys.
type CreateSurveyRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   json.RawMessage `json:"questions"`
}

// Validate implements helpers.Validator.
func (s CreateSurveyRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Title) == "" {
		errs = append(errs, "title is required")
	}
	if len(s.Questions) == 0 {
		errs = append(errs, "questions is required")
	}
	return errs
}

// CreateSurvey godoc
// @Summary Create a survey
// @Description Creates an open survey with a JSON questions document. Admin role required.
// @Tags surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateSurveyRequest true "Survey data"
// @Success 201 {object} helpers.APIResponse "data contains the created survey"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /surveys [post]
func (c *SurveyController) CreateSurvey(w http.ResponseWriter, r *http.Request) {
	var req CreateSurveyRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	survey, err := c.Service.CreateSurvey(r.Context(), req.Title, req.Description, req.Questions)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, survey)
}

// ListOpenSurveys godoc
// @Summary List open surveys
// @Tags surveys
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is an array of surveys"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /surveys [get]
func (c *SurveyController) ListOpenSurveys(w http.ResponseWriter, r *http.Request) {
	surveys, err := c.Service.ListOpenSurveys(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if surveys == nil {
		surveys = []*domain.Survey{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, surveys)
}

// SubmitResponseRequest is the request body for POST /surveys/{surveyID}/responses.
type SubmitResponseRequest struct {
	Answers json.RawMessage `json:"answers"`
}

// Validate implements helpers.Validator.
func (s SubmitResponseRequest) Validate() []string {
	if len(s.Answers) == 0 {
		return []string{"answers is required"}
	}
	return nil
}

// SubmitResponse godoc
// @Summary Submit a survey response
// @Description Saves the authenticated member's answers for an open survey. Resubmitting replaces the previous response.
// @Tags surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param surveyID path string true "Survey ID (UUID)"
// @Param body body SubmitResponseRequest true "JSON answers document"
// @Success 200 {object} helpers.APIResponse "data contains the saved response"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /surveys/{surveyID}/responses [post]
func (c *SurveyController) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("surveyID")
	if !uuidRegex.MatchString(surveyID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid surveyID")
		return
	}
	var req SubmitResponseRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	resp, err := c.Service.SubmitResponse(r.Context(), surveyID, memberID, req.Answers)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "survey not found")
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
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}

// ListResponses godoc
// @Summary List survey responses
// @Description Returns all responses for a survey. Admin role required.
// @Tags surveys
// @Produce json
// @Security BearerAuth
// @Param surveyID path string true "Survey ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is an array of responses"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /surveys/{surveyID}/responses [get]
func (c *SurveyController) ListResponses(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("surveyID")
	if !uuidRegex.MatchString(surveyID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid surveyID")
		return
	}
	responses, err := c.Service.ListResponses(r.Context(), surveyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "survey not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if responses == nil {
		responses = []*domain.SurveyResponse{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, responses)
}
