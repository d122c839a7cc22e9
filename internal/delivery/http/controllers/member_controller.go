package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"hellomiami/internal/delivery/http/helpers"
	"hellomiami/internal/delivery/http/middleware"
	"hellomiami/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

type MemberController struct {
	Logger  *slog.Logger
	Service domain.MemberService
}

func NewMemberController(logger *slog.Logger, svc domain.MemberService) *MemberController {
	return &MemberController{
		Logger:  logger,
		Service: svc,
	}
}

// GetMe godoc
// @Summary Get the current member's profile
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the member"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /members/me [get]
func (c *MemberController) GetMe(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	member, err := c.Service.GetByID(r.Context(), memberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "member not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, member)
}

// GetMember godoc
// @Summary Get a member profile by ID
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param memberID path string true "Member ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /members/{memberID} [get]
func (c *MemberController) GetMember(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("memberID")
	if !uuidRegex.MatchString(memberID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid memberID")
		return
	}
	member, err := c.Service.GetByID(r.Context(), memberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "member not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, member)
}

// ListMembers godoc
// @Summary List member profiles
// @Description Returns a paginated directory of member profiles.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains members and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /members [get]
func (c *MemberController) ListMembers(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	members, total, err := c.Service.List(r.Context(), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if members == nil {
		members = []*domain.Member{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]any{
		"members":    members,
		"pagination": helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// UpdateMeRequest is the request body for PATCH /members/me.
// Omitted fields are left unchanged.
type UpdateMeRequest struct {
	DisplayName *string  `json:"display_name"`
	Bio         *string  `json:"bio"`
	Skills      []string `json:"skills"`
	GithubURL   *string  `json:"github_url"`
}

// Validate implements helpers.Validator.
func (u UpdateMeRequest) Validate() []string {
	var errs []string
	if u.DisplayName != nil && strings.TrimSpace(*u.DisplayName) == "" {
		errs = append(errs, "display_name cannot be empty")
	}
	if u.GithubURL != nil {
		gh := strings.TrimSpace(*u.GithubURL)
		if gh != "" && !strings.HasPrefix(gh, "https://github.com/") {
			errs = append(errs, "github_url must start with https://github.com/")
		}
	}
	return errs
}

// UpdateMe godoc
// @Summary Update the current member's profile
// @Description Partially updates the authenticated member's profile. Omitted fields are unchanged.
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateMeRequest true "Profile fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /members/me [patch]
func (c *MemberController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req UpdateMeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	member, err := c.Service.UpdateProfile(r.Context(), memberID, domain.MemberUpdate{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Skills:      req.Skills,
		GithubURL:   req.GithubURL,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "member not found")
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
	helpers.WriteJSONSuccess(w, http.StatusOK, member)
}

// AvatarUploadRequest is the request body for POST /members/me/avatar.
type AvatarUploadRequest struct {
	ContentType string `json:"content_type"`
}

// Validate implements helpers.Validator.
func (a AvatarUploadRequest) Validate() []string {
	if strings.TrimSpace(a.ContentType) == "" {
		return []string{"content_type is required"}
	}
	return nil
}

// UploadURLResponse is the response body for presigned upload endpoints.
type UploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

// NewAvatarUpload godoc
// @Summary Get a presigned avatar upload URL
// @Description Returns a presigned PUT URL the client uploads the avatar image to, plus the public URL it will be served from.
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AvatarUploadRequest true "Image content type (image/jpeg, image/png, image/webp)"
// @Success 200 {object} helpers.APIResponse "data contains upload_url and public_url"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /members/me/avatar [post]
func (c *MemberController) NewAvatarUpload(w http.ResponseWriter, r *http.Request) {
	var req AvatarUploadRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	uploadURL, publicURL, err := c.Service.NewAvatarUpload(r.Context(), memberID, req.ContentType)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "member not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, UploadURLResponse{UploadURL: uploadURL, PublicURL: publicURL})
}
