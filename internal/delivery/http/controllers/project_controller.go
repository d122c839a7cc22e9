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

type ProjectController struct {
	Logger  *slog.Logger
	Service domain.ProjectService
}

func NewProjectController(logger *slog.Logger, svc domain.ProjectService) *ProjectController {
	return &ProjectController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateProjectRequest is the request body for POST /projects.
type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Validate implements helpers.Validator.
func (p CreateProjectRequest) Validate() []string {
	if strings.TrimSpace(p.Title) == "" {
		return []string{"title is required"}
	}
	return nil
}

// CreateProject godoc
// @Summary Create a project
// @Description Adds a project to the authenticated member's showcase.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateProjectRequest true "Project data"
// @Success 201 {object} helpers.APIResponse "data contains the created project"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects [post]
func (c *ProjectController) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	project, err := c.Service.Create(r.Context(), memberID, req.Title, req.Description, req.URL)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, project)
}

// GetProject godoc
// @Summary Get a project by ID
// @Tags projects
// @Produce json
// @Param projectID path string true "Project ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the project"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects/{projectID} [get]
func (c *ProjectController) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectID")
	if !uuidRegex.MatchString(projectID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid projectID")
		return
	}
	project, err := c.Service.GetByID(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "project not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, project)
}

// ListProjects godoc
// @Summary List showcased projects
// @Description Returns a paginated list of all showcased projects, newest first.
// @Tags projects
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains projects and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects [get]
func (c *ProjectController) ListProjects(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	projects, total, err := c.Service.List(r.Context(), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if projects == nil {
		projects = []*domain.Project{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]any{
		"projects":   projects,
		"pagination": helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// ListMemberProjects godoc
// @Summary List a member's projects
// @Tags projects
// @Produce json
// @Param memberID path string true "Member ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is an array of projects"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /members/{memberID}/projects [get]
func (c *ProjectController) ListMemberProjects(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("memberID")
	if !uuidRegex.MatchString(memberID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid memberID")
		return
	}
	projects, err := c.Service.ListByMember(r.Context(), memberID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if projects == nil {
		projects = []*domain.Project{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, projects)
}

// UpdateProjectRequest is the request body for PATCH /projects/{projectID}.
// Omitted fields are left unchanged.
type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
}

// Validate implements helpers.Validator.
func (u UpdateProjectRequest) Validate() []string {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return []string{"title cannot be empty"}
	}
	return nil
}

// UpdateProject godoc
// @Summary Update a project
// @Description Partially updates a project. Only the owning member or an admin may update.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID (UUID)"
// @Param body body UpdateProjectRequest true "Project fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated project"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects/{projectID} [patch]
func (c *ProjectController) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectID")
	if !uuidRegex.MatchString(projectID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid projectID")
		return
	}
	var req UpdateProjectRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	project, err := c.Service.Update(r.Context(), projectID, memberID, domain.ProjectUpdate{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
	})
	if err != nil {
		c.writeProjectError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, project)
}

// DeleteProject godoc
// @Summary Delete a project
// @Description Removes a project from the showcase. Only the owning member or an admin may delete.
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects/{projectID} [delete]
func (c *ProjectController) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectID")
	if !uuidRegex.MatchString(projectID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid projectID")
		return
	}
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), projectID, memberID); err != nil {
		c.writeProjectError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "project deleted"})
}

// ScreenshotUploadRequest is the request body for POST /projects/{projectID}/screenshot.
type ScreenshotUploadRequest struct {
	ContentType string `json:"content_type"`
}

// Validate implements helpers.Validator.
func (s ScreenshotUploadRequest) Validate() []string {
	if strings.TrimSpace(s.ContentType) == "" {
		return []string{"content_type is required"}
	}
	return nil
}

// NewScreenshotUpload godoc
// @Summary Get a presigned screenshot upload URL
// @Description Returns a presigned PUT URL for a project screenshot and records the public URL on the project. Only the owning member or an admin may upload.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID (UUID)"
// @Param body body ScreenshotUploadRequest true "Image content type (image/jpeg, image/png, image/webp, image/gif)"
// @Success 200 {object} helpers.APIResponse "data contains upload_url and public_url"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects/{projectID}/screenshot [post]
func (c *ProjectController) NewScreenshotUpload(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectID")
	if !uuidRegex.MatchString(projectID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid projectID")
		return
	}
	var req ScreenshotUploadRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	uploadURL, publicURL, err := c.Service.NewScreenshotUpload(r.Context(), projectID, memberID, req.ContentType)
	if err != nil {
		c.writeProjectError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, UploadURLResponse{UploadURL: uploadURL, PublicURL: publicURL})
}

func (c *ProjectController) writeProjectError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "project not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "not allowed to modify this project")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
