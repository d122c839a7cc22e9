package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hellomiami/internal/domain"
)

var screenshotContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type projectService struct {
	projectRepo domain.ProjectRepository
	roleRepo    domain.RoleRepository
	media       domain.MediaStore
}

// NewProjectService creates a ProjectService with the given repositories and media store.
func NewProjectService(projectRepo domain.ProjectRepository, roleRepo domain.RoleRepository, media domain.MediaStore) domain.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		roleRepo:    roleRepo,
		media:       media,
	}
}

func (s *projectService) Create(ctx context.Context, memberID, title, description, url string) (*domain.Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if memberID == "" {
		return nil, fmt.Errorf("%w: member id is required", domain.ErrInvalidInput)
	}

	now := time.Now()
	project := &domain.Project{
		MemberID:    memberID,
		Title:       title,
		Description: strings.TrimSpace(description),
		URL:         strings.TrimSpace(url),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

func (s *projectService) ListByMember(ctx context.Context, memberID string) ([]*domain.Project, error) {
	projects, err := s.projectRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Project, int, error) {
	projects, total, err := s.projectRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	return projects, total, nil
}

func (s *projectService) Update(ctx context.Context, id, actingMemberID string, upd domain.ProjectUpdate) (*domain.Project, error) {
	if err := s.authorize(ctx, id, actingMemberID); err != nil {
		return nil, err
	}
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
		}
		upd.Title = &title
	}
	project, err := s.projectRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id, actingMemberID string) error {
	if err := s.authorize(ctx, id, actingMemberID); err != nil {
		return err
	}
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func (s *projectService) NewScreenshotUpload(ctx context.Context, id, actingMemberID, contentType string) (string, string, error) {
	ext, ok := screenshotContentTypes[contentType]
	if !ok {
		return "", "", fmt.Errorf("%w: unsupported content type %q", domain.ErrInvalidInput, contentType)
	}
	if err := s.authorize(ctx, id, actingMemberID); err != nil {
		return "", "", err
	}
	key := fmt.Sprintf("projects/%s/%d%s", id, time.Now().UnixNano(), ext)
	uploadURL, err := s.media.PresignUpload(ctx, key, contentType)
	if err != nil {
		return "", "", fmt.Errorf("presign screenshot upload: %w", err)
	}
	publicURL := s.media.PublicURL(key)
	if _, err := s.projectRepo.Update(ctx, id, domain.ProjectUpdate{ScreenshotURL: &publicURL}); err != nil {
		return "", "", fmt.Errorf("store screenshot url: %w", err)
	}
	return uploadURL, publicURL, nil
}

// authorize loads the project and checks the caller is its owner or an admin.
func (s *projectService) authorize(ctx context.Context, projectID, actingMemberID string) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get project: %w", err)
	}
	if project.MemberID == actingMemberID {
		return nil
	}
	roles, err := s.roleRepo.ListByMemberID(ctx, actingMemberID)
	if err != nil {
		return fmt.Errorf("check admin role: %w", err)
	}
	for _, r := range roles {
		if r.Code == domain.RoleAdmin {
			return nil
		}
	}
	return domain.ErrForbidden
}
