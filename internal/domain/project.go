package domain

import (
	"context"
	"time"
)

// Project represents a member's showcased project.
// swagger:model Project
type Project struct {
	ID            string    `json:"id"`
	MemberID      string    `json:"member_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	URL           string    `json:"url,omitempty"`
	ScreenshotURL string    `json:"screenshot_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProjectUpdate holds the mutable project fields. Nil pointers are left unchanged.
type ProjectUpdate struct {
	Title         *string
	Description   *string
	URL           *string
	ScreenshotURL *string
}

// ProjectRepository defines the interface for project storage.
type ProjectRepository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	ListByMember(ctx context.Context, memberID string) ([]*Project, error)
	List(ctx context.Context, params PaginationParams) ([]*Project, int, error)
	Update(ctx context.Context, id string, upd ProjectUpdate) (*Project, error)
	Delete(ctx context.Context, id string) error
}

// ProjectService defines project showcase operations. Mutations are limited
// to the owning member or an admin.
type ProjectService interface {
	Create(ctx context.Context, memberID, title, description, url string) (*Project, error)
	GetByID(ctx context.Context, id string) (*Project, error)
	ListByMember(ctx context.Context, memberID string) ([]*Project, error)
	List(ctx context.Context, params PaginationParams) ([]*Project, int, error)
	Update(ctx context.Context, id, actingMemberID string, upd ProjectUpdate) (*Project, error)
	Delete(ctx context.Context, id, actingMemberID string) error
	// NewScreenshotUpload returns a presigned upload URL and the public URL
	// for a project screenshot.
	NewScreenshotUpload(ctx context.Context, id, actingMemberID, contentType string) (uploadURL, publicURL string, err error)
}
