package domain

import (
	"context"
	"time"
)

// Member represents a community member profile.
// swagger:model Member
type Member struct {
	ID          string    `json:"id"`
	AuthID      string    `json:"auth_id,omitempty"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio,omitempty"`
	Skills      []string  `json:"skills,omitempty"`
	GithubURL   string    `json:"github_url,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	// Password credentials are set only for admin accounts provisioned with
	// a password; regular members sign in with one-time codes.
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewMember returns a new Member with the given fields. ID is typically set by the repository on create.
func NewMember(email, displayName string, createdAt, updatedAt time.Time) *Member {
	return &Member{
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// MemberUpdate holds the mutable profile fields. Nil pointers are left unchanged.
type MemberUpdate struct {
	DisplayName *string
	Bio         *string
	Skills      []string
	GithubURL   *string
	AvatarURL   *string
}

// MemberRepository defines the interface for member profile storage.
type MemberRepository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id string) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	GetByAuthID(ctx context.Context, authID string) (*Member, error)
	Update(ctx context.Context, id string, upd MemberUpdate) (*Member, error)
	List(ctx context.Context, params PaginationParams) ([]*Member, int, error)
	AssignRole(ctx context.Context, memberID, roleID string) error
}

// MemberService defines member profile operations.
type MemberService interface {
	GetByID(ctx context.Context, id string) (*Member, error)
	GetByAuthID(ctx context.Context, authID string) (*Member, error)
	UpdateProfile(ctx context.Context, memberID string, upd MemberUpdate) (*Member, error)
	List(ctx context.Context, params PaginationParams) ([]*Member, int, error)
	// NewAvatarUpload returns a presigned upload URL and the public URL the
	// avatar will be served from once uploaded.
	NewAvatarUpload(ctx context.Context, memberID, contentType string) (uploadURL, publicURL string, err error)
}
