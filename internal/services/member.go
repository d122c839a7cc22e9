package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hellomiami/internal/domain"
)

var avatarContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type memberService struct {
	memberRepo domain.MemberRepository
	media      domain.MediaStore
}

// NewMemberService creates a MemberService with the given repository and media store.
func NewMemberService(memberRepo domain.MemberRepository, media domain.MediaStore) domain.MemberService {
	return &memberService{
		memberRepo: memberRepo,
		media:      media,
	}
}

func (s *memberService) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return member, nil
}

func (s *memberService) GetByAuthID(ctx context.Context, authID string) (*domain.Member, error) {
	if authID == "" {
		return nil, fmt.Errorf("%w: auth id is required", domain.ErrInvalidInput)
	}
	member, err := s.memberRepo.GetByAuthID(ctx, authID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get member by auth id: %w", err)
	}
	return member, nil
}

func (s *memberService) UpdateProfile(ctx context.Context, memberID string, upd domain.MemberUpdate) (*domain.Member, error) {
	if upd.DisplayName != nil {
		name := strings.TrimSpace(*upd.DisplayName)
		if name == "" {
			return nil, fmt.Errorf("%w: display name cannot be empty", domain.ErrInvalidInput)
		}
		upd.DisplayName = &name
	}
	if upd.Skills != nil {
		cleaned := make([]string, 0, len(upd.Skills))
		for _, skill := range upd.Skills {
			if skill = strings.TrimSpace(skill); skill != "" {
				cleaned = append(cleaned, skill)
			}
		}
		upd.Skills = cleaned
	}
	member, err := s.memberRepo.Update(ctx, memberID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update member: %w", err)
	}
	return member, nil
}

func (s *memberService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Member, int, error) {
	members, total, err := s.memberRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list members: %w", err)
	}
	return members, total, nil
}

func (s *memberService) NewAvatarUpload(ctx context.Context, memberID, contentType string) (string, string, error) {
	ext, ok := avatarContentTypes[contentType]
	if !ok {
		return "", "", fmt.Errorf("%w: unsupported content type %q", domain.ErrInvalidInput, contentType)
	}
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", domain.ErrNotFound
		}
		return "", "", fmt.Errorf("get member: %w", err)
	}
	key := fmt.Sprintf("avatars/%s/%d%s", memberID, time.Now().UnixNano(), ext)
	uploadURL, err := s.media.PresignUpload(ctx, key, contentType)
	if err != nil {
		return "", "", fmt.Errorf("presign avatar upload: %w", err)
	}
	return uploadURL, s.media.PublicURL(key), nil
}
