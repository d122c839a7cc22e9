package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"hellomiami/internal/domain"
)

const (
	loginCodeDigits     = 6
	loginCodeExpiryMins = 15
)

var (
	emailRegexp    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	loginCodeRegex = regexp.MustCompile(`^\d{6}$`)
)

type authService struct {
	memberRepo    domain.MemberRepository
	roleRepo      domain.RoleRepository
	loginCodeRepo domain.LoginCodeRepository
	hasher        domain.PasswordHasher
	tokenIssuer   domain.TokenIssuer
	tokenExpiry   time.Duration
	notifier      domain.NotificationService
}

// NewAuthService creates an AuthService with the given repositories and auth ports.
func NewAuthService(
	memberRepo domain.MemberRepository,
	roleRepo domain.RoleRepository,
	loginCodeRepo domain.LoginCodeRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	tokenExpiry time.Duration,
	notifier domain.NotificationService,
) domain.AuthService {
	return &authService{
		memberRepo:    memberRepo,
		roleRepo:      roleRepo,
		loginCodeRepo: loginCodeRepo,
		hasher:        hasher,
		tokenIssuer:   tokenIssuer,
		tokenExpiry:   tokenExpiry,
		notifier:      notifier,
	}
}

func (s *authService) RequestLoginCode(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	code, err := generateLoginCode(loginCodeDigits)
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	expiresAt := time.Now().Add(loginCodeExpiryMins * time.Minute)
	if err := s.loginCodeRepo.Create(ctx, email, hashLoginCode(code), expiresAt); err != nil {
		return fmt.Errorf("failed to store login code: %w", err)
	}
	data := &domain.LoginCodeEmailData{
		Email:            email,
		Code:             code,
		ExpiresInMinutes: loginCodeExpiryMins,
	}
	if err := s.notifier.SendLoginCode(ctx, data); err != nil {
		return fmt.Errorf("failed to send login code email: %w", err)
	}
	return nil
}

func (s *authService) VerifyLoginCode(ctx context.Context, email, code string) (string, *domain.Member, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return "", nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	code = strings.TrimSpace(code)
	if !loginCodeRegex.MatchString(code) {
		return "", nil, domain.ErrInvalidCredentials
	}
	consumed, err := s.loginCodeRepo.Consume(ctx, email, hashLoginCode(code))
	if err != nil {
		return "", nil, fmt.Errorf("failed to verify code: %w", err)
	}
	if !consumed {
		return "", nil, domain.ErrInvalidCredentials
	}

	member, err := s.memberRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return "", nil, fmt.Errorf("failed to get member: %w", err)
		}
		// First sign-in: create the profile and assign the member role.
		roleRecord, err := s.roleRepo.GetByCode(ctx, domain.RoleMember)
		if err != nil {
			return "", nil, fmt.Errorf("failed to get role %q: %w", domain.RoleMember, err)
		}
		now := time.Now()
		member = domain.NewMember(email, displayNameFromEmail(email), now, now)
		if err := s.memberRepo.Create(ctx, member); err != nil {
			return "", nil, fmt.Errorf("failed to create member: %w", err)
		}
		if err := s.memberRepo.AssignRole(ctx, member.ID, roleRecord.ID); err != nil {
			return "", nil, fmt.Errorf("failed to assign role: %w", err)
		}
	}

	token, err := s.issueToken(ctx, member)
	if err != nil {
		return "", nil, err
	}
	return token, member, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	member, err := s.memberRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}
	if member.PasswordHash == "" {
		return "", domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(member.PasswordHash, member.Salt, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.issueToken(ctx, member)
}

func (s *authService) issueToken(ctx context.Context, member *domain.Member) (string, error) {
	roles, err := s.roleRepo.ListByMemberID(ctx, member.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load roles: %w", err)
	}
	roleCodes := make([]string, len(roles))
	for i, r := range roles {
		roleCodes[i] = r.Code
	}
	token, err := s.tokenIssuer.Issue(member.ID, member.Email, roleCodes, s.tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func generateLoginCode(digits int) (string, error) {
	const digitspace = "0123456789"
	b := make([]byte, digits)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = digitspace[int(b[i])%len(digitspace)]
	}
	return string(b), nil
}

func hashLoginCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func displayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
