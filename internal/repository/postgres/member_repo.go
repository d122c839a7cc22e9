package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"hellomiami/internal/domain"
)

type memberRepository struct {
	DB *sql.DB
}

// NewMemberRepository returns a domain.MemberRepository implemented with Postgres.
func NewMemberRepository(db *sql.DB) domain.MemberRepository {
	return &memberRepository{DB: db}
}

const memberColumns = `id, auth_id, email, display_name, bio, skills, github_url, avatar_url, password_hash, salt, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }) (*domain.Member, error) {
	m := &domain.Member{}
	var authNull, bioNull, githubNull, avatarNull, hashNull, saltNull sql.NullString
	err := row.Scan(
		&m.ID, &authNull, &m.Email, &m.DisplayName, &bioNull,
		pq.Array(&m.Skills), &githubNull, &avatarNull, &hashNull, &saltNull, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if authNull.Valid {
		m.AuthID = authNull.String
	}
	if hashNull.Valid {
		m.PasswordHash = hashNull.String
	}
	if saltNull.Valid {
		m.Salt = saltNull.String
	}
	if bioNull.Valid {
		m.Bio = bioNull.String
	}
	if githubNull.Valid {
		m.GithubURL = githubNull.String
	}
	if avatarNull.Valid {
		m.AvatarURL = avatarNull.String
	}
	return m, nil
}

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	query := `
		INSERT INTO members (auth_id, email, display_name, bio, skills, github_url, avatar_url, password_hash, salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		m.AuthID, m.Email, m.DisplayName, m.Bio, pq.Array(m.Skills),
		m.GithubURL, m.AvatarURL, m.PasswordHash, m.Salt, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	return r.getBy(ctx, "id", id)
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	return r.getBy(ctx, "email", email)
}

func (r *memberRepository) GetByAuthID(ctx context.Context, authID string) (*domain.Member, error) {
	return r.getBy(ctx, "auth_id", authID)
}

func (r *memberRepository) getBy(ctx context.Context, column, value string) (*domain.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE ` + column + ` = $1
	`
	m, err := scanMember(r.DB.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *memberRepository) Update(ctx context.Context, id string, upd domain.MemberUpdate) (*domain.Member, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if upd.DisplayName != nil {
		setClauses = append(setClauses, fmt.Sprintf("display_name = $%d", n))
		args = append(args, *upd.DisplayName)
		n++
	}
	if upd.Bio != nil {
		setClauses = append(setClauses, fmt.Sprintf("bio = $%d", n))
		args = append(args, *upd.Bio)
		n++
	}
	if upd.Skills != nil {
		setClauses = append(setClauses, fmt.Sprintf("skills = $%d", n))
		args = append(args, pq.Array(upd.Skills))
		n++
	}
	if upd.GithubURL != nil {
		setClauses = append(setClauses, fmt.Sprintf("github_url = $%d", n))
		args = append(args, *upd.GithubURL)
		n++
	}
	if upd.AvatarURL != nil {
		setClauses = append(setClauses, fmt.Sprintf("avatar_url = $%d", n))
		args = append(args, *upd.AvatarURL)
		n++
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE members SET %s
		WHERE id = $%d
		RETURNING `+memberColumns+`
	`, strings.Join(setClauses, ", "), n)
	m, err := scanMember(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *memberRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Member, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + memberColumns + `
		FROM members
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	members := make([]*domain.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, 0, err
		}
		members = append(members, m)
	}
	return members, total, rows.Err()
}

func (r *memberRepository) AssignRole(ctx context.Context, memberID, roleID string) error {
	query := `
		INSERT INTO member_roles (member_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (member_id, role_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, memberID, roleID)
	return err
}
