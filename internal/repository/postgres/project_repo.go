package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hellomiami/internal/domain"
)

type projectRepository struct {
	DB *sql.DB
}

// NewProjectRepository returns a domain.ProjectRepository implemented with Postgres.
func NewProjectRepository(db *sql.DB) domain.ProjectRepository {
	return &projectRepository{DB: db}
}

const projectColumns = `id, member_id, title, description, url, screenshot_url, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*domain.Project, error) {
	p := &domain.Project{}
	var descNull, urlNull, shotNull sql.NullString
	err := row.Scan(&p.ID, &p.MemberID, &p.Title, &descNull, &urlNull, &shotNull, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if descNull.Valid {
		p.Description = descNull.String
	}
	if urlNull.Valid {
		p.URL = urlNull.String
	}
	if shotNull.Valid {
		p.ScreenshotURL = shotNull.String
	}
	return p, nil
}

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	query := `
		INSERT INTO projects (member_id, title, description, url, screenshot_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		p.MemberID, p.Title, p.Description, p.URL, p.ScreenshotURL, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE id = $1
	`
	p, err := scanProject(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *projectRepository) ListByMember(ctx context.Context, memberID string) ([]*domain.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE member_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *projectRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Project, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + projectColumns + `
		FROM projects
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}
	return projects, total, rows.Err()
}

func (r *projectRepository) Update(ctx context.Context, id string, upd domain.ProjectUpdate) (*domain.Project, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if upd.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *upd.Title)
		n++
	}
	if upd.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *upd.Description)
		n++
	}
	if upd.URL != nil {
		setClauses = append(setClauses, fmt.Sprintf("url = $%d", n))
		args = append(args, *upd.URL)
		n++
	}
	if upd.ScreenshotURL != nil {
		setClauses = append(setClauses, fmt.Sprintf("screenshot_url = $%d", n))
		args = append(args, *upd.ScreenshotURL)
		n++
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE projects SET %s
		WHERE id = $%d
		RETURNING `+projectColumns+`
	`, strings.Join(setClauses, ", "), n)
	p, err := scanProject(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
