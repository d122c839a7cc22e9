package postgres

import (
	"context"
	"database/sql"
	"errors"

	"hellomiami/internal/domain"
)

type surveyRepository struct {
	DB *sql.DB
}

// NewSurveyRepository returns a domain.SurveyRepository implemented with Postgres.
func NewSurveyRepository(db *sql.DB) domain.SurveyRepository {
	return &surveyRepository{DB: db}
}

func (r *surveyRepository) CreateSurvey(ctx context.Context, s *domain.Survey) error {
	query := `
		INSERT INTO surveys (title, description, questions, open, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		s.Title, s.Description, []byte(s.Questions), s.Open, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
}

func (r *surveyRepository) GetSurveyByID(ctx context.Context, id string) (*domain.Survey, error) {
	query := `
		SELECT id, title, description, questions, open, created_at, updated_at
		FROM surveys
		WHERE id = $1
	`
	s := &domain.Survey{}
	var descNull sql.NullString
	var questions []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Title, &descNull, &questions, &s.Open, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if descNull.Valid {
		s.Description = descNull.String
	}
	s.Questions = questions
	return s, nil
}

func (r *surveyRepository) ListSurveys(ctx context.Context, openOnly bool) ([]*domain.Survey, error) {
	query := `
		SELECT id, title, description, questions, open, created_at, updated_at
		FROM surveys
	`
	if openOnly {
		query += ` WHERE open = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	surveys := make([]*domain.Survey, 0)
	for rows.Next() {
		s := &domain.Survey{}
		var descNull sql.NullString
		var questions []byte
		if err := rows.Scan(&s.ID, &s.Title, &descNull, &questions, &s.Open, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if descNull.Valid {
			s.Description = descNull.String
		}
		s.Questions = questions
		surveys = append(surveys, s)
	}
	return surveys, rows.Err()
}

func (r *surveyRepository) UpsertResponse(ctx context.Context, resp *domain.SurveyResponse) error {
	query := `
		INSERT INTO survey_responses (survey_id, member_id, answers, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (survey_id, member_id)
		DO UPDATE SET answers = EXCLUDED.answers, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`
	return r.DB.QueryRowContext(ctx, query,
		resp.SurveyID, resp.MemberID, []byte(resp.Answers), resp.CreatedAt, resp.UpdatedAt,
	).Scan(&resp.ID, &resp.CreatedAt)
}

func (r *surveyRepository) ListResponses(ctx context.Context, surveyID string) ([]*domain.SurveyResponse, error) {
	query := `
		SELECT id, survey_id, member_id, answers, created_at, updated_at
		FROM survey_responses
		WHERE survey_id = $1
		ORDER BY created_at
	`
	rows, err := r.DB.QueryContext(ctx, query, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]*domain.SurveyResponse, 0)
	for rows.Next() {
		resp := &domain.SurveyResponse{}
		var answers []byte
		if err := rows.Scan(&resp.ID, &resp.SurveyID, &resp.MemberID, &answers, &resp.CreatedAt, &resp.UpdatedAt); err != nil {
			return nil, err
		}
		resp.Answers = answers
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}
