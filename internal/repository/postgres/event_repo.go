package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hellomiami/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, start_at, location, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, e.Name, e.StartAt, e.Location, e.Description, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, start_at, location, description, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var locNull, descNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.StartAt, &locNull, &descNull, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if locNull.Valid {
		e.Location = locNull.String
	}
	if descNull.Valid {
		e.Description = descNull.String
	}
	return e, nil
}

func (r *eventRepository) ListUpcoming(ctx context.Context, from time.Time) ([]*domain.Event, error) {
	query := `
		SELECT id, name, start_at, location, description, created_at, updated_at
		FROM events
		WHERE start_at >= $1
		ORDER BY start_at
	`
	rows, err := r.DB.QueryContext(ctx, query, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var locNull, descNull sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &e.StartAt, &locNull, &descNull, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		if locNull.Valid {
			e.Location = locNull.String
		}
		if descNull.Valid {
			e.Description = descNull.String
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
