package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hellomiami/internal/domain"
)

type demoSlotRepository struct {
	DB *sql.DB
}

// NewDemoSlotRepository returns a domain.DemoSlotRepository implemented with Postgres.
func NewDemoSlotRepository(db *sql.DB) domain.DemoSlotRepository {
	return &demoSlotRepository{DB: db}
}

const demoSlotColumns = `id, member_id, event_id, title, description, requested_time, duration_minutes, status, confirmed_by_organizer, created_at, updated_at`

func scanDemoSlot(row interface{ Scan(...any) error }) (*domain.DemoSlot, error) {
	s := &domain.DemoSlot{}
	var descNull, timeNull sql.NullString
	err := row.Scan(
		&s.ID, &s.MemberID, &s.EventID, &s.Title, &descNull, &timeNull,
		&s.DurationMinutes, &s.Status, &s.ConfirmedByOrganizer, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if descNull.Valid {
		s.Description = descNull.String
	}
	if timeNull.Valid {
		s.RequestedTime = timeNull.String
	}
	return s, nil
}

func (r *demoSlotRepository) Create(ctx context.Context, slot *domain.DemoSlot) error {
	query := `
		INSERT INTO demo_slots (member_id, event_id, title, description, requested_time, duration_minutes, status, confirmed_by_organizer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		slot.MemberID, slot.EventID, slot.Title, slot.Description, slot.RequestedTime,
		slot.DurationMinutes, slot.Status, slot.ConfirmedByOrganizer, slot.CreatedAt, slot.UpdatedAt,
	).Scan(&slot.ID)
}

func (r *demoSlotRepository) GetByID(ctx context.Context, id string) (*domain.DemoSlot, error) {
	query := `
		SELECT ` + demoSlotColumns + `
		FROM demo_slots
		WHERE id = $1
	`
	slot, err := scanDemoSlot(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return slot, nil
}

func (r *demoSlotRepository) ListByEvent(ctx context.Context, eventID string, status *domain.SlotStatus) ([]*domain.DemoSlot, error) {
	return r.list(ctx, "event_id", eventID, status)
}

func (r *demoSlotRepository) ListByMember(ctx context.Context, memberID string, status *domain.SlotStatus) ([]*domain.DemoSlot, error) {
	return r.list(ctx, "member_id", memberID, status)
}

func (r *demoSlotRepository) list(ctx context.Context, keyColumn, keyValue string, status *domain.SlotStatus) ([]*domain.DemoSlot, error) {
	query := `
		SELECT ` + demoSlotColumns + `
		FROM demo_slots
		WHERE ` + keyColumn + ` = $1
	`
	args := []any{keyValue}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]*domain.DemoSlot, 0)
	for rows.Next() {
		slot, err := scanDemoSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func (r *demoSlotRepository) Update(ctx context.Context, id string, upd domain.DemoSlotUpdate) (*domain.DemoSlot, error) {
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
	if upd.RequestedTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("requested_time = $%d", n))
		args = append(args, *upd.RequestedTime)
		n++
	}
	if upd.DurationMinutes != nil {
		setClauses = append(setClauses, fmt.Sprintf("duration_minutes = $%d", n))
		args = append(args, *upd.DurationMinutes)
		n++
	}
	if upd.Status != nil {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", n))
		args = append(args, *upd.Status)
		n++
	}
	if upd.ConfirmedByOrganizer != nil {
		setClauses = append(setClauses, fmt.Sprintf("confirmed_by_organizer = $%d", n))
		args = append(args, *upd.ConfirmedByOrganizer)
		n++
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE demo_slots SET %s
		WHERE id = $%d
		RETURNING `+demoSlotColumns+`
	`, strings.Join(setClauses, ", "), n)
	slot, err := scanDemoSlot(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return slot, nil
}

func (r *demoSlotRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM demo_slots WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
