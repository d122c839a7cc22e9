package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"hellomiami/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var slotColumns = []string{
	"id", "member_id", "event_id", "title", "description", "requested_time",
	"duration_minutes", "status", "confirmed_by_organizer", "created_at", "updated_at",
}

func TestDemoSlotRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 3, 5, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		slot    *domain.DemoSlot
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success",
			slot: &domain.DemoSlot{
				MemberID:        "member-1",
				EventID:         "event-1",
				Title:           "Tiny compiler",
				DurationMinutes: 5,
				Status:          domain.SlotStatusPending,
				CreatedAt:       createdAt,
				UpdatedAt:       createdAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO demo_slots \(member_id, event_id, title, description, requested_time, duration_minutes, status, confirmed_by_organizer, created_at, updated_at\)`).
					WithArgs("member-1", "event-1", "Tiny compiler", "", "", 5, domain.SlotStatusPending, false, createdAt, createdAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("slot-uuid-1"))
			},
			wantID: "slot-uuid-1",
		},
		{
			name: "db error",
			slot: &domain.DemoSlot{
				MemberID:        "member-1",
				EventID:         "event-1",
				Title:           "Demo",
				DurationMinutes: 5,
				Status:          domain.SlotStatusPending,
				CreatedAt:       createdAt,
				UpdatedAt:       createdAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO demo_slots`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewDemoSlotRepository(db)
			err = repo.Create(ctx, tt.slot)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.slot.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDemoSlotRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 3, 5, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.DemoSlot
		wantErr error
	}{
		{
			name: "found",
			id:   "slot-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM demo_slots`).
					WithArgs("slot-1").
					WillReturnRows(sqlmock.NewRows(slotColumns).
						AddRow("slot-1", "member-1", "event-1", "Tiny compiler", "a demo", "early",
							5, "confirmed", true, at, at))
			},
			want: &domain.DemoSlot{
				ID:                   "slot-1",
				MemberID:             "member-1",
				EventID:              "event-1",
				Title:                "Tiny compiler",
				Description:          "a demo",
				RequestedTime:        "early",
				DurationMinutes:      5,
				Status:               domain.SlotStatusConfirmed,
				ConfirmedByOrganizer: true,
				CreatedAt:            at,
				UpdatedAt:            at,
			},
		},
		{
			name: "not found",
			id:   "slot-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM demo_slots`).
					WithArgs("slot-missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewDemoSlotRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDemoSlotRepository_ListByEvent(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 3, 5, 19, 0, 0, 0, time.UTC)

	t.Run("no filter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM demo_slots\s+WHERE event_id = \$1\s+ORDER BY created_at`).
			WithArgs("event-1").
			WillReturnRows(sqlmock.NewRows(slotColumns).
				AddRow("s1", "m1", "event-1", "First", nil, nil, 5, "pending", false, at, at).
				AddRow("s2", "m2", "event-1", "Second", nil, nil, 10, "confirmed", true, at, at))

		repo := NewDemoSlotRepository(db)
		slots, err := repo.ListByEvent(ctx, "event-1", nil)
		require.NoError(t, err)
		require.Len(t, slots, 2)
		require.Equal(t, "First", slots[0].Title)
		require.Empty(t, slots[0].Description)
		require.Equal(t, domain.SlotStatusConfirmed, slots[1].Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("status filter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		status := domain.SlotStatusPending
		mock.ExpectQuery(`FROM demo_slots\s+WHERE event_id = \$1\s+AND status = \$2\s+ORDER BY created_at`).
			WithArgs("event-1", status).
			WillReturnRows(sqlmock.NewRows(slotColumns).
				AddRow("s1", "m1", "event-1", "First", nil, nil, 5, "pending", false, at, at))

		repo := NewDemoSlotRepository(db)
		slots, err := repo.ListByEvent(ctx, "event-1", &status)
		require.NoError(t, err)
		require.Len(t, slots, 1)
		require.Equal(t, domain.SlotStatusPending, slots[0].Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM demo_slots`).
			WithArgs("event-empty").
			WillReturnRows(sqlmock.NewRows(slotColumns))

		repo := NewDemoSlotRepository(db)
		slots, err := repo.ListByEvent(ctx, "event-empty", nil)
		require.NoError(t, err)
		require.NotNil(t, slots)
		require.Empty(t, slots)
	})
}

func TestDemoSlotRepository_Update(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 3, 5, 19, 0, 0, 0, time.UTC)

	t.Run("status and confirmation", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE demo_slots SET updated_at = NOW\(\), status = \$1, confirmed_by_organizer = \$2\s+WHERE id = \$3`).
			WithArgs(domain.SlotStatusConfirmed, true, "slot-1").
			WillReturnRows(sqlmock.NewRows(slotColumns).
				AddRow("slot-1", "m1", "e1", "Demo", nil, nil, 5, "confirmed", true, at, at))

		status := domain.SlotStatusConfirmed
		confirmed := true
		repo := NewDemoSlotRepository(db)
		got, err := repo.Update(ctx, "slot-1", domain.DemoSlotUpdate{Status: &status, ConfirmedByOrganizer: &confirmed})
		require.NoError(t, err)
		require.Equal(t, domain.SlotStatusConfirmed, got.Status)
		require.True(t, got.ConfirmedByOrganizer)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE demo_slots SET`).
			WillReturnError(sql.ErrNoRows)

		title := "New title"
		repo := NewDemoSlotRepository(db)
		_, err = repo.Update(ctx, "slot-missing", domain.DemoSlotUpdate{Title: &title})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDemoSlotRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM demo_slots WHERE id = \$1`).
			WithArgs("slot-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewDemoSlotRepository(db)
		require.NoError(t, repo.Delete(ctx, "slot-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM demo_slots WHERE id = \$1`).
			WithArgs("slot-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewDemoSlotRepository(db)
		err = repo.Delete(ctx, "slot-missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
