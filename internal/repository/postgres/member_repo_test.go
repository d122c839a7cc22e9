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

var memberTestColumns = []string{
	"id", "auth_id", "email", "display_name", "bio", "skills",
	"github_url", "avatar_url", "password_hash", "salt", "created_at", "updated_at",
}

func TestMemberRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO members \(auth_id, email, display_name, bio, skills, github_url, avatar_url, password_hash, salt, created_at, updated_at\)`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("member-uuid-1"))

		member := &domain.Member{
			Email:       "dev@example.com",
			DisplayName: "dev",
			Skills:      []string{"go", "react"},
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
		}
		repo := NewMemberRepository(db)
		require.NoError(t, repo.Create(ctx, member))
		require.Equal(t, "member-uuid-1", member.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO members`).
			WillReturnError(sql.ErrConnDone)

		repo := NewMemberRepository(db)
		err = repo.Create(ctx, &domain.Member{Email: "dev@example.com", DisplayName: "dev"})
		require.Error(t, err)
	})
}

func TestMemberRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		email   string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Member
		wantErr error
	}{
		{
			name:  "found",
			email: "dev@example.com",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM members\s+WHERE email = \$1`).
					WithArgs("dev@example.com").
					WillReturnRows(sqlmock.NewRows(memberTestColumns).
						AddRow("m1", nil, "dev@example.com", "dev", "builder of things", []byte(`{go,react}`),
							"https://github.com/dev", nil, nil, nil, at, at))
			},
			want: &domain.Member{
				ID:          "m1",
				Email:       "dev@example.com",
				DisplayName: "dev",
				Bio:         "builder of things",
				Skills:      []string{"go", "react"},
				GithubURL:   "https://github.com/dev",
				CreatedAt:   at,
				UpdatedAt:   at,
			},
		},
		{
			name:  "not found",
			email: "ghost@example.com",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM members\s+WHERE email = \$1`).
					WithArgs("ghost@example.com").
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
			repo := NewMemberRepository(db)
			got, err := repo.GetByEmail(ctx, tt.email)
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

func TestMemberRepository_Update(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("display name and skills", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE members SET updated_at = NOW\(\), display_name = \$1, skills = \$2\s+WHERE id = \$3`).
			WillReturnRows(sqlmock.NewRows(memberTestColumns).
				AddRow("m1", nil, "dev@example.com", "Dev Rivera", nil, []byte(`{go}`),
					nil, nil, nil, nil, at, at))

		name := "Dev Rivera"
		repo := NewMemberRepository(db)
		got, err := repo.Update(ctx, "m1", domain.MemberUpdate{DisplayName: &name, Skills: []string{"go"}})
		require.NoError(t, err)
		require.Equal(t, "Dev Rivera", got.DisplayName)
		require.Equal(t, []string{"go"}, got.Skills)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE members SET`).
			WillReturnError(sql.ErrNoRows)

		name := "whoever"
		repo := NewMemberRepository(db)
		_, err = repo.Update(ctx, "m-missing", domain.MemberUpdate{DisplayName: &name})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMemberRepository_List(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM members`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
	mock.ExpectQuery(`FROM members\s+ORDER BY created_at DESC\s+LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 20).
		WillReturnRows(sqlmock.NewRows(memberTestColumns).
			AddRow("m1", nil, "a@example.com", "a", nil, []byte(`{}`), nil, nil, nil, nil, at, at).
			AddRow("m2", nil, "b@example.com", "b", nil, []byte(`{}`), nil, nil, nil, nil, at, at))

	repo := NewMemberRepository(db)
	members, total, err := repo.List(ctx, domain.PaginationParams{Page: 2, PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, 42, total)
	require.Len(t, members, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_AssignRole(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO member_roles \(member_id, role_id\)`).
		WithArgs("m1", "role-admin").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewMemberRepository(db)
	require.NoError(t, repo.AssignRole(ctx, "m1", "role-admin"))
	require.NoError(t, mock.ExpectationsWereMet())
}
