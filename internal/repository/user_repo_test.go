package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockUserRepo(t *testing.T) (*UserSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewUserSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func contains(s, sub string) bool { return strings.Contains(s, sub) }

func TestUserSQLite_Create(t *testing.T) {
	tests := []struct {
		name           string
		email          string
		passwordHash   string
		mockExpect     func(sqlmock.Sqlmock)
		wantID         int
		wantErr        bool
		errContainsStr string
	}{
		{
			name:         "success",
			email:        "alice@example.com",
			passwordHash: "h123",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice@example.com", "h123").
					WillReturnResult(sqlmock.NewResult(42, 1))
			},
			wantID: 42,
		},
		{
			name:         "unique violation",
			email:        "bob@example.com",
			passwordHash: "h456",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("bob@example.com", "h456").
					WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: index 'idx_users_email_ci'"))
			},
			wantErr:        true,
			errContainsStr: "insert user",
		},
		{
			name:         "last insert id error",
			email:        "carol@example.com",
			passwordHash: "h789",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("carol@example.com", "h789").
					WillReturnResult(sqlmock.NewErrorResult(errors.New("no last id")))
			},
			wantErr:        true,
			errContainsStr: "get last insert id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			id, err := repo.Create(context.Background(), tt.email, tt.passwordHash)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.errContainsStr != "" && !contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContainsStr, err.Error())
				}
				if id != 0 {
					t.Fatalf("expected id=0 on error, got %d", id)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.wantID {
				t.Fatalf("expected id=%d, got %d", tt.wantID, id)
			}
		})
	}
}

func TestUserSQLite_Create_MapsUniqueViolation(t *testing.T) {
	repo, mock, cleanup := newMockUserRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WithArgs("dup@example.com", "h").
		WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: index 'idx_users_email_ci'"))

	_, err := repo.Create(context.Background(), "dup@example.com", "h")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !IsUniqueViolation(err) {
		t.Fatalf("expected IsUniqueViolation to detect %q", err.Error())
	}
}

func TestUserSQLite_GetByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "email", "password_hash"}).
			AddRow(7, "alice@example.com", "h123")
		mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
			WithArgs("alice@example.com").
			WillReturnRows(rows)

		u, err := repo.GetByEmail(context.Background(), "alice@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u == nil {
			t.Fatalf("expected user, got nil")
		}
		if u.ID != 7 || u.Email != "alice@example.com" || u.PasswordHash != "h123" {
			t.Fatalf("unexpected user: %+v", u)
		}
	})

	t.Run("not found returns nil, nil", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		u, err := repo.GetByEmail(context.Background(), "nobody@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u != nil {
			t.Fatalf("expected nil user, got %+v", u)
		}
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
			WithArgs("x@example.com").
			WillReturnError(errors.New("db down"))

		if _, err := repo.GetByEmail(context.Background(), "x@example.com"); err == nil {
			t.Fatalf("expected error, got nil")
		}
	})
}

func TestUserSQLite_EmailExists(t *testing.T) {
	cases := []struct {
		name   string
		email  string
		exists bool
	}{
		{name: "exists", email: "alice@example.com", exists: true},
		{name: "missing", email: "nobody@example.com", exists: false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t)
			defer cleanup()

			rows := sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists)
			mock.ExpectQuery(regexp.QuoteMeta(emailExistsSQL)).
				WithArgs(tt.email).
				WillReturnRows(rows)

			got, err := repo.EmailExists(context.Background(), tt.email)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.exists {
				t.Fatalf("expected exists=%v, got %v", tt.exists, got)
			}
		})
	}
}
