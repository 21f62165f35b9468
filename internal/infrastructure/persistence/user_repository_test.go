package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gadgetstore/backend/internal/domain/identity"
	"github.com/gadgetstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockUserRepository creates a GormUserRepository with a mocked SQL connection
func newMockUserRepository(t *testing.T) (*GormUserRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormUserRepository(gormDB), mock, mockDB
}

func TestNewGormUserRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormUserRepository_FindByEmail(t *testing.T) {
	t.Run("finds existing user", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "email", "username", "full_name", "password_hash", "role", "version", "created_at"}).
			AddRow(userID, "buyer@example.com", "jordan", "Jordan Buyer", "$2a$12$hash", "user", 1, time.Now())

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("buyer@example.com", 1).
			WillReturnRows(rows)

		user, err := repo.FindByEmail(context.Background(), "Buyer@Example.com ")

		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, identity.RoleUser, user.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown email", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ghost@example.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.FindByEmail(context.Background(), "ghost@example.com")

		assert.Nil(t, user)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty email", func(t *testing.T) {
		repo, _, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		_, err := repo.FindByEmail(context.Background(), "")

		assert.Error(t, err)
	})
}

func TestGormUserRepository_ExistsByEmail(t *testing.T) {
	t.Run("reports existing email", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
			WithArgs("buyer@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByEmail(context.Background(), "buyer@example.com")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_Update(t *testing.T) {
	t.Run("returns concurrency conflict when version moved on", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		user, err := identity.NewUser("buyer@example.com", "password123", "Jordan Buyer", "jordan", "")
		require.NoError(t, err)
		user.Version = 3

		mock.ExpectExec(`UPDATE "users" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Update(context.Background(), user)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTranslateUniqueViolation(t *testing.T) {
	t.Run("maps postgres unique violation to duplicate email", func(t *testing.T) {
		err := translateUniqueViolation(&pq.Error{Code: pgUniqueViolation})

		assert.Equal(t, ErrDuplicateEmail, err)
	})

	t.Run("maps gorm duplicated key to duplicate email", func(t *testing.T) {
		err := translateUniqueViolation(gorm.ErrDuplicatedKey)

		assert.Equal(t, ErrDuplicateEmail, err)
	})

	t.Run("passes other errors through", func(t *testing.T) {
		err := translateUniqueViolation(gorm.ErrInvalidData)

		assert.Equal(t, gorm.ErrInvalidData, err)
	})
}
