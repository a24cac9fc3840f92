package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"scales/internal/domain/entity"
	domainerrors "scales/internal/domain/errors"
	"scales/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUpdatedUser() *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Email:        "ann@example.com",
		Username:     "ann",
		Name:         "Ann",
		BirthDate:    time.Date(1988, 5, 17, 0, 0, 0, 0, time.UTC),
		PasswordHash: []byte{1, 2, 3},
		PasswordSalt: []byte{4, 5, 6},
		ModifiedAt:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Roles: entity.Roles{
			{ID: entity.RoleIDAdmin, Name: entity.RoleNameAdmin},
			{ID: entity.RoleIDUser, Name: entity.RoleNameUser},
		},
	}
}

func TestUserRepository_Update_ReplacesRoleLinksOnly(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &userRepository{db: db}
	user := newUpdatedUser()

	mock.ExpectExec(`^UPDATE "users" SET .* WHERE id = \$10$`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "user_roles" ("user_id","role_id") VALUES ($1,$2),($3,$4) ON CONFLICT DO NOTHING`)).
		WithArgs(user.ID, int16(entity.RoleIDAdmin), user.ID, int16(entity.RoleIDUser)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`^DELETE FROM "user_roles" WHERE .*"user_id" = \$1 AND .*"role_id" NOT IN \(\$2,\$3\)$`).
		WithArgs(user.ID, int16(entity.RoleIDAdmin), int16(entity.RoleIDUser)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), user))
	// any statement against "roles" would have been unexpected
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_MissingUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &userRepository{db: db}

	mock.ExpectExec(`^UPDATE "users" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), newUpdatedUser())

	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &userRepository{db: db}

	mock.ExpectExec(`^UPDATE "users" SET`).
		WillReturnError(errors.New(`duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`))

	err := repo.Update(context.Background(), newUpdatedUser())

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &userRepository{db: db}

	mock.ExpectQuery(`^SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	_, err := repo.FindByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
