package postgres

import (
	"errors"
	"testing"
	"time"

	"scales/internal/domain/entity"
	"scales/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserMappers(t *testing.T) {
	id := uuid.New()
	birth := time.Date(1988, 5, 17, 0, 0, 0, 0, time.UTC)
	user := &entity.User{
		ID:           id,
		Email:        "ann@example.com",
		Username:     "ann",
		Name:         "Ann",
		BirthDate:    birth,
		PasswordHash: []byte{1, 2, 3},
		PasswordSalt: []byte{4, 5, 6},
		Roles:        entity.Roles{{ID: entity.RoleIDUser, Name: entity.RoleNameUser}},
		WeightHistory: []entity.WeightHistory{
			{WeighingDate: birth.AddDate(30, 0, 0), Weight: decimal.RequireFromString("72.40")},
		},
	}

	userM := fromUserDomain(user)
	require.NotNil(t, userM)
	assert.Equal(t, []model.RoleModel{{ID: 2, Name: "User"}}, userM.Roles)
	require.Len(t, userM.WeightHistory, 1)
	assert.Equal(t, id, userM.WeightHistory[0].UserID)

	userM.WeightHistory[0].ID = 7
	userM.PointsHistory = []model.PointsHistoryModel{{ID: 1, UserID: id, Points: 12}}

	got := toUserDomain(userM)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, user.BirthDate, got.BirthDate)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)
	assert.Equal(t, []string{"User"}, got.Roles.Names())
	assert.Equal(t, int64(7), got.WeightHistory[0].ID)
	assert.True(t, got.WeightHistory[0].Weight.Equal(decimal.RequireFromString("72.4")))
	assert.Equal(t, 12, got.TotalPoints())

	assert.Nil(t, toUserDomain(nil))
	assert.Nil(t, fromUserDomain(nil))
}

func TestConstraintHelpers(t *testing.T) {
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueConstraintViolation(errors.New(`duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`)))
	assert.False(t, isUniqueConstraintViolation(errors.New("timeout")))

	assert.True(t, isForeignKeyConstraintViolation(gorm.ErrForeignKeyViolated))
	assert.True(t, isForeignKeyConstraintViolation(errors.New("violates foreign key constraint (SQLSTATE 23503)")))

	assert.True(t, isCheckConstraintViolation(gorm.ErrCheckConstraintViolated))
	assert.True(t, isNotNullConstraintViolation(errors.New(`null value in column "email" violates not-null constraint`)))
	assert.False(t, isNotNullConstraintViolation(errors.New("timeout")))
}
