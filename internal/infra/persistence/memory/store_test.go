package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"scales/internal/domain/entity"
	domainerrors "scales/internal/domain/errors"
	"scales/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(email, username string) *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		Name:         "Test User",
		BirthDate:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		PasswordHash: []byte("hash"),
		PasswordSalt: []byte("salt"),
		Roles:        entity.Roles{{ID: entity.RoleIDUser, Name: entity.RoleNameUser}},
		WeightHistory: []entity.WeightHistory{
			{WeighingDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Weight: decimal.NewFromInt(80)},
		},
	}
}

func TestStore_CommitMakesChangesVisible(t *testing.T) {
	ctx := context.Background()
	store := New()
	user := newUser("a@example.com", "alice")

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UserRepo().Create(ctx, user))
	require.NoError(t, tx.Commit())
	require.NoError(t, tx.Rollback())

	got, err := store.UserRepo().FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	require.Len(t, got.WeightHistory, 1)
	assert.NotZero(t, got.WeightHistory[0].ID)
	assert.Equal(t, user.ID, got.WeightHistory[0].UserID)
	assert.Equal(t, got.WeightHistory[0].ID, user.WeightHistory[0].ID)
}

func TestStore_RollbackDiscardsChanges(t *testing.T) {
	ctx := context.Background()
	store := New()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UserRepo().Create(ctx, newUser("a@example.com", "alice")))
	require.NoError(t, tx.Rollback())

	_, err = store.UserRepo().FindByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestStore_FinishedTransactionRejectsWork(t *testing.T) {
	ctx := context.Background()
	store := New()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	assert.Error(t, tx.Commit())
	_, err = tx.UserRepo().FindByID(ctx, uuid.New())
	assert.Error(t, err)
}

func TestStore_CommitHookFailureKeepsOldState(t *testing.T) {
	ctx := context.Background()
	store := New()
	store.SetCommitHook(func() error { return errors.New("disk full") })

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UserRepo().Create(ctx, newUser("a@example.com", "alice")))
	assert.Error(t, tx.Commit())
	require.NoError(t, tx.Rollback())

	_, err = store.UserRepo().FindByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestStore_BeginHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Begin(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUserRepository_UniqueConstraints(t *testing.T) {
	ctx := context.Background()
	repo := New().UserRepo()

	require.NoError(t, repo.Create(ctx, newUser("a@example.com", "alice")))

	err := repo.Create(ctx, newUser("a@example.com", "other"))
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)

	err = repo.Create(ctx, newUser("b@example.com", "alice"))
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserRepository_UnknownRoleRejected(t *testing.T) {
	ctx := context.Background()
	repo := New().UserRepo()
	user := newUser("a@example.com", "alice")
	user.Roles = entity.Roles{{ID: 42, Name: "Ghost"}}

	err := repo.Create(ctx, user)
	assert.ErrorIs(t, err, domainerrors.ErrUserCreationFailed)
}

func TestUserRepository_ReturnsIsolatedCopies(t *testing.T) {
	ctx := context.Background()
	repo := New().UserRepo()
	user := newUser("a@example.com", "alice")
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	got.Name = "Changed"
	got.Roles[0].Name = "Changed"
	got.PasswordHash[0] = 'X'

	again, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test User", again.Name)
	assert.Equal(t, entity.RoleNameUser, again.Roles[0].Name)
	assert.Equal(t, []byte("hash"), again.PasswordHash)
}

func TestUserRepository_UpdateReplacesRolesKeepsHistory(t *testing.T) {
	ctx := context.Background()
	repo := New().UserRepo()
	user := newUser("a@example.com", "alice")
	require.NoError(t, repo.Create(ctx, user))

	user.Name = "Alice"
	user.ClearRoles()
	user.AttachRole(entity.Role{ID: entity.RoleIDAdmin, Name: entity.RoleNameAdmin})
	user.WeightHistory = nil
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, []entity.RoleID{entity.RoleIDAdmin}, got.Roles.IDs())
	assert.Len(t, got.WeightHistory, 1)
}

func TestUserRepository_UpdateMissingUser(t *testing.T) {
	err := New().UserRepo().Update(context.Background(), newUser("a@example.com", "alice"))
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_AddWeight(t *testing.T) {
	ctx := context.Background()
	repo := New().UserRepo()
	user := newUser("a@example.com", "alice")
	require.NoError(t, repo.Create(ctx, user))

	entry := &entity.WeightHistory{
		UserID:       user.ID,
		WeighingDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Weight:       decimal.RequireFromString("79.5"),
	}
	require.NoError(t, repo.AddWeight(ctx, entry))
	assert.NotZero(t, entry.ID)

	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	current, ok := got.CurrentWeight()
	require.True(t, ok)
	assert.True(t, current.Weight.Equal(decimal.RequireFromString("79.5")))

	err = repo.AddWeight(ctx, &entity.WeightHistory{UserID: uuid.New()})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestStore_AddPoints(t *testing.T) {
	ctx := context.Background()
	store := New()
	user := newUser("a@example.com", "alice")
	require.NoError(t, store.UserRepo().Create(ctx, user))

	require.NoError(t, store.AddPoints(entity.PointsHistory{UserID: user.ID, Points: 10}))
	require.NoError(t, store.AddPoints(entity.PointsHistory{UserID: user.ID, Points: 5}))

	got, err := store.UserRepo().FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, got.TotalPoints())
}

func TestRoleRepository(t *testing.T) {
	ctx := context.Background()
	store := New()
	store.AddRole(entity.Role{ID: 3, Name: "Coach"})
	repo := store.RoleRepo()

	roles, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.RoleID{entity.RoleIDAdmin, entity.RoleIDUser, 3}, roles.IDs())

	role, err := repo.FindByName(ctx, entity.RoleNameAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleIDAdmin, role.ID)

	role, err = repo.FindByID(ctx, entity.RoleIDUser)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleNameUser, role.Name)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, repository.ErrRoleNotFound)
	_, err = repo.FindByName(ctx, "Nobody")
	assert.ErrorIs(t, err, repository.ErrRoleNotFound)
}
