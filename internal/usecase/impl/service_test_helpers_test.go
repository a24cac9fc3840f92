package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"scales/config"
	"scales/internal/domain/entity"
	"scales/internal/domain/repository"
	"scales/internal/domain/service"
	"scales/internal/infra/auth"
	"scales/internal/infra/persistence/memory"
	"scales/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testPassword = "Abcdef12"
	testEmail    = "a@b.com"
)

var testNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

// testToday is the weighing date recorded for a weighing taken at testNow.
var testToday = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

// cheap argon2 parameters keep the suite fast
var testArgon2Params = auth.Argon2Params{
	Memory:      64,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// accountFixtures holds the service under test and its backing store.
type accountFixtures struct {
	service *accountService
	store   *memory.Store
	hasher  service.CredentialHasher
}

func newAccountFixtures(t *testing.T, cfg *config.Config) accountFixtures {
	t.Helper()

	store := memory.New()
	hasher := auth.NewArgon2HasherWithParams(testArgon2Params)

	srv, ok := NewAccountService(AccountServiceParams{
		TxManager: store,
		UserRepo:  store.UserRepo(),
		RoleRepo:  store.RoleRepo(),
		Hasher:    hasher,
		Config:    cfg,
		Logger:    newDiscardLogger(),
	}).(*accountService)
	require.True(t, ok)
	srv.now = func() time.Time { return testNow }

	return accountFixtures{service: srv, store: store, hasher: hasher}
}

func validRegisterInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Email:     testEmail,
		Name:      "Alice Example",
		Username:  "alice",
		BirthDate: time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC),
		Password:  testPassword,
		Weight:    decimal.RequireFromString("70.0"),
	}
}

// registerUser registers the default test user and returns it as stored.
func (f accountFixtures) registerUser(t *testing.T, input *usecase.RegisterInput) *entity.User {
	t.Helper()

	out, err := f.service.Register(context.Background(), input)
	require.NoError(t, err)

	return f.storedUser(t, out.UserID)
}

func (f accountFixtures) storedUser(t *testing.T, id uuid.UUID) *entity.User {
	t.Helper()

	user, err := f.store.UserRepo().FindByID(context.Background(), id)
	require.NoError(t, err)

	return user
}

func (f accountFixtures) login(t *testing.T, email, password string) *entity.AuthVerdict {
	t.Helper()

	verdict, err := f.service.Login(context.Background(), &usecase.LoginInput{Email: email, Password: password})
	require.NoError(t, err)

	return verdict
}

type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) NewSalt() ([]byte, error) {
	args := m.Called()
	salt, _ := args.Get(0).([]byte)

	return salt, args.Error(1)
}

func (m *mockHasher) Hash(plaintext string, salt []byte) []byte {
	args := m.Called(plaintext, salt)
	digest, _ := args.Get(0).([]byte)

	return digest
}

type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) Begin(ctx context.Context) (repository.Transaction, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(repository.Transaction)

	return tx, args.Error(1)
}

// failingUserRepo fails every lookup with err.
type failingUserRepo struct {
	repository.UserRepository
	err error
}

func (r failingUserRepo) FindByID(context.Context, uuid.UUID) (*entity.User, error) {
	return nil, r.err
}

func (r failingUserRepo) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, r.err
}
