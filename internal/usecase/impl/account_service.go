// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"time"

	"scales/config"
	"scales/internal/domain/entity"
	domainerrors "scales/internal/domain/errors"
	"scales/internal/domain/policy"
	"scales/internal/domain/repository"
	"scales/internal/domain/service"
	logs "scales/internal/infra/log"
	"scales/internal/usecase"
	"scales/internal/usecase/validation"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager   repository.TransactionManager
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	hasher      service.CredentialHasher
	policy      policy.PasswordPolicy
	maxWeight   decimal.Decimal
	defaultRole string
	now         func() time.Time
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
// UserRepo and RoleRepo serve the reads that run outside a transaction.
type AccountServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	RoleRepo  repository.RoleRepository
	Hasher    service.CredentialHasher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	srv := &accountService{
		txManager:   params.TxManager,
		userRepo:    params.UserRepo,
		roleRepo:    params.RoleRepo,
		hasher:      params.Hasher,
		policy:      policy.Default,
		maxWeight:   validation.DefaultMaxWeight,
		defaultRole: entity.RoleNameUser,
		now:         time.Now,
		logger:      params.Logger,
	}

	if cfg := params.Config; cfg != nil {
		if cfg.PasswordPolicy != nil {
			srv.policy = policy.PasswordPolicy{
				MinLength:    cfg.PasswordPolicy.MinLength,
				AllowSymbols: cfg.PasswordPolicy.AllowSymbols,
			}
		}
		if cfg.Account != nil {
			if cfg.Account.DefaultRole != "" {
				srv.defaultRole = cfg.Account.DefaultRole
			}
			if cfg.Account.MaxWeightKg > 0 {
				srv.maxWeight = decimal.NewFromFloat(cfg.Account.MaxWeightKg)
			}
		}
	}

	if srv.logger == nil {
		srv.logger = slog.Default()
	}

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return logs.FromContextOr(ctx, srv.logger)
}

func (srv *accountService) rules() validation.Rules {
	return validation.Rules{
		Password:  srv.policy,
		MaxWeight: srv.maxWeight,
		Now:       srv.now(),
	}
}

// release rolls back tx unless it was committed.
func (srv *accountService) release(ctx context.Context, tx repository.Transaction) {
	if err := tx.Rollback(); err != nil {
		srv.log(ctx).Error("Failed to roll back transaction", slog.Any("error", err))
	}
}

// Login checks the credentials of an account. Lookups miss, disabled accounts
// and wrong passwords are verdicts; nothing is written on any path.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*entity.AuthVerdict, error) {
	email := normalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Info("Login rejected", slog.String("reason", "unknown email"))

		return &entity.AuthVerdict{Status: entity.AuthUnauthenticated}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// Disabled wins before the password is looked at.
	if user.IsDeleted {
		srv.log(ctx).Info("Login rejected", slog.String("reason", "disabled"), slog.Any("userID", user.ID))

		return &entity.AuthVerdict{Status: entity.AuthDisabled}, nil
	}

	if !srv.credentialsMatch(input.Password, user) {
		srv.log(ctx).Info("Login rejected", slog.String("reason", "bad credentials"), slog.Any("userID", user.ID))

		return &entity.AuthVerdict{Status: entity.AuthUnauthenticated}, nil
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("userID", user.ID))

	return &entity.AuthVerdict{
		Status: entity.AuthAuthenticated,
		Identity: &entity.Identity{
			ID:       user.ID,
			Email:    user.Email,
			Name:     user.Name,
			Username: user.Username,
			Disabled: false,
		},
		Roles: user.Roles.Names(),
	}, nil
}

// credentialsMatch compares the full digests; a length difference is a mismatch.
func (srv *accountService) credentialsMatch(password string, user *entity.User) bool {
	digest := srv.hasher.Hash(password, user.PasswordSalt)

	return subtle.ConstantTimeCompare(digest, user.PasswordHash) == 1
}

// Register creates a new account holding the default role and one weighing.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	in := *input
	in.Email = normalizeEmail(in.Email)

	tx, err := srv.txManager.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin registration")
	}
	defer srv.release(ctx, tx)

	userRepo := tx.UserRepo()
	if err := validation.Register(ctx, userRepo, srv.rules(), &in); err != nil {
		srv.log(ctx).Warn("Registration rejected", slog.Any("error", err))

		return nil, validationFailure(err, "failed to validate registration")
	}

	salt, err := srv.hasher.NewSalt()
	if err != nil {
		return nil, errors.Wrapf(domainerrors.ErrPasswordHashFailed, "failed to generate salt: %v", err)
	}

	role, err := tx.RoleRepo().FindByName(ctx, srv.defaultRole)
	if errors.Is(err, repository.ErrRoleNotFound) {
		return nil, domainerrors.ErrRoleNotFound.WrapMessage("default role " + srv.defaultRole + " is missing")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find default role")
	}

	now := srv.now()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        in.Email,
		Username:     in.Username,
		Name:         in.Name,
		BirthDate:    in.BirthDate,
		PasswordSalt: salt,
		PasswordHash: srv.hasher.Hash(in.Password, salt),
		LastLoginAt:  now,
		ModifiedAt:   now,
	}
	user.AttachRole(*role)
	user.AppendWeight(now, in.Weight)

	if err := userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	if err := tx.Commit(); err != nil {
		srv.log(ctx).Error("Failed to commit registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to commit registration")
	}

	srv.log(ctx).Info("Registration completed", slog.Any("userID", user.ID))

	return &usecase.RegisterOutput{UserID: user.ID}, nil
}

// ChangePassword stores a new digest under the user's existing salt.
func (srv *accountService) ChangePassword(ctx context.Context, userID uuid.UUID, input *usecase.ChangePasswordInput) (bool, error) {
	tx, err := srv.txManager.Begin(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to begin password change")
	}
	defer srv.release(ctx, tx)

	userRepo := tx.UserRepo()
	user, err := findUser(ctx, userRepo, userID)
	if err != nil {
		return false, err
	}

	oldDigest := srv.hasher.Hash(input.OldPassword, user.PasswordSalt)

	if !srv.policy.Valid(input.OldPassword) {
		srv.log(ctx).Info("Password change rejected", slog.Any("userID", userID))

		return false, nil
	}
	if !srv.policy.Valid(input.NewPassword) || subtle.ConstantTimeCompare(oldDigest, user.PasswordHash) != 1 {
		srv.log(ctx).Info("Password change rejected", slog.Any("userID", userID))

		return false, nil
	}

	user.PasswordHash = srv.hasher.Hash(input.NewPassword, user.PasswordSalt)
	user.ModifiedAt = srv.now()

	if err := userRepo.Update(ctx, user); err != nil {
		return false, errors.Wrap(err, "failed to update password")
	}

	if err := tx.Commit(); err != nil {
		return false, errors.Wrap(err, "failed to commit password change")
	}

	srv.log(ctx).Info("Password changed", slog.Any("userID", userID))

	return true, nil
}

// AddWeight appends a weighing to the user's history.
func (srv *accountService) AddWeight(ctx context.Context, userID uuid.UUID, input *usecase.AddWeightInput) error {
	tx, err := srv.txManager.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin weighing")
	}
	defer srv.release(ctx, tx)

	userRepo := tx.UserRepo()
	user, err := findUser(ctx, userRepo, userID)
	if err != nil {
		return err
	}

	if err := validation.AddWeight(user, srv.rules(), input); err != nil {
		return validationFailure(err, "failed to validate weighing")
	}

	entry := user.AppendWeight(input.WeighingDate, input.Weight)
	if err := userRepo.AddWeight(ctx, &entry); err != nil {
		return errors.Wrap(err, "failed to add weighing")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit weighing")
	}

	srv.log(ctx).Debug("Weighing recorded", slog.Any("userID", userID), slog.Int64("entryID", entry.ID))

	return nil
}

// findUser loads a user and turns a miss into a not-found domain error.
func findUser(ctx context.Context, repo repository.UserRepository, userID uuid.UUID) (*entity.User, error) {
	user, err := repo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("user " + userID.String() + " not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// validationFailure passes a *ValidationError through untouched and wraps anything else.
func validationFailure(err error, message string) error {
	var verr *domainerrors.ValidationError
	if errors.As(err, &verr) {
		return verr
	}

	return errors.Wrap(err, message)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
