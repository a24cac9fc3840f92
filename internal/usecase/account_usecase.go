// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"scales/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Input DTOs ---

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email     string          `json:"email" validate:"required,email,max=255"`
	Name      string          `json:"name" validate:"required,max=100"`
	Username  string          `json:"username" validate:"required,min=3,max=32,alphanum"`
	BirthDate time.Time       `json:"birth_date" validate:"required"`
	Password  string          `json:"password"`
	Weight    decimal.Decimal `json:"weight"`
}

// ChangePasswordInput defines the data required to change the acting user's password.
type ChangePasswordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// AddWeightInput defines a new weighing of the acting user.
type AddWeightInput struct {
	WeighingDate time.Time       `json:"weighing_date" validate:"required"`
	Weight       decimal.Decimal `json:"weight"`
}

// --- Output DTOs ---

// RegisterOutput returns the identifier of the newly created account.
type RegisterOutput struct {
	UserID uuid.UUID
}

// AccountUsecase defines the account-management operations.
// This is the contract that any calling service layer will depend on.
type AccountUsecase interface {
	// Login checks credentials and returns a verdict. Only infrastructure failures are errors.
	Login(ctx context.Context, input *LoginInput) (*entity.AuthVerdict, error)

	// Register validates and creates a new account with the default role and one weighing.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// ChangePassword replaces the password of the acting user, keeping the salt.
	// It returns false, without error, when the old password is wrong or either password is weak.
	ChangePassword(ctx context.Context, userID uuid.UUID, input *ChangePasswordInput) (bool, error)

	// AddWeight appends a weighing to the acting user's history.
	AddWeight(ctx context.Context, userID uuid.UUID, input *AddWeightInput) error

	// GetUserInfo returns the profile view of a user, including the current weight.
	GetUserInfo(ctx context.Context, userID uuid.UUID) (*ProfileView, error)

	// GetEditModel returns the self-service edit model of a user.
	GetEditModel(ctx context.Context, userID uuid.UUID) (*EditProfileInput, error)

	// EditProfile applies a self-service edit. Roles cannot be changed this way.
	EditProfile(ctx context.Context, userID uuid.UUID, input *EditProfileInput) error

	// GetUserEditModel returns the administrative edit model of a user.
	GetUserEditModel(ctx context.Context, userID uuid.UUID) (*UserEditModel, error)

	// EditUserProfile applies an administrative edit, replacing the role set.
	EditUserProfile(ctx context.Context, input *EditUserInput) error

	// ListRoles returns every role that can be assigned.
	ListRoles(ctx context.Context) (entity.Roles, error)
}
