// Package usecase contains the application-specific business rules.
package usecase

import (
	"time"

	"scales/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EditProfileInput is the self-service edit model. GetEditModel returns it pre-filled.
type EditProfileInput struct {
	Email     string    `json:"email" validate:"required,email,max=255"`
	Name      string    `json:"name" validate:"required,max=100"`
	Username  string    `json:"username" validate:"required,min=3,max=32,alphanum"`
	BirthDate time.Time `json:"birth_date" validate:"required"`
}

// EditUserInput is the administrative edit model.
type EditUserInput struct {
	UserID    uuid.UUID       `json:"user_id" validate:"required"`
	Email     string          `json:"email" validate:"required,email,max=255"`
	Name      string          `json:"name" validate:"required,max=100"`
	Username  string          `json:"username" validate:"required,min=3,max=32,alphanum"`
	BirthDate time.Time       `json:"birth_date" validate:"required"`
	Disabled  bool            `json:"disabled"`
	RoleIDs   []entity.RoleID `json:"role_ids" validate:"required,min=1,dive,gt=0"`
}

// UserEditModel is the administrative edit model together with the roles that can be assigned.
type UserEditModel struct {
	EditUserInput
	AvailableRoles entity.Roles `json:"available_roles"`
}

// ProfileView is the read-only projection of a user.
type ProfileView struct {
	ID            uuid.UUID        `json:"id"`
	Email         string           `json:"email"`
	Name          string           `json:"name"`
	Username      string           `json:"username"`
	BirthDate     time.Time        `json:"birth_date"`
	Roles         []string         `json:"roles"`
	CurrentWeight *decimal.Decimal `json:"current_weight"` // nil when the user has no weighing yet
	WeighedAt     *time.Time       `json:"weighed_at"`
	TotalPoints   int              `json:"total_points"`
	LastLoginAt   time.Time        `json:"last_login_at"`
	ModifiedAt    time.Time        `json:"modified_at"`
}
