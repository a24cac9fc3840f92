// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"scales/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// Users are always loaded together with their roles, weight history and points history.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their (normalised) email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername retrieves a single user by their username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create persists a new user together with its role links and weight history.
	Create(ctx context.Context, user *entity.User) error

	// Update persists the scalar fields of the user and replaces its role links
	// with user.Roles. Weight and points history are not touched.
	Update(ctx context.Context, user *entity.User) error

	// AddWeight appends a weighing to the user's history and sets entry.ID.
	AddWeight(ctx context.Context, entry *entity.WeightHistory) error
}
