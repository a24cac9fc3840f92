package repository

import (
	"context"
	"errors"

	"scales/internal/domain/entity"
)

// ErrRoleNotFound is returned when a role lookup matches nothing.
var ErrRoleNotFound = errors.New("role not found")

// RoleRepository gives read access to the role reference data.
type RoleRepository interface {
	// FindByID retrieves a role by its id.
	FindByID(ctx context.Context, id entity.RoleID) (*entity.Role, error)

	// FindByName retrieves a role by its name.
	FindByName(ctx context.Context, name string) (*entity.Role, error)

	// List returns every role ordered by id.
	List(ctx context.Context) (entity.Roles, error)
}
