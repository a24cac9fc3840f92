package memory

import (
	"cmp"
	"context"
	"slices"

	"scales/internal/domain/entity"
	"scales/internal/domain/repository"
)

type roleRepository struct {
	with func(func(*state) error) error
}

func (repo *roleRepository) FindByID(_ context.Context, id entity.RoleID) (*entity.Role, error) {
	var found *entity.Role
	err := repo.with(func(st *state) error {
		r, ok := st.roles[id]
		if !ok {
			return repository.ErrRoleNotFound
		}
		found = &r

		return nil
	})

	return found, err
}

func (repo *roleRepository) FindByName(_ context.Context, name string) (*entity.Role, error) {
	var found *entity.Role
	err := repo.with(func(st *state) error {
		for _, r := range st.roles {
			if r.Name == name {
				found = &r

				return nil
			}
		}

		return repository.ErrRoleNotFound
	})

	return found, err
}

func (repo *roleRepository) List(_ context.Context) (entity.Roles, error) {
	var roles entity.Roles
	err := repo.with(func(st *state) error {
		roles = make(entity.Roles, 0, len(st.roles))
		for _, r := range st.roles {
			roles = append(roles, r)
		}
		slices.SortFunc(roles, func(a, b entity.Role) int { return cmp.Compare(a.ID, b.ID) })

		return nil
	})

	return roles, err
}
