package memory

import (
	"context"

	"scales/internal/domain/entity"
	domainerrors "scales/internal/domain/errors"
	"scales/internal/domain/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	with func(func(*state) error) error
}

func (repo *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	var found *entity.User
	err := repo.with(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return repository.ErrUserNotFound
		}
		found = cloneUser(u)

		return nil
	})

	return found, err
}

func (repo *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return repo.findBy(func(u *entity.User) bool { return u.Email == email })
}

func (repo *userRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return repo.findBy(func(u *entity.User) bool { return u.Username == username })
}

func (repo *userRepository) findBy(match func(*entity.User) bool) (*entity.User, error) {
	var found *entity.User
	err := repo.with(func(st *state) error {
		for _, u := range st.users {
			if match(u) {
				found = cloneUser(u)

				return nil
			}
		}

		return repository.ErrUserNotFound
	})

	return found, err
}

func (repo *userRepository) Create(_ context.Context, user *entity.User) error {
	return repo.with(func(st *state) error {
		if _, exists := st.users[user.ID]; exists {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("user id already exists")
		}
		if err := st.checkUnique(user); err != nil {
			return err
		}
		if err := st.checkRoles(user.Roles, domainerrors.ErrUserCreationFailed); err != nil {
			return err
		}

		stored := cloneUser(user)
		for i := range stored.WeightHistory {
			st.nextWeightID++
			stored.WeightHistory[i].ID = st.nextWeightID
			stored.WeightHistory[i].UserID = user.ID
			user.WeightHistory[i].ID = st.nextWeightID
			user.WeightHistory[i].UserID = user.ID
		}
		st.users[user.ID] = stored

		return nil
	})
}

func (repo *userRepository) Update(_ context.Context, user *entity.User) error {
	return repo.with(func(st *state) error {
		current, ok := st.users[user.ID]
		if !ok {
			return repository.ErrUserNotFound
		}
		if err := st.checkUnique(user); err != nil {
			return err
		}
		if err := st.checkRoles(user.Roles, domainerrors.ErrUserUpdateFailed); err != nil {
			return err
		}

		updated := cloneUser(user)
		// history rows are owned by AddWeight and the points subsystem
		updated.WeightHistory = current.WeightHistory
		updated.PointsHistory = current.PointsHistory
		st.users[user.ID] = updated

		return nil
	})
}

func (repo *userRepository) AddWeight(_ context.Context, entry *entity.WeightHistory) error {
	return repo.with(func(st *state) error {
		u, ok := st.users[entry.UserID]
		if !ok {
			return repository.ErrUserNotFound
		}

		st.nextWeightID++
		entry.ID = st.nextWeightID
		u.WeightHistory = append(u.WeightHistory, *entry)

		return nil
	})
}

// AddPoints records a points award. Points are written by another subsystem;
// this exists to seed data.
func (s *Store) AddPoints(entry entity.PointsHistory) error {
	return s.locked(func(st *state) error {
		u, ok := st.users[entry.UserID]
		if !ok {
			return repository.ErrUserNotFound
		}
		entry.ID = int64(len(u.PointsHistory) + 1)
		u.PointsHistory = append(u.PointsHistory, entry)

		return nil
	})
}

func (st *state) checkUnique(user *entity.User) error {
	for id, other := range st.users {
		if id == user.ID {
			continue
		}
		if other.Email == user.Email {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if other.Username == user.Username {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("username already exists")
		}
	}

	return nil
}

func (st *state) checkRoles(roles entity.Roles, failure *domainerrors.BaseError) error {
	for _, r := range roles {
		if _, ok := st.roles[r.ID]; !ok {
			return failure.WrapMessage("invalid foreign key reference")
		}
	}

	return nil
}
