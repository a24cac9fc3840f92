// Package memory is an in-process implementation of the persistence layer.
//
// Transactions are serialised: Begin takes the store lock and works on a deep
// copy of the data, Commit swaps the copy in and Rollback drops it. Readers
// outside a transaction wait for the open transaction to finish, so every read
// observes committed state only.
package memory

import (
	"context"
	"slices"
	"sync"

	"scales/internal/domain/entity"
	"scales/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Store holds every user and role of the in-memory backend.
type Store struct {
	mu         sync.Mutex
	data       *state
	commitHook func() error
}

type state struct {
	users        map[uuid.UUID]*entity.User
	roles        map[entity.RoleID]entity.Role
	nextWeightID int64
}

// New creates a store seeded with the Admin and User roles.
func New() *Store {
	return &Store{
		data: &state{
			users: make(map[uuid.UUID]*entity.User),
			roles: map[entity.RoleID]entity.Role{
				entity.RoleIDAdmin: {ID: entity.RoleIDAdmin, Name: entity.RoleNameAdmin},
				entity.RoleIDUser:  {ID: entity.RoleIDUser, Name: entity.RoleNameUser},
			},
		},
	}
}

// SetCommitHook installs a function run before every commit. A non-nil error
// from the hook aborts the commit and discards the transaction.
func (s *Store) SetCommitHook(hook func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commitHook = hook
}

// AddRole registers an extra role.
func (s *Store) AddRole(role entity.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.roles[role.ID] = role
}

// Begin acquires the store for a new transaction.
func (s *Store) Begin(ctx context.Context) (repository.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}

	s.mu.Lock()

	return &transaction{store: s, work: s.data.clone()}, nil
}

// UserRepo returns a repository that auto-commits every call.
func (s *Store) UserRepo() repository.UserRepository {
	return &userRepository{with: s.locked}
}

// RoleRepo returns a role repository reading committed state.
func (s *Store) RoleRepo() repository.RoleRepository {
	return &roleRepository{with: s.locked}
}

func (s *Store) locked(fn func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.data)
}

type transaction struct {
	store *Store
	work  *state
	done  bool
}

func (t *transaction) UserRepo() repository.UserRepository {
	return &userRepository{with: t.apply}
}

func (t *transaction) RoleRepo() repository.RoleRepository {
	return &roleRepository{with: t.apply}
}

func (t *transaction) apply(fn func(*state) error) error {
	if t.done {
		return errors.New("transaction already finished")
	}

	return fn(t.work)
}

func (t *transaction) Commit() error {
	if t.done {
		return errors.New("transaction already finished")
	}
	t.done = true
	defer t.store.mu.Unlock()

	if t.store.commitHook != nil {
		if err := t.store.commitHook(); err != nil {
			return errors.Wrap(err, "failed to commit transaction")
		}
	}
	t.store.data = t.work

	return nil
}

func (t *transaction) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Unlock()

	return nil
}

func (st *state) clone() *state {
	users := make(map[uuid.UUID]*entity.User, len(st.users))
	for id, u := range st.users {
		users[id] = cloneUser(u)
	}

	roles := make(map[entity.RoleID]entity.Role, len(st.roles))
	for id, r := range st.roles {
		roles[id] = r
	}

	return &state{
		users:        users,
		roles:        roles,
		nextWeightID: st.nextWeightID,
	}
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}

	c := *u
	c.PasswordHash = slices.Clone(u.PasswordHash)
	c.PasswordSalt = slices.Clone(u.PasswordSalt)
	c.Roles = slices.Clone(u.Roles)
	c.WeightHistory = slices.Clone(u.WeightHistory)
	c.PointsHistory = slices.Clone(u.PointsHistory)

	return &c
}
