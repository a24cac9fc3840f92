package repository

import "context"

// TransactionManager opens transactional scopes without tying the use case layer
// to a specific DB driver like GORM.
type TransactionManager interface {
	// Begin acquires a transactional handle. The caller must finish it with
	// Commit or Rollback on every exit path.
	Begin(ctx context.Context) (Transaction, error)
}

// Transaction is an open unit of work. Repositories obtained from it share the
// same database transaction.
type Transaction interface {
	RepositoryFactory

	// Commit makes every change made through the transaction visible.
	Commit() error

	// Rollback discards every change made through the transaction.
	// Calling Rollback after Commit is a no-op, so it can always be deferred.
	Rollback() error
}

// RepositoryFactory provides a way to get repository instances that are bound to a specific transaction.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository instance bound to the current transaction.
	UserRepo() UserRepository

	// RoleRepo returns a RoleRepository instance bound to the current transaction.
	RoleRepo() RoleRepository
}
