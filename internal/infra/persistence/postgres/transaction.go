// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"scales/internal/domain/repository"
	"scales/internal/errors"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Begin opens a database transaction. Repositories handed out by the returned
// Transaction all run on that transaction.
func (tm *gormTransactionManager) Begin(ctx context.Context) (repository.Transaction, error) {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, errors.Wrap(tx.Error, "failed to begin transaction")
	}

	return &gormTransaction{tx: tx}, nil
}

// gormTransaction holds a GORM transaction object (in GORM a transaction is
// also a *gorm.DB) and binds repositories to it.
type gormTransaction struct {
	tx   *gorm.DB
	done bool
}

func (t *gormTransaction) UserRepo() repository.UserRepository {
	return &userRepository{db: t.tx}
}

func (t *gormTransaction) RoleRepo() repository.RoleRepository {
	return &roleRepository{db: t.tx}
}

func (t *gormTransaction) Commit() error {
	if t.done {
		return errors.New("transaction already finished")
	}
	t.done = true

	if err := t.tx.Commit().Error; err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}

func (t *gormTransaction) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true

	if err := t.tx.Rollback().Error; err != nil {
		return errors.Wrap(err, "failed to rollback transaction")
	}

	return nil
}
