package main

import (
	"context"
	"log/slog"
	"time"

	"scales/config"
	"scales/internal/domain/repository"
	"scales/internal/infra/auth"
	logs "scales/internal/infra/log"
	"scales/internal/infra/persistence/memory"
	"scales/internal/infra/persistence/postgres"
	"scales/internal/usecase"
	"scales/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const stopTimeout = 10 * time.Second

func injectInfra(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(logs.New),
	)
}

func injectPersistence(cfg *config.Config) fx.Option {
	if cfg.Persistence != nil && cfg.Persistence.Driver == config.DriverMemory {
		return fx.Provide(
			memory.New,
			func(store *memory.Store) repository.TransactionManager { return store },
			func(store *memory.Store) repository.UserRepository { return store.UserRepo() },
			func(store *memory.Store) repository.RoleRepository { return store.RoleRepo() },
		)
	}

	return fx.Provide(
		postgres.New,
		postgres.NewTransactionManager,
		postgres.NewUserRepository,
		postgres.NewRoleRepository,
	)
}

func injectService() fx.Option {
	return fx.Provide(
		auth.NewArgon2Hasher,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewAccountService,
	)
}

// run builds the dependency graph, starts it, hands the populated targets to
// fn and stops the graph again.
func run(ctx context.Context, options []fx.Option, fn func() error) error {
	app := fx.New(append([]fx.Option{fx.NopLogger}, options...)...)
	if err := app.Err(); err != nil {
		return errors.Wrap(err, "failed to build application")
	}

	if err := app.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start application")
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stopTimeout)
		defer cancel()

		if err := app.Stop(stopCtx); err != nil {
			slog.Default().Warn("Failed to stop application", slog.Any("error", err))
		}
	}()

	return fn()
}

// memoryCommands need no account created by an earlier invocation.
var memoryCommands = map[string]bool{
	"register": true,
	"roles":    true,
}

// checkDriver rejects commands that read accounts when the store only lives
// as long as a single command.
func checkDriver(cfg *config.Config, command string) error {
	if cfg.Persistence == nil || cfg.Persistence.Driver != config.DriverMemory || memoryCommands[command] {
		return nil
	}

	return errors.Errorf("%s needs persisted accounts: the memory driver keeps them for a single command only, use the postgres driver", command)
}

// withAccounts runs fn against the account use cases.
func withAccounts(ctx context.Context, command string, fn func(usecase.AccountUsecase) error) error {
	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := checkDriver(cfg, command); err != nil {
		return err
	}

	var accounts usecase.AccountUsecase

	return run(ctx, []fx.Option{
		injectInfra(cfg),
		injectPersistence(cfg),
		injectService(),
		injectUsecase(),
		fx.Populate(&accounts),
	}, func() error {
		return fn(accounts)
	})
}

// withDatabase runs fn against the PostgreSQL client.
func withDatabase(ctx context.Context, fn func(*gorm.DB) error) error {
	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if cfg.Persistence != nil && cfg.Persistence.Driver != config.DriverPostgres {
		return errors.Errorf("persistence driver %q has no schema to migrate", cfg.Persistence.Driver)
	}
	// migrate applies the schema itself
	cfg.Persistence.AutoMigrate = false

	var db *gorm.DB

	return run(ctx, []fx.Option{
		injectInfra(cfg),
		fx.Provide(postgres.New),
		fx.Populate(&db),
	}, func() error {
		return fn(db)
	})
}
