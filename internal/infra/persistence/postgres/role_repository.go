package postgres

import (
	"context"

	"scales/internal/domain/entity"
	"scales/internal/domain/repository"
	"scales/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// roleRepository reads the role reference table.
type roleRepository struct {
	db      *gorm.DB
	replica bool
}

// NewRoleRepository returns a role repository that runs outside any transaction.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db, replica: true}
}

func (repo *roleRepository) reader(ctx context.Context) *gorm.DB {
	db := repo.db.WithContext(ctx)
	if repo.replica {
		db = db.Clauses(dbresolver.Read)
	}

	return db
}

func (repo *roleRepository) FindByID(ctx context.Context, id entity.RoleID) (*entity.Role, error) {
	var roleM model.RoleModel
	if err := repo.reader(ctx).Where("id = ?", int16(id)).First(&roleM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoleNotFound
		}

		return nil, errors.Wrap(err, "failed to find role by id")
	}

	role := toRoleDomain(roleM)

	return &role, nil
}

func (repo *roleRepository) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	var roleM model.RoleModel
	if err := repo.reader(ctx).Where("name = ?", name).First(&roleM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoleNotFound
		}

		return nil, errors.Wrap(err, "failed to find role by name")
	}

	role := toRoleDomain(roleM)

	return &role, nil
}

func (repo *roleRepository) List(ctx context.Context) (entity.Roles, error) {
	var rolesM []model.RoleModel
	if err := repo.reader(ctx).Order("id").Find(&rolesM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list roles")
	}

	return toRolesDomain(rolesM), nil
}

func toRoleDomain(data model.RoleModel) entity.Role {
	return entity.Role{ID: entity.RoleID(data.ID), Name: data.Name}
}

func toRolesDomain(data []model.RoleModel) entity.Roles {
	roles := make(entity.Roles, 0, len(data))
	for _, r := range data {
		roles = append(roles, toRoleDomain(r))
	}

	return roles
}

func fromRolesDomain(data entity.Roles) []model.RoleModel {
	roles := make([]model.RoleModel, 0, len(data))
	for _, r := range data {
		roles = append(roles, model.RoleModel{ID: int16(r.ID), Name: r.Name})
	}

	return roles
}
