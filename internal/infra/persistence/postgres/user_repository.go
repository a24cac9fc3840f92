package postgres

import (
	"context"

	"scales/internal/domain/entity"
	domainerrors "scales/internal/domain/errors"
	"scales/internal/domain/repository"
	"scales/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
	// replica routes reads to a read replica when one is configured.
	replica bool
}

// NewUserRepository returns a repository that runs outside any transaction.
// Its reads may be served by a replica.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db, replica: true}
}

func (repo *userRepository) reader(ctx context.Context) *gorm.DB {
	db := repo.db.WithContext(ctx)
	if repo.replica {
		db = db.Clauses(dbresolver.Read)
	}

	return db.
		Preload("Roles", func(db *gorm.DB) *gorm.DB { return db.Order("roles.id") }).
		Preload("WeightHistory", func(db *gorm.DB) *gorm.DB { return db.Order("weighing_date, id") }).
		Preload("PointsHistory")
}

// FindByID retrieves a single user by their unique ID with roles and history.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, "find user by id", "id = ?", id)
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, "find user by email", "email = ?", email)
}

// FindByUsername retrieves a single user by their username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return repo.findOne(ctx, "find user by username", "username = ?", username)
}

func (repo *userRepository) findOne(ctx context.Context, op string, query string, arg any) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.reader(ctx).Where(query, arg).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to "+op)
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user together with its role links and weight history.
// Role rows are reference data and are never upserted.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Omit("Roles.*").Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email or username already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("invalid foreign key reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	for i := range user.WeightHistory {
		if i < len(userM.WeightHistory) {
			user.WeightHistory[i].ID = userM.WeightHistory[i].ID
			user.WeightHistory[i].UserID = user.ID
		}
	}

	return nil
}

// Update writes the scalar columns of the user and replaces its role links.
// Role rows are reference data and are never upserted.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	db := repo.db.WithContext(ctx)

	result := db.Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"email":         user.Email,
			"username":      user.Username,
			"name":          user.Name,
			"birth_date":    user.BirthDate,
			"password_hash": user.PasswordHash,
			"password_salt": user.PasswordSalt,
			"is_deleted":    user.IsDeleted,
			"last_login_at": user.LastLoginAt,
			"modified_at":   user.ModifiedAt,
		})
	if err := result.Error; err != nil {
		return translateUpdateError(err)
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	// only the user_roles links change, role rows stay untouched
	roles := fromRolesDomain(user.Roles)
	err := db.Model(&model.UserModel{ID: user.ID}).
		Omit("Roles.*").
		Association("Roles").
		Replace(roles)
	if err != nil {
		return translateUpdateError(err)
	}

	return nil
}

func translateUpdateError(err error) error {
	if isUniqueConstraintViolation(err) {
		return domainerrors.ErrUserAlreadyExists.WrapMessage("email or username already exists")
	}
	if isNotNullConstraintViolation(err) {
		return domainerrors.ErrUserUpdateFailed.WrapMessage("missing required user information")
	}
	if isForeignKeyConstraintViolation(err) {
		return domainerrors.ErrUserUpdateFailed.WrapMessage("invalid foreign key reference")
	}

	return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
}

// AddWeight appends one weighing to the user's history.
func (repo *userRepository) AddWeight(ctx context.Context, entry *entity.WeightHistory) error {
	weightM := fromWeightDomain(*entry)

	if err := repo.db.WithContext(ctx).Create(&weightM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrUserUpdateFailed.WrapMessage("weight out of range")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add weight")
	}

	entry.ID = weightM.ID

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	user := &entity.User{
		ID:           data.ID,
		Email:        data.Email,
		Username:     data.Username,
		Name:         data.Name,
		BirthDate:    data.BirthDate,
		PasswordHash: data.PasswordHash,
		PasswordSalt: data.PasswordSalt,
		IsDeleted:    data.IsDeleted,
		LastLoginAt:  data.LastLoginAt,
		ModifiedAt:   data.ModifiedAt,
		Roles:        toRolesDomain(data.Roles),
	}

	user.WeightHistory = make([]entity.WeightHistory, 0, len(data.WeightHistory))
	for _, w := range data.WeightHistory {
		user.WeightHistory = append(user.WeightHistory, entity.WeightHistory{
			ID:           w.ID,
			UserID:       w.UserID,
			WeighingDate: w.WeighingDate,
			Weight:       w.Weight,
		})
	}

	user.PointsHistory = make([]entity.PointsHistory, 0, len(data.PointsHistory))
	for _, p := range data.PointsHistory {
		user.PointsHistory = append(user.PointsHistory, entity.PointsHistory{
			ID:        p.ID,
			UserID:    p.UserID,
			Points:    p.Points,
			Reason:    p.Reason,
			AwardedAt: p.AwardedAt,
		})
	}

	return user
}

// fromUserDomain converts a domain User entity to a GORM UserModel for insertion.
// Points history is written by another subsystem and is left out.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	userM := &model.UserModel{
		ID:           data.ID,
		Email:        data.Email,
		Username:     data.Username,
		Name:         data.Name,
		BirthDate:    data.BirthDate,
		PasswordHash: data.PasswordHash,
		PasswordSalt: data.PasswordSalt,
		IsDeleted:    data.IsDeleted,
		LastLoginAt:  data.LastLoginAt,
		ModifiedAt:   data.ModifiedAt,
		Roles:        fromRolesDomain(data.Roles),
	}

	for _, w := range data.WeightHistory {
		w.UserID = data.ID
		userM.WeightHistory = append(userM.WeightHistory, fromWeightDomain(w))
	}

	return userM
}

func fromWeightDomain(data entity.WeightHistory) model.WeightHistoryModel {
	return model.WeightHistoryModel{
		ID:           data.ID,
		UserID:       data.UserID,
		WeighingDate: data.WeighingDate,
		Weight:       data.Weight,
	}
}
