package impl

import (
	"context"
	"log/slog"

	"scales/internal/domain/entity"
	"scales/internal/usecase"
	"scales/internal/usecase/validation"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// GetUserInfo returns the profile view of a user.
func (srv *accountService) GetUserInfo(ctx context.Context, userID uuid.UUID) (*usecase.ProfileView, error) {
	user, err := findUser(ctx, srv.userRepo, userID)
	if err != nil {
		return nil, err
	}

	return toProfileView(user), nil
}

// GetEditModel returns the self-service edit model pre-filled from the user.
func (srv *accountService) GetEditModel(ctx context.Context, userID uuid.UUID) (*usecase.EditProfileInput, error) {
	user, err := findUser(ctx, srv.userRepo, userID)
	if err != nil {
		return nil, err
	}

	return &usecase.EditProfileInput{
		Email:     user.Email,
		Name:      user.Name,
		Username:  user.Username,
		BirthDate: user.BirthDate,
	}, nil
}

// EditProfile applies the editable fields of input to the user.
func (srv *accountService) EditProfile(ctx context.Context, userID uuid.UUID, input *usecase.EditProfileInput) error {
	in := *input
	in.Email = normalizeEmail(in.Email)

	tx, err := srv.txManager.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin profile edit")
	}
	defer srv.release(ctx, tx)

	userRepo := tx.UserRepo()
	if err := validation.EditProfile(ctx, userRepo, srv.rules(), userID, &in); err != nil {
		srv.log(ctx).Warn("Profile edit rejected", slog.Any("userID", userID), slog.Any("error", err))

		return validationFailure(err, "failed to validate profile edit")
	}

	user, err := findUser(ctx, userRepo, userID)
	if err != nil {
		return err
	}

	user.Email = in.Email
	user.Name = in.Name
	user.Username = in.Username
	user.BirthDate = in.BirthDate
	user.ModifiedAt = srv.now()

	if err := userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to update profile")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit profile edit")
	}

	srv.log(ctx).Info("Profile updated", slog.Any("userID", userID))

	return nil
}

// GetUserEditModel returns the administrative edit model of a user.
func (srv *accountService) GetUserEditModel(ctx context.Context, userID uuid.UUID) (*usecase.UserEditModel, error) {
	user, err := findUser(ctx, srv.userRepo, userID)
	if err != nil {
		return nil, err
	}

	roles, err := srv.roleRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list roles")
	}

	return &usecase.UserEditModel{
		EditUserInput: usecase.EditUserInput{
			UserID:    user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Username:  user.Username,
			BirthDate: user.BirthDate,
			Disabled:  user.IsDeleted,
			RoleIDs:   user.Roles.IDs(),
		},
		AvailableRoles: roles,
	}, nil
}

// EditUserProfile applies an administrative edit. The role set is rebuilt
// from input.RoleIDs rather than merged with the current one.
func (srv *accountService) EditUserProfile(ctx context.Context, input *usecase.EditUserInput) error {
	in := *input
	in.Email = normalizeEmail(in.Email)

	tx, err := srv.txManager.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin user edit")
	}
	defer srv.release(ctx, tx)

	userRepo := tx.UserRepo()
	roleRepo := tx.RoleRepo()

	user, err := findUser(ctx, userRepo, in.UserID)
	if err != nil {
		return err
	}

	if err := validation.EditUser(ctx, userRepo, roleRepo, srv.rules(), &in); err != nil {
		srv.log(ctx).Warn("User edit rejected", slog.Any("userID", in.UserID), slog.Any("error", err))

		return validationFailure(err, "failed to validate user edit")
	}

	user.Email = in.Email
	user.Name = in.Name
	user.Username = in.Username
	user.BirthDate = in.BirthDate
	user.IsDeleted = in.Disabled

	user.ClearRoles()
	for _, id := range in.RoleIDs {
		role, err := roleRepo.FindByID(ctx, id)
		if err != nil {
			return errors.Wrapf(err, "failed to load role %d", id)
		}
		user.AttachRole(*role)
	}
	user.ModifiedAt = srv.now()

	if err := userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to update user")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit user edit")
	}

	srv.log(ctx).Info("User updated by administrator",
		slog.Any("userID", user.ID),
		slog.Any("roles", user.Roles.Names()),
		slog.Bool("disabled", user.IsDeleted),
	)

	return nil
}

// ListRoles returns every assignable role.
func (srv *accountService) ListRoles(ctx context.Context) (entity.Roles, error) {
	roles, err := srv.roleRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list roles")
	}

	return roles, nil
}

func toProfileView(user *entity.User) *usecase.ProfileView {
	view := &usecase.ProfileView{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Username:    user.Username,
		BirthDate:   user.BirthDate,
		Roles:       user.Roles.Names(),
		TotalPoints: user.TotalPoints(),
		LastLoginAt: user.LastLoginAt,
		ModifiedAt:  user.ModifiedAt,
	}

	// A user without weighings has no current weight.
	if current, ok := user.CurrentWeight(); ok {
		weight := current.Weight
		weighedAt := current.WeighingDate
		view.CurrentWeight = &weight
		view.WeighedAt = &weighedAt
	}

	return view
}
