package validation

import (
	"context"
	"strconv"

	"scales/internal/domain/repository"
	"scales/internal/usecase"

	"github.com/pkg/errors"
)

// EditUser validates an administrative edit.
// Every role id must name an existing role; an unknown id fails the whole edit
// instead of being skipped.
func EditUser(ctx context.Context, users UserLookup, roles RoleLookup, rules Rules, in *usecase.EditUserInput) error {
	var res result

	if err := res.checkStruct(in); err != nil {
		return err
	}
	res.checkBirthDate("birth_date", in.BirthDate, rules.now())

	if err := res.checkEmailFree(ctx, users, in.Email, in.UserID); err != nil {
		return err
	}
	if err := res.checkUsernameFree(ctx, users, in.Username, in.UserID); err != nil {
		return err
	}

	if !res.failed("role_ids") {
		for _, id := range in.RoleIDs {
			_, err := roles.FindByID(ctx, id)
			if errors.Is(err, repository.ErrRoleNotFound) {
				res.add("role_ids", "exists", "unknown role "+strconv.Itoa(int(id)))

				continue
			}
			if err != nil {
				return errors.Wrap(err, "failed to check role")
			}
		}
	}

	return res.err(in)
}
