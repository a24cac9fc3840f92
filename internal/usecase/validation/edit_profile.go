package validation

import (
	"context"

	"scales/internal/usecase"

	"github.com/google/uuid"
)

// EditProfile validates a self-service edit of the user identified by userID.
// Uniqueness checks ignore the user's own email and username.
func EditProfile(ctx context.Context, users UserLookup, rules Rules, userID uuid.UUID, in *usecase.EditProfileInput) error {
	var res result

	if err := res.checkStruct(in); err != nil {
		return err
	}
	res.checkBirthDate("birth_date", in.BirthDate, rules.now())

	if err := res.checkEmailFree(ctx, users, in.Email, userID); err != nil {
		return err
	}
	if err := res.checkUsernameFree(ctx, users, in.Username, userID); err != nil {
		return err
	}

	return res.err(in)
}
