package validation

import (
	"context"

	"scales/internal/usecase"

	"github.com/google/uuid"
)

// Register validates a registration against the persisted users.
// It returns a *errors.ValidationError on any violation, or an infrastructure error.
func Register(ctx context.Context, users UserLookup, rules Rules, in *usecase.RegisterInput) error {
	var res result

	if err := res.checkStruct(in); err != nil {
		return err
	}
	res.checkBirthDate("birth_date", in.BirthDate, rules.now())
	res.checkPassword("password", in.Password, rules.Password)
	res.checkWeight("weight", in.Weight, rules.maxWeight())

	if err := res.checkEmailFree(ctx, users, in.Email, uuid.Nil); err != nil {
		return err
	}
	if err := res.checkUsernameFree(ctx, users, in.Username, uuid.Nil); err != nil {
		return err
	}

	return res.err(in)
}
