package validation

import (
	"scales/internal/domain/entity"
	"scales/internal/usecase"
)

// AddWeight validates a new weighing of user.
func AddWeight(user *entity.User, rules Rules, in *usecase.AddWeightInput) error {
	var res result

	if err := res.checkStruct(in); err != nil {
		return err
	}
	res.checkWeight("weight", in.Weight, rules.maxWeight())

	if !in.WeighingDate.IsZero() {
		if in.WeighingDate.After(rules.now()) {
			res.add("weighing_date", "past", "must not be in the future")
		}
		if !user.BirthDate.IsZero() && in.WeighingDate.Before(user.BirthDate) {
			res.add("weighing_date", "range", "must not be before the birth date")
		}
	}

	return res.err(in)
}
