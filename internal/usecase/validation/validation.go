// Package validation holds the field validators of the account use cases.
//
// Validators are stateless functions: the persisted state they check against is
// passed in explicitly, normally the repositories of the open transaction, so a
// check and the write that follows it observe the same snapshot.
package validation

import (
	"context"
	"reflect"
	"strings"
	"time"

	"scales/internal/domain/entity"
	domainerrors "scales/internal/domain/errors"
	"scales/internal/domain/policy"
	"scales/internal/domain/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DefaultMaxWeight is the upper bound for a weighing when none is configured.
var DefaultMaxWeight = decimal.NewFromInt(500)

var earliestBirthDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// UserLookup is the read access validators need to check uniqueness.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

// RoleLookup is the read access validators need to check role ids.
type RoleLookup interface {
	FindByID(ctx context.Context, id entity.RoleID) (*entity.Role, error)
}

// Rules carries the tunable limits and the reference time of a validation run.
type Rules struct {
	Password  policy.PasswordPolicy
	MaxWeight decimal.Decimal
	Now       time.Time
}

func (r Rules) maxWeight() decimal.Decimal {
	if r.MaxWeight.IsPositive() {
		return r.MaxWeight
	}

	return DefaultMaxWeight
}

func (r Rules) now() time.Time {
	if r.Now.IsZero() {
		return time.Now()
	}

	return r.Now
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}

		return name
	})

	return v
}

// result accumulates field errors of one validation run.
type result struct {
	fields []domainerrors.FieldError
	seen   map[string]bool
}

func (r *result) add(field, rule, message string) {
	if r.seen == nil {
		r.seen = make(map[string]bool)
	}
	key := field + "/" + rule
	if r.seen[key] {
		return
	}
	r.seen[key] = true
	r.fields = append(r.fields, domainerrors.FieldError{Field: field, Rule: rule, Message: message})
}

func (r *result) failed(field string) bool {
	for _, f := range r.fields {
		if f.Field == field {
			return true
		}
	}

	return false
}

func (r *result) err(model any) error {
	if len(r.fields) == 0 {
		return nil
	}

	return domainerrors.NewValidationError(model, r.fields)
}

// checkStruct runs the tag rules of the model.
func (r *result) checkStruct(model any) error {
	err := structValidator.Struct(model)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "failed to run struct validation")
	}

	for _, fe := range fieldErrs {
		r.add(fieldName(fe), fe.Tag(), tagMessage(fe))
	}

	return nil
}

// fieldName flattens "role_ids[1]" to "role_ids".
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}

	return name
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "alphanum":
		return "may only contain letters and digits"
	case "min":
		return "must be at least " + fe.Param() + " long"
	case "max":
		return "must be at most " + fe.Param() + " long"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid"
	}
}

func (r *result) checkBirthDate(field string, birthDate time.Time, now time.Time) {
	if birthDate.IsZero() || r.failed(field) {
		return
	}
	if birthDate.After(now) {
		r.add(field, "past", "must not be in the future")
	}
	if birthDate.Before(earliestBirthDate) {
		r.add(field, "range", "must not be before 1900-01-01")
	}
}

func (r *result) checkWeight(field string, weight, maxWeight decimal.Decimal) {
	if !weight.IsPositive() {
		r.add(field, "gt", "must be greater than 0")

		return
	}
	if weight.GreaterThan(maxWeight) {
		r.add(field, "lte", "must be at most "+maxWeight.String())
	}
}

func (r *result) checkPassword(field, password string, p policy.PasswordPolicy) {
	for _, rule := range p.Violations(password) {
		r.add(field, rule, passwordMessage(rule))
	}
}

func passwordMessage(rule string) string {
	switch rule {
	case "required":
		return "is required"
	case "min_length":
		return "is too short"
	case "lowercase":
		return "must contain a lowercase letter"
	case "uppercase":
		return "must contain an uppercase letter"
	case "digit":
		return "must contain a digit"
	case "alphanumeric":
		return "may only contain letters and digits"
	default:
		return "is invalid"
	}
}

// checkEmailFree flags the email when another user than self already owns it.
func (r *result) checkEmailFree(ctx context.Context, users UserLookup, email string, self uuid.UUID) error {
	if r.failed("email") {
		return nil
	}

	owner, err := users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to check email uniqueness")
	}
	if owner.ID != self {
		r.add("email", "unique", "is already registered")
	}

	return nil
}

// checkUsernameFree flags the username when another user than self already owns it.
func (r *result) checkUsernameFree(ctx context.Context, users UserLookup, username string, self uuid.UUID) error {
	if r.failed("username") {
		return nil
	}

	owner, err := users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to check username uniqueness")
	}
	if owner.ID != self {
		r.add("username", "unique", "is already taken")
	}

	return nil
}
