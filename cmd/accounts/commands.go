package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"scales/internal/domain/entity"
	domainerrors "scales/internal/domain/errors"
	"scales/internal/infra/persistence/postgres"
	"scales/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

func handleMigrate(ctx context.Context, flags *accountFlags, args []string) error {
	if err := flags.Migrate.cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse migrate flags")
	}

	return withDatabase(ctx, func(db *gorm.DB) error {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		fmt.Println("schema is up to date")

		return nil
	})
}

func handleRegister(ctx context.Context, flags *accountFlags, args []string) error {
	f := flags.Register
	if err := f.cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse register flags")
	}

	birthDate, err := parseDate(*f.birthDate)
	if err != nil {
		return errors.Wrap(err, "invalid -birth")
	}
	weight, err := decimal.NewFromString(*f.weight)
	if err != nil {
		return errors.Wrap(err, "invalid -weight")
	}

	return withAccounts(ctx, "register", func(accounts usecase.AccountUsecase) error {
		out, err := accounts.Register(ctx, &usecase.RegisterInput{
			Email:     *f.email,
			Name:      *f.name,
			Username:  *f.username,
			BirthDate: birthDate,
			Password:  *f.password,
			Weight:    weight,
		})
		if err != nil {
			return describe(err)
		}
		fmt.Printf("registered %s\n", out.UserID)

		return nil
	})
}

func handleLogin(ctx context.Context, flags *accountFlags, args []string) error {
	f := flags.Login
	if err := f.cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse login flags")
	}

	return withAccounts(ctx, "login", func(accounts usecase.AccountUsecase) error {
		verdict, err := accounts.Login(ctx, &usecase.LoginInput{Email: *f.email, Password: *f.password})
		if err != nil {
			return err
		}
		if !verdict.Authenticated() {
			return errors.Errorf("login rejected: %s", verdict.Status)
		}

		fmt.Printf("%s\t%s\t%s\t%s\n",
			verdict.Identity.ID, verdict.Identity.Username, verdict.Identity.Email, strings.Join(verdict.Roles, ","))

		return nil
	})
}

func handlePasswd(ctx context.Context, flags *accountFlags, args []string) error {
	f := flags.Passwd
	if err := f.cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse passwd flags")
	}

	userID, err := uuid.Parse(*f.user)
	if err != nil {
		return errors.Wrap(err, "invalid -user")
	}

	return withAccounts(ctx, "passwd", func(accounts usecase.AccountUsecase) error {
		ok, err := accounts.ChangePassword(ctx, userID, &usecase.ChangePasswordInput{
			OldPassword: *f.oldPassword,
			NewPassword: *f.newPassword,
		})
		if err != nil {
			return describe(err)
		}
		if !ok {
			return errors.New("password change rejected")
		}
		fmt.Println("password changed")

		return nil
	})
}

func handleProfile(ctx context.Context, flags *accountFlags, args []string) error {
	f := flags.Profile
	if err := f.cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse profile flags")
	}

	userID, err := uuid.Parse(*f.user)
	if err != nil {
		return errors.Wrap(err, "invalid -user")
	}

	return withAccounts(ctx, "profile", func(accounts usecase.AccountUsecase) error {
		view, err := accounts.GetUserInfo(ctx, userID)
		if err != nil {
			return describe(err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return errors.Wrap(enc.Encode(view), "failed to print profile")
	})
}

func handleWeigh(ctx context.Context, flags *accountFlags, args []string) error {
	f := flags.Weigh
	if err := f.cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse weigh flags")
	}

	userID, err := uuid.Parse(*f.user)
	if err != nil {
		return errors.Wrap(err, "invalid -user")
	}
	weight, err := decimal.NewFromString(*f.weight)
	if err != nil {
		return errors.Wrap(err, "invalid -weight")
	}
	weighedAt := time.Now()
	if *f.date != "" {
		if weighedAt, err = parseDate(*f.date); err != nil {
			return errors.Wrap(err, "invalid -date")
		}
	}

	return withAccounts(ctx, "weigh", func(accounts usecase.AccountUsecase) error {
		err := accounts.AddWeight(ctx, userID, &usecase.AddWeightInput{WeighingDate: weighedAt, Weight: weight})
		if err != nil {
			return describe(err)
		}
		fmt.Println("weighing recorded")

		return nil
	})
}

func handleRoles(ctx context.Context, flags *accountFlags, args []string) error {
	if err := flags.Roles.cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse roles flags")
	}

	return withAccounts(ctx, "roles", func(accounts usecase.AccountUsecase) error {
		roles, err := accounts.ListRoles(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		for _, role := range roles {
			fmt.Fprintf(w, "%d\t%s\n", role.ID, role.Name)
		}

		return errors.Wrap(w.Flush(), "failed to print roles")
	})
}

func handleGrant(ctx context.Context, flags *accountFlags, args []string) error {
	f := flags.Grant
	if err := f.cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse grant flags")
	}

	userID, err := uuid.Parse(*f.user)
	if err != nil {
		return errors.Wrap(err, "invalid -user")
	}
	roleIDs, err := parseRoleIDs(*f.roles)
	if err != nil {
		return errors.Wrap(err, "invalid -roles")
	}

	return withAccounts(ctx, "grant", func(accounts usecase.AccountUsecase) error {
		model, err := accounts.GetUserEditModel(ctx, userID)
		if err != nil {
			return describe(err)
		}

		input := model.EditUserInput
		input.RoleIDs = roleIDs
		input.Disabled = *f.disable

		if err := accounts.EditUserProfile(ctx, &input); err != nil {
			return describe(err)
		}
		fmt.Println("account updated")

		return nil
	})
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "expected %s", dateLayout)
	}

	return t, nil
}

func parseRoleIDs(value string) ([]entity.RoleID, error) {
	var ids []entity.RoleID
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 16)
		if err != nil {
			return nil, errors.Wrapf(err, "role id %q", part)
		}
		ids = append(ids, entity.RoleID(id))
	}

	return ids, nil
}

// describe prints the caller-facing report of err to stderr before returning it.
func describe(err error) error {
	enc := json.NewEncoder(os.Stderr)
	enc.SetIndent("", "  ")
	_ = enc.Encode(domainerrors.NewErrorInfo(err))

	return err
}
