package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
)

// Supported subcommands:
// - migrate:  Apply schema migrations (postgres only)
// - register: Create an account
// - login:    Check credentials and print the verdict
// - passwd:   Change the password of an account
// - profile:  Print the profile view of an account
// - weigh:    Record a weighing
// - roles:    List assignable roles
// - grant:    Replace the roles of an account and toggle its disabled flag

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runSubcommand(ctx, newAccountFlags(), os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

type accountFlags struct {
	Migrate  migrateFlags
	Register registerFlags
	Login    loginFlags
	Passwd   passwdFlags
	Profile  profileFlags
	Weigh    weighFlags
	Roles    rolesFlags
	Grant    grantFlags
}

type migrateFlags struct {
	cmd *flag.FlagSet
}

type registerFlags struct {
	cmd       *flag.FlagSet
	email     *string
	name      *string
	username  *string
	birthDate *string
	password  *string
	weight    *string
}

type loginFlags struct {
	cmd      *flag.FlagSet
	email    *string
	password *string
}

type passwdFlags struct {
	cmd         *flag.FlagSet
	user        *string
	oldPassword *string
	newPassword *string
}

type profileFlags struct {
	cmd  *flag.FlagSet
	user *string
}

type weighFlags struct {
	cmd    *flag.FlagSet
	user   *string
	weight *string
	date   *string
}

type rolesFlags struct {
	cmd *flag.FlagSet
}

type grantFlags struct {
	cmd     *flag.FlagSet
	user    *string
	roles   *string
	disable *bool
}

func newAccountFlags() *accountFlags {
	migrateCmd := flag.NewFlagSet("migrate", flag.ContinueOnError)
	registerCmd := flag.NewFlagSet("register", flag.ContinueOnError)
	loginCmd := flag.NewFlagSet("login", flag.ContinueOnError)
	passwdCmd := flag.NewFlagSet("passwd", flag.ContinueOnError)
	profileCmd := flag.NewFlagSet("profile", flag.ContinueOnError)
	weighCmd := flag.NewFlagSet("weigh", flag.ContinueOnError)
	rolesCmd := flag.NewFlagSet("roles", flag.ContinueOnError)
	grantCmd := flag.NewFlagSet("grant", flag.ContinueOnError)

	return &accountFlags{
		Migrate: migrateFlags{cmd: migrateCmd},
		Register: registerFlags{
			cmd:       registerCmd,
			email:     registerCmd.String("email", "", "Email address of the new account"),
			name:      registerCmd.String("name", "", "Display name"),
			username:  registerCmd.String("username", "", "Public handle (3-32 letters or digits)"),
			birthDate: registerCmd.String("birth", "", "Birth date (YYYY-MM-DD)"),
			password:  registerCmd.String("password", "", "Initial password"),
			weight:    registerCmd.String("weight", "", "Initial weight in kg"),
		},
		Login: loginFlags{
			cmd:      loginCmd,
			email:    loginCmd.String("email", "", "Email address"),
			password: loginCmd.String("password", "", "Password"),
		},
		Passwd: passwdFlags{
			cmd:         passwdCmd,
			user:        passwdCmd.String("user", "", "Account id"),
			oldPassword: passwdCmd.String("old", "", "Current password"),
			newPassword: passwdCmd.String("new", "", "New password"),
		},
		Profile: profileFlags{
			cmd:  profileCmd,
			user: profileCmd.String("user", "", "Account id"),
		},
		Weigh: weighFlags{
			cmd:    weighCmd,
			user:   weighCmd.String("user", "", "Account id"),
			weight: weighCmd.String("weight", "", "Weight in kg"),
			date:   weighCmd.String("date", "", "Weighing date (YYYY-MM-DD, default now)"),
		},
		Roles: rolesFlags{cmd: rolesCmd},
		Grant: grantFlags{
			cmd:     grantCmd,
			user:    grantCmd.String("user", "", "Account id"),
			roles:   grantCmd.String("roles", "", "Comma separated role ids replacing the current set"),
			disable: grantCmd.Bool("disable", false, "Disable the account"),
		},
	}
}

func runSubcommand(ctx context.Context, flags *accountFlags, name string, args []string) error {
	switch name {
	case "migrate":
		return handleMigrate(ctx, flags, args)
	case "register":
		return handleRegister(ctx, flags, args)
	case "login":
		return handleLogin(ctx, flags, args)
	case "passwd":
		return handlePasswd(ctx, flags, args)
	case "profile":
		return handleProfile(ctx, flags, args)
	case "weigh":
		return handleWeigh(ctx, flags, args)
	case "roles":
		return handleRoles(ctx, flags, args)
	case "grant":
		return handleGrant(ctx, flags, args)
	case "help", "-h", "--help":
		printUsage()

		return nil
	default:
		printUsage()

		return errors.Errorf("unknown subcommand %q", name)
	}
}

func printUsage() {
	fmt.Println(`Account management tool

Usage:
  accounts <command> [options]

Commands:
  migrate   Apply schema migrations
  register  Create an account
  login     Check credentials
  passwd    Change a password
  profile   Show an account profile
  weigh     Record a weighing
  roles     List assignable roles
  grant     Replace the roles of an account

Examples:
  accounts migrate
  accounts register -email a@b.com -name Alice -username alice -birth 1990-03-14 -password Abcdef12 -weight 70
  accounts login -email a@b.com -password Abcdef12
  accounts grant -user <id> -roles 1,2

Configuration is read from config/config.yaml and environment variables.
With persistence.driver set to memory nothing outlives a single command, so
only register and roles are available.`)
}
