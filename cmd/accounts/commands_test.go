package main

import (
	"context"
	"testing"
	"time"

	"scales/config"
	"scales/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoleIDs(t *testing.T) {
	ids, err := parseRoleIDs("1, 2,,")
	require.NoError(t, err)
	assert.Equal(t, []entity.RoleID{entity.RoleIDAdmin, entity.RoleIDUser}, ids)

	ids, err = parseRoleIDs("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = parseRoleIDs("admin")
	assert.Error(t, err)

	_, err = parseRoleIDs("70000")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("1990-03-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC), got)

	_, err = parseDate("14/03/1990")
	assert.Error(t, err)
}

func TestRunSubcommand_Unknown(t *testing.T) {
	err := runSubcommand(context.Background(), newAccountFlags(), "frobnicate", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown subcommand")
}

func TestRunSubcommand_BadFlagsFailBeforeStartup(t *testing.T) {
	err := runSubcommand(context.Background(), newAccountFlags(), "passwd", []string{"-user", "not-a-uuid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid -user")

	err = runSubcommand(context.Background(), newAccountFlags(), "register", []string{"-birth", "yesterday"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid -birth")
}

func TestCheckDriver(t *testing.T) {
	memory := &config.Config{Persistence: &config.PersistenceConfig{Driver: config.DriverMemory}}
	pg := &config.Config{Persistence: &config.PersistenceConfig{Driver: config.DriverPostgres}}

	assert.NoError(t, checkDriver(memory, "register"))
	assert.NoError(t, checkDriver(memory, "roles"))
	for _, command := range []string{"login", "passwd", "profile", "weigh", "grant"} {
		err := checkDriver(memory, command)
		require.Error(t, err, command)
		assert.Contains(t, err.Error(), "single command")

		assert.NoError(t, checkDriver(pg, command))
	}
}
