package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestUser_CurrentWeight(t *testing.T) {
	u := &User{}
	_, ok := u.CurrentWeight()
	assert.False(t, ok)

	u.WeightHistory = []WeightHistory{
		{ID: 1, WeighingDate: day(5), Weight: decimal.NewFromInt(80)},
		{ID: 2, WeighingDate: day(9), Weight: decimal.NewFromInt(78)},
		{ID: 3, WeighingDate: day(7), Weight: decimal.NewFromInt(79)},
	}
	current, ok := u.CurrentWeight()
	require.True(t, ok)
	assert.Equal(t, int64(2), current.ID)

	u.WeightHistory = append(u.WeightHistory, WeightHistory{ID: 4, WeighingDate: day(9), Weight: decimal.NewFromInt(77)})
	current, _ = u.CurrentWeight()
	assert.Equal(t, int64(4), current.ID, "same date resolves to the entry recorded last")
}

func TestUser_TotalPoints(t *testing.T) {
	u := &User{PointsHistory: []PointsHistory{{Points: 10}, {Points: -3}, {Points: 5}}}
	assert.Equal(t, 12, u.TotalPoints())
	assert.Zero(t, (&User{}).TotalPoints())
}

func TestUser_Roles(t *testing.T) {
	u := &User{}
	admin := Role{ID: RoleIDAdmin, Name: RoleNameAdmin}
	user := Role{ID: RoleIDUser, Name: RoleNameUser}

	u.AttachRole(user)
	u.AttachRole(admin)
	u.AttachRole(user)
	assert.Equal(t, []RoleID{RoleIDUser, RoleIDAdmin}, u.Roles.IDs())
	assert.Equal(t, []string{RoleNameUser, RoleNameAdmin}, u.Roles.Names())
	assert.True(t, u.Roles.Contains(RoleIDAdmin))

	u.ClearRoles()
	assert.NotNil(t, u.Roles)
	assert.Empty(t, u.Roles)
	assert.False(t, u.Roles.Contains(RoleIDAdmin))
}

func TestUser_AppendWeight(t *testing.T) {
	u := &User{ID: uuid.New()}

	entry := u.AppendWeight(day(3), decimal.RequireFromString("81.25"))

	assert.Equal(t, u.ID, entry.UserID)
	require.Len(t, u.WeightHistory, 1)
	assert.Equal(t, entry, u.WeightHistory[0])
}

func TestUser_AppendWeight_DropsTimeOfDay(t *testing.T) {
	u := &User{ID: uuid.New()}

	u.AppendWeight(day(3).Add(12*time.Hour), decimal.NewFromInt(70))
	entry := u.AppendWeight(day(3), decimal.NewFromInt(68))

	assert.Equal(t, day(3), u.WeightHistory[0].WeighingDate)
	assert.Equal(t, day(3), entry.WeighingDate)

	current, ok := u.CurrentWeight()
	require.True(t, ok)
	assert.True(t, current.Weight.Equal(decimal.NewFromInt(68)), "same-day weighing recorded last wins")
}

func TestWeighingDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	late := time.Date(2024, time.March, 2, 23, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2024, time.March, 2, 0, 0, 0, 0, loc), WeighingDay(late))
	assert.Equal(t, day(4), WeighingDay(day(4)))
}

func TestAuthVerdict(t *testing.T) {
	var nilVerdict *AuthVerdict
	assert.False(t, nilVerdict.Authenticated())
	assert.True(t, (&AuthVerdict{Status: AuthAuthenticated}).Authenticated())
	assert.False(t, (&AuthVerdict{Status: AuthDisabled}).Authenticated())

	assert.Equal(t, "authenticated", AuthAuthenticated.String())
	assert.Equal(t, "disabled", AuthDisabled.String())
	assert.Equal(t, "unauthenticated", AuthUnauthenticated.String())
}
