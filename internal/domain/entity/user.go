// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is the core entity in the system, representing a unique "person" or "account".
type User struct {
	ID            uuid.UUID       // The Global Unique Identifier (GUID) for the user.
	Email         string          // The user's login identifier, stored trimmed and lower-cased.
	Username      string          // The user's public handle.
	Name          string          // The user's display name.
	BirthDate     time.Time       // The user's date of birth (date part only).
	PasswordHash  []byte          // Digest of the password under PasswordSalt.
	PasswordSalt  []byte          // Per-user salt, fixed at registration.
	IsDeleted     bool            // Soft-delete flag. Disabled users are rejected at login.
	LastLoginAt   time.Time       // Timestamp of the last (bookkeeping) login.
	ModifiedAt    time.Time       // Timestamp of the last modification to this user's data.
	Roles         Roles           // Roles assigned to the user. Never empty after registration.
	WeightHistory []WeightHistory // Append-only weighings, in insertion order.
	PointsHistory []PointsHistory // Points awarded to the user. Read-only for this core.
}

// WeightHistory is a single weighing of a user.
type WeightHistory struct {
	ID           int64
	UserID       uuid.UUID
	WeighingDate time.Time
	Weight       decimal.Decimal
}

// PointsHistory is a single award of points to a user.
type PointsHistory struct {
	ID        int64
	UserID    uuid.UUID
	Points    int
	Reason    string
	AwardedAt time.Time
}

// CurrentWeight returns the most recent weighing of the user.
// Entries sharing a weighing date resolve to the one recorded last.
func (u *User) CurrentWeight() (WeightHistory, bool) {
	var (
		latest WeightHistory
		found  bool
	)
	for _, entry := range u.WeightHistory {
		if !found || !entry.WeighingDate.Before(latest.WeighingDate) {
			latest = entry
			found = true
		}
	}

	return latest, found
}

// TotalPoints sums every points award of the user.
func (u *User) TotalPoints() int {
	total := 0
	for _, entry := range u.PointsHistory {
		total += entry.Points
	}

	return total
}

// ClearRoles drops every role association of the user.
func (u *User) ClearRoles() {
	u.Roles = Roles{}
}

// AttachRole associates the role with the user unless it is already attached.
func (u *User) AttachRole(role Role) {
	if u.Roles.Contains(role.ID) {
		return
	}
	u.Roles = append(u.Roles, role)
}

// AppendWeight records a new weighing for the user. Weighings are kept per
// calendar day, so the time of day is dropped.
func (u *User) AppendWeight(weighingDate time.Time, weight decimal.Decimal) WeightHistory {
	entry := WeightHistory{
		UserID:       u.ID,
		WeighingDate: WeighingDay(weighingDate),
		Weight:       weight,
	}
	u.WeightHistory = append(u.WeightHistory, entry)

	return entry
}

// WeighingDay returns midnight of the calendar day of t, in t's location.
func WeighingDay(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
