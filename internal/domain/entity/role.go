// Package entity contains the core business objects of the project.
package entity

import "slices"

// RoleID is the identifier of a Role. Roles are reference data seeded by migrations.
type RoleID int16

const (
	// RoleIDAdmin identifies the administrator role.
	RoleIDAdmin RoleID = 1
	// RoleIDUser identifies the regular user role.
	RoleIDUser RoleID = 2
)

const (
	// RoleNameAdmin is the name of the administrator role.
	RoleNameAdmin = "Admin"
	// RoleNameUser is the name of the default role given at registration.
	RoleNameUser = "User"
)

// Role represents a role a user can have in the system. Roles are immutable.
type Role struct {
	ID   RoleID
	Name string
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains the role with the given id.
func (rs Roles) Contains(id RoleID) bool {
	return slices.ContainsFunc(rs, func(r Role) bool { return r.ID == id })
}

// Names returns the role names in order.
func (rs Roles) Names() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.Name
	}

	return result
}

// IDs returns the role ids in order.
func (rs Roles) IDs() []RoleID {
	result := make([]RoleID, len(rs))
	for i, r := range rs {
		result[i] = r.ID
	}

	return result
}
