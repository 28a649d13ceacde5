package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func identity(userID int64, role Role, teamID *int64) *Identity {
	return &Identity{UserID: userID, Role: role, IsActive: true, TeamID: teamID}
}

func teamID(v int64) *int64 { return &v }

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		id      *Identity
		req     Requirement
		scope   Scope
		allowed bool
	}{
		{
			name:    "admin passes admin check",
			id:      identity(1, RoleAdmin, nil),
			req:     RequireAdmin,
			allowed: true,
		},
		{
			name:    "manager fails admin check",
			id:      identity(1, RoleManager, nil),
			req:     RequireAdmin,
			allowed: false,
		},
		{
			name:    "manager passes manager check",
			id:      identity(1, RoleManager, nil),
			req:     RequireManagerOrAbove,
			allowed: true,
		},
		{
			name:    "admin passes manager check",
			id:      identity(1, RoleAdmin, nil),
			req:     RequireManagerOrAbove,
			allowed: true,
		},
		{
			name:    "user fails manager check",
			id:      identity(1, RoleUser, nil),
			req:     RequireManagerOrAbove,
			allowed: false,
		},
		{
			name:    "member of the scoped team",
			id:      identity(1, RoleUser, teamID(10)),
			req:     RequireTeamMember,
			scope:   TeamScope(10),
			allowed: true,
		},
		{
			name:    "member of another team",
			id:      identity(1, RoleUser, teamID(99)),
			req:     RequireTeamMember,
			scope:   TeamScope(10),
			allowed: false,
		},
		{
			name:    "teamless user fails member check",
			id:      identity(1, RoleUser, nil),
			req:     RequireTeamMember,
			scope:   TeamScope(10),
			allowed: false,
		},
		{
			name:    "owner may act on own resource",
			id:      identity(5, RoleUser, teamID(10)),
			req:     RequireOwnerOrManager,
			scope:   OwnedScope(10, 5),
			allowed: true,
		},
		{
			name:    "team manager may act on others' resources",
			id:      identity(1, RoleManager, teamID(10)),
			req:     RequireOwnerOrManager,
			scope:   OwnedScope(10, 5),
			allowed: true,
		},
		{
			name:    "manager of another team may not",
			id:      identity(1, RoleManager, teamID(99)),
			req:     RequireOwnerOrManager,
			scope:   OwnedScope(10, 5),
			allowed: false,
		},
		{
			name:    "plain member may not touch others' resources",
			id:      identity(2, RoleUser, teamID(10)),
			req:     RequireOwnerOrManager,
			scope:   OwnedScope(10, 5),
			allowed: false,
		},
		{
			name:    "superuser bypasses everything",
			id:      &Identity{UserID: 1, Role: RoleUser, IsActive: true, IsSuperuser: true},
			req:     RequireAdmin,
			allowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decide(tt.id, tt.req, tt.scope)
			if tt.allowed {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}
