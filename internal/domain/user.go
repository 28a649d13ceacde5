package domain

import "time"

type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name,omitempty"`
	Role        Role       `json:"role"`
	IsActive    bool       `json:"is_active"`
	IsSuperuser bool       `json:"is_superuser"`
	TeamID      *int64     `json:"team_id,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// Identity is the authenticated principal attached to a request by the
// authentication middleware. It carries everything the authorization
// policy needs and nothing else.
type Identity struct {
	UserID      int64
	Email       string
	Role        Role
	IsActive    bool
	IsSuperuser bool
	TeamID      *int64 // nil until the user joins a team
}

// InTeam reports whether the identity belongs to the given team.
func (id *Identity) InTeam(teamID int64) bool {
	return id.TeamID != nil && *id.TeamID == teamID
}

func (id *Identity) IsManagerOrAbove() bool {
	return id.Role == RoleManager || id.Role == RoleAdmin
}

// IdentityOf projects a stored user into its request identity.
func IdentityOf(u *User) *Identity {
	return &Identity{
		UserID:      u.ID,
		Email:       u.Email,
		Role:        u.Role,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		TeamID:      u.TeamID,
	}
}
