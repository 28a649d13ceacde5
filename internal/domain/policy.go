package domain

// Requirement is the access level an operation demands. Every mutation
// in the system is gated through Decide with exactly one of these.
type Requirement int

const (
	RequireAdmin Requirement = iota
	RequireManagerOrAbove
	RequireTeamMember
	RequireOwnerOrManager
)

// Scope describes the target resource: the team it belongs to and, for
// owner-sensitive operations, the owning user.
type Scope struct {
	TeamID  *int64
	OwnerID int64
}

func TeamScope(teamID int64) Scope {
	return Scope{TeamID: &teamID}
}

func OwnedScope(teamID, ownerID int64) Scope {
	return Scope{TeamID: &teamID, OwnerID: ownerID}
}

// Decide is the single authorization decision point. Rules are checked
// in order, first match wins; superusers bypass everything. Pure: no
// I/O, the caller supplies the resource scope.
func Decide(id *Identity, req Requirement, scope Scope) error {
	if id.IsSuperuser {
		return nil
	}

	switch req {
	case RequireAdmin:
		if id.Role == RoleAdmin {
			return nil
		}

	case RequireManagerOrAbove:
		if id.IsManagerOrAbove() {
			return nil
		}

	case RequireTeamMember:
		if scope.TeamID != nil && id.InTeam(*scope.TeamID) {
			return nil
		}

	case RequireOwnerOrManager:
		if id.UserID == scope.OwnerID {
			return nil
		}
		if id.IsManagerOrAbove() && scope.TeamID != nil && id.InTeam(*scope.TeamID) {
			return nil
		}
	}

	return ErrForbidden
}
