// Package policy decides who may act on whose resources. It has no
// dependencies on storage: callers pass the actor, the resource owner and
// their roles, and get a plain allow/deny back.
package policy

import "github.com/taskboard/taskboard-api/internal/models"

// Capability codenames gating coarse actions, orthogonal to ownership.
const (
	CapTaskCreate     = "task_create"
	CapTaskDeleteOwn  = "task_delete_own"
	CapTaskDeleteAny  = "task_delete_any"
	CapTaskUpdateOwn  = "task_update_own"
	CapTaskUpdateAny  = "task_update_any"
	CapUserRankChange = "user_rank_change"
	CapUserBan        = "user_ban"
	CapUserDelete     = "user_delete"
)

// capabilities maps each role to its capability set. This replaces the
// role/permission join tables of the original schema with a closed table.
var capabilities = map[models.RoleName]map[string]bool{
	models.RoleAdministrator: {
		CapTaskCreate:     true,
		CapTaskDeleteOwn:  true,
		CapTaskDeleteAny:  true,
		CapTaskUpdateOwn:  true,
		CapTaskUpdateAny:  true,
		CapUserRankChange: true,
		CapUserBan:        true,
		CapUserDelete:     true,
	},
	models.RoleModerator: {
		CapTaskCreate:    true,
		CapTaskDeleteOwn: true,
		CapTaskDeleteAny: true,
		CapTaskUpdateOwn: true,
		CapTaskUpdateAny: true,
	},
	models.RoleUser: {
		CapTaskCreate:    true,
		CapTaskDeleteOwn: true,
		CapTaskUpdateOwn: true,
	},
}

// HasCapability reports whether the role grants the capability codename.
// A nil role grants nothing.
func HasCapability(role *models.RoleName, codename string) bool {
	if role == nil {
		return false
	}
	return capabilities[*role][codename]
}

// CanAct decides whether the actor may read or modify a resource held by
// owner:
//   - administrators act on anything
//   - moderators act on plain users' resources and their own
//   - everyone else acts only on their own
func CanAct(actor *models.User, owner *models.User) bool {
	if actor.IsAdministrator() {
		return true
	}
	if actor.IsModerator() {
		if owner.IsPlainUser() {
			return true
		}
		return owner.ID == actor.ID
	}
	return owner.ID == actor.ID
}

// ListScope describes the query shape a role is allowed to see when
// listing tasks.
type ListScope struct {
	// All grants an unrestricted view (administrators).
	All bool
	// OwnerRole limits results to tasks whose owner holds this role,
	// in addition to the actor's own tasks (moderators).
	OwnerRole *models.RoleName
	// OwnerID limits results to this owner (plain users, and the "own
	// tasks" half of the moderator view).
	OwnerID *uint64
}

// ScopeFor derives the listing scope for an actor.
func ScopeFor(actor *models.User) ListScope {
	if actor.IsAdministrator() {
		return ListScope{All: true}
	}
	if actor.IsModerator() {
		role := models.RoleUser
		return ListScope{OwnerRole: &role, OwnerID: &actor.ID}
	}
	return ListScope{OwnerID: &actor.ID}
}
