package policy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard-api/internal/models"
)

func userWithRole(id uint64, role models.RoleName) *models.User {
	r := role
	return &models.User{ID: id, Role: &r}
}

func TestCanAct_Administrator(t *testing.T) {
	admin := userWithRole(1, models.RoleAdministrator)

	require.True(t, CanAct(admin, userWithRole(2, models.RoleUser)))
	require.True(t, CanAct(admin, userWithRole(3, models.RoleModerator)))
	require.True(t, CanAct(admin, userWithRole(4, models.RoleAdministrator)))
	require.True(t, CanAct(admin, admin))
}

func TestCanAct_Moderator(t *testing.T) {
	moderator := userWithRole(1, models.RoleModerator)

	// Plain users' resources are fair game
	require.True(t, CanAct(moderator, userWithRole(2, models.RoleUser)))
	// Their own too
	require.True(t, CanAct(moderator, moderator))
	// But not other moderators' or administrators'
	require.False(t, CanAct(moderator, userWithRole(3, models.RoleModerator)))
	require.False(t, CanAct(moderator, userWithRole(4, models.RoleAdministrator)))
}

func TestCanAct_PlainUser(t *testing.T) {
	user := userWithRole(1, models.RoleUser)

	require.True(t, CanAct(user, user))
	require.False(t, CanAct(user, userWithRole(2, models.RoleUser)))
	require.False(t, CanAct(user, userWithRole(3, models.RoleModerator)))
	require.False(t, CanAct(user, userWithRole(4, models.RoleAdministrator)))
}

func TestCanAct_NoRole(t *testing.T) {
	actor := &models.User{ID: 1}

	require.True(t, CanAct(actor, &models.User{ID: 1}))
	require.False(t, CanAct(actor, userWithRole(2, models.RoleUser)))
}

func TestHasCapability(t *testing.T) {
	admin := models.RoleAdministrator
	moderator := models.RoleModerator
	user := models.RoleUser

	require.True(t, HasCapability(&admin, CapUserRankChange))
	require.True(t, HasCapability(&admin, CapUserBan))
	require.True(t, HasCapability(&admin, CapTaskDeleteAny))

	require.True(t, HasCapability(&moderator, CapTaskUpdateAny))
	require.True(t, HasCapability(&moderator, CapTaskDeleteAny))
	require.False(t, HasCapability(&moderator, CapUserRankChange))
	require.False(t, HasCapability(&moderator, CapUserBan))

	require.True(t, HasCapability(&user, CapTaskCreate))
	require.True(t, HasCapability(&user, CapTaskDeleteOwn))
	require.False(t, HasCapability(&user, CapTaskDeleteAny))
	require.False(t, HasCapability(&user, CapTaskUpdateAny))

	require.False(t, HasCapability(nil, CapTaskCreate))

	unknown := models.RoleName("ghost")
	require.False(t, HasCapability(&unknown, CapTaskCreate))
}

func TestScopeFor(t *testing.T) {
	adminScope := ScopeFor(userWithRole(1, models.RoleAdministrator))
	require.True(t, adminScope.All)

	modScope := ScopeFor(userWithRole(2, models.RoleModerator))
	require.False(t, modScope.All)
	require.NotNil(t, modScope.OwnerRole)
	require.Equal(t, models.RoleUser, *modScope.OwnerRole)
	require.NotNil(t, modScope.OwnerID)
	require.Equal(t, uint64(2), *modScope.OwnerID)

	userScope := ScopeFor(userWithRole(3, models.RoleUser))
	require.False(t, userScope.All)
	require.Nil(t, userScope.OwnerRole)
	require.NotNil(t, userScope.OwnerID)
	require.Equal(t, uint64(3), *userScope.OwnerID)
}
