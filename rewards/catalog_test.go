package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenkit/core"
)

func TestForRolePreservesSeedOrder(t *testing.T) {
	c := Default()
	member := c.ForRole(core.RoleMember)
	require.Len(t, member, 3)
	assert.Equal(t, "mem-1", member[0].ID)
	assert.Equal(t, "mem-2", member[1].ID)
	assert.Equal(t, "mem-3", member[2].ID)

	for _, role := range []core.Role{core.RoleOrganizer, core.RoleMentor, core.RoleDonor} {
		assert.Len(t, c.ForRole(role), 5, "role %s", role)
	}
	assert.Empty(t, c.ForRole(core.RoleAdmin))
}

func TestByID(t *testing.T) {
	c := Default()
	r, ok := c.ByID("don-4")
	require.True(t, ok)
	assert.Equal(t, int64(5000), r.PointsCost)
	assert.Equal(t, core.RoleDonor, r.Role)

	_, ok = c.ByID("nope")
	assert.False(t, ok)
}

func TestCatalogNeverMarkedUnlocked(t *testing.T) {
	c := Default()
	for _, role := range core.Roles() {
		for _, r := range c.ForRole(role) {
			assert.False(t, r.Unlocked)
			assert.Greater(t, r.PointsCost, int64(0))
		}
	}
}

func TestForUserSetsUnlockedFromProgress(t *testing.T) {
	c := Default()
	p := core.Progress{UserID: "u", Role: core.RoleMember, Unlocked: []string{"mem-2"}}
	view := c.ForUser(p)
	require.Len(t, view, 3)
	assert.False(t, view[0].Unlocked)
	assert.True(t, view[1].Unlocked)

	// the view must not leak into the catalog
	again, _ := c.ByID("mem-2")
	assert.False(t, again.Unlocked)
}
