package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"greenkit/core"
)

func TestRewardForKnownActions(t *testing.T) {
	m := Default()
	p := m.RewardFor(core.RoleMember, "join_community")
	assert.Equal(t, Payout{XP: 50, Points: 100}, p)

	p = m.RewardFor(core.RoleOrganizer, "create_community")
	assert.Equal(t, Payout{XP: 200, Points: 300}, p)

	// same action key pays differently per role; members do not earn the
	// organizer payout
	assert.True(t, m.RewardFor(core.RoleMember, "create_community").Zero())
}

func TestRewardForUnknownActionIsZero(t *testing.T) {
	m := Default()
	p := m.RewardFor(core.RoleMember, "nonexistent_action")
	assert.True(t, p.Zero())
	p = m.RewardFor(core.Role("ghost"), "join_community")
	assert.True(t, p.Zero())
}

func TestOneSidedPayouts(t *testing.T) {
	m := Default()
	p := m.RewardFor(core.RoleDonor, "donate_per_10")
	assert.Equal(t, Payout{XP: 0, Points: 1}, p)
	assert.False(t, p.Zero())

	p = m.RewardFor(core.RoleOrganizer, "complete_project")
	assert.Equal(t, Payout{XP: 300, Points: 0}, p)
}

func TestForRoleAndByCategory(t *testing.T) {
	m := Default()
	member := m.ForRole(core.RoleMember)
	assert.NotEmpty(t, member)
	for _, a := range member {
		assert.Equal(t, core.RoleMember, a.Role)
	}

	training := m.ByCategory(core.RoleMember, "training")
	assert.Len(t, training, 4)
	assert.Empty(t, m.ByCategory(core.RoleAdmin, "training"))
}

func TestLaterDuplicateWins(t *testing.T) {
	m := New([]Activity{
		{Role: core.RoleMember, Action: "plant_tree", XP: 10, Points: 10},
		{Role: core.RoleMember, Action: "plant_tree", XP: 99, Points: 1},
	})
	assert.Equal(t, Payout{XP: 99, Points: 1}, m.RewardFor(core.RoleMember, "plant_tree"))
}
