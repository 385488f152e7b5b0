// Package activity maps named user actions to their XP and green-points
// payouts per role. The mapping is static configuration, consulted by the
// engine whenever an action is recorded.
package activity

import "greenkit/core"

// Activity is one earning action for a role.
type Activity struct {
	Role     core.Role      `json:"role"`
	Action   core.ActionKey `json:"action"`
	XP       int64          `json:"xp"`
	Points   int64          `json:"points"`
	Category string         `json:"category"`
}

// Payout is the (XP, Points) pair awarded for an action. The zero Payout means
// "nothing to award".
type Payout struct {
	XP     int64 `json:"xp"`
	Points int64 `json:"points"`
}

// Zero reports whether the payout awards nothing.
func (p Payout) Zero() bool { return p.XP == 0 && p.Points == 0 }

type roleAction struct {
	role   core.Role
	action core.ActionKey
}

// Mapping answers payout lookups. Immutable after construction.
type Mapping struct {
	byRole map[core.Role][]Activity
	index  map[roleAction]Payout
}

// New builds a mapping from a list of activities. Later duplicates of the same
// (role, action) pair win.
func New(activities []Activity) *Mapping {
	m := &Mapping{
		byRole: make(map[core.Role][]Activity),
		index:  make(map[roleAction]Payout, len(activities)),
	}
	for _, a := range activities {
		m.byRole[a.Role] = append(m.byRole[a.Role], a)
		m.index[roleAction{a.Role, a.Action}] = Payout{XP: a.XP, Points: a.Points}
	}
	return m
}

// Default returns the built-in Just Go Green activity mapping.
func Default() *Mapping { return New(seed) }

// RewardFor returns the payout for a (role, action) pair. Unknown pairs yield
// the zero payout rather than an error; crediting zero is a no-op upstream.
func (m *Mapping) RewardFor(role core.Role, action core.ActionKey) Payout {
	return m.index[roleAction{role, action}]
}

// ForRole lists the earning activities for a role in seed order.
func (m *Mapping) ForRole(role core.Role) []Activity {
	return append([]Activity(nil), m.byRole[role]...)
}

// ByCategory filters a role's activities by category.
func (m *Mapping) ByCategory(role core.Role, category string) []Activity {
	var out []Activity
	for _, a := range m.byRole[role] {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}
