// Package rewards defines the per-role catalog of redeemable rewards.
// Rewards are static seed data; which rewards a user has unlocked is tracked
// per user by the engine, never on the catalog itself.
package rewards

import "greenkit/core"

// Reward is one redeemable catalog entry.
type Reward struct {
	ID          string    `json:"id"`
	Role        core.Role `json:"role"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PointsCost  int64     `json:"points_cost"`
	Icon        string    `json:"icon"`
	Category    string    `json:"category"`
	// Unlocked is filled on per-user views only; the catalog stores it false.
	Unlocked bool `json:"unlocked,omitempty"`
}

// Catalog answers reward lookups. Immutable after construction.
type Catalog struct {
	byRole map[core.Role][]Reward
	byID   map[string]Reward
}

// New builds a catalog from a reward list, preserving insertion order per role.
func New(list []Reward) *Catalog {
	c := &Catalog{
		byRole: make(map[core.Role][]Reward),
		byID:   make(map[string]Reward, len(list)),
	}
	for _, r := range list {
		c.byRole[r.Role] = append(c.byRole[r.Role], r)
		c.byID[r.ID] = r
	}
	return c
}

// Default returns the built-in Just Go Green reward catalog.
func Default() *Catalog { return New(seed) }

// ForRole lists a role's rewards in seed order.
func (c *Catalog) ForRole(role core.Role) []Reward {
	return append([]Reward(nil), c.byRole[role]...)
}

// ByID looks up a reward by id.
func (c *Catalog) ByID(id string) (Reward, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// ForUser lists a role's rewards with Unlocked set from the user's progress.
func (c *Catalog) ForUser(p core.Progress) []Reward {
	out := c.ForRole(p.Role)
	for i := range out {
		out[i].Unlocked = p.HasUnlocked(out[i].ID)
	}
	return out
}
