// Package levels defines the per-role level tables and the resolver that maps
// an XP balance to a level, progress percentage, and distance to the next tier.
package levels

import (
	"errors"
	"fmt"

	"greenkit/core"
)

// Level is one named tier of a role's progression ladder. XP ranges are
// inclusive on both ends; the final tier of every ladder is unbounded and
// carries MaxXP < 0.
type Level struct {
	Level    int64    `json:"level"`
	Name     string   `json:"name"`
	MinXP    int64    `json:"min_xp"`
	MaxXP    int64    `json:"max_xp"`
	Icon     string   `json:"icon"`
	Color    string   `json:"color"`
	Benefits []string `json:"benefits,omitempty"`
}

// Unbounded reports whether the level has no upper XP bound.
func (l Level) Unbounded() bool { return l.MaxXP < 0 }

// Contains reports whether xp falls inside the level's XP range.
func (l Level) Contains(xp int64) bool {
	if xp < l.MinXP {
		return false
	}
	return l.Unbounded() || xp <= l.MaxXP
}

// Table holds one ladder per role.
type Table map[core.Role][]Level

// Resolver answers level lookups against a validated Table. It is immutable
// after construction and safe for concurrent use.
type Resolver struct {
	table Table
}

// NewResolver validates the table and builds a resolver over it. Each role's
// ladder must start at 0 XP, be contiguous with no gaps or overlaps, number
// its levels 1..n, and end with exactly one unbounded tier.
func NewResolver(t Table) (*Resolver, error) {
	if len(t) == 0 {
		return nil, errors.New("levels: empty table")
	}
	for role, ladder := range t {
		if err := validateLadder(ladder); err != nil {
			return nil, fmt.Errorf("levels: role %s: %w", role, err)
		}
	}
	return &Resolver{table: t}, nil
}

// Default returns a resolver over the built-in Just Go Green ladders.
func Default() *Resolver {
	r, err := NewResolver(defaultTable)
	if err != nil {
		// the built-in table is validated by tests; a failure here is a bug
		panic(err)
	}
	return r
}

func validateLadder(ladder []Level) error {
	if len(ladder) == 0 {
		return errors.New("no levels defined")
	}
	if ladder[0].MinXP != 0 {
		return errors.New("first level must start at 0 XP")
	}
	for i, l := range ladder {
		if l.Level != int64(i)+1 {
			return fmt.Errorf("level numbers must be 1..n, got %d at index %d", l.Level, i)
		}
		last := i == len(ladder)-1
		if last {
			if !l.Unbounded() {
				return errors.New("final level must be unbounded")
			}
			continue
		}
		if l.Unbounded() {
			return fmt.Errorf("level %d is unbounded but not final", l.Level)
		}
		if l.MaxXP < l.MinXP {
			return fmt.Errorf("level %d has inverted XP range", l.Level)
		}
		if ladder[i+1].MinXP != l.MaxXP+1 {
			return fmt.Errorf("gap or overlap between level %d and %d", l.Level, l.Level+1)
		}
	}
	return nil
}

// LevelsFor returns the ladder for a role in ascending order. Unknown roles
// yield nil.
func (r *Resolver) LevelsFor(role core.Role) []Level {
	ladder := r.table[role]
	return append([]Level(nil), ladder...)
}

// LevelFor returns the level whose range contains xp. Negative XP and roles
// absent from the table fall back to the lowest defined level rather than
// failing; absent roles resolve against the member ladder when one exists and
// otherwise against the first ladder in canonical role order.
func (r *Resolver) LevelFor(role core.Role, xp int64) Level {
	ladder := r.ladder(role)
	for _, l := range ladder {
		if l.Contains(xp) {
			return l
		}
	}
	if len(ladder) == 0 {
		return Level{}
	}
	return ladder[0]
}

// NextLevel returns the level following current for the role, or false when
// current is already the top of the ladder.
func (r *Resolver) NextLevel(role core.Role, current int64) (Level, bool) {
	for _, l := range r.ladder(role) {
		if l.Level == current+1 {
			return l, true
		}
	}
	return Level{}, false
}

// ProgressPercent reports progress through the current level as a value in
// [0,100]. At the top level it is always 100.
func (r *Resolver) ProgressPercent(role core.Role, xp int64) float64 {
	cur := r.LevelFor(role, xp)
	next, ok := r.NextLevel(role, cur.Level)
	if !ok {
		return 100
	}
	earned := float64(xp - cur.MinXP)
	span := float64(next.MinXP - cur.MinXP)
	pct := earned / span * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// XPToNext returns how much XP remains until the next level, or 0 at the top.
func (r *Resolver) XPToNext(role core.Role, xp int64) int64 {
	cur := r.LevelFor(role, xp)
	next, ok := r.NextLevel(role, cur.Level)
	if !ok {
		return 0
	}
	remaining := next.MinXP - xp
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CheckLevelUp compares the levels for two XP balances and reports whether the
// new balance crossed into a higher level.
func (r *Resolver) CheckLevelUp(role core.Role, oldXP, newXP int64) (old Level, now Level, leveled bool) {
	old = r.LevelFor(role, oldXP)
	now = r.LevelFor(role, newXP)
	return old, now, now.Level > old.Level
}

// EstimateToNext estimates, in days, how long until the next level given an
// average daily XP rate. It returns 0 at the top level and -1 when the rate is
// not positive.
func (r *Resolver) EstimateToNext(role core.Role, xp, avgDailyXP int64) int64 {
	needed := r.XPToNext(role, xp)
	if needed == 0 {
		return 0
	}
	if avgDailyXP <= 0 {
		return -1
	}
	days := needed / avgDailyXP
	if needed%avgDailyXP != 0 {
		days++
	}
	return days
}

func (r *Resolver) ladder(role core.Role) []Level {
	if ladder, ok := r.table[role]; ok {
		return ladder
	}
	if ladder, ok := r.table[core.RoleMember]; ok {
		return ladder
	}
	// custom tables may omit the member ladder entirely; pick the first
	// defined role in canonical order so lookups stay total
	for _, fallback := range core.Roles() {
		if ladder, ok := r.table[fallback]; ok {
			return ladder
		}
	}
	return nil
}
