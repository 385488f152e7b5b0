package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

// UserID uniquely identifies a user in the engagement domain.
type UserID string

// Role selects which level table, reward catalog, and activity payouts apply.
type Role string

const (
	RoleMember    Role = "member"
	RoleOrganizer Role = "organizer"
	RoleMentor    Role = "mentor"
	RoleDonor     Role = "donor"
	RoleAdmin     Role = "admin"
)

// Roles lists every known role in a stable order.
func Roles() []Role {
	return []Role{RoleMember, RoleOrganizer, RoleMentor, RoleDonor, RoleAdmin}
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleOrganizer, RoleMentor, RoleDonor, RoleAdmin:
		return true
	}
	return false
}

// ParseRole normalizes and validates a role string.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", errors.New("unknown role: " + s)
	}
	return r, nil
}

// ActionKey names a user action that earns XP and points, e.g. "join_community".
type ActionKey string

// Progress is an immutable snapshot of a user's engagement state.
// Producers return deep copies to maintain immutability guarantees.
type Progress struct {
	UserID   UserID    `json:"user_id"`
	Role     Role      `json:"role"`
	XP       int64     `json:"xp"`
	Points   int64     `json:"points"`
	Unlocked []string  `json:"unlocked,omitempty"`
	Updated  time.Time `json:"updated"`
}

// Clone returns a deep copy of the snapshot.
func (p Progress) Clone() Progress {
	cp := p
	cp.Unlocked = append([]string(nil), p.Unlocked...)
	return cp
}

// HasUnlocked reports whether the reward id has been redeemed already.
func (p Progress) HasUnlocked(rewardID string) bool {
	for _, id := range p.Unlocked {
		if id == rewardID {
			return true
		}
	}
	return false
}

// AddSafe adds delta to base ensuring no signed overflow occurs.
func AddSafe(base int64, delta int64) (int64, error) {
	if (delta > 0 && base > math.MaxInt64-delta) || (delta < 0 && base < math.MinInt64-delta) {
		return 0, errors.New("integer overflow in AddSafe")
	}
	return base + delta, nil
}

// NormalizeUserID trims and lowercases user identifiers.
func NormalizeUserID(id UserID) (UserID, error) {
	s := strings.TrimSpace(string(id))
	if s == "" {
		return "", errors.New("empty user id")
	}
	return UserID(strings.ToLower(s)), nil
}

// ValidateRewardID ensures non-empty reward id with simple charset check.
func ValidateRewardID(id string) error {
	s := strings.TrimSpace(id)
	if s == "" {
		return errors.New("empty reward id")
	}
	// simple check: alnum, dash, underscore
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_' {
			continue
		}
		return errors.New("invalid reward id")
	}
	return nil
}
