package core

import "time"

// EventType enumerates domain events.
type EventType string

const (
	EventXPAdded        EventType = "xp_added"
	EventPointsAdded    EventType = "points_added"
	EventPointsSpent    EventType = "points_spent"
	EventLevelUp        EventType = "level_up"
	EventRewardUnlocked EventType = "reward_unlocked"
)

// Event represents an immutable domain event.
type Event struct {
	Type      EventType      `json:"type"`
	Time      time.Time      `json:"time"`
	UserID    UserID         `json:"user_id"`
	Role      Role           `json:"role,omitempty"`
	Reason    string         `json:"reason,omitempty"`
	Delta     int64          `json:"delta,omitempty"`
	Total     int64          `json:"total,omitempty"`
	Level     int64          `json:"level,omitempty"`
	FromLevel int64          `json:"from_level,omitempty"`
	LevelName string         `json:"level_name,omitempty"`
	RewardID  string         `json:"reward_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func NewXPAdded(user UserID, role Role, delta, total int64, reason string) Event {
	return Event{Type: EventXPAdded, Time: time.Now().UTC(), UserID: user, Role: role, Delta: delta, Total: total, Reason: reason}
}

func NewPointsAdded(user UserID, role Role, delta, total int64, reason string) Event {
	return Event{Type: EventPointsAdded, Time: time.Now().UTC(), UserID: user, Role: role, Delta: delta, Total: total, Reason: reason}
}

func NewPointsSpent(user UserID, role Role, delta, total int64, reason string) Event {
	return Event{Type: EventPointsSpent, Time: time.Now().UTC(), UserID: user, Role: role, Delta: delta, Total: total, Reason: reason}
}

// NewLevelUp records a crossing from one level to another. Total carries the
// XP balance that triggered the crossing.
func NewLevelUp(user UserID, role Role, from, to int64, name string, xp int64) Event {
	return Event{Type: EventLevelUp, Time: time.Now().UTC(), UserID: user, Role: role, FromLevel: from, Level: to, LevelName: name, Total: xp}
}

func NewRewardUnlocked(user UserID, role Role, rewardID string, cost, remaining int64) Event {
	return Event{Type: EventRewardUnlocked, Time: time.Now().UTC(), UserID: user, Role: role, RewardID: rewardID, Delta: cost, Total: remaining}
}
