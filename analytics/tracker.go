// Package analytics aggregates engine events into the engagement and impact
// numbers the admin dashboard and donor impact reports render.
package analytics

import (
	"context"
	"sort"
	"sync"
	"time"

	"greenkit/core"
)

// Hook receives domain events for KPI aggregation.
type Hook interface {
	OnEvent(e core.Event)
}

// Subscriber is the slice of the event bus the tracker needs to attach itself.
type Subscriber interface {
	Subscribe(typ core.EventType, handler func(context.Context, core.Event)) func()
}

// Tracker aggregates events in memory. Safe for concurrent use.
type Tracker struct {
	mu sync.Mutex

	activeByDay  map[string]map[core.UserID]struct{}
	xpByDay      map[string]int64
	earnedByDay  map[string]int64
	spentByDay   map[string]int64
	actionCounts map[string]int64
	levelUps     int64
	levelDist    map[int64]int64
	redemptions  map[string]int64
	rolesSeen    map[core.Role]map[core.UserID]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{
		activeByDay:  map[string]map[core.UserID]struct{}{},
		xpByDay:      map[string]int64{},
		earnedByDay:  map[string]int64{},
		spentByDay:   map[string]int64{},
		actionCounts: map[string]int64{},
		levelDist:    map[int64]int64{},
		redemptions:  map[string]int64{},
		rolesSeen:    map[core.Role]map[core.UserID]struct{}{},
	}
}

// Attach subscribes the tracker to every event type on the bus and returns a
// detach func.
func (t *Tracker) Attach(bus Subscriber) func() {
	types := []core.EventType{
		core.EventXPAdded,
		core.EventPointsAdded,
		core.EventPointsSpent,
		core.EventLevelUp,
		core.EventRewardUnlocked,
	}
	unsubs := make([]func(), 0, len(types))
	for _, typ := range types {
		unsubs = append(unsubs, bus.Subscribe(typ, func(_ context.Context, e core.Event) {
			t.OnEvent(e)
		}))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func dayOf(ts time.Time) string { return ts.UTC().Format("2006-01-02") }

func (t *Tracker) OnEvent(e core.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	day := dayOf(e.Time)
	users := t.activeByDay[day]
	if users == nil {
		users = map[core.UserID]struct{}{}
		t.activeByDay[day] = users
	}
	users[e.UserID] = struct{}{}

	if e.Role != "" {
		roleUsers := t.rolesSeen[e.Role]
		if roleUsers == nil {
			roleUsers = map[core.UserID]struct{}{}
			t.rolesSeen[e.Role] = roleUsers
		}
		roleUsers[e.UserID] = struct{}{}
	}

	switch e.Type {
	case core.EventXPAdded:
		t.xpByDay[day] += e.Delta
		if e.Reason != "" {
			t.actionCounts[e.Reason]++
		}
	case core.EventPointsAdded:
		t.earnedByDay[day] += e.Delta
	case core.EventPointsSpent:
		t.spentByDay[day] += e.Delta
	case core.EventLevelUp:
		t.levelUps++
		t.levelDist[e.Level]++
	case core.EventRewardUnlocked:
		t.redemptions[e.RewardID]++
	}
}

// DayStats is the aggregate for one calendar day.
type DayStats struct {
	Day          string `json:"day"`
	ActiveUsers  int    `json:"active_users"`
	XPAwarded    int64  `json:"xp_awarded"`
	PointsEarned int64  `json:"points_earned"`
	PointsSpent  int64  `json:"points_spent"`
}

// Report is a point-in-time aggregate snapshot.
type Report struct {
	GeneratedAt  time.Time         `json:"generated_at"`
	Days         []DayStats        `json:"days"`
	ActionCounts map[string]int64  `json:"action_counts"`
	LevelUps     int64             `json:"level_ups"`
	LevelReached map[int64]int64   `json:"levels_reached"`
	Redemptions  map[string]int64  `json:"redemptions"`
	UsersByRole  map[core.Role]int `json:"users_by_role"`
}

// Snapshot builds a report, days sorted ascending.
func (t *Tracker) Snapshot() Report {
	t.mu.Lock()
	defer t.mu.Unlock()

	days := make([]string, 0, len(t.activeByDay))
	for d := range t.activeByDay {
		days = append(days, d)
	}
	sort.Strings(days)

	r := Report{
		GeneratedAt:  time.Now().UTC(),
		ActionCounts: map[string]int64{},
		LevelUps:     t.levelUps,
		LevelReached: map[int64]int64{},
		Redemptions:  map[string]int64{},
		UsersByRole:  map[core.Role]int{},
	}
	for _, d := range days {
		r.Days = append(r.Days, DayStats{
			Day:          d,
			ActiveUsers:  len(t.activeByDay[d]),
			XPAwarded:    t.xpByDay[d],
			PointsEarned: t.earnedByDay[d],
			PointsSpent:  t.spentByDay[d],
		})
	}
	for k, v := range t.actionCounts {
		r.ActionCounts[k] = v
	}
	for k, v := range t.levelDist {
		r.LevelReached[k] = v
	}
	for k, v := range t.redemptions {
		r.Redemptions[k] = v
	}
	for role, users := range t.rolesSeen {
		r.UsersByRole[role] = len(users)
	}
	return r
}

// DAU returns the number of distinct active users on a day ("2006-01-02").
func (t *Tracker) DAU(day string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.activeByDay[day])
}
