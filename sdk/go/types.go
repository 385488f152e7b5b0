package sdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Progress mirrors the public JSON surface of core.Progress.
type Progress struct {
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	XP       int64     `json:"xp"`
	Points   int64     `json:"points"`
	Unlocked []string  `json:"unlocked"`
	Updated  time.Time `json:"updated"`
}

// Level mirrors one rung of a role ladder.
type Level struct {
	Level    int64    `json:"level"`
	Name     string   `json:"name"`
	MinXP    int64    `json:"min_xp"`
	MaxXP    int64    `json:"max_xp"`
	Icon     string   `json:"icon"`
	Color    string   `json:"color"`
	Benefits []string `json:"benefits"`
}

// Reward mirrors one catalog entry, Unlocked filled for per-user views.
type Reward struct {
	ID          string `json:"id"`
	Role        string `json:"role"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PointsCost  int64  `json:"points_cost"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Unlocked    bool   `json:"unlocked"`
}

// Overview is the GET /users/{id} response.
type Overview struct {
	Progress        Progress `json:"progress"`
	Level           Level    `json:"level"`
	NextLevel       *Level   `json:"next_level,omitempty"`
	ProgressPercent float64  `json:"progress_percent"`
	XPToNext        int64    `json:"xp_to_next"`
	Rewards         []Reward `json:"rewards"`
}

// Payout is the response to recording an activity.
type Payout struct {
	XP       int64 `json:"xp"`
	Points   int64 `json:"points"`
	Recorded bool  `json:"recorded"`
}

// SpendResult reports whether a deduction went through and the balance after.
type SpendResult struct {
	OK     bool  `json:"ok"`
	Points int64 `json:"points"`
}

// LeaderboardEntry is one row of the XP standings.
type LeaderboardEntry struct {
	User string `json:"user"`
	XP   int64  `json:"xp"`
}

// Leaderboard is the GET /leaderboard response.
type Leaderboard struct {
	Total   int                `json:"total"`
	Rank    int                `json:"rank,omitempty"`
	Entries []LeaderboardEntry `json:"entries"`
}

// HealthStatus describes the /healthz response.
type HealthStatus struct {
	Status string                 `json:"status"`
	Checks map[string]interface{} `json:"checks"`
}

// Event mirrors the WebSocket event frames.
type Event struct {
	Type      string    `json:"type"`
	Time      time.Time `json:"time"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Delta     int64     `json:"delta,omitempty"`
	Total     int64     `json:"total,omitempty"`
	Level     int64     `json:"level,omitempty"`
	FromLevel int64     `json:"from_level,omitempty"`
	LevelName string    `json:"level_name,omitempty"`
	RewardID  string    `json:"reward_id,omitempty"`
}

func decodeJSON(resp *http.Response, target any) error {
	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("request failed: status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("request failed: status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

// ErrEmptyUserID is returned when user id is empty.
var ErrEmptyUserID = errors.New("user id is required")
