// Package leaderboard ranks users by XP for the dashboard views.
package leaderboard

import "greenkit/core"

// Entry is one ranked user.
type Entry struct {
	User core.UserID `json:"user"`
	XP   int64       `json:"xp"`
}

// Board abstracts leaderboard operations.
type Board interface {
	Update(user core.UserID, xp int64)
	Remove(user core.UserID)
	TopN(n int) []Entry
	Get(user core.UserID) (Entry, bool)
	Rank(user core.UserID) (int, bool)
	Len() int
}
