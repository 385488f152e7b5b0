package green

import (
	"context"
	"testing"

	mem "greenkit/adapters/memory"
	"greenkit/analytics"
	"greenkit/core"
	"greenkit/engine"
	"greenkit/leaderboard"
	"greenkit/realtime"
)

func TestNewDefaultsAndOptions(t *testing.T) {
	hub := realtime.NewHub()
	board := leaderboard.NewSkipList()
	tracker := analytics.NewTracker()
	svc := New(
		WithRealtime(hub),
		WithLeaderboard(board),
		WithAnalytics(tracker),
		WithKV(mem.New()),
		WithDispatchMode(engine.DispatchSync),
	)

	// basic operation
	total, err := svc.AddXP(context.Background(), "alice", core.RoleMember, 5, "cleanup")
	if err != nil || total != 5 {
		t.Fatalf("add xp total=%d err=%v", total, err)
	}

	// leaderboard bridge keeps the board current
	if rank, ok := board.Rank("alice"); !ok || rank != 1 {
		t.Fatalf("expected alice ranked 1, got rank=%d ok=%v", rank, ok)
	}

	// analytics bridge records the action
	if got := tracker.Snapshot().ActionCounts["cleanup"]; got != 1 {
		t.Fatalf("expected cleanup counted once, got %d", got)
	}

	// realtime bridge should receive event
	_, ch := hub.Subscribe(1)
	svc.Publish(context.Background(), core.NewXPAdded("alice", core.RoleMember, 5, 10, "cleanup"))
	ev := <-ch
	if ev.UserID != "alice" || ev.Type != core.EventXPAdded {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestInMemoryFallback(t *testing.T) {
	svc := New(WithDispatchMode(engine.DispatchSync))
	if _, err := svc.AddXP(context.Background(), "bob", core.RoleMember, 3, "cleanup"); err != nil {
		t.Fatalf("fallback add xp: %v", err)
	}
	xp, err := svc.XP(context.Background(), "bob")
	if err != nil {
		t.Fatalf("fallback get xp: %v", err)
	}
	if xp != 3 {
		t.Fatalf("expected 3 xp, got %d", xp)
	}
}
