package sdk

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	mem "greenkit/adapters/memory"
	"greenkit/api/httpapi"
	"greenkit/core"
	"greenkit/engine"
	"greenkit/leaderboard"
	"greenkit/realtime"
)

func TestClient_ActivityCreditSpendOverviewHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	client, err := NewClient(srv.URL+"/api", WithAPIKey("k1"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	ctx := context.Background()

	payout, err := client.RecordActivity(ctx, "alice", "member", "join_community")
	if err != nil {
		t.Fatalf("record activity: %v", err)
	}
	if payout.XP != 50 || payout.Points != 100 || !payout.Recorded {
		t.Fatalf("unexpected payout: %+v", payout)
	}

	total, err := client.AddXP(ctx, "alice", "member", 25, "cleanup")
	if err != nil || total != 75 {
		t.Fatalf("add xp got total=%d err=%v", total, err)
	}

	progress, err := client.Credit(ctx, "alice", "member", 400, 0, "plant_tree")
	if err != nil {
		t.Fatalf("credit: %v", err)
	}
	if progress.Points != 500 || progress.XP != 75 {
		t.Fatalf("unexpected progress: %+v", progress)
	}

	spend, err := client.Spend(ctx, "alice", "member", 9999, "too_much")
	if err != nil {
		t.Fatalf("spend: %v", err)
	}
	if spend.OK || spend.Points != 500 {
		t.Fatalf("expected declined spend with balance intact, got %+v", spend)
	}

	redeem, err := client.Redeem(ctx, "alice", "member", "mem-1")
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if !redeem.OK || redeem.Points != 0 {
		t.Fatalf("expected mem-1 unlocked for 500 points, got %+v", redeem)
	}

	overview, err := client.GetUser(ctx, "alice")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if overview.Progress.UserID != "alice" || len(overview.Progress.Unlocked) != 1 {
		t.Fatalf("unexpected overview: %+v", overview)
	}

	levels, err := client.Levels(ctx, "member")
	if err != nil || len(levels) != 5 {
		t.Fatalf("levels: got %d err=%v", len(levels), err)
	}

	board, err := client.Leaderboard(ctx, 5, "alice")
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if board.Total != 1 || board.Rank != 1 {
		t.Fatalf("unexpected leaderboard: %+v", board)
	}

	health, err := client.Health(ctx)
	if err != nil || health.Status != "healthy" {
		t.Fatalf("health: %+v err=%v", health, err)
	}
}

func TestClient_SubscribeEvents(t *testing.T) {
	srv, hub := newTestServer(t)
	defer srv.Close()

	client, err := NewClient(srv.URL + "/api")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	events, err := client.SubscribeEvents(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	// keep broadcasting until the subscriber is attached
	go func() {
		tick := time.NewTicker(10 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				hub.Broadcast(ctx, core.NewXPAdded("alice", core.RoleMember, 10, 10, "cleanup"))
			}
		}
	}()

	select {
	case evt := <-events:
		if evt.Type != string(core.EventXPAdded) {
			t.Fatalf("unexpected event type: %s", evt.Type)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}

func TestClient_EmptyUserID(t *testing.T) {
	client, err := NewClient("http://localhost:1")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.GetUser(context.Background(), ""); err != ErrEmptyUserID {
		t.Fatalf("expected ErrEmptyUserID, got %v", err)
	}
}

// test server backed by the real mux and a memory store.
func newTestServer(t *testing.T) (*httptest.Server, *realtime.Hub) {
	t.Helper()
	svc := engine.NewService(mem.New(), engine.NewEventBus(engine.DispatchSync), nil, nil, nil, nil)
	hub := realtime.NewHub()
	board := leaderboard.NewSkipList()
	svc.Subscribe(core.EventXPAdded, func(_ context.Context, e core.Event) {
		board.Update(e.UserID, e.Total)
	})
	handler := httpapi.NewMux(svc, hub, httpapi.Options{PathPrefix: "/api", Leaderboard: board})
	return httptest.NewServer(handler), hub
}
