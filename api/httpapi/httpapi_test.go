package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mem "greenkit/adapters/memory"
	"greenkit/analytics"
	"greenkit/core"
	"greenkit/engine"
	"greenkit/leaderboard"
)

func TestRecordActivitySuccess(t *testing.T) {
	svc := newTestService()
	handler := NewMux(svc, nil, Options{PathPrefix: "/api"})

	body := strings.NewReader(`{"role":"member","action":"join_community"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/alice/activities", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["xp"] != float64(50) || resp["points"] != float64(100) {
		t.Fatalf("expected join_community payout 50/100, got %v", resp)
	}
	if resp["recorded"] != true {
		t.Fatalf("expected recorded true, got %v", resp["recorded"])
	}
}

func TestRecordUnknownActivityIsNoop(t *testing.T) {
	svc := newTestService()
	handler := NewMux(svc, nil, Options{PathPrefix: "/api"})

	body := strings.NewReader(`{"role":"member","action":"no_such_action"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/alice/activities", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["recorded"] != false {
		t.Fatalf("expected recorded false, got %v", resp["recorded"])
	}
}

func TestAddXPValidation(t *testing.T) {
	svc := newTestService()
	handler := NewMux(svc, nil, Options{PathPrefix: "/api"})

	body := strings.NewReader(`{"role":"member","amount":-5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/alice/xp", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreditAndSpendRoundTrip(t *testing.T) {
	svc := newTestService()
	handler := NewMux(svc, nil, Options{PathPrefix: "/api"})

	body := strings.NewReader(`{"role":"member","points":300,"xp":120,"reason":"plant_tree"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/alice/points", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var progress core.Progress
	_ = json.Unmarshal(rec.Body.Bytes(), &progress)
	if progress.Points != 300 || progress.XP != 120 {
		t.Fatalf("expected 300 points / 120 xp, got %d/%d", progress.Points, progress.XP)
	}

	body = strings.NewReader(`{"role":"member","amount":500,"reason":"redeem"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/users/alice/points/spend", body)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["ok"] != false || resp["points"] != float64(300) {
		t.Fatalf("expected declined spend with balance intact, got %v", resp)
	}
}

func TestRedeemInvalidRewardID(t *testing.T) {
	svc := newTestService()
	handler := NewMux(svc, nil, Options{PathPrefix: "/api"})

	body := strings.NewReader(`{"role":"member"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/alice/rewards/%20/redeem", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetUserOverview(t *testing.T) {
	svc := newTestService()
	handler := NewMux(svc, nil, Options{PathPrefix: "/api"})

	req := httptest.NewRequest(http.MethodGet, "/api/users/unknown", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var overview engine.Overview
	_ = json.Unmarshal(rec.Body.Bytes(), &overview)
	if overview.Level.Level != 1 {
		t.Fatalf("expected fresh user at level 1, got %d", overview.Level.Level)
	}
}

func TestLevelsForRole(t *testing.T) {
	svc := newTestService()
	handler := NewMux(svc, nil, Options{PathPrefix: "/api"})

	req := httptest.NewRequest(http.MethodGet, "/api/levels/member", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/levels/villain", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", rec.Code)
	}
}

func TestLeaderboardRoute(t *testing.T) {
	svc := newTestService()
	board := leaderboard.NewSkipList()
	board.Update("alice", 700)
	board.Update("bob", 300)
	handler := NewMux(svc, nil, Options{PathPrefix: "/api", Leaderboard: board})

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard?n=1&user=bob", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Total   int                 `json:"total"`
		Rank    int                 `json:"rank"`
		Entries []leaderboard.Entry `json:"entries"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 2 || resp.Rank != 2 || len(resp.Entries) != 1 || resp.Entries[0].User != "alice" {
		t.Fatalf("unexpected leaderboard response: %+v", resp)
	}
}

func TestAnalyticsReportRoute(t *testing.T) {
	svc := newTestService()
	tracker := analytics.NewTracker()
	tracker.Attach(svc)
	handler := NewMux(svc, nil, Options{PathPrefix: "/api", Tracker: tracker})

	body := strings.NewReader(`{"role":"member","action":"join_community"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/alice/activities", body)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/api/analytics/report", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var report analytics.Report
	_ = json.Unmarshal(rec.Body.Bytes(), &report)
	if len(report.Days) != 1 || report.Days[0].XPAwarded != 50 {
		t.Fatalf("unexpected report: %+v", report)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/analytics/report?format=csv", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Fatalf("expected text/csv, got %q", got)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	svc := newTestService()
	handler := NewMux(svc, nil, Options{
		PathPrefix:      "/api",
		APIKeys:         []string{"secret"},
		AllowCORSOrigin: "*",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users/alice", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/users/alice", nil)
	req2.Header.Set("Authorization", "Bearer secret")
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec2.Code)
	}
}

func TestRateLimit(t *testing.T) {
	svc := newTestService()
	handler := NewMux(svc, nil, Options{
		PathPrefix:       "/api",
		APIKeys:          []string{"k"},
		RateLimitEnabled: true,
		RateLimitRPM:     1,
		RateLimitBurst:   1,
	})

	req1 := httptest.NewRequest(http.MethodGet, "/api/users/alice", nil)
	req1.Header.Set("X-API-Key", "k")
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected 200 first request, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/users/alice", nil)
	req2.Header.Set("X-API-Key", "k")
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec2.Code)
	}
}

func newTestService() *engine.Service {
	storage := mem.New()
	bus := engine.NewEventBus(engine.DispatchSync)
	return engine.NewService(storage, bus, nil, nil, nil, nil)
}
