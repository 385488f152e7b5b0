package httpapi

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	wsadapter "greenkit/adapters/websocket"
	"greenkit/analytics"
	"greenkit/core"
	"greenkit/engine"
	"greenkit/leaderboard"
	"greenkit/realtime"
)

// Options configures the HTTP API surface.
type Options struct {
	// PathPrefix, if set, is prepended to all routes (e.g., "/api").
	PathPrefix string
	// AllowCORSOrigin, if non-empty, enables basic CORS with the given origin (use "*" for any).
	AllowCORSOrigin string
	// APIKeys, if non-empty, enables static API key auth via Authorization: Bearer or X-API-Key.
	APIKeys []string
	// RateLimitEnabled toggles rate limiting.
	RateLimitEnabled bool
	// RateLimitRPM is the allowed requests per minute per client key.
	RateLimitRPM int
	// RateLimitBurst defines burst capacity.
	RateLimitBurst int
	// Leaderboard, if set, enables GET {prefix}/leaderboard.
	Leaderboard leaderboard.Board
	// Tracker, if set, enables GET {prefix}/analytics/report.
	Tracker *analytics.Tracker
}

type activityRequest struct {
	Role   string `json:"role"`
	Action string `json:"action"`
}

type xpRequest struct {
	Role   string `json:"role"`
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

type creditRequest struct {
	Role   string `json:"role"`
	Points int64  `json:"points"`
	XP     int64  `json:"xp"`
	Reason string `json:"reason"`
}

type spendRequest struct {
	Role   string `json:"role"`
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

type redeemRequest struct {
	Role string `json:"role"`
}

// NewMux builds an http.Handler exposing the engagement REST API and WebSocket stream.
// Routes:
//   - POST {prefix}/users/{id}/activities        {"role","action"}
//   - POST {prefix}/users/{id}/xp                {"role","amount","reason"}
//   - POST {prefix}/users/{id}/points            {"role","points","xp","reason"}
//   - POST {prefix}/users/{id}/points/spend      {"role","amount","reason"}
//   - POST {prefix}/users/{id}/rewards/{rid}/redeem {"role"}
//   - GET  {prefix}/users/{id}
//   - GET  {prefix}/levels/{role}
//   - GET  {prefix}/rewards/{role}
//   - GET  {prefix}/activities/{role}?category=
//   - GET  {prefix}/leaderboard?n=&user=
//   - GET  {prefix}/analytics/report?format=csv
//   - GET  {prefix}/healthz
//   - WS   {prefix}/ws
func NewMux(svc *engine.Service, hub *realtime.Hub, opts Options) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc(withPrefix(opts.PathPrefix, "/healthz"), func(w http.ResponseWriter, r *http.Request) {
		healthCheck(w, r, svc)
	})

	// WebSocket events
	if hub != nil {
		mux.Handle(withPrefix(opts.PathPrefix, "/ws"), wsadapter.Handler(hub))
	}

	// Users API
	mux.HandleFunc(withPrefix(opts.PathPrefix, "/users/"), func(w http.ResponseWriter, r *http.Request) {
		handleUsers(w, r, svc, opts.PathPrefix)
	})

	// Catalog reads
	mux.HandleFunc(withPrefix(opts.PathPrefix, "/levels/"), func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromPath(w, r, opts.PathPrefix, "levels")
		if !ok {
			return
		}
		writeJSON(w, svc.Levels().LevelsFor(role))
	})
	mux.HandleFunc(withPrefix(opts.PathPrefix, "/rewards/"), func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromPath(w, r, opts.PathPrefix, "rewards")
		if !ok {
			return
		}
		writeJSON(w, svc.Catalog().ForRole(role))
	})
	mux.HandleFunc(withPrefix(opts.PathPrefix, "/activities/"), func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromPath(w, r, opts.PathPrefix, "activities")
		if !ok {
			return
		}
		if cat := r.URL.Query().Get("category"); cat != "" {
			writeJSON(w, svc.Activities().ByCategory(role, cat))
			return
		}
		writeJSON(w, svc.Activities().ForRole(role))
	})

	if opts.Leaderboard != nil {
		board := opts.Leaderboard
		mux.HandleFunc(withPrefix(opts.PathPrefix, "/leaderboard"), func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				writeError(w, http.StatusNotFound, "not_found", "route not found", nil)
				return
			}
			n := 10
			if raw := r.URL.Query().Get("n"); raw != "" {
				parsed, err := strconv.Atoi(raw)
				if err != nil || parsed < 1 {
					writeError(w, http.StatusBadRequest, "invalid_n", "n must be a positive integer", nil)
					return
				}
				n = parsed
			}
			resp := map[string]any{
				"total":   board.Len(),
				"entries": board.TopN(n),
			}
			if user := r.URL.Query().Get("user"); user != "" {
				if rank, ok := board.Rank(core.UserID(user)); ok {
					resp["rank"] = rank
				}
			}
			writeJSON(w, resp)
		})
	}

	if opts.Tracker != nil {
		tracker := opts.Tracker
		mux.HandleFunc(withPrefix(opts.PathPrefix, "/analytics/report"), func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				writeError(w, http.StatusNotFound, "not_found", "route not found", nil)
				return
			}
			report := tracker.Snapshot()
			if r.URL.Query().Get("format") == "csv" {
				w.Header().Set("Content-Type", "text/csv")
				_ = analytics.WriteCSV(w, report)
				return
			}
			writeJSON(w, report)
		})
	}

	var handler http.Handler = mux
	if opts.AllowCORSOrigin != "" {
		handler = withCORS(handler, opts.AllowCORSOrigin)
	}
	if len(opts.APIKeys) > 0 {
		handler = withAPIKeyAuth(handler, opts.APIKeys)
	}
	if opts.RateLimitEnabled && opts.RateLimitRPM > 0 && opts.RateLimitBurst > 0 {
		handler = withRateLimit(handler, opts.RateLimitRPM, opts.RateLimitBurst)
	}
	return handler
}

func handleUsers(w http.ResponseWriter, r *http.Request, svc *engine.Service, prefix string) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeError(w, http.StatusNotFound, "not_found", "route not found", nil)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, prefix)
	if path == "" || path[0] != '/' {
		path = "/" + path
	}
	parts := split(path, '/')
	if len(parts) < 2 {
		writeError(w, http.StatusNotFound, "not_found", "route not found", nil)
		return
	}
	user, err := core.NormalizeUserID(core.UserID(parts[1]))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_user", err.Error(), nil)
		return
	}

	if r.Method == http.MethodGet {
		overview, err := svc.Overview(r.Context(), user)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal", err.Error(), nil)
			return
		}
		writeJSON(w, overview)
		return
	}

	if len(parts) < 3 {
		writeError(w, http.StatusNotFound, "not_found", "route not found", nil)
		return
	}
	switch parts[2] {
	case "activities":
		var req activityRequest
		if !decodeBody(w, r, &req) {
			return
		}
		role, ok := parseRole(w, req.Role)
		if !ok {
			return
		}
		payout, err := svc.Record(r.Context(), user, role, core.ActionKey(req.Action))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
			return
		}
		writeJSON(w, map[string]any{"xp": payout.XP, "points": payout.Points, "recorded": !payout.Zero()})

	case "xp":
		var req xpRequest
		if !decodeBody(w, r, &req) {
			return
		}
		role, ok := parseRole(w, req.Role)
		if !ok {
			return
		}
		total, err := svc.AddXP(r.Context(), user, role, req.Amount, req.Reason)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
			return
		}
		writeJSON(w, map[string]any{"total": total})

	case "points":
		if len(parts) >= 4 && parts[3] == "spend" {
			var req spendRequest
			if !decodeBody(w, r, &req) {
				return
			}
			role, ok := parseRole(w, req.Role)
			if !ok {
				return
			}
			spent, err := svc.Spend(r.Context(), user, role, req.Amount, req.Reason)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
				return
			}
			points, err := svc.Points(r.Context(), user)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "internal", err.Error(), nil)
				return
			}
			writeJSON(w, map[string]any{"ok": spent, "points": points})
			return
		}
		var req creditRequest
		if !decodeBody(w, r, &req) {
			return
		}
		role, ok := parseRole(w, req.Role)
		if !ok {
			return
		}
		progress, err := svc.Credit(r.Context(), user, role, req.Points, req.XP, req.Reason)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
			return
		}
		writeJSON(w, progress)

	case "rewards":
		if len(parts) < 5 || parts[4] != "redeem" {
			writeError(w, http.StatusNotFound, "not_found", "route not found", nil)
			return
		}
		rewardID := parts[3]
		if err := core.ValidateRewardID(rewardID); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_reward", err.Error(), nil)
			return
		}
		var req redeemRequest
		if !decodeBody(w, r, &req) {
			return
		}
		role, ok := parseRole(w, req.Role)
		if !ok {
			return
		}
		unlocked, err := svc.Redeem(r.Context(), user, role, rewardID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
			return
		}
		points, err := svc.Points(r.Context(), user)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal", err.Error(), nil)
			return
		}
		writeJSON(w, map[string]any{"ok": unlocked, "points": points})

	default:
		writeError(w, http.StatusNotFound, "not_found", "route not found", nil)
	}
}

// Helpers

// healthCheck verifies storage is reachable with a lightweight probe read.
func healthCheck(w http.ResponseWriter, r *http.Request, svc *engine.Service) {
	_, err := svc.Progress(r.Context(), core.UserID("healthcheck_probe"))

	status := map[string]any{
		"status": "healthy",
		"checks": map[string]any{
			"storage": "ok",
		},
	}

	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		status["status"] = "unhealthy"
		status["checks"].(map[string]any)["storage"] = "failed"
	} else {
		w.WriteHeader(http.StatusOK)
	}

	writeJSON(w, status)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", nil)
		return false
	}
	return true
}

func parseRole(w http.ResponseWriter, raw string) (core.Role, bool) {
	role, err := core.ParseRole(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_role", err.Error(), nil)
		return "", false
	}
	return role, true
}

func roleFromPath(w http.ResponseWriter, r *http.Request, prefix, resource string) (core.Role, bool) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusNotFound, "not_found", "route not found", nil)
		return "", false
	}
	path := strings.TrimPrefix(r.URL.Path, prefix)
	parts := split(path, '/')
	if len(parts) != 2 || parts[0] != resource {
		writeError(w, http.StatusNotFound, "not_found", "route not found", nil)
		return "", false
	}
	return parseRole(w, parts[1])
}

func withPrefix(prefix, path string) string {
	if prefix == "" || prefix == "/" {
		return path
	}
	if prefix[len(prefix)-1] == '/' {
		return prefix[:len(prefix)-1] + path
	}
	return prefix + path
}

func split(p string, sep rune) []string {
	var parts []string
	cur := make([]rune, 0, len(p))
	// trim leading '/'
	for len(p) > 0 && p[0] == '/' {
		p = p[1:]
	}
	for _, r := range p {
		if r == sep {
			if len(cur) > 0 {
				parts = append(parts, string(cur))
				cur = cur[:0]
			}
			continue
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		parts = append(parts, string(cur))
	}
	return parts
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiError{Code: code, Message: msg, Details: details})
}

// withCORS wraps a handler with a minimal CORS policy.
func withCORS(next http.Handler, origin string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Vary", "Origin")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withAPIKeyAuth enforces a shared API key list.
func withAPIKeyAuth(next http.Handler, apiKeys []string) http.Handler {
	allowed := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		k = strings.TrimSpace(k)
		if k != "" {
			allowed[k] = struct{}{}
		}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := extractAPIKey(r)
		if key == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing API key", nil)
			return
		}
		if _, ok := allowed[key]; !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid API key", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit applies a simple token-bucket limiter per client key.
func withRateLimit(next http.Handler, rpm int, burst int) http.Handler {
	limiter := newRateLimiter(rpm, burst)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if !limiter.allow(key) {
			writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractAPIKey(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	return ""
}

// clientKey uses API key if present, otherwise remote IP.
func clientKey(r *http.Request) string {
	if key := extractAPIKey(r); key != "" {
		return key
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type rateLimiter struct {
	rpm   float64
	burst float64
	mu    sync.Mutex
	b     map[string]*bucket
}

type bucket struct {
	tokens float64
	last   time.Time
}

func newRateLimiter(rpm, burst int) *rateLimiter {
	return &rateLimiter{
		rpm:   float64(rpm),
		burst: float64(burst),
		b:     make(map[string]*bucket),
	}
}

func (l *rateLimiter) allow(key string) bool {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.b[key]
	if !ok {
		l.b[key] = &bucket{tokens: l.burst - 1, last: now}
		return true
	}

	elapsed := now.Sub(b.last).Minutes()
	b.tokens += elapsed * l.rpm
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	if b.tokens < 1 {
		b.last = now
		return false
	}
	b.tokens--
	b.last = now
	return true
}
