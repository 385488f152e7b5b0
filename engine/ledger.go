package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"greenkit/core"
)

// Persistence keys, fixed per user. Balances are decimal-integer strings and
// unlocked reward ids a JSON array, matching what the adapters round-trip.
func xpKey(user core.UserID) string      { return fmt.Sprintf("user:%s:xp", user) }
func pointsKey(user core.UserID) string  { return fmt.Sprintf("user:%s:points", user) }
func rewardsKey(user core.UserID) string { return fmt.Sprintf("user:%s:rewards", user) }
func roleKey(user core.UserID) string    { return fmt.Sprintf("user:%s:role", user) }

// ledgerRecord holds one user's authoritative in-memory balances. The KV store
// trails it: reads seed the record once, writes are fire-and-forget.
type ledgerRecord struct {
	mu     sync.Mutex
	p      core.Progress
	loaded bool
}

func (s *Service) getOrCreate(user core.UserID) *ledgerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.users[user]; ok {
		return rec
	}
	rec := &ledgerRecord{p: core.Progress{UserID: user, Role: core.RoleMember}}
	s.users[user] = rec
	return rec
}

// loadLocked seeds the record from the KV store on first touch. Unreadable or
// missing keys degrade to the zero defaults; the session continues regardless.
func (s *Service) loadLocked(ctx context.Context, rec *ledgerRecord) {
	if rec.loaded {
		return
	}
	rec.loaded = true
	user := rec.p.UserID

	if v, ok, err := s.kv.Get(ctx, xpKey(user)); err != nil {
		s.log.Warn("ledger: xp read failed, using default", "user", user, "error", err)
	} else if ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			rec.p.XP = n
		}
	}
	if v, ok, err := s.kv.Get(ctx, pointsKey(user)); err != nil {
		s.log.Warn("ledger: points read failed, using default", "user", user, "error", err)
	} else if ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			rec.p.Points = n
		}
	}
	if v, ok, err := s.kv.Get(ctx, rewardsKey(user)); err != nil {
		s.log.Warn("ledger: rewards read failed, using default", "user", user, "error", err)
	} else if ok {
		var ids []string
		if err := json.Unmarshal([]byte(v), &ids); err == nil {
			rec.p.Unlocked = ids
		}
	}
	if v, ok, err := s.kv.Get(ctx, roleKey(user)); err == nil && ok {
		if role, err := core.ParseRole(v); err == nil {
			rec.p.Role = role
		}
	}
}

// persistLocked writes the record to the KV store. Failures are logged and
// swallowed: the in-memory balance stays authoritative for the session.
func (s *Service) persistLocked(ctx context.Context, rec *ledgerRecord) {
	user := rec.p.UserID
	rec.p.Updated = time.Now().UTC()

	if err := s.kv.Set(ctx, xpKey(user), strconv.FormatInt(rec.p.XP, 10)); err != nil {
		s.log.Warn("ledger: xp write failed", "user", user, "error", err)
	}
	if err := s.kv.Set(ctx, pointsKey(user), strconv.FormatInt(rec.p.Points, 10)); err != nil {
		s.log.Warn("ledger: points write failed", "user", user, "error", err)
	}
	ids, err := json.Marshal(rec.p.Unlocked)
	if err == nil {
		if err := s.kv.Set(ctx, rewardsKey(user), string(ids)); err != nil {
			s.log.Warn("ledger: rewards write failed", "user", user, "error", err)
		}
	}
	if err := s.kv.Set(ctx, roleKey(user), string(rec.p.Role)); err != nil {
		s.log.Warn("ledger: role write failed", "user", user, "error", err)
	}
}
