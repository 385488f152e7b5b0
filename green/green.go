// Package green is the embedding facade: it assembles a fully wired
// engagement Service from options with sensible defaults.
package green

import (
	"context"
	"log/slog"
	"sync"

	"greenkit/activity"
	"greenkit/analytics"
	"greenkit/core"
	"greenkit/engine"
	"greenkit/leaderboard"
	"greenkit/levels"
	"greenkit/realtime"
	"greenkit/rewards"
)

// Option configures the service builder.
type Option func(*config)

type config struct {
	kv         engine.KV
	mode       engine.DispatchMode
	resolver   *levels.Resolver
	catalog    *rewards.Catalog
	activities *activity.Mapping
	logger     *slog.Logger
	hub        *realtime.Hub
	board      leaderboard.Board
	tracker    *analytics.Tracker
}

// WithKV sets the persistence adapter.
func WithKV(kv engine.KV) Option { return func(c *config) { c.kv = kv } }

// WithDispatchMode selects sync or async event dispatch.
func WithDispatchMode(m engine.DispatchMode) Option { return func(c *config) { c.mode = m } }

// WithLevels overrides the built-in level ladders.
func WithLevels(r *levels.Resolver) Option { return func(c *config) { c.resolver = r } }

// WithCatalog overrides the built-in reward catalog.
func WithCatalog(cat *rewards.Catalog) Option { return func(c *config) { c.catalog = cat } }

// WithActivities overrides the built-in activity payout mapping.
func WithActivities(m *activity.Mapping) Option { return func(c *config) { c.activities = m } }

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option { return func(c *config) { c.logger = l } }

// WithRealtime wires a realtime hub to receive all engine events.
func WithRealtime(h *realtime.Hub) Option { return func(c *config) { c.hub = h } }

// WithLeaderboard wires a board kept current from xp_added events.
func WithLeaderboard(b leaderboard.Board) Option { return func(c *config) { c.board = b } }

// WithAnalytics wires a tracker subscribed to all engine events.
func WithAnalytics(t *analytics.Tracker) Option { return func(c *config) { c.tracker = t } }

// New builds a configured Service. If not provided, defaults are used:
//   - kv: in-memory
//   - levels, catalog, activities: built-in seeds
//   - dispatch: async
func New(opts ...Option) *engine.Service {
	cfg := &config{mode: engine.DispatchAsync}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.kv == nil {
		// implementors should pass explicit storage in prod
		cfg.kv = &memKV{}
	}
	bus := engine.NewEventBus(cfg.mode)
	svc := engine.NewService(cfg.kv, bus, cfg.resolver, cfg.catalog, cfg.activities, cfg.logger)
	if cfg.hub != nil {
		hub := cfg.hub
		for _, typ := range allEventTypes() {
			bus.Subscribe(typ, func(ctx context.Context, e core.Event) { hub.Broadcast(ctx, e) })
		}
	}
	if cfg.board != nil {
		board := cfg.board
		bus.Subscribe(core.EventXPAdded, func(_ context.Context, e core.Event) {
			board.Update(e.UserID, e.Total)
		})
	}
	if cfg.tracker != nil {
		cfg.tracker.Attach(bus)
	}
	return svc
}

func allEventTypes() []core.EventType {
	return []core.EventType{
		core.EventXPAdded,
		core.EventPointsAdded,
		core.EventPointsSpent,
		core.EventLevelUp,
		core.EventRewardUnlocked,
	}
}

// memKV is a minimal map store mirroring adapters/memory to keep New()
// usable without picking an adapter.
type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func (s *memKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		s.data = map[string]string{}
	}
	s.data[key] = value
	return nil
}
