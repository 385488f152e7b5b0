package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"greenkit/activity"
	"greenkit/core"
	"greenkit/levels"
	"greenkit/rewards"
)

var (
	// ErrNonPositiveAmount rejects zero or negative credits and debits.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrUnknownRole rejects operations for roles outside the known set.
	ErrUnknownRole = errors.New("unknown role")
)

// Service wires the KV store, event bus, level resolver, reward catalog, and
// activity mapping into the engagement engine. It owns the XP and points
// ledgers: all balance mutation flows through its operations.
type Service struct {
	kv         KV
	bus        *EventBus
	levels     *levels.Resolver
	catalog    *rewards.Catalog
	activities *activity.Mapping
	log        *slog.Logger

	mu    sync.Mutex
	users map[core.UserID]*ledgerRecord
}

func NewService(kv KV, bus *EventBus, resolver *levels.Resolver, catalog *rewards.Catalog, mapping *activity.Mapping, logger *slog.Logger) *Service {
	if kv == nil || bus == nil {
		panic("NewService requires non-nil kv and bus")
	}
	if resolver == nil {
		resolver = levels.Default()
	}
	if catalog == nil {
		catalog = rewards.Default()
	}
	if mapping == nil {
		mapping = activity.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		kv:         kv,
		bus:        bus,
		levels:     resolver,
		catalog:    catalog,
		activities: mapping,
		log:        logger,
		users:      map[core.UserID]*ledgerRecord{},
	}
}

// Subscribe convenience method.
func (s *Service) Subscribe(typ core.EventType, handler func(context.Context, core.Event)) func() {
	return s.bus.Subscribe(typ, handler)
}

func (s *Service) Publish(ctx context.Context, ev core.Event) { s.bus.Publish(ctx, ev) }

func (s *Service) Close() { s.bus.Close() }

// Levels exposes the level resolver backing this service.
func (s *Service) Levels() *levels.Resolver { return s.levels }

// Catalog exposes the reward catalog backing this service.
func (s *Service) Catalog() *rewards.Catalog { return s.catalog }

// Activities exposes the activity mapping backing this service.
func (s *Service) Activities() *activity.Mapping { return s.activities }

func checkRole(role core.Role) error {
	if !role.Valid() {
		return ErrUnknownRole
	}
	return nil
}

// XP returns the user's current experience balance.
func (s *Service) XP(ctx context.Context, user core.UserID) (int64, error) {
	p, err := s.Progress(ctx, user)
	if err != nil {
		return 0, err
	}
	return p.XP, nil
}

// Points returns the user's current spendable balance.
func (s *Service) Points(ctx context.Context, user core.UserID) (int64, error) {
	p, err := s.Progress(ctx, user)
	if err != nil {
		return 0, err
	}
	return p.Points, nil
}

// Progress returns a snapshot of the user's engagement state.
func (s *Service) Progress(ctx context.Context, user core.UserID) (core.Progress, error) {
	normalized, err := core.NormalizeUserID(user)
	if err != nil {
		return core.Progress{}, err
	}
	rec := s.getOrCreate(normalized)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	s.loadLocked(ctx, rec)
	return rec.p.Clone(), nil
}

// AddXP credits experience. XP only ever increases; non-positive amounts are
// rejected. A level crossing additionally publishes a level_up event carrying
// the old level, new level, and new balance.
func (s *Service) AddXP(ctx context.Context, user core.UserID, role core.Role, amount int64, reason string) (int64, error) {
	if amount <= 0 {
		return 0, ErrNonPositiveAmount
	}
	normalized, err := core.NormalizeUserID(user)
	if err != nil {
		return 0, err
	}
	if err := checkRole(role); err != nil {
		return 0, err
	}

	rec := s.getOrCreate(normalized)
	rec.mu.Lock()
	s.loadLocked(ctx, rec)
	rec.p.Role = role
	evs, err := s.addXPLocked(rec, amount, reason)
	if err != nil {
		rec.mu.Unlock()
		return 0, err
	}
	total := rec.p.XP
	s.persistLocked(ctx, rec)
	rec.mu.Unlock()

	s.publishAll(ctx, evs)
	return total, nil
}

// Credit awards points and XP in one operation. Both amounts are explicit at
// every call site; pass xp=0 to award currency without level progress. Points
// must be positive, xp non-negative.
func (s *Service) Credit(ctx context.Context, user core.UserID, role core.Role, points, xp int64, reason string) (core.Progress, error) {
	if points <= 0 || xp < 0 {
		return core.Progress{}, ErrNonPositiveAmount
	}
	normalized, err := core.NormalizeUserID(user)
	if err != nil {
		return core.Progress{}, err
	}
	if err := checkRole(role); err != nil {
		return core.Progress{}, err
	}

	rec := s.getOrCreate(normalized)
	rec.mu.Lock()
	s.loadLocked(ctx, rec)
	rec.p.Role = role
	evs, err := s.creditLocked(rec, points, xp, reason)
	if err != nil {
		rec.mu.Unlock()
		return core.Progress{}, err
	}
	snapshot := rec.p.Clone()
	s.persistLocked(ctx, rec)
	rec.mu.Unlock()

	s.publishAll(ctx, evs)
	return snapshot, nil
}

// CreditEqual awards the same amount of points and XP, the default coupling of
// the Just Go Green activity economy.
func (s *Service) CreditEqual(ctx context.Context, user core.UserID, role core.Role, amount int64, reason string) (core.Progress, error) {
	return s.Credit(ctx, user, role, amount, amount, reason)
}

// Spend debits points. It reports false and leaves the balance untouched when
// the balance is insufficient; the debit is all-or-nothing. Spending never
// reduces XP.
func (s *Service) Spend(ctx context.Context, user core.UserID, role core.Role, amount int64, reason string) (bool, error) {
	if amount <= 0 {
		return false, ErrNonPositiveAmount
	}
	normalized, err := core.NormalizeUserID(user)
	if err != nil {
		return false, err
	}
	if err := checkRole(role); err != nil {
		return false, err
	}

	rec := s.getOrCreate(normalized)
	rec.mu.Lock()
	s.loadLocked(ctx, rec)
	rec.p.Role = role
	if amount > rec.p.Points {
		rec.mu.Unlock()
		return false, nil
	}
	rec.p.Points -= amount
	ev := core.NewPointsSpent(normalized, role, amount, rec.p.Points, reason)
	s.persistLocked(ctx, rec)
	rec.mu.Unlock()

	s.bus.Publish(ctx, ev)
	return true, nil
}

// Record looks up the payout for a (role, action) pair and credits both
// ledgers accordingly. Unknown actions return the zero payout and change
// nothing.
func (s *Service) Record(ctx context.Context, user core.UserID, role core.Role, action core.ActionKey) (activity.Payout, error) {
	normalized, err := core.NormalizeUserID(user)
	if err != nil {
		return activity.Payout{}, err
	}
	if err := checkRole(role); err != nil {
		return activity.Payout{}, err
	}
	payout := s.activities.RewardFor(role, action)
	if payout.Zero() {
		return payout, nil
	}

	rec := s.getOrCreate(normalized)
	rec.mu.Lock()
	s.loadLocked(ctx, rec)
	rec.p.Role = role
	evs, err := s.creditLocked(rec, payout.Points, payout.XP, string(action))
	if err != nil {
		rec.mu.Unlock()
		return activity.Payout{}, err
	}
	s.persistLocked(ctx, rec)
	rec.mu.Unlock()

	s.publishAll(ctx, evs)
	return payout, nil
}

// Redeem exchanges points for a catalog reward. It reports false without
// mutation when the reward does not exist, belongs to another role, has
// already been unlocked by this user, or the balance is insufficient.
func (s *Service) Redeem(ctx context.Context, user core.UserID, role core.Role, rewardID string) (bool, error) {
	normalized, err := core.NormalizeUserID(user)
	if err != nil {
		return false, err
	}
	if err := checkRole(role); err != nil {
		return false, err
	}
	if err := core.ValidateRewardID(rewardID); err != nil {
		return false, nil
	}
	reward, ok := s.catalog.ByID(rewardID)
	if !ok || reward.Role != role {
		return false, nil
	}

	rec := s.getOrCreate(normalized)
	rec.mu.Lock()
	s.loadLocked(ctx, rec)
	rec.p.Role = role
	if rec.p.HasUnlocked(rewardID) || reward.PointsCost > rec.p.Points {
		rec.mu.Unlock()
		return false, nil
	}
	rec.p.Points -= reward.PointsCost
	rec.p.Unlocked = append(rec.p.Unlocked, rewardID)
	evs := []core.Event{
		core.NewPointsSpent(normalized, role, reward.PointsCost, rec.p.Points, "Redeemed "+reward.Title),
		core.NewRewardUnlocked(normalized, role, rewardID, reward.PointsCost, rec.p.Points),
	}
	s.persistLocked(ctx, rec)
	rec.mu.Unlock()

	s.publishAll(ctx, evs)
	return true, nil
}

// Overview bundles the snapshot with its resolved level and per-user reward
// view, the shape dashboards render.
type Overview struct {
	Progress        core.Progress    `json:"progress"`
	Level           levels.Level     `json:"level"`
	NextLevel       *levels.Level    `json:"next_level,omitempty"`
	ProgressPercent float64          `json:"progress_percent"`
	XPToNext        int64            `json:"xp_to_next"`
	Rewards         []rewards.Reward `json:"rewards"`
}

func (s *Service) Overview(ctx context.Context, user core.UserID) (Overview, error) {
	p, err := s.Progress(ctx, user)
	if err != nil {
		return Overview{}, err
	}
	o := Overview{
		Progress:        p,
		Level:           s.levels.LevelFor(p.Role, p.XP),
		ProgressPercent: s.levels.ProgressPercent(p.Role, p.XP),
		XPToNext:        s.levels.XPToNext(p.Role, p.XP),
		Rewards:         s.catalog.ForUser(p),
	}
	if next, ok := s.levels.NextLevel(p.Role, o.Level.Level); ok {
		o.NextLevel = &next
	}
	return o, nil
}

// addXPLocked mutates the XP balance and derives a level_up event on a
// crossing. Callers hold rec.mu and publish the returned events after
// unlocking.
func (s *Service) addXPLocked(rec *ledgerRecord, amount int64, reason string) ([]core.Event, error) {
	oldXP := rec.p.XP
	newXP, err := core.AddSafe(oldXP, amount)
	if err != nil {
		return nil, err
	}
	rec.p.XP = newXP
	evs := []core.Event{core.NewXPAdded(rec.p.UserID, rec.p.Role, amount, newXP, reason)}
	if old, now, leveled := s.levels.CheckLevelUp(rec.p.Role, oldXP, newXP); leveled {
		evs = append(evs, core.NewLevelUp(rec.p.UserID, rec.p.Role, old.Level, now.Level, now.Name, newXP))
	}
	return evs, nil
}

func (s *Service) creditLocked(rec *ledgerRecord, points, xp int64, reason string) ([]core.Event, error) {
	var evs []core.Event
	if points > 0 {
		newPoints, err := core.AddSafe(rec.p.Points, points)
		if err != nil {
			return nil, err
		}
		rec.p.Points = newPoints
		evs = append(evs, core.NewPointsAdded(rec.p.UserID, rec.p.Role, points, newPoints, reason))
	}
	if xp > 0 {
		xpEvents, err := s.addXPLocked(rec, xp, reason)
		if err != nil {
			return nil, err
		}
		evs = append(evs, xpEvents...)
	}
	return evs, nil
}

func (s *Service) publishAll(ctx context.Context, evs []core.Event) {
	for _, ev := range evs {
		s.bus.Publish(ctx, ev)
	}
}
