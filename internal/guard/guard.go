package guard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"flavis-be/internal/kvstore"
	"flavis-be/internal/logger"

	"go.uber.org/zap"
)

const keyPrefix = "guard:"

// record is the persisted slice of the state machine: escalation level and
// the absolute lock deadline. Consecutive failure counts are deliberately
// not persisted; they reset when the process (or the original browser tab)
// goes away.
type record struct {
	LockLevel   int       `json:"lock_level"`
	LockedUntil time.Time `json:"locked_until"`
}

// Status is a point-in-time view of one client's guard state. Remaining is
// always recomputed from the persisted absolute deadline, never decremented,
// so it cannot drift.
type Status struct {
	Locked         bool
	Remaining      time.Duration
	LockLevel      int
	FailedAttempts int
}

// Guard is the submission throttle: it tracks consecutive invalid
// submission attempts per client key and, past a threshold, locks further
// attempts out for an escalating cooldown. Level and deadline survive
// restarts through the Store.
type Guard struct {
	store  kvstore.Store
	policy Policy
	now    func() time.Time

	mu       sync.Mutex
	attempts map[string]int
}

func New(store kvstore.Store, policy Policy) *Guard {
	return &Guard{
		store:    store,
		policy:   policy,
		now:      time.Now,
		attempts: make(map[string]int),
	}
}

// WithClock overrides the wall clock, for tests.
func (g *Guard) WithClock(now func() time.Time) *Guard {
	g.now = now
	return g
}

// Status reports whether the client is currently locked out. It re-reads
// the persisted deadline on every call rather than trusting any in-memory
// flag, so an expiring lock and a racing submit resolve against the same
// wall-clock comparison.
func (g *Guard) Status(ctx context.Context, key string) (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status(ctx, key)
}

func (g *Guard) status(ctx context.Context, key string) (Status, error) {
	rec, err := g.load(ctx, key)
	if err != nil {
		return Status{}, err
	}

	st := Status{
		LockLevel:      rec.LockLevel,
		FailedAttempts: g.attempts[key],
	}
	if remaining := rec.LockedUntil.Sub(g.now()); remaining > 0 {
		st.Locked = true
		st.Remaining = remaining
	}
	return st, nil
}

// load reads and normalizes the persisted record: an expired lock keeps its
// level until the staleness window passes, after which the record is dropped
// entirely and escalation starts over.
func (g *Guard) load(ctx context.Context, key string) (record, error) {
	raw, err := g.store.Get(ctx, keyPrefix+key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return record{}, nil
	}
	if err != nil {
		return record{}, fmt.Errorf("guard: load state: %w", err)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		// Unreadable state is treated as absent, not as locked.
		return record{}, nil
	}

	now := g.now()
	if !rec.LockedUntil.IsZero() && now.After(rec.LockedUntil.Add(g.policy.Staleness)) {
		_ = g.store.Delete(ctx, keyPrefix+key)
		return record{}, nil
	}
	if !rec.LockedUntil.Before(now) {
		return rec, nil
	}
	// Expired but fresh: the level is preserved, the deadline is spent.
	rec.LockedUntil = time.Time{}
	return rec, nil
}

// RecordFailure feeds one rejected submission attempt into the machine.
// Kinds the policy does not count leave the state untouched. A counted
// failure at the threshold triggers the lockout: level increments, the
// cooldown is computed from the new level, and the consecutive counter
// resets to zero.
func (g *Guard) RecordFailure(ctx context.Context, key string, kind FailureKind) (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	st, err := g.status(ctx, key)
	if err != nil {
		return Status{}, err
	}
	if st.Locked || !g.policy.counts(kind) {
		return st, nil
	}

	n := g.attempts[key] + 1
	if n < g.policy.Threshold {
		g.attempts[key] = n
		st.FailedAttempts = n
		return st, nil
	}

	level := st.LockLevel + 1
	duration := g.policy.durationFor(level)
	rec := record{
		LockLevel:   level,
		LockedUntil: g.now().Add(duration),
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return Status{}, fmt.Errorf("guard: marshal state: %w", err)
	}
	if err := g.store.Set(ctx, keyPrefix+key, raw); err != nil {
		return Status{}, fmt.Errorf("guard: persist state: %w", err)
	}
	g.attempts[key] = 0

	logger.FromCtx(ctx).Warn("submission lockout triggered",
		zap.String("client", key),
		zap.Int("lock_level", level),
		zap.Duration("duration", duration),
	)

	return Status{
		Locked:    true,
		Remaining: duration,
		LockLevel: level,
	}, nil
}

// RecordSuccess is the only transition besides staleness that clears the
// escalation level: an accepted order resets everything unconditionally.
func (g *Guard) RecordSuccess(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.attempts[key] = 0
	if err := g.store.Delete(ctx, keyPrefix+key); err != nil {
		return fmt.Errorf("guard: clear state: %w", err)
	}
	return nil
}
