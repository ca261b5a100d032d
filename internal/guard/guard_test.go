package guard

import (
	"context"
	"testing"
	"time"

	"flavis-be/internal/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestGuard(t *testing.T) (*Guard, *fakeClock, kvstore.Store) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
	store := kvstore.NewMemory()
	g := New(store, DefaultPolicy()).WithClock(clock.now)
	return g, clock, store
}

func failN(t *testing.T, g *Guard, key string, n int) Status {
	t.Helper()
	var st Status
	var err error
	for i := 0; i < n; i++ {
		st, err = g.RecordFailure(context.Background(), key, FailureValidation)
		require.NoError(t, err)
	}
	return st
}

func TestGuard_ThreeFailuresDoNotLock(t *testing.T) {
	g, _, _ := newTestGuard(t)
	ctx := context.Background()

	st := failN(t, g, "c1", 3)
	assert.False(t, st.Locked)
	assert.Equal(t, 3, st.FailedAttempts)

	// A success before the 4th failure clears everything; no lockout ever.
	require.NoError(t, g.RecordSuccess(ctx, "c1"))
	st, err := g.Status(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, st.Locked)
	assert.Equal(t, 0, st.FailedAttempts)
	assert.Equal(t, 0, st.LockLevel)
}

func TestGuard_FourthFailureLocks(t *testing.T) {
	g, _, _ := newTestGuard(t)

	st := failN(t, g, "c1", 4)
	assert.True(t, st.Locked)
	assert.Equal(t, 1, st.LockLevel)
	assert.Equal(t, 30*time.Second, st.Remaining)
	// The consecutive counter resets when the lock triggers.
	assert.Equal(t, 0, st.FailedAttempts)
}

func TestGuard_LockedAttemptsDoNotEscalate(t *testing.T) {
	g, clock, _ := newTestGuard(t)
	ctx := context.Background()

	failN(t, g, "c1", 4)
	clock.advance(20 * time.Second)

	// Attempt while locked: rejected state is unchanged, deadline untouched.
	st, err := g.RecordFailure(ctx, "c1", FailureValidation)
	require.NoError(t, err)
	assert.True(t, st.Locked)
	assert.Equal(t, 10*time.Second, st.Remaining)
	assert.Equal(t, 1, st.LockLevel)
}

func TestGuard_EscalationLadder(t *testing.T) {
	g, clock, _ := newTestGuard(t)

	expect := []struct {
		level    int
		duration time.Duration
	}{
		{1, 30 * time.Second},
		{2, 60 * time.Second},
		{3, 120 * time.Second},
		{4, 120 * time.Second}, // capped
	}

	for _, e := range expect {
		st := failN(t, g, "c1", 4)
		assert.True(t, st.Locked)
		assert.Equal(t, e.level, st.LockLevel)
		assert.Equal(t, e.duration, st.Remaining)

		// Let the lock expire but stay inside the staleness window so the
		// level carries over into the next episode.
		clock.advance(e.duration + time.Second)
	}
}

func TestGuard_UnlockPreservesLevel(t *testing.T) {
	g, clock, _ := newTestGuard(t)
	ctx := context.Background()

	failN(t, g, "c1", 4)
	clock.advance(31 * time.Second)

	st, err := g.Status(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, st.Locked)
	assert.Equal(t, 1, st.LockLevel)
	assert.Equal(t, 0, st.FailedAttempts)
}

func TestGuard_StalenessResetsLevel(t *testing.T) {
	ctx := context.Background()

	t.Run("PastWindow", func(t *testing.T) {
		g, clock, _ := newTestGuard(t)
		failN(t, g, "c1", 4)

		// Lock expired more than 10 minutes ago.
		clock.advance(30*time.Second + 10*time.Minute + time.Second)

		st, err := g.Status(ctx, "c1")
		require.NoError(t, err)
		assert.False(t, st.Locked)
		assert.Equal(t, 0, st.LockLevel)
	})

	t.Run("InsideWindow", func(t *testing.T) {
		g, clock, _ := newTestGuard(t)
		failN(t, g, "c1", 4)

		clock.advance(30*time.Second + 9*time.Minute)

		st, err := g.Status(ctx, "c1")
		require.NoError(t, err)
		assert.False(t, st.Locked)
		assert.Equal(t, 1, st.LockLevel)
	})
}

func TestGuard_SuccessResetsEverything(t *testing.T) {
	g, clock, _ := newTestGuard(t)
	ctx := context.Background()

	// Reach level 2 first.
	failN(t, g, "c1", 4)
	clock.advance(31 * time.Second)
	failN(t, g, "c1", 4)
	clock.advance(61 * time.Second)

	require.NoError(t, g.RecordSuccess(ctx, "c1"))

	st, err := g.Status(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 0, st.LockLevel)
	assert.Equal(t, 0, st.FailedAttempts)
	assert.False(t, st.Locked)
}

func TestGuard_UncountedKindsLeaveStateUntouched(t *testing.T) {
	g, _, _ := newTestGuard(t)
	ctx := context.Background()

	failN(t, g, "c1", 3)

	for _, kind := range []FailureKind{FailureStock, FailureCampaignClosed, FailureBackend} {
		st, err := g.RecordFailure(ctx, "c1", kind)
		require.NoError(t, err)
		assert.False(t, st.Locked)
		assert.Equal(t, 3, st.FailedAttempts)
	}

	// The next validation failure is still only the 4th.
	st := failN(t, g, "c1", 1)
	assert.True(t, st.Locked)
	assert.Equal(t, 1, st.LockLevel)
}

func TestGuard_StateSurvivesRestart(t *testing.T) {
	g, clock, store := newTestGuard(t)
	ctx := context.Background()

	failN(t, g, "c1", 4)

	// A fresh Guard over the same store reconstructs the lock; only the
	// in-memory consecutive counter is gone.
	g2 := New(store, DefaultPolicy()).WithClock(clock.now)
	st, err := g2.Status(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, st.Locked)
	assert.Equal(t, 1, st.LockLevel)
	assert.Equal(t, 30*time.Second, st.Remaining)
}

func TestGuard_KeysAreIndependent(t *testing.T) {
	g, _, _ := newTestGuard(t)
	ctx := context.Background()

	failN(t, g, "c1", 4)

	st, err := g.Status(ctx, "c2")
	require.NoError(t, err)
	assert.False(t, st.Locked)
	assert.Equal(t, 0, st.FailedAttempts)
}

func TestPolicy_DurationFor(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 30*time.Second, p.durationFor(1))
	assert.Equal(t, 60*time.Second, p.durationFor(2))
	assert.Equal(t, 120*time.Second, p.durationFor(3))
	assert.Equal(t, 120*time.Second, p.durationFor(9))
}
