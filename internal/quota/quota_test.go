package quota

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTracker(t *testing.T, limit int) (*Tracker, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)}
	return NewWithClock(limit, clock.Now), clock
}

func TestCommitCountsRequests(t *testing.T) {
	tr, _ := newTracker(t, 5)

	for i := 0; i < 3; i++ {
		res, err := tr.CheckAndReserve()
		require.NoError(t, err)
		tr.Commit(res)
	}

	st := tr.Status()
	assert.Equal(t, 3, st.Used)
	assert.Equal(t, 5, st.Limit)
	assert.Equal(t, 2, st.Remaining)
}

func TestExhaustionRejectsRepeatedly(t *testing.T) {
	tr, _ := newTracker(t, 2)

	for i := 0; i < 2; i++ {
		res, err := tr.CheckAndReserve()
		require.NoError(t, err)
		tr.Commit(res)
	}

	for i := 0; i < 4; i++ {
		_, err := tr.CheckAndReserve()
		assert.ErrorIs(t, err, ErrExceeded)
	}

	st := tr.Status()
	assert.Equal(t, 2, st.Used)
	assert.Equal(t, 0, st.Remaining)
}

func TestDailyResetKeepsLimit(t *testing.T) {
	tr, clock := newTracker(t, 50)
	tr.AdoptLimit(20)

	res, err := tr.CheckAndReserve()
	require.NoError(t, err)
	tr.Commit(res)
	assert.Equal(t, 1, tr.Status().Used)

	clock.now = clock.now.Add(24 * time.Hour)

	st := tr.Status()
	assert.Equal(t, 0, st.Used, "used resets on day rollover")
	assert.Equal(t, 20, st.Limit, "limit survives day rollover")
}

func TestAdoptLimitVerbatim(t *testing.T) {
	tr, _ := newTracker(t, 50)

	tr.AdoptLimit(20)
	assert.Equal(t, 20, tr.Status().Limit)

	// The upstream value is adopted even when it raises the cap.
	tr.AdoptLimit(100)
	assert.Equal(t, 100, tr.Status().Limit)
}

func TestZeroLimitRejectsEverything(t *testing.T) {
	tr, clock := newTracker(t, 50)
	tr.AdoptLimit(0)

	_, err := tr.CheckAndReserve()
	assert.ErrorIs(t, err, ErrExceeded)

	// Day rollover does not resurrect a zeroed limit.
	clock.now = clock.now.Add(24 * time.Hour)
	_, err = tr.CheckAndReserve()
	assert.ErrorIs(t, err, ErrExceeded)
}

func TestAbandonedReservationDoesNotCount(t *testing.T) {
	tr, _ := newTracker(t, 5)

	_, err := tr.CheckAndReserve()
	require.NoError(t, err)

	assert.Equal(t, 0, tr.Status().Used)
	assert.Equal(t, 5, tr.Status().Remaining)
}

func TestStaleReservationIgnoredAfterMidnight(t *testing.T) {
	tr, clock := newTracker(t, 5)

	res, err := tr.CheckAndReserve()
	require.NoError(t, err)

	clock.now = clock.now.Add(24 * time.Hour)
	tr.Commit(res)

	assert.Equal(t, 0, tr.Status().Used)
}

func TestRemainingNeverNegative(t *testing.T) {
	tr, _ := newTracker(t, 5)

	for i := 0; i < 3; i++ {
		res, err := tr.CheckAndReserve()
		require.NoError(t, err)
		tr.Commit(res)
	}
	tr.AdoptLimit(2)

	st := tr.Status()
	assert.Equal(t, 3, st.Used)
	assert.Equal(t, 2, st.Limit)
	assert.Equal(t, 0, st.Remaining)
}
