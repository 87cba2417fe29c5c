package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateAndGet(t *testing.T) {
	r := NewRegistry(50, time.Hour)

	sess := r.Create()
	assert.Equal(t, 50, sess.QuotaStatus().Limit)

	got, ok := r.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)

	_, ok = r.Get(uuid.New())
	assert.False(t, ok)
}

func TestRegistryDelete(t *testing.T) {
	r := NewRegistry(50, time.Hour)
	sess := r.Create()

	r.Delete(sess.ID)
	_, ok := r.Get(sess.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistrySweepRemovesIdleSessions(t *testing.T) {
	r := NewRegistry(50, time.Hour)
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	idle := r.Create()
	fresh := r.Create()

	now = now.Add(2 * time.Hour)
	fresh.touch(now)

	removed := r.Sweep()
	assert.Equal(t, 1, removed)

	_, ok := r.Get(idle.ID)
	assert.False(t, ok)
	_, ok = r.Get(fresh.ID)
	assert.True(t, ok)
}

func TestRegistryGetRefreshesIdleTimer(t *testing.T) {
	r := NewRegistry(50, time.Hour)
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	sess := r.Create()

	now = now.Add(50 * time.Minute)
	_, ok := r.Get(sess.ID)
	require.True(t, ok)

	now = now.Add(50 * time.Minute)
	assert.Equal(t, 0, r.Sweep(), "looked-up session is not idle")
}

func TestSessionBusyLatch(t *testing.T) {
	r := NewRegistry(50, time.Hour)
	sess := r.Create()

	require.NoError(t, sess.BeginGenerate())
	assert.ErrorIs(t, sess.BeginGenerate(), ErrBusy)

	sess.EndGenerate()
	assert.NoError(t, sess.BeginGenerate())
}

func TestSessionClearHistoryLeavesQuota(t *testing.T) {
	r := NewRegistry(50, time.Hour)
	sess := r.Create()

	res, err := sess.Reserve()
	require.NoError(t, err)
	sess.CommitSuccess(res, "Text submitted (3 words)", "a summary")
	require.Len(t, sess.HistoryEntries(), 2)
	require.Equal(t, 1, sess.QuotaStatus().Used)

	sess.ClearHistory()
	assert.Empty(t, sess.HistoryEntries())
	assert.Equal(t, 1, sess.QuotaStatus().Used, "clearing history must not touch quota")
}

func TestSessionLastSummary(t *testing.T) {
	r := NewRegistry(50, time.Hour)
	sess := r.Create()

	_, ok := sess.LastSummary()
	assert.False(t, ok)

	res, err := sess.Reserve()
	require.NoError(t, err)
	sess.CommitSuccess(res, "preview", "the summary text")

	got, ok := sess.LastSummary()
	require.True(t, ok)
	assert.Equal(t, "the summary text", got)
}
