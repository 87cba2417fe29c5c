// Package session owns the per-session state that the original UI kept as
// implicit globals: input text, quota tracker, transcript, last summary.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/briefly-app/briefly/internal/history"
	"github.com/briefly-app/briefly/internal/quota"
)

// ErrBusy means a summarization is already in flight for the session.
// Duplicate generate triggers are rejected, not queued.
var ErrBusy = errors.New("summarization already in progress")

// Session is the state handle for one user session. All mutating methods
// take the session mutex, so handlers may touch a session concurrently even
// though at most one summarization runs at a time.
type Session struct {
	ID uuid.UUID

	mu          sync.Mutex
	inputText   string
	quota       *quota.Tracker
	transcript  *history.Log
	lastSummary string
	hasSummary  bool
	busy        bool
	lastSeen    time.Time
}

func newSession(dailyLimit int, now func() time.Time) *Session {
	return &Session{
		ID:         uuid.New(),
		quota:      quota.NewWithClock(dailyLimit, now),
		transcript: history.NewLog(),
		lastSeen:   now(),
	}
}

// SetInputText replaces the stored input text.
func (s *Session) SetInputText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputText = text
}

// InputText returns the stored input text.
func (s *Session) InputText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inputText
}

// BeginGenerate acquires the session's single-flight latch. It fails with
// ErrBusy while another summarization is running.
func (s *Session) BeginGenerate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

// EndGenerate releases the single-flight latch.
func (s *Session) EndGenerate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}

// Reserve checks quota availability for one more request.
func (s *Session) Reserve() (quota.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quota.CheckAndReserve()
}

// CommitSuccess records a successful summarization in one step: the quota
// reservation is committed, the transcript gains the user preview and the
// AI summary, and the summary is retained for the download affordance.
func (s *Session) CommitSuccess(res quota.Reservation, preview, summary string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quota.Commit(res)
	s.transcript.Append(history.RoleUser, preview)
	s.transcript.Append(history.RoleAI, summary)
	s.lastSummary = summary
	s.hasSummary = true
}

// AdoptLimit applies an upstream-reported daily limit and returns the
// resulting quota snapshot.
func (s *Session) AdoptLimit(limit int) quota.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quota.AdoptLimit(limit)
	return s.quota.Status()
}

// QuotaStatus returns current usage figures.
func (s *Session) QuotaStatus() quota.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quota.Status()
}

// HistoryEntries returns a snapshot of the transcript.
func (s *Session) HistoryEntries() []history.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Entries()
}

// ClearHistory empties the transcript. Quota is untouched.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript.Clear()
}

// LastSummary returns the most recent successful summary, if any.
func (s *Session) LastSummary() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSummary, s.hasSummary
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
