// Package quota tracks the daily summarization request budget for one session.
package quota

import (
	"errors"
	"time"
)

// DefaultDailyLimit is the request cap applied to a fresh tracker.
const DefaultDailyLimit = 50

// ErrExceeded is returned when the daily request budget is used up.
var ErrExceeded = errors.New("daily request limit exceeded")

// Tracker counts summarization requests against a per-day limit. The day
// rollover happens lazily on any operation: when the stored calendar day
// differs from the current one, the used counter resets to zero while the
// limit keeps its last value. A Tracker belongs to exactly one session and
// is not safe for concurrent use; the owning session serializes access.
type Tracker struct {
	day   time.Time
	used  int
	limit int
	now   func() time.Time
}

// Reservation marks intent to consume one request. It is produced by
// CheckAndReserve and spent by Commit; a reservation abandoned after a
// failed upstream call simply never counts.
type Reservation struct {
	day time.Time
}

// Status is the display snapshot of the tracker.
type Status struct {
	Day       string `json:"day"`
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
}

// New creates a tracker for today with the given daily limit.
func New(limit int) *Tracker {
	return NewWithClock(limit, time.Now)
}

// NewWithClock creates a tracker with an injected clock for tests.
func NewWithClock(limit int, now func() time.Time) *Tracker {
	t := &Tracker{limit: limit, now: now}
	t.day = dateOf(now())
	return t
}

// CheckAndReserve verifies that one more request fits into today's budget.
// It performs the lazy daily reset first, then fails with ErrExceeded once
// used has reached limit (a limit of zero rejects everything until the
// upstream reports a new value). The counter is not incremented here;
// callers Commit the reservation only after the upstream call succeeds.
func (t *Tracker) CheckAndReserve() (Reservation, error) {
	t.rollover()
	if t.used >= t.limit {
		return Reservation{}, ErrExceeded
	}
	return Reservation{day: t.day}, nil
}

// Commit consumes a reservation, counting one request against today.
// A reservation from a previous day is ignored: the call it guarded
// straddled midnight and charging it to the new day would be wrong.
func (t *Tracker) Commit(r Reservation) {
	t.rollover()
	if !r.day.Equal(t.day) {
		return
	}
	t.used++
}

// AdoptLimit replaces the daily limit with the value the upstream API
// reported. The value is adopted verbatim, whether lower or higher; the
// upstream is authoritative about its own cap.
func (t *Tracker) AdoptLimit(limit int) {
	t.limit = limit
}

// Status returns current usage figures after the lazy daily reset.
func (t *Tracker) Status() Status {
	t.rollover()
	remaining := t.limit - t.used
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		Day:       t.day.Format("2006-01-02"),
		Used:      t.used,
		Limit:     t.limit,
		Remaining: remaining,
	}
}

func (t *Tracker) rollover() {
	today := dateOf(t.now())
	if !today.Equal(t.day) {
		t.day = today
		t.used = 0
	}
}

func dateOf(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}
