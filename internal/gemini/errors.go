package gemini

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// QuotaError reports that the upstream rejected the call for resource
// exhaustion. ReportedLimit carries the daily quota value extracted from
// the error payload when one was present.
type QuotaError struct {
	Message       string
	ReportedLimit *int
}

func (e *QuotaError) Error() string {
	return e.Message
}

// The upstream error contract is loosely typed: the exhaustion signal is a
// substring of the error text, and the quota value is a number following
// the literal token "quotaValue". If Google changes the payload format the
// extraction fails silently and the limit is left unchanged. This is
// deliberate: the fallback is part of the component contract, matching
// exactly these patterns.
var (
	exhaustionMarkers = []string{"429", "RESOURCE_EXHAUSTED"}
	quotaValuePattern = regexp.MustCompile(`quotaValue[^\d]*(\d+)`)
)

// Classify turns a raw upstream failure message into the client's error
// taxonomy: a *QuotaError when the message carries an exhaustion marker,
// otherwise a plain error wrapping the message verbatim.
func Classify(message string) error {
	exhausted := false
	for _, marker := range exhaustionMarkers {
		if strings.Contains(message, marker) {
			exhausted = true
			break
		}
	}
	if !exhausted {
		return errors.New(message)
	}

	qe := &QuotaError{Message: message}
	if m := quotaValuePattern.FindStringSubmatch(message); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			qe.ReportedLimit = &v
		}
	}
	return qe
}
