package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/briefly-app/briefly/internal/gemini"
	"github.com/briefly-app/briefly/internal/metrics"
	"github.com/briefly-app/briefly/internal/session"
)

// Service runs the per-request lifecycle: validate, reserve quota, call the
// upstream, then commit quota and transcript on success. Failed calls leave
// quota and transcript untouched; an upstream quota error additionally makes
// the tracker adopt the reported limit.
type Service struct {
	summarizer Summarizer
}

// NewService creates the orchestrator around the given upstream.
func NewService(summarizer Summarizer) *Service {
	return &Service{summarizer: summarizer}
}

// Generate processes one summarization request against the given session.
//
// At most one generation runs per session: a request arriving while another
// is in flight fails with session.ErrBusy instead of queueing. Validation
// checks quota first, then input text, and has no side effects; only the
// success and failure arms mutate session state.
func (s *Service) Generate(ctx context.Context, sess *session.Session, req GenerateRequest) (*SummaryResult, error) {
	if err := sess.BeginGenerate(); err != nil {
		metrics.SummariesTotal.WithLabelValues("busy").Inc()
		return nil, err
	}
	defer sess.EndGenerate()

	reservation, err := sess.Reserve()
	if err != nil {
		metrics.SummariesTotal.WithLabelValues("quota_rejected").Inc()
		return nil, err
	}

	text := req.Text
	if text == "" {
		text = sess.InputText()
	} else {
		sess.SetInputText(text)
	}
	if strings.TrimSpace(text) == "" {
		metrics.SummariesTotal.WithLabelValues("empty_input").Inc()
		return nil, ErrEmptyInput
	}

	req.Text = text
	prompt, temperature := BuildPrompt(req)

	start := time.Now()
	summary, err := s.summarizer.Summarize(ctx, prompt, temperature, req.MaxTokens)
	metrics.SummarizeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, s.handleUpstreamError(sess, err)
	}

	originalWords := WordCount(text)
	summaryWords := WordCount(summary)

	preview := fmt.Sprintf("Text submitted (%d words)", originalWords)
	sess.CommitSuccess(reservation, preview, summary)
	metrics.SummariesTotal.WithLabelValues("success").Inc()

	return &SummaryResult{
		Summary:          summary,
		OriginalWords:    originalWords,
		SummaryWords:     summaryWords,
		ReductionPercent: ReductionPercent(originalWords, summaryWords),
	}, nil
}

func (s *Service) handleUpstreamError(sess *session.Session, err error) error {
	var qe *gemini.QuotaError
	if errors.As(err, &qe) {
		metrics.SummariesTotal.WithLabelValues("upstream_quota").Inc()
		if qe.ReportedLimit != nil {
			st := sess.AdoptLimit(*qe.ReportedLimit)
			slog.Warn("upstream quota reached, adopted reported limit",
				"session_id", sess.ID, "limit", st.Limit)
		} else {
			slog.Warn("upstream quota reached, no limit reported", "session_id", sess.ID)
		}
		return err
	}

	metrics.SummariesTotal.WithLabelValues("upstream_error").Inc()
	slog.Error("summarization failed", "session_id", sess.ID, "error", err)
	return err
}
