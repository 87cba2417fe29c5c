package summarize

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/briefly-app/briefly/internal/api"
	"github.com/briefly-app/briefly/internal/gemini"
	"github.com/briefly-app/briefly/internal/quota"
	"github.com/briefly-app/briefly/internal/session"
)

// Handler exposes summary generation and download over HTTP.
type Handler struct {
	svc      *Service
	validate *validator.Validate
}

// NewHandler creates the summarize handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// Generate runs one summarization request for the session in context.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		api.HandleError(w, api.ErrSessionNotFound)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, api.ErrBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}

	result, err := h.svc.Generate(r.Context(), sess, req)
	if err != nil {
		h.writeGenerateError(w, sess, err)
		return
	}

	api.JSON(w, http.StatusOK, result)
}

// writeGenerateError maps the orchestrator's error taxonomy onto HTTP
// statuses, attaching current usage figures to quota refusals.
func (h *Handler) writeGenerateError(w http.ResponseWriter, sess *session.Session, err error) {
	switch {
	case errors.Is(err, session.ErrBusy):
		api.HandleError(w, api.NewConflictError(err.Error()))
	case errors.Is(err, quota.ErrExceeded):
		st := sess.QuotaStatus()
		api.HandleError(w, api.NewQuotaError(
			fmt.Sprintf("daily limit reached: %d of %d requests used", st.Used, st.Limit)))
	case errors.Is(err, ErrEmptyInput):
		api.HandleError(w, api.NewBadRequestError(err.Error()))
	default:
		var qe *gemini.QuotaError
		if errors.As(err, &qe) {
			st := sess.QuotaStatus()
			api.HandleError(w, api.NewQuotaError(
				fmt.Sprintf("upstream quota reached, daily limit is %d", st.Limit)))
			return
		}
		// Any other upstream failure surfaces verbatim.
		api.HandleError(w, api.NewUpstreamError(err.Error()))
	}
}

// DownloadSummary serves the latest summary as a plain-text attachment.
func (h *Handler) DownloadSummary(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		api.HandleError(w, api.ErrSessionNotFound)
		return
	}

	summary, ok := sess.LastSummary()
	if !ok {
		api.HandleError(w, api.NewNotFoundError("no summary generated yet"))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="summary.txt"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(summary))
}
