package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/briefly-app/briefly/internal/api"
	"github.com/briefly-app/briefly/internal/extract"
	"github.com/briefly-app/briefly/internal/history"
	"github.com/briefly-app/briefly/internal/quota"
)

// SampleText is the built-in demo passage users can load with one click.
const SampleText = "Blockchain technology is a decentralized digital ledger that records " +
	"transactions securely across multiple computers. It ensures transparency, " +
	"security, and trust without needing intermediaries. Blockchain is used in " +
	"cryptocurrency, supply chains, healthcare records, and digital identity."

type contextKey string

const sessionKey contextKey = "session"

// FromContext returns the session resolved by Middleware, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey).(*Session)
	return s
}

// Handler exposes the session lifecycle and session-scoped state over HTTP.
type Handler struct {
	registry       *Registry
	maxUploadBytes int64
}

// NewHandler creates the session handler. maxUploadBytes caps document uploads.
func NewHandler(registry *Registry, maxUploadBytes int64) *Handler {
	return &Handler{registry: registry, maxUploadBytes: maxUploadBytes}
}

// Middleware resolves {sessionID} into the request context, rejecting
// unknown or malformed IDs before any session handler runs.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
		if err != nil {
			api.HandleError(w, api.NewBadRequestError("invalid session id"))
			return
		}

		sess, ok := h.registry.Get(id)
		if !ok {
			api.HandleError(w, api.ErrSessionNotFound)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type sessionState struct {
	SessionID string          `json:"session_id"`
	InputText string          `json:"input_text"`
	Quota     quota.Status    `json:"quota"`
	History   []history.Entry `json:"history"`
}

// Create registers a new session.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sess := h.registry.Create()
	slog.Info("session created", "session_id", sess.ID)

	api.JSON(w, http.StatusCreated, map[string]any{
		"session_id": sess.ID,
		"quota":      sess.QuotaStatus(),
	})
}

// Get returns everything the display collaborator renders.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess := FromContext(r.Context())
	api.JSON(w, http.StatusOK, sessionState{
		SessionID: sess.ID.String(),
		InputText: sess.InputText(),
		Quota:     sess.QuotaStatus(),
		History:   sess.HistoryEntries(),
	})
}

// Delete discards the session.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := FromContext(r.Context())
	h.registry.Delete(sess.ID)
	api.JSONMessage(w, http.StatusOK, "session deleted")
}

type setTextRequest struct {
	Text string `json:"text"`
}

// SetText replaces the session's stored input text. Content is not
// validated here; emptiness is checked when a summary is requested.
func (h *Handler) SetText(w http.ResponseWriter, r *http.Request) {
	var req setTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, api.ErrBadRequest)
		return
	}

	sess := FromContext(r.Context())
	sess.SetInputText(req.Text)
	api.JSONMessage(w, http.StatusOK, "input text updated")
}

// LoadSampleText stores the built-in sample passage as the input text.
func (h *Handler) LoadSampleText(w http.ResponseWriter, r *http.Request) {
	sess := FromContext(r.Context())
	sess.SetInputText(SampleText)
	api.JSON(w, http.StatusOK, map[string]string{"text": SampleText})
}

// UploadDocument ingests an uploaded .txt or .pdf file as the input text.
// A failed PDF extraction is a warning, not an error: the session's
// existing input text stays as it was.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	sess := FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		api.HandleError(w, api.NewBadRequestError("missing or oversized file upload"))
		return
	}
	defer file.Close()

	text, err := extract.Text(header.Filename, file)
	if err != nil {
		var pdfErr *extract.PDFError
		if errors.As(err, &pdfErr) {
			slog.Warn("pdf extraction failed", "session_id", sess.ID, "file", header.Filename, "error", err)
			api.JSONWarning(w, http.StatusOK,
				map[string]string{"text": sess.InputText()},
				"PDF read failed")
			return
		}
		if errors.Is(err, extract.ErrUnsupportedType) {
			api.HandleError(w, api.NewBadRequestError(err.Error()))
			return
		}
		slog.Error("reading upload", "session_id", sess.ID, "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}

	sess.SetInputText(text)
	api.JSON(w, http.StatusOK, map[string]string{"text": text})
}

// GetQuota returns current usage figures.
func (h *Handler) GetQuota(w http.ResponseWriter, r *http.Request) {
	sess := FromContext(r.Context())
	api.JSON(w, http.StatusOK, sess.QuotaStatus())
}

// GetHistory returns the transcript in display order.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	sess := FromContext(r.Context())
	api.JSON(w, http.StatusOK, sess.HistoryEntries())
}

// ClearHistory empties the transcript. Quota is unaffected.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	sess := FromContext(r.Context())
	sess.ClearHistory()
	api.JSONMessage(w, http.StatusOK, "history cleared")
}
