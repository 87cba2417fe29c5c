package api

import (
	"errors"
	"net/http"
)

type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
}

func (e *AppError) Error() string {
	return e.Message
}

var (
	ErrBadRequest      = &AppError{Code: http.StatusBadRequest, Message: "bad request"}
	ErrNotFound        = &AppError{Code: http.StatusNotFound, Message: "not found"}
	ErrInternalServer  = &AppError{Code: http.StatusInternalServerError, Message: "internal server error"}
	ErrSessionNotFound = &AppError{Code: http.StatusNotFound, Message: "session not found"}
)

func NewBadRequestError(msg string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: msg}
}

func NewValidationError(msg string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: msg}
}

func NewNotFoundError(msg string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: msg}
}

// NewConflictError reports a request that collides with one in flight.
func NewConflictError(msg string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: msg}
}

// NewQuotaError reports a refused request, local or upstream-driven.
func NewQuotaError(msg string) *AppError {
	return &AppError{Code: http.StatusTooManyRequests, Message: msg}
}

// NewUpstreamError surfaces an upstream failure message verbatim.
func NewUpstreamError(msg string) *AppError {
	return &AppError{Code: http.StatusBadGateway, Message: msg}
}

func HandleError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		JSONErrorMessage(w, appErr.Code, appErr.Message)
		return
	}
	JSONErrorMessage(w, http.StatusInternalServerError, "internal server error")
}
