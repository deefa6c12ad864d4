package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"staffpay/internal/apperr"
)

type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details map[string]any, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message, Details: details}, RequestID: requestID})
}

// FailError maps an error from the domain layer onto the envelope. Store
// failures are logged and answered with a generic message.
func FailError(w http.ResponseWriter, err error, requestID string) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Store("unexpected error", err)
	}
	status := apperr.HTTPStatus(appErr)
	switch appErr.Kind {
	case apperr.KindValidation:
		FailWithDetails(w, status, appErr.Code, appErr.Message, map[string]any{"fields": appErr.Fields}, requestID)
	case apperr.KindNotFound, apperr.KindConflict:
		Fail(w, status, appErr.Code, appErr.Message, requestID)
	default:
		slog.Error("request failed", "op", appErr.Message, "err", appErr.Err, "requestId", requestID)
		Fail(w, status, "internal_error", "internal server error", requestID)
	}
}
