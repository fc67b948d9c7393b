// Package httputil writes the JSON response envelope shared by all handlers.
package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/mad-madhu-001/ecommerce/pkg/errors"
	"github.com/mad-madhu-001/ecommerce/pkg/logger"
	"github.com/mad-madhu-001/ecommerce/pkg/validator"
)

// Response is the JSON envelope: exactly one of Data and Error is set.
type Response struct {
	Data  any            `json:"data,omitempty"`
	Error *ErrorResponse `json:"error,omitempty"`
}

// ErrorResponse describes a failed request.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	Details   any               `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; an encoding failure cannot be reported.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes v inside the envelope's data field.
func WriteData(w http.ResponseWriter, status int, v any) {
	WriteJSON(w, status, Response{Data: v})
}

// WriteError maps err to a status and error code and writes the envelope.
// Validation errors carry per-field messages. Server errors are logged with
// the request-scoped logger when present, otherwise with fallback.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	WriteErrorDetails(w, r, err, nil, fallback)
}

// WriteErrorDetails is WriteError with extra context attached to the error
// body, such as the notifications a failed cart action emitted.
func WriteErrorDetails(w http.ResponseWriter, r *http.Request, err error, details any, fallback *slog.Logger) {
	ctx := r.Context()
	requestID := logger.CorrelationIDFromContext(ctx)

	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, Response{Error: &ErrorResponse{
			Code:      "VALIDATION_ERROR",
			Message:   "request validation failed",
			Fields:    valErr.Fields(),
			Details:   details,
			RequestID: requestID,
		}})
		return
	}

	resp := &ErrorResponse{
		Code:      "INTERNAL_ERROR",
		Message:   "an internal error occurred",
		Details:   details,
		RequestID: requestID,
	}
	status := apperrors.HTTPStatus(err)

	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		resp.Code, resp.Message = appErr.Code, appErr.Message
	case status == http.StatusNotFound:
		resp.Code, resp.Message = "NOT_FOUND", "resource not found"
	case status == http.StatusBadRequest:
		resp.Code, resp.Message = "INVALID_INPUT", err.Error()
	case status == http.StatusServiceUnavailable:
		resp.Code, resp.Message = "SERVICE_UNAVAILABLE", "service unavailable"
	}

	if status >= http.StatusInternalServerError {
		attrs := []slog.Attr{slog.String("error", err.Error())}
		// A request-scoped logger already carries method and path.
		l := logger.FromContext(ctx)
		if l == slog.Default() {
			if fallback != nil {
				l = fallback
			}
			attrs = append(attrs, slog.String("method", r.Method), slog.String("path", r.URL.Path))
		}
		l.LogAttrs(ctx, slog.LevelError, "request failed", attrs...)
	}

	WriteJSON(w, status, Response{Error: resp})
}
