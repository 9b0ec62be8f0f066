package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/cyberfolio/internal/domain"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a safe message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// fail maps err onto a response. Known domain errors carry their own message;
// anything else is logged with the request id and answered with safeMessage
// so storage details never reach the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, notFound, safeMessage string) {
	var tooLarge *bodyTooLargeError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", notFound)
	case errors.Is(err, domain.ErrDuplicateKey):
		writeError(w, http.StatusConflict, "conflict", conflictMessage(err))
	case errors.Is(err, domain.ErrEmptyUpdate):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", domain.ErrEmptyUpdate.Error())
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", tooLarge.Error())
	default:
		s.log.ErrorContext(r.Context(), safeMessage,
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", chimiddleware.GetReqID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", safeMessage)
	}
}

// conflictMessage names the violated constraint without echoing the driver text.
func conflictMessage(err error) string {
	if strings.Contains(err.Error(), "blog_posts_slug_key") {
		return "a blog post with this slug already exists"
	}
	return "a record with this id already exists"
}

// unwrapMessage extracts the human-readable part from a wrapped validation error.
// e.g. "validation error: title is required" → "title is required"
func unwrapMessage(err error) string {
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}

type bodyTooLargeError struct{ limit int64 }

func (e *bodyTooLargeError) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.limit)
}

// decodeBody decodes a JSON request body into dst. Unknown fields and trailing
// data are rejected as validation errors.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return &bodyTooLargeError{limit: maxErr.Limit}
		case errors.Is(err, io.EOF):
			return validationf("request body is required")
		default:
			return validationf("malformed JSON body: %v", err)
		}
	}
	if dec.More() {
		return validationf("request body must contain a single JSON object")
	}
	return nil
}
