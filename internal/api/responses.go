//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/lootbox/lootbox-admin/internal/access"
	"github.com/lootbox/lootbox-admin/internal/db"
	"github.com/lootbox/lootbox-admin/internal/logging"
)

// Error codes carried in error envelopes.
const (
	CodeBadRequest  = "bad_request"
	CodeValidation  = "validation"
	CodeNotFound    = "not_found"
	CodeConflict    = "conflict"
	CodeRejected    = "rejected"
	CodeUnavailable = "unavailable"
	CodeInternal    = "internal"
)

const maxBodyBytes = 1 << 20

// SuccessEnvelope wraps every successful payload.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the body of an error envelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every error payload.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Outcome reports a routine-backed write or a delete.
type Outcome struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// badRequestError marks malformed requests that never reached the access layer.
type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, SuccessEnvelope{Data: data})
}

// writeOutcome answers 200 for ok outcomes and 422 with the message otherwise.
func writeOutcome(w http.ResponseWriter, ok bool, message string) {
	if ok {
		writeData(w, http.StatusOK, Outcome{OK: true, Message: message})
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, ErrorEnvelope{Error: APIError{
		Code:    CodeRejected,
		Message: message,
	}})
}

func writeNotFound(w http.ResponseWriter, what string) {
	writeJSON(w, http.StatusNotFound, ErrorEnvelope{Error: APIError{
		Code:    CodeNotFound,
		Message: what + " not found",
	}})
}

// writeError maps err onto a status and error envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		logging.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
	}
	writeJSON(w, status, ErrorEnvelope{Error: body})
}

func errorResponse(err error) (int, APIError) {
	var ve *access.ValidationError
	var bad *badRequestError

	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, APIError{Code: CodeValidation, Message: "validation failed", Details: ve.Fields}
	case errors.As(err, &bad):
		return http.StatusBadRequest, APIError{Code: CodeBadRequest, Message: bad.Error()}
	case errors.Is(err, access.ErrNotFound):
		return http.StatusNotFound, APIError{Code: CodeNotFound, Message: "record not found"}
	case db.IsIntegrity(err):
		return http.StatusConflict, APIError{Code: CodeConflict, Message: "the change violates a data integrity rule"}
	case db.IsConnection(err):
		return http.StatusServiceUnavailable, APIError{Code: CodeUnavailable, Message: "the store is unavailable"}
	default:
		return http.StatusInternalServerError, APIError{Code: CodeInternal, Message: "unexpected error"}
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error().Err(err).Msg("Failed to encode response")
	}
}

// decodeJSONBody decodes a bounded JSON body, rejecting unknown fields.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return &badRequestError{err: fmt.Errorf("invalid request body: %w", err)}
	}
	return nil
}
