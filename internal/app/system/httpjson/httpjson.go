// Package httpjson writes JSON responses and maps the service error
// taxonomy onto HTTP status codes at the handler boundary.
//
// Taxonomy: validation → 400, not found → 404, conflict → 409,
// forbidden → 403, unauthorized → 401, everything else → 500 with a
// generic body. Internal errors are logged server-side in full;
// clients never see details of a 500.
package httpjson

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// errorBody is the uniform error envelope: {"error": "..."}.
type errorBody struct {
	Error string `json:"error"`
}

// Write encodes v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// BadRequest writes a 400 with the given message.
func BadRequest(w http.ResponseWriter, msg string) {
	Write(w, http.StatusBadRequest, errorBody{Error: msg})
}

// Unauthorized writes a 401 with the given message.
func Unauthorized(w http.ResponseWriter, msg string) {
	Write(w, http.StatusUnauthorized, errorBody{Error: msg})
}

// Forbidden writes a 403 with the given message.
func Forbidden(w http.ResponseWriter, msg string) {
	Write(w, http.StatusForbidden, errorBody{Error: msg})
}

// NotFound writes a 404 with the given message.
func NotFound(w http.ResponseWriter, msg string) {
	Write(w, http.StatusNotFound, errorBody{Error: msg})
}

// Conflict writes a 409 with the given message.
func Conflict(w http.ResponseWriter, msg string) {
	Write(w, http.StatusConflict, errorBody{Error: msg})
}

// ErrorLogger logs internal failures and writes generic 500 responses.
// Handlers hold one so store errors never leak to clients.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger on the given zap logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// ServerError logs msg with the underlying error and request context,
// then writes a generic 500 body.
func (e *ErrorLogger) ServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	e.log.Error(msg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	Write(w, http.StatusInternalServerError, errorBody{Error: "Internal Server Error"})
}
