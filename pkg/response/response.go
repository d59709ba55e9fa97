// Package response writes the JSON bodies the sweet-shop API serves. Success
// responses carry the resource itself; failures carry {"message": ...} plus
// the status code, with no internal error detail ever leaked to the client.
package response

import (
	"encoding/json"
	"net/http"
)

func write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// JSON sends an arbitrary value with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	write(w, status, v)
}

// OK sends a 200 with the given body.
func OK(w http.ResponseWriter, v interface{}) {
	write(w, http.StatusOK, v)
}

// Created sends a 201 with the given body.
func Created(w http.ResponseWriter, v interface{}) {
	write(w, http.StatusCreated, v)
}

// Message sends a 200 with a plain {"message": ...} body.
func Message(w http.ResponseWriter, message string) {
	write(w, http.StatusOK, map[string]string{"message": message})
}

// Error sends {"message": ...} with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, map[string]string{"message": message})
}

// ValidationFailed sends a 400 with field-level errors.
func ValidationFailed(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusBadRequest, map[string]interface{}{
		"message": "Validation failed",
		"errors":  errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// Internal sends a 500 with a generic message.
func Internal(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}
