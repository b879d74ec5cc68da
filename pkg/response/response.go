// Package response writes the JSON envelope every API handler answers with:
//
//	{"status": 200, "data": {...}}
//	{"status": 422, "message": "Validation failed", "errors": {"customer": "..."}}
package response

import (
	"encoding/json"
	"net/http"
)

type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(w http.ResponseWriter, data any) {
	write(w, http.StatusCreated, envelope{Status: http.StatusCreated, Data: data})
}

// Message sends a 200 with only a message.
func Message(w http.ResponseWriter, message string) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Message: message})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Status: status, Message: message})
}

// ValidationError sends a 422 with the field → message map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusUnprocessableEntity, envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// BadRequest sends a 400.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}

// ServerError sends a 500 without leaking the cause.
func ServerError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal server error")
}
