package main

import (
	"encoding/json"
	"net/http"
)

// failureKind enumerates every way a request can fail. Each handler produces
// at most one of these; the wire status code comes from the single table in
// statusOf, never from the handler itself.
type failureKind int

const (
	kindValidation failureKind = iota
	kindUnauthenticated
	kindNotOwner
	kindUserNotFound
	kindProjectNotFound
	kindTaskNotFound
	kindNoTasks
	kindInternal
)

func statusOf(kind failureKind) int {
	switch kind {
	case kindValidation:
		return http.StatusUnprocessableEntity
	case kindUnauthenticated:
		return http.StatusUnauthorized
	case kindNotOwner:
		return http.StatusForbidden
	case kindUserNotFound, kindProjectNotFound, kindTaskNotFound, kindNoTasks:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type failure struct {
	kind    failureKind
	message string
	errors  []fieldError
}

func fail(kind failureKind, message string) *failure {
	return &failure{kind: kind, message: message}
}

func failValidation(errors []fieldError) *failure {
	return &failure{kind: kindValidation, message: "Validation error", errors: errors}
}

func failInternal() *failure {
	return &failure{kind: kindInternal, message: "Internal server error"}
}

type envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    any          `json:"data,omitempty"`
	Errors  []fieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, e envelope) {
	data, err := json.Marshal(e)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data)
}

func writeSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	writeJSON(w, statusCode, envelope{Success: true, Message: message, Data: data})
}

func writeFailure(w http.ResponseWriter, f *failure) {
	writeJSON(w, statusOf(f.kind), envelope{Success: false, Message: f.message, Errors: f.errors})
}
