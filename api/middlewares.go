package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

type subjectContext string

const subjectContextKey subjectContext = "subjectContextKey"

// requireAuth extracts and verifies the bearer token, then makes the subject
// id available to downstream handlers through the request context. It never
// consults the database: a valid token is trusted until it expires, even if
// the user behind it has since been deleted.
func (app *application) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeFailure(w, fail(kindUnauthenticated, "No token provided"))
			return
		}
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeFailure(w, fail(kindUnauthenticated, "Invalid token"))
			return
		}
		subjectID, err := app.tokens.verify(parts[1])
		if err != nil {
			if errors.Is(err, errTokenExpired) {
				writeFailure(w, fail(kindUnauthenticated, "Token expired"))
				return
			}
			writeFailure(w, fail(kindUnauthenticated, "Invalid token"))
			return
		}
		ctx := context.WithValue(r.Context(), subjectContextKey, subjectID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func subjectFromRequest(r *http.Request) int {
	id, _ := r.Context().Value(subjectContextKey).(int)
	return id
}

func (app *application) enableCORS(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
		w.Header().Add("Vary", "Access-Control-Request-Method")

		origin := r.Header.Get("Origin")
		if origin != "" {
			for _, o := range app.config.cors.trustedOrigins {
				if origin == o || o == "*" {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					// preflight request
					if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
						w.Header().Set("Access-Control-Allow-Methods", "OPTIONS, PUT, PATCH, DELETE")
						w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
						w.WriteHeader(http.StatusOK)
						return
					}
					break
				}
			}
		}
		next.ServeHTTP(w, r)
	}
}
