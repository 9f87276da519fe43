package main

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	healthCheck := struct {
		Status      string `json:"status"`
		Environment string `json:"environment"`
		Version     string `json:"version"`
	}{
		Status:      "available",
		Environment: app.config.env,
		Version:     version,
	}
	writeSuccess(w, http.StatusOK, "Service is healthy", healthCheck)
}

// decodeJSON reads the request body into dst. A body that isn't valid JSON
// is reported as a validation failure, matching how missing fields are.
func decodeJSON(r *http.Request, dst any) *failure {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		return failValidation([]fieldError{{Field: "body", Message: "Body must be valid JSON"}})
	}
	return nil
}

// pathID parses a numeric path segment. Ids are positive; anything else is
// reported by the caller as the resource not being found.
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
