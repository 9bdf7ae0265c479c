// Package handler implements the HTTP layer. Handlers decode requests,
// call services, and translate sentinel errors into status codes and the
// JSON shapes the web client expects.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// writeError writes a plain {"error": message} response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// claimError is the error shape of the agent claim endpoints.
type claimError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Hint    string `json:"hint,omitempty"`
}

// writeClaimError writes the claim endpoints' {success:false, ...} shape
func writeClaimError(w http.ResponseWriter, status int, message, hint string) {
	writeJSON(w, status, claimError{Success: false, Error: message, Hint: hint})
}
