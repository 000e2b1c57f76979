package handlers

import (
	"encoding/json"
	"net/http"
)

// writeJSON sends a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError sends the structured {message} error body every failure path
// uses. Messages stay short; internals never reach the client.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
