package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"forum/app/logging"
	"forum/app/repositories"
	"forum/app/services"
)

var log = logging.NewLogger("controllers")

// Helper functions for consistent response handling

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Errorf("encoding response: %v", err)
	}
}

func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, map[string]string{"error": message})
}

// sendServiceError maps a service error to its HTTP status.
func sendServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		sendError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repositories.ErrNotFound):
		sendError(w, err.Error(), http.StatusNotFound)
	default:
		log.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		sendError(w, "internal server error", http.StatusInternalServerError)
	}
}

// queryInt reads an optional integer query parameter. Missing parameters
// yield fallback; malformed ones are an error.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
