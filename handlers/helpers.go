package handlers

import (
	"encoding/json"
	"net/http"

	"clementus360/goal-tracker/config"
	"clementus360/goal-tracker/middleware"
	"clementus360/goal-tracker/types"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, message string, status int) {
	resp := types.StatusResponse{
		Success:      false,
		ErrorMessage: message,
	}
	writeJSON(w, status, resp)
}

// writeServiceError maps an error kind to its HTTP status.
func writeServiceError(w http.ResponseWriter, err error, action string) {
	status := statusFor(err)
	entry := config.Logger.WithError(err).WithField("action", action)
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Debug("Request rejected")
	}

	message := err.Error()
	if types.KindOf(err) == "" {
		message = "Could not " + action
	}
	writeError(w, message, status)
}

func statusFor(err error) int {
	switch types.KindOf(err) {
	case types.KindValidation:
		return http.StatusBadRequest
	case types.KindNotFound:
		return http.StatusNotFound
	case types.KindAuth:
		return http.StatusUnauthorized
	case types.KindRemote:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		config.Logger.WithError(err).Debug("Failed to decode JSON body")
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

func sessionOrFail(w http.ResponseWriter, r *http.Request) (types.Session, bool) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
	}
	return session, ok
}

func requireID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, "Missing goal ID", http.StatusBadRequest)
		return "", false
	}
	return id, true
}
