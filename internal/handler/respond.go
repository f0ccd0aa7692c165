package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/territoria/territoria/internal/repository"
	"github.com/territoria/territoria/internal/service"
)

// envelope is the response shape the frontend expects on every endpoint.
type envelope map[string]any

func respond(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(payload)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondOK(w http.ResponseWriter, message string, extra envelope) {
	payload := envelope{"message": message, "error": false, "success": true}
	for k, v := range extra {
		payload[k] = v
	}
	respond(w, http.StatusOK, payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, envelope{"message": message, "error": true, "success": false})
}

// respondServiceError maps a service-layer error onto the HTTP taxonomy:
// invalid input, conflicts, bad credentials and bad OTPs are 400; unapproved
// accounts 403; missing resources 404; mail and storage failures 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var invalid *service.InvalidInputError
	if errors.As(err, &invalid) {
		respondError(w, http.StatusBadRequest, invalid.Reason)
		return
	}

	switch {
	case errors.Is(err, service.ErrEmailExists):
		respondError(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, service.ErrNotRegistered):
		respondError(w, http.StatusBadRequest, "Email not registered")
	case errors.Is(err, service.ErrIncorrectPassword):
		respondError(w, http.StatusBadRequest, "Incorrect password")
	case errors.Is(err, service.ErrNotApproved):
		respondError(w, http.StatusForbidden, "Your account is not approved by admin yet.")
	case errors.Is(err, service.ErrInvalidOTP):
		respondError(w, http.StatusBadRequest, "Invalid OTP")
	case errors.Is(err, service.ErrOTPExpired):
		respondError(w, http.StatusBadRequest, "OTP expired")
	case errors.Is(err, service.ErrMailDelivery):
		respondError(w, http.StatusInternalServerError, "Failed to send email")
	case errors.Is(err, service.ErrStorageDisabled):
		respondError(w, http.StatusInternalServerError, "File storage is not configured")
	case errors.Is(err, repository.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "User not found")
	default:
		slog.Error("unexpected error", "error", err)
		respondError(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
