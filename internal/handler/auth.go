package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/territoria/territoria/internal/service"
)

type authHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *authHandler {
	return &authHandler{authService: authService}
}

type registerRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Congregation   string `json:"congregation"`
	ReferralSource string `json:"referralSource"`
}

// Register creates a new unverified account. The response carries the stored
// record minus the password hash and OTP fields.
func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.authService.Register(service.RegisterInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Congregation:   req.Congregation,
		ReferralSource: req.ReferralSource,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusCreated, envelope{
		"message": "User registered successfully",
		"error":   false,
		"success": true,
		"user":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and returns a minimal profile plus a signed session
// token. Unapproved non-admin accounts get a 403.
func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		// Login wording differs from the reset flow's "Email not registered"
		if errors.Is(err, service.ErrNotRegistered) {
			respondError(w, http.StatusBadRequest, "User not registered")
			return
		}
		respondServiceError(w, err)
		return
	}

	respondOK(w, "Login successfully", envelope{
		"user": envelope{
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"token": token,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword issues a reset OTP and mails it to the account owner.
func (h *authHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.authService.IssueResetOTP(req.Email)
	if err != nil {
		slog.Warn("otp issuance failed", "error", err, "email", req.Email)
		respondServiceError(w, err)
		return
	}

	respondOK(w, "OTP sent to email", nil)
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword consumes a pending OTP and replaces the password.
func (h *authHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.authService.ResetPassword(req.Email, req.OTP, req.NewPassword)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondOK(w, "Password reset successfully", nil)
}
