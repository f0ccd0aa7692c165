package handler

import (
	"net/http"

	"github.com/territoria/territoria/internal/service"
)

type adminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *adminHandler {
	return &adminHandler{adminService: adminService}
}

// Users lists all accounts for the moderation panel.
func (h *adminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, envelope{"users": users})
}

// VerifyUser approves a pending account.
func (h *adminHandler) VerifyUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	user, err := h.adminService.VerifyUser(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondOK(w, "User verified successfully", envelope{"user": user})
}

// DeleteUser removes an account. Unknown ids get a 404.
func (h *adminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	err := h.adminService.DeleteUser(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondOK(w, "User deleted successfully", nil)
}
