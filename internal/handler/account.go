package handler

import (
	"net/http"

	"github.com/territoria/territoria/internal/ctxkeys"
	"github.com/territoria/territoria/internal/service"
	"github.com/territoria/territoria/internal/validation"
)

type accountHandler struct {
	avatarService *service.AvatarService
}

func NewAccountHandler(avatarService *service.AvatarService) *accountHandler {
	return &accountHandler{avatarService: avatarService}
}

// Me returns the authenticated user's own profile.
func (h *accountHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	user.AvatarURL = h.avatarService.URL(user)

	respond(w, http.StatusOK, envelope{"user": user})
}

// UploadAvatar replaces the authenticated user's profile picture.
func (h *accountHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := r.ParseMultipartForm(validation.ImageConstraints.MaxSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid upload")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No avatar file uploaded")
		return
	}
	defer file.Close()

	err = validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	url, err := h.avatarService.Upload(user, file, header)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondOK(w, "Avatar updated", envelope{"avatarUrl": url})
}

// DeleteAvatar removes the authenticated user's profile picture.
func (h *accountHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.avatarService.Delete(user)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondOK(w, "Avatar removed", nil)
}
