package service

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/territoria/territoria/internal/model"
	"github.com/territoria/territoria/internal/repository"
	"github.com/territoria/territoria/internal/storage"
)

// AvatarService stores profile pictures in the object store and keeps the
// storage key on the user record. The store is optional; without it every
// operation fails with ErrStorageDisabled.
type AvatarService struct {
	userRepository repository.UserRepository
	storage        storage.Storage
}

func NewAvatarService(userRepository repository.UserRepository, store storage.Storage) *AvatarService {
	return &AvatarService{
		userRepository: userRepository,
		storage:        store,
	}
}

// Upload saves the image and replaces the user's previous avatar, if any.
// Validation of type and size is done by the caller.
func (s *AvatarService) Upload(user *model.User, file multipart.File, header *multipart.FileHeader) (string, error) {
	if s.storage == nil {
		return "", ErrStorageDisabled
	}

	ext := filepath.Ext(header.Filename)
	key := fmt.Sprintf("avatars/%s%s", uuid.New().String(), ext)

	err := s.storage.Save(key, file)
	if err != nil {
		return "", fmt.Errorf("failed to save avatar: %w", err)
	}

	old := user.Avatar
	err = s.userRepository.SetAvatar(user.ID, key)
	if err != nil {
		delErr := s.storage.Delete(key)
		if delErr != nil {
			slog.Error("failed to clean up avatar after db error", "error", delErr, "key", key)
		}
		return "", fmt.Errorf("failed to update avatar: %w", err)
	}

	if old != "" {
		err = s.storage.Delete(old)
		if err != nil {
			slog.Warn("failed to delete previous avatar", "error", err, "key", old)
		}
	}

	slog.Info("avatar uploaded", "user_id", user.ID, "key", key)
	return s.storage.PublicURL(key), nil
}

// Delete removes the user's avatar from storage and clears the record field.
func (s *AvatarService) Delete(user *model.User) error {
	if s.storage == nil {
		return ErrStorageDisabled
	}

	if user.Avatar == "" {
		return nil
	}

	err := s.userRepository.SetAvatar(user.ID, "")
	if err != nil {
		return fmt.Errorf("failed to clear avatar: %w", err)
	}

	err = s.storage.Delete(user.Avatar)
	if err != nil {
		slog.Warn("failed to delete avatar object", "error", err, "key", user.Avatar)
	}

	return nil
}

// URL resolves the stored avatar key to a public URL, or "" when unset.
func (s *AvatarService) URL(user *model.User) string {
	if s.storage == nil || user.Avatar == "" {
		return ""
	}
	return s.storage.PublicURL(user.Avatar)
}
