package service

import (
	"fmt"
	"log/slog"

	"github.com/territoria/territoria/internal/model"
	"github.com/territoria/territoria/internal/repository"
)

// AdminService covers the moderation operations: listing, approving and
// deleting accounts.
type AdminService struct {
	userRepository repository.UserRepository
	mailer         Mailer
}

func NewAdminService(userRepository repository.UserRepository, mailer Mailer) *AdminService {
	return &AdminService{
		userRepository: userRepository,
		mailer:         mailer,
	}
}

// ListUsers returns all users projected to the public-safe field set,
// newest first.
func (s *AdminService) ListUsers() ([]model.PublicUser, error) {
	users, err := s.userRepository.All()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// VerifyUser approves an account, permitting login. The approval email is
// best effort; a delivery failure does not undo the approval.
func (s *AdminService) VerifyUser(id string) (*model.User, error) {
	user, err := s.userRepository.SetVerified(id)
	if err != nil {
		return nil, err
	}

	err = s.mailer.SendWelcome(user.Email, user.Name)
	if err != nil {
		slog.Warn("failed to send approval email", "error", err, "user_id", user.ID)
	}

	slog.Info("user verified", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// DeleteUser removes an account. Deleting an unknown id surfaces
// repository.ErrUserNotFound rather than a silent no-op.
func (s *AdminService) DeleteUser(id string) error {
	err := s.userRepository.Delete(id)
	if err != nil {
		return err
	}

	slog.Info("user deleted", "user_id", id)
	return nil
}
