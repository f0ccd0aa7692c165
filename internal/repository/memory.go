package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/territoria/territoria/internal/model"
)

// MemoryUserRepository is a map-backed UserRepository with the same
// semantics as the SQL implementation. Used by tests and local tooling.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*model.User)}
}

func (r *MemoryUserRepository) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *MemoryUserRepository) ByID(id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *MemoryUserRepository) ByEmail(email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepository) All() ([]model.PublicUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.PublicUser, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, model.PublicUser{
			ID:             u.ID,
			Name:           u.Name,
			Email:          u.Email,
			Congregation:   u.Congregation,
			ReferralSource: u.ReferralSource,
			VerifyEmail:    u.VerifyEmail,
			CreatedAt:      u.CreatedAt,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryUserRepository) SetVerified(id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	user.VerifyEmail = true
	user.UpdatedAt = time.Now()
	clone := *user
	return &clone, nil
}

func (r *MemoryUserRepository) SetAvatar(id, avatar string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}

	user.Avatar = avatar
	user.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryUserRepository) SetResetOTP(id, otp string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}

	user.ForgotPasswordOTP = &otp
	expiryCopy := expiry
	user.ForgotPasswordExpiry = &expiryCopy
	user.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryUserRepository) ConsumeResetOTP(id, otp, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrOTPMismatch
	}
	if user.ForgotPasswordOTP == nil || *user.ForgotPasswordOTP != otp {
		return ErrOTPMismatch
	}

	user.PasswordHash = passwordHash
	user.ForgotPasswordOTP = nil
	user.ForgotPasswordExpiry = nil
	user.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryUserRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}

	delete(r.users, id)
	return nil
}

func (r *MemoryUserRepository) DeleteByRole(role string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, u := range r.users {
		if u.Role == role {
			delete(r.users, id)
			n++
		}
	}
	return n, nil
}
