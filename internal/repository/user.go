package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/territoria/territoria/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrOTPMismatch    = errors.New("stored otp does not match")
)

type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	ByEmail(email string) (*model.User, error)
	All() ([]model.PublicUser, error)
	SetVerified(id string) (*model.User, error)
	SetAvatar(id, avatar string) error
	SetResetOTP(id, otp string, expiry time.Time) error
	ConsumeResetOTP(id, otp, passwordHash string) error
	Delete(id string) error
	DeleteByRole(role string) (int64, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, congregation, referral_source, avatar, verify_email, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Congregation,
		user.ReferralSource,
		user.Avatar,
		user.VerifyEmail,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		// Unique constraint violation message differs between SQLite and PostgreSQL
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByEmail(email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.Get(user, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

// All returns every user projected to the admin-safe field set, newest first.
func (r *userRepository) All() ([]model.PublicUser, error) {
	users := []model.PublicUser{}
	query := `
		SELECT id, name, email, congregation, referral_source, verify_email, created_at
		FROM users
		ORDER BY created_at DESC
	`

	err := r.db.Select(&users, query)
	return users, err
}

func (r *userRepository) SetVerified(id string) (*model.User, error) {
	query := `UPDATE users SET verify_email = TRUE, updated_at = $1 WHERE id = $2`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return nil, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrUserNotFound
	}

	return r.ByID(id)
}

func (r *userRepository) SetAvatar(id, avatar string) error {
	query := `UPDATE users SET avatar = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, avatar, time.Now(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// SetResetOTP stores a password reset code and its absolute expiry. Both
// fields are written together; issuing a new code replaces any pending one.
func (r *userRepository) SetResetOTP(id, otp string, expiry time.Time) error {
	query := `
		UPDATE users
		SET forgot_password_otp = $1, forgot_password_expiry = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.db.Exec(query, otp, expiry, time.Now(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ConsumeResetOTP atomically overwrites the password hash and clears both OTP
// fields, conditioned on the stored code still matching. Only one of two
// concurrent consume attempts can succeed; the loser observes zero affected
// rows and gets ErrOTPMismatch.
func (r *userRepository) ConsumeResetOTP(id, otp, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $1, forgot_password_otp = NULL, forgot_password_expiry = NULL, updated_at = $2
		WHERE id = $3 AND forgot_password_otp = $4
	`

	result, err := r.db.Exec(query, passwordHash, time.Now(), id, otp)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrOTPMismatch
	}

	return nil
}

// DeleteByRole removes every user carrying the given role. Used by the admin
// seed command to replace existing ADMIN accounts.
func (r *userRepository) DeleteByRole(role string) (int64, error) {
	query := `DELETE FROM users WHERE role = $1`

	result, err := r.db.Exec(query, role)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *userRepository) Delete(id string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}
