package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/territoria/territoria/internal/model"
	"github.com/territoria/territoria/internal/repository"
	"github.com/territoria/territoria/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepository repository.UserRepository
	mailer         Mailer
	jwtSecret      string
	jwtExpiry      time.Duration
	otpExpiry      time.Duration
}

func NewAuthService(
	userRepository repository.UserRepository,
	mailer Mailer,
	jwtSecret string,
	jwtExpiry time.Duration,
	otpExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		mailer:         mailer,
		jwtSecret:      jwtSecret,
		jwtExpiry:      jwtExpiry,
		otpExpiry:      otpExpiry,
	}
}

// RegisterInput carries the registration request fields. Congregation and
// referral source are optional profile fields.
type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	Congregation   string
	ReferralSource string
}

// Register validates the input, hashes the password and persists a new
// unverified USER record. The stored hash never leaves this layer.
func (s *AuthService) Register(in RegisterInput) (*model.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, invalidInput("please provide name, email, and password")
	}

	err := validation.ValidatePassword(in.Password)
	if err != nil {
		return nil, invalidInput(err.Error())
	}

	err = validation.ValidateEmail(in.Email)
	if err != nil {
		return nil, invalidInput(err.Error())
	}

	err = validation.ValidateName(in.Name)
	if err != nil {
		return nil, invalidInput(err.Error())
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Email:          in.Email,
		PasswordHash:   hash,
		Congregation:   in.Congregation,
		ReferralSource: in.ReferralSource,
		Role:           model.RoleUser,
		VerifyEmail:    false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login authenticates by email and password. Unverified users are rejected
// unless they hold the ADMIN role.
func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrNotRegistered
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, "", ErrIncorrectPassword
	}

	if !user.VerifyEmail && !user.IsAdmin() {
		return nil, "", ErrNotApproved
	}

	token, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email, "role", user.Role)
	return user, token, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GenerateJWT issues a short-lived HS256 session token keyed to the user id
// and role.
func (s *AuthService) GenerateJWT(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     now.Add(s.jwtExpiry).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (s *AuthService) VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
