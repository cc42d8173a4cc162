// Package service implements the application's business logic on top of the
// repository layer: credentials, ownership checks, update allow-lists, and
// the cascade policy run on deletes.
package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"photogram/internal/models"
	"photogram/internal/repository"
	"photogram/internal/storage"
	"photogram/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the lifetime of issued bearer tokens.
const TokenTTL = 24 * time.Hour

// AuthService issues and verifies credentials: registration, login,
// password changes, and bearer-token generation.
type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret string
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	// BaseURL is the request's public base URL, used to derive the
	// default avatar URI.
	BaseURL string
}

type ChangePasswordInput struct {
	UserID             uint
	CurrentPassword    string
	NewPassword        string
	ConfirmNewPassword string
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// Register creates a new account and returns the user with a fresh token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if err := validation.ValidateUsername(username); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if in.Password != in.ConfirmPassword {
		return nil, "", models.NewValidationError("Passwords don't match.")
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", models.NewConflictError("User already exists.")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", models.NewConflictError("User already exists.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Avatar:   storage.DefaultAvatarURL(in.BaseURL),
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	return user, token, nil
}

// Login verifies the email/password pair and returns the user with a token.
// Unknown email and hash mismatch are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", models.NewInvalidCredentialsError("Invalid credentials.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", models.NewInvalidCredentialsError("Invalid credentials.")
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	return user, token, nil
}

// ChangePassword re-hashes the user's password after verifying the current
// one and the confirmation.
func (s *AuthService) ChangePassword(ctx context.Context, in ChangePasswordInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
		return nil, models.NewInvalidCredentialsError("Password is not correct")
	}
	if in.NewPassword != in.ConfirmNewPassword {
		return nil, models.NewValidationError("Passwords must match")
	}
	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user.Password = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GenerateToken creates a signed bearer token for the given user ID.
func (s *AuthService) GenerateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iat": now.Unix(),
		"exp": now.Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
