// Package service implements the application's business rules on top of
// the repository layer.
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultDeviceName labels tokens issued without an explicit device name.
const DefaultDeviceName = "web"

// AuthService registers users, authenticates credentials and manages the
// token registry. Login revokes prior tokens sharing the same device
// label, so each device holds at most one active session.
type AuthService struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
}

// NewAuthService creates a new auth service.
func NewAuthService(users repository.UserRepository, tokens repository.TokenRepository) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// RegisterInput carries the registration request fields.
type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
	DeviceName           string
}

// LoginInput carries the login request fields.
type LoginInput struct {
	Email      string
	Password   string
	DeviceName string
}

// AuthResult is returned by every operation that issues a token. The
// plain secret appears here once and is not recoverable afterwards.
type AuthResult struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
}

// Register validates the input, creates the user with a bcrypt password
// hash and issues the first token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	errs := validation.Errors{}
	errs.Required("name", in.Name)
	errs.MaxLen("name", in.Name, 255)
	errs.Required("email", in.Email)
	errs.Email("email", in.Email)
	errs.MaxLen("email", in.Email, 255)
	errs.Required("password", in.Password)
	errs.Password("password", in.Password)
	if in.PasswordConfirmation != "" && in.PasswordConfirmation != in.Password {
		errs.Add("password", "The password confirmation does not match.")
	}
	if !errs.Any() && in.Email != "" {
		taken, err := s.users.EmailTaken(ctx, in.Email)
		if err != nil {
			return nil, models.NewInternalError("Failed to register user", err)
		}
		if taken {
			errs.Add("email", "The email has already been taken.")
		}
	}
	if errs.Any() {
		return nil, models.NewValidationError(errs)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError("Failed to register user", err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, models.NewInternalError("Failed to register user", err)
	}

	secret, err := s.issueToken(ctx, user.ID, deviceName(in.DeviceName))
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, AccessToken: secret, TokenType: "Bearer"}, nil
}

// Login authenticates the credentials and issues a fresh token. Unknown
// email and wrong password are deliberately indistinguishable to the
// caller. Prior tokens with the same device label are revoked first.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	errs := validation.Errors{}
	errs.Required("email", in.Email)
	errs.Email("email", in.Email)
	errs.Required("password", in.Password)
	if errs.Any() {
		return nil, models.NewValidationError(errs)
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, models.NewInternalError("Failed to log in", err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return nil, models.NewUnauthenticatedError("Invalid credentials")
	}

	device := deviceName(in.DeviceName)
	if err := s.tokens.DeleteByUserAndName(ctx, user.ID, device); err != nil {
		return nil, models.NewInternalError("Failed to log in", err)
	}
	observability.TokensRevoked.Inc()

	secret, err := s.issueToken(ctx, user.ID, device)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, AccessToken: secret, TokenType: "Bearer"}, nil
}

// Logout deletes exactly the presented token.
func (s *AuthService) Logout(ctx context.Context, token *models.Token) error {
	if err := s.tokens.DeleteByID(ctx, token.ID); err != nil {
		return models.NewInternalError("Failed to log out", err)
	}
	observability.TokensRevoked.Inc()
	return nil
}

// Refresh atomically replaces the presented token with a fresh one under
// the same device label.
func (s *AuthService) Refresh(ctx context.Context, token *models.Token) (*AuthResult, error) {
	secret, hash, err := newTokenSecret()
	if err != nil {
		return nil, models.NewInternalError("Failed to refresh token", err)
	}

	fresh := &models.Token{
		UserID:    token.UserID,
		Name:      token.Name,
		TokenHash: hash,
	}
	if err := s.tokens.Rotate(ctx, token, fresh); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewUnauthenticatedError("Unauthenticated")
		}
		return nil, models.NewInternalError("Failed to refresh token", err)
	}
	observability.TokensIssued.Inc()
	observability.TokensRevoked.Inc()

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return nil, models.NewInternalError("Failed to refresh token", err)
	}

	return &AuthResult{User: user, AccessToken: secret, TokenType: "Bearer"}, nil
}

// Me returns the authenticated user's profile.
func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User")
		}
		return nil, models.NewInternalError("Failed to fetch user", err)
	}
	return user, nil
}

func (s *AuthService) issueToken(ctx context.Context, userID uint, device string) (string, error) {
	secret, hash, err := newTokenSecret()
	if err != nil {
		return "", models.NewInternalError("Failed to issue token", err)
	}

	token := &models.Token{
		UserID:    userID,
		Name:      device,
		TokenHash: hash,
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return "", models.NewInternalError("Failed to issue token", err)
	}
	observability.TokensIssued.Inc()
	return secret, nil
}

func deviceName(name string) string {
	if name == "" {
		return DefaultDeviceName
	}
	return name
}

// newTokenSecret mints an opaque secret and the SHA-256 hex digest that
// the registry stores in its place.
func newTokenSecret() (secret, hash string, err error) {
	buf := make([]byte, 20)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	secret = strings.ReplaceAll(uuid.NewString(), "-", "") + hex.EncodeToString(buf)
	return secret, HashSecret(secret), nil
}

// HashSecret returns the hex SHA-256 digest under which a token secret
// is stored in the registry.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
