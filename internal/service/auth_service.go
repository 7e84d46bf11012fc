package service

import (
	"errors"
	"strings"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles credential verification
type AuthService struct {
	userRepo domain.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Authenticate verifies a credential pair and returns the matching user.
// Missing user and wrong password collapse into the same error so the
// response does not reveal which emails exist.
func (s *AuthService) Authenticate(email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		log.Error().Err(err).Msg("Failed to look up user for login")
		return nil, domain.ErrStorage
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrAccountDeactivated
	}

	log.Info().Int32("user_id", user.ID).Str("role", string(user.Role)).Msg("User authenticated")
	return user, nil
}

// Principal builds the session principal for a user
func (s *AuthService) Principal(user *domain.User) *domain.SessionPrincipal {
	return &domain.SessionPrincipal{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Name:   user.Name,
	}
}

// HashPassword hashes a plaintext password for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
