package service

import (
	"strings"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// UserService handles user administration
type UserService struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo domain.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput holds the input for creating a user
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// CreateUser creates a new user account
func (s *UserService) CreateUser(principal *domain.SessionPrincipal, input CreateUserInput) (*domain.User, error) {
	if principal.Role != domain.RolePresident {
		return nil, domain.ErrForbidden
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	if len(input.Password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}
	if !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password")
		return nil, domain.ErrStorage
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		IsActive:     true,
	}

	created, err := s.userRepo.Create(user)
	if err != nil {
		return nil, err
	}
	log.Info().Int32("user_id", created.ID).Str("role", string(created.Role)).Msg("User created")
	return created, nil
}

// GetUsers retrieves all users
func (s *UserService) GetUsers(principal *domain.SessionPrincipal) ([]*domain.User, error) {
	if principal.Role != domain.RolePresident {
		return nil, domain.ErrForbidden
	}
	return s.userRepo.GetAll()
}

// ToggleUserStatus flips a user's active flag. Self-deactivation is
// rejected for every role, PRESIDENT included.
func (s *UserService) ToggleUserStatus(principal *domain.SessionPrincipal, id int32) (*domain.User, error) {
	if principal.Role != domain.RolePresident {
		return nil, domain.ErrForbidden
	}
	if id == principal.UserID {
		return nil, domain.ErrSelfDeactivation
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	updated, err := s.userRepo.SetActive(id, !user.IsActive)
	if err != nil {
		return nil, err
	}
	log.Info().Int32("user_id", id).Bool("active", updated.IsActive).Msg("User status toggled")
	return updated, nil
}
