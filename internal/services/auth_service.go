package services

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"storefront/internal/apperrors"
	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// AuthService orchestrates signup and login: presence checks, email format,
// password strength, duplicate checks, hashing and token issuance.
type AuthService struct {
	userRepo repositories.UserRepository
	issuer   *auth.TokenIssuer
	policy   auth.PasswordPolicy
	validate *validator.Validate
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, issuer *auth.TokenIssuer, policy auth.PasswordPolicy) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
		policy:   policy,
		validate: validator.New(),
	}
}

// Signup registers a new user and returns the persisted user together with a
// freshly issued token.
func (s *AuthService) Signup(username, email, password, role string) (*models.User, string, error) {
	if username == "" || email == "" || password == "" {
		fieldErrs := apperrors.FieldErrors{}
		if username == "" {
			fieldErrs["username"] = "Username must be filled"
		}
		if email == "" {
			fieldErrs["email"] = "Email must be filled"
		}
		if password == "" {
			fieldErrs["password"] = "Password must be filled"
		}
		return nil, "", fieldErrs
	}

	email = strings.ToLower(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, "", apperrors.ErrInvalidEmail
	}
	if !s.policy.Allow(password) {
		return nil, "", apperrors.ErrWeakPassword
	}

	// Model tag validation enforces the username length bounds before any
	// store access.
	if err := s.validate.Struct(models.User{Username: username, Email: email, Password: password}); err != nil {
		return nil, "", err
	}

	if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
		return nil, "", apperrors.ErrUsernameTaken
	}
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, "", apperrors.ErrEmailTaken
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	if role != "admin" {
		role = "user"
	}
	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates a user by email and password and issues a token.
// The strength policy runs here too, exactly as it does on signup; accounts
// created under a weaker policy cannot log in until they meet the current one.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		fieldErrs := apperrors.FieldErrors{}
		if email == "" {
			fieldErrs["email"] = "Email must be filled"
		}
		if password == "" {
			fieldErrs["password"] = "Password must be filled"
		}
		return nil, "", fieldErrs
	}

	email = strings.ToLower(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, "", apperrors.ErrInvalidEmail
	}
	if !s.policy.Allow(password) {
		return nil, "", apperrors.ErrWeakPassword
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", apperrors.ErrIncorrectEmail
	}
	if !auth.CheckPassword(password, user.Password) {
		return nil, "", apperrors.ErrIncorrectPassword
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ResolveUser verifies a token and loads the user it identifies. Used by the
// bearer and session guards.
func (s *AuthService) ResolveUser(token string) (*models.User, error) {
	userID, err := s.issuer.Verify(token)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: no user for token identifier", apperrors.ErrInvalidToken)
	}
	return user, nil
}

// ListUsers retrieves all registered users.
func (s *AuthService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}
