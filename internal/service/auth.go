package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/planora/planner/internal/domain"
	"github.com/planora/planner/internal/repo"
)

// TokenIssuer signs a bearer token for a freshly authenticated user.
// Satisfied by *auth.Manager.
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (string, error)
}

// AuthService implements signup, login, and current-user lookup.
// Passwords are bcrypt-hashed on signup and never leave this layer: every
// returned user has its hash blanked.
type AuthService struct {
	users  repo.UserRepo
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService backed by the provided user repo
// and token issuer.
func NewAuthService(users repo.UserRepo, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Signup registers a new account and returns the created user with a signed
// bearer token. Returns domain.ErrEmailTaken when the email is already
// registered, domain.ErrValidation for bad input.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return domain.User{}, "", fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, "", fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}
	if len(password) < 8 {
		return domain.User{}, "", fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Signup: hash password: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	})
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Signup: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Signup: %w", err)
	}

	return sanitizeUser(user), token, nil
}

// Login authenticates an email/password pair and returns the user with a
// signed bearer token. An unknown email and a wrong password both return
// domain.ErrInvalidCredentials, so the two are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Unknown email collapses to the same error as a wrong password.
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}

	return sanitizeUser(user), token, nil
}

// CurrentUser resolves an authenticated email to its user record.
func (s *AuthService) CurrentUser(ctx context.Context, email string) (domain.User, error) {
	user, err := resolveCaller(ctx, s.users, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.CurrentUser: %w", err)
	}
	return sanitizeUser(user), nil
}

// sanitizeUser blanks the password hash before a user leaves the service layer.
func sanitizeUser(u domain.User) domain.User {
	u.PasswordHash = ""
	return u
}
