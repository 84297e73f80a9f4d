package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
	"github.com/jobportal/jobboard-api/pkg/metrics"
)

// AuthService implements signup and login.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: log}
}

func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	if !domain.FieldsFilled(in.Name, in.Email, in.Password, in.Role) {
		return nil, domain.NewValidationError("All fields are required")
	}
	if !domain.IsValidEmail(in.Email) {
		return nil, domain.NewValidationError("Invalid email format")
	}
	if !domain.IsValidPassword(in.Password) {
		if len(in.Password) > domain.MaxPasswordBytes {
			return nil, domain.NewValidationError(fmt.Sprintf("Password must be at most %d bytes", domain.MaxPasswordBytes))
		}
		return nil, domain.NewValidationError(fmt.Sprintf("Password must be at least %d characters", domain.MinPasswordLength))
	}
	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return nil, domain.NewValidationError("Role must be one of: student employer")
	}

	email := domain.NormalizeEmail(in.Email)

	// Fast path; the unique index on email is what actually enforces it.
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("signup: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("signup: %w", err)
	}

	metrics.SignupsTotal.WithLabelValues(string(role)).Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", string(role)).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if !domain.FieldsFilled(email, password) {
		return "", nil, domain.NewValidationError("Email and password are required")
	}
	if !domain.IsValidEmail(email) {
		return "", nil, domain.NewValidationError("Invalid email format")
	}

	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("unknown_user").Inc()
			return "", nil, err
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		return "", nil, domain.ErrInvalidPassword
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Debug().Str("user_id", user.ID).Msg("login succeeded")
	return token, user, nil
}
