package ports

import (
	"context"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

// SignupInput carries the fields of a registration request.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// PasswordHasher is a one-way, salted, adaptive hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer mints a signed, time-limited identity assertion.
type TokenIssuer interface {
	Issue(userID string, role domain.Role) (string, error)
}

// TokenVerifier checks a token and returns the identity it asserts.
type TokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}
