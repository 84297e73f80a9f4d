package ports

import (
	"context"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// Create persists a new user. It returns domain.ErrUserExists when the
	// email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail expects an already normalized email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
}
