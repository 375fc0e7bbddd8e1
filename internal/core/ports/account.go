package ports

import (
	"context"

	"github.com/learnc/course-portal/internal/core/domain"
)

// AccountRepository defines the persistence interface for user accounts.
type AccountRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// AccountService registers accounts and verifies credentials.
type AccountService interface {
	Register(ctx context.Context, email, password, confirm string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}
