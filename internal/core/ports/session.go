package ports

import (
	"context"
	"time"

	"github.com/learnc/course-portal/internal/core/domain"
)

// SessionStore persists the mapping from opaque session id to user id.
// Entries expire after their TTL; Delete is a no-op for absent ids.
type SessionStore interface {
	Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionGate establishes and checks the authenticated-identity association
// for a request, independent of any web framework. Tokens are opaque strings
// suitable for a cookie value.
type SessionGate interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Resolve(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
}
