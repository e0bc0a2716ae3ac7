package ports

import (
	"context"
	"time"

	"github.com/canteen-system/canteen-console/internal/core/domain"
)

// SessionRepository persists the durable half of a session: the bearer
// token and the serialized user record, keyed by session id. Load returns
// domain.ErrNoSession when either half is missing or undecodable.
type SessionRepository interface {
	Save(ctx context.Context, sid, token string, user *domain.User, ttl time.Duration) error
	Load(ctx context.Context, sid string) (token string, user *domain.User, err error)
	Delete(ctx context.Context, sid string) error
}

// RegisterInput carries a new-account request. EmployeeID is only sent for
// the employee role.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Role       string
	EmployeeID string
}

// AuthPayload is the backend's successful auth response: a bearer token
// plus the user record it authenticates.
type AuthPayload struct {
	Token string
	User  domain.User
}

// AuthAPI is the slice of the remote canteen API the session store uses.
// Both calls are anonymous; the token comes back in the payload.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*AuthPayload, error)
	Register(ctx context.Context, input RegisterInput) (*AuthPayload, error)
}

// SessionStore is the single source of truth for who is logged in within a
// browser session.
type SessionStore interface {
	// Restore rebuilds the session from the durable store. A missing or
	// partial record yields an empty session, not an error.
	Restore(ctx context.Context, sid string) (domain.Session, error)
	Login(ctx context.Context, sid, email, password string) domain.AuthResult
	Register(ctx context.Context, sid string, input RegisterInput) domain.AuthResult
	// Logout clears the durable record. Safe to call repeatedly.
	Logout(ctx context.Context, sid string) error
}
