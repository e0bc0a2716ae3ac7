// Package session implements the session store: the single source of
// truth for who is logged in within a browser session, backed by a durable
// key-value repository for restore-on-reload.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/canteen-system/canteen-console/internal/core/domain"
	"github.com/canteen-system/canteen-console/internal/core/ports"
	"github.com/canteen-system/canteen-console/internal/metrics"
)

const defaultTTL = 24 * time.Hour

// Fallback messages shown when the backend's error carries no message
// body, e.g. on a pure network failure.
const (
	loginFailedMsg    = "Login failed"
	registerFailedMsg = "Registration failed"
)

// Store implements ports.SessionStore on top of the auth API and a
// durable session repository.
type Store struct {
	api  ports.AuthAPI
	repo ports.SessionRepository
	ttl  time.Duration
	log  zerolog.Logger
}

func NewStore(api ports.AuthAPI, repo ports.SessionRepository, ttl time.Duration, log zerolog.Logger) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{api: api, repo: repo, ttl: ttl, log: log}
}

var _ ports.SessionStore = (*Store)(nil)

// Restore rebuilds the session from the durable store. A missing record
// yields an empty session. A partial or undecodable record is treated the
// same way, and the leftover keys are cleared so the next restore starts
// clean.
func (s *Store) Restore(ctx context.Context, sid string) (domain.Session, error) {
	if sid == "" {
		return domain.Session{}, nil
	}

	token, user, err := s.repo.Load(ctx, sid)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			// Clearing on a partial record is best effort.
			if delErr := s.repo.Delete(ctx, sid); delErr != nil {
				s.log.Warn().Err(delErr).Msg("clear stale session record")
			}
			return domain.Session{}, nil
		}
		return domain.Session{}, err
	}
	return domain.Session{User: user, Token: token}, nil
}

// Login authenticates against the backend and, on success, persists the
// session and reports the role-appropriate landing path. Failures of any
// kind come back as an unsuccessful AuthResult, never as an error a
// screen would have to handle.
func (s *Store) Login(ctx context.Context, sid, email, password string) domain.AuthResult {
	payload, err := s.api.Login(ctx, email, password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		s.log.Info().Err(err).Str("email", email).Msg("login rejected")
		return domain.AuthResult{Success: false, Message: domain.ErrorMessage(err, loginFailedMsg)}
	}
	return s.establish(ctx, "login", sid, payload, loginFailedMsg)
}

// Register is symmetric to Login: same persistence and same role-derived
// navigation target on success.
func (s *Store) Register(ctx context.Context, sid string, input ports.RegisterInput) domain.AuthResult {
	payload, err := s.api.Register(ctx, input)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "failure").Inc()
		s.log.Info().Err(err).Str("email", input.Email).Msg("registration rejected")
		return domain.AuthResult{Success: false, Message: domain.ErrorMessage(err, registerFailedMsg)}
	}
	return s.establish(ctx, "register", sid, payload, registerFailedMsg)
}

// establish persists the authenticated payload under sid and derives the
// post-auth redirect. A session is only ever persisted with its token, so
// an authenticated session can never lack a credential.
func (s *Store) establish(ctx context.Context, op, sid string, payload *ports.AuthPayload, fallback string) domain.AuthResult {
	user := payload.User
	if err := s.repo.Save(ctx, sid, payload.Token, &user, s.ttl); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues(op, "failure").Inc()
		s.log.Error().Err(err).Msg("persist session")
		return domain.AuthResult{Success: false, Message: fallback}
	}

	metrics.AuthAttemptsTotal.WithLabelValues(op, "success").Inc()
	s.log.Info().Str("role", user.Role).Str("email", user.Email).Msg("session established")
	return domain.AuthResult{Success: true, RedirectTo: domain.HomePath(user.Role)}
}

// Logout clears the durable record. Calling it for an id that holds no
// session is a no-op, so repeated logouts are safe.
func (s *Store) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.repo.Delete(ctx, sid); err != nil {
		return err
	}
	s.log.Info().Msg("session cleared")
	return nil
}
