package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/learnc/course-portal/internal/core/domain"
	"github.com/learnc/course-portal/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// SessionService is the session gate: it turns a successful credential check
// into a client-held token and resolves tokens back to users.
//
// A token is an HS256 JWT whose "sid" claim references a server-side session
// entry. The signature makes the cookie tamper-evident; the store entry makes
// logout an actual revocation rather than a client-side convention.
type SessionService struct {
	accounts ports.AccountService
	repo     ports.AccountRepository
	store    ports.SessionStore
	secret   string
	ttl      time.Duration
	log      zerolog.Logger
}

func NewSessionService(
	accounts ports.AccountService,
	repo ports.AccountRepository,
	store ports.SessionStore,
	secret string,
	ttl time.Duration,
	log zerolog.Logger,
) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{
		accounts: accounts,
		repo:     repo,
		store:    store,
		secret:   secret,
		ttl:      ttl,
		log:      log,
	}
}

// Login authenticates the credentials and, on success, issues a new session
// token bound to the user's id.
func (s *SessionService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.accounts.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	sid, err := newSessionID()
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	if err := s.store.Save(ctx, sid, user.ID, s.ttl); err != nil {
		return "", nil, fmt.Errorf("login: save session: %w", err)
	}

	token, err := s.signToken(sid)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("session established")
	return token, user, nil
}

// Resolve maps a client-held token back to its user. Every failure mode —
// bad signature, expired token, revoked session, vanished user — collapses
// into ErrSessionInvalid.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	sid, err := s.verifyToken(token)
	if err != nil {
		return nil, domain.ErrSessionInvalid
	}

	userID, err := s.store.Get(ctx, sid)
	if err != nil || userID == "" {
		return nil, domain.ErrSessionInvalid
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrSessionInvalid
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	return user, nil
}

// Logout revokes the session referenced by the token. Idempotent: an absent,
// expired, or garbage token is a no-op.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	sid, err := s.verifyToken(token)
	if err != nil {
		return nil
	}
	if err := s.store.Delete(ctx, sid); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *SessionService) signToken(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

func (s *SessionService) verifyToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrSessionInvalid
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.ErrSessionInvalid
	}
	return sid, nil
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
