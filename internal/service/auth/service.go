package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/pkg/auth"
	apperrors "github.com/jwalitptl/mailtocall-api/pkg/errors"
	"github.com/jwalitptl/mailtocall-api/pkg/security"
)

const tokenType = "bearer"

type AuthServicer interface {
	IssueToken(ctx context.Context, username, password string) (*model.TokenResponse, error)
	Authenticate(ctx context.Context, token string) (string, error)
}

// Service guards the API with a single configured credential pair.
type Service struct {
	username     string
	passwordHash string
	hasher       security.PasswordHasher
	jwt          auth.JWTService
	claims       *cache.Cache
	cacheTTL     time.Duration
	now          func() time.Time
}

// NewService hashes the configured password once so that plaintext is never
// compared directly.
func NewService(username, password string, jwtSvc auth.JWTService, hasher security.PasswordHasher, cacheTTL time.Duration) (*Service, error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash configured password: %w", err)
	}

	cleanup := cacheTTL * 2
	if cleanup <= 0 {
		cleanup = time.Minute
	}

	return &Service{
		username:     username,
		passwordHash: hash,
		hasher:       hasher,
		jwt:          jwtSvc,
		claims:       cache.New(cacheTTL, cleanup),
		cacheTTL:     cacheTTL,
		now:          time.Now,
	}, nil
}

func (s *Service) IssueToken(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := s.hasher.Compare(s.passwordHash, password)
	if !userOK || passErr != nil {
		log.Warn().Str("username", username).Msg("rejected token request")
		return nil, apperrors.Unauthorized("Incorrect username or password")
	}

	token, _, err := s.jwt.GenerateAccessToken(s.username)
	if err != nil {
		return nil, apperrors.Internal("failed to issue token", err)
	}

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   tokenType,
	}, nil
}

// Authenticate returns the subject of a valid token. Validated claims are
// cached until the earlier of the cache TTL and the token's expiry.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", apperrors.Unauthorized("Not authenticated")
	}

	if v, ok := s.claims.Get(token); ok {
		if claims, ok := v.(*auth.Claims); ok && claims.ExpiresAt != nil && s.now().Before(claims.ExpiresAt.Time) {
			return claims.Subject, nil
		}
		s.claims.Delete(token)
	}

	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return "", apperrors.Unauthorized("Token has expired")
		}
		return "", apperrors.Unauthorized("Could not validate credentials")
	}
	if claims.Subject != s.username {
		return "", apperrors.Unauthorized("Could not validate credentials")
	}

	if ttl := s.ttlFor(claims); ttl > 0 {
		s.claims.Set(token, claims, ttl)
	}
	return claims.Subject, nil
}

func (s *Service) ttlFor(claims *auth.Claims) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if s.cacheTTL > 0 && s.cacheTTL < ttl {
		ttl = s.cacheTTL
	}
	return ttl
}
