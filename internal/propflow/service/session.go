package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/propflow/pkg/jwtx"
	"github.com/aussiebroadwan/propflow/pkg/slogx"
)

// TokenPair is returned from a successful login.
type TokenPair struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64 // seconds
}

type SessionService struct {
	Identities IdentityProvider
	Keys       *jwtx.KeyManager

	Issuer   string
	Audience []string
	TTL      time.Duration

	Now func() time.Time
}

// Login checks the password and issues a signed access token.
func (s *SessionService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	ctx, span := tracer.Start(ctx, "SessionService.Login")
	defer span.End()

	log := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return TokenPair{}, ErrInvalidCredentials
	}

	ident, err := s.Identities.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Info("login failed", slogx.Email(email))
		}
		return TokenPair{}, err
	}

	signer := s.Keys.Signer()
	if signer == nil {
		return TokenPair{}, errors.New("no signing key available")
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	claims := jwtx.NewSessionClaims(ident.ID, ident.Email, s.Issuer, s.Audience, ttl, clock(s.Now))

	token, err := signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign session token", slog.String("kid", signer.KID()), slogx.Err(err))
		return TokenPair{}, err
	}

	log.Info("session issued", slog.String("identity_id", ident.ID))
	return TokenPair{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl / time.Second),
	}, nil
}
