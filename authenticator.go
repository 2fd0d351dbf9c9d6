package adminauth

import (
	"context"
	"reflect"
)

// Auther orchestrates credential verification and token issuance.
type Auther struct {
	provider     IdentityProvider
	signingKey   []byte
	issuer       string
	logger       Logger
	tokenService TokenService
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		defLogger{},
	)

	return &Auther{
		provider:     provider,
		signingKey:   []byte(opts.GetSigningKey()),
		issuer:       opts.GetIssuer(),
		logger:       defLogger{},
		tokenService: tokenService,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the credentials and returns a signed session token whose
// claims carry the stored account's role.
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	var err error
	var identity Identity

	if identity, err = s.provider.VerifyIdentity(ctx, identifier, password); err != nil {
		s.logger.Error("Login verify identity error", "error", err)
		return "", err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokenService.Generate(identity)
	if err != nil {
		s.logger.Error("Login token generation error", "error", err)
		return "", err
	}

	return token, nil
}
