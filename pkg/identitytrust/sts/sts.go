/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package sts implements an embedded secure token service minting self-issued
// identity tokens, optionally carrying a nested scoped access token for the
// token's audience to present back.
package sts

import (
	"time"

	"github.com/google/uuid"

	"github.com/dataspace-go/identitytrust-go/pkg/identitytrust"
)

// DefaultValidity is the token lifetime applied when none is configured.
const DefaultValidity = 600 * time.Second

// Clock supplies the issuance time. Injected so tests control iat/exp.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// TokenRepresentation is the result of token issuance.
type TokenRepresentation struct {
	Token     string
	ExpiresIn int64
}

// EmbeddedSecureTokenService mints self-issued tokens signed through a
// TokenGenerationService.
type EmbeddedSecureTokenService struct {
	generator TokenGenerationService
	clock     Clock
	validity  time.Duration
}

// Opt configures the token service.
type Opt func(s *EmbeddedSecureTokenService)

// WithClock overrides the issuance clock.
func WithClock(clock Clock) Opt {
	return func(s *EmbeddedSecureTokenService) {
		s.clock = clock
	}
}

// WithValidity overrides the token lifetime.
func WithValidity(validity time.Duration) Opt {
	return func(s *EmbeddedSecureTokenService) {
		s.validity = validity
	}
}

// New creates an embedded secure token service.
func New(generator TokenGenerationService, opts ...Opt) *EmbeddedSecureTokenService {
	s := &EmbeddedSecureTokenService{
		generator: generator,
		clock:     systemClock{},
		validity:  DefaultValidity,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateToken mints a self-issued token from the given claims. The issuer
// claim is mandatory. When bearerAccessScope is non-empty a nested access
// token scoped to it is minted and embedded under the access_token claim; the
// nested token names the issuer as its audience and the original audience (or
// the bearer access alias, when provided) as its subject.
func (s *EmbeddedSecureTokenService) CreateToken(
	claims map[string]string, bearerAccessScope string) (*TokenRepresentation, error) {
	issuer, ok := claims[identitytrust.IssuerClaim]
	if !ok || issuer == "" {
		return nil, identitytrust.NewClaimError("issuer")
	}

	now := s.clock.Now()
	expiry := now.Add(s.validity)

	selfIssued := make(map[string]interface{}, len(claims)+4)
	for k, v := range claims {
		selfIssued[k] = v
	}

	if bearerAccessScope != "" {
		accessToken, err := s.createAccessToken(claims, issuer, bearerAccessScope, now, expiry)
		if err != nil {
			return nil, err
		}

		selfIssued[identitytrust.AccessTokenClaim] = accessToken
	}

	s.applyTokenClaims(selfIssued, now, expiry)

	token, err := s.generator.Generate(selfIssued)
	if err != nil {
		return nil, err
	}

	return &TokenRepresentation{
		Token:     token,
		ExpiresIn: int64(s.validity / time.Second),
	}, nil
}

func (s *EmbeddedSecureTokenService) createAccessToken(
	claims map[string]string, issuer, scope string, now, expiry time.Time) (string, error) {
	subject, ok := claims[identitytrust.BearerAccessAliasClaim]
	if !ok {
		subject, ok = claims[identitytrust.AudienceClaim]
	}

	if !ok {
		return "", identitytrust.NewClaimError("audience")
	}

	accessClaims := map[string]interface{}{
		identitytrust.IssuerClaim:   issuer,
		identitytrust.SubjectClaim:  subject,
		identitytrust.AudienceClaim: []string{issuer},
		identitytrust.ScopeClaim:    scope,
	}

	s.applyTokenClaims(accessClaims, now, expiry)

	return s.generator.Generate(accessClaims)
}

// applyTokenClaims stamps the claims every minted token carries.
func (s *EmbeddedSecureTokenService) applyTokenClaims(claims map[string]interface{}, now, expiry time.Time) {
	claims[identitytrust.TokenIDClaim] = uuid.NewString()
	claims[identitytrust.IssuedAtClaim] = now.Unix()
	claims[identitytrust.ExpirationClaim] = expiry.Unix()
}
