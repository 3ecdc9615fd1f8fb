// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces ([TokenProvider], middleware.TokenVerifier).
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single rejection returned by [TokenService.Verify].
//
// Malformed tokens, bad signatures, and expired tokens are deliberately
// indistinguishable to callers: a finer-grained error would hand an attacker
// an oracle about which check failed.
var ErrInvalidToken = errors.New("sec: invalid token")

// AuthClaims represents the payload embedded inside a bearer token.
//
// The subject is the account's Identity in canonical UUID string form.
// Nothing else is embedded: the token asserts identity, not profile state.
type AuthClaims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies HMAC-signed (HS256) bearer tokens.
//
// The signing secret is process-wide shared configuration, injected once at
// construction and never mutated. Tokens are stateless: there is no
// server-side session or revocation list, so validity is exactly
// "signature valid AND expiry not yet passed".
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService with the shared signing secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: signing secret must not be empty")
	}
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// Issue creates a signed token binding the subject identity for timeToLive.
func (service *TokenService) Issue(subject string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and expiry of a token string and returns its claims.
//
// Every failure mode collapses into [ErrInvalidToken].
func (service *TokenService) Verify(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
