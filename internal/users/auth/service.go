// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the credential verification system of Inkwell.

It handles user registration with secure password hashing and login with
stateless bearer-token issuance.

Architecture:

  - Service: Orchestrates business logic (Register, Login).
  - Repository: Abstracted interface for Postgres (Users).
  - Security: Leverages bcrypt hashing and HMAC-signed JWTs via platform/sec.

Tokens are stateless by design: there is no session table and no revocation
list. A compromised token remains valid until its natural expiry.
*/
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing security tokens.
type TokenProvider interface {
	// Issue creates a signed bearer token bound to the subject identity.
	//
	// # Parameters
	//   - subject: The Identity of the account in canonical string form.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed token string, or an error if signing fails.
	Issue(subject string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
	}
}

// # Registration Flow

/*
Register hashes the password and persists a brand new user account.

Description: The raw password exists only for the duration of hashing; it is
never stored or logged. Uniqueness is enforced atomically by the store's
unique index; there is no read-before-write, so two concurrent registrations
of the same username cannot both succeed.

Parameters:
  - context: context.Context
  - username: string (unique, case-sensitive)
  - password: string

Returns:
  - *User: Created entity
  - error: apperr.Conflict if the username is taken, or storage errors
*/
func (service *Service) Register(context context.Context, username, password string) (*User, error) {

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		Username:     username,
		PasswordHash: hashedPassword,
	}

	// Persist atomically; the store maps a username unique violation to Conflict.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

// LoginSession represents a successfully issued bearer token.
type LoginSession struct {
	AccessToken string
	ExpiresIn   time.Duration
	User        *User
}

/*
Login validates user credentials and issues a bearer token.

Description: Looks up the account and performs a constant-time password
comparison. An unknown username and a wrong password produce the identical
Unauthorized result, so callers cannot enumerate registered usernames.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *LoginSession: Transport-ready token bound to the user's Identity
  - error: apperr.Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, username, password string) (*LoginSession, error) {
	user, err := service.userRepository.FindByUsername(context, username)

	// Absent user becomes the same generic rejection as a wrong password to
	// prevent enumeration. Genuine store faults pass through untouched.
	if err != nil {
		if ae := apperr.As(err); ae != nil && ae.HTTPStatus == http.StatusNotFound {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Issue the stateless bearer token bound to this identity
	accessToken, err := service.tokenProvider.Issue(user.ID, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	return &LoginSession{
		AccessToken: accessToken,
		ExpiresIn:   constants.AccessTokenTTL,
		User:        user,
	}, nil
}
