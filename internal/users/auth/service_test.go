// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/users/auth"
)

// # Test Doubles

// memoryUserRepository is an in-memory UserRepository with the same atomic
// uniqueness semantics as the Postgres implementation.
type memoryUserRepository struct {
	users   map[string]*auth.User // keyed by username (case-sensitive)
	failing bool                  // simulates a store outage
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*auth.User)}
}

func (repo *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	if repo.failing {
		return apperr.Internal(errors.New("connection refused"))
	}
	if _, exists := repo.users[user.Username]; exists {
		return apperr.Conflict("Username is already taken")
	}
	stored := *user
	repo.users[user.Username] = &stored
	return nil
}

func (repo *memoryUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if repo.failing {
		return nil, apperr.Internal(errors.New("connection refused"))
	}
	user, exists := repo.users[username]
	if !exists {
		return nil, apperr.NotFound("User")
	}
	found := *user
	return &found, nil
}

// stubTokenProvider issues predictable tokens recording the bound subject.
type stubTokenProvider struct {
	lastSubject string
	lastTTL     time.Duration
}

func (stub *stubTokenProvider) Issue(subject string, timeToLive time.Duration) (string, error) {
	stub.lastSubject = subject
	stub.lastTTL = timeToLive
	return fmt.Sprintf("token-for-%s", subject), nil
}

func newTestService() (*auth.Service, *memoryUserRepository, *stubTokenProvider) {
	repo := newMemoryUserRepository()
	tokens := &stubTokenProvider{}
	return auth.NewService(repo, tokens), repo, tokens
}

// # Registration

/*
TestRegister_HashesPassword verifies that the stored credential never contains
the raw password and that the hash verifies against it.
*/
func TestRegister_HashesPassword(t *testing.T) {
	service, repo, _ := newTestService()

	user, err := service.Register(context.Background(), "alice", "pw1-super-secret")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)

	stored := repo.users["alice"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "pw1-super-secret", stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("pw1-super-secret", stored.PasswordHash))
}

/*
TestRegister_UsernameConflict verifies that a second registration with the
same username fails with Conflict and leaves exactly one credential behind.
*/
func TestRegister_UsernameConflict(t *testing.T) {
	service, repo, _ := newTestService()

	_, err := service.Register(context.Background(), "alice", "password-one")
	require.NoError(t, err)

	_, err = service.Register(context.Background(), "alice", "password-two")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	// Exactly one credential for the username, and it is the first one.
	assert.Len(t, repo.users, 1)
	assert.True(t, sec.CheckPasswordHash("password-one", repo.users["alice"].PasswordHash))
}

/*
TestRegister_CaseSensitiveUsernames verifies that usernames differing only in
case are distinct accounts.
*/
func TestRegister_CaseSensitiveUsernames(t *testing.T) {
	service, repo, _ := newTestService()

	_, err := service.Register(context.Background(), "Alice", "password-one")
	require.NoError(t, err)
	_, err = service.Register(context.Background(), "alice", "password-two")
	require.NoError(t, err)

	assert.Len(t, repo.users, 2)
}

// # Login

/*
TestLogin_EnumerationResistance verifies that an unknown username and a wrong
password produce the identical Unauthorized result.
*/
func TestLogin_EnumerationResistance(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Register(context.Background(), "alice", "correct-password")
	require.NoError(t, err)

	_, ghostErr := service.Login(context.Background(), "ghost", "any-password")
	_, wrongErr := service.Login(context.Background(), "alice", "wrong-password")

	ghostAE := apperr.As(ghostErr)
	wrongAE := apperr.As(wrongErr)
	require.NotNil(t, ghostAE)
	require.NotNil(t, wrongAE)

	// Identical rejection: same status, same code, same message.
	assert.Equal(t, http.StatusUnauthorized, ghostAE.HTTPStatus)
	assert.Equal(t, ghostAE.HTTPStatus, wrongAE.HTTPStatus)
	assert.Equal(t, ghostAE.Code, wrongAE.Code)
	assert.Equal(t, ghostAE.Message, wrongAE.Message)
}

/*
TestLogin_IssuesTokenBoundToIdentity verifies the token subject and TTL.
*/
func TestLogin_IssuesTokenBoundToIdentity(t *testing.T) {
	service, _, tokens := newTestService()

	user, err := service.Register(context.Background(), "alice", "correct-password")
	require.NoError(t, err)

	session, err := service.Login(context.Background(), "alice", "correct-password")
	require.NoError(t, err)

	assert.Equal(t, user.ID, tokens.lastSubject)
	assert.Equal(t, 24*time.Hour, tokens.lastTTL)
	assert.Equal(t, "token-for-"+user.ID, session.AccessToken)
	assert.Equal(t, user.ID, session.User.ID)
}

/*
TestLogin_StoreFaultIsNotUnauthorized verifies that a store outage surfaces
as a generic fault, never disguised as bad credentials.
*/
func TestLogin_StoreFaultIsNotUnauthorized(t *testing.T) {
	service, repo, _ := newTestService()
	repo.failing = true

	_, err := service.Login(context.Background(), "alice", "whatever")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusInternalServerError, ae.HTTPStatus)
}
