// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/middleware"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// fakeVerifier accepts exactly one token string.
type fakeVerifier struct {
	validToken string
	subject    string
}

func (f *fakeVerifier) Verify(tokenStr string) (*sec.AuthClaims, error) {
	if tokenStr != f.validToken {
		return nil, sec.ErrInvalidToken
	}
	return &sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: f.subject},
	}, nil
}

// capture records the identity that reached the downstream handler.
func capture(identity **sec.AuthClaims) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*identity = ctxutil.GetAuthUser(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate_OptionalMode verifies that the gate never fails the request:
absent, malformed, and invalid tokens all proceed as anonymous, while a valid
token attaches the verified identity.
*/
func TestAuthenticate_OptionalMode(t *testing.T) {
	verifier := &fakeVerifier{validToken: "good-token", subject: "user-42"}

	tests := []struct {
		name        string
		header      string
		wantSubject string
	}{
		{"no_header", "", ""},
		{"malformed_header", "good-token", ""},
		{"wrong_scheme", "Basic good-token", ""},
		{"invalid_token", "Bearer bad-token", ""},
		{"valid_token", "Bearer good-token", "user-42"},
		{"case_insensitive_scheme", "bearer good-token", "user-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var identity *sec.AuthClaims
			handler := middleware.Authenticate(verifier)(capture(&identity))

			request := httptest.NewRequest(http.MethodGet, "/some-slug", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			// Optional mode never rejects
			assert.Equal(t, http.StatusOK, recorder.Code)

			if tt.wantSubject == "" {
				assert.Nil(t, identity)
			} else {
				require.NotNil(t, identity)
				assert.Equal(t, tt.wantSubject, identity.Subject)
			}
		})
	}
}

/*
TestRequireAuth_MandatoryMode verifies that protected routes reject anonymous
requests before any downstream logic runs, and that an invalid token on a
protected route is indistinguishable from a missing one.
*/
func TestRequireAuth_MandatoryMode(t *testing.T) {
	verifier := &fakeVerifier{validToken: "good-token", subject: "user-42"}

	newChain := func(identity **sec.AuthClaims) http.Handler {
		return middleware.Authenticate(verifier)(middleware.RequireAuth(capture(identity)))
	}

	t.Run("anonymous_rejected", func(t *testing.T) {
		var identity *sec.AuthClaims
		request := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
		recorder := httptest.NewRecorder()
		newChain(&identity).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Nil(t, identity)
	})

	t.Run("invalid_token_rejected_identically", func(t *testing.T) {
		var identity *sec.AuthClaims
		request := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
		request.Header.Set("Authorization", "Bearer forged")
		recorder := httptest.NewRecorder()
		newChain(&identity).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Nil(t, identity)
	})

	t.Run("valid_token_passes", func(t *testing.T) {
		var identity *sec.AuthClaims
		request := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
		request.Header.Set("Authorization", "Bearer good-token")
		recorder := httptest.NewRecorder()
		newChain(&identity).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, identity)
		assert.Equal(t, "user-42", identity.Subject)
	})
}
