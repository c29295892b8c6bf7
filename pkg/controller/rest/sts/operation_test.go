/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package sts

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/cors"
	"github.com/stretchr/testify/require"

	"github.com/dataspace-go/identitytrust-go/pkg/identitytrust/sts"
)

type failingService struct {
	err error
}

func (s *failingService) CreateToken(map[string]string, string) (*sts.TokenRepresentation, error) {
	return nil, s.err
}

func newTestService(t *testing.T) *sts.EmbeddedSecureTokenService {
	t.Helper()

	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	generator, err := sts.NewJWSTokenGenerationService(privateKey, "did:example:issuer#key-1")
	require.NoError(t, err)

	return sts.New(generator)
}

func postToken(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/token", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	return rec
}

func TestOperation_CreateToken(t *testing.T) {
	t.Run("issues a token", func(t *testing.T) {
		op := New(newTestService(t))

		rec := postToken(t, op.Router(), `{
			"claims": {"iss": "did:example:issuer", "aud": "did:example:audience"},
			"bearerAccessScope": "read"
		}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp["access_token"])
		require.Equal(t, "Bearer", resp["token_type"])
		require.EqualValues(t, 600, resp["expires_in"])
	})

	t.Run("missing claim maps to bad request", func(t *testing.T) {
		op := New(newTestService(t))

		rec := postToken(t, op.Router(), `{"claims": {"sub": "did:example:issuer"}}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Missing issuer in the input claims")
	})

	t.Run("invalid payload maps to bad request", func(t *testing.T) {
		op := New(newTestService(t))

		rec := postToken(t, op.Router(), "not json")

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("signer failure maps to internal error", func(t *testing.T) {
		op := New(&failingService{err: errors.New("hsm unavailable")})

		rec := postToken(t, op.Router(), `{"claims": {"iss": "did:example:issuer"}}`)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.NotContains(t, rec.Body.String(), "hsm unavailable")
	})

	t.Run("method not allowed", func(t *testing.T) {
		op := New(newTestService(t))

		req := httptest.NewRequest(http.MethodGet, "/token", nil)
		rec := httptest.NewRecorder()

		op.Router().ServeHTTP(rec, req)

		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("cors preflight", func(t *testing.T) {
		op := New(newTestService(t), WithCORS(cors.Options{AllowedMethods: []string{http.MethodPost}}))

		req := httptest.NewRequest(http.MethodOptions, "/token", nil)
		req.Header.Set("Origin", "https://dataspace.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		rec := httptest.NewRecorder()
		op.Router().ServeHTTP(rec, req)

		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
