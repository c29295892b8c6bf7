/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package web

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	vdrapi "github.com/dataspace-go/identitytrust-go/pkg/api/vdr"
)

func docJSON(id string) string {
	return fmt.Sprintf(`{
		"@context": ["https://www.w3.org/ns/did/v1"],
		"id": %q,
		"verificationMethod": [{
			"id": %q,
			"type": "Ed25519VerificationKey2018",
			"controller": %q,
			"publicKeyBase58": "GfHq2tTVk9z4eXgyL5pXiwbP7U3FrjQ4kYbvVX6qWmfR"
		}]
	}`, id, id+"#key-1", id)
}

func webDID(t *testing.T, serverURL, path string) string {
	t.Helper()

	host := strings.TrimPrefix(serverURL, "http://")
	id := "did:web:" + strings.ReplaceAll(host, ":", "%3A")

	if path != "" {
		id += ":" + strings.ReplaceAll(path, "/", ":")
	}

	return id
}

func TestResolver_Resolve(t *testing.T) {
	t.Run("bare domain uses well-known path", func(t *testing.T) {
		var requestedPath string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestedPath = r.URL.Path

			_, _ = w.Write([]byte(docJSON(webDID(t, "http://"+r.Host, ""))))
		}))
		defer server.Close()

		r := New(WithInsecureHTTP(), WithHTTPClient(server.Client()))

		doc, err := r.Resolve(webDID(t, server.URL, ""))
		require.NoError(t, err)
		require.Equal(t, "/.well-known/did.json", requestedPath)
		require.Len(t, doc.VerificationMethod, 1)
	})

	t.Run("path segments map below the domain", func(t *testing.T) {
		var requestedPath string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestedPath = r.URL.Path

			_, _ = w.Write([]byte(docJSON(webDID(t, "http://"+r.Host, "users/alice"))))
		}))
		defer server.Close()

		r := New(WithInsecureHTTP(), WithHTTPClient(server.Client()))

		_, err := r.Resolve(webDID(t, server.URL, "users/alice"))
		require.NoError(t, err)
		require.Equal(t, "/users/alice/did.json", requestedPath)
	})

	t.Run("404 maps to not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		r := New(WithInsecureHTTP(), WithHTTPClient(server.Client()))

		_, err := r.Resolve(webDID(t, server.URL, ""))
		require.ErrorIs(t, err, vdrapi.ErrNotFound)
	})

	t.Run("retries server errors", func(t *testing.T) {
		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++

			if attempts < 3 {
				w.WriteHeader(http.StatusInternalServerError)

				return
			}

			_, _ = w.Write([]byte(docJSON(webDID(t, "http://"+r.Host, ""))))
		}))
		defer server.Close()

		r := New(WithInsecureHTTP(), WithHTTPClient(server.Client()))

		_, err := r.Resolve(webDID(t, server.URL, ""))
		require.NoError(t, err)
		require.Equal(t, 3, attempts)
	})

	t.Run("rejects document with mismatched id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(docJSON("did:web:somewhere-else.example")))
		}))
		defer server.Close()

		r := New(WithInsecureHTTP(), WithHTTPClient(server.Client()))

		_, err := r.Resolve(webDID(t, server.URL, ""))
		require.Error(t, err)
		require.Contains(t, err.Error(), "does not match")
	})

	t.Run("rejects non did:web DIDs", func(t *testing.T) {
		r := New()

		_, err := r.Resolve("did:example:123")
		require.Error(t, err)
		require.Contains(t, err.Error(), "unsupported method")
	})
}
