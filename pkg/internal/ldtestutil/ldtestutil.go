/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package ldtestutil provides shared helpers for tests working with JSON-LD
// documents: a document loader over the embedded contexts and a raw ECDSA
// signer for producing linked-data proof fixtures.
package ldtestutil

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dataspace-go/identitytrust-go/pkg/doc/ldcontext"
	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/jsonld"
)

// DocumentLoader returns a loader serving the embedded JSON-LD contexts.
func DocumentLoader(t *testing.T) *ldcontext.DocumentLoader {
	t.Helper()

	loader, err := ldcontext.NewDocumentLoader()
	require.NoError(t, err)

	return loader
}

// ProcessorOpts returns JSON-LD processor options wired to the embedded
// context loader.
func ProcessorOpts(t *testing.T) []jsonld.ProcessorOpts {
	t.Helper()

	return []jsonld.ProcessorOpts{jsonld.WithDocumentLoader(DocumentLoader(t))}
}

// ES256Signer signs digests with an ECDSA P-256 key, producing the raw r||s
// signature form used by JsonWebSignature2020 proofs.
type ES256Signer struct {
	privateKey *ecdsa.PrivateKey
}

// NewES256Signer creates a signer over the given P-256 private key.
func NewES256Signer(privateKey *ecdsa.PrivateKey) *ES256Signer {
	return &ES256Signer{privateKey: privateKey}
}

// Sign signs the SHA-256 digest of data.
func (s *ES256Signer) Sign(data []byte) ([]byte, error) {
	hash := sha256.Sum256(data)

	r, sv, err := ecdsa.Sign(rand.Reader, s.privateKey, hash[:])
	if err != nil {
		return nil, err
	}

	const partSize = 32

	signature := make([]byte, 2*partSize)
	r.FillBytes(signature[:partSize])
	sv.FillBytes(signature[partSize:])

	return signature, nil
}

// Alg returns the JWS algorithm name of the signer.
func (s *ES256Signer) Alg() string {
	return "ES256"
}
