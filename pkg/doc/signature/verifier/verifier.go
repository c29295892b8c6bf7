/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package verifier provides signature verification primitives for linked-data
// proofs: resolved public key material, per-algorithm signature verifiers and
// the signature suite contract.
package verifier

import (
	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/jsonld"
)

// SignatureSuite encapsulates signature suite methods required for signature verification.
type SignatureSuite interface {

	// GetCanonicalDocument will return normalized/canonical version of the document.
	GetCanonicalDocument(doc map[string]interface{}, opts ...jsonld.ProcessorOpts) ([]byte, error)

	// GetDigest returns document digest.
	GetDigest(doc []byte) []byte

	// Verify will verify signature against public key.
	Verify(pubKey *PublicKey, doc []byte, signature []byte) error

	// Accept registers this signature suite with the given signature type.
	Accept(signatureType string) bool

	// CompactProof indicates whether to compact the proof doc before canonization.
	CompactProof() bool
}
