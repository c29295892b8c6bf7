/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package suite provides a base for linked-data signature suites and a
// registry that maps proof types to the suites able to verify them.
package suite

import (
	"errors"

	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/verifier"
)

// SignatureSuite provides common behaviour for signature suites: it holds the
// optional crypto signer and verifier a concrete suite delegates to.
type SignatureSuite struct {
	Signer         signer
	Verifier       signatureVerifier
	CompactedProof bool
}

type signer interface {
	// Sign will sign the document.
	Sign(data []byte) ([]byte, error)

	// Alg will return the JWS algorithm of the signer.
	Alg() string
}

type signatureVerifier interface {
	// Verify will verify a signature.
	Verify(pubKeyValue *verifier.PublicKey, doc, signature []byte) error
}

// Opt is the SignatureSuite option.
type Opt func(opts *SignatureSuite)

// WithSigner defines a signer for the signature suite.
func WithSigner(s signer) Opt {
	return func(opts *SignatureSuite) {
		opts.Signer = s
	}
}

// WithVerifier defines a verifier for the signature suite.
func WithVerifier(v signatureVerifier) Opt {
	return func(opts *SignatureSuite) {
		opts.Verifier = v
	}
}

// WithCompactProof indicates that proof compaction is needed, by default it is not.
func WithCompactProof() Opt {
	return func(opts *SignatureSuite) {
		opts.CompactedProof = true
	}
}

// InitSuiteOptions initializes a signature suite with options.
func InitSuiteOptions(suite *SignatureSuite, opts ...Opt) *SignatureSuite {
	for _, opt := range opts {
		opt(suite)
	}

	return suite
}

// Verify will verify a signature.
func (s *SignatureSuite) Verify(pubKeyValue *verifier.PublicKey, doc, signature []byte) error {
	if s.Verifier == nil {
		return ErrVerifierNotDefined
	}

	return s.Verifier.Verify(pubKeyValue, doc, signature)
}

// Sign will sign the document.
func (s *SignatureSuite) Sign(doc []byte) ([]byte, error) {
	if s.Signer == nil {
		return nil, ErrSignerNotDefined
	}

	return s.Signer.Sign(doc)
}

// Alg will return the JWS algorithm of the suite's signer.
func (s *SignatureSuite) Alg() string {
	if s.Signer == nil {
		return ""
	}

	return s.Signer.Alg()
}

// CompactProof indicates weather to compact the proof doc before canonization.
func (s *SignatureSuite) CompactProof() bool {
	return s.CompactedProof
}

// ErrSignerNotDefined is returned when no signer is defined.
var ErrSignerNotDefined = errors.New("signer is not defined")

// ErrVerifierNotDefined is returned when no verifier is defined.
var ErrVerifierNotDefined = errors.New("verifier is not defined")
