/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"errors"
	"fmt"
	"math/big"

	jose "github.com/go-jose/go-jose/v3"
)

// PublicKey contains a result of public key resolution.
type PublicKey struct {
	Type  string
	Value []byte
	JWK   *jose.JSONWebKey
}

// SignatureVerifier makes signature verification of a certain algorithm
// (e.g. Ed25519 or ECDSA P-256).
type SignatureVerifier interface {
	// KeyType returns the JWK key type this verifier works with.
	KeyType() string

	// Curve returns the JWK curve this verifier works with.
	Curve() string

	// Algorithm returns the JWS algorithm this verifier works with.
	Algorithm() string

	// Verify verifies the signature.
	Verify(pubKey *PublicKey, msg, signature []byte) error
}

// PublicKeyVerifier makes signature verification using the public key
// based on one or several signature algorithms.
type PublicKeyVerifier struct {
	exactType      string
	singleVerifier SignatureVerifier
	verifiers      []SignatureVerifier
}

// PublicKeyVerifierOpt is the PublicKeyVerifier functional option.
type PublicKeyVerifierOpt func(opts *PublicKeyVerifier)

// NewPublicKeyVerifier creates a new PublicKeyVerifier based on a single signature algorithm.
func NewPublicKeyVerifier(sigAlg SignatureVerifier, opts ...PublicKeyVerifierOpt) *PublicKeyVerifier {
	v := &PublicKeyVerifier{
		singleVerifier: sigAlg,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// NewCompositePublicKeyVerifier creates a new PublicKeyVerifier based on one or more signature algorithms.
func NewCompositePublicKeyVerifier(verifiers []SignatureVerifier, opts ...PublicKeyVerifierOpt) *PublicKeyVerifier {
	v := &PublicKeyVerifier{
		verifiers: verifiers,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// WithExactPublicKeyType option is used to check the type of the PublicKey.
func WithExactPublicKeyType(keyType string) PublicKeyVerifierOpt {
	return func(opts *PublicKeyVerifier) {
		opts.exactType = keyType
	}
}

// Verify verifies the signature.
func (pkv *PublicKeyVerifier) Verify(pubKey *PublicKey, msg, signature []byte) error {
	if pkv.exactType != "" && pubKey.Type != pkv.exactType {
		return fmt.Errorf("a type of public key is not '%s'", pkv.exactType)
	}

	if pkv.singleVerifier != nil {
		return pkv.singleVerifier.Verify(pubKey, msg, signature)
	}

	for _, v := range pkv.verifiers {
		if matchVerifier(v, pubKey) {
			return v.Verify(pubKey, msg, signature)
		}
	}

	return errors.New("no matching verifier found")
}

func matchVerifier(v SignatureVerifier, pubKey *PublicKey) bool {
	if pubKey.JWK == nil {
		// raw bytes without a JWK can only be an Ed25519 key here
		return v.KeyType() == "OKP"
	}

	switch key := pubKey.JWK.Key.(type) {
	case ed25519.PublicKey:
		return v.KeyType() == "OKP"
	case *ecdsa.PublicKey:
		return v.KeyType() == "EC" && v.Curve() == key.Curve.Params().Name
	}

	return false
}

type baseSignatureVerifier struct {
	keyType   string
	curve     string
	algorithm string
}

func (sv baseSignatureVerifier) KeyType() string {
	return sv.keyType
}

func (sv baseSignatureVerifier) Curve() string {
	return sv.curve
}

func (sv baseSignatureVerifier) Algorithm() string {
	return sv.algorithm
}

// Ed25519SignatureVerifier verifies an Ed25519 signature taking Ed25519 public key bytes as input.
type Ed25519SignatureVerifier struct {
	baseSignatureVerifier
}

// NewEd25519SignatureVerifier creates a new Ed25519SignatureVerifier.
func NewEd25519SignatureVerifier() *Ed25519SignatureVerifier {
	return &Ed25519SignatureVerifier{
		baseSignatureVerifier: baseSignatureVerifier{
			keyType:   "OKP",
			curve:     "Ed25519",
			algorithm: "EdDSA",
		},
	}
}

// Verify verifies the signature.
func (sv Ed25519SignatureVerifier) Verify(pubKey *PublicKey, msg, signature []byte) error {
	value := pubKey.Value

	if pubKey.JWK != nil {
		keyBytes, ok := pubKey.JWK.Key.(ed25519.PublicKey)
		if !ok {
			return errors.New("ed25519: JWK does not hold an Ed25519 key")
		}

		value = keyBytes
	}

	// ed25519 panics if key size is wrong
	if len(value) != ed25519.PublicKeySize {
		return errors.New("ed25519: invalid key")
	}

	if !ed25519.Verify(value, msg, signature) {
		return errors.New("ed25519: invalid signature")
	}

	return nil
}

type ellipticCurve struct {
	curve   elliptic.Curve
	keySize int
	hash    crypto.Hash
}

const (
	p256KeySize = 32
	p384KeySize = 48
)

// ECDSASignatureVerifier verifies elliptic curve signatures in the raw r||s form.
type ECDSASignatureVerifier struct {
	baseSignatureVerifier

	ec ellipticCurve
}

// NewECDSAES256SignatureVerifier creates a new signature verifier that verifies an ECDSA P-256 signature
// taking a public key JWK or uncompressed public key bytes as input.
func NewECDSAES256SignatureVerifier() *ECDSASignatureVerifier {
	return &ECDSASignatureVerifier{
		baseSignatureVerifier: baseSignatureVerifier{
			keyType:   "EC",
			curve:     "P-256",
			algorithm: "ES256",
		},
		ec: ellipticCurve{
			curve:   elliptic.P256(),
			keySize: p256KeySize,
			hash:    crypto.SHA256,
		},
	}
}

// NewECDSAES384SignatureVerifier creates a new signature verifier that verifies an ECDSA P-384 signature
// taking a public key JWK or uncompressed public key bytes as input.
func NewECDSAES384SignatureVerifier() *ECDSASignatureVerifier {
	return &ECDSASignatureVerifier{
		baseSignatureVerifier: baseSignatureVerifier{
			keyType:   "EC",
			curve:     "P-384",
			algorithm: "ES384",
		},
		ec: ellipticCurve{
			curve:   elliptic.P384(),
			keySize: p384KeySize,
			hash:    crypto.SHA384,
		},
	}
}

// Verify verifies the signature.
func (sv ECDSASignatureVerifier) Verify(pubKey *PublicKey, msg, signature []byte) error {
	ecdsaPubKey, err := sv.ecdsaKey(pubKey)
	if err != nil {
		return err
	}

	if len(signature) != 2*sv.ec.keySize {
		return errors.New("ecdsa: invalid signature size")
	}

	hasher := sv.ec.hash.New()

	_, err = hasher.Write(msg)
	if err != nil {
		return errors.New("ecdsa: hash error")
	}

	hash := hasher.Sum(nil)

	r := big.NewInt(0).SetBytes(signature[:sv.ec.keySize])
	s := big.NewInt(0).SetBytes(signature[sv.ec.keySize:])

	if !ecdsa.Verify(ecdsaPubKey, hash, r, s) {
		return errors.New("ecdsa: invalid signature")
	}

	return nil
}

func (sv ECDSASignatureVerifier) ecdsaKey(pubKey *PublicKey) (*ecdsa.PublicKey, error) {
	if pubKey.JWK != nil {
		key, ok := pubKey.JWK.Key.(*ecdsa.PublicKey)
		if !ok {
			return nil, errors.New("ecdsa: JWK does not hold an ECDSA key")
		}

		if key.Curve.Params().Name != sv.ec.curve.Params().Name {
			return nil, fmt.Errorf("ecdsa: unexpected curve '%s'", key.Curve.Params().Name)
		}

		return key, nil
	}

	x, y := elliptic.Unmarshal(sv.ec.curve, pubKey.Value)
	if x == nil {
		return nil, errors.New("ecdsa: invalid public key")
	}

	return &ecdsa.PublicKey{Curve: sv.ec.curve, X: x, Y: y}, nil
}
