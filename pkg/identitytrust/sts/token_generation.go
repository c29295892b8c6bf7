/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package sts

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"fmt"

	"github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
)

// TokenGenerationService signs a claim set into a serialized token.
type TokenGenerationService interface {
	Generate(claims map[string]interface{}) (string, error)
}

// JWSTokenGenerationService produces compact JWS tokens from a private key.
// The signing algorithm is derived from the key type, and the key id is
// carried in the protected header so verifiers can locate the verification
// method in the issuer's DID document.
type JWSTokenGenerationService struct {
	signer jose.Signer
}

// NewJWSTokenGenerationService creates a token generation service signing with
// the given private key. kid is the verification method id published in the
// issuer's DID document.
func NewJWSTokenGenerationService(privateKey interface{}, kid string) (*JWSTokenGenerationService, error) {
	alg, err := signatureAlgorithm(privateKey)
	if err != nil {
		return nil, err
	}

	signer, err := jose.NewSigner(jose.SigningKey{
		Algorithm: alg,
		Key:       jose.JSONWebKey{Key: privateKey, KeyID: kid},
	}, (&jose.SignerOptions{}).WithType("JWT"))
	if err != nil {
		return nil, fmt.Errorf("create jose signer: %w", err)
	}

	return &JWSTokenGenerationService{signer: signer}, nil
}

// Generate signs the claims into a compact JWS.
func (s *JWSTokenGenerationService) Generate(claims map[string]interface{}) (string, error) {
	token, err := jwt.Signed(s.signer).Claims(claims).CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

func signatureAlgorithm(privateKey interface{}) (jose.SignatureAlgorithm, error) {
	switch key := privateKey.(type) {
	case *ecdsa.PrivateKey:
		switch key.Curve {
		case elliptic.P256():
			return jose.ES256, nil
		case elliptic.P384():
			return jose.ES384, nil
		case elliptic.P521():
			return jose.ES512, nil
		default:
			return "", fmt.Errorf("unsupported ecdsa curve: %s", key.Curve.Params().Name)
		}
	case *rsa.PrivateKey:
		return jose.RS256, nil
	case ed25519.PrivateKey:
		return jose.EdDSA, nil
	default:
		return "", fmt.Errorf("unsupported private key type: %T", privateKey)
	}
}
