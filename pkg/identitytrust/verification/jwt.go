/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package verification

import (
	"crypto/ed25519"
	"encoding/json"

	"github.com/go-jose/go-jose/v3"
	"github.com/mitchellh/mapstructure"

	vdrapi "github.com/dataspace-go/identitytrust-go/pkg/api/vdr"
	"github.com/dataspace-go/identitytrust-go/pkg/identitytrust"
)

// SelfIssuedIDTokenVerifier verifies compact JWS tokens whose issuer is a DID.
// The verification key is located in the issuer's DID document through the kid
// protected header.
type SelfIssuedIDTokenVerifier struct {
	resolver vdrapi.Resolver
}

// NewSelfIssuedIDTokenVerifier creates a token verifier resolving issuer DIDs
// through the given resolver.
func NewSelfIssuedIDTokenVerifier(resolver vdrapi.Resolver) *SelfIssuedIDTokenVerifier {
	return &SelfIssuedIDTokenVerifier{resolver: resolver}
}

// Verify checks the token's signature against the issuer's DID document and
// returns the verified claims.
func (v *SelfIssuedIDTokenVerifier) Verify(token string) (map[string]interface{}, error) {
	parsed, err := jose.ParseSigned(token)
	if err != nil {
		return nil, identitytrust.WrapVerificationError(identitytrust.MalformedPresentation, err,
			"parsing compact JWS")
	}

	if len(parsed.Signatures) == 0 {
		return nil, identitytrust.NewVerificationError(identitytrust.MalformedPresentation, "token carries no signature")
	}

	kid := parsed.Signatures[0].Protected.KeyID
	if kid == "" {
		return nil, identitytrust.NewVerificationError(identitytrust.MalformedPresentation,
			"token header carries no kid")
	}

	issuer, err := unverifiedIssuer(parsed)
	if err != nil {
		return nil, err
	}

	doc, err := v.resolver.Resolve(issuer)
	if err != nil {
		return nil, identitytrust.WrapVerificationError(identitytrust.InvalidSignature, err,
			"resolving issuer %s", issuer)
	}

	vm := doc.VerificationMethodByID(kid)
	if vm == nil {
		return nil, identitytrust.NewVerificationError(identitytrust.KeyNotFound,
			"no verification method %s in DID document %s", kid, issuer)
	}

	key, err := vm.PublicKey()
	if err != nil {
		return nil, identitytrust.WrapVerificationError(identitytrust.KeyNotFound, err,
			"verification method %s", kid)
	}

	var cryptoKey interface{}

	switch {
	case key.JWK != nil:
		cryptoKey = key.JWK.Key
	case len(key.Value) == ed25519.PublicKeySize:
		cryptoKey = ed25519.PublicKey(key.Value)
	default:
		return nil, identitytrust.NewVerificationError(identitytrust.KeyNotFound,
			"verification method %s holds no usable key material", kid)
	}

	payload, err := parsed.Verify(cryptoKey)
	if err != nil {
		return nil, identitytrust.WrapVerificationError(identitytrust.InvalidSignature, err,
			"token issued by %s", issuer)
	}

	claims := map[string]interface{}{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, identitytrust.WrapVerificationError(identitytrust.MalformedPresentation, err,
			"decoding token claims")
	}

	return claims, nil
}

func unverifiedIssuer(parsed *jose.JSONWebSignature) (string, error) {
	claims := struct {
		Issuer string `json:"iss"`
	}{}

	if err := json.Unmarshal(parsed.UnsafePayloadWithoutVerification(), &claims); err != nil {
		return "", identitytrust.WrapVerificationError(identitytrust.MalformedPresentation, err,
			"decoding token payload")
	}

	if claims.Issuer == "" {
		return "", identitytrust.NewVerificationError(identitytrust.MalformedPresentation,
			"token carries no iss claim")
	}

	return claims.Issuer, nil
}

// rawPresentation is the shape of the vp claim inside a VP JWT.
type rawPresentation struct {
	VerifiableCredential []interface{} `mapstructure:"verifiableCredential"`
}

// JWTPresentationVerifier verifies presentations serialized as VP JWTs. Each
// credential inside the vp claim is verified against its own issuer: compact
// JWS strings through the token verifier, linked-data credential objects
// through the delegated credential verifier.
type JWTPresentationVerifier struct {
	tokenVerifier      *SelfIssuedIDTokenVerifier
	credentialVerifier CredentialVerifier
}

// NewJWTPresentationVerifier creates a JWT presentation verifier. The
// credential verifier handles linked-data credentials embedded in the
// presentation and may be nil when cross-format presentations are not
// expected.
func NewJWTPresentationVerifier(tokenVerifier *SelfIssuedIDTokenVerifier,
	credentialVerifier CredentialVerifier) *JWTPresentationVerifier {
	return &JWTPresentationVerifier{
		tokenVerifier:      tokenVerifier,
		credentialVerifier: credentialVerifier,
	}
}

// CanHandle reports whether the verifier handles the given format.
func (v *JWTPresentationVerifier) CanHandle(format identitytrust.CredentialFormat) bool {
	return format == identitytrust.FormatJWT
}

// VerifyPresentation verifies the VP JWT and every credential it presents.
// A presentation without credentials verifies successfully once its own
// signature checks out.
func (v *JWTPresentationVerifier) VerifyPresentation(
	container *identitytrust.VerifiablePresentationContainer) error {
	claims, err := v.tokenVerifier.Verify(string(container.RawVP))
	if err != nil {
		return err
	}

	vpClaim, ok := claims[identitytrust.PresentationClaim]
	if !ok {
		return identitytrust.NewVerificationError(identitytrust.MalformedPresentation,
			"token carries no %s claim", identitytrust.PresentationClaim)
	}

	presentation := rawPresentation{}
	if err := mapstructure.Decode(vpClaim, &presentation); err != nil {
		return identitytrust.WrapVerificationError(identitytrust.MalformedPresentation, err,
			"decoding %s claim", identitytrust.PresentationClaim)
	}

	for _, credential := range presentation.VerifiableCredential {
		switch entry := credential.(type) {
		case string:
			if _, err := v.tokenVerifier.Verify(entry); err != nil {
				return err
			}
		case map[string]interface{}:
			if v.credentialVerifier == nil {
				return identitytrust.NewVerificationError(identitytrust.UnsupportedFormat,
					"no verifier configured for embedded linked-data credentials")
			}

			if err := v.credentialVerifier.VerifyCredential(entry); err != nil {
				return err
			}
		default:
			return identitytrust.NewVerificationError(identitytrust.MalformedPresentation,
				"unexpected verifiableCredential entry of type %T", credential)
		}
	}

	return nil
}
