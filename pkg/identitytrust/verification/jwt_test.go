/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package verification

import (
	"testing"

	"github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
	"github.com/stretchr/testify/require"

	"github.com/dataspace-go/identitytrust-go/pkg/identitytrust"
	mockvdr "github.com/dataspace-go/identitytrust-go/pkg/mock/vdr"
)

type fakeCredentialVerifier struct {
	err   error
	calls []map[string]interface{}
}

func (f *fakeCredentialVerifier) VerifyCredential(document map[string]interface{}) error {
	f.calls = append(f.calls, document)

	return f.err
}

func TestSelfIssuedIDTokenVerifier_Verify(t *testing.T) {
	holder := newParticipant(t, holderDID)

	t.Run("valid token", func(t *testing.T) {
		v := NewSelfIssuedIDTokenVerifier(resolverFor(holder))

		claims, err := v.Verify(holder.signJWT(t, map[string]interface{}{
			identitytrust.IssuerClaim:  holderDID,
			identitytrust.SubjectClaim: holderDID,
		}))
		require.NoError(t, err)
		require.Equal(t, holderDID, claims[identitytrust.IssuerClaim])
	})

	t.Run("unparsable token", func(t *testing.T) {
		v := NewSelfIssuedIDTokenVerifier(resolverFor(holder))

		_, err := v.Verify("not a jwt")
		require.ErrorIs(t, err, &identitytrust.VerificationError{Code: identitytrust.MalformedPresentation})
	})

	t.Run("token without kid header", func(t *testing.T) {
		signer, err := jose.NewSigner(jose.SigningKey{
			Algorithm: jose.ES256,
			Key:       holder.privateKey,
		}, nil)
		require.NoError(t, err)

		token, err := jwt.Signed(signer).Claims(map[string]interface{}{
			identitytrust.IssuerClaim: holderDID,
		}).CompactSerialize()
		require.NoError(t, err)

		v := NewSelfIssuedIDTokenVerifier(resolverFor(holder))

		_, err = v.Verify(token)
		require.ErrorIs(t, err, &identitytrust.VerificationError{Code: identitytrust.MalformedPresentation})
		require.Contains(t, err.Error(), "kid")
	})

	t.Run("token without iss claim", func(t *testing.T) {
		v := NewSelfIssuedIDTokenVerifier(resolverFor(holder))

		_, err := v.Verify(holder.signJWT(t, map[string]interface{}{
			identitytrust.SubjectClaim: holderDID,
		}))
		require.ErrorIs(t, err, &identitytrust.VerificationError{Code: identitytrust.MalformedPresentation})
		require.Contains(t, err.Error(), "iss")
	})

	t.Run("unresolvable issuer", func(t *testing.T) {
		v := NewSelfIssuedIDTokenVerifier(&mockvdr.MockResolver{})

		_, err := v.Verify(holder.signJWT(t, map[string]interface{}{
			identitytrust.IssuerClaim: holderDID,
		}))
		require.ErrorIs(t, err, &identitytrust.VerificationError{Code: identitytrust.InvalidSignature})
	})

	t.Run("kid not in issuer document", func(t *testing.T) {
		other := newParticipant(t, holderDID)
		other.kid = holderDID + "#other-key"

		v := NewSelfIssuedIDTokenVerifier(resolverFor(holder))

		_, err := v.Verify(other.signJWT(t, map[string]interface{}{
			identitytrust.IssuerClaim: holderDID,
		}))
		require.ErrorIs(t, err, &identitytrust.VerificationError{Code: identitytrust.KeyNotFound})
	})

	t.Run("signature by a different key", func(t *testing.T) {
		impostor := newParticipant(t, holderDID)

		v := NewSelfIssuedIDTokenVerifier(resolverFor(holder))

		_, err := v.Verify(impostor.signJWT(t, map[string]interface{}{
			identitytrust.IssuerClaim: holderDID,
		}))
		require.ErrorIs(t, err, &identitytrust.VerificationError{Code: identitytrust.InvalidSignature})
	})
}

func TestJWTPresentationVerifier_VerifyPresentation(t *testing.T) {
	holder := newParticipant(t, holderDID)
	issuer := newParticipant(t, issuerDID)

	t.Run("handles only the JWT format", func(t *testing.T) {
		v := NewJWTPresentationVerifier(nil, nil)

		require.True(t, v.CanHandle(identitytrust.FormatJWT))
		require.False(t, v.CanHandle(identitytrust.FormatJSONLD))
	})

	t.Run("presentation without credentials verifies", func(t *testing.T) {
		v := NewJWTPresentationVerifier(NewSelfIssuedIDTokenVerifier(resolverFor(holder)), nil)

		err := v.VerifyPresentation(jwtContainer(holder.jwtVP(t, []interface{}{})))
		require.NoError(t, err)
	})

	t.Run("presentation with valid credentials verifies", func(t *testing.T) {
		v := NewJWTPresentationVerifier(NewSelfIssuedIDTokenVerifier(resolverFor(holder, issuer)), nil)

		err := v.VerifyPresentation(jwtContainer(holder.jwtVP(t, []interface{}{
			issuer.jwtVC(t, holderDID),
			issuer.jwtVC(t, holderDID),
		})))
		require.NoError(t, err)
	})

	t.Run("forged credential fails regardless of position", func(t *testing.T) {
		impostor := newParticipant(t, issuerDID)

		valid := issuer.jwtVC(t, holderDID)
		forged := impostor.jwtVC(t, holderDID)

		v := NewJWTPresentationVerifier(NewSelfIssuedIDTokenVerifier(resolverFor(holder, issuer)), nil)

		for _, credentials := range [][]interface{}{
			{forged, valid},
			{valid, forged},
		} {
			err := v.VerifyPresentation(jwtContainer(holder.jwtVP(t, credentials)))
			require.ErrorIs(t, err, &identitytrust.VerificationError{Code: identitytrust.InvalidSignature})
		}
	})

	t.Run("missing vp claim", func(t *testing.T) {
		v := NewJWTPresentationVerifier(NewSelfIssuedIDTokenVerifier(resolverFor(holder)), nil)

		err := v.VerifyPresentation(jwtContainer(holder.signJWT(t, map[string]interface{}{
			identitytrust.IssuerClaim: holderDID,
		})))
		require.ErrorIs(t, err, &identitytrust.VerificationError{Code: identitytrust.MalformedPresentation})
	})

	t.Run("vp claim is not an object", func(t *testing.T) {
		v := NewJWTPresentationVerifier(NewSelfIssuedIDTokenVerifier(resolverFor(holder)), nil)

		err := v.VerifyPresentation(jwtContainer(holder.signJWT(t, map[string]interface{}{
			identitytrust.IssuerClaim:       holderDID,
			identitytrust.PresentationClaim: "not an object",
		})))
		require.ErrorIs(t, err, &identitytrust.VerificationError{Code: identitytrust.MalformedPresentation})
	})

	t.Run("unexpected credential entry type", func(t *testing.T) {
		v := NewJWTPresentationVerifier(NewSelfIssuedIDTokenVerifier(resolverFor(holder)), nil)

		err := v.VerifyPresentation(jwtContainer(holder.jwtVP(t, []interface{}{42})))
		require.ErrorIs(t, err, &identitytrust.VerificationError{Code: identitytrust.MalformedPresentation})
	})

	t.Run("linked-data credential delegates to the credential verifier", func(t *testing.T) {
		delegate := &fakeCredentialVerifier{}
		v := NewJWTPresentationVerifier(NewSelfIssuedIDTokenVerifier(resolverFor(holder)), delegate)

		embedded := map[string]interface{}{"type": "VerifiableCredential", "issuer": issuerDID}

		err := v.VerifyPresentation(jwtContainer(holder.jwtVP(t, []interface{}{embedded})))
		require.NoError(t, err)
		require.Len(t, delegate.calls, 1)
		require.Equal(t, issuerDID, delegate.calls[0]["issuer"])
	})

	t.Run("delegate failure fails the presentation", func(t *testing.T) {
		cause := identitytrust.NewVerificationError(identitytrust.InvalidSignature, "credential proof")
		delegate := &fakeCredentialVerifier{err: cause}
		v := NewJWTPresentationVerifier(NewSelfIssuedIDTokenVerifier(resolverFor(holder)), delegate)

		err := v.VerifyPresentation(jwtContainer(holder.jwtVP(t, []interface{}{
			map[string]interface{}{"type": "VerifiableCredential"},
		})))
		require.ErrorIs(t, err, cause)
	})

	t.Run("linked-data credential without a delegate", func(t *testing.T) {
		v := NewJWTPresentationVerifier(NewSelfIssuedIDTokenVerifier(resolverFor(holder)), nil)

		err := v.VerifyPresentation(jwtContainer(holder.jwtVP(t, []interface{}{
			map[string]interface{}{"type": "VerifiableCredential"},
		})))
		require.ErrorIs(t, err, &identitytrust.VerificationError{Code: identitytrust.UnsupportedFormat})
	})
}
