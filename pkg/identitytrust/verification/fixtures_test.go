/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package verification

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/go-jose/go-jose/v3"
	"github.com/stretchr/testify/require"

	"github.com/dataspace-go/identitytrust-go/pkg/doc/did"
	"github.com/dataspace-go/identitytrust-go/pkg/doc/ldcontext"
	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/proof"
	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/signer"
	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/suite"
	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/suite/jsonwebsignature2020"
	"github.com/dataspace-go/identitytrust-go/pkg/identitytrust"
	"github.com/dataspace-go/identitytrust-go/pkg/identitytrust/sts"
	"github.com/dataspace-go/identitytrust-go/pkg/internal/ldtestutil"
	mockvdr "github.com/dataspace-go/identitytrust-go/pkg/mock/vdr"
)

const (
	holderDID   = "did:example:holder"
	issuerDID   = "did:example:issuer"
	verifierDID = "did:example:verifier"
)

// participant is a test actor with a DID, a P-256 key and a published
// verification method.
type participant struct {
	didID      string
	kid        string
	privateKey *ecdsa.PrivateKey
}

func newParticipant(t *testing.T, didID string) *participant {
	t.Helper()

	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	return &participant{
		didID:      didID,
		kid:        didID + "#key-1",
		privateKey: privateKey,
	}
}

func (p *participant) doc() *did.Doc {
	vm := did.NewVerificationMethodFromJWK(p.kid, "JsonWebKey2020", p.didID,
		&jose.JSONWebKey{Key: &p.privateKey.PublicKey})

	return &did.Doc{
		Context:            []string{did.ContextV1},
		ID:                 p.didID,
		VerificationMethod: []did.VerificationMethod{*vm},
	}
}

// signJWT signs the claims into a compact JWS carrying the participant's kid.
func (p *participant) signJWT(t *testing.T, claims map[string]interface{}) string {
	t.Helper()

	service, err := sts.NewJWSTokenGenerationService(p.privateKey, p.kid)
	require.NoError(t, err)

	token, err := service.Generate(claims)
	require.NoError(t, err)

	return token
}

// jwtVC produces a credential JWT issued by the participant.
func (p *participant) jwtVC(t *testing.T, subjectID string) string {
	t.Helper()

	return p.signJWT(t, map[string]interface{}{
		identitytrust.IssuerClaim:  p.didID,
		identitytrust.SubjectClaim: subjectID,
		identitytrust.CredentialClaim: map[string]interface{}{
			"@context": []interface{}{ldcontext.CredentialsV1ContextURL, ldcontext.ExamplesV1ContextURL},
			"type":     []interface{}{"VerifiableCredential", "MembershipCredential"},
			"issuer":   p.didID,
			"credentialSubject": map[string]interface{}{
				"id":         subjectID,
				"membership": map[string]interface{}{"since": "2023-01-01"},
			},
		},
	})
}

// jwtVP produces a presentation JWT by the participant carrying the given
// verifiableCredential entries.
func (p *participant) jwtVP(t *testing.T, credentials []interface{}) string {
	t.Helper()

	return p.signJWT(t, map[string]interface{}{
		identitytrust.IssuerClaim:  p.didID,
		identitytrust.SubjectClaim: p.didID,
		identitytrust.PresentationClaim: map[string]interface{}{
			"@context":             []interface{}{ldcontext.CredentialsV1ContextURL},
			"type":                 "VerifiablePresentation",
			"verifiableCredential": credentials,
		},
	})
}

// signDocument adds a JsonWebSignature2020 proof to the JSON-LD document.
func (p *participant) signDocument(t *testing.T, doc map[string]interface{}) map[string]interface{} {
	t.Helper()

	docBytes, err := json.Marshal(doc)
	require.NoError(t, err)

	s := signer.New(jsonwebsignature2020.New(
		suite.WithSigner(ldtestutil.NewES256Signer(p.privateKey))))

	signedBytes, err := s.Sign(&signer.Context{
		SignatureType:           jsonwebsignature2020.SignatureType,
		VerificationMethod:      p.kid,
		Purpose:                 "assertionMethod",
		SignatureRepresentation: proof.SignatureJWS,
	}, docBytes, ldtestutil.ProcessorOpts(t)...)
	require.NoError(t, err)

	var signed map[string]interface{}

	require.NoError(t, json.Unmarshal(signedBytes, &signed))

	return signed
}

// ldpVC produces a linked-data credential issued by the participant.
func (p *participant) ldpVC(t *testing.T, subjectID string) map[string]interface{} {
	t.Helper()

	return p.signDocument(t, map[string]interface{}{
		"@context":     []interface{}{ldcontext.CredentialsV1ContextURL, ldcontext.ExamplesV1ContextURL},
		"type":         []interface{}{"VerifiableCredential", "UniversityDegreeCredential"},
		"issuer":       p.didID,
		"issuanceDate": "2023-06-01T10:00:00Z",
		"credentialSubject": map[string]interface{}{
			"id":     subjectID,
			"degree": map[string]interface{}{"degreeType": "BachelorDegree"},
		},
	})
}

// ldpVP produces a linked-data presentation by the participant carrying the
// given verifiableCredential entries.
func (p *participant) ldpVP(t *testing.T, credentials []interface{}) []byte {
	t.Helper()

	doc := map[string]interface{}{
		"@context": []interface{}{ldcontext.CredentialsV1ContextURL, ldcontext.ExamplesV1ContextURL},
		"type":     "VerifiablePresentation",
		"holder":   p.didID,
	}

	if credentials != nil {
		doc["verifiableCredential"] = credentials
	}

	signed := p.signDocument(t, doc)

	vpBytes, err := json.Marshal(signed)
	require.NoError(t, err)

	return vpBytes
}

// resolverFor returns a mock resolver serving the given participants' DID documents.
func resolverFor(participants ...*participant) *mockvdr.MockResolver {
	docs := make(map[string]*did.Doc, len(participants))
	for _, p := range participants {
		docs[p.didID] = p.doc()
	}

	return &mockvdr.MockResolver{Docs: docs}
}

// newLDPVerifier wires an LDP verifier with the JsonWebSignature2020 suite and
// the embedded context loader.
func newLDPVerifier(t *testing.T, resolver *mockvdr.MockResolver) *LDPVerifier {
	t.Helper()

	registry := suite.NewRegistry(jsonwebsignature2020.New(
		suite.WithVerifier(jsonwebsignature2020.NewPublicKeyVerifier())))

	v, err := NewLDPVerifier(resolver, registry, ldtestutil.ProcessorOpts(t)...)
	require.NoError(t, err)

	return v
}

func jwtContainer(token string) *identitytrust.VerifiablePresentationContainer {
	return &identitytrust.VerifiablePresentationContainer{
		RawVP:  []byte(token),
		Format: identitytrust.FormatJWT,
	}
}

func ldpContainer(vp []byte) *identitytrust.VerifiablePresentationContainer {
	return &identitytrust.VerifiablePresentationContainer{
		RawVP:  vp,
		Format: identitytrust.FormatJSONLD,
	}
}
