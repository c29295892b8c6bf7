/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/jsonld"
)

// SecurityContext is the JSON-LD context used for canonicalization of proof options.
const SecurityContext = "https://w3id.org/security/v2"

const jsonldContext = "@context"

const (
	jwtPartsNumber   = 3
	jwtHeaderPart    = 0
	jwtSignaturePart = 2
)

// signatureSuite encapsulates the signature suite methods required for building verify data.
type signatureSuite interface {

	// GetCanonicalDocument will return normalized/canonical version of the document.
	GetCanonicalDocument(doc map[string]interface{}, opts ...jsonld.ProcessorOpts) ([]byte, error)

	// GetDigest returns document digest.
	GetDigest(doc []byte) []byte
}

// CreateDetachedJWTHeader creates a detached unencoded-payload JWT header for the given JWS algorithm.
func CreateDetachedJWTHeader(alg string) string {
	jwtHeaderMap := map[string]interface{}{
		"alg":  alg,
		"b64":  false,
		"crit": []string{"b64"},
	}

	jwtHeaderBytes, err := json.Marshal(jwtHeaderMap)
	if err != nil {
		panic(err)
	}

	return base64.RawURLEncoding.EncodeToString(jwtHeaderBytes)
}

// GetJWTSignature returns the signature part of a serialized JWT.
func GetJWTSignature(jwt string) ([]byte, error) {
	jwtParts := strings.Split(jwt, ".")
	if len(jwtParts) != jwtPartsNumber || jwtParts[jwtSignaturePart] == "" {
		return nil, errors.New("invalid JWT")
	}

	return base64.RawURLEncoding.DecodeString(jwtParts[jwtSignaturePart])
}

func getJWTHeader(jwt string) (string, error) {
	jwtParts := strings.Split(jwt, ".")
	if len(jwtParts) != jwtPartsNumber {
		return "", errors.New("invalid JWT")
	}

	return jwtParts[jwtHeaderPart], nil
}

// createVerifyJWS creates the data used to create/verify a digital signature in the
// form of a JSON Web Signature (JWS) with detached content (https://tools.ietf.org/html/rfc7797).
// The payload is built like the conventional Create Verify Hash algorithm, except that
// https://w3id.org/security/v2 is used as the context for JSON-LD canonicalization of the
// proof options, and the JWT header is prepended to the digest.
func createVerifyJWS(suite signatureSuite, jsonldDoc map[string]interface{}, p *Proof,
	opts ...jsonld.ProcessorOpts) ([]byte, error) {
	proofOptions := p.JSONLdObject()

	canonicalProofOptions, err := prepareJWSProof(suite, proofOptions, opts...)
	if err != nil {
		return nil, err
	}

	proofOptionsDigest := suite.GetDigest(canonicalProofOptions)

	canonicalDoc, err := prepareDocumentForJWS(suite, jsonldDoc, opts...)
	if err != nil {
		return nil, err
	}

	docDigest := suite.GetDigest(canonicalDoc)

	verifyData := append(proofOptionsDigest, docDigest...)

	jwtHeader, err := getJWTHeader(p.JWS)
	if err != nil {
		return nil, err
	}

	return append([]byte(jwtHeader+"."), verifyData...), nil
}

func prepareJWSProof(suite signatureSuite, proofOptions map[string]interface{},
	opts ...jsonld.ProcessorOpts) ([]byte, error) {
	proofOptions[jsonldContext] = SecurityContext

	proofOptionsCopy := make(map[string]interface{}, len(proofOptions))

	for key, value := range proofOptions {
		proofOptionsCopy[key] = value
	}

	delete(proofOptionsCopy, jsonldJWS)
	delete(proofOptionsCopy, jsonldProofValue)

	return suite.GetCanonicalDocument(proofOptionsCopy, opts...)
}

func prepareDocumentForJWS(suite signatureSuite, jsonldObject map[string]interface{},
	opts ...jsonld.ProcessorOpts) ([]byte, error) {
	doc := GetCopyWithoutProof(jsonldObject)

	return suite.GetCanonicalDocument(doc, opts...)
}
