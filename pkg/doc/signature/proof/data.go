/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"errors"
	"fmt"

	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/jsonld"
)

// CreateVerifyData returns the data used to generate or verify a digital signature
// for the given proof, according to the proof's signature representation.
func CreateVerifyData(suite signatureSuite, jsonldDoc map[string]interface{}, p *Proof,
	opts ...jsonld.ProcessorOpts) ([]byte, error) {
	switch p.SignatureRepresentation {
	case SignatureProofValue:
		return createVerifyHash(suite, jsonldDoc, p.JSONLdObject(), opts...)
	case SignatureJWS:
		return createVerifyJWS(suite, jsonldDoc, p, opts...)
	}

	return nil, fmt.Errorf("unsupported signature representation: %v", p.SignatureRepresentation)
}

// createVerifyHash returns data that is used to generate or verify a digital signature.
// Algorithm steps are described here https://w3c-dvcg.github.io/ld-signatures/#create-verify-hash-algorithm.
func createVerifyHash(suite signatureSuite, jsonldDoc, proofOptions map[string]interface{},
	opts ...jsonld.ProcessorOpts) ([]byte, error) {
	// in order to generate canonical form we need a context;
	// if the proof options do not carry one, use the document's context
	if _, ok := proofOptions[jsonldContext]; !ok {
		proofOptions[jsonldContext] = jsonldDoc[jsonldContext]
	}

	canonicalProofOptions, err := prepareCanonicalProofOptions(suite, proofOptions, opts...)
	if err != nil {
		return nil, err
	}

	proofOptionsDigest := suite.GetDigest(canonicalProofOptions)

	canonicalDoc, err := prepareDocumentForJWS(suite, jsonldDoc, opts...)
	if err != nil {
		return nil, err
	}

	docDigest := suite.GetDigest(canonicalDoc)

	return append(proofOptionsDigest, docDigest...), nil
}

func prepareCanonicalProofOptions(suite signatureSuite, proofOptions map[string]interface{},
	opts ...jsonld.ProcessorOpts) ([]byte, error) {
	if value, ok := proofOptions[jsonldCreated]; !ok || value == nil {
		return nil, errors.New("created is missing")
	}

	proofOptionsCopy := make(map[string]interface{}, len(proofOptions))

	for key, value := range proofOptions {
		proofOptionsCopy[key] = value
	}

	delete(proofOptionsCopy, jsonldProofValue)
	delete(proofOptionsCopy, jsonldJWS)

	return suite.GetCanonicalDocument(proofOptionsCopy, opts...)
}
