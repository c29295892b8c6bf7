/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package jsonwebsignature2020 implements the JsonWebSignature2020 signature suite
// for the Linked Data Signatures specification. It uses the RDF Dataset
// Normalization Algorithm to transform the input document into its canonical form,
// SHA-256 as the message digest algorithm, and detached JSON Web Signatures for
// signing and verification with JSON Web Keys.
package jsonwebsignature2020

import (
	"crypto/sha256"

	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/jsonld"
	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/suite"
	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/verifier"
)

// Suite implements the JsonWebSignature2020 signature suite.
type Suite struct {
	suite.SignatureSuite
	jsonldProcessor *jsonld.Processor
}

// SignatureType is the proof type handled by this suite.
const SignatureType = "JsonWebSignature2020"

const rdfDataSetAlg = "URDNA2015"

// New returns a new instance of the JsonWebSignature2020 suite.
func New(opts ...suite.Opt) *Suite {
	s := &Suite{jsonldProcessor: jsonld.NewProcessor(rdfDataSetAlg)}

	suite.InitSuiteOptions(&s.SignatureSuite, opts...)

	return s
}

// GetCanonicalDocument will return the normalized/canonical version of the document.
func (s *Suite) GetCanonicalDocument(doc map[string]interface{}, opts ...jsonld.ProcessorOpts) ([]byte, error) {
	return s.jsonldProcessor.GetCanonicalDocument(doc, opts...)
}

// GetDigest returns the document digest.
func (s *Suite) GetDigest(doc []byte) []byte {
	digest := sha256.Sum256(doc)
	return digest[:]
}

// Accept will accept only the JsonWebSignature2020 signature type.
func (s *Suite) Accept(t string) bool {
	return t == SignatureType
}

// NewPublicKeyVerifier creates a signature verifier covering the key types
// JsonWebSignature2020 proofs are created with.
func NewPublicKeyVerifier() *verifier.PublicKeyVerifier {
	return verifier.NewCompositePublicKeyVerifier(
		[]verifier.SignatureVerifier{
			verifier.NewECDSAES256SignatureVerifier(),
			verifier.NewECDSAES384SignatureVerifier(),
			verifier.NewEd25519SignatureVerifier(),
		})
}
