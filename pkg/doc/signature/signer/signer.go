/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package signer creates embedded linked-data proofs on JSON-LD documents.
// It is the producing counterpart of the proof verification performed by the
// presentation verifiers: holders use it to sign presentations, issuers to
// sign credentials.
package signer

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/jsonld"
	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/proof"
)

// signatureSuite encapsulates the signature suite methods required for signing documents.
type signatureSuite interface {

	// GetCanonicalDocument will return normalized/canonical version of the document.
	GetCanonicalDocument(doc map[string]interface{}, opts ...jsonld.ProcessorOpts) ([]byte, error)

	// GetDigest returns document digest.
	GetDigest(doc []byte) []byte

	// Sign will sign the document.
	Sign(doc []byte) ([]byte, error)

	// Alg will return the JWS algorithm of the suite's signer.
	Alg() string

	// Accept registers this signature suite with the given signature type.
	Accept(signatureType string) bool
}

// Context holds the options for creating a proof.
type Context struct {
	SignatureType           string
	VerificationMethod      string
	Purpose                 string
	Created                 *time.Time
	Challenge               string
	Domain                  string
	SignatureRepresentation proof.SignatureRepresentation
}

// DocumentSigner applies signatures to a JSON-LD document.
type DocumentSigner struct {
	signatureSuites []signatureSuite
}

// New returns a new instance of document signer.
func New(signatureSuites ...signatureSuite) *DocumentSigner {
	return &DocumentSigner{signatureSuites: signatureSuites}
}

// Sign adds an embedded proof to the given JSON-LD document.
func (ds *DocumentSigner) Sign(context *Context, jsonLdDoc []byte, opts ...jsonld.ProcessorOpts) ([]byte, error) {
	var jsonLdObject map[string]interface{}

	err := json.Unmarshal(jsonLdDoc, &jsonLdObject)
	if err != nil {
		return nil, fmt.Errorf("unmarshal json ld document: %w", err)
	}

	err = ds.signObject(context, jsonLdObject, opts)
	if err != nil {
		return nil, err
	}

	signedDoc, err := json.Marshal(jsonLdObject)
	if err != nil {
		return nil, err
	}

	return signedDoc, nil
}

func (ds *DocumentSigner) signObject(context *Context, jsonLdObject map[string]interface{},
	opts []jsonld.ProcessorOpts) error {
	if context.SignatureType == "" {
		return errors.New("signature type is missing")
	}

	suite, err := ds.getSignatureSuite(context.SignatureType)
	if err != nil {
		return err
	}

	created := context.Created
	if created == nil {
		now := time.Now()
		created = &now
	}

	proofObject := map[string]interface{}{
		"type":    context.SignatureType,
		"created": created.UTC().Format(time.RFC3339),
	}

	if context.VerificationMethod != "" {
		proofObject["verificationMethod"] = context.VerificationMethod
	}

	if context.Purpose != "" {
		proofObject["proofPurpose"] = context.Purpose
	}

	if context.Challenge != "" {
		proofObject["challenge"] = context.Challenge
	}

	if context.Domain != "" {
		proofObject["domain"] = context.Domain
	}

	if context.SignatureRepresentation != proof.SignatureJWS {
		return fmt.Errorf("unsupported signature representation: %v", context.SignatureRepresentation)
	}

	// the detached JWS header is part of the signed data, so it is set before
	// the verify data is built
	jwsHeader := proof.CreateDetachedJWTHeader(suite.Alg())
	proofObject["jws"] = jwsHeader + ".."

	p, err := proof.NewProof(proofObject)
	if err != nil {
		return err
	}

	message, err := proof.CreateVerifyData(suite, jsonLdObject, p, opts...)
	if err != nil {
		return err
	}

	signature, err := suite.Sign(message)
	if err != nil {
		return err
	}

	proofObject["jws"] = jwsHeader + ".." + base64.RawURLEncoding.EncodeToString(signature)

	return appendProof(jsonLdObject, proofObject)
}

func (ds *DocumentSigner) getSignatureSuite(signatureType string) (signatureSuite, error) {
	for _, s := range ds.signatureSuites {
		if s.Accept(signatureType) {
			return s, nil
		}
	}

	return nil, fmt.Errorf("signature type %s not supported", signatureType)
}

func appendProof(jsonLdObject, proofObject map[string]interface{}) error {
	switch entry := jsonLdObject["proof"].(type) {
	case nil:
		jsonLdObject["proof"] = proofObject
	case map[string]interface{}:
		jsonLdObject["proof"] = []interface{}{entry, proofObject}
	case []interface{}:
		jsonLdObject["proof"] = append(entry, proofObject)
	default:
		return errors.New("proof is not a JSON object or an array of JSON objects")
	}

	return nil
}
