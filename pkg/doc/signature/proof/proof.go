/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package proof implements the embedded linked-data proof model: parsing proof
// blocks out of JSON-LD documents and building the data over which proof
// signatures are created and verified.
package proof

import (
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	jsonldType               = "type"
	jsonldCreated            = "created"
	jsonldProofValue         = "proofValue"
	jsonldJWS                = "jws"
	jsonldProofPurpose       = "proofPurpose"
	jsonldVerificationMethod = "verificationMethod"
	jsonldDomain             = "domain"
	jsonldChallenge          = "challenge"

	jsonldProof = "proof"
)

// SignatureRepresentation defines a representation of a proof signature.
type SignatureRepresentation int

const (
	// SignatureProofValue uses "proofValue" field in a Proof to put/read a digital signature.
	SignatureProofValue SignatureRepresentation = iota

	// SignatureJWS uses "jws" field in a Proof as an element for representation of detached JSON Web Signatures.
	SignatureJWS
)

// Proof is a cryptographic proof embedded into a linked-data document.
// The original proof object is retained so canonicalization operates on
// exactly what the signer produced.
type Proof struct {
	Type                    string
	Created                 string
	VerificationMethod      string
	ProofPurpose            string
	Domain                  string
	Challenge               string
	ProofValue              []byte
	JWS                     string
	SignatureRepresentation SignatureRepresentation

	raw map[string]interface{}
}

// NewProof creates a new proof from a proof JSON object.
func NewProof(emap map[string]interface{}) (*Proof, error) {
	var (
		proofValue     []byte
		representation SignatureRepresentation
		jws            string
		err            error
	)

	if generalProof, ok := emap[jsonldProofValue]; ok {
		proofValue, err = base64.RawURLEncoding.DecodeString(stringEntry(generalProof))
		if err != nil {
			return nil, fmt.Errorf("decode proofValue: %w", err)
		}

		representation = SignatureProofValue
	} else if jwsProof, ok := emap[jsonldJWS]; ok {
		jws = stringEntry(jwsProof)
		representation = SignatureJWS
	}

	if len(proofValue) == 0 && jws == "" {
		return nil, errors.New("signature is not defined")
	}

	return &Proof{
		Type:                    stringEntry(emap[jsonldType]),
		Created:                 stringEntry(emap[jsonldCreated]),
		VerificationMethod:      stringEntry(emap[jsonldVerificationMethod]),
		ProofPurpose:            stringEntry(emap[jsonldProofPurpose]),
		Domain:                  stringEntry(emap[jsonldDomain]),
		Challenge:               stringEntry(emap[jsonldChallenge]),
		ProofValue:              proofValue,
		JWS:                     jws,
		SignatureRepresentation: representation,
		raw:                     emap,
	}, nil
}

// JSONLdObject returns a copy of the original proof JSON object.
func (p *Proof) JSONLdObject() map[string]interface{} {
	emap := make(map[string]interface{}, len(p.raw))
	for k, v := range p.raw {
		emap[k] = v
	}

	return emap
}

// PublicKeyID returns the identifier of the verification method the proof was created with.
func (p *Proof) PublicKeyID() (string, error) {
	if p.VerificationMethod == "" {
		return "", errors.New("no verification method in proof")
	}

	return p.VerificationMethod, nil
}

// GetProofs gets all proofs of the given JSON-LD document.
func GetProofs(jsonLdObject map[string]interface{}) ([]*Proof, error) {
	entry, ok := jsonLdObject[jsonldProof]
	if !ok {
		return nil, errors.New("proof is not defined")
	}

	var proofEntries []interface{}

	switch e := entry.(type) {
	case map[string]interface{}:
		proofEntries = []interface{}{e}
	case []interface{}:
		proofEntries = e
	default:
		return nil, errors.New("proof is not a JSON object or an array of JSON objects")
	}

	var result []*Proof

	for _, proofEntry := range proofEntries {
		emap, ok := proofEntry.(map[string]interface{})
		if !ok {
			return nil, errors.New("proof is not a JSON object")
		}

		proof, err := NewProof(emap)
		if err != nil {
			return nil, err
		}

		result = append(result, proof)
	}

	if len(result) == 0 {
		return nil, errors.New("proof is not defined")
	}

	return result, nil
}

// GetCopyWithoutProof gets a copy of the JSON-LD document with the proof(s) removed.
func GetCopyWithoutProof(jsonLdObject map[string]interface{}) map[string]interface{} {
	if jsonLdObject == nil {
		return nil
	}

	dest := make(map[string]interface{}, len(jsonLdObject))

	for k, v := range jsonLdObject {
		if k != jsonldProof {
			dest[k] = v
		}
	}

	return dest
}

func stringEntry(entry interface{}) string {
	if entry == nil {
		return ""
	}

	s, _ := entry.(string)

	return s
}
