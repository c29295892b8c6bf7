/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package verification

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	vdrapi "github.com/dataspace-go/identitytrust-go/pkg/api/vdr"
	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/jsonld"
	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/proof"
	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/suite"
	"github.com/dataspace-go/identitytrust-go/pkg/identitytrust"
)

const (
	jsonldContext = "@context"
	jsonldGraph   = "@graph"
	jsonldID      = "@id"

	credentialsVCTerm = "https://www.w3.org/2018/credentials#verifiableCredential"
)

// presentationSchema enforces the structure every linked-data presentation
// must have before any cryptographic work is attempted.
const presentationSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["@context", "type", "proof"],
  "properties": {
    "@context": {
      "anyOf": [
        { "type": "string" },
        { "type": "array", "minItems": 1 }
      ]
    },
    "type": {
      "anyOf": [
        { "type": "string" },
        { "type": "array", "items": { "type": "string" }, "minItems": 1 }
      ]
    },
    "proof": {
      "anyOf": [
        { "type": "object" },
        { "type": "array", "items": { "type": "object" }, "minItems": 1 }
      ]
    }
  }
}`

// LDPVerifier verifies presentations serialized as JSON-LD documents with
// embedded linked-data proofs, together with the credentials they present.
type LDPVerifier struct {
	resolver  vdrapi.Resolver
	registry  *suite.Registry
	processor *jsonld.Processor
	opts      []jsonld.ProcessorOpts
	schema    *gojsonschema.Schema
}

// NewLDPVerifier creates a linked-data-proof verifier. Signature suites are
// looked up in the registry by proof type; processor options supply the
// JSON-LD document loader.
func NewLDPVerifier(resolver vdrapi.Resolver, registry *suite.Registry,
	opts ...jsonld.ProcessorOpts) (*LDPVerifier, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(presentationSchema))
	if err != nil {
		return nil, err
	}

	return &LDPVerifier{
		resolver:  resolver,
		registry:  registry,
		processor: jsonld.Default(),
		opts:      opts,
		schema:    schema,
	}, nil
}

// CanHandle reports whether the verifier handles the given format.
func (v *LDPVerifier) CanHandle(format identitytrust.CredentialFormat) bool {
	return format == identitytrust.FormatJSONLD
}

// VerifyPresentation verifies the presentation document's own proofs and then
// every linked-data credential it presents. Presented entries that are not
// linked-data credential nodes, such as embedded compact JWT strings, do not
// survive JSON-LD expansion and are not verified.
func (v *LDPVerifier) VerifyPresentation(container *identitytrust.VerifiablePresentationContainer) error {
	var doc map[string]interface{}

	if err := json.Unmarshal(container.RawVP, &doc); err != nil {
		return identitytrust.WrapVerificationError(identitytrust.MalformedPresentation, err,
			"parsing JSON-LD presentation")
	}

	result, err := v.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return identitytrust.WrapVerificationError(identitytrust.MalformedPresentation, err,
			"validating presentation structure")
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}

		return identitytrust.NewVerificationError(identitytrust.MalformedPresentation,
			"presentation structure: %s", strings.Join(details, "; "))
	}

	if err := v.verifyProofs(doc); err != nil {
		return err
	}

	credentials, err := v.presentedCredentials(doc)
	if err != nil {
		return err
	}

	for _, credential := range credentials {
		if err := v.VerifyCredential(credential); err != nil {
			return err
		}
	}

	return nil
}

// VerifyCredential verifies the embedded proofs of a single linked-data
// credential document.
func (v *LDPVerifier) VerifyCredential(document map[string]interface{}) error {
	return v.verifyProofs(document)
}

func (v *LDPVerifier) verifyProofs(doc map[string]interface{}) error {
	proofs, err := proof.GetProofs(doc)
	if err != nil {
		return identitytrust.WrapVerificationError(identitytrust.MalformedPresentation, err,
			"reading document proofs")
	}

	for _, p := range proofs {
		if err := v.verifyProof(doc, p); err != nil {
			return err
		}
	}

	return nil
}

func (v *LDPVerifier) verifyProof(doc map[string]interface{}, p *proof.Proof) error {
	suites := v.registry.SuitesFor(p.Type)
	if len(suites) == 0 {
		return identitytrust.NewVerificationError(identitytrust.UnsupportedSuite,
			"no signature suite registered for proof type %s", p.Type)
	}

	vmID, err := p.PublicKeyID()
	if err != nil {
		return identitytrust.WrapVerificationError(identitytrust.MalformedPresentation, err,
			"reading proof verification method")
	}

	issuerDID := vmID
	if idx := strings.Index(vmID, "#"); idx >= 0 {
		issuerDID = vmID[:idx]
	}

	didDoc, err := v.resolver.Resolve(issuerDID)
	if err != nil {
		return identitytrust.WrapVerificationError(identitytrust.InvalidSignature, err,
			"resolving %s", issuerDID)
	}

	vm := didDoc.VerificationMethodByID(vmID)
	if vm == nil {
		return identitytrust.NewVerificationError(identitytrust.KeyNotFound,
			"no verification method %s in DID document %s", vmID, issuerDID)
	}

	pubKey, err := vm.PublicKey()
	if err != nil {
		return identitytrust.WrapVerificationError(identitytrust.KeyNotFound, err,
			"verification method %s", vmID)
	}

	signature, err := proofSignature(p)
	if err != nil {
		return identitytrust.WrapVerificationError(identitytrust.MalformedPresentation, err,
			"reading proof signature")
	}

	var verifyErr error

	for _, s := range suites {
		message, err := proof.CreateVerifyData(s, doc, p, v.opts...)
		if err != nil {
			return identitytrust.WrapVerificationError(identitytrust.MalformedPresentation, err,
				"building proof verify data")
		}

		if verifyErr = s.Verify(pubKey, message, signature); verifyErr == nil {
			return nil
		}
	}

	return identitytrust.WrapVerificationError(identitytrust.InvalidSignature, verifyErr,
		"proof by %s", issuerDID)
}

func proofSignature(p *proof.Proof) ([]byte, error) {
	if p.SignatureRepresentation == proof.SignatureJWS {
		return proof.GetJWTSignature(p.JWS)
	}

	return p.ProofValue, nil
}

// presentedCredentials extracts the linked-data credentials presented by the
// document. The document is JSON-LD expanded and credential graph nodes are
// collected; presented values that do not expand to credential nodes are
// dropped. Surviving nodes are compacted back against the presentation's own
// context so their proofs verify exactly as issued.
func (v *LDPVerifier) presentedCredentials(doc map[string]interface{}) ([]map[string]interface{}, error) {
	expanded, err := v.processor.Expand(doc, v.opts...)
	if err != nil {
		return nil, identitytrust.WrapVerificationError(identitytrust.MalformedPresentation, err,
			"expanding presentation")
	}

	var credentials []map[string]interface{}

	for _, node := range expanded {
		nodeMap, ok := node.(map[string]interface{})
		if !ok {
			continue
		}

		entries, ok := nodeMap[credentialsVCTerm].([]interface{})
		if !ok {
			continue
		}

		for _, entry := range entries {
			credentialNode, ok := credentialNode(entry)
			if !ok {
				continue
			}

			compacted, err := v.processor.Compact(credentialNode, doc[jsonldContext], v.opts...)
			if err != nil {
				return nil, identitytrust.WrapVerificationError(identitytrust.MalformedPresentation, err,
					"compacting presented credential")
			}

			if _, ok := compacted[jsonldContext]; !ok {
				compacted[jsonldContext] = doc[jsonldContext]
			}

			credentials = append(credentials, compacted)
		}
	}

	return credentials, nil
}

// credentialNode unwraps an expanded verifiableCredential entry into its
// credential node. Entries without a named graph holding a real node, which is
// what presented compact JWT strings expand to, are rejected.
func credentialNode(entry interface{}) (map[string]interface{}, bool) {
	entryMap, ok := entry.(map[string]interface{})
	if !ok {
		return nil, false
	}

	graph, ok := entryMap[jsonldGraph].([]interface{})
	if !ok {
		return isNode(entryMap)
	}

	for _, node := range graph {
		if credential, ok := isNode(node); ok {
			return credential, true
		}
	}

	return nil, false
}

// isNode reports whether the value is an expanded node object with content
// beyond a bare identifier reference.
func isNode(value interface{}) (map[string]interface{}, bool) {
	nodeMap, ok := value.(map[string]interface{})
	if !ok {
		return nil, false
	}

	if len(nodeMap) == 1 {
		if _, onlyID := nodeMap[jsonldID]; onlyID {
			return nil, false
		}
	}

	return nodeMap, true
}
