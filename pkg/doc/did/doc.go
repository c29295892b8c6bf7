/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package did provides the decentralized identifier document model consumed by
// the trust verification core. Documents are produced by resolver collaborators
// and are treated as untrusted input: key material is decoded defensively and
// nothing in a document is assumed beyond the shape validated here.
package did

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/btcsuite/btcutil/base58"
	jose "github.com/go-jose/go-jose/v3"
	"github.com/multiformats/go-multibase"
	"github.com/xeipuuv/gojsonschema"

	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/verifier"
)

// ContextV1 is the JSON-LD context of a DID document.
const ContextV1 = "https://www.w3.org/ns/did/v1"

// DID is parsed according to the generic syntax: https://w3c.github.io/did-core/#generic-did-syntax.
type DID struct {
	Scheme           string // Scheme is always "did"
	Method           string // Method is the specific DID method
	MethodSpecificID string // MethodSpecificID is the unique ID computed or assigned by the DID method
}

// String returns a string representation of this DID.
func (d *DID) String() string {
	return fmt.Sprintf("%s:%s:%s", d.Scheme, d.Method, d.MethodSpecificID)
}

var didRegex = regexp.MustCompile(`^did:[a-z0-9]+:(:+|[:a-zA-Z0-9-_.%]+)*[a-zA-Z0-9-_.%]+$`) //nolint:gochecknoglobals

// Parse parses the string according to the generic DID syntax.
// See https://w3c.github.io/did-core/#generic-did-syntax.
func Parse(did string) (*DID, error) {
	if !didRegex.MatchString(did) {
		return nil, fmt.Errorf("invalid did: %s", did)
	}

	parts := strings.SplitN(did, ":", 3)

	return &DID{
		Scheme:           "did",
		Method:           parts[1],
		MethodSpecificID: parts[2],
	}, nil
}

// DIDURL holds a DID URL: the DID part plus an optional fragment naming a
// verification method inside the document.
type DIDURL struct {
	DID
	Fragment string
}

// ParseDIDURL parses a DID URL of the form did:method:id(#fragment)?.
func ParseDIDURL(didURL string) (*DIDURL, error) {
	split := strings.SplitN(didURL, "#", 2)

	parsed, err := Parse(split[0])
	if err != nil {
		return nil, err
	}

	result := &DIDURL{DID: *parsed}
	if len(split) == 2 {
		result.Fragment = split[1]
	}

	return result, nil
}

// Doc is a DID document as returned by a resolver.
type Doc struct {
	Context            []string
	ID                 string
	VerificationMethod []VerificationMethod
	Service            []Service
	Created            *time.Time
}

// Service describes a service endpoint of a DID document.
type Service struct {
	ID              string `json:"id,omitempty"`
	Type            string `json:"type,omitempty"`
	ServiceEndpoint string `json:"serviceEndpoint,omitempty"`
}

// VerificationMethod holds public key material of a DID document.
// The Value field contains raw key bytes; JWK is set when the document carried
// the key in JSON Web Key form.
type VerificationMethod struct {
	ID         string
	Type       string
	Controller string

	Value []byte

	jsonWebKey *jose.JSONWebKey
}

// NewVerificationMethodFromBytes creates a verification method from raw public key bytes.
func NewVerificationMethodFromBytes(id, keyType, controller string, value []byte) *VerificationMethod {
	return &VerificationMethod{
		ID:         id,
		Type:       keyType,
		Controller: controller,
		Value:      value,
	}
}

// NewVerificationMethodFromJWK creates a verification method from a JSON Web Key.
func NewVerificationMethodFromJWK(id, keyType, controller string, key *jose.JSONWebKey) *VerificationMethod {
	return &VerificationMethod{
		ID:         id,
		Type:       keyType,
		Controller: controller,
		jsonWebKey: key,
	}
}

// JSONWebKey returns the JSON Web Key of the verification method, or nil if the
// key material was not provided in JWK form.
func (vm *VerificationMethod) JSONWebKey() *jose.JSONWebKey {
	return vm.jsonWebKey
}

// PublicKey converts the verification method into key material usable by
// signature verification. When the document carried a JWK, the JWK is passed
// through and raw bytes are left to the verifier to derive.
func (vm *VerificationMethod) PublicKey() (*verifier.PublicKey, error) {
	pk := &verifier.PublicKey{Type: vm.Type, Value: vm.Value, JWK: vm.jsonWebKey}

	if len(pk.Value) == 0 && pk.JWK == nil {
		return nil, errors.New("verification method has no key material")
	}

	return pk, nil
}

// VerificationMethodByID finds a verification method matching the given identifier.
// The identifier may be absolute ("did:ex:123#key-1") or a bare fragment ("key-1" or "#key-1").
func (doc *Doc) VerificationMethodByID(id string) *VerificationMethod {
	fragment := func(s string) string {
		s = strings.TrimPrefix(s, doc.ID)
		return strings.TrimPrefix(s, "#")
	}

	for i := range doc.VerificationMethod {
		vm := &doc.VerificationMethod[i]

		if vm.ID == id || fragment(vm.ID) == fragment(id) {
			return vm
		}
	}

	return nil
}

type rawDoc struct {
	Context            interface{}             `json:"@context,omitempty"`
	ID                 string                  `json:"id,omitempty"`
	VerificationMethod []rawVerificationMethod `json:"verificationMethod,omitempty"`
	Service            []Service               `json:"service,omitempty"`
	Created            *time.Time              `json:"created,omitempty"`
}

type rawVerificationMethod struct {
	ID                 string           `json:"id,omitempty"`
	Type               string           `json:"type,omitempty"`
	Controller         string           `json:"controller,omitempty"`
	PublicKeyJwk       *jose.JSONWebKey `json:"publicKeyJwk,omitempty"`
	PublicKeyBase58    string           `json:"publicKeyBase58,omitempty"`
	PublicKeyMultibase string           `json:"publicKeyMultibase,omitempty"`
	PublicKeyHex       string           `json:"publicKeyHex,omitempty"`
}

var docSchemaLoader = gojsonschema.NewStringLoader(docSchema) //nolint:gochecknoglobals

const docSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id"],
  "properties": {
    "id": { "type": "string", "pattern": "^did:" },
    "verificationMethod": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "type"],
        "properties": {
          "id": { "type": "string" },
          "type": { "type": "string" }
        }
      }
    }
  }
}`

// ParseDocument parses a DID document from its JSON representation.
func ParseDocument(data []byte) (*Doc, error) {
	result, err := gojsonschema.Validate(docSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validate DID document: %w", err)
	}

	if !result.Valid() {
		return nil, fmt.Errorf("invalid DID document: %s", schemaErrors(result))
	}

	raw := &rawDoc{}
	if err := json.Unmarshal(data, raw); err != nil {
		return nil, fmt.Errorf("unmarshal DID document: %w", err)
	}

	doc := &Doc{
		ID:      raw.ID,
		Context: contextSlice(raw.Context),
		Service: raw.Service,
		Created: raw.Created,
	}

	for _, rawVM := range raw.VerificationMethod {
		vm, err := parseVerificationMethod(rawVM)
		if err != nil {
			return nil, fmt.Errorf("verification method %s: %w", rawVM.ID, err)
		}

		doc.VerificationMethod = append(doc.VerificationMethod, *vm)
	}

	return doc, nil
}

// JSONBytes serializes the document to JSON.
func (doc *Doc) JSONBytes() ([]byte, error) {
	raw := &rawDoc{
		Context: doc.Context,
		ID:      doc.ID,
		Service: doc.Service,
		Created: doc.Created,
	}

	if len(raw.Context.([]string)) == 0 {
		raw.Context = []string{ContextV1}
	}

	for i := range doc.VerificationMethod {
		vm := &doc.VerificationMethod[i]

		rawVM := rawVerificationMethod{
			ID:         vm.ID,
			Type:       vm.Type,
			Controller: vm.Controller,
		}

		if vm.jsonWebKey != nil {
			rawVM.PublicKeyJwk = vm.jsonWebKey
		} else {
			rawVM.PublicKeyBase58 = base58.Encode(vm.Value)
		}

		raw.VerificationMethod = append(raw.VerificationMethod, rawVM)
	}

	return json.Marshal(raw)
}

func parseVerificationMethod(raw rawVerificationMethod) (*VerificationMethod, error) {
	vm := &VerificationMethod{
		ID:         raw.ID,
		Type:       raw.Type,
		Controller: raw.Controller,
	}

	switch {
	case raw.PublicKeyJwk != nil:
		if !raw.PublicKeyJwk.Valid() {
			return nil, errors.New("invalid JWK")
		}

		vm.jsonWebKey = raw.PublicKeyJwk
	case raw.PublicKeyBase58 != "":
		vm.Value = base58.Decode(raw.PublicKeyBase58)
	case raw.PublicKeyMultibase != "":
		_, value, err := multibase.Decode(raw.PublicKeyMultibase)
		if err != nil {
			return nil, fmt.Errorf("decode multibase key: %w", err)
		}

		vm.Value = value
	case raw.PublicKeyHex != "":
		value, err := hex.DecodeString(raw.PublicKeyHex)
		if err != nil {
			return nil, fmt.Errorf("decode hex key: %w", err)
		}

		vm.Value = value
	default:
		return nil, errors.New("public key encoding not supported")
	}

	return vm, nil
}

func contextSlice(context interface{}) []string {
	switch ctx := context.(type) {
	case string:
		return []string{ctx}
	case []interface{}:
		var result []string

		for _, item := range ctx {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}

		return result
	}

	return nil
}

func schemaErrors(result *gojsonschema.Result) string {
	var sb strings.Builder

	for _, desc := range result.Errors() {
		sb.WriteString(desc.String())
		sb.WriteString("; ")
	}

	return strings.TrimSuffix(sb.String(), "; ")
}
