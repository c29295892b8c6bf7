/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package identitytrust defines the shared vocabulary of the dataspace
// identity-trust core: credential formats, claim names, the presentation
// container exchanged between participants, and the error taxonomy shared by
// token issuance and presentation verification.
package identitytrust

// CredentialFormat identifies the serialization of a verifiable presentation
// or credential.
type CredentialFormat string

const (
	// FormatJWT is the compact JWS serialization.
	FormatJWT CredentialFormat = "JWT"
	// FormatJSONLD is the JSON-LD document serialization with embedded proofs.
	FormatJSONLD CredentialFormat = "JSON_LD"
)

// VerifiablePresentationContainer carries a raw verifiable presentation
// together with the format it was received in. RawVP holds the compact JWS
// string bytes for FormatJWT and the JSON-LD document bytes for FormatJSONLD.
type VerifiablePresentationContainer struct {
	RawVP  []byte
	Format CredentialFormat
}
