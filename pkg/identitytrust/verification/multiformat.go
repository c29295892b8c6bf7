/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package verification implements verifiable presentation verification for the
// JWT and linked-data-proof serializations, including presentations that embed
// credentials of the other format.
package verification

import (
	"github.com/dataspace-go/identitytrust-go/pkg/identitytrust"
)

// PresentationVerifier verifies presentations of the formats it declares via
// CanHandle. A nil error means the presentation and every credential inside it
// verified successfully.
type PresentationVerifier interface {
	CanHandle(format identitytrust.CredentialFormat) bool
	VerifyPresentation(container *identitytrust.VerifiablePresentationContainer) error
}

// CredentialVerifier verifies a single linked-data credential document. It is
// the delegation point for credentials embedded in a presentation of another
// format.
type CredentialVerifier interface {
	VerifyCredential(document map[string]interface{}) error
}

// MultiFormatPresentationVerifier dispatches presentation verification to the
// first registered verifier that can handle the presentation's format.
type MultiFormatPresentationVerifier struct {
	ownDID    string
	verifiers []PresentationVerifier
}

// NewMultiFormatPresentationVerifier creates a dispatcher for the given
// verifiers, tried in order. ownDID identifies the participant operating this
// verifier.
func NewMultiFormatPresentationVerifier(ownDID string, verifiers ...PresentationVerifier) *MultiFormatPresentationVerifier {
	return &MultiFormatPresentationVerifier{ownDID: ownDID, verifiers: verifiers}
}

// OwnDID returns the DID of the participant operating this verifier.
func (v *MultiFormatPresentationVerifier) OwnDID() string {
	return v.ownDID
}

// VerifyPresentation verifies the presentation with the first verifier that
// handles its format. A format no verifier handles is a configuration error
// reported as UnsupportedFormat.
func (v *MultiFormatPresentationVerifier) VerifyPresentation(
	container *identitytrust.VerifiablePresentationContainer) error {
	for _, verifier := range v.verifiers {
		if verifier.CanHandle(container.Format) {
			return verifier.VerifyPresentation(container)
		}
	}

	return identitytrust.NewVerificationError(identitytrust.UnsupportedFormat,
		"no verifier configured for format %s", container.Format)
}
