/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package identitytrust

import "fmt"

// ClaimError indicates that token issuance was refused because a required
// input claim is absent.
type ClaimError struct {
	Claim string
}

// NewClaimError creates a ClaimError naming the missing claim.
func NewClaimError(claim string) *ClaimError {
	return &ClaimError{Claim: claim}
}

func (e *ClaimError) Error() string {
	return fmt.Sprintf("Missing %s in the input claims", e.Claim)
}

// Code classifies presentation verification failures.
type Code string

const (
	// MalformedPresentation is returned when the input cannot be parsed as a
	// presentation of the claimed format.
	MalformedPresentation Code = "MALFORMED_PRESENTATION"
	// UnsupportedFormat is returned when no verifier is configured for the
	// presentation's format.
	UnsupportedFormat Code = "UNSUPPORTED_FORMAT"
	// UnsupportedSuite is returned when no signature suite is registered for a
	// proof type.
	UnsupportedSuite Code = "UNSUPPORTED_SUITE"
	// KeyNotFound is returned when the issuer's DID document resolves but holds
	// no matching verification method.
	KeyNotFound Code = "KEY_NOT_FOUND"
	// InvalidSignature is returned when a signature check fails, including when
	// the issuer's DID cannot be resolved at all.
	InvalidSignature Code = "INVALID_SIGNATURE"
)

// VerificationError is the failure result of presentation verification. Err,
// when set, carries the underlying cause and participates in error chains.
type VerificationError struct {
	Code   Code
	Detail string
	Err    error
}

// NewVerificationError creates a VerificationError with a formatted detail message.
func NewVerificationError(code Code, format string, args ...interface{}) *VerificationError {
	return &VerificationError{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// WrapVerificationError creates a VerificationError wrapping a cause.
func WrapVerificationError(code Code, err error, format string, args ...interface{}) *VerificationError {
	return &VerificationError{Code: code, Detail: fmt.Sprintf(format, args...), Err: err}
}

func (e *VerificationError) Error() string {
	msg := string(e.Code)

	if e.Detail != "" {
		msg += ": " + e.Detail
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is match two VerificationErrors by code, so tests and audit
// paths can check a category without reproducing detail text.
func (e *VerificationError) Is(target error) bool {
	t, ok := target.(*VerificationError)
	if !ok {
		return false
	}

	return e.Code == t.Code && (t.Detail == "" || t.Detail == e.Detail)
}
