/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package identitytrust

// JWT claim names used by the secure token service and the presentation verifiers.
const (
	IssuerClaim            = "iss"
	SubjectClaim           = "sub"
	AudienceClaim          = "aud"
	IssuedAtClaim          = "iat"
	ExpirationClaim        = "exp"
	TokenIDClaim           = "jti"
	ScopeClaim             = "scope"
	AccessTokenClaim       = "access_token"
	BearerAccessAliasClaim = "bearer_access_alias"

	// PresentationClaim holds the verifiable presentation inside a VP JWT.
	PresentationClaim = "vp"
	// CredentialClaim holds the verifiable credential inside a VC JWT.
	CredentialClaim = "vc"
)
