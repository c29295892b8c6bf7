/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package identitytrust implements the decentralized-identity trust core of a
// dataspace participant: self-issued token minting and multi-format
// verifiable presentation verification.
//
// Packages for end developer usage
//
// pkg/identitytrust/sts: the embedded secure token service. It mints
// self-issued identity tokens and, for scoped requests, a nested access token
// the counterparty presents back.
//
// pkg/identitytrust/verification: presentation verification for the JWT and
// JSON-LD serializations, dispatched by format through
// MultiFormatPresentationVerifier. Credentials inside a presentation are
// verified against their own issuers, resolved through the pkg/api/vdr
// Resolver the host supplies.
//
// pkg/vdr/web and pkg/vdr/cache: a did:web resolver and a caching resolver
// decorator for hosts that do not bring their own resolution
// infrastructure.
//
// pkg/controller/rest/sts: a thin HTTP layer exposing token issuance.
package identitytrust
