/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package vdr defines the DID resolution contract consumed by the trust
// verification core. Implementations live outside the core; the core treats
// every resolved document as untrusted input and never caches results itself.
package vdr

import (
	"errors"

	"github.com/dataspace-go/identitytrust-go/pkg/doc/did"
)

// ErrNotFound is returned when a DID is not found in the directory.
var ErrNotFound = errors.New("DID does not exist")

// Resolver resolves a DID into its DID document.
type Resolver interface {
	Resolve(didID string) (*did.Doc, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(didID string) (*did.Doc, error)

// Resolve resolves a DID.
func (f ResolverFunc) Resolve(didID string) (*did.Doc, error) {
	return f(didID)
}
