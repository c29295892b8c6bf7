/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package suite

import (
	"sync"

	"github.com/dataspace-go/identitytrust-go/pkg/doc/signature/verifier"
)

// Registry maps proof types to the signature suites registered for them.
// An empty result for a proof type means the type is not supported by
// this configuration, which callers report as such rather than as a
// forged-credential condition.
type Registry struct {
	mu     sync.RWMutex
	suites []verifier.SignatureSuite
}

// NewRegistry creates a new suite registry with the given suites.
func NewRegistry(suites ...verifier.SignatureSuite) *Registry {
	return &Registry{suites: suites}
}

// Register adds a signature suite to the registry.
func (r *Registry) Register(s verifier.SignatureSuite) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.suites = append(r.suites, s)
}

// SuitesFor returns all registered suites accepting the given proof type.
func (r *Registry) SuitesFor(proofType string) []verifier.SignatureSuite {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []verifier.SignatureSuite

	for _, s := range r.suites {
		if s.Accept(proofType) {
			result = append(result, s)
		}
	}

	return result
}
