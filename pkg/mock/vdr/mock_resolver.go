/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vdr

import (
	vdrapi "github.com/dataspace-go/identitytrust-go/pkg/api/vdr"
	"github.com/dataspace-go/identitytrust-go/pkg/doc/did"
)

// MockResolver is a mock DID resolver to be used only for unit tests.
type MockResolver struct {
	ResolveErr   error
	ResolveValue *did.Doc
	ResolveFunc  func(didID string) (*did.Doc, error)
	Docs         map[string]*did.Doc

	ResolveCalls []string
}

// Resolve resolves a DID document.
func (m *MockResolver) Resolve(didID string) (*did.Doc, error) {
	m.ResolveCalls = append(m.ResolveCalls, didID)

	if m.ResolveFunc != nil {
		return m.ResolveFunc(didID)
	}

	if m.ResolveErr != nil {
		return nil, m.ResolveErr
	}

	if doc, ok := m.Docs[didID]; ok {
		return doc, nil
	}

	if m.ResolveValue == nil {
		return nil, vdrapi.ErrNotFound
	}

	return m.ResolveValue, nil
}
