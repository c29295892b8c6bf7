/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ldcontext provides JSON-LD contexts embedded into the binary and a
// document loader serving them. The loader never fetches remote documents:
// context resolution during verification must not depend on the network.
package ldcontext

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/piprate/json-gold/ld"
)

// URLs of the embedded JSON-LD contexts.
const (
	CredentialsV1ContextURL = "https://www.w3.org/2018/credentials/v1"
	ExamplesV1ContextURL    = "https://www.w3.org/2018/credentials/examples/v1"
	SecurityV2ContextURL    = "https://w3id.org/security/v2"
	JWS2020V1ContextURL     = "https://w3id.org/security/suites/jws-2020/v1"
)

//go:embed contexts/*.jsonld
var contextFS embed.FS //nolint:gochecknoglobals

//nolint:gochecknoglobals
var embeddedContexts = map[string]string{
	CredentialsV1ContextURL: "contexts/credentials_v1.jsonld",
	ExamplesV1ContextURL:    "contexts/examples_v1.jsonld",
	SecurityV2ContextURL:    "contexts/security_v2.jsonld",
	JWS2020V1ContextURL:     "contexts/jws2020_v1.jsonld",
}

// DocumentLoader is a JSON-LD document loader backed by contexts embedded into
// the binary, with optional extra documents registered by the host.
type DocumentLoader struct {
	mu   sync.RWMutex
	docs map[string]*ld.RemoteDocument
}

// NewDocumentLoader returns a document loader serving the embedded contexts.
func NewDocumentLoader() (*DocumentLoader, error) {
	loader := &DocumentLoader{docs: make(map[string]*ld.RemoteDocument, len(embeddedContexts))}

	for url, path := range embeddedContexts {
		content, err := contextFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read embedded context %s: %w", path, err)
		}

		if err := loader.addBytes(url, content); err != nil {
			return nil, err
		}
	}

	return loader, nil
}

// AddDocument registers an extra context document under the given URL.
func (l *DocumentLoader) AddDocument(url string, content []byte) error {
	return l.addBytes(url, content)
}

func (l *DocumentLoader) addBytes(url string, content []byte) error {
	var document interface{}

	if err := json.Unmarshal(content, &document); err != nil {
		return fmt.Errorf("unmarshal context document %s: %w", url, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.docs[url] = &ld.RemoteDocument{
		DocumentURL: url,
		Document:    document,
	}

	return nil
}

// LoadDocument implements ld.DocumentLoader.
func (l *DocumentLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	l.mu.RLock()
	doc, ok := l.docs[u]
	l.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("context document %s is not preloaded", u)
	}

	return doc, nil
}
