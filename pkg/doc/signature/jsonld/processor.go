/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jsonld provides JSON-LD processing of linked-data documents:
// canonicalization for proof creation and verification, compaction, and
// semantic expansion. The algorithm internals are delegated to json-gold.
package jsonld

import (
	"fmt"
	"strings"

	"github.com/piprate/json-gold/ld"
)

const (
	format           = "application/n-quads"
	defaultAlgorithm = "URDNA2015"
)

// Processor is a JSON-LD processor.
type Processor struct {
	algorithm string
}

// NewProcessor returns a new JSON-LD processor with the given RDF dataset normalization algorithm.
func NewProcessor(algorithm string) *Processor {
	if algorithm == "" {
		return Default()
	}

	return &Processor{algorithm}
}

// Default returns a new JSON-LD processor with the default RDF dataset normalization algorithm.
func Default() *Processor {
	return &Processor{defaultAlgorithm}
}

// ProcessorOpts holds options for JSON-LD operations on docs (like canonicalization or compacting).
type ProcessorOpts func(opts *processorOpts)

type processorOpts struct {
	documentLoader ld.DocumentLoader
	externalCtx    []string
}

// WithDocumentLoader option is for passing a custom JSON-LD document loader.
func WithDocumentLoader(loader ld.DocumentLoader) ProcessorOpts {
	return func(opts *processorOpts) {
		opts.documentLoader = loader
	}
}

// WithExternalContext option is for defining external context when doing JSON-LD operations.
func WithExternalContext(context ...string) ProcessorOpts {
	return func(opts *processorOpts) {
		opts.externalCtx = context
	}
}

// GetCanonicalDocument returns the canonized document of the given JSON-LD.
func (p *Processor) GetCanonicalDocument(doc map[string]interface{}, opts ...ProcessorOpts) ([]byte, error) {
	options := p.newOptions(opts)
	options.Algorithm = p.algorithm
	options.Format = format
	options.ProduceGeneralizedRdf = true

	if externalCtx := appliedOptions(opts).externalCtx; len(externalCtx) > 0 {
		doc = copyMap(doc)
		doc["@context"] = AppendExternalContexts(doc["@context"], externalCtx...)
	}

	view, err := ld.NewJsonLdProcessor().Normalize(doc, options)
	if err != nil {
		return nil, fmt.Errorf("normalize JSON-LD document: %w", err)
	}

	result, ok := view.(string)
	if !ok {
		return nil, fmt.Errorf("normalized view is not a string")
	}

	return []byte(result), nil
}

// Compact compacts the given JSON-LD input against the given context.
func (p *Processor) Compact(input map[string]interface{}, context interface{},
	opts ...ProcessorOpts) (map[string]interface{}, error) {
	options := p.newOptions(opts)

	return ld.NewJsonLdProcessor().Compact(input, context, options)
}

// Expand performs the JSON-LD expansion algorithm on the given document.
// Values that do not expand to linked-data nodes (e.g. strings in places where
// a node object is expected) are dropped by the algorithm, not reported.
func (p *Processor) Expand(doc map[string]interface{}, opts ...ProcessorOpts) ([]interface{}, error) {
	options := p.newOptions(opts)

	expanded, err := ld.NewJsonLdProcessor().Expand(doc, options)
	if err != nil {
		return nil, fmt.Errorf("expand JSON-LD document: %w", err)
	}

	return expanded, nil
}

func (p *Processor) newOptions(opts []ProcessorOpts) *ld.JsonLdOptions {
	options := ld.NewJsonLdOptions("")
	options.ProcessingMode = ld.JsonLd_1_1

	applied := appliedOptions(opts)
	if applied.documentLoader != nil {
		options.DocumentLoader = applied.documentLoader
	}

	return options
}

func appliedOptions(opts []ProcessorOpts) *processorOpts {
	procOptions := &processorOpts{}

	for _, opt := range opts {
		opt(procOptions)
	}

	return procOptions
}

// AppendExternalContexts appends external context(s) to a JSON-LD context which
// can already have one or several contexts.
func AppendExternalContexts(context interface{}, extraContexts ...string) []interface{} {
	var contexts []interface{}

	switch c := context.(type) {
	case string:
		contexts = append(contexts, c)
	case []interface{}:
		contexts = append(contexts, c...)
	}

	for _, ctx := range extraContexts {
		if !containsContext(contexts, ctx) {
			contexts = append(contexts, ctx)
		}
	}

	return contexts
}

func containsContext(contexts []interface{}, context string) bool {
	for _, ctx := range contexts {
		if s, ok := ctx.(string); ok && strings.EqualFold(s, context) {
			return true
		}
	}

	return false
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	mCopy := make(map[string]interface{}, len(m))
	for k, v := range m {
		mCopy[k] = v
	}

	return mCopy
}
