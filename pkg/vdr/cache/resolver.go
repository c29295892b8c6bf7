/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package cache decorates a DID resolver with an expiring in-memory cache.
// The verification core itself never caches resolution results; hosts that
// want caching wrap their resolver with this decorator.
package cache

import (
	"time"

	"github.com/bluele/gcache"

	vdrapi "github.com/dataspace-go/identitytrust-go/pkg/api/vdr"
	"github.com/dataspace-go/identitytrust-go/pkg/doc/did"
)

const (
	defaultSize = 100
	defaultTTL  = 5 * time.Minute
)

// Resolver caches successful DID resolutions of the wrapped resolver.
// Failures, including vdr.ErrNotFound, are never cached.
type Resolver struct {
	next  vdrapi.Resolver
	cache gcache.Cache
	ttl   time.Duration
}

// Opt is a Resolver option.
type Opt func(r *Resolver)

// WithTTL overrides how long a resolved document is served from the cache.
func WithTTL(ttl time.Duration) Opt {
	return func(r *Resolver) {
		r.ttl = ttl
	}
}

// New creates a caching resolver around the given resolver.
func New(next vdrapi.Resolver, opts ...Opt) *Resolver {
	r := &Resolver{
		next: next,
		ttl:  defaultTTL,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.cache = gcache.New(defaultSize).ARC().Build()

	return r
}

// Resolve resolves a DID document, serving repeated lookups from the cache.
func (r *Resolver) Resolve(didID string) (*did.Doc, error) {
	if v, err := r.cache.Get(didID); err == nil {
		return v.(*did.Doc), nil
	}

	doc, err := r.next.Resolve(didID)
	if err != nil {
		return nil, err
	}

	if err := r.cache.SetWithExpire(didID, doc, r.ttl); err != nil {
		return doc, nil //nolint:nilerr // a cache write failure must not fail resolution
	}

	return doc, nil
}
