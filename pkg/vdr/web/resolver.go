/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package web resolves did:web identifiers over HTTPS.
package web

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	vdrapi "github.com/dataspace-go/identitytrust-go/pkg/api/vdr"
	"github.com/dataspace-go/identitytrust-go/pkg/common/log"
	"github.com/dataspace-go/identitytrust-go/pkg/doc/did"
)

const (
	namespace   = "web"
	docPath     = "/did.json"
	wellKnown   = "/.well-known"
	maxRetries  = 3
	retryJitter = 250 * time.Millisecond
)

var logger = log.New("identitytrust/vdr-web")

// Resolver resolves did:web DIDs by fetching the DID document from the
// location derived from the method-specific identifier.
type Resolver struct {
	client  *http.Client
	useHTTP bool
}

// Opt is a Resolver option.
type Opt func(r *Resolver)

// WithHTTPClient overrides the HTTP client used for document retrieval.
func WithHTTPClient(client *http.Client) Opt {
	return func(r *Resolver) {
		r.client = client
	}
}

// WithInsecureHTTP fetches documents over plain HTTP. Test use only.
func WithInsecureHTTP() Opt {
	return func(r *Resolver) {
		r.useHTTP = true
	}
}

// New creates a did:web resolver.
func New(opts ...Opt) *Resolver {
	r := &Resolver{client: &http.Client{Timeout: 30 * time.Second}}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve fetches and parses the DID document for the given did:web DID.
func (r *Resolver) Resolve(didID string) (*did.Doc, error) {
	parsed, err := did.Parse(didID)
	if err != nil {
		return nil, fmt.Errorf("web resolver: %w", err)
	}

	if parsed.Method != namespace {
		return nil, fmt.Errorf("web resolver: unsupported method: %s", parsed.Method)
	}

	address, err := r.documentAddress(parsed.MethodSpecificID)
	if err != nil {
		return nil, err
	}

	body, err := r.fetch(address)
	if err != nil {
		return nil, err
	}

	doc, err := did.ParseDocument(body)
	if err != nil {
		return nil, fmt.Errorf("web resolver: parsing document from %s: %w", address, err)
	}

	if doc.ID != didID {
		return nil, fmt.Errorf("web resolver: document id %s does not match %s", doc.ID, didID)
	}

	return doc, nil
}

// documentAddress maps a did:web method-specific identifier onto the HTTPS
// location of the DID document. A bare domain maps to the well-known path,
// while colon-separated path segments map to a path below the domain.
func (r *Resolver) documentAddress(methodSpecificID string) (string, error) {
	segments := strings.Split(methodSpecificID, ":")

	host, err := url.QueryUnescape(segments[0])
	if err != nil {
		return "", fmt.Errorf("web resolver: invalid host %s: %w", segments[0], err)
	}

	scheme := "https"
	if r.useHTTP {
		scheme = "http"
	}

	if len(segments) == 1 {
		return scheme + "://" + host + wellKnown + docPath, nil
	}

	for i, segment := range segments[1:] {
		unescaped, err := url.QueryUnescape(segment)
		if err != nil {
			return "", fmt.Errorf("web resolver: invalid path segment %s: %w", segment, err)
		}

		segments[i+1] = unescaped
	}

	return scheme + "://" + host + "/" + strings.Join(segments[1:], "/") + docPath, nil
}

func (r *Resolver) fetch(address string) ([]byte, error) {
	var body []byte

	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(retryJitter), maxRetries)

	err := backoff.Retry(func() error {
		resp, err := r.client.Get(address) //nolint:noctx // resolver API carries no context
		if err != nil {
			logger.Debugf("fetching %s failed, retrying: %v", address, err)

			return err
		}

		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.Warnf("closing response body: %v", err)
			}
		}()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(vdrapi.ErrNotFound)
		case resp.StatusCode >= http.StatusInternalServerError:
			logger.Debugf("fetching %s returned %d, retrying", address, resp.StatusCode)

			return fmt.Errorf("web resolver: %s returned status %d", address, resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("web resolver: %s returned status %d", address, resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("web resolver: reading %s: %w", address, err))
		}

		return nil
	}, policy)
	if err != nil {
		return nil, err
	}

	return body, nil
}
