/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	vdrapi "github.com/dataspace-go/identitytrust-go/pkg/api/vdr"
	"github.com/dataspace-go/identitytrust-go/pkg/doc/did"
	mockvdr "github.com/dataspace-go/identitytrust-go/pkg/mock/vdr"
)

func TestResolver_Resolve(t *testing.T) {
	t.Run("caches successful resolution", func(t *testing.T) {
		next := &mockvdr.MockResolver{
			ResolveValue: &did.Doc{ID: "did:example:123"},
		}

		r := New(next)

		doc, err := r.Resolve("did:example:123")
		require.NoError(t, err)
		require.Equal(t, "did:example:123", doc.ID)

		_, err = r.Resolve("did:example:123")
		require.NoError(t, err)

		require.Len(t, next.ResolveCalls, 1)
	})

	t.Run("does not cache failures", func(t *testing.T) {
		next := &mockvdr.MockResolver{
			ResolveErr: errors.New("resolver error"),
		}

		r := New(next)

		_, err := r.Resolve("did:example:123")
		require.Error(t, err)

		_, err = r.Resolve("did:example:123")
		require.Error(t, err)

		require.Len(t, next.ResolveCalls, 2)
	})

	t.Run("expired entry hits the wrapped resolver again", func(t *testing.T) {
		next := &mockvdr.MockResolver{
			ResolveValue: &did.Doc{ID: "did:example:123"},
		}

		r := New(next, WithTTL(time.Nanosecond))

		_, err := r.Resolve("did:example:123")
		require.NoError(t, err)

		time.Sleep(time.Millisecond)

		_, err = r.Resolve("did:example:123")
		require.NoError(t, err)

		require.Len(t, next.ResolveCalls, 2)
	})

	t.Run("propagates not found", func(t *testing.T) {
		next := &mockvdr.MockResolver{
			ResolveErr: vdrapi.ErrNotFound,
		}

		r := New(next)

		_, err := r.Resolve("did:example:123")
		require.ErrorIs(t, err, vdrapi.ErrNotFound)
	})
}
