/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for name, level := range map[string]Level{
		"CRITICAL": CRITICAL,
		"ERROR":    ERROR,
		"WARNING":  WARNING,
		"INFO":     INFO,
		"DEBUG":    DEBUG,
	} {
		parsed, err := ParseLevel(name)
		require.NoError(t, err)
		require.Equal(t, level, parsed)
		require.Equal(t, name, parsed.String())
	}

	_, err := ParseLevel("TRACE")
	require.Error(t, err)
}

func TestLevels(t *testing.T) {
	const module = "identitytrust/log-test"

	require.Equal(t, INFO, GetLevel(module))
	require.True(t, IsEnabledFor(module, ERROR))
	require.False(t, IsEnabledFor(module, DEBUG))

	SetLevel(module, DEBUG)
	require.Equal(t, DEBUG, GetLevel(module))
	require.True(t, IsEnabledFor(module, DEBUG))
}

func TestNew(t *testing.T) {
	logger := New("identitytrust/log-test-new")
	require.NotNil(t, logger)

	// must not panic even before any provider is initialized
	logger.Debugf("debug %s", "message")
	logger.Infof("info %s", "message")
	logger.Warnf("warn %s", "message")
	logger.Errorf("error %s", "message")
}
