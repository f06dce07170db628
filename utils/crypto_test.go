package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealer(t *testing.T) {
	s := NewSealer("secret")

	sealed, err := s.Seal("bearer-token")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "bearer-token")

	again, err := s.Seal("bearer-token")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "every seal uses a fresh nonce")

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "bearer-token", opened)
}

func TestSealer_OpenRejects(t *testing.T) {
	sealed, err := NewSealer("secret").Seal("bearer-token")
	require.NoError(t, err)

	_, err = NewSealer("other").Open(sealed)
	assert.Error(t, err)

	_, err = NewSealer("secret").Open("!!!")
	assert.Error(t, err)

	_, err = NewSealer("secret").Open("AAAA")
	assert.Error(t, err)
}
