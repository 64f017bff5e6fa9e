package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	digest, err := HashPassword("demo123")
	require.NoError(t, err)
	assert.NotEqual(t, "demo123", digest)
	assert.True(t, CheckPassword("demo123", digest))
	assert.False(t, CheckPassword("demo124", digest))
	assert.False(t, CheckPassword("demo123", "not-a-digest"))
}
