package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	digest, err := h.Hash("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "secret1", digest)

	assert.True(t, h.Verify("secret1", digest))
	assert.False(t, h.Verify("secret2", digest))
}

func TestPasswordHasher_FreshSaltEachCall(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	d1, err := h.Hash("same-password")
	require.NoError(t, err)
	d2, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2)
	assert.True(t, h.Verify("same-password", d1))
	assert.True(t, h.Verify("same-password", d2))
}

func TestPasswordHasher_MalformedDigest(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	assert.False(t, h.Verify("secret1", ""))
	assert.False(t, h.Verify("secret1", "not-a-bcrypt-digest"))
}

func TestNewPasswordHasher_ClampsInvalidCost(t *testing.T) {
	h := NewPasswordHasher(99)

	digest, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.True(t, h.Verify("secret1", digest))
}
