package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_RoundTrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	digest, err := h.HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, h.VerifyPassword("s3cret-pass", digest))
	assert.False(t, h.VerifyPassword("s3cret-pasS", digest))
	assert.False(t, h.VerifyPassword("", digest))
}

func TestHasher_SaltsEachHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.HashPassword("same")
	require.NoError(t, err)
	second, err := h.HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.VerifyPassword("same", first))
	assert.True(t, h.VerifyPassword("same", second))
}

func TestHasher_TruncatesTo72Bytes(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	prefix := strings.Repeat("a", 72)

	digest, err := h.HashPassword(prefix + "tail-one")
	require.NoError(t, err)

	assert.True(t, h.VerifyPassword(prefix+"tail-two", digest))
	assert.True(t, h.VerifyPassword(prefix, digest))
	assert.False(t, h.VerifyPassword(prefix[:71], digest))
}

func TestHasher_MultiByteInputIsTruncatedNotRejected(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	long := strings.Repeat("é", 50) // 100 bytes

	digest, err := h.HashPassword(long)
	require.NoError(t, err)
	assert.True(t, h.VerifyPassword(long, digest))
}

func TestHasher_MalformedDigest(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	assert.False(t, h.VerifyPassword("anything", ""))
	assert.False(t, h.VerifyPassword("anything", "not-a-bcrypt-digest"))
	assert.False(t, h.VerifyPassword("anything", "$2a$04$short"))
}

func TestNewHasher_DefaultCost(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewHasher(0).Cost())
	assert.Equal(t, DefaultBcryptCost, NewHasher(99).Cost())

	digest, err := NewHasher(0).HashPassword("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, 12, cost)
}
