package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Format(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	parts := strings.Split(hash, ":")
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], saltLength*2)
	assert.Len(t, parts[1], keyLength*2)
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPassword(h1, "same-password"))
	assert.True(t, CheckPassword(h2, "same-password"))
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong horse"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestCheckPassword_MalformedStored(t *testing.T) {
	for _, stored := range []string{
		"",
		"no-separator",
		"zz:not-hex",
		"abcd:zz",
		":",
	} {
		assert.False(t, CheckPassword(stored, "anything"), "stored=%q", stored)
	}
}
