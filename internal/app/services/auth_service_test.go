package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/pkg/auth"
)

func TestPasswordMatches(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	user := &models.User{Username: "alice", Password: hash}

	assert.True(t, passwordMatches(user, "s3cret"))
	assert.False(t, passwordMatches(user, "wrong"))
	assert.False(t, passwordMatches(user, ""))

	// The stored hash goes first; handing the plaintext to the stored-hash
	// side must never verify.
	assert.False(t, auth.CheckPassword("s3cret", hash))
}
