package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, NormalizeRole(" Admin "))
	assert.Equal(t, RoleModerator, NormalizeRole("moderator"))
	assert.Equal(t, RoleUser, NormalizeRole("user"))
	assert.Equal(t, RoleUser, NormalizeRole("superuser"))
	assert.Equal(t, RoleUser, NormalizeRole(""))
}

func TestHasModeratorAccess(t *testing.T) {
	assert.True(t, HasModeratorAccess("admin"))
	assert.True(t, HasModeratorAccess("moderator"))
	assert.False(t, HasModeratorAccess("user"))
	assert.False(t, HasModeratorAccess("editor"))
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := NewBcryptHasher(4) // minimum cost keeps the test fast

	hash, err := h.Hash("pw1")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", hash)

	assert.NoError(t, h.Compare(hash, "pw1"))
	assert.Error(t, h.Compare(hash, "pw2"))
}
