package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentUser(t *testing.T) {
	s := NewMemory()
	require.NoError(t, SetUser(s, User{Type: "Employee", Email: "test@test.com"}))

	raw, ok := s.Get(UserKey)
	require.True(t, ok)
	assert.JSONEq(t, `{"type":"Employee","email":"test@test.com"}`, raw)

	u, err := CurrentUser(s)
	require.NoError(t, err)
	assert.Equal(t, "test@test.com", u.Email)
	assert.Equal(t, "Employee", u.Type)
}

func TestCurrentUserMissing(t *testing.T) {
	_, err := CurrentUser(NewMemory())
	assert.True(t, errors.Is(err, ErrNoUser))
}

func TestCurrentUserMalformed(t *testing.T) {
	s := NewMemory()
	s.Set(UserKey, "{not json")

	_, err := CurrentUser(s)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoUser))
}
