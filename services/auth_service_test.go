package services

import (
	"famlist/repositories"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repositories.NewUserRepository(db))

	user, err := svc.Signup("Alice", " Alice@Example.COM ", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Nil(t, user.FamilyID)

	// 大文字小文字は同一視される
	logged, err := svc.Login("ALICE@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, err = svc.Login("alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrUnknownUser)

	_, err = svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repositories.NewUserRepository(db))

	_, err := svc.Signup("Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Signup("Other Alice", "ALICE@example.com", "password456")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestResolveUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repositories.NewUserRepository(db))

	user, err := svc.Signup("Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	resolved, err := svc.ResolveUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, resolved.Email)

	_, err = svc.ResolveUser("")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.ResolveUser("no-such-user")
	assert.ErrorIs(t, err, ErrUnknownUser)
}
