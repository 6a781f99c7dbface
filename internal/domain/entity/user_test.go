package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserProfileHasRole(t *testing.T) {
	t.Parallel()

	employee := &UserProfile{UID: "u1", Role: RoleEmployee}

	assert.True(t, employee.HasRole(RoleEmployee))
	// Exact match only; a higher role does not satisfy a lower one here.
	assert.False(t, employee.HasRole(RoleClient))
	assert.False(t, employee.HasRole(RoleAdmin))

	var missing *UserProfile
	assert.False(t, missing.HasRole(RoleClient))
}

func TestUserProfileIsAdmin(t *testing.T) {
	t.Parallel()

	assert.True(t, (&UserProfile{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&UserProfile{Role: RoleEmployee}).IsAdmin())

	var missing *UserProfile
	assert.False(t, missing.IsAdmin())
}

func TestNewUserProfileStartsAsClient(t *testing.T) {
	t.Parallel()

	profile := NewUserProfile("u1", "ana@example.com", "Ana")

	assert.Equal(t, RoleClient, profile.Role)
	assert.False(t, profile.CreatedAt.IsZero())
}
