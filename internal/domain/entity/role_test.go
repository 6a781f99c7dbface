package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleAtLeast(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		role    Role
		minimum Role
		want    bool
	}{
		{name: "admin satisfies admin", role: RoleAdmin, minimum: RoleAdmin, want: true},
		{name: "admin satisfies employee", role: RoleAdmin, minimum: RoleEmployee, want: true},
		{name: "admin satisfies client", role: RoleAdmin, minimum: RoleClient, want: true},
		{name: "employee satisfies client", role: RoleEmployee, minimum: RoleClient, want: true},
		{name: "employee does not satisfy admin", role: RoleEmployee, minimum: RoleAdmin, want: false},
		{name: "client does not satisfy employee", role: RoleClient, minimum: RoleEmployee, want: false},
		{name: "unknown role satisfies nothing", role: Role("superuser"), minimum: RoleClient, want: false},
		{name: "unknown minimum is never satisfied", role: RoleAdmin, minimum: Role("root"), want: false},
		{name: "empty role satisfies nothing", role: Role(""), minimum: RoleClient, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.role.AtLeast(tt.minimum))
		})
	}
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	role, ok := ParseRole("employee")
	assert.True(t, ok)
	assert.Equal(t, RoleEmployee, role)

	_, ok = ParseRole("owner")
	assert.False(t, ok)

	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestRoleLevelOrdering(t *testing.T) {
	t.Parallel()

	assert.Less(t, RoleClient.Level(), RoleEmployee.Level())
	assert.Less(t, RoleEmployee.Level(), RoleAdmin.Level())
	assert.Zero(t, Role("ghost").Level())
}
