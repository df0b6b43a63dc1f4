package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_AtLeast(t *testing.T) {
	assert.True(t, RoleOwner.AtLeast(RoleAdmin))
	assert.True(t, RoleOwner.AtLeast(RoleOwner))
	assert.True(t, RoleAdmin.AtLeast(RoleContributor))
	assert.True(t, RoleContributor.AtLeast(RoleViewer))
	assert.True(t, RoleViewer.AtLeast(RoleViewer))

	assert.False(t, RoleAdmin.AtLeast(RoleOwner))
	assert.False(t, RoleContributor.AtLeast(RoleAdmin))
	assert.False(t, RoleViewer.AtLeast(RoleContributor))

	// Unknown roles rank below everything.
	assert.False(t, Role("SUPERUSER").AtLeast(RoleViewer))
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleOwner, RoleAdmin, RoleContributor, RoleViewer} {
		assert.True(t, r.Valid())
	}
	assert.False(t, Role("owner").Valid())
	assert.False(t, Role("").Valid())
}
