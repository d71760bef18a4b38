package policy

import (
	"testing"

	"online_project/backend/models"

	"github.com/stretchr/testify/assert"
)

func staffUser(id uint) *models.User {
	u := &models.User{Role: models.RoleStaff}
	u.ID = id
	return u
}

func plainUser(id uint) *models.User {
	u := &models.User{Role: models.RoleUser}
	u.ID = id
	return u
}

func TestCanManageCatalog(t *testing.T) {
	staff := staffUser(1)
	user := plainUser(2)

	for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
		assert.True(t, CanManageCatalog(staff, action))
		assert.False(t, CanManageCatalog(user, action))
		assert.False(t, CanManageCatalog(nil, action))
	}

	assert.True(t, CanManageCatalog(user, ActionRead))
	assert.False(t, CanManageCatalog(nil, ActionRead))
}

func TestCanAccessRecord(t *testing.T) {
	staff := staffUser(1)
	owner := plainUser(2)
	other := plainUser(3)

	for _, action := range []Action{ActionRead, ActionUpdate, ActionDelete} {
		assert.True(t, CanAccessRecord(owner, owner.ID, action))
		assert.False(t, CanAccessRecord(other, owner.ID, action))
		assert.True(t, CanAccessRecord(staff, owner.ID, action))
		assert.False(t, CanAccessRecord(nil, owner.ID, action))
	}
}

func TestOwnedScope(t *testing.T) {
	assert.Equal(t, uint(0), OwnedScope(staffUser(1)))
	assert.Equal(t, uint(7), OwnedScope(plainUser(7)))
}
