// Package policy holds the authorization rules in one place so the page and
// API route families cannot drift apart.
package policy

import "online_project/backend/models"

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// CanManageCatalog reports whether the caller may mutate catalog entities
// (courses, modules, materials). Reads are open to any authenticated caller.
func CanManageCatalog(caller *models.User, action Action) bool {
	if action == ActionRead {
		return caller != nil
	}
	return caller != nil && caller.IsStaff()
}

// CanAccessRecord reports whether the caller may act on a user-owned record
// (enrollment, progress, favorite, survey). Owners have full access to their
// own rows, staff to everything.
func CanAccessRecord(caller *models.User, ownerID uint, action Action) bool {
	if caller == nil {
		return false
	}
	if caller.IsStaff() {
		return true
	}
	return caller.ID == ownerID
}

// OwnedScope returns the user id to filter list queries by: 0 means no filter
// (staff sees all rows). Callers are always authenticated here.
func OwnedScope(caller *models.User) uint {
	if caller.IsStaff() {
		return 0
	}
	return caller.ID
}
