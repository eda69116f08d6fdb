// Package rbac is the centralized evaluator for role-based access policies.
// Every function is a pure decision over already-resolved roles: no I/O, no
// errors, deny by default. Callers resolve the acting user (including its
// role) before asking; an unresolved role is the zero tag and is denied.
package rbac

import "github.com/crewhq/crew-backend/internal/models"

// CanCreateUser reports whether actorRole may create a user with targetRole.
// SuperAdmin creates anyone; Admin creates only Employees.
func CanCreateUser(actorRole, targetRole models.Role) bool {
	switch actorRole {
	case models.RoleSuperAdmin:
		return true
	case models.RoleAdmin:
		return targetRole == models.RoleEmployee
	default:
		return false
	}
}

// CanUpdateUser reports whether actor may update target. Updating yourself is
// always allowed, whatever your role; otherwise the create matrix applies.
func CanUpdateUser(actor, target *models.User) bool {
	if actor.ID == target.ID {
		return true
	}
	return CanCreateUser(actor.RoleName(), target.RoleName())
}

// CanDeleteUser reports whether actor may delete target. Deleting yourself is
// always forbidden, even for SuperAdmin; otherwise the create matrix applies.
func CanDeleteUser(actor, target *models.User) bool {
	if actor.ID == target.ID {
		return false
	}
	return CanCreateUser(actor.RoleName(), target.RoleName())
}

// CanCreateOrganisation reports whether actorRole may create organisations.
func CanCreateOrganisation(actorRole models.Role) bool {
	return actorRole.AtLeast(models.RoleAdmin)
}

// CanUpdateOrganisation reports whether actorRole may update organisations.
func CanUpdateOrganisation(actorRole models.Role) bool {
	return actorRole.AtLeast(models.RoleAdmin)
}

// CanDeleteOrganisation reports whether actorRole may delete organisations.
func CanDeleteOrganisation(actorRole models.Role) bool {
	return actorRole.AtLeast(models.RoleAdmin)
}
