package repository

import (
	"time"

	"github.com/crewhq/crew-backend/internal/models"
)

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Search string
	Page   int
	Limit  int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user. If the email is held by a soft-deleted user,
	// that predecessor and its membership rows are hard-removed in the same
	// transaction before the insert. An active holder yields ErrEmailTaken.
	Create(user *models.User) error

	// FindByID finds an active user by ID with its role loaded
	FindByID(id uint64) (*models.User, error)

	// FindActiveByEmail finds an active user by email with its role loaded
	FindActiveByEmail(email string) (*models.User, error)

	// List retrieves active users with search and pagination
	List(filter UserFilter) ([]models.User, int64, error)

	// FindByIDs retrieves the active users among the given IDs
	FindByIDs(ids []uint64) ([]models.User, error)

	// Update saves changes to a user. The email follows the same collision
	// rules as Create: an active holder yields ErrEmailTaken, a soft-deleted
	// holder is hard-removed first.
	Update(user *models.User) error

	// SoftDelete marks the user deleted and soft-deletes its active
	// memberships, stamping one timestamp and actor on all rows
	SoftDelete(id, actorID uint64, at time.Time) error
}

// MemberChanges is the three-way partition a membership replacement list
// produces. The sets are disjoint; Apply writes all of them in one transaction.
type MemberChanges struct {
	// SoftDeleteIDs are membership row IDs to mark deleted
	SoftDeleteIDs []uint64
	// ReactivateIDs are soft-deleted membership row IDs to bring back
	ReactivateIDs []uint64
	// InsertUserIDs are user IDs with no membership row at all
	InsertUserIDs []uint64
}

// Empty reports whether the reconciliation has nothing to write.
func (c MemberChanges) Empty() bool {
	return len(c.SoftDeleteIDs) == 0 && len(c.ReactivateIDs) == 0 && len(c.InsertUserIDs) == 0
}

// OrganisationRepository defines the interface for organisation data access
type OrganisationRepository interface {
	// Create inserts a new organisation, hard-removing a soft-deleted
	// predecessor holding the same name (case-insensitive) together with its
	// membership rows. An active holder yields ErrNameTaken.
	Create(org *models.Organisation) error

	// FindByID finds an active organisation by ID
	FindByID(id uint64) (*models.Organisation, error)

	// List retrieves active organisations with search and pagination
	List(search string, page, limit int) ([]models.Organisation, int64, error)

	// Update saves changes to an organisation. The name follows the same
	// collision rules as Create: an active holder yields ErrNameTaken, a
	// soft-deleted holder is hard-removed first.
	Update(org *models.Organisation) error

	// SoftDelete marks the organisation deleted and cascades to every active
	// membership row with one shared timestamp and actor
	SoftDelete(id, actorID uint64, at time.Time) error

	// ListActiveMembers lists the active membership rows with users loaded
	ListActiveMembers(orgID uint64) ([]models.OrganisationUser, error)

	// ListAllMembers lists every membership row, soft-deleted included
	ListAllMembers(orgID uint64) ([]models.OrganisationUser, error)

	// ApplyMemberChanges writes a reconciliation in one transaction:
	// soft-deletes and reactivations stamp the actor and timestamp, inserts
	// record the actor as AssignedBy
	ApplyMemberChanges(orgID uint64, changes MemberChanges, actorID uint64, at time.Time) error

	// CountActiveMembers counts active membership rows of active users
	CountActiveMembers(orgID uint64) (int64, error)
}

// RoleRepository defines the interface for the role reference table
type RoleRepository interface {
	// FindByName finds a role row by its canonical tag
	FindByName(name models.Role) (*models.UserRole, error)

	// List returns all role rows
	List() ([]models.UserRole, error)
}
