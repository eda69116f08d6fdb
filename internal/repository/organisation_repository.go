package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crewhq/crew-backend/internal/database"
	"github.com/crewhq/crew-backend/internal/models"
	"github.com/crewhq/crew-backend/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrganisationRepository is a GORM implementation of OrganisationRepository
type GormOrganisationRepository struct {
	db *gorm.DB
}

// NewOrganisationRepository creates a new OrganisationRepository
func NewOrganisationRepository(db *gorm.DB) OrganisationRepository {
	return &GormOrganisationRepository{db: db}
}

// Create inserts a new organisation, recycling the name if its previous
// holder was soft-deleted. Check, removal, and insert share one transaction.
func (r *GormOrganisationRepository) Create(org *models.Organisation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Lock the holder rows so a concurrent creator of the same name
		// re-reads after this transaction commits.
		var existing models.Organisation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("LOWER(name) = ?", strings.ToLower(org.Name)).
			Order("is_deleted ASC").
			First(&existing).Error
		switch {
		case err == nil:
			if !existing.IsDeleted {
				return ErrNameTaken
			}
			if err := hardRemoveOrganisation(tx, existing.ID); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no collision
		default:
			return fmt.Errorf("failed to check organisation name: %w", err)
		}

		return tx.Create(org).Error
	})
}

func hardRemoveOrganisation(tx *gorm.DB, orgID uint64) error {
	if err := tx.Unscoped().Where("organisation_id = ?", orgID).
		Delete(&models.OrganisationUser{}).Error; err != nil {
		return fmt.Errorf("failed to remove predecessor memberships: %w", err)
	}
	if err := tx.Unscoped().Delete(&models.Organisation{}, orgID).Error; err != nil {
		return fmt.Errorf("failed to remove predecessor organisation: %w", err)
	}
	return nil
}

// FindByID finds an active organisation by ID
func (r *GormOrganisationRepository) FindByID(id uint64) (*models.Organisation, error) {
	var org models.Organisation
	if err := r.db.Scopes(database.Active).First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// List retrieves active organisations with search and pagination
func (r *GormOrganisationRepository) List(search string, page, limit int) ([]models.Organisation, int64, error) {
	query := r.db.Model(&models.Organisation{}).Scopes(database.Active)

	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("id ASC")
	if page > 0 && limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:  page,
			Limit: limit,
		}))
	}

	var orgs []models.Organisation
	if err := listQuery.Find(&orgs).Error; err != nil {
		return nil, 0, err
	}

	return orgs, total, nil
}

// Update saves changes to an organisation. The name follows the same collision
// rules as Create: an active holder yields ErrNameTaken, a soft-deleted holder
// is hard-removed together with its membership rows.
func (r *GormOrganisationRepository) Update(org *models.Organisation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var holders []models.Organisation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("LOWER(name) = ? AND id <> ?",
				strings.ToLower(org.Name), org.ID).
			Find(&holders).Error
		if err != nil {
			return fmt.Errorf("failed to check organisation name: %w", err)
		}
		for _, holder := range holders {
			if !holder.IsDeleted {
				return ErrNameTaken
			}
			if err := hardRemoveOrganisation(tx, holder.ID); err != nil {
				return err
			}
		}

		return tx.Save(org).Error
	})
}

// SoftDelete marks the organisation deleted and cascades to its active
// membership rows with one shared timestamp and actor
func (r *GormOrganisationRepository) SoftDelete(id, actorID uint64, at time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		stamp := map[string]interface{}{
			"is_deleted":         true,
			"deleted_at":         at,
			"deleted_by_user_id": actorID,
		}

		if err := tx.Model(&models.OrganisationUser{}).
			Where("organisation_id = ? AND is_deleted = ?", id, false).
			Updates(stamp).Error; err != nil {
			return fmt.Errorf("failed to soft delete memberships: %w", err)
		}

		return tx.Model(&models.Organisation{}).
			Where("id = ?", id).
			Updates(stamp).Error
	})
}

// ListActiveMembers lists the active membership rows with users loaded
func (r *GormOrganisationRepository) ListActiveMembers(orgID uint64) ([]models.OrganisationUser, error) {
	var members []models.OrganisationUser
	if err := r.db.Preload("User").Preload("User.Role").
		Scopes(database.Active).
		Where("organisation_id = ?", orgID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListAllMembers lists every membership row of the organisation, soft-deleted included
func (r *GormOrganisationRepository) ListAllMembers(orgID uint64) ([]models.OrganisationUser, error) {
	var members []models.OrganisationUser
	if err := r.db.Where("organisation_id = ?", orgID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ApplyMemberChanges writes the three partitions of a membership
// reconciliation in one transaction
func (r *GormOrganisationRepository) ApplyMemberChanges(orgID uint64, changes MemberChanges, actorID uint64, at time.Time) error {
	if changes.Empty() {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(changes.SoftDeleteIDs) > 0 {
			err := tx.Model(&models.OrganisationUser{}).
				Where("id IN ?", changes.SoftDeleteIDs).
				Updates(map[string]interface{}{
					"is_deleted":         true,
					"deleted_at":         at,
					"deleted_by_user_id": actorID,
				}).Error
			if err != nil {
				return fmt.Errorf("failed to soft delete memberships: %w", err)
			}
		}

		if len(changes.ReactivateIDs) > 0 {
			err := tx.Model(&models.OrganisationUser{}).
				Where("id IN ?", changes.ReactivateIDs).
				Updates(map[string]interface{}{
					"is_deleted":         false,
					"deleted_at":         nil,
					"deleted_by_user_id": nil,
					"updated_at":         at,
				}).Error
			if err != nil {
				return fmt.Errorf("failed to reactivate memberships: %w", err)
			}
		}

		if len(changes.InsertUserIDs) > 0 {
			rows := make([]models.OrganisationUser, len(changes.InsertUserIDs))
			for i, userID := range changes.InsertUserIDs {
				rows[i] = models.OrganisationUser{
					OrganisationID: orgID,
					UserID:         userID,
					AssignedBy:     &actorID,
				}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to insert memberships: %w", err)
			}
		}

		return nil
	})
}

// CountActiveMembers counts active membership rows whose user is active too
func (r *GormOrganisationRepository) CountActiveMembers(orgID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrganisationUser{}).
		Joins("JOIN users ON users.id = organisation_users.user_id").
		Where("organisation_users.organisation_id = ?", orgID).
		Where("organisation_users.is_deleted = ? AND users.is_deleted = ?", false, false).
		Count(&count).Error
	return count, err
}
