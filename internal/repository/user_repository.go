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

var (
	// ErrEmailTaken is returned when an email is held by another active user.
	ErrEmailTaken = errors.New("user repository: email already taken")
	// ErrNameTaken is returned when an organisation name is held by another active organisation.
	ErrNameTaken = errors.New("organisation repository: name already taken")
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user, recycling the email if its previous holder was
// soft-deleted. The collision check, the hard removal of the predecessor, and
// the insert run in one transaction so concurrent creators cannot both reuse
// the same predecessor.
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// The collision check locks the holder rows so a concurrent creator
		// of the same email re-reads after this transaction commits instead
		// of acting on a stale snapshot of the predecessor.
		var existing models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("LOWER(email) = ?", strings.ToLower(user.Email)).
			Order("is_deleted ASC").
			First(&existing).Error
		switch {
		case err == nil:
			if !existing.IsDeleted {
				return ErrEmailTaken
			}
			// The predecessor is gone for good: its membership rows are
			// removed outright so the new identity starts clean.
			if err := hardRemoveUser(tx, existing.ID); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no collision
		default:
			return fmt.Errorf("failed to check email: %w", err)
		}

		return tx.Create(user).Error
	})
}

func hardRemoveUser(tx *gorm.DB, userID uint64) error {
	if err := tx.Unscoped().Where("user_id = ?", userID).
		Delete(&models.OrganisationUser{}).Error; err != nil {
		return fmt.Errorf("failed to remove predecessor memberships: %w", err)
	}
	if err := tx.Unscoped().Delete(&models.User{}, userID).Error; err != nil {
		return fmt.Errorf("failed to remove predecessor user: %w", err)
	}
	return nil
}

// FindByID finds an active user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Role").
		Scopes(database.Active).
		First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindActiveByEmail finds an active user by email
func (r *GormUserRepository) FindActiveByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Role").
		Scopes(database.Active).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves active users with search and pagination
func (r *GormUserRepository) List(filter UserFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{}).Scopes(database.Active)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Preload("Role").Order("id ASC")
	if filter.Page > 0 && filter.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:  filter.Page,
			Limit: filter.Limit,
		}))
	}

	var users []models.User
	if err := listQuery.Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// FindByIDs retrieves the active users among the given IDs
func (r *GormUserRepository) FindByIDs(ids []uint64) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := r.db.Preload("Role").
		Scopes(database.Active).
		Where("id IN ?", ids).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update saves changes to a user. The email follows the same collision rules
// as Create: an active holder yields ErrEmailTaken, a soft-deleted holder is
// hard-removed together with its membership rows.
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var holders []models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("LOWER(email) = ? AND id <> ?",
				strings.ToLower(user.Email), user.ID).
			Find(&holders).Error
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		for _, holder := range holders {
			if !holder.IsDeleted {
				return ErrEmailTaken
			}
			if err := hardRemoveUser(tx, holder.ID); err != nil {
				return err
			}
		}

		return tx.Save(user).Error
	})
}

// SoftDelete marks the user deleted and soft-deletes its active memberships
// with one shared timestamp and actor
func (r *GormUserRepository) SoftDelete(id, actorID uint64, at time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		stamp := map[string]interface{}{
			"is_deleted":         true,
			"deleted_at":         at,
			"deleted_by_user_id": actorID,
		}

		if err := tx.Model(&models.OrganisationUser{}).
			Where("user_id = ? AND is_deleted = ?", id, false).
			Updates(stamp).Error; err != nil {
			return fmt.Errorf("failed to soft delete memberships: %w", err)
		}

		return tx.Model(&models.User{}).
			Where("id = ?", id).
			Updates(stamp).Error
	})
}
