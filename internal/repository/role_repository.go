package repository

import (
	"github.com/crewhq/crew-backend/internal/models"
	"gorm.io/gorm"
)

// GormRoleRepository is a GORM implementation of RoleRepository
type GormRoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &GormRoleRepository{db: db}
}

// FindByName finds a role row by its canonical tag
func (r *GormRoleRepository) FindByName(name models.Role) (*models.UserRole, error) {
	var role models.UserRole
	if err := r.db.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// List returns all role rows
func (r *GormRoleRepository) List() ([]models.UserRole, error) {
	var roles []models.UserRole
	if err := r.db.Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
