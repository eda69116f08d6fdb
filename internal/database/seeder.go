package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/crewhq/crew-backend/internal/config"
	"github.com/crewhq/crew-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed inserts the three fixed roles and, when SEED_ADMIN_PASSWORD is set and
// no active SuperAdmin exists yet, an initial SuperAdmin account.
func Seed(db *gorm.DB, cfg *config.Config) error {
	for _, name := range []models.Role{models.RoleSuperAdmin, models.RoleAdmin, models.RoleEmployee} {
		var role models.UserRole
		err := db.Where("name = ?", name).First(&role).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up role %s: %w", name, err)
		}
		if err := db.Create(&models.UserRole{Name: name}).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", name, err)
		}
	}

	if cfg.SeedAdminPassword == "" {
		return nil
	}

	var superAdminRole models.UserRole
	if err := db.Where("name = ?", models.RoleSuperAdmin).First(&superAdminRole).Error; err != nil {
		return fmt.Errorf("failed to load SuperAdmin role: %w", err)
	}

	var count int64
	err := db.Model(&models.User{}).
		Scopes(Active).
		Where("role_id = ?", superAdminRole.ID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to count super admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        cfg.SeedAdminEmail,
		PasswordHash: string(hash),
		RoleID:       superAdminRole.ID,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Printf("Seeded initial SuperAdmin %s", cfg.SeedAdminEmail)
	return nil
}
