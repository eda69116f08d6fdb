package database

import (
	"gorm.io/gorm"

	"github.com/crewhq/crew-backend/internal/utils"
)

// Active filters out soft-deleted rows.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// Paginate applies page/limit pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((params.Page - 1) * params.Limit).Limit(params.Limit)
	}
}
