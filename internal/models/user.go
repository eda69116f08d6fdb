package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);index;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	RoleID       uint64    `gorm:"not null" json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Soft delete. Explicit fields rather than gorm.DeletedAt: reconciliation
	// reads soft-deleted rows and records who performed the delete.
	IsDeleted       bool       `gorm:"not null;default:false;index" json:"-"`
	DeletedAt       *time.Time `json:"-"`
	DeletedByUserID *uint64    `json:"-"`

	// Relations
	Role          UserRole           `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	DeletedByUser *User              `gorm:"foreignKey:DeletedByUserID" json:"-"`
	Memberships   []OrganisationUser `gorm:"foreignKey:UserID" json:"-"`
}

// RoleName returns the user's role tag. Callers must have loaded the Role
// relation first; an unloaded role yields the zero tag, which every policy
// check denies.
func (u *User) RoleName() Role {
	return u.Role.Name
}
