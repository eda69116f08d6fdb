package models

import "time"

// OrganisationUser links one user to one organisation. Each row carries its
// own soft-delete state: removing a member soft-deletes the row, and adding
// the same member back reactivates it instead of inserting a duplicate.
type OrganisationUser struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	OrganisationID uint64    `gorm:"not null;index" json:"organisation_id"`
	UserID         uint64    `gorm:"not null;index" json:"user_id"`
	AssignedBy     *uint64   `json:"assigned_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	IsDeleted       bool       `gorm:"not null;default:false;index" json:"-"`
	DeletedAt       *time.Time `json:"-"`
	DeletedByUserID *uint64    `json:"-"`

	// Relations
	Organisation   Organisation `gorm:"foreignKey:OrganisationID" json:"organisation,omitempty"`
	User           User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AssignedByUser *User        `gorm:"foreignKey:AssignedBy" json:"-"`
	DeletedByUser  *User        `gorm:"foreignKey:DeletedByUserID" json:"-"`
}

func (OrganisationUser) TableName() string {
	return "organisation_users"
}
