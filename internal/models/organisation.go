package models

import "time"

type Organisation struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);index;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	IsDeleted       bool       `gorm:"not null;default:false;index" json:"-"`
	DeletedAt       *time.Time `json:"-"`
	DeletedByUserID *uint64    `json:"-"`

	// Relations
	Members []OrganisationUser `gorm:"foreignKey:OrganisationID" json:"members,omitempty"`
}
