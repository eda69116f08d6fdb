package dto

import (
	"time"

	"github.com/crewhq/crew-backend/internal/models"
)

// UserDTO is the public representation of a user.
type UserDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToUserDTO converts a user model to its DTO.
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role.Name.String(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToUserDTOs converts a slice of user models.
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos
}

// RoleDTO is the public representation of a role row.
type RoleDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ToRoleDTO converts a role row to its DTO.
func ToRoleDTO(role models.UserRole) RoleDTO {
	return RoleDTO{
		ID:   role.ID,
		Name: role.Name.String(),
	}
}
