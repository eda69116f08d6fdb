package dto

import (
	"time"

	"github.com/crewhq/crew-backend/internal/models"
)

// OrganisationDTO is the public representation of an organisation.
type OrganisationDTO struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	UsersCount int64     `json:"users_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MemberDTO is one membership row in an organisation's member list.
type MemberDTO struct {
	User       UserDTO   `json:"user"`
	AssignedBy *uint64   `json:"assigned_by"`
	JoinedAt   time.Time `json:"joined_at"`
}

// OrganisationDetailDTO is an organisation with its member list.
type OrganisationDetailDTO struct {
	OrganisationDTO
	Members []MemberDTO `json:"members"`
}

// ToOrganisationDTO converts an organisation and its active member count.
func ToOrganisationDTO(org models.Organisation, usersCount int64) OrganisationDTO {
	return OrganisationDTO{
		ID:         org.ID,
		Name:       org.Name,
		UsersCount: usersCount,
		CreatedAt:  org.CreatedAt,
		UpdatedAt:  org.UpdatedAt,
	}
}

// ToMemberDTO converts a membership row with its user loaded.
func ToMemberDTO(member models.OrganisationUser) MemberDTO {
	return MemberDTO{
		User:       ToUserDTO(member.User),
		AssignedBy: member.AssignedBy,
		JoinedAt:   member.CreatedAt,
	}
}

// ToOrganisationDetailDTO converts an organisation with its members.
func ToOrganisationDetailDTO(org models.Organisation, members []models.OrganisationUser) OrganisationDetailDTO {
	memberDTOs := make([]MemberDTO, len(members))
	for i, m := range members {
		memberDTOs[i] = ToMemberDTO(m)
	}

	return OrganisationDetailDTO{
		OrganisationDTO: ToOrganisationDTO(org, int64(len(members))),
		Members:         memberDTOs,
	}
}
