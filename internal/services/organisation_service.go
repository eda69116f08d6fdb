package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crewhq/crew-backend/internal/apperrors"
	"github.com/crewhq/crew-backend/internal/models"
	"github.com/crewhq/crew-backend/internal/repository"
	"gorm.io/gorm"
)

// OrganisationService governs the organisation lifecycle and the
// reconciliation of its membership list.
type OrganisationService struct {
	orgRepo  repository.OrganisationRepository
	userRepo repository.UserRepository
}

// NewOrganisationService creates a new OrganisationService.
func NewOrganisationService(orgRepo repository.OrganisationRepository, userRepo repository.UserRepository) *OrganisationService {
	return &OrganisationService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
	}
}

// CreateOrganisationInput represents parameters to create a new organisation.
type CreateOrganisationInput struct {
	Name string
}

// Create inserts a new organisation. Name uniqueness is case-insensitive
// among active organisations; a soft-deleted holder is recycled.
func (s *OrganisationService) Create(input CreateOrganisationInput) (*models.Organisation, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidation("org_name", "The organisation name is required.")
	}

	org := &models.Organisation{Name: name}
	if err := s.orgRepo.Create(org); err != nil {
		if errors.Is(err, repository.ErrNameTaken) {
			return nil, apperrors.NewValidation("org_name", "The organisation name has already been taken.")
		}
		return nil, fmt.Errorf("failed to create organisation: %w", err)
	}

	return org, nil
}

// UpdateOrganisationInput represents an organisation update. UserIDs, when
// non-nil, is the full replacement member list to reconcile against.
type UpdateOrganisationInput struct {
	Name    string
	UserIDs *[]uint64
}

// Update renames the organisation and, when a member list is supplied,
// reconciles it. The acting user stamps removals and new assignments.
func (s *OrganisationService) Update(id uint64, input UpdateOrganisationInput, actorID uint64) (*models.Organisation, error) {
	org, err := s.orgRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Organisation", id)
		}
		return nil, fmt.Errorf("failed to find organisation: %w", err)
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		org.Name = name
		if err := s.orgRepo.Update(org); err != nil {
			if errors.Is(err, repository.ErrNameTaken) {
				return nil, apperrors.NewValidation("org_name", "The organisation name has already been taken.")
			}
			return nil, fmt.Errorf("failed to update organisation: %w", err)
		}
	}

	if input.UserIDs != nil {
		if _, err := s.UpdateMembers(id, *input.UserIDs, actorID); err != nil {
			return nil, err
		}
	}

	return org, nil
}

// UpdateMembers replaces the organisation's member list. The requested ids
// are diffed against every existing membership row into three disjoint
// partitions, computed once and applied in a single transaction:
//
//   - active rows absent from the request are soft-deleted,
//   - soft-deleted rows present in the request are reactivated in place,
//   - ids with no row at all are inserted with the actor as AssignedBy.
//
// A requested id that resolves to no active user aborts the whole update.
func (s *OrganisationService) UpdateMembers(orgID uint64, userIDs []uint64, actorID uint64) ([]models.OrganisationUser, error) {
	if _, err := s.orgRepo.FindByID(orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Organisation", orgID)
		}
		return nil, fmt.Errorf("failed to find organisation: %w", err)
	}

	requested := make([]uint64, 0, len(userIDs))
	requestedSet := make(map[uint64]bool, len(userIDs))
	for _, id := range userIDs {
		if !requestedSet[id] {
			requestedSet[id] = true
			requested = append(requested, id)
		}
	}

	users, err := s.userRepo.FindByIDs(requested)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve users: %w", err)
	}
	resolved := make(map[uint64]bool, len(users))
	for _, u := range users {
		resolved[u.ID] = true
	}
	for _, id := range requested {
		if !resolved[id] {
			return nil, apperrors.NewValidation("users", fmt.Sprintf("User with ID %d does not exist.", id))
		}
	}

	rows, err := s.orgRepo.ListAllMembers(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load memberships: %w", err)
	}

	var changes repository.MemberChanges
	seen := make(map[uint64]bool, len(rows))
	for _, row := range rows {
		seen[row.UserID] = true
		switch {
		case row.IsDeleted && requestedSet[row.UserID]:
			changes.ReactivateIDs = append(changes.ReactivateIDs, row.ID)
		case !row.IsDeleted && !requestedSet[row.UserID]:
			changes.SoftDeleteIDs = append(changes.SoftDeleteIDs, row.ID)
		}
	}
	for _, id := range requested {
		if !seen[id] {
			changes.InsertUserIDs = append(changes.InsertUserIDs, id)
		}
	}

	if err := s.orgRepo.ApplyMemberChanges(orgID, changes, actorID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to apply membership changes: %w", err)
	}

	return s.orgRepo.ListActiveMembers(orgID)
}

// Delete soft-deletes the organisation and cascades to every active
// membership row with one shared timestamp and actor. An organisation that is
// absent or already soft-deleted is a not-found condition.
func (s *OrganisationService) Delete(id, actorID uint64) error {
	if _, err := s.orgRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("Organisation", id)
		}
		return fmt.Errorf("failed to find organisation: %w", err)
	}

	if err := s.orgRepo.SoftDelete(id, actorID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to delete organisation: %w", err)
	}

	return nil
}

// Get retrieves an active organisation with its active members.
func (s *OrganisationService) Get(id uint64) (*models.Organisation, []models.OrganisationUser, error) {
	org, err := s.orgRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NewNotFound("Organisation", id)
		}
		return nil, nil, fmt.Errorf("failed to find organisation: %w", err)
	}

	members, err := s.orgRepo.ListActiveMembers(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list members: %w", err)
	}

	return org, members, nil
}

// List retrieves active organisations with their active member counts.
func (s *OrganisationService) List(search string, page, limit int) ([]models.Organisation, []int64, int64, error) {
	orgs, total, err := s.orgRepo.List(search, page, limit)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to list organisations: %w", err)
	}

	counts := make([]int64, len(orgs))
	for i, org := range orgs {
		count, err := s.orgRepo.CountActiveMembers(org.ID)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("failed to count members: %w", err)
		}
		counts[i] = count
	}

	return orgs, counts, total, nil
}
