package handlers

import (
	"net/http"
	"strconv"

	"github.com/crewhq/crew-backend/internal/apperrors"
	"github.com/crewhq/crew-backend/internal/dto"
	"github.com/crewhq/crew-backend/internal/rbac"
	"github.com/crewhq/crew-backend/internal/services"
	"github.com/crewhq/crew-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// OrganisationHandler coordinates organisation HTTP handlers.
type OrganisationHandler struct {
	orgService  *services.OrganisationService
	userService *services.UserService
}

// NewOrganisationHandler creates a new OrganisationHandler.
func NewOrganisationHandler(orgService *services.OrganisationService, userService *services.UserService) *OrganisationHandler {
	return &OrganisationHandler{
		orgService:  orgService,
		userService: userService,
	}
}

// ListOrganisations returns active organisations with search and pagination.
func (h *OrganisationHandler) ListOrganisations(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orgs, counts, total, err := h.orgService.List(c.Query("search"), params.Page, params.Limit)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	data := make([]dto.OrganisationDTO, len(orgs))
	for i, org := range orgs {
		data[i] = dto.ToOrganisationDTO(org, counts[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetOrganisation returns one active organisation with its members.
func (h *OrganisationHandler) GetOrganisation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid organisation ID")
		return
	}

	org, members, err := h.orgService.Get(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganisationDetailDTO(*org, members))
}

// CreateOrganisation creates a new organisation.
func (h *OrganisationHandler) CreateOrganisation(c *gin.Context) {
	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	if !rbac.CanCreateOrganisation(actor.RoleName()) {
		apperrors.Respond(c, apperrors.NewAuthorization("You are not allowed to create organisations"))
		return
	}

	type CreateOrganisationRequest struct {
		Name string `json:"name" binding:"required,max=100"`
	}

	var req CreateOrganisationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.Create(services.CreateOrganisationInput{Name: req.Name})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganisationDTO(*org, 0))
}

// UpdateOrganisation renames an organisation and, when user_ids is present,
// replaces its member list.
func (h *OrganisationHandler) UpdateOrganisation(c *gin.Context) {
	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	if !rbac.CanUpdateOrganisation(actor.RoleName()) {
		apperrors.Respond(c, apperrors.NewAuthorization("You are not allowed to update organisations"))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid organisation ID")
		return
	}

	type UpdateOrganisationRequest struct {
		Name    string    `json:"name" binding:"required,max=100"`
		UserIDs *[]uint64 `json:"user_ids"`
	}

	var req UpdateOrganisationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.Update(id, services.UpdateOrganisationInput{
		Name:    req.Name,
		UserIDs: req.UserIDs,
	}, actor.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	_, members, err := h.orgService.Get(org.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganisationDetailDTO(*org, members))
}

// DeleteOrganisation soft-deletes an organisation and its memberships.
func (h *OrganisationHandler) DeleteOrganisation(c *gin.Context) {
	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	if !rbac.CanDeleteOrganisation(actor.RoleName()) {
		apperrors.Respond(c, apperrors.NewAuthorization("You are not allowed to delete organisations"))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid organisation ID")
		return
	}

	if err := h.orgService.Delete(id, actor.ID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
