package handlers

import (
	"net/http"

	"github.com/crewhq/crew-backend/internal/apperrors"
	"github.com/crewhq/crew-backend/internal/dto"
	"github.com/crewhq/crew-backend/internal/repository"
	"github.com/gin-gonic/gin"
)

// RoleHandler serves the fixed role reference table.
type RoleHandler struct {
	roleRepo repository.RoleRepository
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(roleRepo repository.RoleRepository) *RoleHandler {
	return &RoleHandler{roleRepo: roleRepo}
}

// ListRoles returns the three fixed roles.
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleRepo.List()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	data := make([]dto.RoleDTO, len(roles))
	for i, role := range roles {
		data[i] = dto.ToRoleDTO(role)
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}
