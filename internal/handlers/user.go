package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/crewhq/crew-backend/internal/apperrors"
	"github.com/crewhq/crew-backend/internal/dto"
	"github.com/crewhq/crew-backend/internal/models"
	"github.com/crewhq/crew-backend/internal/rbac"
	"github.com/crewhq/crew-backend/internal/repository"
	"github.com/crewhq/crew-backend/internal/services"
	"github.com/crewhq/crew-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// UserHandler coordinates user administration HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns active users with search and pagination.
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.List(repository.UserFilter{
		Search: c.Query("search"),
		Page:   params.Page,
		Limit:  params.Limit,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": dto.ToUserDTOs(users),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetUser returns one active user by ID.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// GetSelectedUsers returns the active users among a comma-separated id list.
func (h *UserHandler) GetSelectedUsers(c *gin.Context) {
	raw := c.Query("ids")
	if raw == "" {
		c.JSON(http.StatusOK, gin.H{"data": []dto.UserDTO{}})
		return
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			apperrors.BadRequest(c, "Invalid user ID list")
			return
		}
		ids = append(ids, id)
	}

	users, err := h.userService.GetByIDs(ids)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToUserDTOs(users)})
}

// CreateUser creates a user on behalf of an administrator.
func (h *UserHandler) CreateUser(c *gin.Context) {
	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	type CreateUserRequest struct {
		Name                 string `json:"name" binding:"required,min=2,max=100"`
		Email                string `json:"email" binding:"required,email"`
		Password             string `json:"password" binding:"required"`
		PasswordConfirmation string `json:"password_confirmation" binding:"required"`
		Role                 string `json:"role"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	targetRole := models.DefaultRole
	if req.Role != "" {
		if parsed, ok := models.ParseRole(req.Role); ok {
			targetRole = parsed
		}
	}

	if !rbac.CanCreateUser(actor.RoleName(), targetRole) {
		apperrors.Respond(c, apperrors.NewAuthorization("You are not allowed to create users with this role"))
		return
	}

	user, err := h.userService.Create(services.CreateUserInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		Role:                 req.Role,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// UpdateUser updates a user's profile.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid user ID")
		return
	}

	target, err := h.userService.Get(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if !rbac.CanUpdateUser(actor, target) {
		apperrors.Respond(c, apperrors.NewAuthorization("You are not allowed to update this user"))
		return
	}

	type UpdateUserRequest struct {
		Name                 string `json:"name" binding:"required,min=2,max=100"`
		Email                string `json:"email" binding:"required,email"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Update(id, services.UpdateUserInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser soft-deletes a user.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid user ID")
		return
	}

	target, err := h.userService.Get(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if !rbac.CanDeleteUser(actor, target) {
		apperrors.Respond(c, apperrors.NewAuthorization("You are not allowed to delete this user"))
		return
	}

	if err := h.userService.Delete(id, actor.ID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
