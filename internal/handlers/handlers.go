package handlers

import (
	"github.com/crewhq/crew-backend/internal/apperrors"
	"github.com/crewhq/crew-backend/internal/middleware"
	"github.com/crewhq/crew-backend/internal/models"
	"github.com/crewhq/crew-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// currentUser resolves the acting user, role included, from the session
// context. Policy checks always receive this resolved user, never a raw id.
func currentUser(c *gin.Context, userService *services.UserService) (*models.User, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return nil, false
	}

	user, err := userService.Get(userID)
	if err != nil {
		apperrors.Unauthorized(c, "Current user not found")
		return nil, false
	}

	return user, true
}
