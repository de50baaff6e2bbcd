package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"eventhub/internal/shared/middleware"
	"eventhub/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListUsers handles GET /api/v1/users
func (c *Controller) ListUsers(ctx *gin.Context) {
	list, err := c.service.ListUsers(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list users", nil, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Users retrieved successfully", list, nil)
}

// DeleteUser handles DELETE /api/v1/users/:id
func (c *Controller) DeleteUser(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid user ID", nil, nil)
		return
	}
	actorID, _ := middleware.CurrentUserID(ctx)

	removed, err := c.service.DeleteUser(ctx.Request.Context(), id, actorID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "User not found", nil, nil)
		case errors.Is(err, ErrCannotDeleteSelf):
			response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete user", nil, nil)
		}
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "User deleted successfully", gin.H{"bookings_removed": removed}, nil)
}
