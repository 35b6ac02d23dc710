package handlers

import (
	"net/http"

	"social-service/internal/models"
	"social-service/internal/services"
	"social-service/internal/utils"
	"social-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Get the current user's profile information
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "", err.Error())
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateName godoc
// @Summary Update display name
// @Description Set the current user's display name
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateNameRequest true "New name"
// @Success 200 {object} response.MessageResponse{data=models.UserResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/name [post]
func (h *UserHandler) UpdateName(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "", err.Error())
		return
	}

	var req models.UpdateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	user, err := h.userService.UpdateName(c.Request.Context(), userID, req.Name)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, response.CodeSuccess, "User Name Updated Successfully.", user)
}

// SearchUsers godoc
// @Summary Search users
// @Description Find users by exact email (case-insensitive) or by name substring
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email query string false "Exact email"
// @Param name query string false "Name fragment"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} models.Page[models.UserResponse]
// @Failure 400 {object} response.ErrorResponse
// @Router /users/search [get]
func (h *UserHandler) SearchUsers(c *gin.Context) {
	var query models.SearchUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeBindError(c, err)
		return
	}
	var page models.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		writeBindError(c, err)
		return
	}

	users, err := h.userService.SearchUsers(c.Request.Context(), query.Email, query.Name, page)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
