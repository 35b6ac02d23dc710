package handlers

import (
	"net/http"

	"social-service/internal/models"
	"social-service/internal/services"
	"social-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService *services.UserService
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Signup godoc
// @Summary Register a new user
// @Description Register a user by email and password. Signing up with a known email returns the existing user.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "User registration data"
// @Success 201 {object} response.MessageResponse{data=models.UserResponse} "User registered"
// @Success 200 {object} response.MessageResponse "User already registered"
// @Failure 400 {object} response.ErrorResponse "Bad request - invalid input data"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	user, created, err := h.userService.Signup(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if !created {
		// Known emails get no profile data back.
		response.Success(c, http.StatusOK, response.CodeSuccess, "User already registered. Try logging in.", nil)
		return
	}
	response.Success(c, http.StatusCreated, response.CodeCreated, "User Registered Successfully", user)
}

// Login godoc
// @Summary User login
// @Description Authenticate user with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "User login credentials"
// @Success 200 {object} models.TokenPair "Access and refresh tokens"
// @Failure 400 {object} response.ErrorResponse "Bad request - invalid input data"
// @Failure 401 {object} response.ErrorResponse "User not registered or wrong password"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	pair, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Refresh godoc
// @Summary Refresh tokens
// @Description Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RefreshRequest true "Refresh token"
// @Success 200 {object} models.TokenPair
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	pair, err := h.userService.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}
