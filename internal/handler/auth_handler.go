package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"parking-be-svc/internal/service"
	"parking-be-svc/pkg/logger"
	"parking-be-svc/pkg/utils"
)

// LoginRequest represents the login form payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	userService service.UserService
	logger      *logger.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(userService service.UserService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// Login authenticates a user and returns a bearer token
// @Summary Log in
// @Description Validate credentials and return a bearer token with the master flag
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse{data=service.AuthResult} "Login successful"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Invalid credentials"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid login request body")
		utils.BadRequestResponse(c, "Username and password are required", err)
		return
	}

	result, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.WithField("username", req.Username).Warn("Failed login attempt")
			utils.UnauthorizedResponse(c, "Invalid credentials!")
			return
		}
		h.logger.WithError(err).Error("Failed to authenticate user")
		utils.InternalServerErrorResponse(c, "Failed to authenticate", err)
		return
	}

	utils.SuccessResponse(c, "Login successful", result)
}
