package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"parking-be-svc/internal/service"
	"parking-be-svc/pkg/logger"
	"parking-be-svc/pkg/utils"
)

// CreateUserRequest represents the add-user form payload
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest represents the change-password payload
type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// UserHandler handles user management HTTP requests
type UserHandler struct {
	userService service.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(userService service.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers returns every username with its master marker
// @Summary List users
// @Description Get all usernames. Master only; passwords are never returned.
// @Tags users
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]models.UserInfo} "Users"
// @Failure 403 {object} utils.APIResponse "Master privileges required"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list users")
		utils.InternalServerErrorResponse(c, "Failed to list users", err)
		return
	}

	utils.SuccessResponse(c, "Users retrieved successfully", users)
}

// CreateUser adds a new user
// @Summary Add a user
// @Description Create a new login. Master only.
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "New user"
// @Success 201 {object} utils.APIResponse "User created"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 403 {object} utils.APIResponse "Master privileges required"
// @Failure 409 {object} utils.APIResponse "User already exists"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid create user request body")
		utils.BadRequestResponse(c, "Username and password are required", err)
		return
	}

	if err := h.userService.CreateUser(req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrUserExists) {
			utils.ConflictResponse(c, "User already exists")
			return
		}
		h.logger.WithError(err).Error("Failed to create user")
		utils.InternalServerErrorResponse(c, "Failed to create user", err)
		return
	}

	utils.CreatedResponse(c, "User created successfully", nil)
}

// ChangePassword overwrites a user's password
// @Summary Change a user's password
// @Description Overwrite the password of an existing user. Master only.
// @Tags users
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body ChangePasswordRequest true "New password"
// @Success 200 {object} utils.APIResponse "Password changed"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 403 {object} utils.APIResponse "Master privileges required"
// @Failure 404 {object} utils.APIResponse "User not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/users/{username}/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	username := c.Param("username")

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid change password request body")
		utils.BadRequestResponse(c, "New password is required", err)
		return
	}

	if err := h.userService.ChangePassword(username, req.Password); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		h.logger.WithError(err).WithField("username", username).Error("Failed to change password")
		utils.InternalServerErrorResponse(c, "Failed to change password", err)
		return
	}

	utils.SuccessResponse(c, "Password changed successfully", nil)
}

// DeleteUser removes a user
// @Summary Delete a user
// @Description Delete a login. Master only; the master identity itself can never be deleted.
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} utils.APIResponse "User deleted"
// @Failure 403 {object} utils.APIResponse "Master privileges required or master user protected"
// @Failure 404 {object} utils.APIResponse "User not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/users/{username} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	username := c.Param("username")

	if err := h.userService.DeleteUser(username); err != nil {
		if errors.Is(err, service.ErrMasterProtected) {
			h.logger.WithField("username", username).Warn("Attempt to delete master user rejected")
			utils.ForbiddenResponse(c, "The master user cannot be deleted")
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		h.logger.WithError(err).WithField("username", username).Error("Failed to delete user")
		utils.InternalServerErrorResponse(c, "Failed to delete user", err)
		return
	}

	utils.SuccessResponse(c, "User deleted successfully", nil)
}
