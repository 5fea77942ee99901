package handlers

import (
	"net/http"

	"crm-backend/internal/auth"
	"crm-backend/internal/logger"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles HTTP requests for staff users
type UserHandler struct {
	service service.UserServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(service service.UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// ListUsers handles GET /api/users/
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param role query string false "Role (sales, support, manager)"
// @Success 200 {object} PageResponse
// @Failure 400 {object} ErrorResponse "Unknown role"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/ [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}

	result, err := h.service.List(auth.GetPrincipal(c), userFilter(c), page)
	if err != nil {
		respondError(c, err)
		return
	}

	respondPage(c, result)
}

// GetUser handles GET /api/users/:id/
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Success 200 {object} service.UserDetail
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/ [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.service.Retrieve(auth.GetPrincipal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetCurrentUser handles GET /api/users/me/
// @Summary Get the acting user
// @Tags users
// @Produce json
// @Success 200 {object} service.UserDetail
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me/ [get]
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.service.Me(auth.GetPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Signup handles POST /api/signup/
// @Summary Create a user
// @Description Managers only. The user joins the group named by role
// @Tags users
// @Accept json
// @Produce json
// @Param user body service.SignupInput true "User data"
// @Success 201 {object} service.UserDetail
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /signup/ [post]
func (h *UserHandler) Signup(c *gin.Context) {
	var in service.SignupInput
	if !bindBody(c, &in) {
		return
	}

	user, err := h.service.Signup(auth.GetPrincipal(c), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.WithContext(c).WithFields(map[string]interface{}{"new_user": in.Email, "role": in.Role}).Info("user signed up")
	c.JSON(http.StatusCreated, user)
}

// PatchUser handles PATCH /api/users/:id/
// @Summary Partially update a user
// @Description Managers only. A new role replaces the user's groups
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Param user body service.UserInput true "Fields to change"
// @Success 200 {object} service.UserDetail
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/ [patch]
func (h *UserHandler) PatchUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in service.UserInput
	if !bindBody(c, &in) {
		return
	}

	user, err := h.service.Update(auth.GetPrincipal(c), id, &in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/users/:id/
// @Summary Delete a user
// @Description Managers only
// @Tags users
// @Param id path string true "User ID (UUID)"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/ [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Destroy(auth.GetPrincipal(c), id); err != nil {
		respondError(c, err)
		return
	}

	logger.WithContext(c).WithField("user_id", id).Info("user deleted")
	c.Status(http.StatusNoContent)
}

// UpdatePassword handles PATCH /api/password_update/
// @Summary Change the acting user's password
// @Tags users
// @Accept json
// @Produce json
// @Param passwords body service.PasswordUpdateInput true "Old and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /password_update/ [patch]
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var in service.PasswordUpdateInput
	if !bindBody(c, &in) {
		return
	}

	if err := h.service.UpdatePassword(auth.GetPrincipal(c), &in); err != nil {
		respondError(c, err)
		return
	}

	logger.WithContext(c).Info("password updated")
	c.JSON(http.StatusOK, gin.H{"detail": "Password updated successfully"})
}
