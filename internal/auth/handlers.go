package auth

import (
	"net/http"

	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// TokenService is the part of AuthService used by the HTTP handlers
type TokenService interface {
	Login(req *LoginRequest) (*TokenPairResponse, error)
	Refresh(req *RefreshRequest) (*AccessResponse, error)
}

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	service TokenService
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service TokenService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/login/
// @Summary Obtain a token pair
// @Description Exchange email and password for an access and a refresh token
// @Tags authentication
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "User credentials"
// @Success 200 {object} TokenPairResponse
// @Failure 400 {object} map[string]interface{} "Missing fields"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /login/ [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password are required"})
		return
	}

	tokens, err := h.service.Login(&req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	logger.WithContext(c).WithField("email", req.Username).Info("user logged in")
	c.JSON(http.StatusOK, tokens)
}

// Refresh handles POST /api/login/refresh/
// @Summary Refresh the access token
// @Description Exchange a refresh token for a new access token
// @Tags authentication
// @Accept json
// @Produce json
// @Param refresh body RefreshRequest true "Refresh token"
// @Success 200 {object} AccessResponse
// @Failure 400 {object} map[string]interface{} "Missing refresh token"
// @Failure 401 {object} map[string]interface{} "Invalid or expired refresh token"
// @Router /login/refresh/ [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "refresh is required"})
		return
	}

	resp, err := h.service.Refresh(&req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) respondError(c *gin.Context, err error) {
	if apperrors.IsAuthentication(err) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
		return
	}
	logger.WithContext(c).WithError(err).Error("authentication failed")
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
}
