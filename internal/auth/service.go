package auth

import (
	"errors"
	"fmt"
	"time"

	"crm-backend/internal/access"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenType distinguishes access from refresh tokens
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// UserRepository defines the user lookups needed by the auth service
type UserRepository interface {
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}

// AuthService issues and verifies JWT token pairs
type AuthService struct {
	config   *AuthConfig
	userRepo UserRepository
	now      func() time.Time
}

// AuthClaims represents JWT token claims
type AuthClaims struct {
	UserID               string    `json:"user_id" example:"1b4e28ba-2fa1-11d2-883f-0016d3cca427"`
	Email                string    `json:"email" example:"jane.doe@example.com"`
	TokenType            TokenType `json:"token_type" example:"access"`
	jwt.RegisteredClaims `swaggerignore:"true"`
}

// LoginRequest represents the credentials posted to the login endpoint
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"jane.doe@example.com"`
	Password string `json:"password" binding:"required" example:"secret-password"`
}

// TokenPairResponse is returned by a successful login
type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshRequest carries the refresh token to exchange
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// AccessResponse is returned by the refresh endpoint
type AccessResponse struct {
	Access string `json:"access"`
}

// NewAuthService creates a new authentication service
func NewAuthService(config *AuthConfig, userRepo UserRepository) (*AuthService, error) {
	if err := config.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}

	return &AuthService{
		config:   config,
		userRepo: userRepo,
		now:      time.Now,
	}, nil
}

// Login checks the credentials and issues an access/refresh pair
func (s *AuthService) Login(req *LoginRequest) (*TokenPairResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.GenerateJWT(user, TokenTypeAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.GenerateJWT(user, TokenTypeRefresh)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPairResponse{Access: accessToken, Refresh: refreshToken}, nil
}

// Refresh issues a new access token from a valid refresh token
func (s *AuthService) Refresh(req *RefreshRequest) (*AccessResponse, error) {
	claims, err := s.ValidateJWT(req.Refresh, TokenTypeRefresh)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.loadUser(claims)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.GenerateJWT(user, TokenTypeAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AccessResponse{Access: accessToken}, nil
}

// Authenticate verifies an access token and resolves the acting user.
// The user is reloaded so role changes apply to tokens already issued.
func (s *AuthService) Authenticate(tokenString string) (*access.Principal, error) {
	claims, err := s.ValidateJWT(tokenString, TokenTypeAccess)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.loadUser(claims)
	if err != nil {
		return nil, err
	}

	return &access.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role(),
	}, nil
}

func (s *AuthService) loadUser(claims *AuthClaims) (*models.User, error) {
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// GenerateJWT creates a signed token of the given type for user
func (s *AuthService) GenerateJWT(user *models.User, tokenType TokenType) (string, error) {
	ttl := s.config.AccessTokenTTL
	if tokenType == TokenTypeRefresh {
		ttl = s.config.RefreshTokenTTL
	}

	now := s.now()
	claims := &AuthClaims{
		UserID:    user.ID.String(),
		Email:     user.Email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// ValidateJWT validates and parses a JWT token of the expected type
func (s *AuthService) ValidateJWT(tokenString string, expected TokenType) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(s.config.Issuer))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != expected {
		return nil, fmt.Errorf("token has type %q, expected %q", claims.TokenType, expected)
	}

	return claims, nil
}

// HashPassword hashes a clear text password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
