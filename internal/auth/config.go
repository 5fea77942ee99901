package auth

import (
	"fmt"
	"time"

	"crm-backend/internal/config"
)

// AuthConfig holds the token issuance settings
type AuthConfig struct {
	JWTSecret       string
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// NewAuthConfig derives the auth settings from the application configuration
func NewAuthConfig(cfg *config.Config) *AuthConfig {
	return &AuthConfig{
		JWTSecret:       cfg.JWTSecret,
		Issuer:          "crm-backend",
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// ValidateConfig validates the authentication configuration
func (c *AuthConfig) ValidateConfig() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("access token lifetime must be positive")
	}

	if c.RefreshTokenTTL < c.AccessTokenTTL {
		return fmt.Errorf("refresh token lifetime must not be shorter than the access token lifetime")
	}

	return nil
}
