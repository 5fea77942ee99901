package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crm-backend/internal/access"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryUsers is an in-memory UserRepository
type memoryUsers struct {
	byID map[uuid.UUID]*models.User
}

func newMemoryUsers(users ...*models.User) *memoryUsers {
	m := &memoryUsers{byID: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memoryUsers) GetByID(id uuid.UUID) (*models.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUsers) GetByEmail(email string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func testConfig() *AuthConfig {
	return &AuthConfig{
		JWTSecret:       "test-signing-key",
		Issuer:          "crm-backend",
		AccessTokenTTL:  5 * time.Minute,
		RefreshTokenTTL: time.Hour,
	}
}

func testUser(t *testing.T, email, password string, role models.Role) *models.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		Email:        email,
		PasswordHash: hash,
		Groups:       []models.Group{{Name: string(role)}},
	}
}

func TestAuthConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, testConfig().ValidateConfig())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := testConfig()
		cfg.JWTSecret = ""
		err := cfg.ValidateConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT secret is required")
	})

	t.Run("refresh shorter than access", func(t *testing.T) {
		cfg := testConfig()
		cfg.RefreshTokenTTL = time.Minute
		assert.Error(t, cfg.ValidateConfig())
	})
}

func TestLoginAndAuthenticate(t *testing.T) {
	user := testUser(t, "sales@crm.test", "correct-horse", models.RoleSales)
	service, err := NewAuthService(testConfig(), newMemoryUsers(user))
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		tokens, err := service.Login(&LoginRequest{Username: "sales@crm.test", Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.Access)
		assert.NotEmpty(t, tokens.Refresh)

		principal, err := service.Authenticate(tokens.Access)
		require.NoError(t, err)
		assert.Equal(t, user.ID, principal.UserID)
		assert.Equal(t, models.RoleSales, principal.Role)
		assert.Equal(t, "sales@crm.test", principal.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(&LoginRequest{Username: "sales@crm.test", Password: "nope"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := service.Login(&LoginRequest{Username: "ghost@crm.test", Password: "correct-horse"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		tokens, err := service.Login(&LoginRequest{Username: "sales@crm.test", Password: "correct-horse"})
		require.NoError(t, err)
		_, err = service.Authenticate(tokens.Refresh)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := service.Authenticate("invalid-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestRefresh(t *testing.T) {
	user := testUser(t, "support@crm.test", "pw-12345678", models.RoleSupport)
	repo := newMemoryUsers(user)
	service, err := NewAuthService(testConfig(), repo)
	require.NoError(t, err)

	tokens, err := service.Login(&LoginRequest{Username: user.Email, Password: "pw-12345678"})
	require.NoError(t, err)

	t.Run("refresh issues a usable access token", func(t *testing.T) {
		resp, err := service.Refresh(&RefreshRequest{Refresh: tokens.Refresh})
		require.NoError(t, err)
		principal, err := service.Authenticate(resp.Access)
		require.NoError(t, err)
		assert.Equal(t, models.RoleSupport, principal.Role)
	})

	t.Run("access token cannot refresh", func(t *testing.T) {
		_, err := service.Refresh(&RefreshRequest{Refresh: tokens.Access})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("deleted user", func(t *testing.T) {
		delete(repo.byID, user.ID)
		_, err := service.Refresh(&RefreshRequest{Refresh: tokens.Refresh})
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestJWTExpiration(t *testing.T) {
	user := testUser(t, "m@crm.test", "pw-12345678", models.RoleManager)
	service, err := NewAuthService(testConfig(), newMemoryUsers(user))
	require.NoError(t, err)

	issued := time.Now().Add(-time.Hour)
	service.now = func() time.Time { return issued }
	token, err := service.GenerateJWT(user, TokenTypeAccess)
	require.NoError(t, err)

	service.now = time.Now
	_, err = service.ValidateJWT(token, TokenTypeAccess)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-value")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-value", hash)
	assert.True(t, CheckPassword(hash, "s3cret-value"))
	assert.False(t, CheckPassword(hash, "other"))
}

type stubAuthenticator struct {
	principal *access.Principal
	err       error
}

func (s stubAuthenticator) Authenticate(string) (*access.Principal, error) {
	return s.principal, s.err
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(a Authenticator, header string) (*httptest.ResponseRecorder, *access.Principal) {
		var seen *access.Principal
		router := gin.New()
		router.GET("/x", NewAuthMiddleware(a).RequireAuth(), func(c *gin.Context) {
			seen = GetPrincipal(c)
			c.Status(http.StatusNoContent)
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		router.ServeHTTP(w, req)
		return w, seen
	}

	t.Run("missing header", func(t *testing.T) {
		w, _ := run(stubAuthenticator{}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Authentication credentials were not provided.")
	})

	t.Run("not a bearer header", func(t *testing.T) {
		w, _ := run(stubAuthenticator{}, "Basic abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		w, _ := run(stubAuthenticator{err: apperrors.ErrInvalidToken}, "Bearer abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("accepted token", func(t *testing.T) {
		p := &access.Principal{UserID: uuid.New(), Email: "a@crm.test", Role: models.RoleSales}
		w, seen := run(stubAuthenticator{principal: p}, "Bearer abc")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, p, seen)
	})
}

func TestAuthHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	user := testUser(t, "sales@crm.test", "correct-horse", models.RoleSales)
	service, err := NewAuthService(testConfig(), newMemoryUsers(user))
	require.NoError(t, err)
	handler := NewAuthHandler(service)

	router := gin.New()
	router.POST("/api/login/", handler.Login)
	router.POST("/api/login/refresh/", handler.Refresh)

	post := func(path string, body interface{}) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("login then refresh", func(t *testing.T) {
		w := post("/api/login/", map[string]string{"username": "sales@crm.test", "password": "correct-horse"})
		require.Equal(t, http.StatusOK, w.Code)

		var pair TokenPairResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
		assert.NotEmpty(t, pair.Access)

		w = post("/api/login/refresh/", map[string]string{"refresh": pair.Refresh})
		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["access"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		w := post("/api/login/", map[string]string{"username": "sales@crm.test", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "detail")
	})

	t.Run("missing fields", func(t *testing.T) {
		w := post("/api/login/", map[string]string{"username": "sales@crm.test"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
