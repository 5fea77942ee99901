package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"crm-backend/internal/access"
	"crm-backend/internal/api/handlers"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/mocks"
	"crm-backend/internal/repository"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUserHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockUserServiceInterface(ctrl)
	handler := handlers.NewUserHandler(mockService)
	manager := &access.Principal{UserID: uuid.New(), Email: "boss@crm.test", Role: models.RoleManager}

	router := gin.New()
	api := router.Group("/api", withPrincipal(manager))
	api.POST("/signup/", handler.Signup)
	api.PATCH("/password_update/", handler.UpdatePassword)
	api.GET("/users/", handler.ListUsers)
	api.GET("/users/me/", handler.GetCurrentUser)
	api.GET("/users/:id/", handler.GetUser)
	api.PATCH("/users/:id/", handler.PatchUser)
	api.DELETE("/users/:id/", handler.DeleteUser)

	t.Run("me", func(t *testing.T) {
		mockService.EXPECT().Me(manager).Return(service.UserDetail{ID: manager.UserID, Email: manager.Email, Role: "manager"}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/me/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "manager", decode(t, w)["role"])
	})

	t.Run("list by role", func(t *testing.T) {
		mockService.EXPECT().
			List(manager, repository.UserFilter{Role: models.RoleSupport}, 1).
			Return(&service.ListResult{Count: 1, Page: 1, PageSize: 10, Results: []interface{}{service.UserListItem{Role: "support"}}}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/?role=support", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("signup", func(t *testing.T) {
		mockService.EXPECT().
			Signup(manager, &service.SignupInput{Email: "new@crm.test", Password: "longenough", Password2: "longenough", Role: "sales"}).
			Return(service.UserDetail{Email: "new@crm.test", Role: "sales"}, nil)

		body := map[string]string{"email": "new@crm.test", "password": "longenough", "password2": "longenough", "role": "sales"}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/signup/", jsonBody(t, body)))

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "sales", decode(t, w)["role"])
	})

	t.Run("password mismatch", func(t *testing.T) {
		mockService.EXPECT().Signup(manager, gomock.Any()).Return(nil, apperrors.NewValidationError("password", "Password fields didn't match."))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/signup/", jsonBody(t, map[string]string{})))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("password update", func(t *testing.T) {
		mockService.EXPECT().
			UpdatePassword(manager, &service.PasswordUpdateInput{OldPassword: "old-one-1", NewPassword: "new-one-1"}).
			Return(nil)

		body := map[string]string{"old_password": "old-one-1", "new_password": "new-one-1"}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/password_update/", jsonBody(t, body)))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("patch role", func(t *testing.T) {
		id := uuid.New()
		role := "support"
		mockService.EXPECT().Update(manager, id, &service.UserInput{Role: &role}).Return(service.UserDetail{ID: id, Role: role}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/users/"+id.String()+"/", jsonBody(t, map[string]string{"role": role})))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("delete unknown user", func(t *testing.T) {
		id := uuid.New()
		mockService.EXPECT().Destroy(manager, id).Return(apperrors.ErrUserNotFound)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/users/"+id.String()+"/", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("get user", func(t *testing.T) {
		id := uuid.New()
		mockService.EXPECT().Retrieve(manager, id).Return(service.UserDetail{ID: id}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/"+id.String()+"/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
