package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"crm-backend/internal/access"
	"crm-backend/internal/api/handlers"
	"crm-backend/internal/auth"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/mocks"
	"crm-backend/internal/repository"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// withPrincipal stands in for the auth middleware
func withPrincipal(p *access.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p != nil {
			c.Set(auth.PrincipalKey, p)
		}
		c.Next()
	}
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// CustomerHandlerTestSuite defines the test suite for CustomerHandler
type CustomerHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockCustomerServiceInterface
	handler     *handlers.CustomerHandler
	principal   *access.Principal
	router      *gin.Engine
}

// SetupTest sets up the test suite
func (suite *CustomerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockCustomerServiceInterface(suite.ctrl)
	suite.handler = handlers.NewCustomerHandler(suite.mockService)
	suite.principal = &access.Principal{UserID: uuid.New(), Email: "sales@crm.test", Role: models.RoleSales}
	suite.router = gin.New()
	suite.setupRoutes()
}

// TearDownTest cleans up after each test
func (suite *CustomerHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// setupRoutes sets up the routes for testing
func (suite *CustomerHandlerTestSuite) setupRoutes() {
	api := suite.router.Group("/api", withPrincipal(suite.principal))
	api.GET("/customers/", suite.handler.ListCustomers)
	api.POST("/customers/", suite.handler.CreateCustomer)
	api.GET("/customers/:id/", suite.handler.GetCustomer)
	api.PUT("/customers/:id/", suite.handler.UpdateCustomer)
	api.PATCH("/customers/:id/", suite.handler.PatchCustomer)
	api.DELETE("/customers/:id/", suite.handler.DeleteCustomer)

	anon := suite.router.Group("/anon")
	anon.GET("/customers/", suite.handler.ListCustomers)
}

func (suite *CustomerHandlerTestSuite) TestListCustomers() {
	suite.T().Run("middle page links", func(t *testing.T) {
		suite.mockService.EXPECT().
			List(suite.principal, repository.CustomerFilter{Company: "Acme"}, 2).
			Return(&service.ListResult{Count: 25, Page: 2, PageSize: 10, Results: []interface{}{service.CustomerListItem{Company: "Acme"}}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/customers/?company=Acme&page=2", nil)
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, float64(25), body["count"])
		assert.Equal(t, "http://example.com/api/customers/?company=Acme&page=3", body["next"])
		assert.Equal(t, "http://example.com/api/customers/?company=Acme", body["previous"])
		assert.Len(t, body["results"], 1)
	})

	suite.T().Run("last page", func(t *testing.T) {
		suite.mockService.EXPECT().
			List(suite.principal, repository.CustomerFilter{}, 1).
			Return(&service.ListResult{Count: 2, Page: 1, PageSize: 10}, nil)

		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/customers/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Nil(t, body["next"])
		assert.Nil(t, body["previous"])
		assert.Equal(t, []interface{}{}, body["results"])
	})

	suite.T().Run("invalid page", func(t *testing.T) {
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/customers/?page=abc", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Invalid page.", decode(t, w)["detail"])
	})

	suite.T().Run("invalid sales contact filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/customers/?sales_contact=bob", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w)["errors"], "sales_contact")
	})

	suite.T().Run("anonymous", func(t *testing.T) {
		suite.mockService.EXPECT().
			List((*access.Principal)(nil), repository.CustomerFilter{}, 1).
			Return(nil, apperrors.ErrAuthenticationRequired)

		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/anon/customers/", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Authentication credentials were not provided.", decode(t, w)["detail"])
		assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
	})
}

func (suite *CustomerHandlerTestSuite) TestCreateCustomer() {
	suite.T().Run("created", func(t *testing.T) {
		id := uuid.New()
		suite.mockService.EXPECT().
			Create(suite.principal, gomock.Any()).
			DoAndReturn(func(_ *access.Principal, in *service.CustomerInput) (interface{}, error) {
				assert.Equal(t, "Acme", *in.Company)
				return service.CustomerCreated{ID: id, Company: *in.Company, SalesContact: &suite.principal.UserID}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/api/customers/", jsonBody(t, map[string]string{"company": "Acme"}))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, id.String(), body["id"])
		assert.Equal(t, suite.principal.UserID.String(), body["sales_contact"])
	})

	suite.T().Run("duplicate email", func(t *testing.T) {
		suite.mockService.EXPECT().
			Create(suite.principal, gomock.Any()).
			Return(nil, apperrors.NewValidationError("email", "email already associated with an existing customer"))

		req := httptest.NewRequest(http.MethodPost, "/api/customers/", jsonBody(t, map[string]string{"email": "a@b.c"}))
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Invalid input.", body["detail"])
		assert.Equal(t, map[string]interface{}{"email": []interface{}{"email already associated with an existing customer"}}, body["errors"])
	})

	suite.T().Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/customers/", bytes.NewReader([]byte(`{"company":`)))
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w)["detail"], "JSON parse error")
	})
}

func (suite *CustomerHandlerTestSuite) TestUpdateCustomer() {
	id := uuid.New()

	suite.T().Run("put is a full update", func(t *testing.T) {
		suite.mockService.EXPECT().Update(suite.principal, id, gomock.Any(), false).Return(service.CustomerEdit{ID: id}, nil)

		req := httptest.NewRequest(http.MethodPut, "/api/customers/"+id.String()+"/", jsonBody(t, map[string]string{"company": "Acme"}))
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	suite.T().Run("patch by non referee", func(t *testing.T) {
		suite.mockService.EXPECT().Update(suite.principal, id, gomock.Any(), true).Return(nil, apperrors.ErrPermissionDenied)

		req := httptest.NewRequest(http.MethodPatch, "/api/customers/"+id.String()+"/", jsonBody(t, map[string]bool{"existing": true}))
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "You do not have permission to perform this action.", decode(t, w)["detail"])
	})

	suite.T().Run("patch with empty body", func(t *testing.T) {
		suite.mockService.EXPECT().Update(suite.principal, id, &service.CustomerInput{}, true).Return(service.CustomerEdit{ID: id}, nil)

		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/customers/"+id.String()+"/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func (suite *CustomerHandlerTestSuite) TestGetAndDeleteCustomer() {
	id := uuid.New()

	suite.T().Run("not a uuid", func(t *testing.T) {
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/customers/42/", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	suite.T().Run("unknown customer", func(t *testing.T) {
		suite.mockService.EXPECT().Retrieve(suite.principal, id).Return(nil, apperrors.ErrCustomerNotFound)

		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/customers/"+id.String()+"/", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Not found.", decode(t, w)["detail"])
	})

	suite.T().Run("sales cannot delete", func(t *testing.T) {
		suite.mockService.EXPECT().Destroy(suite.principal, id).Return(apperrors.ErrPermissionDenied)

		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/customers/"+id.String()+"/", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	suite.T().Run("deleted", func(t *testing.T) {
		suite.mockService.EXPECT().Destroy(suite.principal, id).Return(nil)

		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/customers/"+id.String()+"/", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

// Run the test suite
func TestCustomerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerHandlerTestSuite))
}
