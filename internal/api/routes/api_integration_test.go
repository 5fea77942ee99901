//go:build integration
// +build integration

package routes

import (
	"fmt"
	"net/http"
	"os"
	"testing"

	"crm-backend/internal/database/models"
	"crm-backend/internal/repository"
	"crm-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
)

func TestMain(m *testing.M) {
	code := m.Run()
	testutils.CleanupSharedContainer()
	os.Exit(code)
}

// APITestSuite drives the record API end to end against Postgres
type APITestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	http          *testutils.HTTPTestSuite
	users         *repository.UserRepository
	factories     *testutils.FactorySet
}

func (suite *APITestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	router, err := SetupRoutes(suite.baseTestSuite.DB, suite.baseTestSuite.Config)
	suite.Require().NoError(err)
	suite.http = testutils.SetupHTTPTest(router)
	suite.users = repository.NewUserRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

func (suite *APITestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

func (suite *APITestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// login creates a user with role and returns its access token
func (suite *APITestSuite) login(role models.Role) (*models.User, string) {
	group, err := suite.baseTestSuite.RoleGroup(role)
	suite.Require().NoError(err)
	user := suite.factories.User.WithGroup(group)
	suite.Require().NoError(suite.users.Create(user))

	rec := suite.http.MakeRequest(http.MethodPost, "/api/login/", map[string]string{
		"username": user.Email,
		"password": testutils.TestPassword,
	})
	var tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	testutils.AssertJSONResponse(suite.T(), rec, http.StatusOK, &tokens)
	suite.Require().NotEmpty(tokens.Access)
	suite.Require().NotEmpty(tokens.Refresh)
	return user, tokens.Access
}

func (suite *APITestSuite) createCustomer(token, email string) map[string]interface{} {
	rec := suite.http.MakeAuthorizedRequest(http.MethodPost, "/api/customers/", token, map[string]interface{}{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"phone":      "0102030405",
		"email":      email,
		"company":    "Analytical",
	})
	var body map[string]interface{}
	testutils.AssertJSONResponse(suite.T(), rec, http.StatusCreated, &body)
	return body
}

func (suite *APITestSuite) TestLoginRejectsWrongPassword() {
	group, err := suite.baseTestSuite.RoleGroup(models.RoleSales)
	suite.Require().NoError(err)
	user := suite.factories.User.WithGroup(group)
	suite.Require().NoError(suite.users.Create(user))

	rec := suite.http.MakeRequest(http.MethodPost, "/api/login/", map[string]string{
		"username": user.Email,
		"password": "wrong-password",
	})
	suite.Equal(http.StatusUnauthorized, rec.Code)
}

func (suite *APITestSuite) TestAnonymousIsRejected() {
	rec := suite.http.MakeRequest(http.MethodGet, "/api/customers/", nil)
	testutils.AssertErrorResponse(suite.T(), rec, http.StatusUnauthorized, "")
}

func (suite *APITestSuite) TestSalesCreatesCustomerAsContact() {
	sales, token := suite.login(models.RoleSales)

	body := suite.createCustomer(token, "ada@analytical.test")
	suite.Equal(sales.ID.String(), body["sales_contact"])

	rec := suite.http.MakeAuthorizedRequest(http.MethodPost, "/api/customers/", token, map[string]interface{}{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"phone":      "0102030405",
		"email":      "ada@analytical.test",
		"company":    "Analytical",
	})
	errBody := testutils.AssertErrorResponse(suite.T(), rec, http.StatusBadRequest, "")
	suite.Contains(errBody, "errors")
}

func (suite *APITestSuite) TestSupportCannotCreate() {
	_, token := suite.login(models.RoleSupport)

	rec := suite.http.MakeAuthorizedRequest(http.MethodPost, "/api/customers/", token, map[string]interface{}{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"phone":      "0102030405",
		"email":      "ada@analytical.test",
		"company":    "Analytical",
	})
	testutils.AssertErrorResponse(suite.T(), rec, http.StatusForbidden, "You do not have permission to perform this action.")
}

func (suite *APITestSuite) TestOnlyRefereeUpdates() {
	_, owner := suite.login(models.RoleSales)
	_, other := suite.login(models.RoleSales)
	customer := suite.createCustomer(owner, "ada@analytical.test")
	path := fmt.Sprintf("/api/customers/%s/", customer["id"])

	rec := suite.http.MakeAuthorizedRequest(http.MethodPatch, path, other, map[string]interface{}{"company": "Stolen"})
	suite.Equal(http.StatusForbidden, rec.Code)

	rec = suite.http.MakeAuthorizedRequest(http.MethodPatch, path, owner, map[string]interface{}{"company": "Renamed"})
	var body map[string]interface{}
	testutils.AssertJSONResponse(suite.T(), rec, http.StatusOK, &body)
	suite.Equal("Renamed", body["company"])
}

func (suite *APITestSuite) TestOnlyManagerDeletes() {
	_, sales := suite.login(models.RoleSales)
	_, manager := suite.login(models.RoleManager)
	customer := suite.createCustomer(sales, "ada@analytical.test")
	path := fmt.Sprintf("/api/customers/%s/", customer["id"])

	rec := suite.http.MakeAuthorizedRequest(http.MethodDelete, path, sales, nil)
	suite.Equal(http.StatusForbidden, rec.Code)

	rec = suite.http.MakeAuthorizedRequest(http.MethodDelete, path, manager, nil)
	testutils.AssertNoContent(suite.T(), rec)

	rec = suite.http.MakeAuthorizedRequest(http.MethodGet, path, manager, nil)
	testutils.AssertErrorResponse(suite.T(), rec, http.StatusNotFound, "Not found.")
}

func (suite *APITestSuite) TestContractPagination() {
	_, token := suite.login(models.RoleSales)
	customer := suite.createCustomer(token, "ada@analytical.test")

	for i := 0; i < 12; i++ {
		rec := suite.http.MakeAuthorizedRequest(http.MethodPost, "/api/contracts/", token, map[string]interface{}{
			"customer":    customer["id"],
			"amount":      1000 + i,
			"payment_due": "2024-12-31",
		})
		suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	}

	var page struct {
		Count    int64                    `json:"count"`
		Next     *string                  `json:"next"`
		Previous *string                  `json:"previous"`
		Results  []map[string]interface{} `json:"results"`
	}
	rec := suite.http.MakeAuthorizedRequest(http.MethodGet, "/api/contracts/?page=3", token, nil)
	testutils.AssertJSONResponse(suite.T(), rec, http.StatusOK, &page)
	suite.Equal(int64(12), page.Count)
	suite.Len(page.Results, 2)
	suite.Nil(page.Next)
	suite.Require().NotNil(page.Previous)
	suite.Contains(*page.Previous, "page=2")

	rec = suite.http.MakeAuthorizedRequest(http.MethodGet, "/api/contracts/?page=4", token, nil)
	testutils.AssertErrorResponse(suite.T(), rec, http.StatusNotFound, "Invalid page.")
}

func (suite *APITestSuite) TestCurrentUser() {
	user, token := suite.login(models.RoleSupport)

	rec := suite.http.MakeAuthorizedRequest(http.MethodGet, "/api/users/me/", token, nil)
	var body map[string]interface{}
	testutils.AssertJSONResponse(suite.T(), rec, http.StatusOK, &body)
	suite.Equal(user.Email, body["email"])
	suite.Equal(string(models.RoleSupport), body["role"])
}

func (suite *APITestSuite) TestHealthEndpoints() {
	for _, path := range []string{"/health", "/health/ready", "/health/live"} {
		rec := suite.http.MakeRequest(http.MethodGet, path, nil)
		suite.Equal(http.StatusOK, rec.Code, path)
	}
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
