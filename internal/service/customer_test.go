package service_test

import (
	"math"
	"testing"

	"crm-backend/internal/access"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/mocks"
	"crm-backend/internal/repository"
	"crm-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func principal(role models.Role) *access.Principal {
	return &access.Principal{UserID: uuid.New(), Email: string(role) + "@crm.test", Role: role}
}

// CustomerServiceTestSuite defines the test suite for CustomerService
type CustomerServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockRepo     *mocks.MockCustomerRepositoryInterface
	mockUserRepo *mocks.MockUserRepositoryInterface
	service      *service.CustomerService
}

// SetupTest sets up the test suite
func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRepo = mocks.NewMockCustomerRepositoryInterface(suite.ctrl)
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.service = service.NewCustomerService(suite.mockRepo, suite.mockUserRepo, service.NewValidator(), 10)
}

// TearDownTest cleans up after each test
func (suite *CustomerServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *CustomerServiceTestSuite) validInput() *service.CustomerInput {
	return &service.CustomerInput{
		FirstName: strPtr("Ada"),
		LastName:  strPtr("Lovelace"),
		Phone:     strPtr("0102030405"),
		Email:     strPtr("ada@acme.test"),
		Company:   strPtr("Acme"),
	}
}

func (suite *CustomerServiceTestSuite) TestCreateAsSales() {
	sales := principal(models.RoleSales)

	suite.mockRepo.EXPECT().GetByEmail("ada@acme.test").Return(nil, gorm.ErrRecordNotFound)
	suite.mockRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(c *models.Customer) error {
		c.ID = uuid.New()
		return nil
	})

	result, err := suite.service.Create(sales, suite.validInput())
	suite.Require().NoError(err)

	created, ok := result.(service.CustomerCreated)
	suite.Require().True(ok)
	suite.Equal("Acme", created.Company)
	suite.Equal("", created.Mobile)
	suite.Require().NotNil(created.SalesContact)
	suite.Equal(sales.UserID, *created.SalesContact)
}

func (suite *CustomerServiceTestSuite) TestCreateDeniedForOtherRoles() {
	for _, role := range []models.Role{models.RoleSupport, models.RoleManager, models.RoleNone} {
		_, err := suite.service.Create(principal(role), suite.validInput())
		suite.ErrorIs(err, apperrors.ErrPermissionDenied, string(role))
	}
}

func (suite *CustomerServiceTestSuite) TestCreateRequiresAuthentication() {
	_, err := suite.service.Create(nil, suite.validInput())
	suite.ErrorIs(err, apperrors.ErrAuthenticationRequired)
}

func (suite *CustomerServiceTestSuite) TestCreateDuplicateEmail() {
	suite.mockRepo.EXPECT().GetByEmail("ada@acme.test").Return(&models.Customer{BaseModel: models.BaseModel{ID: uuid.New()}}, nil)

	_, err := suite.service.Create(principal(models.RoleSales), suite.validInput())

	ve, ok := apperrors.AsValidation(err)
	suite.Require().True(ok)
	suite.Equal([]string{"email already associated with an existing customer"}, ve.Fields["email"])
}

func (suite *CustomerServiceTestSuite) TestCreateDuplicateEmailFromStore() {
	// another request stored the same email after the lookup
	suite.mockRepo.EXPECT().GetByEmail("ada@acme.test").Return(nil, gorm.ErrRecordNotFound)
	suite.mockRepo.EXPECT().Create(gomock.Any()).Return(gorm.ErrDuplicatedKey)

	_, err := suite.service.Create(principal(models.RoleSales), suite.validInput())

	ve, ok := apperrors.AsValidation(err)
	suite.Require().True(ok)
	suite.Equal([]string{"email already associated with an existing customer"}, ve.Fields["email"])
}

func (suite *CustomerServiceTestSuite) TestCreateMissingFields() {
	_, err := suite.service.Create(principal(models.RoleSales), &service.CustomerInput{
		FirstName: strPtr("Ada"),
		Email:     strPtr("not-an-email"),
	})

	ve, ok := apperrors.AsValidation(err)
	suite.Require().True(ok)
	for _, field := range []string{"last_name", "phone", "company"} {
		suite.Equal([]string{"This field is required."}, ve.Fields[field], field)
	}
	suite.Equal([]string{"Enter a valid email address."}, ve.Fields["email"])
}

func (suite *CustomerServiceTestSuite) TestUpdateOnlyByReferee() {
	owner := principal(models.RoleSales)
	id := uuid.New()
	stored := func() *models.Customer {
		return &models.Customer{
			BaseModel:      models.BaseModel{ID: id},
			FirstName:      "Ada",
			LastName:       "Lovelace",
			Email:          "ada@acme.test",
			Company:        "Acme",
			SalesContactID: &owner.UserID,
		}
	}

	suite.T().Run("other sales user", func(t *testing.T) {
		suite.mockRepo.EXPECT().GetByID(id).Return(stored(), nil)
		_, err := suite.service.Update(principal(models.RoleSales), id, &service.CustomerInput{Company: strPtr("Globex")}, true)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	suite.T().Run("manager is not the referee", func(t *testing.T) {
		suite.mockRepo.EXPECT().GetByID(id).Return(stored(), nil)
		_, err := suite.service.Update(principal(models.RoleManager), id, &service.CustomerInput{Company: strPtr("Globex")}, true)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	suite.T().Run("referee partial update", func(t *testing.T) {
		suite.mockRepo.EXPECT().GetByID(id).Return(stored(), nil)
		suite.mockRepo.EXPECT().Update(gomock.Any()).Return(nil)

		result, err := suite.service.Update(owner, id, &service.CustomerInput{Company: strPtr("Globex")}, true)
		require.NoError(t, err)

		edit := result.(service.CustomerEdit)
		assert.Equal(t, "Globex", edit.Company)
		assert.Equal(t, "Ada", edit.FirstName)
		require.NotNil(t, edit.SalesContact)
		assert.Equal(t, owner.UserID, *edit.SalesContact)
	})

	suite.T().Run("referee full update requires every field", func(t *testing.T) {
		suite.mockRepo.EXPECT().GetByID(id).Return(stored(), nil)

		_, err := suite.service.Update(owner, id, &service.CustomerInput{Company: strPtr("Globex")}, false)
		ve, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "first_name")
	})

	suite.T().Run("referee full update keeps absent optional fields", func(t *testing.T) {
		existing := stored()
		existing.Existing = true
		existing.Mobile = "0600000000"
		suite.mockRepo.EXPECT().GetByID(id).Return(existing, nil)
		suite.mockRepo.EXPECT().Update(gomock.Any()).Return(nil)

		result, err := suite.service.Update(owner, id, &service.CustomerInput{
			FirstName: strPtr("Ada"),
			LastName:  strPtr("King"),
			Phone:     strPtr("0102030405"),
			Email:     strPtr("ada@acme.test"),
			Company:   strPtr("Acme"),
		}, false)
		require.NoError(t, err)

		edit := result.(service.CustomerEdit)
		assert.Equal(t, "King", edit.LastName)
		assert.True(t, edit.Existing)
		assert.Equal(t, "0600000000", edit.Mobile)
		require.NotNil(t, edit.SalesContact)
		assert.Equal(t, owner.UserID, *edit.SalesContact)

		// the referee survives, so the owner can keep editing
		suite.mockRepo.EXPECT().GetByID(id).Return(existing, nil)
		suite.mockRepo.EXPECT().Update(gomock.Any()).Return(nil)
		_, err = suite.service.Update(owner, id, &service.CustomerInput{Existing: boolPtr(false)}, true)
		assert.NoError(t, err)
	})

	suite.T().Run("unknown customer", func(t *testing.T) {
		missing := uuid.New()
		suite.mockRepo.EXPECT().GetByID(missing).Return(nil, gorm.ErrRecordNotFound)

		_, err := suite.service.Update(owner, missing, &service.CustomerInput{}, true)
		assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
	})
}

func (suite *CustomerServiceTestSuite) TestUpdateUnknownSalesContact() {
	owner := principal(models.RoleSales)
	id := uuid.New()
	other := uuid.New()
	suite.mockRepo.EXPECT().GetByID(id).Return(&models.Customer{
		BaseModel:      models.BaseModel{ID: id},
		SalesContactID: &owner.UserID,
	}, nil)
	suite.mockUserRepo.EXPECT().GetByID(other).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.service.Update(owner, id, &service.CustomerInput{SalesContact: &other}, true)

	ve, ok := apperrors.AsValidation(err)
	suite.Require().True(ok)
	suite.Contains(ve.Fields["sales_contact"][0], "object does not exist")
}

func (suite *CustomerServiceTestSuite) TestDestroy() {
	id := uuid.New()

	suite.T().Run("sales cannot delete", func(t *testing.T) {
		err := suite.service.Destroy(principal(models.RoleSales), id)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	suite.T().Run("support cannot delete", func(t *testing.T) {
		err := suite.service.Destroy(principal(models.RoleSupport), id)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	suite.T().Run("manager deletes", func(t *testing.T) {
		suite.mockRepo.EXPECT().Delete(id).Return(nil)
		assert.NoError(t, suite.service.Destroy(principal(models.RoleManager), id))
	})

	suite.T().Run("manager deletes unknown", func(t *testing.T) {
		suite.mockRepo.EXPECT().Delete(id).Return(gorm.ErrRecordNotFound)
		err := suite.service.Destroy(principal(models.RoleManager), id)
		assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
	})
}

func (suite *CustomerServiceTestSuite) TestList() {
	sales := &models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Email: "sales@crm.test"}
	customers := []models.Customer{
		{BaseModel: models.BaseModel{ID: uuid.New()}, Company: "Acme", SalesContact: sales},
		{BaseModel: models.BaseModel{ID: uuid.New()}, Company: "Globex"},
	}
	filter := repository.CustomerFilter{Company: "Acme"}

	suite.T().Run("first page", func(t *testing.T) {
		suite.mockRepo.EXPECT().List(filter, 10, 0).Return(customers, int64(12), nil)

		result, err := suite.service.List(principal(models.RoleSupport), filter, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(12), result.Count)
		assert.True(t, result.HasNext())
		assert.False(t, result.HasPrevious())

		item := result.Results[0].(service.CustomerListItem)
		assert.Equal(t, "Acme", item.Company)
		require.NotNil(t, item.SalesContact)
		assert.Equal(t, "sales@crm.test", item.SalesContact.Email)
		assert.Nil(t, result.Results[1].(service.CustomerListItem).SalesContact)
	})

	suite.T().Run("page past the end", func(t *testing.T) {
		suite.mockRepo.EXPECT().List(filter, 10, 20).Return(nil, int64(12), nil)

		_, err := suite.service.List(principal(models.RoleSupport), filter, 3)
		assert.ErrorIs(t, err, service.ErrInvalidPage)
	})

	suite.T().Run("page zero", func(t *testing.T) {
		_, err := suite.service.List(principal(models.RoleSupport), filter, 0)
		assert.ErrorIs(t, err, service.ErrInvalidPage)
	})

	suite.T().Run("page whose offset overflows", func(t *testing.T) {
		for _, page := range []int{math.MaxInt, math.MaxInt / 5, math.MaxInt/10 + 2} {
			_, err := suite.service.List(principal(models.RoleSupport), filter, page)
			assert.ErrorIs(t, err, service.ErrInvalidPage, page)
		}
	})

	suite.T().Run("anonymous", func(t *testing.T) {
		_, err := suite.service.List(nil, filter, 1)
		assert.ErrorIs(t, err, apperrors.ErrAuthenticationRequired)
	})
}

func (suite *CustomerServiceTestSuite) TestRetrieve() {
	id := uuid.New()
	suite.mockRepo.EXPECT().GetByID(id).Return(&models.Customer{
		BaseModel: models.BaseModel{ID: id},
		Email:     "ada@acme.test",
		Phone:     "0102",
	}, nil)

	result, err := suite.service.Retrieve(principal(models.RoleSupport), id)
	suite.Require().NoError(err)

	detail := result.(service.CustomerDetail)
	suite.Equal("ada@acme.test", detail.Email)
	suite.Equal("0102", detail.Phone)
	suite.Len(detail.DateCreated, 27)
}

// Run the test suite
func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
