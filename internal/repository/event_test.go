//go:build integration
// +build integration

package repository

import (
	"testing"
	"time"

	"crm-backend/internal/database/models"
	"crm-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// EventRepositoryTestSuite tests the EventRepository
type EventRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *EventRepository
	contracts     *ContractRepository
	customers     *CustomerRepository
	users         *UserRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *EventRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	db := suite.baseTestSuite.DB
	suite.repo = NewEventRepository(db)
	suite.contracts = NewContractRepository(db)
	suite.customers = NewCustomerRepository(db)
	suite.users = NewUserRepository(db)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *EventRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *EventRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *EventRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// fixture creates a customer and one of its contracts
func (suite *EventRepositoryTestSuite) fixture(company string) (*models.Customer, *models.Contract) {
	customer := suite.factories.Customer.Create()
	customer.Company = company
	suite.Require().NoError(suite.customers.Create(customer))
	contract := suite.factories.Contract.ForCustomer(customer.ID)
	suite.Require().NoError(suite.contracts.Create(contract))
	return customer, contract
}

func (suite *EventRepositoryTestSuite) supportUser() *models.User {
	group, err := suite.baseTestSuite.RoleGroup(models.RoleSupport)
	suite.Require().NoError(err)
	user := suite.factories.User.WithGroup(group)
	suite.Require().NoError(suite.users.Create(user))
	return user
}

// TestCreateAndGet tests that GetByID loads the related records
func (suite *EventRepositoryTestSuite) TestCreateAndGet() {
	support := suite.supportUser()
	customer, contract := suite.fixture("Acme")
	event := suite.factories.Event.WithSupportContact(customer.ID, contract.ID, support.ID)
	suite.Require().NoError(suite.repo.Create(event))

	found, err := suite.repo.GetByID(event.ID)
	suite.Require().NoError(err)
	suite.Equal("Acme", found.Customer.Company)
	suite.Require().NotNil(found.Contract)
	suite.Equal(contract.ID, found.Contract.ID)
	suite.Require().NotNil(found.SupportContact)
	suite.Equal(models.RoleSupport, found.SupportContact.Role())
	suite.True(found.EventDate.Equal(event.EventDate))
}

// TestGetByContractID tests finding the event organized for a contract
func (suite *EventRepositoryTestSuite) TestGetByContractID() {
	customer, contract := suite.fixture("Acme")
	_, err := suite.repo.GetByContractID(contract.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	event := suite.factories.Event.ForContract(customer.ID, contract.ID)
	suite.Require().NoError(suite.repo.Create(event))

	found, err := suite.repo.GetByContractID(contract.ID)
	suite.Require().NoError(err)
	suite.Equal(event.ID, found.ID)
}

// TestListFilters tests the customer join and event column filters
func (suite *EventRepositoryTestSuite) TestListFilters() {
	support := suite.supportUser()
	acme, acmeContract := suite.fixture("Acme")
	globex, globexContract := suite.fixture("Globex")

	first := suite.factories.Event.WithSupportContact(acme.ID, acmeContract.ID, support.ID)
	first.EventDate = time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	suite.Require().NoError(suite.repo.Create(first))

	second := suite.factories.Event.ForContract(globex.ID, globexContract.ID)
	second.EventDate = time.Date(2024, 9, 12, 9, 30, 0, 0, time.UTC)
	suite.Require().NoError(suite.repo.Create(second))

	day := time.Date(2024, 9, 12, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter EventFilter
		want   int64
	}{
		{"no filter", EventFilter{}, 2},
		{"customer email", EventFilter{CustomerEmail: globex.Email}, 1},
		{"customer last name", EventFilter{CustomerLastName: acme.LastName}, 1},
		{"customer company", EventFilter{CustomerCompany: "Acme"}, 1},
		{"event date", EventFilter{EventDate: &day}, 1},
		{"support contact", EventFilter{SupportContactID: &support.ID}, 1},
		{"date contains time", EventFilter{DateContains: "T18:00"}, 1},
		{"date contains year", EventFilter{DateContains: "2024"}, 2},
		{"no match", EventFilter{DateContains: "1999"}, 0},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			events, total, err := suite.repo.List(tt.filter, 10, 0)
			suite.Require().NoError(err)
			suite.Equal(tt.want, total)
			suite.Len(events, int(tt.want))
		})
	}
}

// TestUpdate tests changing the support contact and status
func (suite *EventRepositoryTestSuite) TestUpdate() {
	support := suite.supportUser()
	customer, contract := suite.fixture("Acme")
	event := suite.factories.Event.ForContract(customer.ID, contract.ID)
	suite.Require().NoError(suite.repo.Create(event))

	event.SupportContactID = &support.ID
	event.Status = true
	event.Attendees = 42
	suite.Require().NoError(suite.repo.Update(event))

	found, err := suite.repo.GetByID(event.ID)
	suite.Require().NoError(err)
	suite.True(found.Status)
	suite.Equal(42, found.Attendees)
	suite.Require().NotNil(found.SupportContactID)
	suite.Equal(support.ID, *found.SupportContactID)
}

// TestDelete tests deleting events and the contract cascade
func (suite *EventRepositoryTestSuite) TestDelete() {
	customer, contract := suite.fixture("Acme")
	event := suite.factories.Event.ForContract(customer.ID, contract.ID)
	suite.Require().NoError(suite.repo.Create(event))

	suite.Require().NoError(suite.contracts.Delete(contract.ID))
	_, err := suite.repo.GetByID(event.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	suite.ErrorIs(suite.repo.Delete(uuid.New()), gorm.ErrRecordNotFound)
}

// TestEventRepositoryTestSuite runs the test suite
func TestEventRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(EventRepositoryTestSuite))
}
