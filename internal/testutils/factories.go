package testutils

import (
	"fmt"
	"sync/atomic"
	"time"

	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the clear text password of every factory user
const TestPassword = "secret-password"

var (
	sequence     int64
	passwordHash = mustHash(TestPassword)
)

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}

// next returns a process-wide counter used to keep unique columns unique
func next() int64 {
	return atomic.AddInt64(&sequence, 1)
}

func newBase() models.BaseModel {
	now := time.Now().UTC()
	return models.BaseModel{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// GroupFactory provides methods to create test Group data
type GroupFactory struct{}

// NewGroupFactory creates a new GroupFactory
func NewGroupFactory() *GroupFactory {
	return &GroupFactory{}
}

// WithName creates a test Group with a custom name
func (f *GroupFactory) WithName(name string) *models.Group {
	return &models.Group{BaseModel: newBase(), Name: name}
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User without group membership
func (f *UserFactory) Create() *models.User {
	n := next()
	return &models.User{
		BaseModel:    newBase(),
		Email:        fmt.Sprintf("user%d@crm.test", n),
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User%d", n),
		Phone:        "0100000000",
		PasswordHash: passwordHash,
	}
}

// WithGroup creates a test User belonging to group
func (f *UserFactory) WithGroup(group *models.Group) *models.User {
	user := f.Create()
	user.Groups = []models.Group{*group}
	return user
}

// WithEmail creates a test User with a custom email
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// CustomerFactory provides methods to create test Customer data
type CustomerFactory struct{}

// NewCustomerFactory creates a new CustomerFactory
func NewCustomerFactory() *CustomerFactory {
	return &CustomerFactory{}
}

// Create creates a test Customer without sales contact
func (f *CustomerFactory) Create() *models.Customer {
	n := next()
	return &models.Customer{
		BaseModel: newBase(),
		FirstName: "Ada",
		LastName:  fmt.Sprintf("Customer%d", n),
		Phone:     "0102030405",
		Email:     fmt.Sprintf("customer%d@acme.test", n),
		Company:   fmt.Sprintf("Company %d", n),
	}
}

// WithSalesContact creates a test Customer followed by userID
func (f *CustomerFactory) WithSalesContact(userID uuid.UUID) *models.Customer {
	customer := f.Create()
	customer.SalesContactID = &userID
	return customer
}

// ContractFactory provides methods to create test Contract data
type ContractFactory struct{}

// NewContractFactory creates a new ContractFactory
func NewContractFactory() *ContractFactory {
	return &ContractFactory{}
}

// ForCustomer creates a test Contract of customerID
func (f *ContractFactory) ForCustomer(customerID uuid.UUID) *models.Contract {
	return &models.Contract{
		BaseModel:  newBase(),
		CustomerID: customerID,
		Amount:     1000,
		PaymentDue: time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
	}
}

// WithSalesContact creates a test Contract of customerID followed by userID
func (f *ContractFactory) WithSalesContact(customerID, userID uuid.UUID) *models.Contract {
	contract := f.ForCustomer(customerID)
	contract.SalesContactID = &userID
	return contract
}

// EventFactory provides methods to create test Event data
type EventFactory struct{}

// NewEventFactory creates a new EventFactory
func NewEventFactory() *EventFactory {
	return &EventFactory{}
}

// ForContract creates a test Event of a customer's contract
func (f *EventFactory) ForContract(customerID, contractID uuid.UUID) *models.Event {
	return &models.Event{
		BaseModel:  newBase(),
		CustomerID: customerID,
		ContractID: &contractID,
		Attendees:  20,
		EventDate:  time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC),
		Note:       "Kick-off",
	}
}

// WithSupportContact creates a test Event handled by userID
func (f *EventFactory) WithSupportContact(customerID, contractID, userID uuid.UUID) *models.Event {
	event := f.ForContract(customerID, contractID)
	event.SupportContactID = &userID
	return event
}

// FactorySet provides access to all factories
type FactorySet struct {
	Group    *GroupFactory
	User     *UserFactory
	Customer *CustomerFactory
	Contract *ContractFactory
	Event    *EventFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Group:    NewGroupFactory(),
		User:     NewUserFactory(),
		Customer: NewCustomerFactory(),
		Contract: NewContractFactory(),
		Event:    NewEventFactory(),
	}
}
