package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List(filter UserFilter, limit, offset int) ([]models.User, int64, error)
	Update(user *models.User) error
	UpdateWithGroups(user *models.User, groups []models.Group) error
	ReplaceGroups(user *models.User, groups []models.Group) error
	Delete(id uuid.UUID) error
}

// GroupRepositoryInterface defines the interface for group repository operations
type GroupRepositoryInterface interface {
	Create(group *models.Group) error
	GetByName(name string) (*models.Group, error)
	GetAll() ([]models.Group, error)
}

// CustomerRepositoryInterface defines the interface for customer repository operations
type CustomerRepositoryInterface interface {
	Create(customer *models.Customer) error
	GetByID(id uuid.UUID) (*models.Customer, error)
	GetByEmail(email string) (*models.Customer, error)
	List(filter CustomerFilter, limit, offset int) ([]models.Customer, int64, error)
	Update(customer *models.Customer) error
	Delete(id uuid.UUID) error
}

// ContractRepositoryInterface defines the interface for contract repository operations
type ContractRepositoryInterface interface {
	Create(contract *models.Contract) error
	GetByID(id uuid.UUID) (*models.Contract, error)
	List(filter ContractFilter, limit, offset int) ([]models.Contract, int64, error)
	Update(contract *models.Contract) error
	Delete(id uuid.UUID) error
}

// EventRepositoryInterface defines the interface for event repository operations
type EventRepositoryInterface interface {
	Create(event *models.Event) error
	GetByID(id uuid.UUID) (*models.Event, error)
	GetByContractID(contractID uuid.UUID) (*models.Event, error)
	List(filter EventFilter, limit, offset int) ([]models.Event, int64, error)
	Update(event *models.Event) error
	Delete(id uuid.UUID) error
}
