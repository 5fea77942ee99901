package service

import (
	"crm-backend/internal/access"
	"crm-backend/internal/repository"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// CustomerServiceInterface defines the interface for customer service
type CustomerServiceInterface interface {
	List(p *access.Principal, filter repository.CustomerFilter, page int) (*ListResult, error)
	Retrieve(p *access.Principal, id uuid.UUID) (interface{}, error)
	Create(p *access.Principal, in *CustomerInput) (interface{}, error)
	Update(p *access.Principal, id uuid.UUID, in *CustomerInput, partial bool) (interface{}, error)
	Destroy(p *access.Principal, id uuid.UUID) error
}

// ContractServiceInterface defines the interface for contract service
type ContractServiceInterface interface {
	List(p *access.Principal, filter repository.ContractFilter, page int) (*ListResult, error)
	Retrieve(p *access.Principal, id uuid.UUID) (interface{}, error)
	Create(p *access.Principal, in *ContractInput) (interface{}, error)
	Update(p *access.Principal, id uuid.UUID, in *ContractInput, partial bool) (interface{}, error)
	Destroy(p *access.Principal, id uuid.UUID) error
}

// EventServiceInterface defines the interface for event service
type EventServiceInterface interface {
	List(p *access.Principal, filter repository.EventFilter, page int) (*ListResult, error)
	Retrieve(p *access.Principal, id uuid.UUID) (interface{}, error)
	Create(p *access.Principal, in *EventInput) (interface{}, error)
	Update(p *access.Principal, id uuid.UUID, in *EventInput, partial bool) (interface{}, error)
	Destroy(p *access.Principal, id uuid.UUID) error
}

// UserServiceInterface defines the interface for user service
type UserServiceInterface interface {
	List(p *access.Principal, filter repository.UserFilter, page int) (*ListResult, error)
	Retrieve(p *access.Principal, id uuid.UUID) (interface{}, error)
	Me(p *access.Principal) (interface{}, error)
	Signup(p *access.Principal, in *SignupInput) (interface{}, error)
	Update(p *access.Principal, id uuid.UUID, in *UserInput) (interface{}, error)
	Destroy(p *access.Principal, id uuid.UUID) error
	UpdatePassword(p *access.Principal, in *PasswordUpdateInput) error
}
