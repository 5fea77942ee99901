package service

import (
	"errors"
	"fmt"
	"time"

	"crm-backend/internal/access"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContractService handles business logic for contracts
type ContractService struct {
	repo         repository.ContractRepositoryInterface
	customerRepo repository.CustomerRepositoryInterface
	eventRepo    repository.EventRepositoryInterface
	userRepo     repository.UserRepositoryInterface
	validator    *validator.Validate
	policy       access.Policy
	pageSize     int
}

// NewContractService creates a new contract service
func NewContractService(
	repo repository.ContractRepositoryInterface,
	customerRepo repository.CustomerRepositoryInterface,
	eventRepo repository.EventRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	validator *validator.Validate,
	pageSize int,
) *ContractService {
	return &ContractService{
		repo:         repo,
		customerRepo: customerRepo,
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		validator:    validator,
		policy:       access.RecordPolicy,
		pageSize:     pageSize,
	}
}

// ContractInput is the write payload of a contract
type ContractInput struct {
	Customer     *uuid.UUID `json:"customer"`
	SalesContact *uuid.UUID `json:"sales_contact"`
	Amount       *int       `json:"amount" validate:"omitempty,gte=0"`
	PaymentDue   *string    `json:"payment_due"`
	Status       *bool      `json:"status"`
	EventCreated *bool      `json:"event_created"`
}

// ContractListItem is the list shape of a contract
type ContractListItem struct {
	ID           uuid.UUID    `json:"id"`
	Customer     *CustomerRef `json:"customer"`
	Status       bool         `json:"status"`
	Amount       int          `json:"amount"`
	SalesContact *UserRef     `json:"sales_contact"`
}

// ContractDetail is the detail shape of a contract
type ContractDetail struct {
	ID           uuid.UUID    `json:"id"`
	SalesContact *UserRef     `json:"sales_contact"`
	Customer     *CustomerRef `json:"customer"`
	DateCreated  string       `json:"date_created"`
	EventCreated bool         `json:"event_created"`
	DateUpdated  string       `json:"date_updated"`
	Status       bool         `json:"status"`
	Amount       int          `json:"amount"`
	PaymentDue   string       `json:"payment_due"`
	Event        *IDRef       `json:"event"`
}

// ContractCreated is the create shape of a contract
type ContractCreated struct {
	ID           uuid.UUID  `json:"id"`
	Customer     uuid.UUID  `json:"customer"`
	Amount       int        `json:"amount"`
	PaymentDue   string     `json:"payment_due"`
	SalesContact *uuid.UUID `json:"sales_contact"`
}

// ContractEdit is the edit shape of a contract
type ContractEdit struct {
	ID           uuid.UUID  `json:"id"`
	Customer     uuid.UUID  `json:"customer"`
	SalesContact *uuid.UUID `json:"sales_contact"`
	DateCreated  string     `json:"date_created"`
	DateUpdated  string     `json:"date_updated"`
	Status       bool       `json:"status"`
	Amount       int        `json:"amount"`
	PaymentDue   string     `json:"payment_due"`
	EventCreated bool       `json:"event_created"`
}

// List returns one page of contracts in the list shape
func (s *ContractService) List(p *access.Principal, filter repository.ContractFilter, page int) (*ListResult, error) {
	shape, err := s.policy.Authorize(access.ActionList, p, nil)
	if err != nil {
		return nil, err
	}

	offset, err := offsetFor(page, s.pageSize)
	if err != nil {
		return nil, err
	}

	contracts, total, err := s.repo.List(filter, s.pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	if err := checkPage(page, s.pageSize, total); err != nil {
		return nil, err
	}

	results := make([]interface{}, len(contracts))
	for i := range contracts {
		results[i] = shapeContract(shape, &contracts[i], nil)
	}

	return &ListResult{Count: total, Page: page, PageSize: s.pageSize, Results: results}, nil
}

// Retrieve returns one contract in the detail shape, with the event organized for it
func (s *ContractService) Retrieve(p *access.Principal, id uuid.UUID) (interface{}, error) {
	shape, err := s.policy.Authorize(access.ActionRetrieve, p, nil)
	if err != nil {
		return nil, err
	}

	contract, err := s.get(id)
	if err != nil {
		return nil, err
	}

	var event *IDRef
	ev, err := s.eventRepo.GetByContractID(contract.ID)
	switch {
	case err == nil:
		event = &IDRef{ID: ev.ID}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to get contract event: %w", err)
	}

	return shapeContract(shape, contract, event), nil
}

// Create creates a contract owned by the acting user
func (s *ContractService) Create(p *access.Principal, in *ContractInput) (interface{}, error) {
	shape, err := s.policy.Authorize(access.ActionCreate, p, nil)
	if err != nil {
		return nil, err
	}

	var req required
	req.check("customer", in.Customer != nil)
	req.check("amount", in.Amount != nil)
	req.check("payment_due", in.PaymentDue != nil)
	if err := merge(req.err(), validate(s.validator, in)); err != nil {
		return nil, err
	}

	due, err := parseTime("payment_due", *in.PaymentDue, dueDateLayouts)
	if err != nil {
		return nil, err
	}
	if err := s.checkCustomerExists(*in.Customer); err != nil {
		return nil, err
	}

	salesContact := p.UserID
	contract := &models.Contract{
		CustomerID:     *in.Customer,
		SalesContactID: &salesContact,
		Amount:         *in.Amount,
		PaymentDue:     due,
	}

	if err := s.repo.Create(contract); err != nil {
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}

	return shapeContract(shape, contract, nil), nil
}

// Update applies a full or partial update. Only the contract's sales contact may update it.
func (s *ContractService) Update(p *access.Principal, id uuid.UUID, in *ContractInput, partial bool) (interface{}, error) {
	if p == nil {
		return nil, apperrors.ErrAuthenticationRequired
	}

	contract, err := s.get(id)
	if err != nil {
		return nil, err
	}

	action := access.ActionUpdate
	if partial {
		action = access.ActionPartialUpdate
	}
	shape, err := s.policy.Authorize(action, p, contract.SalesContactID)
	if err != nil {
		return nil, err
	}

	var req required
	if !partial {
		req.check("customer", in.Customer != nil)
		req.check("amount", in.Amount != nil)
		req.check("payment_due", in.PaymentDue != nil)
	}
	if err := merge(req.err(), validate(s.validator, in)); err != nil {
		return nil, err
	}

	var due *time.Time
	if in.PaymentDue != nil {
		t, err := parseTime("payment_due", *in.PaymentDue, dueDateLayouts)
		if err != nil {
			return nil, err
		}
		due = &t
	}
	if in.Customer != nil && *in.Customer != contract.CustomerID {
		if err := s.checkCustomerExists(*in.Customer); err != nil {
			return nil, err
		}
	}
	if in.SalesContact != nil {
		if err := checkUserExists(s.userRepo, "sales_contact", *in.SalesContact); err != nil {
			return nil, err
		}
	}

	applyContractInput(contract, in, due)

	if err := s.repo.Update(contract); err != nil {
		return nil, fmt.Errorf("failed to update contract: %w", err)
	}

	return shapeContract(shape, contract, nil), nil
}

// Destroy deletes a contract. Managers only.
func (s *ContractService) Destroy(p *access.Principal, id uuid.UUID) error {
	if _, err := s.policy.Authorize(access.ActionDestroy, p, nil); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrContractNotFound
		}
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	return nil
}

func (s *ContractService) get(id uuid.UUID) (*models.Contract, error) {
	contract, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContractNotFound
		}
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	return contract, nil
}

func (s *ContractService) checkCustomerExists(id uuid.UUID) error {
	if _, err := s.customerRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewValidationError("customer", fmt.Sprintf("Invalid pk %q - object does not exist.", id))
		}
		return fmt.Errorf("failed to get customer: %w", err)
	}
	return nil
}

// applyContractInput copies the fields present in the body
func applyContractInput(c *models.Contract, in *ContractInput, due *time.Time) {
	if in.Customer != nil && *in.Customer != c.CustomerID {
		c.CustomerID = *in.Customer
		c.Customer = models.Customer{}
	}
	if in.SalesContact != nil {
		c.SalesContactID = in.SalesContact
		c.SalesContact = nil
	}
	if in.Amount != nil {
		c.Amount = *in.Amount
	}
	if due != nil {
		c.PaymentDue = *due
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	if in.EventCreated != nil {
		c.EventCreated = *in.EventCreated
	}
}

func shapeContract(shape access.Shape, c *models.Contract, event *IDRef) interface{} {
	switch shape {
	case access.ShapeList:
		return ContractListItem{
			ID:           c.ID,
			Customer:     customerRef(&c.Customer),
			Status:       c.Status,
			Amount:       c.Amount,
			SalesContact: userRef(c.SalesContact),
		}
	case access.ShapeDetail:
		return ContractDetail{
			ID:           c.ID,
			SalesContact: userRef(c.SalesContact),
			Customer:     customerRef(&c.Customer),
			DateCreated:  formatTimestamp(c.CreatedAt),
			EventCreated: c.EventCreated,
			DateUpdated:  formatTimestamp(c.UpdatedAt),
			Status:       c.Status,
			Amount:       c.Amount,
			PaymentDue:   c.PaymentDue.Format(DueDateFormat),
			Event:        event,
		}
	case access.ShapeCreate:
		return ContractCreated{
			ID:           c.ID,
			Customer:     c.CustomerID,
			Amount:       c.Amount,
			PaymentDue:   c.PaymentDue.Format(DueDateFormat),
			SalesContact: c.SalesContactID,
		}
	case access.ShapeEdit:
		return ContractEdit{
			ID:           c.ID,
			Customer:     c.CustomerID,
			SalesContact: c.SalesContactID,
			DateCreated:  formatTimestamp(c.CreatedAt),
			DateUpdated:  formatTimestamp(c.UpdatedAt),
			Status:       c.Status,
			Amount:       c.Amount,
			PaymentDue:   c.PaymentDue.Format(DueDateFormat),
			EventCreated: c.EventCreated,
		}
	}
	return nil
}
