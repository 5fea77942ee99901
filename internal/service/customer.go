package service

import (
	"errors"
	"fmt"

	"crm-backend/internal/access"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const msgCustomerEmailTaken = "email already associated with an existing customer"

// CustomerService handles business logic for customers
type CustomerService struct {
	repo      repository.CustomerRepositoryInterface
	userRepo  repository.UserRepositoryInterface
	validator *validator.Validate
	policy    access.Policy
	pageSize  int
}

// NewCustomerService creates a new customer service
func NewCustomerService(repo repository.CustomerRepositoryInterface, userRepo repository.UserRepositoryInterface, validator *validator.Validate, pageSize int) *CustomerService {
	return &CustomerService{
		repo:      repo,
		userRepo:  userRepo,
		validator: validator,
		policy:    access.RecordPolicy,
		pageSize:  pageSize,
	}
}

// CustomerInput is the write payload of a customer. Fields outside the shape
// selected for the action are ignored.
type CustomerInput struct {
	FirstName    *string    `json:"first_name" validate:"omitempty,max=20"`
	LastName     *string    `json:"last_name" validate:"omitempty,max=20"`
	Phone        *string    `json:"phone" validate:"omitempty,max=20"`
	Mobile       *string    `json:"mobile" validate:"omitempty,max=20"`
	Email        *string    `json:"email" validate:"omitempty,email,max=100"`
	Company      *string    `json:"company" validate:"omitempty,max=100"`
	SalesContact *uuid.UUID `json:"sales_contact"`
	Existing     *bool      `json:"existing"`
}

// CustomerListItem is the list shape of a customer
type CustomerListItem struct {
	ID           uuid.UUID `json:"id"`
	Company      string    `json:"company"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	SalesContact *UserRef  `json:"sales_contact"`
	Existing     bool      `json:"existing"`
}

// CustomerDetail is the detail shape of a customer
type CustomerDetail struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	Mobile       string    `json:"mobile"`
	Email        string    `json:"email"`
	Company      string    `json:"company"`
	DateCreated  string    `json:"date_created"`
	DateUpdated  string    `json:"date_updated"`
	SalesContact *UserRef  `json:"sales_contact"`
	Existing     bool      `json:"existing"`
}

// CustomerCreated is the create shape of a customer
type CustomerCreated struct {
	ID           uuid.UUID  `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Phone        string     `json:"phone"`
	Mobile       string     `json:"mobile"`
	Email        string     `json:"email"`
	Company      string     `json:"company"`
	DateCreated  string     `json:"date_created"`
	DateUpdated  string     `json:"date_updated"`
	SalesContact *uuid.UUID `json:"sales_contact"`
}

// CustomerEdit is the edit shape of a customer
type CustomerEdit struct {
	ID           uuid.UUID  `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Phone        string     `json:"phone"`
	Mobile       string     `json:"mobile"`
	Email        string     `json:"email"`
	Company      string     `json:"company"`
	DateCreated  string     `json:"date_created"`
	DateUpdated  string     `json:"date_updated"`
	SalesContact *uuid.UUID `json:"sales_contact"`
	Existing     bool       `json:"existing"`
}

// List returns one page of customers in the list shape
func (s *CustomerService) List(p *access.Principal, filter repository.CustomerFilter, page int) (*ListResult, error) {
	shape, err := s.policy.Authorize(access.ActionList, p, nil)
	if err != nil {
		return nil, err
	}

	offset, err := offsetFor(page, s.pageSize)
	if err != nil {
		return nil, err
	}

	customers, total, err := s.repo.List(filter, s.pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if err := checkPage(page, s.pageSize, total); err != nil {
		return nil, err
	}

	results := make([]interface{}, len(customers))
	for i := range customers {
		results[i] = shapeCustomer(shape, &customers[i])
	}

	return &ListResult{Count: total, Page: page, PageSize: s.pageSize, Results: results}, nil
}

// Retrieve returns one customer in the detail shape
func (s *CustomerService) Retrieve(p *access.Principal, id uuid.UUID) (interface{}, error) {
	shape, err := s.policy.Authorize(access.ActionRetrieve, p, nil)
	if err != nil {
		return nil, err
	}

	customer, err := s.get(id)
	if err != nil {
		return nil, err
	}

	return shapeCustomer(shape, customer), nil
}

// Create creates a customer owned by the acting user
func (s *CustomerService) Create(p *access.Principal, in *CustomerInput) (interface{}, error) {
	shape, err := s.policy.Authorize(access.ActionCreate, p, nil)
	if err != nil {
		return nil, err
	}

	var req required
	req.check("first_name", in.FirstName != nil)
	req.check("last_name", in.LastName != nil)
	req.check("phone", in.Phone != nil)
	req.check("email", in.Email != nil)
	req.check("company", in.Company != nil)
	if err := merge(req.err(), validate(s.validator, in)); err != nil {
		return nil, err
	}

	if err := s.checkEmailFree(*in.Email, uuid.Nil); err != nil {
		return nil, err
	}

	salesContact := p.UserID
	customer := &models.Customer{
		FirstName:      *in.FirstName,
		LastName:       *in.LastName,
		Phone:          *in.Phone,
		Mobile:         strOr(in.Mobile, ""),
		Email:          *in.Email,
		Company:        *in.Company,
		SalesContactID: &salesContact,
	}

	if err := s.repo.Create(customer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewValidationError("email", msgCustomerEmailTaken)
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return shapeCustomer(shape, customer), nil
}

// Update applies a full (partial=false) or partial update. A full update requires
// every mandatory field. Only the customer's sales contact may update it.
func (s *CustomerService) Update(p *access.Principal, id uuid.UUID, in *CustomerInput, partial bool) (interface{}, error) {
	if p == nil {
		return nil, apperrors.ErrAuthenticationRequired
	}

	customer, err := s.get(id)
	if err != nil {
		return nil, err
	}

	action := access.ActionUpdate
	if partial {
		action = access.ActionPartialUpdate
	}
	shape, err := s.policy.Authorize(action, p, customer.SalesContactID)
	if err != nil {
		return nil, err
	}

	var req required
	if !partial {
		req.check("first_name", in.FirstName != nil)
		req.check("last_name", in.LastName != nil)
		req.check("phone", in.Phone != nil)
		req.check("email", in.Email != nil)
		req.check("company", in.Company != nil)
	}
	if err := merge(req.err(), validate(s.validator, in)); err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != customer.Email {
		if err := s.checkEmailFree(*in.Email, customer.ID); err != nil {
			return nil, err
		}
	}

	if in.SalesContact != nil {
		if err := checkUserExists(s.userRepo, "sales_contact", *in.SalesContact); err != nil {
			return nil, err
		}
	}

	applyCustomerInput(customer, in)

	if err := s.repo.Update(customer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewValidationError("email", msgCustomerEmailTaken)
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return shapeCustomer(shape, customer), nil
}

// Destroy deletes a customer. Managers only.
func (s *CustomerService) Destroy(p *access.Principal, id uuid.UUID) error {
	if _, err := s.policy.Authorize(access.ActionDestroy, p, nil); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCustomerNotFound
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

func (s *CustomerService) get(id uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

func (s *CustomerService) checkEmailFree(email string, self uuid.UUID) error {
	existing, err := s.repo.GetByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing customer by email: %w", err)
	}
	if existing != nil && existing.ID != self {
		return apperrors.NewValidationError("email", msgCustomerEmailTaken)
	}
	return nil
}

// applyCustomerInput copies the fields present in the body. Absent optional
// fields keep their stored value on full and partial updates alike.
func applyCustomerInput(c *models.Customer, in *CustomerInput) {
	if in.FirstName != nil {
		c.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		c.LastName = *in.LastName
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Mobile != nil {
		c.Mobile = *in.Mobile
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Company != nil {
		c.Company = *in.Company
	}
	if in.SalesContact != nil {
		c.SalesContactID = in.SalesContact
		c.SalesContact = nil
	}
	if in.Existing != nil {
		c.Existing = *in.Existing
	}
}

func shapeCustomer(shape access.Shape, c *models.Customer) interface{} {
	switch shape {
	case access.ShapeList:
		return CustomerListItem{
			ID:           c.ID,
			Company:      c.Company,
			FirstName:    c.FirstName,
			LastName:     c.LastName,
			SalesContact: userRef(c.SalesContact),
			Existing:     c.Existing,
		}
	case access.ShapeDetail:
		return CustomerDetail{
			ID:           c.ID,
			FirstName:    c.FirstName,
			LastName:     c.LastName,
			Phone:        c.Phone,
			Mobile:       c.Mobile,
			Email:        c.Email,
			Company:      c.Company,
			DateCreated:  formatTimestamp(c.CreatedAt),
			DateUpdated:  formatTimestamp(c.UpdatedAt),
			SalesContact: userRef(c.SalesContact),
			Existing:     c.Existing,
		}
	case access.ShapeCreate:
		return CustomerCreated{
			ID:           c.ID,
			FirstName:    c.FirstName,
			LastName:     c.LastName,
			Phone:        c.Phone,
			Mobile:       c.Mobile,
			Email:        c.Email,
			Company:      c.Company,
			DateCreated:  formatTimestamp(c.CreatedAt),
			DateUpdated:  formatTimestamp(c.UpdatedAt),
			SalesContact: c.SalesContactID,
		}
	case access.ShapeEdit:
		return CustomerEdit{
			ID:           c.ID,
			FirstName:    c.FirstName,
			LastName:     c.LastName,
			Phone:        c.Phone,
			Mobile:       c.Mobile,
			Email:        c.Email,
			Company:      c.Company,
			DateCreated:  formatTimestamp(c.CreatedAt),
			DateUpdated:  formatTimestamp(c.UpdatedAt),
			SalesContact: c.SalesContactID,
			Existing:     c.Existing,
		}
	}
	return nil
}

// checkUserExists returns a field error when no user has id
func checkUserExists(repo repository.UserRepositoryInterface, field string, id uuid.UUID) error {
	if _, err := repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewValidationError(field, fmt.Sprintf("Invalid pk %q - object does not exist.", id))
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	return nil
}
