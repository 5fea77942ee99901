package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CustomerRepository handles database operations for customers
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create creates a new customer
func (r *CustomerRepository) Create(customer *models.Customer) error {
	return r.db.Omit(clause.Associations).Create(customer).Error
}

// GetByID retrieves a customer by ID with its sales contact
func (r *CustomerRepository) GetByID(id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Preload("SalesContact").First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetByEmail retrieves a customer by email
func (r *CustomerRepository) GetByEmail(email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.First(&customer, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// List retrieves customers matching filter with pagination
func (r *CustomerRepository) List(filter CustomerFilter, limit, offset int) ([]models.Customer, int64, error) {
	var customers []models.Customer
	var total int64

	// Get total count
	if err := r.db.Model(&models.Customer{}).Scopes(filter.Scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get paginated results
	err := r.db.Model(&models.Customer{}).
		Scopes(filter.Scope).
		Preload("SalesContact").
		Order("customers.created_at, customers.id").
		Limit(limit).Offset(offset).
		Find(&customers).Error
	if err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

// Update updates a customer
func (r *CustomerRepository) Update(customer *models.Customer) error {
	return r.db.Omit(clause.Associations).Save(customer).Error
}

// Delete deletes a customer. Contracts and events cascade in the database.
func (r *CustomerRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&models.Customer{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
