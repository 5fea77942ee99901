package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContractRepository handles database operations for contracts
type ContractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// Create creates a new contract
func (r *ContractRepository) Create(contract *models.Contract) error {
	return r.db.Omit(clause.Associations).Create(contract).Error
}

// GetByID retrieves a contract by ID with its customer and sales contact
func (r *ContractRepository) GetByID(id uuid.UUID) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.
		Preload("Customer").
		Preload("SalesContact").
		First(&contract, "contracts.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// List retrieves contracts matching filter with pagination
func (r *ContractRepository) List(filter ContractFilter, limit, offset int) ([]models.Contract, int64, error) {
	var contracts []models.Contract
	var total int64

	// Get total count
	if err := r.db.Model(&models.Contract{}).Scopes(filter.Scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get paginated results
	err := r.db.Model(&models.Contract{}).
		Scopes(filter.Scope).
		Preload("Customer").
		Preload("SalesContact").
		Order("contracts.created_at, contracts.id").
		Limit(limit).Offset(offset).
		Find(&contracts).Error
	if err != nil {
		return nil, 0, err
	}

	return contracts, total, nil
}

// Update updates a contract
func (r *ContractRepository) Update(contract *models.Contract) error {
	return r.db.Omit(clause.Associations).Save(contract).Error
}

// Delete deletes a contract. Events tied to it cascade in the database.
func (r *ContractRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&models.Contract{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
