package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventRepository handles database operations for events
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates a new event
func (r *EventRepository) Create(event *models.Event) error {
	return r.db.Omit(clause.Associations).Create(event).Error
}

// GetByID retrieves an event by ID with its customer, contract and support contact
func (r *EventRepository) GetByID(id uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := r.db.
		Preload("Customer").
		Preload("Contract").
		Preload("SupportContact.Groups").
		First(&event, "events.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetByContractID retrieves the event organized for a contract
func (r *EventRepository) GetByContractID(contractID uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := r.db.Order("created_at").First(&event, "contract_id = ?", contractID).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// List retrieves events matching filter with pagination
func (r *EventRepository) List(filter EventFilter, limit, offset int) ([]models.Event, int64, error) {
	var events []models.Event
	var total int64

	// Get total count
	if err := r.db.Model(&models.Event{}).Scopes(filter.Scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get paginated results
	err := r.db.Model(&models.Event{}).
		Scopes(filter.Scope).
		Preload("Customer").
		Preload("SupportContact").
		Order("events.created_at, events.id").
		Limit(limit).Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// Update updates an event
func (r *EventRepository) Update(event *models.Event) error {
	return r.db.Omit(clause.Associations).Save(event).Error
}

// Delete deletes an event
func (r *EventRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&models.Event{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
