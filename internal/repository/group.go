package repository

import (
	"crm-backend/internal/database/models"

	"gorm.io/gorm"
)

// GroupRepository handles database operations for groups
type GroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create creates a new group
func (r *GroupRepository) Create(group *models.Group) error {
	return r.db.Create(group).Error
}

// GetByName retrieves a group by its unique name
func (r *GroupRepository) GetByName(name string) (*models.Group, error) {
	var group models.Group
	err := r.db.First(&group, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GetAll retrieves every group ordered by name
func (r *GroupRepository) GetAll() ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.Order("name").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}
