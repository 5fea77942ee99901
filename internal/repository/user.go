package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user together with its group memberships
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by ID with its groups
func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Groups").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email with its groups
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Groups").First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users matching filter with pagination
func (r *UserRepository) List(filter UserFilter, limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	// Get total count
	if err := r.db.Model(&models.User{}).Scopes(filter.Scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get paginated results
	err := r.db.Model(&models.User{}).
		Scopes(filter.Scope).
		Preload("Groups").
		Order("users.created_at, users.id").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update saves the user columns. Group memberships are changed through ReplaceGroups.
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Omit(clause.Associations).Save(user).Error
}

// UpdateWithGroups saves the user columns and, when groups is not nil, replaces
// the memberships in the same transaction.
func (r *UserRepository) UpdateWithGroups(user *models.User, groups []models.Group) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := NewUserRepository(tx)
		if err := txRepo.Update(user); err != nil {
			return err
		}
		if groups == nil {
			return nil
		}
		return txRepo.ReplaceGroups(user, groups)
	})
}

// ReplaceGroups sets the user's group memberships to groups
func (r *UserRepository) ReplaceGroups(user *models.User, groups []models.Group) error {
	return r.db.Model(user).Association("Groups").Replace(groups)
}

// Delete deletes a user
func (r *UserRepository) Delete(id uuid.UUID) error {
	res := r.db.Select("Groups").Delete(&models.User{BaseModel: models.BaseModel{ID: id}})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
