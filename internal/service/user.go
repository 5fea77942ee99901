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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	msgUserEmailTaken   = "user with this email already exists."
	msgPasswordMismatch = "Password fields didn't match."
	msgWrongPassword    = "Old password is not correct."
)

// UserService handles business logic for staff users
type UserService struct {
	repo      repository.UserRepositoryInterface
	groupRepo repository.GroupRepositoryInterface
	validator *validator.Validate
	policy    access.Policy
	pageSize  int
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepositoryInterface, groupRepo repository.GroupRepositoryInterface, validator *validator.Validate, pageSize int) *UserService {
	return &UserService{
		repo:      repo,
		groupRepo: groupRepo,
		validator: validator,
		policy:    access.UserPolicy,
		pageSize:  pageSize,
	}
}

// SignupInput is the payload of a new user
type SignupInput struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required"`
	Phone     string `json:"phone" validate:"max=20"`
	Mobile    string `json:"mobile" validate:"max=20"`
	Role      string `json:"role" validate:"required,oneof=sales support manager"`
}

// UserInput is the partial update payload of a user
type UserInput struct {
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	Mobile    *string `json:"mobile" validate:"omitempty,max=20"`
	Role      *string `json:"role" validate:"omitempty,oneof=sales support manager"`
}

// PasswordUpdateInput is the payload of a password change
type PasswordUpdateInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// UserListItem is the list shape of a user
type UserListItem struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
}

// UserDetail is the detail shape of a user
type UserDetail struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	Mobile      string    `json:"mobile"`
	Role        string    `json:"role"`
	DateCreated string    `json:"date_created"`
	DateUpdated string    `json:"date_updated"`
}

// List returns one page of users, optionally restricted to a role
func (s *UserService) List(p *access.Principal, filter repository.UserFilter, page int) (*ListResult, error) {
	shape, err := s.policy.Authorize(access.ActionList, p, nil)
	if err != nil {
		return nil, err
	}
	if filter.Role != "" && !filter.Role.IsValid() {
		return nil, apperrors.NewValidationError("role", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", filter.Role))
	}

	offset, err := offsetFor(page, s.pageSize)
	if err != nil {
		return nil, err
	}

	users, total, err := s.repo.List(filter, s.pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if err := checkPage(page, s.pageSize, total); err != nil {
		return nil, err
	}

	results := make([]interface{}, len(users))
	for i := range users {
		results[i] = shapeUser(shape, &users[i])
	}

	return &ListResult{Count: total, Page: page, PageSize: s.pageSize, Results: results}, nil
}

// Retrieve returns one user in the detail shape
func (s *UserService) Retrieve(p *access.Principal, id uuid.UUID) (interface{}, error) {
	shape, err := s.policy.Authorize(access.ActionRetrieve, p, nil)
	if err != nil {
		return nil, err
	}

	user, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return shapeUser(shape, user), nil
}

// Me returns the acting user
func (s *UserService) Me(p *access.Principal) (interface{}, error) {
	if p == nil {
		return nil, apperrors.ErrAuthenticationRequired
	}

	user, err := s.get(p.UserID)
	if err != nil {
		return nil, err
	}
	return shapeUser(access.ShapeDetail, user), nil
}

// Signup creates a user and adds it to the group named by its role. Managers only.
func (s *UserService) Signup(p *access.Principal, in *SignupInput) (interface{}, error) {
	shape, err := s.policy.Authorize(access.ActionCreate, p, nil)
	if err != nil {
		return nil, err
	}

	verr := validate(s.validator, in)
	if in.Password2 != "" && in.Password != in.Password2 {
		verr = merge(verr, apperrors.NewValidationError("password", msgPasswordMismatch))
	}
	if verr != nil {
		return nil, verr
	}

	if err := s.checkEmailFree(in.Email); err != nil {
		return nil, err
	}

	group, err := s.group(in.Role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Mobile:       in.Mobile,
		PasswordHash: string(hash),
		Groups:       []models.Group{*group},
	}

	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewValidationError("email", msgUserEmailTaken)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return shapeUser(shape, user), nil
}

// Update applies a partial update. A new role replaces every group membership.
func (s *UserService) Update(p *access.Principal, id uuid.UUID, in *UserInput) (interface{}, error) {
	shape, err := s.policy.Authorize(access.ActionPartialUpdate, p, nil)
	if err != nil {
		return nil, err
	}

	user, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if err := validate(s.validator, in); err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		if err := s.checkEmailFree(*in.Email); err != nil {
			return nil, err
		}
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Mobile != nil {
		user.Mobile = *in.Mobile
	}

	// nil keeps the current memberships
	var groups []models.Group
	if in.Role != nil && models.Role(*in.Role) != user.Role() {
		group, err := s.group(*in.Role)
		if err != nil {
			return nil, err
		}
		groups = []models.Group{*group}
	}

	if err := s.repo.UpdateWithGroups(user, groups); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewValidationError("email", msgUserEmailTaken)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if groups != nil {
		user.Groups = groups
	}

	return shapeUser(shape, user), nil
}

// Destroy deletes a user. Managers only.
func (s *UserService) Destroy(p *access.Principal, id uuid.UUID) error {
	if _, err := s.policy.Authorize(access.ActionDestroy, p, nil); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// UpdatePassword changes the acting user's password after checking the old one
func (s *UserService) UpdatePassword(p *access.Principal, in *PasswordUpdateInput) error {
	if p == nil {
		return apperrors.ErrAuthenticationRequired
	}

	if err := validate(s.validator, in); err != nil {
		return err
	}

	user, err := s.get(p.UserID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)) != nil {
		return apperrors.NewValidationError("old_password", msgWrongPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.repo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *UserService) get(id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *UserService) checkEmailFree(email string) error {
	_, err := s.repo.GetByEmail(email)
	if err == nil {
		return apperrors.NewValidationError("email", msgUserEmailTaken)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check user email: %w", err)
	}
	return nil
}

func (s *UserService) group(role string) (*models.Group, error) {
	group, err := s.groupRepo.GetByName(role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewValidationError("role", fmt.Sprintf("no group named %q", role))
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

func shapeUser(shape access.Shape, u *models.User) interface{} {
	if shape == access.ShapeList {
		return UserListItem{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Role:      u.Role().String(),
		}
	}
	return UserDetail{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		Mobile:      u.Mobile,
		Role:        u.Role().String(),
		DateCreated: formatTimestamp(u.CreatedAt),
		DateUpdated: formatTimestamp(u.UpdatedAt),
	}
}
