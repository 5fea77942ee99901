//go:build integration
// +build integration

package repository

import (
	"testing"

	"crm-backend/internal/database/models"
	"crm-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UserRepositoryTestSuite tests the UserRepository
type UserRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *UserRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *UserRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewUserRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *UserRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *UserRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *UserRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *UserRepositoryTestSuite) createWithRole(role models.Role) *models.User {
	group, err := suite.baseTestSuite.RoleGroup(role)
	suite.Require().NoError(err)
	user := suite.factories.User.WithGroup(group)
	suite.Require().NoError(suite.repo.Create(user))
	return user
}

// TestCreateAndGet tests that a user is stored with its role group
func (suite *UserRepositoryTestSuite) TestCreateAndGet() {
	user := suite.createWithRole(models.RoleSales)

	found, err := suite.repo.GetByID(user.ID)
	suite.Require().NoError(err)
	suite.Equal(user.Email, found.Email)
	suite.Equal(models.RoleSales, found.Role())

	byEmail, err := suite.repo.GetByEmail(user.Email)
	suite.Require().NoError(err)
	suite.Equal(user.ID, byEmail.ID)
	suite.Len(byEmail.Groups, 1)
}

// TestGetNotFound tests the not found error of both lookups
func (suite *UserRepositoryTestSuite) TestGetNotFound() {
	_, err := suite.repo.GetByID(uuid.New())
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	_, err = suite.repo.GetByEmail("nobody@crm.test")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestDuplicateEmail tests the unique email constraint
func (suite *UserRepositoryTestSuite) TestDuplicateEmail() {
	first := suite.factories.User.WithEmail("dup@crm.test")
	suite.Require().NoError(suite.repo.Create(first))

	second := suite.factories.User.WithEmail("dup@crm.test")
	suite.Error(suite.repo.Create(second))
}

// TestListByRole tests the role filter and pagination
func (suite *UserRepositoryTestSuite) TestListByRole() {
	suite.createWithRole(models.RoleSales)
	suite.createWithRole(models.RoleSales)
	suite.createWithRole(models.RoleSupport)
	suite.createWithRole(models.RoleManager)

	all, total, err := suite.repo.List(UserFilter{}, 10, 0)
	suite.Require().NoError(err)
	suite.Equal(int64(4), total)
	suite.Len(all, 4)

	sales, total, err := suite.repo.List(UserFilter{Role: models.RoleSales}, 1, 0)
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Len(sales, 1)
	suite.Equal(models.RoleSales, sales[0].Role())

	support, total, err := suite.repo.List(UserFilter{Role: models.RoleSupport}, 10, 0)
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal(models.RoleSupport, support[0].Role())
}

// TestReplaceGroups tests changing a user's role
func (suite *UserRepositoryTestSuite) TestReplaceGroups() {
	user := suite.createWithRole(models.RoleSupport)
	manager, err := suite.baseTestSuite.RoleGroup(models.RoleManager)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repo.ReplaceGroups(user, []models.Group{*manager}))

	found, err := suite.repo.GetByID(user.ID)
	suite.Require().NoError(err)
	suite.Equal(models.RoleManager, found.Role())
	suite.Len(found.Groups, 1)
}

// TestUpdateWithGroups tests saving columns and role in one step
func (suite *UserRepositoryTestSuite) TestUpdateWithGroups() {
	user := suite.createWithRole(models.RoleSupport)
	sales, err := suite.baseTestSuite.RoleGroup(models.RoleSales)
	suite.Require().NoError(err)

	user.LastName = "Promoted"
	suite.Require().NoError(suite.repo.UpdateWithGroups(user, []models.Group{*sales}))

	found, err := suite.repo.GetByID(user.ID)
	suite.Require().NoError(err)
	suite.Equal("Promoted", found.LastName)
	suite.Equal(models.RoleSales, found.Role())
}

// TestDuplicateEmailIsTranslated tests that unique violations surface as gorm.ErrDuplicatedKey
func (suite *UserRepositoryTestSuite) TestDuplicateEmailIsTranslated() {
	suite.Require().NoError(suite.repo.Create(suite.factories.User.WithEmail("twin@crm.test")))
	suite.ErrorIs(suite.repo.Create(suite.factories.User.WithEmail("twin@crm.test")), gorm.ErrDuplicatedKey)
}

// TestUpdate tests that Update keeps group memberships
func (suite *UserRepositoryTestSuite) TestUpdate() {
	user := suite.createWithRole(models.RoleSales)
	user.FirstName = "Renamed"

	suite.Require().NoError(suite.repo.Update(user))

	found, err := suite.repo.GetByID(user.ID)
	suite.Require().NoError(err)
	suite.Equal("Renamed", found.FirstName)
	suite.Equal(models.RoleSales, found.Role())
}

// TestDelete tests deleting a user
func (suite *UserRepositoryTestSuite) TestDelete() {
	user := suite.createWithRole(models.RoleSales)

	suite.Require().NoError(suite.repo.Delete(user.ID))

	_, err := suite.repo.GetByID(user.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
	suite.ErrorIs(suite.repo.Delete(user.ID), gorm.ErrRecordNotFound)
}

// TestUserRepositoryTestSuite runs the test suite
func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
