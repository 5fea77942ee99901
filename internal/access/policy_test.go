package access

import (
	"testing"

	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func principal(role models.Role) *Principal {
	return &Principal{UserID: uuid.New(), Email: string(role) + "@crm.test", Role: role}
}

func TestRecordPolicy_Unauthenticated(t *testing.T) {
	referee := uuid.New()
	for _, action := range []Action{ActionList, ActionRetrieve, ActionCreate, ActionUpdate, ActionPartialUpdate, ActionDestroy} {
		t.Run(string(action), func(t *testing.T) {
			shape, err := RecordPolicy.Authorize(action, nil, &referee)
			assert.ErrorIs(t, err, apperrors.ErrAuthenticationRequired)
			assert.Equal(t, ShapeNone, shape)
		})
	}
}

func TestRecordPolicy_Shapes(t *testing.T) {
	sales := principal(models.RoleSales)

	tests := []struct {
		action Action
		want   Shape
	}{
		{ActionList, ShapeList},
		{ActionRetrieve, ShapeDetail},
		{ActionCreate, ShapeCreate},
		{ActionUpdate, ShapeEdit},
		{ActionPartialUpdate, ShapeEdit},
	}
	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			shape, err := RecordPolicy.Authorize(tt.action, sales, &sales.UserID)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, shape)
		})
	}
}

func TestRecordPolicy_Create(t *testing.T) {
	t.Run("sales may create", func(t *testing.T) {
		_, err := RecordPolicy.Authorize(ActionCreate, principal(models.RoleSales), nil)
		assert.NoError(t, err)
	})

	for _, role := range []models.Role{models.RoleSupport, models.RoleManager, models.RoleNone} {
		t.Run(string(role)+" may not create", func(t *testing.T) {
			_, err := RecordPolicy.Authorize(ActionCreate, principal(role), nil)
			assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		})
	}
}

func TestRecordPolicy_Destroy(t *testing.T) {
	t.Run("manager may delete", func(t *testing.T) {
		shape, err := RecordPolicy.Authorize(ActionDestroy, principal(models.RoleManager), nil)
		assert.NoError(t, err)
		assert.Equal(t, ShapeNone, shape)
	})

	for _, role := range []models.Role{models.RoleSales, models.RoleSupport} {
		t.Run(string(role)+" may not delete own record", func(t *testing.T) {
			p := principal(role)
			_, err := RecordPolicy.Authorize(ActionDestroy, p, &p.UserID)
			assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		})
	}
}

func TestRecordPolicy_Update(t *testing.T) {
	owner := principal(models.RoleSales)
	other := principal(models.RoleSales)
	manager := principal(models.RoleManager)

	t.Run("referee may update", func(t *testing.T) {
		_, err := RecordPolicy.Authorize(ActionPartialUpdate, owner, &owner.UserID)
		assert.NoError(t, err)
	})

	t.Run("other sales user is denied", func(t *testing.T) {
		_, err := RecordPolicy.Authorize(ActionUpdate, other, &owner.UserID)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("manager is not a referee", func(t *testing.T) {
		_, err := RecordPolicy.Authorize(ActionUpdate, manager, &owner.UserID)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("record without referee", func(t *testing.T) {
		_, err := RecordPolicy.Authorize(ActionPartialUpdate, owner, nil)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestPolicy_UnknownAction(t *testing.T) {
	_, err := RecordPolicy.Authorize(Action("archive"), principal(models.RoleManager), nil)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUserPolicy(t *testing.T) {
	_, err := UserPolicy.Authorize(ActionCreate, principal(models.RoleManager), nil)
	assert.NoError(t, err)

	_, err = UserPolicy.Authorize(ActionCreate, principal(models.RoleSales), nil)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	shape, err := UserPolicy.Authorize(ActionList, principal(models.RoleSupport), nil)
	assert.NoError(t, err)
	assert.Equal(t, ShapeList, shape)
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "edit", ShapeEdit.String())
	assert.Equal(t, "none", ShapeNone.String())
}
