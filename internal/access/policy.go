// Package access decides, per requested action, which data shape a record
// endpoint answers with and whether the acting user may perform the action.
package access

import (
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"

	"github.com/google/uuid"
)

// Action is a record endpoint operation
type Action string

const (
	ActionList          Action = "list"
	ActionRetrieve      Action = "retrieve"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionDestroy       Action = "destroy"
)

// Shape is the field set used to read or write a record
type Shape int

const (
	ShapeNone Shape = iota
	ShapeList
	ShapeDetail
	ShapeCreate
	ShapeEdit
)

func (s Shape) String() string {
	switch s {
	case ShapeList:
		return "list"
	case ShapeDetail:
		return "detail"
	case ShapeCreate:
		return "create"
	case ShapeEdit:
		return "edit"
	}
	return "none"
}

// Principal is the authenticated user acting on a request
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   models.Role
}

// Permission reports whether principal may act on a record whose referee is
// referee. referee is nil for actions that are not bound to one record, or when
// the record has no referee assigned.
type Permission func(p *Principal, referee *uuid.UUID) bool

// Rule binds an action to its shape and permission
type Rule struct {
	Shape      Shape
	Permission Permission
}

// Policy is the action table of one record type
type Policy map[Action]Rule

// Authorize returns the shape for action when principal passes the rule's permission.
// A nil principal fails with ErrAuthenticationRequired, everything else that does not
// pass with ErrPermissionDenied.
func (p Policy) Authorize(action Action, principal *Principal, referee *uuid.UUID) (Shape, error) {
	if principal == nil {
		return ShapeNone, apperrors.ErrAuthenticationRequired
	}
	rule, ok := p[action]
	if !ok {
		return ShapeNone, apperrors.ErrPermissionDenied
	}
	if rule.Permission != nil && !rule.Permission(principal, referee) {
		return ShapeNone, apperrors.ErrPermissionDenied
	}
	return rule.Shape, nil
}

// Authenticated passes for any principal
func Authenticated(p *Principal, _ *uuid.UUID) bool {
	return p != nil
}

// HasRole passes when the principal holds one of roles
func HasRole(roles ...models.Role) Permission {
	return func(p *Principal, _ *uuid.UUID) bool {
		if p == nil {
			return false
		}
		for _, r := range roles {
			if p.Role == r {
				return true
			}
		}
		return false
	}
}

// IsReferee passes when the principal is the record's assigned contact
func IsReferee(p *Principal, referee *uuid.UUID) bool {
	return p != nil && referee != nil && *referee == p.UserID
}

// RecordPolicy is the table shared by customers, contracts and events
var RecordPolicy = Policy{
	ActionList:          {Shape: ShapeList, Permission: Authenticated},
	ActionRetrieve:      {Shape: ShapeDetail, Permission: Authenticated},
	ActionCreate:        {Shape: ShapeCreate, Permission: HasRole(models.RoleSales)},
	ActionUpdate:        {Shape: ShapeEdit, Permission: IsReferee},
	ActionPartialUpdate: {Shape: ShapeEdit, Permission: IsReferee},
	ActionDestroy:       {Shape: ShapeNone, Permission: HasRole(models.RoleManager)},
}

// UserPolicy governs the user management endpoints
var UserPolicy = Policy{
	ActionList:          {Shape: ShapeList, Permission: Authenticated},
	ActionRetrieve:      {Shape: ShapeDetail, Permission: Authenticated},
	ActionCreate:        {Shape: ShapeCreate, Permission: HasRole(models.RoleManager)},
	ActionUpdate:        {Shape: ShapeEdit, Permission: HasRole(models.RoleManager)},
	ActionPartialUpdate: {Shape: ShapeEdit, Permission: HasRole(models.RoleManager)},
	ActionDestroy:       {Shape: ShapeNone, Permission: HasRole(models.RoleManager)},
}
