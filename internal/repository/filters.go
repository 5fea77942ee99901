package repository

import (
	"strings"
	"time"

	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Textual renderings of timestamps used by the `date_contains` filters. They match
// the wire formats of date_created and event_date.
const (
	pgTimestampMicros  = `'YYYY-MM-DD"T"HH24:MI:SS.US"Z"'`
	pgTimestampSeconds = `'YYYY-MM-DD"T"HH24:MI:SS"Z"'`
)

// CustomerFilter holds the optional list filters for customers.
// Zero values are ignored.
type CustomerFilter struct {
	Email          string
	LastName       string
	Company        string
	SalesContactID *uuid.UUID
	DateContains   string
}

// ContractFilter holds the optional list filters for contracts.
type ContractFilter struct {
	CustomerEmail    string
	CustomerLastName string
	CustomerCompany  string
	DateCreated      *time.Time
	Amount           *int
	SalesContactID   *uuid.UUID
	DateContains     string
}

// EventFilter holds the optional list filters for events.
type EventFilter struct {
	CustomerEmail    string
	CustomerLastName string
	CustomerCompany  string
	EventDate        *time.Time
	SupportContactID *uuid.UUID
	DateContains     string
}

// UserFilter holds the optional list filters for users.
type UserFilter struct {
	Role models.Role
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns value into an ILIKE pattern matching it literally anywhere
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

func dateContains(column, format, value string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("to_char("+column+" AT TIME ZONE 'UTC', "+format+`) ILIKE ? ESCAPE '\'`, containsPattern(value))
	}
}

func sameDay(column string, day time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("DATE("+column+" AT TIME ZONE 'UTC') = ?", day.Format("2006-01-02"))
	}
}

// Scope applies the customer filter to a query on the customers table.
func (f CustomerFilter) Scope(db *gorm.DB) *gorm.DB {
	if f.Email != "" {
		db = db.Where("customers.email = ?", f.Email)
	}
	if f.LastName != "" {
		db = db.Where("customers.last_name = ?", f.LastName)
	}
	if f.Company != "" {
		db = db.Where("customers.company = ?", f.Company)
	}
	if f.SalesContactID != nil {
		db = db.Where("customers.sales_contact_id = ?", *f.SalesContactID)
	}
	if f.DateContains != "" {
		db = db.Scopes(dateContains("customers.created_at", pgTimestampMicros, f.DateContains))
	}
	return db
}

func customerJoinFilters(db *gorm.DB, email, lastName, company string) *gorm.DB {
	if email == "" && lastName == "" && company == "" {
		return db
	}
	db = db.Joins("Customer")
	if email != "" {
		db = db.Where(`"Customer"."email" = ?`, email)
	}
	if lastName != "" {
		db = db.Where(`"Customer"."last_name" = ?`, lastName)
	}
	if company != "" {
		db = db.Where(`"Customer"."company" = ?`, company)
	}
	return db
}

// Scope applies the contract filter to a query on the contracts table.
func (f ContractFilter) Scope(db *gorm.DB) *gorm.DB {
	db = customerJoinFilters(db, f.CustomerEmail, f.CustomerLastName, f.CustomerCompany)
	if f.DateCreated != nil {
		db = db.Scopes(sameDay("contracts.created_at", *f.DateCreated))
	}
	if f.Amount != nil {
		db = db.Where("contracts.amount = ?", *f.Amount)
	}
	if f.SalesContactID != nil {
		db = db.Where("contracts.sales_contact_id = ?", *f.SalesContactID)
	}
	if f.DateContains != "" {
		db = db.Scopes(dateContains("contracts.created_at", pgTimestampMicros, f.DateContains))
	}
	return db
}

// Scope applies the event filter to a query on the events table.
func (f EventFilter) Scope(db *gorm.DB) *gorm.DB {
	db = customerJoinFilters(db, f.CustomerEmail, f.CustomerLastName, f.CustomerCompany)
	if f.EventDate != nil {
		db = db.Scopes(sameDay("events.event_date", *f.EventDate))
	}
	if f.SupportContactID != nil {
		db = db.Where("events.support_contact_id = ?", *f.SupportContactID)
	}
	if f.DateContains != "" {
		db = db.Scopes(dateContains("events.event_date", pgTimestampSeconds, f.DateContains))
	}
	return db
}

// Scope applies the user filter to a query on the users table.
func (f UserFilter) Scope(db *gorm.DB) *gorm.DB {
	if f.Role == models.RoleNone {
		return db
	}
	return db.Where(
		"users.id IN (SELECT ug.user_id FROM user_groups ug JOIN groups g ON g.id = ug.group_id WHERE g.name = ?)",
		string(f.Role),
	)
}
