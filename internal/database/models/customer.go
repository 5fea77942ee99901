package models

import "github.com/google/uuid"

// Customer is a prospect or client company contact
type Customer struct {
	BaseModel
	FirstName      string     `json:"first_name" gorm:"size:20;not null"`
	LastName       string     `json:"last_name" gorm:"size:20;not null"`
	Phone          string     `json:"phone" gorm:"size:20"`
	Mobile         string     `json:"mobile" gorm:"size:20"`
	Email          string     `json:"email" gorm:"uniqueIndex;size:100;not null"`
	Company        string     `json:"company" gorm:"size:100"`
	SalesContactID *uuid.UUID `json:"sales_contact_id,omitempty" gorm:"type:uuid;index"`
	Existing       bool       `json:"existing" gorm:"not null;default:false"`

	SalesContact *User `json:"sales_contact,omitempty" gorm:"foreignKey:SalesContactID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Customer
func (Customer) TableName() string {
	return "customers"
}
