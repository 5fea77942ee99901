package models

import (
	"time"

	"github.com/google/uuid"
)

// Contract is a sales agreement with a customer
type Contract struct {
	BaseModel
	CustomerID     uuid.UUID  `json:"customer_id" gorm:"type:uuid;not null;index"`
	SalesContactID *uuid.UUID `json:"sales_contact_id,omitempty" gorm:"type:uuid;index"`
	Amount         int        `json:"amount" gorm:"not null;default:0;check:amount >= 0"`
	PaymentDue     time.Time  `json:"payment_due" gorm:"type:date;not null"`
	Status         bool       `json:"status" gorm:"not null;default:false"`
	EventCreated   bool       `json:"event_created" gorm:"not null;default:false"`

	Customer     Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	SalesContact *User    `json:"sales_contact,omitempty" gorm:"foreignKey:SalesContactID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Contract
func (Contract) TableName() string {
	return "contracts"
}
