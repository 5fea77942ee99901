package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is a support engagement organized for a customer, optionally tied to a contract
type Event struct {
	BaseModel
	CustomerID       uuid.UUID  `json:"customer_id" gorm:"type:uuid;not null;index"`
	ContractID       *uuid.UUID `json:"contract_id,omitempty" gorm:"type:uuid;index"`
	SupportContactID *uuid.UUID `json:"support_contact_id,omitempty" gorm:"type:uuid;index"`
	Attendees        int        `json:"attendees" gorm:"not null;default:0;check:attendees >= 0"`
	EventDate        time.Time  `json:"event_date" gorm:"not null"`
	Note             string     `json:"note" gorm:"size:1024"`
	Status           bool       `json:"status" gorm:"not null;default:false"`

	Customer       Customer  `json:"customer,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Contract       *Contract `json:"contract,omitempty" gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE"`
	SupportContact *User     `json:"support_contact,omitempty" gorm:"foreignKey:SupportContactID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Event
func (Event) TableName() string {
	return "events"
}
