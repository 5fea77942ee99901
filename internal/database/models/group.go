package models

// Group is a named set of users. The seeded groups carry the role names.
type Group struct {
	BaseModel
	Name string `json:"name" gorm:"uniqueIndex;not null;size:150" validate:"required,max=150"`
}

// TableName returns the table name for Group
func (Group) TableName() string {
	return "groups"
}
