package models

// User is a staff member able to log in. Email is the login name.
type User struct {
	BaseModel
	Email        string  `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	FirstName    string  `json:"first_name" gorm:"size:150"`
	LastName     string  `json:"last_name" gorm:"size:150"`
	Phone        string  `json:"phone" gorm:"size:20"`
	Mobile       string  `json:"mobile" gorm:"size:20"`
	PasswordHash string  `json:"-" gorm:"not null"`
	Groups       []Group `json:"groups,omitempty" gorm:"many2many:user_groups;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// Role returns the first role group the user belongs to, following RolePrecedence.
// Groups must be preloaded.
func (u *User) Role() Role {
	for _, role := range RolePrecedence {
		for _, g := range u.Groups {
			if g.Name == string(role) {
				return role
			}
		}
	}
	return RoleNone
}
