package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const nonFieldErrors = "non_field_errors"

// Input layout of <input type="datetime-local">
const dateTimeLocalLayout = "2006-01-02T15:04"

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type passwordForm struct {
	OldPassword  string `form:"old_password" binding:"required"`
	NewPassword  string `form:"new_password" binding:"required,min=8"`
	NewPassword2 string `form:"new_password2" binding:"required,eqfield=NewPassword"`
}

type customerForm struct {
	FirstName    string `form:"first_name" binding:"required,max=20"`
	LastName     string `form:"last_name" binding:"required,max=20"`
	Phone        string `form:"phone" binding:"required,max=20"`
	Mobile       string `form:"mobile" binding:"max=20"`
	Email        string `form:"email" binding:"required,email,max=100"`
	Company      string `form:"company" binding:"required,max=100"`
	SalesContact string `form:"sales_contact"`
	Existing     bool   `form:"existing"`
}

func (f customerForm) body(edit bool) gin.H {
	body := gin.H{
		"first_name": f.FirstName,
		"last_name":  f.LastName,
		"phone":      f.Phone,
		"mobile":     f.Mobile,
		"email":      f.Email,
		"company":    f.Company,
	}
	if edit {
		body["existing"] = f.Existing
		if f.SalesContact != "" {
			body["sales_contact"] = f.SalesContact
		}
	}
	return body
}

type contractForm struct {
	Amount       int    `form:"amount" binding:"gte=0"`
	PaymentDue   string `form:"payment_due" binding:"required,datetime=2006-01-02"`
	SalesContact string `form:"sales_contact"`
	Status       bool   `form:"status"`
}

func (f contractForm) body(edit bool) gin.H {
	body := gin.H{
		"amount":      f.Amount,
		"payment_due": f.PaymentDue,
	}
	if edit {
		body["status"] = f.Status
		if f.SalesContact != "" {
			body["sales_contact"] = f.SalesContact
		}
	}
	return body
}

type eventForm struct {
	SupportContact string `form:"support_contact"`
	Attendees      int    `form:"attendees" binding:"gte=0"`
	EventDate      string `form:"event_date" binding:"omitempty,datetime=2006-01-02T15:04"`
	Note           string `form:"note" binding:"required,max=1024"`
	Status         bool   `form:"status"`
}

func (f eventForm) body(edit bool) gin.H {
	body := gin.H{
		"attendees": f.Attendees,
		"note":      f.Note,
	}
	if f.SupportContact != "" {
		body["support_contact"] = f.SupportContact
	}
	if f.EventDate != "" {
		body["event_date"] = f.EventDate
	}
	if edit {
		body["status"] = f.Status
	}
	return body
}

type userForm struct {
	Email     string `form:"email" binding:"required,email,max=255"`
	FirstName string `form:"first_name" binding:"required,max=150"`
	LastName  string `form:"last_name" binding:"required,max=150"`
	Phone     string `form:"phone" binding:"max=20"`
	Mobile    string `form:"mobile" binding:"max=20"`
	Role      string `form:"role" binding:"required,oneof=sales support manager"`
	Password  string `form:"password"`
	Password2 string `form:"password2"`
}

func (f userForm) body(edit bool) gin.H {
	body := gin.H{
		"email":      f.Email,
		"first_name": f.FirstName,
		"last_name":  f.LastName,
		"phone":      f.Phone,
		"mobile":     f.Mobile,
		"role":       f.Role,
	}
	if !edit {
		body["password"] = f.Password
		body["password2"] = f.Password2
	}
	return body
}

// bindForm binds the posted form into form and returns its field errors keyed
// by form field name, or nil when the form is valid.
func bindForm(c *gin.Context, form interface{}) map[string][]string {
	err := c.ShouldBind(form)
	if err == nil {
		return nil
	}

	errs := map[string][]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs[nonFieldErrors] = []string{"Enter valid values."}
		return errs
	}

	t := reflect.TypeOf(form).Elem()
	for _, fe := range verrs {
		name := fe.Field()
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if tag := f.Tag.Get("form"); tag != "" {
				name = tag
			}
		}
		errs[name] = append(errs[name], fieldMessage(fe))
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "eqfield":
		return "The two password fields didn't match."
	case "oneof":
		return "Select a valid choice."
	case "datetime":
		return "Enter a valid date."
	default:
		return "Enter a valid value."
	}
}

// toDateTimeLocal converts an API event date to the datetime-local input layout
func toDateTimeLocal(value string) string {
	for _, layout := range []string{secondsLayout, microsLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(dateTimeLocalLayout)
		}
	}
	return ""
}
