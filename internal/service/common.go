package service

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Wire formats of the record timestamps
const (
	TimestampFormat = "2006-01-02T15:04:05.000000Z"
	EventDateFormat = "2006-01-02T15:04:05Z"
	DueDateFormat   = "2006-01-02"
)

const msgRequired = "This field is required."

// ErrInvalidPage is returned when the requested page is out of range
var ErrInvalidPage = &apperrors.NotFoundError{Entity: "page"}

// ListResult is one page of shaped records
type ListResult struct {
	Count    int64         `json:"count"`
	Page     int           `json:"-"`
	PageSize int           `json:"-"`
	Results  []interface{} `json:"results"`
}

// HasNext reports whether a page follows this one
func (r *ListResult) HasNext() bool {
	return int64(r.Page*r.PageSize) < r.Count
}

// HasPrevious reports whether a page precedes this one
func (r *ListResult) HasPrevious() bool {
	return r.Page > 1
}

// UserRef is the embedded summary of a user
type UserRef struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// CustomerRef is the embedded summary of a customer
type CustomerRef struct {
	ID      uuid.UUID `json:"id"`
	Company string    `json:"company"`
}

// IDRef is the embedded summary of a contract or an event
type IDRef struct {
	ID uuid.UUID `json:"id"`
}

func userRef(u *models.User) *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{ID: u.ID, Email: u.Email}
}

func customerRef(c *models.Customer) *CustomerRef {
	if c == nil || c.ID == uuid.Nil {
		return nil
	}
	return &CustomerRef{ID: c.ID, Company: c.Company}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// NewValidator returns a validator reporting fields by their json names
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validate runs struct validation and returns field errors as a ValidationError
func validate(v *validator.Validate, req interface{}) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validation failed: %w", err)
	}

	verr := &apperrors.ValidationError{}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fieldMessage(fe))
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		if fe.Kind() == reflect.Int {
			return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
		}
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", fe.Param())
	}
	return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
}

// required records a "required" error for every named field whose value is missing
type required struct {
	verr apperrors.ValidationError
}

func (r *required) check(field string, present bool) {
	if !present {
		r.verr.Add(field, msgRequired)
	}
}

func (r *required) err() error {
	if r.verr.HasErrors() {
		return &r.verr
	}
	return nil
}

// merge folds field errors of b into a; either may be nil
func merge(a, b error) error {
	if b == nil {
		return a
	}
	if a == nil {
		return b
	}
	va, okA := apperrors.AsValidation(a)
	vb, okB := apperrors.AsValidation(b)
	if !okA || !okB {
		return a
	}
	for field, msgs := range vb.Fields {
		for _, m := range msgs {
			va.Add(field, m)
		}
	}
	return va
}

// offsetFor returns the row offset of page. Pages whose offset does not fit
// in an int cannot exist.
func offsetFor(page, pageSize int) (int, error) {
	if page < 1 || pageSize < 1 || page-1 > math.MaxInt/pageSize {
		return 0, ErrInvalidPage
	}
	return (page - 1) * pageSize, nil
}

// checkPage rejects pages past the last one. The first page is always valid.
func checkPage(page, pageSize int, total int64) error {
	if page > 1 && int64((page-1)*pageSize) >= total {
		return ErrInvalidPage
	}
	return nil
}

func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

var (
	dueDateLayouts   = []string{DueDateFormat, time.RFC3339}
	eventDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05"}
)

// parseTime tries each layout in turn and returns a field error when none matches
func parseTime(field, value string, layouts []string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.NewValidationError(field, "Date has wrong format.")
}
