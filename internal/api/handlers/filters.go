package handlers

import (
	"strconv"
	"time"

	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dayLayout = "2006-01-02"

// queryParser collects the typed query filters of one request
type queryParser struct {
	c    *gin.Context
	verr apperrors.ValidationError
}

func (q *queryParser) uuidParam(name string) *uuid.UUID {
	raw := q.c.Query(name)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		q.verr.Add(name, "Select a valid choice. That choice is not one of the available choices.")
		return nil
	}
	return &id
}

func (q *queryParser) dayParam(name string) *time.Time {
	raw := q.c.Query(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(dayLayout, raw)
	if err != nil {
		q.verr.Add(name, "Enter a valid date.")
		return nil
	}
	return &t
}

func (q *queryParser) intParam(name string) *int {
	raw := q.c.Query(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		q.verr.Add(name, "Enter a number.")
		return nil
	}
	return &n
}

func (q *queryParser) err() error {
	if q.verr.HasErrors() {
		return &q.verr
	}
	return nil
}

func customerFilter(c *gin.Context) (repository.CustomerFilter, error) {
	q := queryParser{c: c}
	f := repository.CustomerFilter{
		Email:          c.Query("email"),
		LastName:       c.Query("last_name"),
		Company:        c.Query("company"),
		SalesContactID: q.uuidParam("sales_contact"),
		DateContains:   c.Query("date_contains"),
	}
	return f, q.err()
}

func contractFilter(c *gin.Context) (repository.ContractFilter, error) {
	q := queryParser{c: c}
	f := repository.ContractFilter{
		CustomerEmail:    c.Query("customer_email"),
		CustomerLastName: c.Query("customer_last_name"),
		CustomerCompany:  c.Query("customer_company"),
		DateCreated:      q.dayParam("date_created"),
		Amount:           q.intParam("amount"),
		SalesContactID:   q.uuidParam("sales_contact"),
		DateContains:     c.Query("date_contains"),
	}
	return f, q.err()
}

func eventFilter(c *gin.Context) (repository.EventFilter, error) {
	q := queryParser{c: c}
	f := repository.EventFilter{
		CustomerEmail:    c.Query("customer_email"),
		CustomerLastName: c.Query("customer_last_name"),
		CustomerCompany:  c.Query("customer_company"),
		EventDate:        q.dayParam("event_date"),
		SupportContactID: q.uuidParam("support_contact"),
		DateContains:     c.Query("date_contains"),
	}
	return f, q.err()
}

func userFilter(c *gin.Context) repository.UserFilter {
	return repository.UserFilter{Role: models.Role(c.Query("role"))}
}
