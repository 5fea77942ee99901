package service

import (
	"errors"
	"fmt"
	"time"

	"crm-backend/internal/access"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventService handles business logic for events
type EventService struct {
	repo         repository.EventRepositoryInterface
	customerRepo repository.CustomerRepositoryInterface
	contractRepo repository.ContractRepositoryInterface
	userRepo     repository.UserRepositoryInterface
	validator    *validator.Validate
	policy       access.Policy
	pageSize     int
	now          func() time.Time
}

// NewEventService creates a new event service
func NewEventService(
	repo repository.EventRepositoryInterface,
	customerRepo repository.CustomerRepositoryInterface,
	contractRepo repository.ContractRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	validator *validator.Validate,
	pageSize int,
) *EventService {
	return &EventService{
		repo:         repo,
		customerRepo: customerRepo,
		contractRepo: contractRepo,
		userRepo:     userRepo,
		validator:    validator,
		policy:       access.RecordPolicy,
		pageSize:     pageSize,
		now:          time.Now,
	}
}

// EventInput is the write payload of an event
type EventInput struct {
	Customer       *uuid.UUID `json:"customer"`
	Contract       *uuid.UUID `json:"contract"`
	SupportContact *uuid.UUID `json:"support_contact"`
	Attendees      *int       `json:"attendees" validate:"omitempty,gte=0"`
	EventDate      *string    `json:"event_date"`
	Note           *string    `json:"note" validate:"omitempty,max=1024"`
	Status         *bool      `json:"status"`
}

// SupportContactDetail is the user summary embedded in the event detail shape
type SupportContactDetail struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Mobile    string    `json:"mobile"`
	Role      string    `json:"role"`
}

// EventListItem is the list shape of an event
type EventListItem struct {
	ID             uuid.UUID    `json:"id"`
	Customer       *CustomerRef `json:"customer"`
	Note           string       `json:"note"`
	SupportContact *UserRef     `json:"support_contact"`
	EventDate      string       `json:"event_date"`
	Attendees      int          `json:"attendees"`
}

// EventDetail is the detail shape of an event
type EventDetail struct {
	ID             uuid.UUID             `json:"id"`
	Customer       *CustomerRef          `json:"customer"`
	Contract       *IDRef                `json:"contract"`
	SupportContact *SupportContactDetail `json:"support_contact"`
	DateCreated    string                `json:"date_created"`
	DateUpdated    string                `json:"date_updated"`
	Attendees      int                   `json:"attendees"`
	EventDate      string                `json:"event_date"`
	Note           string                `json:"note"`
	Status         bool                  `json:"status"`
}

// EventCreated is the create shape of an event
type EventCreated struct {
	ID             uuid.UUID  `json:"id"`
	Customer       uuid.UUID  `json:"customer"`
	SupportContact *uuid.UUID `json:"support_contact"`
	Contract       *uuid.UUID `json:"contract"`
	Attendees      int        `json:"attendees"`
	EventDate      string     `json:"event_date"`
	Note           string     `json:"note"`
	Status         bool       `json:"status"`
}

// EventEdit is the edit shape of an event
type EventEdit struct {
	ID             uuid.UUID  `json:"id"`
	Customer       uuid.UUID  `json:"customer"`
	Contract       *uuid.UUID `json:"contract"`
	SupportContact *uuid.UUID `json:"support_contact"`
	DateCreated    string     `json:"date_created"`
	DateUpdated    string     `json:"date_updated"`
	Attendees      int        `json:"attendees"`
	EventDate      string     `json:"event_date"`
	Note           string     `json:"note"`
	Status         bool       `json:"status"`
}

// List returns one page of events in the list shape
func (s *EventService) List(p *access.Principal, filter repository.EventFilter, page int) (*ListResult, error) {
	shape, err := s.policy.Authorize(access.ActionList, p, nil)
	if err != nil {
		return nil, err
	}

	offset, err := offsetFor(page, s.pageSize)
	if err != nil {
		return nil, err
	}

	events, total, err := s.repo.List(filter, s.pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if err := checkPage(page, s.pageSize, total); err != nil {
		return nil, err
	}

	results := make([]interface{}, len(events))
	for i := range events {
		results[i] = shapeEvent(shape, &events[i])
	}

	return &ListResult{Count: total, Page: page, PageSize: s.pageSize, Results: results}, nil
}

// Retrieve returns one event in the detail shape
func (s *EventService) Retrieve(p *access.Principal, id uuid.UUID) (interface{}, error) {
	shape, err := s.policy.Authorize(access.ActionRetrieve, p, nil)
	if err != nil {
		return nil, err
	}

	event, err := s.get(id)
	if err != nil {
		return nil, err
	}

	return shapeEvent(shape, event), nil
}

// Create creates an event. The support contact comes from the payload since the
// acting sales user is never the event's referee.
func (s *EventService) Create(p *access.Principal, in *EventInput) (interface{}, error) {
	shape, err := s.policy.Authorize(access.ActionCreate, p, nil)
	if err != nil {
		return nil, err
	}

	var req required
	req.check("customer", in.Customer != nil)
	req.check("note", in.Note != nil)
	if err := merge(req.err(), validate(s.validator, in)); err != nil {
		return nil, err
	}

	eventDate := s.now().UTC().Truncate(time.Second)
	if in.EventDate != nil {
		if eventDate, err = parseTime("event_date", *in.EventDate, eventDateLayouts); err != nil {
			return nil, err
		}
	}
	if err := s.checkRelations(in, uuid.Nil, nil); err != nil {
		return nil, err
	}

	event := &models.Event{
		CustomerID:       *in.Customer,
		ContractID:       in.Contract,
		SupportContactID: in.SupportContact,
		EventDate:        eventDate,
		Note:             *in.Note,
	}
	if in.Attendees != nil {
		event.Attendees = *in.Attendees
	}
	if in.Status != nil {
		event.Status = *in.Status
	}

	if err := s.repo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return shapeEvent(shape, event), nil
}

// Update applies a full or partial update. Only the event's support contact may update it.
func (s *EventService) Update(p *access.Principal, id uuid.UUID, in *EventInput, partial bool) (interface{}, error) {
	if p == nil {
		return nil, apperrors.ErrAuthenticationRequired
	}

	event, err := s.get(id)
	if err != nil {
		return nil, err
	}

	action := access.ActionUpdate
	if partial {
		action = access.ActionPartialUpdate
	}
	shape, err := s.policy.Authorize(action, p, event.SupportContactID)
	if err != nil {
		return nil, err
	}

	var req required
	if !partial {
		req.check("customer", in.Customer != nil)
		req.check("note", in.Note != nil)
	}
	if err := merge(req.err(), validate(s.validator, in)); err != nil {
		return nil, err
	}

	var eventDate *time.Time
	if in.EventDate != nil {
		t, err := parseTime("event_date", *in.EventDate, eventDateLayouts)
		if err != nil {
			return nil, err
		}
		eventDate = &t
	}
	if err := s.checkRelations(in, event.CustomerID, event.ContractID); err != nil {
		return nil, err
	}

	applyEventInput(event, in, eventDate)

	if err := s.repo.Update(event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return shapeEvent(shape, event), nil
}

// Destroy deletes an event. Managers only.
func (s *EventService) Destroy(p *access.Principal, id uuid.UUID) error {
	if _, err := s.policy.Authorize(access.ActionDestroy, p, nil); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func (s *EventService) get(id uuid.UUID) (*models.Event, error) {
	event, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// checkRelations verifies that referenced records exist. References equal to the
// current ones are not looked up again.
func (s *EventService) checkRelations(in *EventInput, currentCustomer uuid.UUID, currentContract *uuid.UUID) error {
	if in.Customer != nil && *in.Customer != currentCustomer {
		if _, err := s.customerRepo.GetByID(*in.Customer); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewValidationError("customer", fmt.Sprintf("Invalid pk %q - object does not exist.", *in.Customer))
			}
			return fmt.Errorf("failed to get customer: %w", err)
		}
	}
	if in.Contract != nil && (currentContract == nil || *in.Contract != *currentContract) {
		if _, err := s.contractRepo.GetByID(*in.Contract); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewValidationError("contract", fmt.Sprintf("Invalid pk %q - object does not exist.", *in.Contract))
			}
			return fmt.Errorf("failed to get contract: %w", err)
		}
	}
	if in.SupportContact != nil {
		if err := checkUserExists(s.userRepo, "support_contact", *in.SupportContact); err != nil {
			return err
		}
	}
	return nil
}

// applyEventInput copies the fields present in the body
func applyEventInput(e *models.Event, in *EventInput, eventDate *time.Time) {
	if in.Customer != nil && *in.Customer != e.CustomerID {
		e.CustomerID = *in.Customer
		e.Customer = models.Customer{}
	}
	if in.Contract != nil {
		e.ContractID = in.Contract
		e.Contract = nil
	}
	if in.SupportContact != nil {
		e.SupportContactID = in.SupportContact
		e.SupportContact = nil
	}
	if in.Attendees != nil {
		e.Attendees = *in.Attendees
	}
	if eventDate != nil {
		e.EventDate = *eventDate
	}
	if in.Note != nil {
		e.Note = *in.Note
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
}

func supportContactDetail(u *models.User) *SupportContactDetail {
	if u == nil {
		return nil
	}
	return &SupportContactDetail{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Mobile:    u.Mobile,
		Role:      u.Role().String(),
	}
}

func contractRef(id *uuid.UUID) *IDRef {
	if id == nil {
		return nil
	}
	return &IDRef{ID: *id}
}

func shapeEvent(shape access.Shape, e *models.Event) interface{} {
	switch shape {
	case access.ShapeList:
		return EventListItem{
			ID:             e.ID,
			Customer:       customerRef(&e.Customer),
			Note:           e.Note,
			SupportContact: userRef(e.SupportContact),
			EventDate:      e.EventDate.UTC().Format(EventDateFormat),
			Attendees:      e.Attendees,
		}
	case access.ShapeDetail:
		return EventDetail{
			ID:             e.ID,
			Customer:       customerRef(&e.Customer),
			Contract:       contractRef(e.ContractID),
			SupportContact: supportContactDetail(e.SupportContact),
			DateCreated:    formatTimestamp(e.CreatedAt),
			DateUpdated:    formatTimestamp(e.UpdatedAt),
			Attendees:      e.Attendees,
			EventDate:      e.EventDate.UTC().Format(EventDateFormat),
			Note:           e.Note,
			Status:         e.Status,
		}
	case access.ShapeCreate:
		return EventCreated{
			ID:             e.ID,
			Customer:       e.CustomerID,
			SupportContact: e.SupportContactID,
			Contract:       e.ContractID,
			Attendees:      e.Attendees,
			EventDate:      e.EventDate.UTC().Format(EventDateFormat),
			Note:           e.Note,
			Status:         e.Status,
		}
	case access.ShapeEdit:
		return EventEdit{
			ID:             e.ID,
			Customer:       e.CustomerID,
			Contract:       e.ContractID,
			SupportContact: e.SupportContactID,
			DateCreated:    formatTimestamp(e.CreatedAt),
			DateUpdated:    formatTimestamp(e.UpdatedAt),
			Attendees:      e.Attendees,
			EventDate:      e.EventDate.UTC().Format(EventDateFormat),
			Note:           e.Note,
			Status:         e.Status,
		}
	}
	return nil
}
