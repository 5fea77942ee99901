package handlers

import (
	"net/http"

	"crm-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ListEvents shows every event
func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.session(c).ListAll(outbound(c), "events/", nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := formatEach(events, "event_date"); err != nil {
		h.fail(c, err)
		return
	}
	render(c, http.StatusOK, "events.html", gin.H{"page": Paginate(events, c.Query("page"), PageSize)})
}

// GetEvent shows one event
func (h *Handler) GetEvent(c *gin.Context) {
	event, err := h.session(c).Get(outbound(c), "events/"+c.Param("id")+"/")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := formatFields(event, "date_created", "date_updated", "event_date"); err != nil {
		h.fail(c, err)
		return
	}
	render(c, http.StatusOK, "event_detail.html", gin.H{"event": event})
}

// ShowCreateEvent renders an empty event form for the contract in :id and the
// customer in :customer_id.
func (h *Handler) ShowCreateEvent(c *gin.Context) {
	support, err := h.usersWithRole(c, "support")
	if err != nil {
		h.fail(c, err)
		return
	}
	render(c, http.StatusOK, "event_form.html", gin.H{
		"form":     eventForm{},
		"contract": c.Param("id"),
		"customer": c.Param("customer_id"),
		"support":  support,
	})
}

// CreateEvent posts a new event and marks its contract as having one
func (h *Handler) CreateEvent(c *gin.Context) {
	contractID, customerID := c.Param("id"), c.Param("customer_id")
	support, err := h.usersWithRole(c, "support")
	if err != nil {
		h.fail(c, err)
		return
	}

	var form eventForm
	data := gin.H{"form": &form, "contract": contractID, "customer": customerID, "support": support}
	if errs := bindForm(c, &form); errs != nil {
		data["errors"] = errs
		render(c, http.StatusBadRequest, "event_form.html", data)
		return
	}

	ctx := outbound(c)
	api := h.session(c)

	body := form.body(false)
	body["customer"] = customerID
	body["contract"] = contractID
	created, err := api.Post(ctx, "events/", body)
	if err != nil {
		h.formFailure(c, "event_form.html", data, err)
		return
	}
	id, err := created.ID()
	if err != nil {
		h.fail(c, err)
		return
	}

	// The event exists at this point, so a failed flag update does not fail the view.
	if _, err := api.Patch(ctx, "contracts/"+contractID+"/", gin.H{"event_created": true}); err != nil {
		logger.WithContext(c).WithError(err).WithField("contract", contractID).Warn("failed to mark contract event_created")
	}

	redirect(c, "/event/"+id+"/")
}

// ShowEditEvent renders the event form filled with the current values
func (h *Handler) ShowEditEvent(c *gin.Context) {
	event, err := h.session(c).Get(outbound(c), "events/"+c.Param("id")+"/")
	if err != nil {
		h.fail(c, err)
		return
	}
	support, err := h.usersWithRole(c, "support")
	if err != nil {
		h.fail(c, err)
		return
	}

	form := eventForm{
		SupportContact: refID(event, "support_contact"),
		EventDate:      toDateTimeLocal(event.String("event_date")),
		Note:           event.String("note"),
		Status:         event["status"] == true,
	}
	if attendees, ok := event["attendees"].(float64); ok {
		form.Attendees = int(attendees)
	}
	render(c, http.StatusOK, "event_form.html", gin.H{"form": form, "edit": true, "id": c.Param("id"), "support": support})
}

// EditEvent patches the event and shows it
func (h *Handler) EditEvent(c *gin.Context) {
	id := c.Param("id")
	support, err := h.usersWithRole(c, "support")
	if err != nil {
		h.fail(c, err)
		return
	}

	var form eventForm
	data := gin.H{"form": &form, "edit": true, "id": id, "support": support}
	if errs := bindForm(c, &form); errs != nil {
		data["errors"] = errs
		render(c, http.StatusBadRequest, "event_form.html", data)
		return
	}

	if _, err := h.session(c).Patch(outbound(c), "events/"+id+"/", form.body(true)); err != nil {
		h.formFailure(c, "event_form.html", data, err)
		return
	}
	redirect(c, "/event/"+id+"/")
}

// ShowDeleteEvent asks for confirmation
func (h *Handler) ShowDeleteEvent(c *gin.Context) {
	h.confirmDelete(c, "events/", "event")
}

// DeleteEvent removes the event
func (h *Handler) DeleteEvent(c *gin.Context) {
	h.delete(c, "events/", "/events/")
}
