package handlers

import (
	"net/http"

	"crm-backend/internal/auth"
	"crm-backend/internal/logger"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// EventHandler handles HTTP requests for events
type EventHandler struct {
	service service.EventServiceInterface
}

// NewEventHandler creates a new event handler
func NewEventHandler(service service.EventServiceInterface) *EventHandler {
	return &EventHandler{service: service}
}

// ListEvents handles GET /api/events/
// @Summary List events
// @Tags events
// @Produce json
// @Param page query int false "Page number"
// @Param customer_email query string false "Customer email"
// @Param customer_last_name query string false "Customer last name"
// @Param customer_company query string false "Customer company"
// @Param event_date query string false "Event day (YYYY-MM-DD)"
// @Param support_contact query string false "Support contact ID (UUID)"
// @Param date_contains query string false "Substring of event_date"
// @Success 200 {object} PageResponse
// @Failure 400 {object} ErrorResponse "Invalid filter"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /events/ [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}
	filter, err := eventFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.service.List(auth.GetPrincipal(c), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}

	respondPage(c, result)
}

// GetEvent handles GET /api/events/:id/
// @Summary Get a event
// @Description The detail shape embeds the support contact with its role
// @Tags events
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} service.EventDetail
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /events/{id}/ [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	event, err := h.service.Retrieve(auth.GetPrincipal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// CreateEvent handles POST /api/events/
// @Summary Create a event
// @Description Sales only. The support contact is taken from the payload
// @Tags events
// @Accept json
// @Produce json
// @Param event body service.EventInput true "Event data"
// @Success 201 {object} service.EventCreated
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /events/ [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var in service.EventInput
	if !bindBody(c, &in) {
		return
	}

	event, err := h.service.Create(auth.GetPrincipal(c), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.WithContext(c).Info("event created")
	c.JSON(http.StatusCreated, event)
}

// UpdateEvent handles PUT /api/events/:id/
// @Summary Replace a event
// @Description Only the event's support contact may update it
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Param event body service.EventInput true "Event data"
// @Success 200 {object} service.EventEdit
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /events/{id}/ [put]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	h.update(c, false)
}

// PatchEvent handles PATCH /api/events/:id/
// @Summary Partially update a event
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Param event body service.EventInput true "Fields to change"
// @Success 200 {object} service.EventEdit
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /events/{id}/ [patch]
func (h *EventHandler) PatchEvent(c *gin.Context) {
	h.update(c, true)
}

func (h *EventHandler) update(c *gin.Context, partial bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in service.EventInput
	if !bindBody(c, &in) {
		return
	}

	event, err := h.service.Update(auth.GetPrincipal(c), id, &in, partial)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEvent handles DELETE /api/events/:id/
// @Summary Delete a event
// @Description Managers only
// @Tags events
// @Param id path string true "Event ID (UUID)"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /events/{id}/ [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Destroy(auth.GetPrincipal(c), id); err != nil {
		respondError(c, err)
		return
	}

	logger.WithContext(c).WithField("event_id", id).Info("event deleted")
	c.Status(http.StatusNoContent)
}
