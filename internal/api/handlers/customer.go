package handlers

import (
	"net/http"

	"crm-backend/internal/auth"
	"crm-backend/internal/logger"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// CustomerHandler handles HTTP requests for customers
type CustomerHandler struct {
	service service.CustomerServiceInterface
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(service service.CustomerServiceInterface) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// ListCustomers handles GET /api/customers/
// @Summary List customers
// @Description List customers page by page, optionally filtered
// @Tags customers
// @Produce json
// @Param page query int false "Page number"
// @Param email query string false "Exact email"
// @Param last_name query string false "Exact last name"
// @Param company query string false "Exact company"
// @Param sales_contact query string false "Sales contact ID (UUID)"
// @Param date_contains query string false "Substring of date_created"
// @Success 200 {object} PageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Invalid page"
// @Security BearerAuth
// @Router /customers/ [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}
	filter, err := customerFilter(c)
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

// GetCustomer handles GET /api/customers/:id/
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Success 200 {object} service.CustomerDetail
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{id}/ [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	customer, err := h.service.Retrieve(auth.GetPrincipal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// CreateCustomer handles POST /api/customers/
// @Summary Create a customer
// @Description The acting sales user becomes the customer's sales contact
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body service.CustomerInput true "Customer data"
// @Success 201 {object} service.CustomerCreated
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/ [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var in service.CustomerInput
	if !bindBody(c, &in) {
		return
	}

	customer, err := h.service.Create(auth.GetPrincipal(c), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.WithContext(c).WithField("company", strValue(in.Company)).Info("customer created")
	c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer handles PUT /api/customers/:id/
// @Summary Replace a customer
// @Description Only the customer's sales contact may update it
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Param customer body service.CustomerInput true "Customer data"
// @Success 200 {object} service.CustomerEdit
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{id}/ [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	h.update(c, false)
}

// PatchCustomer handles PATCH /api/customers/:id/
// @Summary Partially update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Param customer body service.CustomerInput true "Fields to change"
// @Success 200 {object} service.CustomerEdit
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{id}/ [patch]
func (h *CustomerHandler) PatchCustomer(c *gin.Context) {
	h.update(c, true)
}

func (h *CustomerHandler) update(c *gin.Context, partial bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in service.CustomerInput
	if !bindBody(c, &in) {
		return
	}

	customer, err := h.service.Update(auth.GetPrincipal(c), id, &in, partial)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /api/customers/:id/
// @Summary Delete a customer
// @Description Managers only
// @Tags customers
// @Param id path string true "Customer ID (UUID)"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{id}/ [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Destroy(auth.GetPrincipal(c), id); err != nil {
		respondError(c, err)
		return
	}

	logger.WithContext(c).WithField("customer_id", id).Info("customer deleted")
	c.Status(http.StatusNoContent)
}

func strValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
