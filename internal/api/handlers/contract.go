package handlers

import (
	"net/http"

	"crm-backend/internal/auth"
	"crm-backend/internal/logger"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ContractHandler handles HTTP requests for contracts
type ContractHandler struct {
	service service.ContractServiceInterface
}

// NewContractHandler creates a new contract handler
func NewContractHandler(service service.ContractServiceInterface) *ContractHandler {
	return &ContractHandler{service: service}
}

// ListContracts handles GET /api/contracts/
// @Summary List contracts
// @Tags contracts
// @Produce json
// @Param page query int false "Page number"
// @Param customer_email query string false "Customer email"
// @Param customer_last_name query string false "Customer last name"
// @Param customer_company query string false "Customer company"
// @Param date_created query string false "Creation day (YYYY-MM-DD)"
// @Param amount query int false "Exact amount"
// @Param sales_contact query string false "Sales contact ID (UUID)"
// @Param date_contains query string false "Substring of date_created"
// @Success 200 {object} PageResponse
// @Failure 400 {object} ErrorResponse "Invalid filter"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /contracts/ [get]
func (h *ContractHandler) ListContracts(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}
	filter, err := contractFilter(c)
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

// GetContract handles GET /api/contracts/:id/
// @Summary Get a contract
// @Description The detail shape embeds the event organized for the contract, if any
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID (UUID)"
// @Success 200 {object} service.ContractDetail
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /contracts/{id}/ [get]
func (h *ContractHandler) GetContract(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	contract, err := h.service.Retrieve(auth.GetPrincipal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

// CreateContract handles POST /api/contracts/
// @Summary Create a contract
// @Description The acting sales user becomes the contract's sales contact
// @Tags contracts
// @Accept json
// @Produce json
// @Param contract body service.ContractInput true "Contract data"
// @Success 201 {object} service.ContractCreated
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /contracts/ [post]
func (h *ContractHandler) CreateContract(c *gin.Context) {
	var in service.ContractInput
	if !bindBody(c, &in) {
		return
	}

	contract, err := h.service.Create(auth.GetPrincipal(c), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.WithContext(c).Info("contract created")
	c.JSON(http.StatusCreated, contract)
}

// UpdateContract handles PUT /api/contracts/:id/
// @Summary Replace a contract
// @Description Only the contract's sales contact may update it
// @Tags contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID (UUID)"
// @Param contract body service.ContractInput true "Contract data"
// @Success 200 {object} service.ContractEdit
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /contracts/{id}/ [put]
func (h *ContractHandler) UpdateContract(c *gin.Context) {
	h.update(c, false)
}

// PatchContract handles PATCH /api/contracts/:id/
// @Summary Partially update a contract
// @Tags contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID (UUID)"
// @Param contract body service.ContractInput true "Fields to change"
// @Success 200 {object} service.ContractEdit
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /contracts/{id}/ [patch]
func (h *ContractHandler) PatchContract(c *gin.Context) {
	h.update(c, true)
}

func (h *ContractHandler) update(c *gin.Context, partial bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in service.ContractInput
	if !bindBody(c, &in) {
		return
	}

	contract, err := h.service.Update(auth.GetPrincipal(c), id, &in, partial)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

// DeleteContract handles DELETE /api/contracts/:id/
// @Summary Delete a contract
// @Description Managers only
// @Tags contracts
// @Param id path string true "Contract ID (UUID)"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /contracts/{id}/ [delete]
func (h *ContractHandler) DeleteContract(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Destroy(auth.GetPrincipal(c), id); err != nil {
		respondError(c, err)
		return
	}

	logger.WithContext(c).WithField("contract_id", id).Info("contract deleted")
	c.Status(http.StatusNoContent)
}
