package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListContracts shows every contract
func (h *Handler) ListContracts(c *gin.Context) {
	contracts, err := h.session(c).ListAll(outbound(c), "contracts/", nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	render(c, http.StatusOK, "contracts.html", gin.H{"page": Paginate(contracts, c.Query("page"), PageSize)})
}

// GetContract shows one contract
func (h *Handler) GetContract(c *gin.Context) {
	contract, err := h.session(c).Get(outbound(c), "contracts/"+c.Param("id")+"/")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := formatFields(contract, "date_created", "date_updated", "payment_due"); err != nil {
		h.fail(c, err)
		return
	}
	render(c, http.StatusOK, "contract_detail.html", gin.H{"contract": contract})
}

// ShowCreateContract renders an empty contract form for the customer in :id
func (h *Handler) ShowCreateContract(c *gin.Context) {
	render(c, http.StatusOK, "contract_form.html", gin.H{"form": contractForm{}, "customer": c.Param("id")})
}

// CreateContract posts a new contract linked to the customer in :id
func (h *Handler) CreateContract(c *gin.Context) {
	customerID := c.Param("id")

	var form contractForm
	data := gin.H{"form": &form, "customer": customerID}
	if errs := bindForm(c, &form); errs != nil {
		data["errors"] = errs
		render(c, http.StatusBadRequest, "contract_form.html", data)
		return
	}

	body := form.body(false)
	body["customer"] = customerID
	created, err := h.session(c).Post(outbound(c), "contracts/", body)
	if err != nil {
		h.formFailure(c, "contract_form.html", data, err)
		return
	}
	id, err := created.ID()
	if err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, "/contract/"+id+"/")
}

// ShowEditContract renders the contract form filled with the current values
func (h *Handler) ShowEditContract(c *gin.Context) {
	contract, err := h.session(c).Get(outbound(c), "contracts/"+c.Param("id")+"/")
	if err != nil {
		h.fail(c, err)
		return
	}
	sales, err := h.usersWithRole(c, "sales")
	if err != nil {
		h.fail(c, err)
		return
	}

	form := contractForm{
		PaymentDue:   contract.String("payment_due"),
		SalesContact: refID(contract, "sales_contact"),
		Status:       contract["status"] == true,
	}
	if amount, ok := contract["amount"].(float64); ok {
		form.Amount = int(amount)
	}
	render(c, http.StatusOK, "contract_form.html", gin.H{"form": form, "edit": true, "id": c.Param("id"), "sales": sales})
}

// EditContract patches the contract and shows it
func (h *Handler) EditContract(c *gin.Context) {
	id := c.Param("id")
	sales, err := h.usersWithRole(c, "sales")
	if err != nil {
		h.fail(c, err)
		return
	}

	var form contractForm
	data := gin.H{"form": &form, "edit": true, "id": id, "sales": sales}
	if errs := bindForm(c, &form); errs != nil {
		data["errors"] = errs
		render(c, http.StatusBadRequest, "contract_form.html", data)
		return
	}

	if _, err := h.session(c).Patch(outbound(c), "contracts/"+id+"/", form.body(true)); err != nil {
		h.formFailure(c, "contract_form.html", data, err)
		return
	}
	redirect(c, "/contract/"+id+"/")
}

// ShowDeleteContract asks for confirmation
func (h *Handler) ShowDeleteContract(c *gin.Context) {
	h.confirmDelete(c, "contracts/", "contract")
}

// DeleteContract removes the contract
func (h *Handler) DeleteContract(c *gin.Context) {
	h.delete(c, "contracts/", "/contracts/")
}
