package handlers

import (
	"net/http"
	"net/url"

	"crm-backend/internal/frontend/apiclient"

	"github.com/gin-gonic/gin"
)

// ListCustomers shows every customer
func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.session(c).ListAll(outbound(c), "customers/", nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	render(c, http.StatusOK, "customers.html", gin.H{"page": Paginate(customers, c.Query("page"), PageSize)})
}

// GetCustomer shows one customer
func (h *Handler) GetCustomer(c *gin.Context) {
	customer, err := h.session(c).Get(outbound(c), "customers/"+c.Param("id")+"/")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := formatFields(customer, "date_created", "date_updated"); err != nil {
		h.fail(c, err)
		return
	}
	render(c, http.StatusOK, "customer_detail.html", gin.H{"customer": customer})
}

// ShowCreateCustomer renders an empty customer form
func (h *Handler) ShowCreateCustomer(c *gin.Context) {
	render(c, http.StatusOK, "customer_form.html", gin.H{"form": customerForm{}})
}

// CreateCustomer posts a new customer. The API assigns the sales contact.
func (h *Handler) CreateCustomer(c *gin.Context) {
	var form customerForm
	data := gin.H{"form": &form}
	if errs := bindForm(c, &form); errs != nil {
		data["errors"] = errs
		render(c, http.StatusBadRequest, "customer_form.html", data)
		return
	}

	created, err := h.session(c).Post(outbound(c), "customers/", form.body(false))
	if err != nil {
		h.formFailure(c, "customer_form.html", data, err)
		return
	}
	id, err := created.ID()
	if err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, "/customer/"+id+"/")
}

// ShowEditCustomer renders the customer form filled with the current values
func (h *Handler) ShowEditCustomer(c *gin.Context) {
	ctx := outbound(c)
	api := h.session(c)

	customer, err := api.Get(ctx, "customers/"+c.Param("id")+"/")
	if err != nil {
		h.fail(c, err)
		return
	}
	sales, err := h.usersWithRole(c, "sales")
	if err != nil {
		h.fail(c, err)
		return
	}

	form := customerForm{
		FirstName:    customer.String("first_name"),
		LastName:     customer.String("last_name"),
		Phone:        customer.String("phone"),
		Mobile:       customer.String("mobile"),
		Email:        customer.String("email"),
		Company:      customer.String("company"),
		SalesContact: refID(customer, "sales_contact"),
		Existing:     customer["existing"] == true,
	}
	render(c, http.StatusOK, "customer_form.html", gin.H{"form": form, "edit": true, "id": c.Param("id"), "sales": sales})
}

// EditCustomer patches the customer and shows it
func (h *Handler) EditCustomer(c *gin.Context) {
	id := c.Param("id")
	sales, err := h.usersWithRole(c, "sales")
	if err != nil {
		h.fail(c, err)
		return
	}

	var form customerForm
	data := gin.H{"form": &form, "edit": true, "id": id, "sales": sales}
	if errs := bindForm(c, &form); errs != nil {
		data["errors"] = errs
		render(c, http.StatusBadRequest, "customer_form.html", data)
		return
	}

	if _, err := h.session(c).Patch(outbound(c), "customers/"+id+"/", form.body(true)); err != nil {
		h.formFailure(c, "customer_form.html", data, err)
		return
	}
	redirect(c, "/customer/"+id+"/")
}

// ShowDeleteCustomer asks for confirmation
func (h *Handler) ShowDeleteCustomer(c *gin.Context) {
	h.confirmDelete(c, "customers/", "customer")
}

// DeleteCustomer removes the customer
func (h *Handler) DeleteCustomer(c *gin.Context) {
	h.delete(c, "customers/", "/customers/")
}

// usersWithRole lists the users offered as contacts
func (h *Handler) usersWithRole(c *gin.Context, role string) ([]apiclient.Record, error) {
	return h.session(c).ListAll(outbound(c), "users/", url.Values{"role": {role}})
}

func (h *Handler) confirmDelete(c *gin.Context, endpoint, kind string) {
	rec, err := h.session(c).Get(outbound(c), endpoint+c.Param("id")+"/")
	if err != nil {
		h.fail(c, err)
		return
	}
	render(c, http.StatusOK, "confirm_delete.html", gin.H{"record": rec, "kind": kind, "action": c.Request.URL.Path})
}

func (h *Handler) delete(c *gin.Context, endpoint, next string) {
	if err := h.session(c).Delete(outbound(c), endpoint+c.Param("id")+"/"); err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, next)
}

// refID reads the id of an embedded contact, which the API sends either as an
// object or as a bare id depending on the shape.
func refID(rec apiclient.Record, key string) string {
	if nested := rec.Nested(key); nested != nil {
		return nested.String("id")
	}
	return rec.String(key)
}
