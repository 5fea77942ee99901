package handlers

import (
	"net/http"
	"net/url"

	"crm-backend/internal/frontend/apiclient"
	"crm-backend/internal/frontend/middleware"

	"github.com/gin-gonic/gin"
)

// Home shows the signed-in user's own records: events for support, contracts
// for sales. Managers land on the user list.
func (h *Handler) Home(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	switch {
	case user.IsSupport():
		events, err := h.session(c).ListAll(outbound(c), "events/", url.Values{"support_contact": {user.ID}})
		if err != nil {
			h.fail(c, err)
			return
		}
		if err := formatEach(events, "event_date"); err != nil {
			h.fail(c, err)
			return
		}
		render(c, http.StatusOK, "home.html", gin.H{"page": Paginate(events, c.Query("page"), PageSize), "events": true})
	case user.IsSales():
		contracts, err := h.session(c).ListAll(outbound(c), "contracts/", url.Values{"sales_contact": {user.ID}})
		if err != nil {
			h.fail(c, err)
			return
		}
		render(c, http.StatusOK, "home.html", gin.H{"page": Paginate(contracts, c.Query("page"), PageSize), "contracts": true})
	default:
		redirect(c, "/users/")
	}
}

// MyCustomers lists the customers followed by the signed-in sales user
func (h *Handler) MyCustomers(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	customers, err := h.session(c).ListAll(outbound(c), "customers/", url.Values{"sales_contact": {user.ID}})
	if err != nil {
		h.fail(c, err)
		return
	}
	render(c, http.StatusOK, "my_customers.html", gin.H{"page": Paginate(customers, c.Query("page"), PageSize)})
}

// ShowAccount renders the password change form
func (h *Handler) ShowAccount(c *gin.Context) {
	render(c, http.StatusOK, "account.html", gin.H{})
}

// UpdatePassword changes the user's password and signs them out
func (h *Handler) UpdatePassword(c *gin.Context) {
	var form passwordForm
	if errs := bindForm(c, &form); errs != nil {
		render(c, http.StatusBadRequest, "account.html", gin.H{"errors": errs})
		return
	}

	body := gin.H{"old_password": form.OldPassword, "new_password": form.NewPassword}
	if _, err := h.session(c).Patch(outbound(c), "password_update/", body); err != nil {
		h.formFailure(c, "account.html", gin.H{}, err)
		return
	}

	middleware.SignOut(c)
	redirect(c, middleware.LoginPath)
}

// Search runs one filtered list query picked from the fixed selector map
func (h *Handler) Search(c *gin.Context) {
	selector, ok := c.GetQuery("search_sel")
	if !ok {
		render(c, http.StatusOK, "search.html", gin.H{})
		return
	}

	endpoint, kind, query, err := SearchQuery(selector, c.Query("type"), c.Query("search_input"))
	if err != nil {
		h.fail(c, err)
		return
	}

	results, err := h.session(c).ListAll(outbound(c), endpoint, query)
	if err != nil {
		h.fail(c, err)
		return
	}
	if kind == "event" {
		if err := formatEach(results, "event_date"); err != nil {
			h.fail(c, err)
			return
		}
	}

	render(c, http.StatusOK, "search.html", gin.H{
		"kind":    kind,
		"results": results,
		"empty":   len(results) == 0,
		"query":   c.Query("search_input"),
	})
}

func formatEach(records []apiclient.Record, keys ...string) error {
	for _, rec := range records {
		if err := formatFields(rec, keys...); err != nil {
			return err
		}
	}
	return nil
}
