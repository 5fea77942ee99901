package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListUsers shows every user
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.session(c).ListAll(outbound(c), "users/", nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	render(c, http.StatusOK, "users.html", gin.H{"page": Paginate(users, c.Query("page"), PageSize)})
}

// GetUser shows one user
func (h *Handler) GetUser(c *gin.Context) {
	employee, err := h.session(c).Get(outbound(c), "users/"+c.Param("id")+"/")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := formatFields(employee, "date_created", "date_updated"); err != nil {
		h.fail(c, err)
		return
	}
	render(c, http.StatusOK, "user_detail.html", gin.H{"employee": employee})
}

// ShowCreateUser renders the signup form
func (h *Handler) ShowCreateUser(c *gin.Context) {
	render(c, http.StatusOK, "user_form.html", gin.H{"form": userForm{}})
}

// CreateUser signs a new user up
func (h *Handler) CreateUser(c *gin.Context) {
	var form userForm
	data := gin.H{"form": &form}
	if errs := bindForm(c, &form); errs != nil {
		data["errors"] = errs
		render(c, http.StatusBadRequest, "user_form.html", data)
		return
	}

	created, err := h.session(c).Post(outbound(c), "signup/", form.body(false))
	if err != nil {
		h.formFailure(c, "user_form.html", data, err)
		return
	}
	id, err := created.ID()
	if err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, "/user/"+id+"/")
}

// ShowEditUser renders the user form filled with the current values
func (h *Handler) ShowEditUser(c *gin.Context) {
	employee, err := h.session(c).Get(outbound(c), "users/"+c.Param("id")+"/")
	if err != nil {
		h.fail(c, err)
		return
	}

	form := userForm{
		Email:     employee.String("email"),
		FirstName: employee.String("first_name"),
		LastName:  employee.String("last_name"),
		Phone:     employee.String("phone"),
		Mobile:    employee.String("mobile"),
		Role:      employee.String("role"),
	}
	render(c, http.StatusOK, "user_form.html", gin.H{"form": form, "edit": true, "id": c.Param("id")})
}

// EditUser patches the user and shows it
func (h *Handler) EditUser(c *gin.Context) {
	id := c.Param("id")

	var form userForm
	data := gin.H{"form": &form, "edit": true, "id": id}
	if errs := bindForm(c, &form); errs != nil {
		data["errors"] = errs
		render(c, http.StatusBadRequest, "user_form.html", data)
		return
	}

	if _, err := h.session(c).Patch(outbound(c), "users/"+id+"/", form.body(true)); err != nil {
		h.formFailure(c, "user_form.html", data, err)
		return
	}
	redirect(c, "/user/"+id+"/")
}

// ShowDeleteUser asks for confirmation
func (h *Handler) ShowDeleteUser(c *gin.Context) {
	h.confirmDelete(c, "users/", "user")
}

// DeleteUser removes the user
func (h *Handler) DeleteUser(c *gin.Context) {
	h.delete(c, "users/", "/users/")
}
