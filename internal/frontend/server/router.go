package server

import (
	"fmt"
	"net/http"

	apimiddleware "crm-backend/internal/api/middleware"
	"crm-backend/internal/config"
	"crm-backend/internal/database/models"
	"crm-backend/internal/frontend/apiclient"
	"crm-backend/internal/frontend/handlers"
	"crm-backend/internal/frontend/middleware"
	"crm-backend/internal/frontend/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the session frontend. Record routes use :id in the second
// segment; on create routes it names the parent record.
func NewRouter(cfg *config.FrontendConfig, api *apiclient.Client) (*gin.Engine, error) {
	r := gin.New()
	r.Use(apimiddleware.RequestID())
	r.Use(apimiddleware.Logger())
	r.Use(gin.Recovery())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(middleware.SessionName, store))

	h := handlers.NewHandler(api, cfg.IsProduction())

	r.GET("/", h.ShowLogin)
	r.POST("/", h.Login)
	r.GET("/logout/", h.Logout)
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	auth := r.Group("/")
	auth.Use(middleware.RequireLogin())

	manager := middleware.RequireRole(models.RoleManager)
	writers := middleware.RequireRole(models.RoleSales, models.RoleManager)

	auth.GET("/home/", h.Home)
	auth.GET("/my_customers/", middleware.RequireRole(models.RoleSales), h.MyCustomers)
	auth.GET("/account/", h.ShowAccount)
	auth.POST("/account/", h.UpdatePassword)
	auth.GET("/search/", h.Search)

	// CUSTOMERS
	auth.GET("/customers/", h.ListCustomers)
	auth.GET("/customer/create/", writers, h.ShowCreateCustomer)
	auth.POST("/customer/create/", writers, h.CreateCustomer)
	auth.GET("/customer/:id/", h.GetCustomer)
	auth.GET("/customer/:id/edit/", writers, h.ShowEditCustomer)
	auth.POST("/customer/:id/edit/", writers, h.EditCustomer)
	auth.GET("/customer/:id/delete/", manager, h.ShowDeleteCustomer)
	auth.POST("/customer/:id/delete/", manager, h.DeleteCustomer)

	// CONTRACTS
	auth.GET("/contracts/", h.ListContracts)
	auth.GET("/contract/:id/", h.GetContract)
	auth.GET("/contract/:id/create/", writers, h.ShowCreateContract)
	auth.POST("/contract/:id/create/", writers, h.CreateContract)
	auth.GET("/contract/:id/edit/", writers, h.ShowEditContract)
	auth.POST("/contract/:id/edit/", writers, h.EditContract)
	auth.GET("/contract/:id/delete/", manager, h.ShowDeleteContract)
	auth.POST("/contract/:id/delete/", manager, h.DeleteContract)

	// EVENTS: sales create them, support and managers edit them
	eventEditors := middleware.RequireRole(models.RoleSupport, models.RoleManager)
	auth.GET("/events/", h.ListEvents)
	auth.GET("/event/:id/", h.GetEvent)
	auth.GET("/event/:id/:customer_id/create/", writers, h.ShowCreateEvent)
	auth.POST("/event/:id/:customer_id/create/", writers, h.CreateEvent)
	auth.GET("/event/:id/edit/", eventEditors, h.ShowEditEvent)
	auth.POST("/event/:id/edit/", eventEditors, h.EditEvent)
	auth.GET("/event/:id/delete/", manager, h.ShowDeleteEvent)
	auth.POST("/event/:id/delete/", manager, h.DeleteEvent)

	// USERS
	auth.GET("/users/", manager, h.ListUsers)
	auth.GET("/user/create/", manager, h.ShowCreateUser)
	auth.POST("/user/create/", manager, h.CreateUser)
	auth.GET("/user/:id/", h.GetUser)
	auth.GET("/user/:id/edit/", manager, h.ShowEditUser)
	auth.POST("/user/:id/edit/", manager, h.EditUser)
	auth.GET("/user/:id/delete/", manager, h.ShowDeleteUser)
	auth.POST("/user/:id/delete/", manager, h.DeleteUser)

	return r, nil
}
