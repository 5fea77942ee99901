package routes

import (
	"fmt"

	"crm-backend/internal/api/handlers"
	"crm-backend/internal/api/middleware"
	"crm-backend/internal/auth"
	"crm-backend/internal/config"
	"crm-backend/internal/repository"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := service.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	contractRepo := repository.NewContractRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// Initialize services
	customerService := service.NewCustomerService(customerRepo, userRepo, validator, cfg.APIPageSize)
	contractService := service.NewContractService(contractRepo, customerRepo, eventRepo, userRepo, validator, cfg.APIPageSize)
	eventService := service.NewEventService(eventRepo, customerRepo, contractRepo, userRepo, validator, cfg.APIPageSize)
	userService := service.NewUserService(userRepo, groupRepo, validator, cfg.APIPageSize)

	// Initialize auth
	authService, err := auth.NewAuthService(auth.NewAuthConfig(cfg), userRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	authHandler := auth.NewAuthHandler(authService)
	authMiddleware := auth.NewAuthMiddleware(authService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	customerHandler := handlers.NewCustomerHandler(customerService)
	contractHandler := handlers.NewContractHandler(contractService)
	eventHandler := handlers.NewEventHandler(eventService)
	userHandler := handlers.NewUserHandler(userService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	// Token endpoints are the only anonymous API routes
	api.POST("/login/", authHandler.Login)
	api.POST("/login/refresh/", authHandler.Refresh)

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	RegisterRecordRoutes(protected, customerHandler, contractHandler, eventHandler)
	RegisterUserRoutes(protected, userHandler)

	return router, nil
}

// RegisterRecordRoutes mounts the customer, contract and event endpoints on rg
func RegisterRecordRoutes(rg *gin.RouterGroup, customers *handlers.CustomerHandler, contracts *handlers.ContractHandler, events *handlers.EventHandler) {
	customerRoutes := rg.Group("/customers")
	{
		customerRoutes.GET("/", customers.ListCustomers)
		customerRoutes.POST("/", customers.CreateCustomer)
		customerRoutes.GET("/:id/", customers.GetCustomer)
		customerRoutes.PUT("/:id/", customers.UpdateCustomer)
		customerRoutes.PATCH("/:id/", customers.PatchCustomer)
		customerRoutes.DELETE("/:id/", customers.DeleteCustomer)
	}

	contractRoutes := rg.Group("/contracts")
	{
		contractRoutes.GET("/", contracts.ListContracts)
		contractRoutes.POST("/", contracts.CreateContract)
		contractRoutes.GET("/:id/", contracts.GetContract)
		contractRoutes.PUT("/:id/", contracts.UpdateContract)
		contractRoutes.PATCH("/:id/", contracts.PatchContract)
		contractRoutes.DELETE("/:id/", contracts.DeleteContract)
	}

	eventRoutes := rg.Group("/events")
	{
		eventRoutes.GET("/", events.ListEvents)
		eventRoutes.POST("/", events.CreateEvent)
		eventRoutes.GET("/:id/", events.GetEvent)
		eventRoutes.PUT("/:id/", events.UpdateEvent)
		eventRoutes.PATCH("/:id/", events.PatchEvent)
		eventRoutes.DELETE("/:id/", events.DeleteEvent)
	}
}

// RegisterUserRoutes mounts the user management endpoints on rg
func RegisterUserRoutes(rg *gin.RouterGroup, users *handlers.UserHandler) {
	rg.POST("/signup/", users.Signup)
	rg.PATCH("/password_update/", users.UpdatePassword)

	userRoutes := rg.Group("/users")
	{
		userRoutes.GET("/", users.ListUsers)
		userRoutes.GET("/me/", users.GetCurrentUser)
		userRoutes.GET("/:id/", users.GetUser)
		userRoutes.PATCH("/:id/", users.PatchUser)
		userRoutes.DELETE("/:id/", users.DeleteUser)
	}
}
