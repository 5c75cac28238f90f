package routes

import (
	"branch-billing-backend/internal/api/handlers"
	"branch-billing-backend/internal/api/middleware"
	"branch-billing-backend/internal/auth"
	"branch-billing-backend/internal/config"
	"branch-billing-backend/internal/database/models"
	"branch-billing-backend/internal/repository"
	"branch-billing-backend/internal/service"
	"branch-billing-backend/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// catalogAdapter adapts the catalog repositories to tenant.Catalog
type catalogAdapter struct {
	orgs     repository.OrganizationRepositoryInterface
	branches repository.BranchRepositoryInterface
}

func (a *catalogAdapter) OrganizationByOwnerEmail(email string) (*models.Organization, error) {
	return a.orgs.GetByOwnerEmail(email)
}

func (a *catalogAdapter) BranchesByOrganization(orgID uuid.UUID) ([]models.Branch, error) {
	return a.branches.GetByOrganizationID(orgID)
}

// SetupRoutes configures all the routes for the application. The catalog
// database holds organizations and branches; the registry hands out
// branch-scoped connections for everything else.
func SetupRoutes(db *gorm.DB, registry *tenant.Registry, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Catalog repositories
	organizationRepo := repository.NewOrganizationRepository(db)
	branchRepo := repository.NewBranchRepository(db)

	// Tenant resolution: explicit header, then owner-email shortcut, then
	// token claim, then the shared catalog connection as fallback.
	authService := auth.NewService(cfg)
	fallback := &tenant.Connection{DB: db, Models: repository.NewBranchSet(db)}
	catalog := &catalogAdapter{orgs: organizationRepo, branches: branchRepo}
	resolver := tenant.NewResolver(registry, fallback, catalog, authService)
	authMiddleware := auth.NewMiddleware(authService)

	// Initialize services
	loginService := service.NewAuthService(authService, validator)
	provisioningService := service.NewProvisioningService(organizationRepo, branchRepo, validator)
	invoiceService := service.NewInvoiceService(validator)
	customerService := service.NewCustomerService(validator)
	ticketService := service.NewTicketService(validator)
	activityService := service.NewActivityService()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, registry)
	authHandler := handlers.NewAuthHandler(loginService)
	adminHandler := handlers.NewAdminHandler(provisioningService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, activityService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	activityHandler := handlers.NewActivityHandler(activityService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Everything under /api runs with a resolved branch context
	api := router.Group("/api")
	api.Use(resolver.Middleware())

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/validate", authMiddleware.RequireAuth(), authHandler.Validate)
	}

	// Admin routes - catalog provisioning, admin role required
	admin := api.Group("/admin")
	admin.Use(authMiddleware.RequireAuth())
	admin.Use(authMiddleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/organizations", adminHandler.CreateOrganization)
		admin.GET("/organizations/:id/branches", adminHandler.ListBranches)
		admin.POST("/branches", adminHandler.RegisterBranch)
		admin.DELETE("/branches/:slug", adminHandler.ArchiveBranch)
	}

	// API v1 routes - all endpoints require authentication
	v1 := api.Group("/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		// User routes
		users := v1.Group("/users")
		{
			users.POST("", authMiddleware.RequireRole(models.RoleAdmin, models.RoleManager), authHandler.RegisterUser)
		}

		// Customer routes
		customers := v1.Group("/customers")
		{
			customers.GET("", customerHandler.ListCustomers)
			customers.POST("", customerHandler.CreateCustomer)
			customers.GET("/:id", customerHandler.GetCustomer)
			customers.PUT("/:id", customerHandler.UpdateCustomer)
			customers.DELETE("/:id", authMiddleware.RequireRole(models.RoleAdmin, models.RoleManager), customerHandler.DeleteCustomer)
		}

		// Invoice routes
		invoices := v1.Group("/invoices")
		{
			invoices.GET("", invoiceHandler.ListInvoices)
			invoices.POST("", invoiceHandler.CreateInvoice)
			invoices.GET("/:id", invoiceHandler.GetInvoice)
			invoices.PATCH("/:id", authMiddleware.RequireRole(models.RoleAdmin, models.RoleManager), invoiceHandler.UpdateInvoiceStatus)
		}

		// Support ticket routes
		tickets := v1.Group("/tickets")
		{
			tickets.GET("", ticketHandler.ListTickets)
			tickets.POST("", ticketHandler.OpenTicket)
			tickets.POST("/:id/close", ticketHandler.CloseTicket)
		}

		// Activity log routes
		activity := v1.Group("/activity")
		{
			activity.GET("", activityHandler.ListActivity)
		}
	}

	// Catch-all route for undefined endpoints
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":      "Endpoint not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString("request_id"),
		})
	})

	return router
}

// SetupHealthRoutes sets up only health check routes (useful for testing)
func SetupHealthRoutes(db *gorm.DB, registry *tenant.Registry) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(db, registry)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	return router
}
