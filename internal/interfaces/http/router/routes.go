package router

import (
	_ "github.com/bizify/backend/docs"
	"github.com/bizify/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers are the endpoint handlers mounted by Mount
type Handlers struct {
	Auth      *handler.AuthHandler
	Customers *handler.CustomerHandler
	Invoices  *handler.InvoiceHandler
	Dashboard *handler.DashboardHandler
	Settings  *handler.SettingsHandler
	Export    *handler.ExportHandler
	Import    *handler.ImportHandler
}

// RouteOptions holds per-route middleware
type RouteOptions struct {
	// AuthLimit throttles the unauthenticated auth endpoints
	AuthLimit gin.HandlerFunc
	// Idempotency guards POST /import
	Idempotency gin.HandlerFunc
}

// Mount registers the Bizify API on r
func Mount(r *Router, h Handlers, opts RouteOptions) {
	auth := NewDomainGroup("auth", "/auth")
	if opts.AuthLimit != nil {
		auth.Use(opts.AuthLimit)
	}
	auth.POST("/register", h.Auth.Register).
		POST("/token", h.Auth.Token).
		GET("/check-setup", h.Auth.CheckSetup)
	r.Register(auth)

	r.RegisterProtected(NewDomainGroup("session", "/auth").
		GET("/me", h.Auth.Me))

	r.RegisterProtected(NewDomainGroup("customers", "/customers").
		GET("", h.Customers.List).
		GET("/stats", h.Customers.Stats).
		GET("/:id", h.Customers.GetByID).
		POST("", h.Customers.Create).
		PUT("/:id", h.Customers.Update).
		DELETE("/:id", h.Customers.Delete))

	r.RegisterProtected(NewDomainGroup("invoices", "/invoices").
		GET("", h.Invoices.List).
		GET("/stats", h.Invoices.Stats).
		GET("/:id", h.Invoices.GetByID).
		GET("/:id/pdf", h.Invoices.PDF).
		POST("", h.Invoices.Create).
		PUT("/:id", h.Invoices.Update).
		DELETE("/:id", h.Invoices.Delete))

	r.RegisterProtected(NewDomainGroup("dashboard", "/dashboard").
		GET("", h.Dashboard.Get))

	r.RegisterProtected(NewDomainGroup("settings", "/settings").
		GET("", h.Settings.Get).
		PUT("", h.Settings.Update).
		POST("/reset", h.Settings.Reset))

	r.RegisterProtected(NewDomainGroup("export", "/export").
		POST("/:format", h.Export.Export))

	importHandlers := []gin.HandlerFunc{h.Import.Import}
	if opts.Idempotency != nil {
		importHandlers = append([]gin.HandlerFunc{opts.Idempotency}, importHandlers...)
	}
	r.RegisterProtected(NewDomainGroup("import", "/import").
		POST("/preview", h.Import.Preview).
		POST("", importHandlers...))
}

// MountDocs serves the generated OpenAPI document and UI under /swagger.
// protection runs first, see middleware.SwaggerProtection.
func MountDocs(engine *gin.Engine, protection gin.HandlerFunc) {
	handlers := []gin.HandlerFunc{ginSwagger.WrapHandler(swaggerFiles.Handler)}
	if protection != nil {
		handlers = append([]gin.HandlerFunc{protection}, handlers...)
	}
	engine.GET("/swagger/*any", handlers...)
}
