package routes

import (
	"net/http"
	"time"

	"servicehub/handlers"
	"servicehub/middleware"
	"servicehub/models"
	"servicehub/services/session"
	"servicehub/views"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options carries what the route table needs besides the handlers.
type Options struct {
	Sessions       *session.Manager
	Cookie         middleware.CookieConfig
	AllowedOrigins []string
}

// RegisterAuthRoutes registers the public sign-in pages. Signed-in users are
// sent to their home instead.
func RegisterAuthRoutes(r gin.IRouter, hb *handlers.HandlerBundle) {
	guest := r.Group("")
	guest.Use(middleware.GuestOnly())
	{
		guest.GET("/roles", hb.RolesPage)
		guest.GET("/login", hb.LoginPage)
		guest.POST("/login", hb.Login)
		guest.GET("/login/:role", hb.RoleLoginPage)
		guest.POST("/login/:role", hb.RoleLogin)
		guest.GET("/signup", hb.SignupPage)
		guest.POST("/signup", hb.Signup)
	}
	r.POST("/logout", hb.Logout)
}

// RegisterCustomerRoutes registers the customer dashboard.
func RegisterCustomerRoutes(r gin.IRouter, hb *handlers.HandlerBundle) {
	customer := r.Group("/customer")
	customer.Use(middleware.RequireRole(models.RoleCustomer))
	{
		customer.GET("", hb.CustomerDashboard)
		customer.POST("/bookings", hb.CreateBooking)
	}
}

// RegisterProviderRoutes registers the provider job list.
func RegisterProviderRoutes(r gin.IRouter, hb *handlers.HandlerBundle) {
	provider := r.Group("/provider")
	provider.Use(middleware.RequireRole(models.RoleProvider))
	{
		provider.GET("", hb.ProviderDashboard)
		provider.POST("/jobs/:id/start", hb.StartJob)
		provider.POST("/jobs/:id/complete", hb.CompleteJob)
	}
}

// RegisterAdminRoutes registers the admin pages.
func RegisterAdminRoutes(r gin.IRouter, hb *handlers.HandlerBundle) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("", hb.AdminDashboard)
		admin.POST("/services", hb.CreateService)
		admin.POST("/services/:id", hb.UpdateService)
		admin.POST("/services/:id/delete", hb.DeleteService)

		admin.GET("/bookings", hb.AdminBookings)
		admin.GET("/bookings/:id/providers", hb.AvailableProviders)
		admin.POST("/bookings/:id/assign", hb.AssignProvider)
		admin.POST("/bookings/:id/cancel", hb.CancelBooking)
		admin.POST("/bookings/:id/delete", hb.DeleteBooking)

		admin.GET("/providers", hb.AdminProviders)
		admin.POST("/providers/:id/status", hb.SetProviderStatus)
		admin.POST("/providers/:id/reset-password", hb.ResetProviderPassword)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Accept", "Content-Type", middleware.CSRFHeaderName, "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", middleware.CSRFHeaderName, "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(opts.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = opts.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig), middleware.CSRFHeader())

	RegisterHealthRoute(r, hb)
	r.StaticFS("/static", http.FS(views.Static()))

	loadSession := middleware.LoadSession(opts.Sessions, opts.Cookie)
	pages := r.Group("", loadSession)
	pages.GET("/", middleware.RoleHome)
	RegisterAuthRoutes(pages, hb)
	RegisterCustomerRoutes(pages, hb)
	RegisterProviderRoutes(pages, hb)
	RegisterAdminRoutes(pages, hb)

	// Unknown paths go home, which for guests is the login page.
	r.NoRoute(loadSession, middleware.RoleHome)
}
