package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups every page handler for route registration.
type HandlerBundle struct {
	// Public auth pages
	RolesPage     gin.HandlerFunc
	LoginPage     gin.HandlerFunc
	RoleLoginPage gin.HandlerFunc
	Login         gin.HandlerFunc
	RoleLogin     gin.HandlerFunc
	SignupPage    gin.HandlerFunc
	Signup        gin.HandlerFunc
	Logout        gin.HandlerFunc

	// Customer pages
	CustomerDashboard gin.HandlerFunc
	CreateBooking     gin.HandlerFunc

	// Provider pages
	ProviderDashboard gin.HandlerFunc
	StartJob          gin.HandlerFunc
	CompleteJob       gin.HandlerFunc

	// Admin pages
	AdminDashboard        gin.HandlerFunc
	CreateService         gin.HandlerFunc
	UpdateService         gin.HandlerFunc
	DeleteService         gin.HandlerFunc
	AdminBookings         gin.HandlerFunc
	AvailableProviders    gin.HandlerFunc
	AssignProvider        gin.HandlerFunc
	CancelBooking         gin.HandlerFunc
	DeleteBooking         gin.HandlerFunc
	AdminProviders        gin.HandlerFunc
	SetProviderStatus     gin.HandlerFunc
	ResetProviderPassword gin.HandlerFunc

	Health gin.HandlerFunc
}

// NewHandlerBundle wires the role handlers into a bundle.
func NewHandlerBundle(auth *AuthHandler, customer *CustomerHandler, provider *ProviderHandler, admin *AdminHandler) *HandlerBundle {
	return &HandlerBundle{
		// Public auth pages.
		RolesPage:     auth.RolesPage,
		LoginPage:     auth.LoginPage,
		RoleLoginPage: auth.RoleLoginPage,
		Login:         auth.Login,
		RoleLogin:     auth.RoleLogin,
		SignupPage:    auth.SignupPage,
		Signup:        auth.Signup,
		Logout:        auth.Logout,

		// Customer pages.
		CustomerDashboard: customer.Dashboard,
		CreateBooking:     customer.CreateBooking,

		// Provider pages.
		ProviderDashboard: provider.Dashboard,
		StartJob:          provider.StartJob,
		CompleteJob:       provider.CompleteJob,

		// Admin pages.
		AdminDashboard:        admin.Dashboard,
		CreateService:         admin.CreateService,
		UpdateService:         admin.UpdateService,
		DeleteService:         admin.DeleteService,
		AdminBookings:         admin.BookingsPage,
		AvailableProviders:    admin.AvailableProviders,
		AssignProvider:        admin.AssignProvider,
		CancelBooking:         admin.CancelBooking,
		DeleteBooking:         admin.DeleteBooking,
		AdminProviders:        admin.ProvidersPage,
		SetProviderStatus:     admin.SetProviderStatus,
		ResetProviderPassword: admin.ResetProviderPassword,

		Health: Health,
	}
}
