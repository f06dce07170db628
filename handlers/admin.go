package handlers

import (
	"net/http"

	"servicehub/models"
	"servicehub/services/booking"
	"servicehub/services/forms"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the admin dashboard, booking management and provider
// management pages.
type AdminHandler struct {
	Bookings *booking.Workflow
	Catalog  CatalogAPI
	Users    UserAPI
}

func NewAdminHandler(bookings *booking.Workflow, catalog CatalogAPI, users UserAPI) *AdminHandler {
	return &AdminHandler{Bookings: bookings, Catalog: catalog, Users: users}
}

type adminData struct {
	Services  []models.Service  `json:"services,omitempty"`
	Bookings  []models.Booking  `json:"bookings,omitempty"`
	Providers []models.Provider `json:"providers,omitempty"`
	Summary   booking.Summary   `json:"summary"`
}

const (
	adminHome         = "/admin"
	adminBookingsPath = "/admin/bookings"
)

// Dashboard shows services, bookings and providers.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	h.renderDashboard(c, http.StatusOK, "")
}

func (h *AdminHandler) renderDashboard(c *gin.Context, status int, errMsg string) {
	ctx := c.Request.Context()
	sess := currentSession(c)

	var data adminData
	var err error
	if data.Services, err = h.Catalog.ListAdminServices(ctx, sess.Token); err != nil {
		logFailure(c, "Failed to load services", err)
		errMsg, status = firstError(errMsg, status, err)
	}
	if data.Bookings, err = h.Bookings.List(ctx, sess); err != nil {
		logFailure(c, "Failed to load bookings", err)
		errMsg, status = firstError(errMsg, status, err)
	}
	if data.Providers, err = h.Users.ListProviders(ctx, sess.Token); err != nil {
		logFailure(c, "Failed to load providers", err)
		errMsg, status = firstError(errMsg, status, err)
	}
	data.Summary = booking.Summarize(data.Bookings)

	p := newPage(c, "Admin dashboard", data)
	p.Error = errMsg
	render(c, status, "admin.html", p)
}

// CreateService adds a job to the catalog.
func (h *AdminHandler) CreateService(c *gin.Context) {
	var in models.ServiceInput
	if err := forms.BindService(c, &in); err != nil {
		h.renderDashboard(c, statusFor(err), messageFor(err))
		return
	}
	svc, err := h.Catalog.CreateService(c.Request.Context(), currentSession(c).Token, in)
	if err != nil {
		logFailure(c, "Failed to create service", err)
		h.renderDashboard(c, statusFor(err), messageFor(err))
		return
	}
	getLogger(c).Info("Service created", zap.String("serviceID", svc.ID))
	done(c, adminHome, "service-created", svc)
}

// UpdateService edits a job in the catalog.
func (h *AdminHandler) UpdateService(c *gin.Context) {
	var in models.ServiceInput
	if err := forms.BindService(c, &in); err != nil {
		h.renderDashboard(c, statusFor(err), messageFor(err))
		return
	}
	svc, err := h.Catalog.UpdateService(c.Request.Context(), currentSession(c).Token, c.Param("id"), in)
	if err != nil {
		logFailure(c, "Failed to update service", err)
		h.renderDashboard(c, statusFor(err), messageFor(err))
		return
	}
	done(c, adminHome, "service-updated", svc)
}

// DeleteService permanently removes a job after confirmation.
func (h *AdminHandler) DeleteService(c *gin.Context) {
	if !confirmed(c, "Are you sure? This will permanently delete the job.", adminHome, nil) {
		return
	}
	id := c.Param("id")
	if err := h.Catalog.DeleteService(c.Request.Context(), currentSession(c).Token, id); err != nil {
		logFailure(c, "Failed to delete service", err)
		h.renderDashboard(c, statusFor(err), messageFor(err))
		return
	}
	getLogger(c).Info("Service deleted", zap.String("serviceID", id))
	done(c, adminHome, "service-deleted", nil)
}

// BookingsPage lists every booking with the assignment controls.
func (h *AdminHandler) BookingsPage(c *gin.Context) {
	h.renderBookings(c, http.StatusOK, "")
}

func (h *AdminHandler) renderBookings(c *gin.Context, status int, errMsg string) {
	ctx := c.Request.Context()
	sess := currentSession(c)

	var data adminData
	var err error
	if data.Bookings, err = h.Bookings.List(ctx, sess); err != nil {
		logFailure(c, "Failed to load bookings", err)
		errMsg, status = firstError(errMsg, status, err)
	}
	if data.Providers, err = h.Users.ListProviders(ctx, sess.Token); err != nil {
		logFailure(c, "Failed to load providers", err)
		errMsg, status = firstError(errMsg, status, err)
	}
	data.Summary = booking.Summarize(data.Bookings)

	p := newPage(c, "All bookings", data)
	p.Error = errMsg
	render(c, status, "admin_bookings.html", p)
}

type availabilityData struct {
	BookingID   string            `json:"bookingId"`
	ScheduledAt string            `json:"scheduledAt"`
	Providers   []models.Provider `json:"providers"`
}

// AvailableProviders lists providers free at the booking's scheduled time.
func (h *AdminHandler) AvailableProviders(c *gin.Context) {
	data := availabilityData{BookingID: c.Param("id"), ScheduledAt: c.Query("scheduledAt")}
	providers, err := h.Users.ListAvailableProviders(c.Request.Context(), currentSession(c).Token, data.ScheduledAt)
	if err != nil {
		logFailure(c, "Failed to load available providers", err)
		h.renderBookings(c, statusFor(err), messageFor(err))
		return
	}
	data.Providers = providers
	render(c, http.StatusOK, "admin_availability.html", newPage(c, "Available providers", data))
}

type assignForm struct {
	ProviderID string `form:"providerId" json:"providerId" binding:"required,notblank"`
}

var assignMessages = forms.Messages{"": booking.ErrProviderRequired.Error()}

// AssignProvider assigns a provider to a newly created booking.
func (h *AdminHandler) AssignProvider(c *gin.Context) {
	var form assignForm
	if err := forms.Bind(c, &form, assignMessages); err != nil {
		h.renderBookings(c, statusFor(err), messageFor(err))
		return
	}
	h.transition(c, booking.ActionAssign, form.ProviderID, "assigned")
}

// CancelBooking cancels any booking that has not finished, after confirmation.
func (h *AdminHandler) CancelBooking(c *gin.Context) {
	if !confirmed(c, "Cancel this booking? The customer and provider will see it as cancelled.", adminBookingsPath, nil) {
		return
	}
	h.transition(c, booking.ActionCancel, "", "cancelled")
}

// DeleteBooking hard-deletes a booking that has not started, after confirmation.
func (h *AdminHandler) DeleteBooking(c *gin.Context) {
	if !confirmed(c, "Are you sure? This will permanently delete the booking.", adminBookingsPath, nil) {
		return
	}
	h.transition(c, booking.ActionDelete, "", "booking-deleted")
}

func (h *AdminHandler) transition(c *gin.Context, action booking.Action, providerID, flash string) {
	bookings, err := h.Bookings.Apply(c.Request.Context(), currentSession(c), c.Param("id"), action, providerID)
	if err != nil {
		logFailure(c, "Booking update failed", err)
		h.renderBookings(c, statusFor(err), messageFor(err))
		return
	}
	done(c, adminBookingsPath, flash, bookings)
}
