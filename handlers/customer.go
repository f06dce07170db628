package handlers

import (
	"net/http"

	"servicehub/models"
	"servicehub/services/booking"
	"servicehub/services/forms"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CustomerHandler serves the customer dashboard.
type CustomerHandler struct {
	Bookings *booking.Workflow
	Catalog  CatalogAPI
}

func NewCustomerHandler(bookings *booking.Workflow, catalog CatalogAPI) *CustomerHandler {
	return &CustomerHandler{Bookings: bookings, Catalog: catalog}
}

type customerData struct {
	Services []models.Service `json:"services"`
	Bookings []models.Booking `json:"bookings"`
	Summary  booking.Summary  `json:"summary"`
}

// Dashboard lists the bookable services and the customer's own bookings.
func (h *CustomerHandler) Dashboard(c *gin.Context) {
	h.renderDashboard(c, http.StatusOK, "")
}

func (h *CustomerHandler) renderDashboard(c *gin.Context, status int, errMsg string) {
	ctx := c.Request.Context()
	sess := currentSession(c)

	var data customerData
	services, err := h.Catalog.ListServices(ctx, sess.Token)
	if err != nil {
		logFailure(c, "Failed to load services", err)
		errMsg, status = firstError(errMsg, status, err)
	}
	data.Services = services

	bookings, err := h.Bookings.List(ctx, sess)
	if err != nil {
		logFailure(c, "Failed to load bookings", err)
		errMsg, status = firstError(errMsg, status, err)
	}
	data.Bookings = bookings
	data.Summary = booking.Summarize(bookings)

	p := newPage(c, "My bookings", data)
	p.Error = errMsg
	render(c, status, "customer.html", p)
}

// CreateBooking submits the booking form.
func (h *CustomerHandler) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := forms.BindBooking(c, &req); err != nil {
		h.renderDashboard(c, statusFor(err), messageFor(err))
		return
	}

	bookings, err := h.Bookings.Create(c.Request.Context(), currentSession(c), req)
	if err != nil {
		logFailure(c, "Failed to create booking", err)
		h.renderDashboard(c, statusFor(err), messageFor(err))
		return
	}
	getLogger(c).Info("Booking created", zap.String("serviceID", req.ServiceID))
	done(c, models.RoleCustomer.Home(), "booked", bookings)
}

// firstError keeps an earlier banner when one is already set.
func firstError(msg string, status int, err error) (string, int) {
	if msg != "" {
		return msg, status
	}
	return messageFor(err), statusFor(err)
}
