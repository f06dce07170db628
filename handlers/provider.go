package handlers

import (
	"net/http"

	"servicehub/models"
	"servicehub/services/booking"

	"github.com/gin-gonic/gin"
)

// ProviderHandler serves the provider job list.
type ProviderHandler struct {
	Bookings *booking.Workflow
}

func NewProviderHandler(bookings *booking.Workflow) *ProviderHandler {
	return &ProviderHandler{Bookings: bookings}
}

type providerData struct {
	Bookings []models.Booking `json:"bookings"`
	Summary  booking.Summary  `json:"summary"`
}

// Dashboard lists the jobs assigned to the provider.
func (h *ProviderHandler) Dashboard(c *gin.Context) {
	h.renderDashboard(c, http.StatusOK, "")
}

func (h *ProviderHandler) renderDashboard(c *gin.Context, status int, errMsg string) {
	bookings, err := h.Bookings.List(c.Request.Context(), currentSession(c))
	if err != nil {
		logFailure(c, "Failed to load jobs", err)
		errMsg, status = firstError(errMsg, status, err)
	}
	p := newPage(c, "My jobs", providerData{Bookings: bookings, Summary: booking.Summarize(bookings)})
	p.Error = errMsg
	render(c, status, "provider.html", p)
}

// StartJob moves an assigned job to in progress.
func (h *ProviderHandler) StartJob(c *gin.Context) {
	h.transition(c, booking.ActionStart, "started")
}

// CompleteJob marks an in-progress job completed.
func (h *ProviderHandler) CompleteJob(c *gin.Context) {
	h.transition(c, booking.ActionComplete, "completed")
}

func (h *ProviderHandler) transition(c *gin.Context, action booking.Action, flash string) {
	bookings, err := h.Bookings.Apply(c.Request.Context(), currentSession(c), c.Param("id"), action, "")
	if err != nil {
		logFailure(c, "Job update failed", err)
		h.renderDashboard(c, statusFor(err), messageFor(err))
		return
	}
	done(c, models.RoleProvider.Home(), flash, bookings)
}
