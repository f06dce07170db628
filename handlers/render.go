package handlers

import (
	"errors"
	"net/http"

	"servicehub/middleware"
	"servicehub/models"
	"servicehub/services/api"
	"servicehub/services/booking"
	"servicehub/services/forms"
	"servicehub/services/session"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Page is the envelope every template receives.
type Page struct {
	Title string
	User  *models.User
	Role  models.Role
	CSRF  string
	Error string
	Flash string
	Data  any
}

var flashMessages = map[string]string{
	"booked":           "Booking confirmed.",
	"started":          "Job started successfully.",
	"completed":        "Job marked as completed.",
	"assigned":         "Provider assigned successfully.",
	"cancelled":        "Booking cancelled.",
	"booking-deleted":  "Booking deleted.",
	"service-created":  "Job added successfully.",
	"service-updated":  "Job updated successfully.",
	"service-deleted":  "Job deleted successfully.",
	"provider-updated": "Provider status updated.",
	"password-reset":   "Password reset successfully.",
}

func newPage(c *gin.Context, title string, data any) Page {
	p := Page{
		Title: title,
		CSRF:  middleware.CSRFToken(c),
		Flash: flashMessages[c.Query("flash")],
		Data:  data,
	}
	if sess := middleware.CurrentSession(c); sess != nil {
		p.User = sess.User
		p.Role = sess.Role()
	}
	return p
}

// render writes the page as HTML, or its data as JSON when the client
// prefers it.
func render(c *gin.Context, status int, name string, p Page) {
	var body any = p.Data
	if p.Error != "" {
		body = gin.H{"message": p.Error}
	}
	c.Negotiate(status, gin.Negotiate{
		Offered:  []string{gin.MIMEHTML, gin.MIMEJSON},
		HTMLName: name,
		HTMLData: p,
		JSONData: body,
	})
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// done finishes a successful form post: JSON clients get data, browsers are
// redirected to location with a flash key.
func done(c *gin.Context, location, flash string, data any) {
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"message": flashMessages[flash], "data": data})
		return
	}
	if flash != "" {
		location += "?flash=" + flash
	}
	middleware.Redirect(c, location)
}

// statusFor maps an error to the HTTP status shown with its banner.
func statusFor(err error) int {
	var (
		validationErr *forms.ValidationError
		transitionErr *booking.TransitionError
		apiErr        *api.APIError
	)
	switch {
	case errors.As(err, &validationErr), errors.Is(err, booking.ErrProviderRequired):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrRoleMismatch), errors.Is(err, session.ErrUnknownRole):
		return http.StatusForbidden
	case errors.Is(err, booking.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.As(err, &transitionErr):
		return http.StatusConflict
	case errors.As(err, &apiErr):
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// messageFor returns the banner text for err. Unexpected errors never leak
// their details.
func messageFor(err error) string {
	var (
		validationErr *forms.ValidationError
		transitionErr *booking.TransitionError
		apiErr        *api.APIError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &transitionErr), errors.As(err, &apiErr),
		errors.Is(err, session.ErrRoleMismatch),
		errors.Is(err, session.ErrUnknownRole),
		errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, booking.ErrProviderRequired):
		return api.Message(err)
	}
	return api.FallbackMessage
}

func logFailure(c *gin.Context, msg string, err error) {
	logger := getLogger(c)
	if statusFor(err) >= http.StatusInternalServerError {
		logger.Error(msg, zap.Error(err))
		return
	}
	logger.Info(msg, zap.Error(err))
}

type confirmData struct {
	Prompt string
	Action string
	Back   string
	Fields map[string]string
}

// confirmed reports whether a destructive post carries confirm=yes. When it
// does not, a confirmation page (or a 428 for JSON clients) is written.
func confirmed(c *gin.Context, prompt, back string, fields map[string]string) bool {
	if c.PostForm("confirm") == "yes" || c.Query("confirm") == "yes" {
		return true
	}
	if wantsJSON(c) {
		utils.JSONError(c, http.StatusPreconditionRequired, prompt, "Resend with confirm=yes")
		return false
	}
	render(c, http.StatusOK, "confirm.html", newPage(c, "Confirm", confirmData{
		Prompt: prompt,
		Action: c.Request.URL.Path,
		Back:   back,
		Fields: fields,
	}))
	return false
}

func currentSession(c *gin.Context) *session.Session {
	return middleware.CurrentSession(c)
}
