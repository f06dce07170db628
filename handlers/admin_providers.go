package handlers

import (
	"net/http"
	"strconv"

	"servicehub/services/forms"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const adminProvidersPath = "/admin/providers"

// ProvidersPage lists provider accounts with their status.
func (h *AdminHandler) ProvidersPage(c *gin.Context) {
	h.renderProviders(c, http.StatusOK, "")
}

func (h *AdminHandler) renderProviders(c *gin.Context, status int, errMsg string) {
	providers, err := h.Users.ListProviders(c.Request.Context(), currentSession(c).Token)
	if err != nil {
		logFailure(c, "Failed to load providers", err)
		errMsg, status = firstError(errMsg, status, err)
	}
	p := newPage(c, "Service providers", adminData{Providers: providers})
	p.Error = errMsg
	render(c, status, "admin_providers.html", p)
}

type statusForm struct {
	Active *bool `form:"active" json:"active" binding:"required"`
}

var statusMessages = forms.Messages{"": "Please choose active or suspended"}

// SetProviderStatus suspends or activates a provider after confirmation.
func (h *AdminHandler) SetProviderStatus(c *gin.Context) {
	var form statusForm
	if err := forms.Bind(c, &form, statusMessages); err != nil {
		h.renderProviders(c, statusFor(err), messageFor(err))
		return
	}
	active := *form.Active

	prompt := "Suspend this provider?"
	if active {
		prompt = "Activate this provider?"
	}
	if !confirmed(c, prompt, adminProvidersPath, map[string]string{"active": strconv.FormatBool(active)}) {
		return
	}

	id := c.Param("id")
	if err := h.Users.SetUserStatus(c.Request.Context(), currentSession(c).Token, id, active); err != nil {
		logFailure(c, "Failed to update provider status", err)
		h.renderProviders(c, statusFor(err), messageFor(err))
		return
	}
	getLogger(c).Info("Provider status changed", zap.String("providerID", id), zap.Bool("active", active))
	done(c, adminProvidersPath, "provider-updated", gin.H{"id": id, "active": active})
}

// ResetProviderPassword forces a provider to set a new password, after
// confirmation.
func (h *AdminHandler) ResetProviderPassword(c *gin.Context) {
	if !confirmed(c, "Reset password for this provider? They will be forced to set a new password on next login.", adminProvidersPath, nil) {
		return
	}
	id := c.Param("id")
	if err := h.Users.ResetPassword(c.Request.Context(), currentSession(c).Token, id); err != nil {
		logFailure(c, "Failed to reset provider password", err)
		h.renderProviders(c, statusFor(err), messageFor(err))
		return
	}
	getLogger(c).Info("Provider password reset", zap.String("providerID", id))
	done(c, adminProvidersPath, "password-reset", nil)
}
