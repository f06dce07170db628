package booking

import (
	"fmt"
	"strings"

	"servicehub/models"
)

// Statuses lists the canonical lifecycle in order.
var Statuses = []models.BookingStatus{
	models.StatusCreated,
	models.StatusAssigned,
	models.StatusInProgress,
	models.StatusCompleted,
	models.StatusCancelled,
}

// ParseStatus normalises s and checks it is a known status.
func ParseStatus(s string) (models.BookingStatus, error) {
	status := models.BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if status == known {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown booking status: %q", s)
}

// IsTerminal reports whether no further transition can leave status.
func IsTerminal(status models.BookingStatus) bool {
	return status == models.StatusCompleted || status == models.StatusCancelled
}

// IsActive reports whether the booking is still being worked on.
func IsActive(status models.BookingStatus) bool {
	switch status {
	case models.StatusCreated, models.StatusAssigned, models.StatusInProgress:
		return true
	}
	return false
}

// RequiresProvider reports whether a booking in status must carry a provider.
func RequiresProvider(status models.BookingStatus) bool {
	switch status {
	case models.StatusAssigned, models.StatusInProgress, models.StatusCompleted:
		return true
	}
	return false
}

// ProviderConsistent checks that a provider is set exactly when the status
// requires one. Cancelled bookings may keep a stale provider either way.
func ProviderConsistent(b models.Booking) bool {
	if b.Status == models.StatusCancelled {
		return true
	}
	return RequiresProvider(b.Status) == b.HasProvider()
}
