package models

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusCreated    BookingStatus = "CREATED"
	StatusAssigned   BookingStatus = "ASSIGNED"
	StatusInProgress BookingStatus = "IN_PROGRESS"
	StatusCompleted  BookingStatus = "COMPLETED"
	StatusCancelled  BookingStatus = "CANCELLED"
)

// Booking is a customer's request for a service.
type Booking struct {
	ID            string        `json:"_id"`
	Service       Ref           `json:"service"`
	Customer      Ref           `json:"customer"`
	Provider      Ref           `json:"provider"`
	ScheduledAt   string        `json:"scheduledAt"`
	CustomerName  string        `json:"customerName,omitempty"`
	CustomerPhone string        `json:"customerPhone,omitempty"`
	CustomerEmail string        `json:"customerEmail,omitempty"`
	Address       string        `json:"address,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	Status        BookingStatus `json:"status"`
	CreatedAt     string        `json:"createdAt,omitempty"`
}

// HasProvider reports whether a provider reference is set.
func (b Booking) HasProvider() bool {
	return !b.Provider.IsZero()
}

// CreateBookingRequest is the body of POST /bookings.
type CreateBookingRequest struct {
	ServiceID   string `json:"serviceId" form:"serviceId" binding:"required,notblank"`
	Name        string `json:"name" form:"name" binding:"required,notblank"`
	Phone       string `json:"phone" form:"phone" binding:"required,notblank"`
	Email       string `json:"email,omitempty" form:"email" binding:"omitempty,looseemail"`
	Address     string `json:"address" form:"address" binding:"required,notblank"`
	Notes       string `json:"notes,omitempty" form:"notes"`
	ScheduledAt string `json:"scheduledAt" form:"scheduledAt" binding:"required,notblank"`
}

// AssignProviderRequest is the body of PATCH /bookings/:id/assign.
type AssignProviderRequest struct {
	ProviderID string `json:"providerId"`
}

// BookingStatusRequest is the body of POST /bookings/status.
type BookingStatusRequest struct {
	BookingID string        `json:"bookingId"`
	Status    BookingStatus `json:"status"`
}
