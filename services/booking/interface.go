package booking

import (
	"context"

	"servicehub/models"
)

// BookingAPI is the slice of the remote API the workflow drives.
type BookingAPI interface {
	ListBookings(ctx context.Context, token string) ([]models.Booking, error)
	ListMyBookings(ctx context.Context, token string) ([]models.Booking, error)
	ListProviderBookings(ctx context.Context, token string) ([]models.Booking, error)
	CreateBooking(ctx context.Context, token string, req models.CreateBookingRequest) (*models.Booking, error)
	AssignProvider(ctx context.Context, token, bookingID, providerID string) error
	AcceptBooking(ctx context.Context, token, bookingID string) error
	CompleteBooking(ctx context.Context, token, bookingID string) error
	DeleteBooking(ctx context.Context, token, bookingID string) error
	UpdateBookingStatus(ctx context.Context, token, bookingID string, status models.BookingStatus) error
}
