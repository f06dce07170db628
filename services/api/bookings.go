package api

import (
	"context"
	"net/http"
	"net/url"

	"servicehub/models"
)

// ListBookings returns every booking (admin).
func (c *Client) ListBookings(ctx context.Context, token string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := c.Get(ctx, token, "/bookings", &bookings)
	return bookings, err
}

// ListMyBookings returns the calling customer's bookings. Older API
// deployments only expose /bookings/customer, so a 404 on /bookings/my
// falls back to it.
func (c *Client) ListMyBookings(ctx context.Context, token string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := c.Get(ctx, token, "/bookings/my", &bookings)
	if IsNotFound(err) {
		bookings = nil
		err = c.Get(ctx, token, "/bookings/customer", &bookings)
	}
	return bookings, err
}

// ListProviderBookings returns the jobs assigned to the calling provider.
func (c *Client) ListProviderBookings(ctx context.Context, token string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := c.Get(ctx, token, "/bookings/provider", &bookings)
	return bookings, err
}

func (c *Client) CreateBooking(ctx context.Context, token string, req models.CreateBookingRequest) (*models.Booking, error) {
	var booking models.Booking
	if err := c.Do(ctx, token, http.MethodPost, "/bookings", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) AssignProvider(ctx context.Context, token, bookingID, providerID string) error {
	path := "/bookings/" + url.PathEscape(bookingID) + "/assign"
	return c.Do(ctx, token, http.MethodPatch, path, models.AssignProviderRequest{ProviderID: providerID}, nil)
}

func (c *Client) AcceptBooking(ctx context.Context, token, bookingID string) error {
	return c.Do(ctx, token, http.MethodPatch, "/bookings/"+url.PathEscape(bookingID)+"/accept", nil, nil)
}

func (c *Client) CompleteBooking(ctx context.Context, token, bookingID string) error {
	return c.Do(ctx, token, http.MethodPatch, "/bookings/"+url.PathEscape(bookingID)+"/complete", nil, nil)
}

func (c *Client) DeleteBooking(ctx context.Context, token, bookingID string) error {
	return c.Do(ctx, token, http.MethodDelete, "/bookings/"+url.PathEscape(bookingID), nil, nil)
}

// UpdateBookingStatus sets a status directly through POST /bookings/status.
func (c *Client) UpdateBookingStatus(ctx context.Context, token, bookingID string, status models.BookingStatus) error {
	req := models.BookingStatusRequest{BookingID: bookingID, Status: status}
	return c.Do(ctx, token, http.MethodPost, "/bookings/status", req, nil)
}
