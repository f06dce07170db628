package booking

import (
	"context"
	"errors"
	"fmt"

	"servicehub/models"
	"servicehub/services/session"
	"servicehub/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrBookingNotFound is returned when the booking is not in the actor's list.
var ErrBookingNotFound = errors.New("Booking not found")

// ErrProviderRequired is returned when assigning without a provider.
var ErrProviderRequired = errors.New("Please select a provider")

// Workflow performs booking transitions against the API. Every mutation is
// checked against the lifecycle table using freshly fetched state, and the
// caller always gets the re-fetched list back; nothing is mutated locally.
type Workflow struct {
	api    BookingAPI
	group  singleflight.Group
	logger *zap.Logger
}

func NewWorkflow(api BookingAPI, logger *zap.Logger) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{api: api, logger: logger}
}

// List returns the bookings visible to the session's role.
func (w *Workflow) List(ctx context.Context, sess *session.Session) ([]models.Booking, error) {
	switch sess.Role() {
	case models.RoleAdmin:
		return w.api.ListBookings(ctx, sess.Token)
	case models.RoleProvider:
		return w.api.ListProviderBookings(ctx, sess.Token)
	case models.RoleCustomer:
		return w.api.ListMyBookings(ctx, sess.Token)
	default:
		return nil, fmt.Errorf("no booking list for role %q", sess.Role())
	}
}

// Create submits a new booking for a customer and returns the refreshed list.
func (w *Workflow) Create(ctx context.Context, sess *session.Session, req models.CreateBookingRequest) ([]models.Booking, error) {
	if sess.Role() != models.RoleCustomer {
		return nil, &TransitionError{Actor: sess.Role(), Reason: "Only customers can create bookings"}
	}
	key := sess.ID + ":create:" + utils.HashToken(fmt.Sprintf("%#v", req))
	// The shared call outlives any one caller's request.
	shared := context.WithoutCancel(ctx)
	v, err, joined := w.group.Do(key, func() (any, error) {
		if _, err := w.api.CreateBooking(shared, sess.Token, req); err != nil {
			return nil, err
		}
		return w.List(shared, sess)
	})
	if joined {
		w.logger.Debug("Duplicate booking submission joined in-flight call", zap.String("key", key))
	}
	if err != nil {
		return nil, err
	}
	return v.([]models.Booking), nil
}

// Apply performs action on bookingID. providerID is only used by assign.
// Concurrent identical requests from the same session share one API call.
func (w *Workflow) Apply(ctx context.Context, sess *session.Session, bookingID string, action Action, providerID string) ([]models.Booking, error) {
	key := sess.ID + ":" + bookingID + ":" + string(action)
	v, err, joined := w.group.Do(key, func() (any, error) {
		return w.apply(context.WithoutCancel(ctx), sess, bookingID, action, providerID)
	})
	if joined {
		w.logger.Debug("Duplicate transition joined in-flight call", zap.String("key", key))
	}
	if err != nil {
		return nil, err
	}
	return v.([]models.Booking), nil
}

func (w *Workflow) apply(ctx context.Context, sess *session.Session, bookingID string, action Action, providerID string) ([]models.Booking, error) {
	current, err := w.List(ctx, sess)
	if err != nil {
		return nil, err
	}
	b, ok := find(current, bookingID)
	if !ok {
		return nil, ErrBookingNotFound
	}

	t, err := Next(b.Status, sess.Role(), action)
	if err != nil {
		return nil, err
	}

	switch action {
	case ActionAssign:
		if providerID == "" {
			return nil, ErrProviderRequired
		}
		err = w.api.AssignProvider(ctx, sess.Token, bookingID, providerID)
	case ActionStart:
		err = w.api.AcceptBooking(ctx, sess.Token, bookingID)
	case ActionComplete:
		err = w.api.CompleteBooking(ctx, sess.Token, bookingID)
	case ActionDelete:
		err = w.api.DeleteBooking(ctx, sess.Token, bookingID)
	case ActionCancel:
		err = w.api.UpdateBookingStatus(ctx, sess.Token, bookingID, t.To)
	default:
		return nil, fmt.Errorf("unsupported action %q", action)
	}
	if err != nil {
		return nil, err
	}

	w.logger.Info("Booking transition applied",
		zap.String("bookingID", bookingID),
		zap.String("action", string(action)),
		zap.String("from", string(b.Status)),
		zap.String("to", string(t.To)),
		zap.Bool("removed", t.Removes),
	)
	return w.List(ctx, sess)
}

func find(bookings []models.Booking, id string) (models.Booking, bool) {
	for _, b := range bookings {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}
