package booking

import "servicehub/models"

// Summary holds the dashboard counters.
type Summary struct {
	Total      int                          `json:"total"`
	ByStatus   map[models.BookingStatus]int `json:"byStatus"`
	Active     int                          `json:"active"`
	Pending    int                          `json:"pending"`
	Assigned   int                          `json:"assigned"`
	InProgress int                          `json:"inProgress"`
	Completed  int                          `json:"completed"`
}

// Summarize counts bookings by status.
func Summarize(bookings []models.Booking) Summary {
	s := Summary{Total: len(bookings), ByStatus: make(map[models.BookingStatus]int)}
	for _, b := range bookings {
		s.ByStatus[b.Status]++
		if IsActive(b.Status) {
			s.Active++
		}
	}
	s.Pending = s.ByStatus[models.StatusCreated]
	s.Assigned = s.ByStatus[models.StatusAssigned]
	s.InProgress = s.ByStatus[models.StatusInProgress]
	s.Completed = s.ByStatus[models.StatusCompleted]
	return s
}
