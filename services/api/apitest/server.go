// Package apitest runs an in-memory marketplace API for tests.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"servicehub/models"
)

// Account is a user known to the fake API.
type Account struct {
	User     models.User
	Password string
	Active   bool
	Services []string
}

// Server is a fake marketplace API. Its fields may be changed between
// requests; all access goes through mu.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	accounts map[string]*Account // by token
	services []models.Service
	bookings []models.Booking
	calls    []string
	nextID   int

	// LegacyCustomerRoute makes GET /bookings/my answer 404 so clients must
	// use /bookings/customer.
	LegacyCustomerRoute bool
}

// NewServer starts a fake API. Close it when done.
func NewServer() *Server {
	s := &Server{accounts: map[string]*Account{}}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", s.register)
	mux.HandleFunc("POST /auth/login", s.login)
	mux.HandleFunc("GET /auth/me", s.authed(s.me))

	mux.HandleFunc("GET /services", s.authed(s.listServices))
	mux.HandleFunc("GET /services/public", s.listPublicServices)
	mux.HandleFunc("GET /services/admin", s.authed(s.listServices))
	mux.HandleFunc("POST /services", s.authed(s.createService))
	mux.HandleFunc("PATCH /services/{id}", s.authed(s.updateService))
	mux.HandleFunc("DELETE /services/{id}", s.authed(s.deleteService))

	mux.HandleFunc("GET /bookings", s.authed(s.listAllBookings))
	mux.HandleFunc("GET /bookings/my", s.authed(s.listMyBookings))
	mux.HandleFunc("GET /bookings/customer", s.authed(s.listCustomerBookings))
	mux.HandleFunc("GET /bookings/provider", s.authed(s.listProviderBookings))
	mux.HandleFunc("POST /bookings", s.authed(s.createBooking))
	mux.HandleFunc("POST /bookings/status", s.authed(s.setBookingStatus))
	mux.HandleFunc("PATCH /bookings/{id}/assign", s.authed(s.assign))
	mux.HandleFunc("PATCH /bookings/{id}/accept", s.authed(s.move(models.StatusInProgress)))
	mux.HandleFunc("PATCH /bookings/{id}/complete", s.authed(s.move(models.StatusCompleted)))
	mux.HandleFunc("DELETE /bookings/{id}", s.authed(s.deleteBooking))

	mux.HandleFunc("GET /users/providers", s.authed(s.listProviders))
	mux.HandleFunc("GET /users/providers/availability", s.authed(s.listAvailable))
	mux.HandleFunc("PATCH /users/{id}/status", s.authed(s.setUserStatus))
	mux.HandleFunc("POST /users/{id}/reset-password", s.authed(s.resetPassword))

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	return s
}

// AddUser registers an account directly and returns its bearer token.
func (s *Server) AddUser(name, email, password string, role models.Role) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(name, email, password, role, nil)
}

func (s *Server) addUserLocked(name, email, password string, role models.Role, services []string) string {
	id := s.newIDLocked("u")
	token := "token-" + id
	s.accounts[token] = &Account{
		User:     models.User{ID: id, Name: name, Email: email, Role: role},
		Password: password,
		Active:   true,
		Services: services,
	}
	return token
}

// UserID returns the id of the account holding token.
func (s *Server) UserID(token string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[token]; ok {
		return a.User.ID
	}
	return ""
}

// RevokeToken makes token unknown to the API.
func (s *Server) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, token)
}

// AddService seeds a catalog entry and returns its id.
func (s *Server) AddService(name string, price float64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newIDLocked("s")
	s.services = append(s.services, models.Service{ID: id, Name: name, Price: price})
	return id
}

// AddBooking seeds a booking and returns its id.
func (s *Server) AddBooking(b models.Booking) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == "" {
		b.ID = s.newIDLocked("b")
	}
	s.bookings = append(s.bookings, b)
	return b.ID
}

// Booking returns the stored booking with id.
func (s *Server) Booking(id string) (models.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}

// Services returns the current catalog.
func (s *Server) Services() []models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Service(nil), s.services...)
}

// Account returns the account with user id.
func (s *Server) Account(userID string) (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.User.ID == userID {
			return *a, true
		}
	}
	return Account{}, false
}

// Calls returns every "METHOD /path" received so far.
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// CountCalls counts received requests equal to call.
func (s *Server) CountCalls(call string) int {
	n := 0
	for _, c := range s.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func (s *Server) newIDLocked(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s%d", prefix, s.nextID)
}

type authedHandler func(w http.ResponseWriter, r *http.Request, a *Account)

func (s *Server) authed(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		a, ok := s.accounts[token]
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "Unauthorized"})
			return
		}
		next(w, r, a)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.MessageResponse{Message: msg})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.User.Email == req.Email {
			fail(w, http.StatusBadRequest, "User already exists")
			return
		}
	}
	s.addUserLocked(req.Name, req.Email, req.Password, req.Role, req.Services)
	writeJSON(w, http.StatusCreated, models.MessageResponse{Message: "Registered"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, a := range s.accounts {
		if a.User.Email == req.Email && a.Password == req.Password {
			if !a.Active {
				fail(w, http.StatusForbidden, "Account suspended")
				return
			}
			writeJSON(w, http.StatusOK, models.LoginResponse{Token: token})
			return
		}
	}
	fail(w, http.StatusUnauthorized, "Invalid credentials")
}

func (s *Server) me(w http.ResponseWriter, _ *http.Request, a *Account) {
	writeJSON(w, http.StatusOK, a.User)
}

func (s *Server) listServices(w http.ResponseWriter, r *http.Request, _ *Account) {
	s.listPublicServices(w, r)
}

func (s *Server) listPublicServices(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Services())
}

func (s *Server) createService(w http.ResponseWriter, r *http.Request, a *Account) {
	if a.User.Role != models.RoleAdmin {
		fail(w, http.StatusForbidden, "Forbidden")
		return
	}
	var in models.ServiceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request")
		return
	}
	s.mu.Lock()
	svc := models.Service{ID: s.newIDLocked("s"), Name: in.Name, Price: in.Price, Description: in.Description}
	s.services = append(s.services, svc)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, svc)
}

func (s *Server) updateService(w http.ResponseWriter, r *http.Request, _ *Account) {
	var in models.ServiceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.services {
		if s.services[i].ID == r.PathValue("id") {
			s.services[i].Name, s.services[i].Price, s.services[i].Description = in.Name, in.Price, in.Description
			writeJSON(w, http.StatusOK, s.services[i])
			return
		}
	}
	fail(w, http.StatusNotFound, "Service not found")
}

func (s *Server) deleteService(w http.ResponseWriter, r *http.Request, _ *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.services {
		if s.services[i].ID == r.PathValue("id") {
			s.services = append(s.services[:i], s.services[i+1:]...)
			writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Deleted"})
			return
		}
	}
	fail(w, http.StatusNotFound, "Service not found")
}

func (s *Server) filterBookings(keep func(models.Booking) bool) []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Booking{}
	for _, b := range s.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func (s *Server) listAllBookings(w http.ResponseWriter, _ *http.Request, a *Account) {
	if a.User.Role != models.RoleAdmin {
		fail(w, http.StatusForbidden, "Forbidden")
		return
	}
	writeJSON(w, http.StatusOK, s.filterBookings(func(models.Booking) bool { return true }))
}

func (s *Server) listMyBookings(w http.ResponseWriter, r *http.Request, a *Account) {
	s.mu.Lock()
	legacy := s.LegacyCustomerRoute
	s.mu.Unlock()
	if legacy {
		fail(w, http.StatusNotFound, "Not found")
		return
	}
	s.listCustomerBookings(w, r, a)
}

func (s *Server) listCustomerBookings(w http.ResponseWriter, _ *http.Request, a *Account) {
	writeJSON(w, http.StatusOK, s.filterBookings(func(b models.Booking) bool { return b.Customer.ID == a.User.ID }))
}

func (s *Server) listProviderBookings(w http.ResponseWriter, _ *http.Request, a *Account) {
	writeJSON(w, http.StatusOK, s.filterBookings(func(b models.Booking) bool { return b.Provider.ID == a.User.ID }))
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request, a *Account) {
	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var svc *models.Service
	for i := range s.services {
		if s.services[i].ID == req.ServiceID {
			svc = &s.services[i]
		}
	}
	if svc == nil {
		fail(w, http.StatusBadRequest, "Service not found")
		return
	}
	b := models.Booking{
		ID:            s.newIDLocked("b"),
		Service:       models.Ref{ID: svc.ID, Name: svc.Name},
		Customer:      models.Ref{ID: a.User.ID, Name: a.User.Name},
		ScheduledAt:   req.ScheduledAt,
		CustomerName:  req.Name,
		CustomerPhone: req.Phone,
		CustomerEmail: req.Email,
		Address:       req.Address,
		Notes:         req.Notes,
		Status:        models.StatusCreated,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	s.bookings = append(s.bookings, b)
	writeJSON(w, http.StatusCreated, b)
}

// update applies fn to booking id under the lock.
func (s *Server) update(w http.ResponseWriter, id string, fn func(b *models.Booking) (int, string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			if status, msg := fn(&s.bookings[i]); status != 0 {
				fail(w, status, msg)
				return
			}
			writeJSON(w, http.StatusOK, s.bookings[i])
			return
		}
	}
	fail(w, http.StatusNotFound, "Booking not found")
}

func (s *Server) assign(w http.ResponseWriter, r *http.Request, _ *Account) {
	var req models.AssignProviderRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	s.mu.Lock()
	var provider *Account
	for _, a := range s.accounts {
		if a.User.ID == req.ProviderID && a.User.Role == models.RoleProvider {
			provider = a
		}
	}
	s.mu.Unlock()
	if provider == nil {
		fail(w, http.StatusBadRequest, "Provider not found")
		return
	}
	s.update(w, r.PathValue("id"), func(b *models.Booking) (int, string) {
		b.Provider = models.Ref{ID: provider.User.ID, Name: provider.User.Name, Email: provider.User.Email}
		b.Status = models.StatusAssigned
		return 0, ""
	})
}

func (s *Server) move(to models.BookingStatus) authedHandler {
	return func(w http.ResponseWriter, r *http.Request, _ *Account) {
		s.update(w, r.PathValue("id"), func(b *models.Booking) (int, string) {
			b.Status = to
			return 0, ""
		})
	}
}

func (s *Server) setBookingStatus(w http.ResponseWriter, r *http.Request, _ *Account) {
	var req models.BookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request")
		return
	}
	s.update(w, req.BookingID, func(b *models.Booking) (int, string) {
		b.Status = req.Status
		return 0, ""
	})
}

func (s *Server) deleteBooking(w http.ResponseWriter, r *http.Request, _ *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == r.PathValue("id") {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Deleted"})
			return
		}
	}
	fail(w, http.StatusNotFound, "Booking not found")
}

func (s *Server) providers(onlyActive bool) []models.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Provider{}
	for _, a := range s.accounts {
		if a.User.Role != models.RoleProvider || (onlyActive && !a.Active) {
			continue
		}
		p := models.Provider{ID: a.User.ID, Name: a.User.Name, Email: a.User.Email, Active: a.Active}
		for _, id := range a.Services {
			p.Services = append(p.Services, models.Ref{ID: id})
		}
		out = append(out, p)
	}
	return out
}

func (s *Server) listProviders(w http.ResponseWriter, _ *http.Request, _ *Account) {
	writeJSON(w, http.StatusOK, s.providers(false))
}

func (s *Server) listAvailable(w http.ResponseWriter, r *http.Request, _ *Account) {
	if r.URL.Query().Get("scheduledAt") == "" {
		fail(w, http.StatusBadRequest, "scheduledAt is required")
		return
	}
	writeJSON(w, http.StatusOK, s.providers(true))
}

func (s *Server) setUserStatus(w http.ResponseWriter, r *http.Request, _ *Account) {
	var req models.ProviderStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.User.ID == r.PathValue("id") {
			a.Active = req.Active
			writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Updated"})
			return
		}
	}
	fail(w, http.StatusNotFound, "User not found")
}

func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request, _ *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.User.ID == r.PathValue("id") {
			a.Password = ""
			writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Password reset"})
			return
		}
	}
	fail(w, http.StatusNotFound, "User not found")
}
