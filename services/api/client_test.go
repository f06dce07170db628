package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"servicehub/models"
	"servicehub/services/api"
	"servicehub/services/api/apitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SendsBearerTokenAndJSON(t *testing.T) {
	var gotAuth, gotType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id":"s1","name":"Cleaning","price":25}`))
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, 0, nil)
	var out models.Service
	err := client.Do(context.Background(), "tok", http.MethodPost, "/services", models.ServiceInput{Name: "Cleaning", Price: 25}, &out)

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.JSONEq(t, `{"name":"Cleaning","price":25}`, gotBody)
	assert.Equal(t, "s1", out.ID)
}

func TestDo_OmitsAuthorizationWithoutToken(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := api.NewClient(srv.URL, 0, nil).Do(context.Background(), "", http.MethodGet, "/services/public", nil, nil)
	require.NoError(t, err)
	assert.False(t, hasAuth)
}

func TestDo_ErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{"server message is passed through", http.StatusBadRequest, `{"message":"Slot already taken"}`, "Slot already taken"},
		{"missing message falls back", http.StatusInternalServerError, `{"error":"boom"}`, api.FallbackMessage},
		{"non JSON body falls back", http.StatusBadGateway, `<html>bad gateway</html>`, api.FallbackMessage},
		{"blank message falls back", http.StatusConflict, `{"message":"  "}`, api.FallbackMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := api.NewClient(srv.URL, 0, nil).Do(context.Background(), "", http.MethodGet, "/x", nil, nil)

			var apiErr *api.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantMessage, api.Message(err))
		})
	}
}

func TestDo_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := api.NewClient(url, 0, nil).Do(context.Background(), "", http.MethodGet, "/services", nil, nil)

	var apiErr *api.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, api.FallbackMessage, apiErr.Message)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestListMyBookings_FallsBackToCustomerRoute(t *testing.T) {
	fake := apitest.NewServer()
	defer fake.Close()
	fake.LegacyCustomerRoute = true

	token := fake.AddUser("Cara", "cara@example.com", "secret123", models.RoleCustomer)
	fake.AddBooking(models.Booking{Customer: models.Ref{ID: fake.UserID(token)}, Status: models.StatusCreated})

	bookings, err := api.NewClient(fake.URL, 0, nil).ListMyBookings(context.Background(), token)

	require.NoError(t, err)
	assert.Len(t, bookings, 1)
	assert.Equal(t, 1, fake.CountCalls("GET /bookings/my"))
	assert.Equal(t, 1, fake.CountCalls("GET /bookings/customer"))
}

func TestBookingEndpoints(t *testing.T) {
	fake := apitest.NewServer()
	defer fake.Close()
	ctx := context.Background()
	client := api.NewClient(fake.URL, 0, nil)

	admin := fake.AddUser("Ada", "ada@example.com", "secret123", models.RoleAdmin)
	provider := fake.AddUser("Pat", "pat@example.com", "secret123", models.RoleProvider)
	customer := fake.AddUser("Cara", "cara@example.com", "secret123", models.RoleCustomer)
	serviceID := fake.AddService("Cleaning", 40)

	created, err := client.CreateBooking(ctx, customer, models.CreateBookingRequest{
		ServiceID: serviceID, Name: "Cara", Phone: "555", Address: "1 Main St", ScheduledAt: "2030-01-02T10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCreated, created.Status)
	assert.Equal(t, "Cleaning", created.Service.Name)
	assert.False(t, created.HasProvider())

	require.NoError(t, client.AssignProvider(ctx, admin, created.ID, fake.UserID(provider)))
	require.NoError(t, client.AcceptBooking(ctx, provider, created.ID))

	jobs, err := client.ListProviderBookings(ctx, provider)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.StatusInProgress, jobs[0].Status)
	assert.Equal(t, "Pat", jobs[0].Provider.Name)

	require.NoError(t, client.CompleteBooking(ctx, provider, created.ID))
	b, ok := fake.Booking(created.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusCompleted, b.Status)

	require.NoError(t, client.UpdateBookingStatus(ctx, admin, created.ID, models.StatusCancelled))
	b, _ = fake.Booking(created.ID)
	assert.Equal(t, models.StatusCancelled, b.Status)

	require.NoError(t, client.DeleteBooking(ctx, admin, created.ID))
	_, ok = fake.Booking(created.ID)
	assert.False(t, ok)

	err = client.DeleteBooking(ctx, admin, created.ID)
	assert.True(t, api.IsNotFound(err))
	assert.Equal(t, "Booking not found", api.Message(err))
}

func TestAuthEndpoints(t *testing.T) {
	fake := apitest.NewServer()
	defer fake.Close()
	ctx := context.Background()
	client := api.NewClient(fake.URL, 0, nil)

	require.NoError(t, client.Register(ctx, models.RegisterRequest{
		Name: "Cara", Email: "cara@example.com", Password: "secret123", Role: models.RoleCustomer,
	}))

	token, err := client.Login(ctx, models.LoginRequest{Email: "cara@example.com", Password: "secret123"})
	require.NoError(t, err)

	user, err := client.Me(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Cara", user.Name)
	assert.Equal(t, models.RoleCustomer, user.Role)

	_, err = client.Login(ctx, models.LoginRequest{Email: "cara@example.com", Password: "wrong"})
	assert.Equal(t, "Invalid credentials", api.Message(err))

	_, err = client.Me(ctx, "bogus")
	assert.True(t, api.IsUnauthorized(err))
}

func TestLogin_EmptyTokenIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := api.NewClient(srv.URL, 0, nil).Login(context.Background(), models.LoginRequest{Email: "a@b.co", Password: "x"})
	assert.Equal(t, api.FallbackMessage, api.Message(err))
}

func TestUserAndCatalogEndpoints(t *testing.T) {
	fake := apitest.NewServer()
	defer fake.Close()
	ctx := context.Background()
	client := api.NewClient(fake.URL, 0, nil)

	admin := fake.AddUser("Ada", "ada@example.com", "secret123", models.RoleAdmin)
	provider := fake.AddUser("Pat", "pat@example.com", "secret123", models.RoleProvider)
	providerID := fake.UserID(provider)

	svc, err := client.CreateService(ctx, admin, models.ServiceInput{Name: "Plumbing", Price: 60})
	require.NoError(t, err)
	_, err = client.UpdateService(ctx, admin, svc.ID, models.ServiceInput{Name: "Plumbing+", Price: 70})
	require.NoError(t, err)

	public, err := client.ListPublicServices(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Plumbing+", public[0].Name)

	require.NoError(t, client.SetUserStatus(ctx, admin, providerID, false))
	providers, err := client.ListProviders(ctx, admin)
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.False(t, providers[0].Active)

	available, err := client.ListAvailableProviders(ctx, admin, "2030-01-02T10:00")
	require.NoError(t, err)
	assert.Empty(t, available)

	require.NoError(t, client.ResetPassword(ctx, admin, providerID))
	require.NoError(t, client.DeleteService(ctx, admin, svc.ID))
	assert.Empty(t, fake.Services())
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	client := api.NewClient(srv.URL, 0, nil)
	assert.NoError(t, client.Ping(context.Background()), "any HTTP answer means the API is reachable")

	srv.Close()
	assert.Error(t, client.Ping(context.Background()))
}
