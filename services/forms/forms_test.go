package forms

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"servicehub/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func formContext(values url.Values) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c
}

func jsonContext(body string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func requireValidation(t *testing.T, err error, want string) {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, want, verr.Message)
}

func TestLoginForm_Bind(t *testing.T) {
	var f LoginForm
	require.NoError(t, f.Bind(formContext(url.Values{"email": {"  Cara@Example.COM "}, "password": {"x"}})))
	assert.Equal(t, "cara@example.com", f.Email)

	for _, bad := range []url.Values{
		{"email": {"cara"}, "password": {"x"}},
		{"email": {"cara@example"}, "password": {"x"}},
		{"email": {"cara@example.com"}},
		{},
	} {
		var f LoginForm
		requireValidation(t, f.Bind(formContext(bad)), "Please enter a valid email and password.")
	}
}

func TestLoginForm_BindKeepsSubmittedEmail(t *testing.T) {
	var f LoginForm
	err := f.Bind(formContext(url.Values{"email": {" Cara@Example.com "}}))
	require.Error(t, err)
	assert.Equal(t, "cara@example.com", f.Email)
}

func TestLoginForm_BindMalformedJSON(t *testing.T) {
	var f LoginForm
	err := f.Bind(jsonContext(`{"email":`))
	requireValidation(t, err, "Please enter a valid email and password.")
	assert.NotNil(t, errors.Unwrap(err), "decode error is kept for logging")
}

func TestSignupForm_Bind(t *testing.T) {
	valid := func() url.Values {
		return url.Values{
			"name":            {" Cara "},
			"email":           {"CARA@example.com"},
			"password":        {"secret123"},
			"confirmPassword": {"secret123"},
			"role":            {"customer"},
		}
	}

	var f SignupForm
	req, err := f.Bind(formContext(valid()))
	require.NoError(t, err)
	assert.Equal(t, models.RegisterRequest{
		Name: "Cara", Email: "cara@example.com", Password: "secret123", Role: models.RoleCustomer, Services: []string{},
	}, req)

	tests := []struct {
		name   string
		mutate func(v url.Values)
		want   string
	}{
		{"missing name", func(v url.Values) { v.Set("name", " ") }, "All fields are required"},
		{"missing confirmation", func(v url.Values) { v.Del("confirmPassword") }, "All fields are required"},
		{"missing field wins over bad email", func(v url.Values) { v.Set("email", "cara"); v.Del("password") }, "All fields are required"},
		{"bad email", func(v url.Values) { v.Set("email", "cara") }, "Please enter a valid email address"},
		{"short password", func(v url.Values) { v.Set("password", "abc1"); v.Set("confirmPassword", "abc1") }, passwordMessage},
		{"no digit", func(v url.Values) { v.Set("password", "abcdefgh"); v.Set("confirmPassword", "abcdefgh") }, passwordMessage},
		{"mismatch", func(v url.Values) { v.Set("confirmPassword", "secret124") }, "Passwords do not match"},
		{"admin signup", func(v url.Values) { v.Set("role", "admin") }, "Please choose customer or provider"},
		{"provider without services", func(v url.Values) { v.Set("role", "provider") }, "Please select at least one service"},
		{"provider with blank services", func(v url.Values) { v.Set("role", "provider"); v.Set("services", " ") }, "Please select at least one service"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := valid()
			tt.mutate(v)
			var f SignupForm
			_, err := f.Bind(formContext(v))
			requireValidation(t, err, tt.want)
		})
	}
}

func TestSignupForm_ProviderServices(t *testing.T) {
	var f SignupForm
	req, err := f.Bind(jsonContext(`{"name":"Pat","email":"pat@example.com","password":"secret123",` +
		`"confirmPassword":"secret123","role":"provider","services":["s1",""," s2"]}`))
	require.NoError(t, err)
	assert.Equal(t, models.RoleProvider, req.Role)
	assert.Equal(t, []string{"s1", "s2"}, req.Services)
}

func TestSignupForm_DefaultsToCustomer(t *testing.T) {
	var f SignupForm
	req, err := f.Bind(formContext(url.Values{
		"name": {"Cara"}, "email": {"cara@example.com"}, "password": {"secret123"}, "confirmPassword": {"secret123"},
	}))
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, req.Role)
}

func TestBindBooking(t *testing.T) {
	full := url.Values{
		"serviceId":   {"s1"},
		"name":        {" Cara "},
		"phone":       {"555"},
		"address":     {"1 Main St"},
		"scheduledAt": {"2030-01-02T10:00"},
	}
	var req models.CreateBookingRequest
	require.NoError(t, BindBooking(formContext(full), &req))
	assert.Equal(t, "Cara", req.Name)
	assert.Equal(t, "2030-01-02T10:00", req.ScheduledAt)

	missing := url.Values{"serviceId": {"s1"}, "name": {"Cara"}, "phone": {"555"}, "address": {"  "}, "scheduledAt": {"2030-01-02T10:00"}}
	requireValidation(t, BindBooking(formContext(missing), &models.CreateBookingRequest{}), "Please fill all required fields")

	badEmail := url.Values{}
	for k, v := range full {
		badEmail[k] = v
	}
	badEmail.Set("email", "nope")
	requireValidation(t, BindBooking(formContext(badEmail), &models.CreateBookingRequest{}), "Please enter a valid email address")
}

func TestBindService(t *testing.T) {
	var in models.ServiceInput
	require.NoError(t, BindService(formContext(url.Values{"name": {" Cleaning "}, "price": {"10"}}), &in))
	assert.Equal(t, models.ServiceInput{Name: "Cleaning", Price: 10}, in)

	for _, bad := range []url.Values{
		{"price": {"10"}},
		{"name": {"Cleaning"}},
		{"name": {"Cleaning"}, "price": {"0"}},
		{"name": {"Cleaning"}, "price": {"ten"}},
	} {
		requireValidation(t, BindService(formContext(bad), &models.ServiceInput{}), "Job name and price are required.")
	}
}
