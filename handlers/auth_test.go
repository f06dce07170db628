package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"servicehub/middleware"
	"servicehub/models"
	"servicehub/services/api"
	"servicehub/views"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubCatalog implements CatalogAPI with overridable functions.
type stubCatalog struct {
	listPublicFunc func(ctx context.Context) ([]models.Service, error)
}

func (s *stubCatalog) ListServices(context.Context, string) ([]models.Service, error) {
	return nil, nil
}

func (s *stubCatalog) ListPublicServices(ctx context.Context) ([]models.Service, error) {
	if s.listPublicFunc != nil {
		return s.listPublicFunc(ctx)
	}
	return nil, nil
}

func (s *stubCatalog) ListAdminServices(context.Context, string) ([]models.Service, error) {
	return nil, nil
}

func (s *stubCatalog) CreateService(context.Context, string, models.ServiceInput) (*models.Service, error) {
	return nil, errors.New("not implemented")
}

func (s *stubCatalog) UpdateService(context.Context, string, string, models.ServiceInput) (*models.Service, error) {
	return nil, errors.New("not implemented")
}

func (s *stubCatalog) DeleteService(context.Context, string, string) error {
	return errors.New("not implemented")
}

func newSignupRouter(t *testing.T, catalog CatalogAPI) *gin.Engine {
	t.Helper()
	tmpl, err := views.Templates()
	require.NoError(t, err)

	h := NewAuthHandler(nil, catalog, middleware.CookieConfig{})
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/signup", h.SignupPage)
	r.POST("/signup", h.Signup)
	return r
}

func TestSignupPage_ListsCatalog(t *testing.T) {
	r := newSignupRouter(t, &stubCatalog{
		listPublicFunc: func(context.Context) ([]models.Service, error) {
			return []models.Service{{ID: "s1", Name: "Cleaning", Price: 40}}, nil
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/signup", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cleaning")
	assert.NotContains(t, w.Body.String(), catalogUnavailable)
}

func TestSignupPage_ShowsCatalogFailure(t *testing.T) {
	r := newSignupRouter(t, &stubCatalog{
		listPublicFunc: func(context.Context) ([]models.Service, error) {
			return nil, &api.APIError{Status: http.StatusInternalServerError, Message: "boom"}
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/signup", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), catalogUnavailable)
}

func TestSignup_FormErrorWinsOverCatalogFailure(t *testing.T) {
	r := newSignupRouter(t, &stubCatalog{
		listPublicFunc: func(context.Context) ([]models.Service, error) {
			return nil, errors.New("unreachable")
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(url.Values{"name": {"Cara"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "All fields are required")
	assert.NotContains(t, w.Body.String(), catalogUnavailable)
}
