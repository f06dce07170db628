package handlers

import (
	"net/http"
	"strings"

	"servicehub/middleware"
	"servicehub/models"
	"servicehub/services/forms"
	"servicehub/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves the public sign-in pages and logout.
type AuthHandler struct {
	Sessions *session.Manager
	Catalog  CatalogAPI
	Cookie   middleware.CookieConfig
}

func NewAuthHandler(sessions *session.Manager, catalog CatalogAPI, cookie middleware.CookieConfig) *AuthHandler {
	return &AuthHandler{Sessions: sessions, Catalog: catalog, Cookie: cookie}
}

type loginData struct {
	Heading  string
	Subtitle string
	Action   string
	Role     models.Role
	Email    string
}

type signupData struct {
	Form     forms.SignupForm
	Services []models.Service
}

func loginPageData(role models.Role, email string) loginData {
	d := loginData{
		Heading:  "Sign in",
		Subtitle: "Welcome back. Sign in to continue.",
		Action:   middleware.LoginPath,
		Role:     role,
		Email:    email,
	}
	if role != "" {
		name := string(role)
		d.Heading = strings.ToUpper(name[:1]) + name[1:] + " login"
		d.Subtitle = "Sign in to your " + name + " account."
		d.Action = middleware.LoginPath + "/" + name
	}
	return d
}

// RolesPage lets a visitor pick which portal to sign in to.
func (h *AuthHandler) RolesPage(c *gin.Context) {
	render(c, http.StatusOK, "roles.html", newPage(c, "Choose a portal", gin.H{"roles": models.Roles}))
}

// LoginPage renders the generic login form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", newPage(c, "Sign in", loginPageData("", "")))
}

// RoleLoginPage renders the login form for one portal.
func (h *AuthHandler) RoleLoginPage(c *gin.Context) {
	role, ok := models.ParseRole(c.Param("role"))
	if !ok {
		middleware.Redirect(c, "/roles")
		return
	}
	render(c, http.StatusOK, "login.html", newPage(c, "Sign in", loginPageData(role, "")))
}

// Login signs in through the generic form; any role is accepted.
func (h *AuthHandler) Login(c *gin.Context) {
	h.login(c, "")
}

// RoleLogin signs in through a portal and rejects accounts of another role.
func (h *AuthHandler) RoleLogin(c *gin.Context) {
	role, ok := models.ParseRole(c.Param("role"))
	if !ok {
		middleware.Redirect(c, "/roles")
		return
	}
	h.login(c, role)
}

func (h *AuthHandler) login(c *gin.Context, expected models.Role) {
	logger := getLogger(c)

	var form forms.LoginForm
	if err := form.Bind(c); err != nil {
		h.loginFailed(c, expected, form.Email, err)
		return
	}

	sess, err := h.Sessions.Login(c.Request.Context(), form.Email, form.Password, expected)
	if err != nil {
		h.loginFailed(c, expected, form.Email, err)
		return
	}
	if err := middleware.SetSessionCookie(c, h.Cookie, sess.ID); err != nil {
		logger.Error("Failed to sign session cookie", zap.Error(err))
		_ = h.Sessions.Logout(c.Request.Context(), sess.ID)
		h.loginFailed(c, expected, form.Email, err)
		return
	}
	done(c, sess.Role().Home(), "", sess.User)
}

func (h *AuthHandler) loginFailed(c *gin.Context, role models.Role, email string, err error) {
	logFailure(c, "Login failed", err)
	p := newPage(c, "Sign in", loginPageData(role, email))
	p.Error = messageFor(err)
	render(c, statusFor(err), "login.html", p)
}

const catalogUnavailable = "Failed to load services"

// SignupPage renders the registration form with the public service catalog.
func (h *AuthHandler) SignupPage(c *gin.Context) {
	h.renderSignup(c, http.StatusOK, forms.SignupForm{Role: string(models.RoleCustomer)}, "")
}

// Signup registers the account and signs it in.
func (h *AuthHandler) Signup(c *gin.Context) {
	logger := getLogger(c)

	var form forms.SignupForm
	req, err := form.Bind(c)
	if err != nil {
		h.renderSignup(c, statusFor(err), form, messageFor(err))
		return
	}

	sess, err := h.Sessions.Register(c.Request.Context(), req)
	if err != nil {
		logFailure(c, "Signup failed", err)
		h.renderSignup(c, statusFor(err), form, messageFor(err))
		return
	}
	if err := middleware.SetSessionCookie(c, h.Cookie, sess.ID); err != nil {
		logger.Error("Failed to sign session cookie", zap.Error(err))
		h.renderSignup(c, http.StatusInternalServerError, form, messageFor(err))
		return
	}
	logger.Info("Account registered", zap.String("userID", sess.User.ID), zap.String("role", string(sess.Role())))
	done(c, sess.Role().Home(), "", sess.User)
}

func (h *AuthHandler) renderSignup(c *gin.Context, status int, form forms.SignupForm, msg string) {
	form.Password, form.ConfirmPassword = "", ""
	services, err := h.Catalog.ListPublicServices(c.Request.Context())
	if err != nil {
		// The form still works for customers without the catalog.
		getLogger(c).Warn("Failed to load public services", zap.Error(err))
		if msg == "" {
			msg = catalogUnavailable
		}
	}
	p := newPage(c, "Sign up", signupData{Form: form, Services: services})
	p.Error = msg
	render(c, status, "signup.html", p)
}

// Logout drops the stored session and the cookie. The API is not called.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess := currentSession(c); sess != nil {
		if err := h.Sessions.Logout(c.Request.Context(), sess.ID); err != nil {
			getLogger(c).Warn("Failed to delete session", zap.Error(err))
		}
	}
	middleware.ClearSessionCookie(c, h.Cookie)
	done(c, middleware.LoginPath, "", nil)
}
