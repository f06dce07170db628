package middleware

import (
	"net/http"

	"servicehub/models"

	"github.com/gin-gonic/gin"
)

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

// Redirect sends the browser to location. Non-GET requests get 303 so the
// follow-up is a GET.
func Redirect(c *gin.Context, location string) {
	code := http.StatusFound
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		code = http.StatusSeeOther
	}
	c.Redirect(code, location)
	c.Abort()
}

// RequireRole lets the request through only for a session with role.
// Guests go to the login page; other roles go to their own home.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil {
			Redirect(c, LoginPath)
			return
		}
		if sess.Role() != role {
			GetLogger(c).Debug("Redirecting mismatched role")
			Redirect(c, homeFor(sess.Role()))
			return
		}
		c.Next()
	}
}

// GuestOnly keeps signed-in users off the login and signup pages.
func GuestOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess := CurrentSession(c); sess != nil {
			Redirect(c, homeFor(sess.Role()))
			return
		}
		c.Next()
	}
}

// RoleHome redirects to the session's home, or to the login page. It serves
// both "/" and unmatched paths; the intended destination is not remembered.
func RoleHome(c *gin.Context) {
	sess := CurrentSession(c)
	if sess == nil {
		Redirect(c, LoginPath)
		return
	}
	Redirect(c, homeFor(sess.Role()))
}

func homeFor(role models.Role) string {
	if _, ok := models.ParseRole(string(role)); !ok {
		// A profile with an unknown role has no dashboard.
		return LoginPath
	}
	return role.Home()
}
