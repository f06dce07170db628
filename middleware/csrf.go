package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

const (
	// CSRFFieldName is the hidden form field carrying the token.
	CSRFFieldName = "csrf_token"
	// CSRFHeaderName carries the token to JSON clients and back.
	CSRFHeaderName = "X-CSRF-Token"
)

// CSRF wraps the whole router with gorilla/csrf. An empty key disables
// protection (tests and local development).
func CSRF(key string, secure bool) func(http.Handler) http.Handler {
	if key == "" {
		return func(h http.Handler) http.Handler { return h }
	}
	return csrf.Protect(
		[]byte(key),
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.FieldName(CSRFFieldName),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"Your form expired. Please reload the page and try again."}`))
		})),
	)
}

// CSRFToken returns the token for the current request, or "" when
// protection is disabled.
func CSRFToken(c *gin.Context) string {
	return csrf.Token(c.Request)
}

// CSRFHeader exposes the request's token in the X-CSRF-Token response header
// so JSON clients can echo it on their next post.
func CSRFHeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := CSRFToken(c); token != "" {
			c.Header(CSRFHeaderName, token)
		}
		c.Next()
	}
}
