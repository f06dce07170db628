package middleware

import (
	"net/http"
	"time"

	"servicehub/services/session"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionContextKey is where the resolved *session.Session lives in the gin context.
const SessionContextKey = "session"

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Secret []byte
	TTL    time.Duration
	Secure bool
}

// LoadSession resolves the browser's session, if any, and stores it in the
// gin context. An invalid or rejected session clears the cookie and the
// request continues unauthenticated.
func LoadSession(mgr *session.Manager, cookie CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLogger(c)

		raw, err := c.Cookie(utils.SessionCookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		sessionID, err := utils.ExtractSessionID(cookie.Secret, raw)
		if err != nil {
			logger.Debug("Rejecting session cookie", zap.Error(err))
			ClearSessionCookie(c, cookie)
			c.Next()
			return
		}

		sess, err := mgr.Bootstrap(c.Request.Context(), sessionID)
		if err != nil {
			// Store outage: serve the request as a guest but keep the cookie.
			logger.Error("Session store unavailable", zap.Error(err))
			c.Next()
			return
		}
		if sess == nil {
			ClearSessionCookie(c, cookie)
			c.Next()
			return
		}

		c.Set(SessionContextKey, sess)
		c.Set("logger", logger.With(zap.String("userID", sess.User.ID), zap.String("role", string(sess.Role()))))
		c.Next()
	}
}

// CurrentSession returns the request's session or nil.
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(SessionContextKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}

// SetSessionCookie writes a browser-session cookie (no Max-Age) holding a
// signed session id.
func SetSessionCookie(c *gin.Context, cookie CookieConfig, sessionID string) error {
	token, err := utils.GenerateSessionToken(cookie.Secret, sessionID, cookie.TTL)
	if err != nil {
		return err
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     utils.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, cookie CookieConfig) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     utils.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
