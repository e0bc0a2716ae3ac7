package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/canteen-system/canteen-console/internal/core/domain"
	"github.com/canteen-system/canteen-console/internal/core/ports"
)

// CookieName identifies the signed session cookie. The cookie carries an
// HS256 JWT whose only claim of interest is the session id; the session
// payload itself lives server-side in the durable store.
const CookieName = "canteen_session"

const (
	ctxSessionKey = "session"
	ctxSIDKey     = "session_id"
)

// Session restores the caller's session before any guard or screen runs.
// A missing, malformed, or expired cookie leaves the request anonymous; a
// restore failure is logged by the store and degrades to anonymous too,
// so a broken Redis never blanks a public screen.
func Session(store ports.SessionStore, cookieSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := sessionID(c, cookieSecret)
			sess := domain.Session{}
			if sid != "" {
				restored, err := store.Restore(c.Request().Context(), sid)
				if err == nil {
					sess = restored
				}
			}
			c.Set(ctxSIDKey, sid)
			c.Set(ctxSessionKey, sess)
			return next(c)
		}
	}
}

// sessionID extracts and verifies the session id from the cookie. Any
// verification failure yields "", i.e. anonymous.
func sessionID(c echo.Context, secret string) string {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return ""
	}

	sid, _ := claims["sid"].(string)
	return sid
}

// CurrentSession returns the session placed by the Session middleware.
// The zero session is returned when the middleware did not run.
func CurrentSession(c echo.Context) domain.Session {
	sess, _ := c.Get(ctxSessionKey).(domain.Session)
	return sess
}

// SessionID returns the verified session id for this request, or "".
func SessionID(c echo.Context) string {
	sid, _ := c.Get(ctxSIDKey).(string)
	return sid
}

// IssueCookie mints a signed session cookie for sid and attaches it to the
// response. Called when a login or registration establishes a session.
func IssueCookie(c echo.Context, secret, sid string, ttl time.Duration) error {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie expires the session cookie on the client.
func ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
