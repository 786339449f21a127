package middleware

import (
	"strconv"

	"github.com/deppfellow/dogwalk/internal/server"
	"github.com/deppfellow/dogwalk/internal/session"
	"github.com/labstack/echo/v4"
)

// SessionKey is the echo context key holding the loaded *session.Session.
const SessionKey = "session"

// SessionMiddleware resolves the session cookie into the logged-in user.
type SessionMiddleware struct {
	server *server.Server
}

func NewSessionMiddleware(s *server.Server) *SessionMiddleware {
	return &SessionMiddleware{server: s}
}

// LoadSession attaches the current session, if any, to the echo context
// along with user_id and user_role. It never rejects a request: routes
// in this API are public, and a store failure is logged and treated as
// an anonymous request.
func (sm *SessionMiddleware) LoadSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := sm.server.Sessions.Load(c.Request().Context(), c.Request())
			if err != nil {
				sm.server.Logger.Warn().
					Err(err).
					Str("request_id", GetRequestID(c)).
					Msg("could not load session")
				return next(c)
			}
			if sess == nil {
				return next(c)
			}

			c.Set(SessionKey, sess)
			c.Set(UserIDKey, strconv.Itoa(sess.User.UserID))
			c.Set(UserRoleKey, string(sess.User.Role))

			return next(c)
		}
	}
}

// GetSession returns the session loaded by LoadSession, or nil.
func GetSession(c echo.Context) *session.Session {
	if sess, ok := c.Get(SessionKey).(*session.Session); ok {
		return sess
	}
	return nil
}
