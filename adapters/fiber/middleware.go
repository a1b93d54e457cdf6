package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/looplan/looplan/core"
)

const sessionLocalKey = "session"

// requireAuth validates the request's Authorization header and stores the
// resolved session in the context for downstream handlers.
func (a *Adapter) requireAuth(c fiber.Ctx) error {
	session, err := a.lp.Sessions.VerifyHeader(c.Context(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return a.fail(c, err)
	}

	c.Locals(sessionLocalKey, session)
	return c.Next()
}

// sessionFromCtx returns the session stored by requireAuth. Handlers
// registered behind the middleware can rely on it being present.
func sessionFromCtx(c fiber.Ctx) *core.Session {
	session, _ := c.Locals(sessionLocalKey).(*core.Session)
	return session
}
