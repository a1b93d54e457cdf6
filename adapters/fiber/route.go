// Package fiber adapts the looplan services to a gofiber/fiber v3 app.
package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/looplan/looplan"
	"github.com/looplan/looplan/pkg/logging"
)

type Adapter struct {
	app *fiber.App
	lp  *looplan.Looplan
	log logging.Logger
}

func New(app *fiber.App, lp *looplan.Looplan, log logging.Logger) *Adapter {
	return &Adapter{app: app, lp: lp, log: log}
}

func (a *Adapter) RegisterRoutes() {
	// Public routes
	a.app.Post("/signup", a.signup)
	a.app.Post("/signin", a.signin)

	// Protected routes. Handlers run in registration order, so requireAuth
	// must come first and reach the handler through c.Next().
	a.app.Get("/me", a.requireAuth, a.me)
	a.app.Get("/schedule", a.requireAuth, a.listSchedules)
	a.app.Post("/schedule", a.requireAuth, a.createSchedule)
	a.app.Get("/schedule/:schedule_id", a.requireAuth, a.getSchedule)
	a.app.Post("/schedule/:schedule_id", a.requireAuth, a.updateSchedule)
	a.app.Get("/schedule_color", a.requireAuth, a.listColors)
	a.app.Post("/schedule_color", a.requireAuth, a.createColor)
}
