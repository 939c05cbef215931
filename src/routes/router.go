package routes

import (
	"github.com/gofiber/fiber/v2"

	"formrunner/src/services/pipeline"
	"formrunner/src/services/submissions"
)

// InitRoutes mounts all route groups on the app.
func InitRoutes(app *fiber.App, p *pipeline.Pipeline, subs *submissions.Service) {
	formRoutes(app, p)
	submissionRoutes(app, subs)
}
