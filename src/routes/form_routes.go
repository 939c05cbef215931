package routes

import (
	"github.com/gofiber/fiber/v2"

	"formrunner/src/controllers"
	"formrunner/src/services/pipeline"
)

func formRoutes(app *fiber.App, p *pipeline.Pipeline) {
	ctl := controllers.NewFormController(p)

	form := app.Group("/forms")
	form.Get("/:code", ctl.GetForm)
	form.Post("/:code/submit", ctl.Submit)
	form.Post("/:code/validate-field", ctl.ValidateField)
}
