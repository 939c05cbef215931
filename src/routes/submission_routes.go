package routes

import (
	"github.com/gofiber/fiber/v2"

	"formrunner/src/controllers"
	"formrunner/src/middleware"
	"formrunner/src/services/submissions"
)

func submissionRoutes(app *fiber.App, subs *submissions.Service) {
	ctl := controllers.NewSubmissionController(subs)

	sub := app.Group("/submissions")
	sub.Get("/:id", middleware.ViewToken(), ctl.GetSubmission)
	sub.Get("/form/:formId", ctl.GetSubmissionsByForm)
	sub.Delete("/:id", ctl.DeleteSubmission)
}
