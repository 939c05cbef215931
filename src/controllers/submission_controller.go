package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"formrunner/src/models"
	"formrunner/src/services/submissions"
)

// SubmissionController exposes stored submissions to admins and to holders
// of signed view links.
type SubmissionController struct {
	service *submissions.Service
}

func NewSubmissionController(s *submissions.Service) *SubmissionController {
	return &SubmissionController{service: s}
}

func (ctl *SubmissionController) GetSubmission(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid submission id"})
	}

	sub, err := ctl.service.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, submissions.ErrSubmissionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Submission not found"})
		}
		log.Println("❌ Failed to load submission:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load submission"})
	}

	rendered := make(map[string]string, len(sub.Data))
	for code, value := range sub.Data {
		rendered[code] = models.RenderValue(value)
	}
	return c.JSON(fiber.Map{"submission": sub, "rendered": rendered})
}

func (ctl *SubmissionController) GetSubmissionsByForm(c *fiber.Ctx) error {
	formID, err := primitive.ObjectIDFromHex(c.Params("formId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid form id"})
	}

	limit := int64(c.QueryInt("limit", 0))
	subs, err := ctl.service.GetByFormID(c.Context(), formID, limit)
	if err != nil {
		log.Println("❌ Failed to list submissions:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list submissions"})
	}
	return c.JSON(fiber.Map{"submissions": subs, "count": len(subs)})
}

func (ctl *SubmissionController) DeleteSubmission(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid submission id"})
	}

	if err := ctl.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, submissions.ErrSubmissionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Submission not found"})
		}
		log.Println("❌ Failed to delete submission:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete submission"})
	}
	return c.JSON(fiber.Map{"message": "Submission deleted"})
}
