package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"formrunner/src/models"
	"formrunner/src/services/forms"
	"formrunner/src/services/pipeline"
)

// FormController exposes the public form endpoints: fetch the render schema,
// submit, and validate a single field inline.
type FormController struct {
	pipeline *pipeline.Pipeline
}

func NewFormController(p *pipeline.Pipeline) *FormController {
	return &FormController{pipeline: p}
}

// GetForm returns the render-ready schema for one form.
func (ctl *FormController) GetForm(c *fiber.Ctx) error {
	rendered, err := ctl.pipeline.FormSchema(c.Context(), c.Params("code"))
	if err != nil {
		if errors.Is(err, forms.ErrFormNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Form not found"})
		}
		log.Println("❌ Failed to load form schema:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load form"})
	}
	c.Set("Content-Type", "application/json")
	return c.SendString(rendered)
}

// Submit runs the submission pipeline and translates its outcome.
func (ctl *FormController) Submit(c *fiber.Ctx) error {
	input := parseInput(c)

	outcome, err := ctl.pipeline.Run(c.Context(), c.Params("code"), input, c.IP(), c.Get("Referer"))
	if err != nil {
		if errors.Is(err, forms.ErrFormNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Form not found"})
		}
		log.Println("❌ Submission pipeline failed:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Submission failed"})
	}
	return respondOutcome(c, outcome)
}

// ValidateField validates one field against the full form rule set. The body
// carries __field naming the target; the rest is regular form input.
func (ctl *FormController) ValidateField(c *fiber.Ctx) error {
	input := parseInput(c)

	fieldCode, _ := input["__field"].(string)
	fieldCode = strings.TrimSuffix(strings.TrimSpace(fieldCode), "[]")
	if fieldCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Missing __field"})
	}
	delete(input, "__field")

	outcome, err := ctl.pipeline.ValidateField(c.Context(), c.Params("code"), fieldCode, input)
	if err != nil {
		if errors.Is(err, forms.ErrFormNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Form not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return respondOutcome(c, outcome)
}

// parseInput reads the request body into the raw input map. JSON bodies pass
// through as-is; urlencoded bodies fold repeated or []-suffixed keys into
// lists.
func parseInput(c *fiber.Ctx) map[string]interface{} {
	input := map[string]interface{}{}

	if strings.Contains(c.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(c.Body(), &input); err != nil {
			log.Println("⚠️ Malformed JSON body:", err)
		}
		return input
	}

	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		rawKey := string(k)
		key := strings.TrimSuffix(rawKey, "[]")
		val := string(v)

		switch existing := input[key].(type) {
		case []string:
			input[key] = append(existing, val)
		case string:
			input[key] = []string{existing, val}
		default:
			if strings.HasSuffix(rawKey, "[]") {
				input[key] = []string{val}
			} else {
				input[key] = val
			}
		}
	})
	return input
}

func respondOutcome(c *fiber.Ctx, outcome *models.Outcome) error {
	if outcome.Succeeded() {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"action":  outcome.Action,
			"url":     outcome.RedirectURL,
			"message": outcome.Message,
		})
	}

	body := fiber.Map{"success": false}
	if len(outcome.FieldErrors) > 0 {
		body["errors"] = outcome.FieldErrors
	}
	if outcome.Message != "" {
		body["error"] = outcome.Message
	}
	if outcome.FailedOn != "" {
		body["failedOn"] = outcome.FailedOn
	}
	return c.Status(outcome.HTTPStatus()).JSON(body)
}
