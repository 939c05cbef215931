package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"formrunner/src/utils"
)

// ViewToken guards single-submission reads. The request must carry a signed
// view token (query ?token= or Bearer header) whose claims name the same
// submission id as the route.
func ViewToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				tokenStr = strings.TrimPrefix(auth, "Bearer ")
			}
		}
		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing view token"})
		}

		claims, err := utils.ParseViewToken(tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired view token"})
		}
		if claims.SubmissionID != c.Params("id") {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Token does not match submission"})
		}

		c.Locals("submissionId", claims.SubmissionID)
		return c.Next()
	}
}
