package courseValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

// AssessmentSubmission carries the submitted answers keyed by question ID.
// Tokens are option letters (A-D) or TRUE/FALSE.
type AssessmentSubmission struct {
	Answers map[string]string `json:"answers"`
}

// SubmitAssessment validates an assessment submission body
func SubmitAssessment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AssessmentSubmission)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Answers) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please answer at least one question!", nil)
		}

		errors := make(map[string]string)
		for questionID, token := range reqData.Answers {
			if strings.TrimSpace(token) == "" {
				errors[questionID] = "Answer must not be empty!"
			}
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}
