package courseValidator

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

var validate = validator.New()

// PlaybackSampleRequest is a debounced progress sample from a playback
// session. The client accumulates effective watch time locally and reports
// the running total; the server merges it monotonically.
type PlaybackSampleRequest struct {
	PositionSeconds       float64 `json:"position_seconds" validate:"gte=0"`
	TotalWatchTimeSeconds float64 `json:"total_watch_time_seconds" validate:"gte=0"`
	Ended                 bool    `json:"ended"`
}

// PlaybackSample validates a playback sample submission
func PlaybackSample() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PlaybackSampleRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "PositionSeconds":
					errors["position_seconds"] = "Position must not be negative!"
				case "TotalWatchTimeSeconds":
					errors["total_watch_time_seconds"] = "Watch time must not be negative!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPlaybackSample", reqData)
		return c.Next()
	}
}
