package response

import (
	"errors"

	appErrors "splitpay/internal/errors"
	"splitpay/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

// ValidationError reports field failures with a 400.
func ValidationError(c *fiber.Ctx, errs validation.Errors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "validation failed",
		"fields": errs,
	})
}

// FromError maps a service error to a response: validation failures 400,
// missing records 404, payloads that cannot be rendered or verified 422, and
// everything else 500 without leaking details.
func FromError(c *fiber.Ctx, err error) error {
	var fields validation.Errors
	switch {
	case errors.Is(err, appErrors.ErrValidation):
		if errors.As(err, &fields) {
			return ValidationError(c, fields)
		}
		return BadRequest(c, err.Error())
	case errors.Is(err, appErrors.ErrRecipientNotFound),
		errors.Is(err, appErrors.ErrPairingNotFound):
		return NotFound(c, err.Error())
	case errors.Is(err, appErrors.ErrRender),
		errors.Is(err, appErrors.ErrChecksumMismatch),
		errors.Is(err, appErrors.ErrMalformedPayload):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
			"code":  appErrors.Code(err),
		})
	case errors.Is(err, appErrors.ErrRecipientNotConfigured):
		return Error(c, fiber.StatusServiceUnavailable, err.Error())
	default:
		return ServerError(c, "internal server error")
	}
}
