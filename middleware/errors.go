package middleware

import (
	"errors"
	"time"

	"kesharadmin/authflow"
	"kesharadmin/platform"

	"github.com/gofiber/fiber/v2"
)

// FlowErrorResponse is the single mapping of flow/platform errors to
// HTTP responses. Validation failures never reached the platform;
// everything else is the platform's answer surfaced to the caller.
func FlowErrorResponse(c *fiber.Ctx, err error) error {
	var validation *authflow.ValidationError
	if errors.As(err, &validation) {
		return ValidationErrorResponse(c, map[string]string{validation.Field: validation.Message})
	}

	var blocked *platform.BlockedError
	if errors.As(err, &blocked) {
		return JsonResponse(c, fiber.StatusLocked, false, "Blocked until "+formatBlockTime(blocked.Until), fiber.Map{
			"blockTime": blocked.Until.Format(time.RFC3339),
		})
	}

	var cooldown *authflow.CooldownError
	if errors.As(err, &cooldown) {
		return JsonResponse(c, fiber.StatusTooManyRequests, false, err.Error(), nil)
	}

	if errors.Is(err, platform.ErrInvalidCredentials) {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid mobile number or password", nil)
	}
	if errors.Is(err, authflow.ErrBusy) || errors.Is(err, authflow.ErrWrongStep) {
		return JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)
	}

	var upload *platform.UploadFailedError
	if errors.As(err, &upload) {
		return JsonResponse(c, fiber.StatusBadGateway, false, "File upload failed!", nil)
	}

	var api *platform.APIError
	if errors.As(err, &api) {
		return JsonResponse(c, fiber.StatusBadGateway, false, api.Message, nil)
	}

	return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong. Please try again.", nil)
}

// BlockedFlowResponse renders a platform block for a stored flow.
// Carries the flow id so the caller can reset the flow once the
// block is acknowledged.
func BlockedFlowResponse(c *fiber.Ctx, blocked *platform.BlockedError, flowID string) error {
	return JsonResponse(c, fiber.StatusLocked, false, "Blocked until "+formatBlockTime(blocked.Until), fiber.Map{
		"flow_id":   flowID,
		"blockTime": blocked.Until.Format(time.RFC3339),
	})
}

func formatBlockTime(t time.Time) string {
	return t.Local().Format("02 Jan 2006, 3:04:05 PM")
}
