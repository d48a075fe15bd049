package authValidator

import (
	"kesharadmin/middleware"

	"github.com/gofiber/fiber/v2"
)

// Login validator middleware. Digit-count and password rules live in
// the flow itself so they are enforced before any network call; this
// layer only checks the request shape.
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			MobileNo string `json:"mobile_no"`
			Password string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

// ForgotPassword validator middleware
func ForgotPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			MobileNo string `json:"mobile_no"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedForgot", reqData)
		return c.Next()
	}
}

// VerifyOTP validator middleware
func VerifyOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FlowID string `json:"flow_id"`
			OTP    string `json:"otp"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.FlowID == "" {
			errors["flow_id"] = "Flow id is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOTP", reqData)
		return c.Next()
	}
}

// FlowRef validator middleware for resend/reset actions
func FlowRef() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FlowID string `json:"flow_id"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.FlowID == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"flow_id": "Flow id is required!"})
		}

		c.Locals("validatedFlowRef", reqData)
		return c.Next()
	}
}

// SetPassword validator middleware
func SetPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FlowID          string `json:"flow_id"`
			NewPassword     string `json:"new_password"`
			ConfirmPassword string `json:"confirm_password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.FlowID == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"flow_id": "Flow id is required!"})
		}

		c.Locals("validatedSetPassword", reqData)
		return c.Next()
	}
}
