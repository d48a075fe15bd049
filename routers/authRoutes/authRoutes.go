package authRoutes

import (
	authController "kesharadmin/controllers/auth"
	"kesharadmin/middleware"
	authValidator "kesharadmin/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Post("/login/verify/otp", authValidator.VerifyOTP(), authController.LoginVerifyOTP)
	authGroup.Post("/login/resend/otp", authValidator.FlowRef(), authController.LoginResendOTP)
	authGroup.Post("/forgot/password", authValidator.ForgotPassword(), authController.ForgotPassword)
	authGroup.Post("/forgot/password/verify/otp", authValidator.VerifyOTP(), authController.ForgotVerifyOTP)
	authGroup.Post("/forgot/password/resend/otp", authValidator.FlowRef(), authController.ForgotResendOTP)
	authGroup.Patch("/forgot/password/reset", authValidator.SetPassword(), authController.ForgotSetPassword)
	authGroup.Post("/flow/reset", authValidator.FlowRef(), authController.ResetFlow)
	authGroup.Get("/me", middleware.SessionMiddleware, authController.Me)
	authGroup.Post("/logout", middleware.SessionMiddleware, authController.Logout)
}
