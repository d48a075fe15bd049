package authController

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"kesharadmin/authflow"
	"kesharadmin/config"
	"kesharadmin/database"
	"kesharadmin/middleware"
	"kesharadmin/models"
	"kesharadmin/platform"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var (
	client *platform.Client
	flows  *authflow.Store
)

// Setup wires the platform client and flow store. Called once from main.
func Setup(c *platform.Client, s *authflow.Store) {
	client = c
	flows = s
}

func cooldown() time.Duration {
	return time.Duration(config.AppConfig.OTPResendCooldownSec) * time.Second
}

// Login starts a login flow: submits mobile + password, and on
// success the platform issues an OTP to the mobile number.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		MobileNo string `json:"mobile_no"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	flow := authflow.NewLogin(client, cooldown())
	if err := flow.SubmitMobile(c.Context(), reqData.MobileNo, reqData.Password); err != nil {
		// A block at the mobile step is kept in the store so retries
		// are refused locally until the flow is reset.
		var blocked *platform.BlockedError
		if errors.As(err, &blocked) {
			flows.Put(flow)
			return middleware.BlockedFlowResponse(c, blocked, flow.ID)
		}
		return middleware.FlowErrorResponse(c, err)
	}
	flows.Put(flow)

	data := fiber.Map{
		"flow_id": flow.ID,
		"step":    string(flow.State().Step()),
	}
	if otpState, ok := flow.State().(authflow.OTPState); ok && otpState.DevOTP != "" {
		data["otp"] = otpState.DevOTP // echoed by non-production backends only
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully.", data)
}

// LoginVerifyOTP completes login: exchanges the 6-digit code for the
// platform bearer token, persists the session, and returns the
// portal's own token.
func LoginVerifyOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedOTP").(*struct {
		FlowID string `json:"flow_id"`
		OTP    string `json:"otp"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	flow := flows.Get(reqData.FlowID)
	if flow == nil || flow.Kind != authflow.KindLogin {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Login flow not found. Please start again.", nil)
	}

	mobile := mobileOf(flow) // read before the flow advances to success

	verified, err := flow.SubmitOTP(c.Context(), reqData.OTP)
	if err != nil {
		return middleware.FlowErrorResponse(c, err)
	}

	session := models.Session{
		SessionID:       uuid.NewString(),
		Mobile:          mobile,
		Token:           verified.Token,
		IsAuthenticated: true,
		User:            datatypes.JSON(verified.User),
		ExpiresAt:       time.Now().Add(time.Duration(config.AppConfig.SessionTTLHours) * time.Hour),
	}
	if err := database.Database.Db.Create(&session).Error; err != nil {
		log.Printf("Error saving session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create session!", nil)
	}

	token, err := middleware.GenerateSessionJWT(session.SessionID, session.Mobile)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	flows.Delete(flow.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"token": token,
		"user":  json.RawMessage(verified.User),
	})
}

// LoginResendOTP re-issues the login OTP for the flow's mobile number.
func LoginResendOTP(c *fiber.Ctx) error {
	flow, resp := flowFromRef(c, authflow.KindLogin)
	if flow == nil {
		return resp
	}
	if err := flow.ResendOTP(c.Context()); err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP resent successfully.", nil)
}

// ForgotPassword starts a password-recovery flow for a mobile number.
func ForgotPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedForgot").(*struct {
		MobileNo string `json:"mobile_no"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	flow := authflow.NewRecovery(client, cooldown())
	if err := flow.SubmitMobile(c.Context(), reqData.MobileNo, ""); err != nil {
		var blocked *platform.BlockedError
		if errors.As(err, &blocked) {
			flows.Put(flow)
			return middleware.BlockedFlowResponse(c, blocked, flow.ID)
		}
		return middleware.FlowErrorResponse(c, err)
	}
	flows.Put(flow)

	data := fiber.Map{
		"flow_id": flow.ID,
		"step":    string(flow.State().Step()),
	}
	if otpState, ok := flow.State().(authflow.OTPState); ok && otpState.DevOTP != "" {
		data["otp"] = otpState.DevOTP
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully.", data)
}

// ForgotVerifyOTP confirms the recovery OTP. On a reported block the
// flow has already discarded the mobile number and returned to the
// mobile step; the response carries the block message.
func ForgotVerifyOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedOTP").(*struct {
		FlowID string `json:"flow_id"`
		OTP    string `json:"otp"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	flow := flows.Get(reqData.FlowID)
	if flow == nil || flow.Kind != authflow.KindRecovery {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Recovery flow not found. Please start again.", nil)
	}

	if _, err := flow.SubmitOTP(c.Context(), reqData.OTP); err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Identity verified. You can reset your password.", fiber.Map{
		"flow_id": flow.ID,
		"step":    string(flow.State().Step()),
	})
}

// ForgotResendOTP re-issues the recovery OTP.
func ForgotResendOTP(c *fiber.Ctx) error {
	flow, resp := flowFromRef(c, authflow.KindRecovery)
	if flow == nil {
		return resp
	}
	if err := flow.ResendOTP(c.Context()); err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP resent successfully.", nil)
}

// ForgotSetPassword completes recovery with the new password.
func ForgotSetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSetPassword").(*struct {
		FlowID          string `json:"flow_id"`
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	flow := flows.Get(reqData.FlowID)
	if flow == nil || flow.Kind != authflow.KindRecovery {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Recovery flow not found. Please start again.", nil)
	}

	if err := flow.SubmitPassword(c.Context(), reqData.NewPassword, reqData.ConfirmPassword); err != nil {
		return middleware.FlowErrorResponse(c, err)
	}

	flows.Delete(flow.ID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully.", nil)
}

// ResetFlow returns a flow to its first step and clears any block.
func ResetFlow(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedFlowRef").(*struct {
		FlowID string `json:"flow_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	flow := flows.Get(reqData.FlowID)
	if flow == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Flow not found.", nil)
	}
	flow.Reset()
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Flow reset.", fiber.Map{
		"flow_id": flow.ID,
		"step":    string(authflow.StepMobile),
	})
}

// Me restores the session on application start.
func Me(c *fiber.Ctx) error {
	session := c.Locals("session").(*models.Session)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session active.", fiber.Map{
		"isAuthenticated": session.IsAuthenticated,
		"mobile":          session.Mobile,
		"user":            json.RawMessage(session.User),
	})
}

// Logout clears the session record; the portal token becomes useless
// immediately even before it expires.
func Logout(c *fiber.Ctx) error {
	session := c.Locals("session").(*models.Session)
	if err := database.Database.Db.Unscoped().Delete(session).Error; err != nil {
		log.Printf("Error deleting session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to logout!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged out.", nil)
}

func flowFromRef(c *fiber.Ctx, kind authflow.Kind) (*authflow.Flow, error) {
	reqData, ok := c.Locals("validatedFlowRef").(*struct {
		FlowID string `json:"flow_id"`
	})
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	flow := flows.Get(reqData.FlowID)
	if flow == nil || flow.Kind != kind {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Flow not found. Please start again.", nil)
	}
	return flow, nil
}

func mobileOf(flow *authflow.Flow) string {
	switch s := flow.State().(type) {
	case authflow.OTPState:
		return s.Mobile
	case authflow.PasswordState:
		return s.Mobile
	default:
		return ""
	}
}
