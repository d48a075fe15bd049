package platform

import (
	"context"
	"net/http"
)

// LoginResult carries the OTP issuance response for an admin login.
// The otp field is present only on non-production backends.
type LoginResult struct {
	Success bool
	Message string
	DevOTP  string
}

// AdminLogin submits mobile + password; on success the backend issues
// an OTP to the mobile number.
func (c *Client) AdminLogin(ctx context.Context, mobile, password string) (*LoginResult, error) {
	var env Envelope
	err := c.call(
		c.r(ctx, "").SetBody(map[string]string{"mobile_no": mobile, "password": password}),
		http.MethodPost, "/admin-login/", &env,
	)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, ErrInvalidCredentials
	}
	return &LoginResult{Success: true, Message: env.Message, DevOTP: env.OTP}, nil
}

// VerifiedSession is the payload of a successful login OTP
// verification: the bearer token and the admin user record.
type VerifiedSession struct {
	Token string
	User  []byte // raw user record, stored as-is
}

// AdminVerifyOTP exchanges mobile + OTP for a bearer token.
func (c *Client) AdminVerifyOTP(ctx context.Context, mobile string, otp int) (*VerifiedSession, error) {
	var env Envelope
	err := c.call(
		c.r(ctx, "").SetBody(map[string]interface{}{"mobile_no": mobile, "otp": otp}),
		http.MethodPost, "/admin-login/verifyOTP", &env,
	)
	if err != nil {
		return nil, err
	}
	if !env.Success || env.Token == "" {
		msg := env.Message
		if msg == "" {
			msg = "Invalid OTP"
		}
		return nil, &APIError{Message: msg}
	}
	return &VerifiedSession{Token: env.Token, User: env.Data}, nil
}

// AdminResendOTP re-issues the login OTP for the given mobile number.
func (c *Client) AdminResendOTP(ctx context.Context, mobile string) error {
	var env Envelope
	err := c.call(
		c.r(ctx, "").SetBody(map[string]string{"mobile_no": mobile}),
		http.MethodPost, "/admin-login/resendOTP", &env,
	)
	if err != nil {
		return err
	}
	if !env.Success {
		return &APIError{Message: nonEmpty(env.Message, "Failed to resend OTP")}
	}
	return nil
}

// ForgotPassword starts password recovery for a mobile number.
func (c *Client) ForgotPassword(ctx context.Context, mobile string) (*LoginResult, error) {
	var env Envelope
	err := c.call(
		c.r(ctx, "").SetBody(map[string]string{"mobile_no": mobile}),
		http.MethodPost, "/forgot-password/verify/mobile", &env,
	)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, ErrInvalidCredentials
	}
	return &LoginResult{Success: true, Message: env.Message, DevOTP: env.OTP}, nil
}

// ForgotVerifyOTP confirms the recovery OTP, authorizing a password
// reset for the mobile number.
func (c *Client) ForgotVerifyOTP(ctx context.Context, mobile string, otp int) error {
	var env Envelope
	err := c.call(
		c.r(ctx, "").SetBody(map[string]interface{}{"mobile_no": mobile, "otp": otp}),
		http.MethodPost, "/forgot-password/verifyOTP", &env,
	)
	if err != nil {
		return err
	}
	if !env.Success {
		return &APIError{Message: nonEmpty(env.Message, "Invalid OTP")}
	}
	return nil
}

// ForgotResendOTP re-issues the recovery OTP.
func (c *Client) ForgotResendOTP(ctx context.Context, mobile string) error {
	var env Envelope
	err := c.call(
		c.r(ctx, "").SetBody(map[string]string{"mobile_no": mobile}),
		http.MethodPost, "/forgot-password/resendOTP", &env,
	)
	if err != nil {
		return err
	}
	if !env.Success {
		return &APIError{Message: nonEmpty(env.Message, "Failed to resend OTP")}
	}
	return nil
}

// ForgotSetPassword completes recovery with the new password.
func (c *Client) ForgotSetPassword(ctx context.Context, mobile, password string) error {
	var env Envelope
	err := c.call(
		c.r(ctx, "").SetBody(map[string]string{"mobile_no": mobile, "password": password}),
		http.MethodPost, "/forgot-password/update/password", &env,
	)
	if err != nil {
		return err
	}
	if !env.Success {
		return &APIError{Message: nonEmpty(env.Message, "Failed to reset password")}
	}
	return nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
