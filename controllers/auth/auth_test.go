package authController

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"kesharadmin/authflow"
	"kesharadmin/config"
	"kesharadmin/database"
	"kesharadmin/middleware"
	"kesharadmin/models"
	"kesharadmin/platform"
	authValidator "kesharadmin/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T, backend http.HandlerFunc) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		DBName:               filepath.Join(t.TempDir(), "test.db"),
		JWTKey:               "test-secret",
		SessionTTLHours:      1,
		OTPResendCooldownSec: 60,
	}
	database.ConnectDb()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	Setup(platform.New(srv.URL, 5*time.Second), authflow.NewStore(15*time.Minute))

	app := fiber.New()
	app.Post("/auth/login", authValidator.Login(), Login)
	app.Post("/auth/login/verify/otp", authValidator.VerifyOTP(), LoginVerifyOTP)
	app.Post("/auth/login/resend/otp", authValidator.FlowRef(), LoginResendOTP)
	app.Post("/auth/forgot/password", authValidator.ForgotPassword(), ForgotPassword)
	app.Post("/auth/forgot/password/verify/otp", authValidator.VerifyOTP(), ForgotVerifyOTP)
	app.Patch("/auth/forgot/password/reset", authValidator.SetPassword(), ForgotSetPassword)
	app.Post("/auth/flow/reset", authValidator.FlowRef(), ResetFlow)
	app.Get("/auth/me", middleware.SessionMiddleware, Me)
	app.Post("/auth/logout", middleware.SessionMiddleware, Logout)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

// loginBackend scripts the happy-path admin login endpoints.
func loginBackend() http.HandlerFunc {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin-login/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "OTP sent", "otp": "123456"})
	})
	mux.HandleFunc("/admin-login/verifyOTP", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"token":   "upstream-bearer",
			"data":    map[string]string{"name": "Admin", "role": "superadmin"},
		})
	})
	return mux.ServeHTTP
}

func TestLoginFullCycle(t *testing.T) {
	app := setupApp(t, loginBackend())

	status, body := do(t, app, "POST", "/auth/login", "", `{"mobile_no":"9876543210","password":"secret"}`)
	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]interface{})
	flowID := data["flow_id"].(string)
	assert.Equal(t, "otp", data["step"])
	assert.Equal(t, "123456", data["otp"])

	status, body = do(t, app, "POST", "/auth/login/verify/otp", "", `{"flow_id":"`+flowID+`","otp":"123456"}`)
	require.Equal(t, fiber.StatusOK, status)
	data = body["data"].(map[string]interface{})
	portalToken := data["token"].(string)
	require.NotEmpty(t, portalToken)
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "Admin", user["name"])

	// The stored session holds the mobile number and upstream token,
	// and never serializes the token.
	var session models.Session
	require.NoError(t, database.Database.Db.First(&session).Error)
	assert.Equal(t, "9876543210", session.Mobile)
	assert.Equal(t, "upstream-bearer", session.Token)

	status, body = do(t, app, "GET", "/auth/me", portalToken, "")
	require.Equal(t, fiber.StatusOK, status)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, true, data["isAuthenticated"])
	assert.Equal(t, "9876543210", data["mobile"])

	status, _ = do(t, app, "POST", "/auth/logout", portalToken, "")
	require.Equal(t, fiber.StatusOK, status)

	// The portal token is useless once the session row is gone.
	status, _ = do(t, app, "GET", "/auth/me", portalToken, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLoginInvalidMobileRejectedLocally(t *testing.T) {
	backendCalls := 0
	app := setupApp(t, func(w http.ResponseWriter, r *http.Request) {
		backendCalls++
	})

	status, _ := do(t, app, "POST", "/auth/login", "", `{"mobile_no":"12345","password":"secret"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Zero(t, backendCalls)
}

func TestLoginVerifyUnknownFlow(t *testing.T) {
	app := setupApp(t, loginBackend())
	status, _ := do(t, app, "POST", "/auth/login/verify/otp", "", `{"flow_id":"nope","otp":"123456"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestLoginBlockedSurfacesBlockTime(t *testing.T) {
	until := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	mux := http.NewServeMux()
	mux.HandleFunc("/admin-login/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "otp": "123456"})
	})
	mux.HandleFunc("/admin-login/verifyOTP", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":   false,
			"message":   "Too many attempts",
			"blockTime": until.Format(time.RFC3339),
		})
	})
	app := setupApp(t, mux.ServeHTTP)

	status, body := do(t, app, "POST", "/auth/login", "", `{"mobile_no":"9876543210","password":"secret"}`)
	require.Equal(t, fiber.StatusOK, status)
	flowID := body["data"].(map[string]interface{})["flow_id"].(string)

	status, body = do(t, app, "POST", "/auth/login/verify/otp", "", `{"flow_id":"`+flowID+`","otp":"000000"}`)
	assert.Equal(t, fiber.StatusLocked, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, until.Format(time.RFC3339), data["blockTime"])

	// Blocked flows refuse further submissions until reset.
	status, _ = do(t, app, "POST", "/auth/login/verify/otp", "", `{"flow_id":"`+flowID+`","otp":"123456"}`)
	assert.Equal(t, fiber.StatusLocked, status)

	status, _ = do(t, app, "POST", "/auth/flow/reset", "", `{"flow_id":"`+flowID+`"}`)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = do(t, app, "POST", "/auth/login", "", `{"mobile_no":"9876543210","password":"secret"}`)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestLoginBlockedAtMobileStepIsStoredAndResettable(t *testing.T) {
	until := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	loginCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/admin-login/", func(w http.ResponseWriter, r *http.Request) {
		loginCalls++
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":   false,
			"message":   "Too many attempts",
			"blockTime": until.Format(time.RFC3339),
		})
	})
	app := setupApp(t, mux.ServeHTTP)

	status, body := do(t, app, "POST", "/auth/login", "", `{"mobile_no":"9876543210","password":"secret"}`)
	require.Equal(t, fiber.StatusLocked, status)
	data := body["data"].(map[string]interface{})
	flowID := data["flow_id"].(string)
	require.NotEmpty(t, flowID)
	assert.Equal(t, until.Format(time.RFC3339), data["blockTime"])
	assert.Equal(t, 1, loginCalls)

	// The stored flow refuses further submissions locally.
	status, _ = do(t, app, "POST", "/auth/login/verify/otp", "", `{"flow_id":"`+flowID+`","otp":"123456"}`)
	assert.Equal(t, fiber.StatusLocked, status)
	assert.Equal(t, 1, loginCalls)

	status, _ = do(t, app, "POST", "/auth/flow/reset", "", `{"flow_id":"`+flowID+`"}`)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRecoveryFullCycle(t *testing.T) {
	passwordSet := ""
	mux := http.NewServeMux()
	mux.HandleFunc("/forgot-password/verify/mobile", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "otp": "654321"})
	})
	mux.HandleFunc("/forgot-password/verifyOTP", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	})
	mux.HandleFunc("/forgot-password/update/password", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		passwordSet = body["password"]
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	})
	app := setupApp(t, mux.ServeHTTP)

	status, body := do(t, app, "POST", "/auth/forgot/password", "", `{"mobile_no":"9876543210"}`)
	require.Equal(t, fiber.StatusOK, status)
	flowID := body["data"].(map[string]interface{})["flow_id"].(string)

	status, body = do(t, app, "POST", "/auth/forgot/password/verify/otp", "", `{"flow_id":"`+flowID+`","otp":"654321"}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "password", body["data"].(map[string]interface{})["step"])

	status, _ = do(t, app, "PATCH", "/auth/forgot/password/reset", "", `{"flow_id":"`+flowID+`","new_password":"newsecret","confirm_password":"newsecret"}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "newsecret", passwordSet)
}

func TestRecoveryShortPasswordRejectedLocally(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/forgot-password/verify/mobile", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "otp": "654321"})
	})
	mux.HandleFunc("/forgot-password/verifyOTP", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	})
	updateCalls := 0
	mux.HandleFunc("/forgot-password/update/password", func(w http.ResponseWriter, r *http.Request) {
		updateCalls++
	})
	app := setupApp(t, mux.ServeHTTP)

	_, body := do(t, app, "POST", "/auth/forgot/password", "", `{"mobile_no":"9876543210"}`)
	flowID := body["data"].(map[string]interface{})["flow_id"].(string)
	do(t, app, "POST", "/auth/forgot/password/verify/otp", "", `{"flow_id":"`+flowID+`","otp":"654321"}`)

	status, _ := do(t, app, "PATCH", "/auth/forgot/password/reset", "", `{"flow_id":"`+flowID+`","new_password":"abc","confirm_password":"abc"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Zero(t, updateCalls)
}

func TestResendWithinCooldown(t *testing.T) {
	app := setupApp(t, loginBackend())

	_, body := do(t, app, "POST", "/auth/login", "", `{"mobile_no":"9876543210","password":"secret"}`)
	flowID := body["data"].(map[string]interface{})["flow_id"].(string)

	status, _ := do(t, app, "POST", "/auth/login/resend/otp", "", `{"flow_id":"`+flowID+`"}`)
	assert.Equal(t, fiber.StatusTooManyRequests, status)
}
