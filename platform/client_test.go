package platform

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(srv.URL, 5*time.Second), srv
}

func TestTokenHeaders(t *testing.T) {
	var gotAuth, gotXAuth string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotXAuth = r.Header.Get("x-auth-token")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": []interface{}{}})
	})
	defer srv.Close()

	_, err := client.GetAllCourses(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "tok-123", gotXAuth)
}

func TestAdminLoginSuccessEchoesDevOTP(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "9876543210", body["mobile_no"])
		assert.Equal(t, "secret", body["password"])
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "OTP sent",
			"otp":     "123456",
		})
	})
	defer srv.Close()

	result, err := client.AdminLogin(context.Background(), "9876543210", "secret")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "123456", result.DevOTP)
}

func TestAdminLoginRejectedCredentials(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid credentials"})
	})
	defer srv.Close()

	_, err := client.AdminLogin(context.Background(), "9876543210", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestBlockTimeProducesBlockedError(t *testing.T) {
	until := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":   false,
			"message":   "Too many attempts",
			"blockTime": until.Format(time.RFC3339),
		})
	})
	defer srv.Close()

	_, err := client.AdminLogin(context.Background(), "9876543210", "pw")
	var blocked *BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.True(t, blocked.Until.Equal(until))
}

func TestBlockTimeEpochMillis(t *testing.T) {
	raw := json.RawMessage(`1772361000000`)
	parsed, ok := parseBlockTime(raw)
	require.True(t, ok)
	assert.Equal(t, time.UnixMilli(1772361000000).Unix(), parsed.Unix())

	rawStr := json.RawMessage(`"1772361000000"`)
	parsed, ok = parseBlockTime(rawStr)
	require.True(t, ok)
	assert.Equal(t, time.UnixMilli(1772361000000).Unix(), parsed.Unix())
}

func TestErrorStatusWithoutBody(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	})
	defer srv.Close()

	_, err := client.GetAllCourses(context.Background(), "tok")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestAdminVerifyOTPReturnsTokenAndUser(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"token":   "bearer-xyz",
			"data":    map[string]string{"name": "Admin"},
		})
	})
	defer srv.Close()

	session, err := client.AdminVerifyOTP(context.Background(), "9876543210", 123456)
	require.NoError(t, err)
	assert.Equal(t, "bearer-xyz", session.Token)
	assert.JSONEq(t, `{"name":"Admin"}`, string(session.User))
}

func TestAdminVerifyOTPMissingToken(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	})
	defer srv.Close()

	_, err := client.AdminVerifyOTP(context.Background(), "9876543210", 123456)
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestDecodeDataSliceToleratesSingleObject(t *testing.T) {
	env := &Envelope{Data: json.RawMessage(`{"title":"Solo"}`)}
	courses, err := decodeDataSlice[Course](env)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Solo", courses[0].Title)

	env = &Envelope{Data: json.RawMessage(`null`)}
	courses, err = decodeDataSlice[Course](env)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestPushToTargetFailureIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "video/mp4", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	err := client.PushToTarget(context.Background(), &UploadTarget{UploadURL: srv.URL + "/obj", ObjectKey: "obj"}, "video/mp4", []byte("bytes"))
	var failed *UploadFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, http.StatusForbidden, failed.StatusCode)
}

func TestPushToTargetSuccess(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	err := client.PushToTarget(context.Background(), &UploadTarget{UploadURL: srv.URL + "/obj", ObjectKey: "obj"}, "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(gotBody))
}
