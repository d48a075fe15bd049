package platform

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client talks to the platform backend API. Every admin action ends
// up here; the portal holds no business logic of its own.
type Client struct {
	http *resty.Client
}

// New creates a client for the given platform base URL.
func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &Client{http: c}
}

// Envelope is the response shape shared by all platform endpoints.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Token   string          `json:"token,omitempty"`
	OTP     string          `json:"otp,omitempty"` // echoed by the backend outside production only
}

// errorBody is what the platform sends alongside non-2xx statuses.
type errorBody struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	BlockTime json.RawMessage `json:"blockTime,omitempty"`
}

// r builds a request carrying the given bearer token. The platform
// reads both the Authorization header and x-auth-token.
func (c *Client) r(ctx context.Context, token string) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
		req.SetHeader("x-auth-token", token)
	}
	return req
}

// call issues the request and normalizes failures: transport errors
// and error-status bodies both come back as typed errors, a
// blockTime in the body as *BlockedError.
func (c *Client) call(req *resty.Request, method, path string, out *Envelope) error {
	req.SetResult(out)
	resp, err := req.Execute(method, path)
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	if resp.IsError() {
		return normalizeErrorBody(resp.StatusCode(), resp.Body())
	}
	return nil
}

func normalizeErrorBody(status int, body []byte) error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || eb.Message == "" && eb.BlockTime == nil {
		return &APIError{StatusCode: status, Message: string(body)}
	}
	if eb.BlockTime != nil {
		if until, ok := parseBlockTime(eb.BlockTime); ok {
			return &BlockedError{Until: until, Message: eb.Message}
		}
	}
	return &APIError{StatusCode: status, Message: eb.Message}
}

// parseBlockTime accepts the two encodings the backend has been seen
// to use: an RFC3339 string or epoch milliseconds.
func parseBlockTime(raw json.RawMessage) (time.Time, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms), true
		}
		return time.Time{}, false
	}
	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(ms), true
	}
	return time.Time{}, false
}

// decodeData unmarshals an envelope's data field into out.
func decodeData(env *Envelope, out interface{}) error {
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &APIError{Message: "malformed data field: " + err.Error()}
	}
	return nil
}

// decodeDataSlice tolerates the backend returning a single object
// where a list is expected and wraps it into a one-element slice.
func decodeDataSlice[T any](env *Envelope) ([]T, error) {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return []T{}, nil
	}
	var list []T
	if err := json.Unmarshal(env.Data, &list); err == nil {
		return list, nil
	}
	var one T
	if err := json.Unmarshal(env.Data, &one); err != nil {
		return nil, &APIError{Message: "malformed data field: " + err.Error()}
	}
	return []T{one}, nil
}
