package platform

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCredentials is returned when the platform rejects a
// credential submission outright (no block window reported).
var ErrInvalidCredentials = errors.New("invalid mobile number or password")

// APIError is the normalized form of any platform failure: the
// backend's structured error body when present, otherwise the
// transport error message.
type APIError struct {
	StatusCode int    `json:"status_code,omitempty"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("platform: %s (status %d)", e.Message, e.StatusCode)
	}
	return "platform: " + e.Message
}

// BlockedError reports a block-until timestamp returned by the
// platform. Submission stays disabled until the caller resets the
// flow; there is no automatic unblock timer.
type BlockedError struct {
	Until   time.Time
	Message string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("blocked until %s", e.Until.Format(time.RFC1123))
}

// UploadFailedError means the raw byte push to a write target did not
// return success. The owning record's object key must be left
// unchanged.
type UploadFailedError struct {
	StatusCode int
	Body       string
}

func (e *UploadFailedError) Error() string {
	return fmt.Sprintf("upload to write target failed with status %d", e.StatusCode)
}
